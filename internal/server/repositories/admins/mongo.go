package admins

import (
	"context"
	"fmt"

	"github.com/lacs/lacsapi/internal/common"
	"github.com/lacs/lacsapi/internal/dbx"
	"github.com/lacs/lacsapi/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "admins"

type adminDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Nickname        string             `bson:"nickname"`
	Nombre          string             `bson:"nombre"`
	ApellidoPaterno string             `bson:"apellido_paterno"`
	ApellidoMaterno string             `bson:"apellido_materno"`
	Password        string             `bson:"password"`
}

func (d adminDocument) toModel() *models.Admin {
	return &models.Admin{
		ID:              d.ID.Hex(),
		Nickname:        d.Nickname,
		Nombre:          d.Nombre,
		ApellidoPaterno: d.ApellidoPaterno,
		ApellidoMaterno: d.ApellidoMaterno,
		PasswordHash:    d.Password,
	}
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "nickname", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("admins indexes: %w", err)
	}
	return nil
}

func (r *MongoRepository) Create(ctx context.Context, admin *models.Admin) (*models.Admin, error) {
	doc := adminDocument{
		Nickname:        admin.Nickname,
		Nombre:          admin.Nombre,
		ApellidoPaterno: admin.ApellidoPaterno,
		ApellidoMaterno: admin.ApellidoMaterno,
		Password:        admin.PasswordHash,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, dbx.MapError(err)
	}

	out := *admin
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		out.ID = oid.Hex()
	}
	return &out, nil
}

func (r *MongoRepository) GetByNickname(ctx context.Context, nickname string) (*models.Admin, error) {
	var doc adminDocument
	if err := r.coll.FindOne(ctx, bson.M{"nickname": nickname}).Decode(&doc); err != nil {
		return nil, dbx.MapError(err)
	}
	return doc.toModel(), nil
}

func (r *MongoRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, dbx.MapError(err)
	}
	return n, nil
}

func (r *MongoRepository) UpdatePassword(ctx context.Context, nickname, passwordHash string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"nickname": nickname},
		bson.M{"$set": bson.M{"password": passwordHash}},
	)
	if err != nil {
		return dbx.MapError(err)
	}
	if res.MatchedCount == 0 {
		return common.ErrorNotFound
	}
	return nil
}
