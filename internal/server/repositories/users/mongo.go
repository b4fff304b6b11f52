package users

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

// CollectionName is the collection holding user accounts.
const CollectionName = "users"

type userDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Nombre          string             `bson:"nombre"`
	ApellidoPaterno string             `bson:"apellido_paterno"`
	ApellidoMaterno string             `bson:"apellido_materno"`
	Nickname        string             `bson:"nickname"`
	Email           string             `bson:"email,omitempty"`
	Telefono        string             `bson:"telefono,omitempty"`
	Empresa         string             `bson:"empresa,omitempty"`
	Rol             string             `bson:"rol"`
	Password        string             `bson:"password"`
}

func toDocument(u *models.User) userDocument {
	doc := userDocument{
		Nombre:          u.Nombre,
		ApellidoPaterno: u.ApellidoPaterno,
		ApellidoMaterno: u.ApellidoMaterno,
		Nickname:        u.Nickname,
		Email:           u.Email,
		Telefono:        u.Telefono,
		Empresa:         u.Empresa,
		Rol:             string(u.Rol),
		Password:        u.PasswordHash,
	}
	if oid, err := primitive.ObjectIDFromHex(u.ID); err == nil {
		doc.ID = oid
	}
	return doc
}

func (d userDocument) toModel() *models.User {
	return &models.User{
		ID:              d.ID.Hex(),
		Nombre:          d.Nombre,
		ApellidoPaterno: d.ApellidoPaterno,
		ApellidoMaterno: d.ApellidoMaterno,
		Nickname:        d.Nickname,
		Email:           d.Email,
		Telefono:        d.Telefono,
		Empresa:         d.Empresa,
		Rol:             models.Role(d.Rol),
		PasswordHash:    d.Password,
	}
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

// EnsureIndexes creates the unique nickname index and a unique email index
// restricted to documents that carry an email.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "nickname", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.M{"email": bson.M{"$type": "string"}}),
		},
	})
	if err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	return nil
}

func (r *MongoRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	doc := toDocument(user)
	doc.ID = primitive.NilObjectID

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, dbx.MapError(err)
	}

	out := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		out.ID = oid.Hex()
	}
	return &out, nil
}

func (r *MongoRepository) GetByNickname(ctx context.Context, nickname string) (*models.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, bson.M{"nickname": nickname}).Decode(&doc); err != nil {
		return nil, dbx.MapError(err)
	}
	return doc.toModel(), nil
}

func (r *MongoRepository) ExistsByNicknameOrEmail(ctx context.Context, nickname, email string) (bool, error) {
	or := bson.A{bson.M{"nickname": nickname}}
	if email != "" {
		or = append(or, bson.M{"email": email})
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"$or": or}, options.Count().SetLimit(1))
	if err != nil {
		return false, dbx.MapError(err)
	}
	return n > 0, nil
}

func (r *MongoRepository) Update(ctx context.Context, user *models.User) error {
	doc := toDocument(user)
	set := bson.M{
		"nombre":           doc.Nombre,
		"apellido_paterno": doc.ApellidoPaterno,
		"apellido_materno": doc.ApellidoMaterno,
		"telefono":         doc.Telefono,
		"empresa":          doc.Empresa,
		"rol":              doc.Rol,
		"password":         doc.Password,
	}
	update := bson.M{"$set": set}
	if doc.Email != "" {
		set["email"] = doc.Email
	} else {
		update["$unset"] = bson.M{"email": ""}
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"nickname": user.Nickname}, update)
	if err != nil {
		return dbx.MapError(err)
	}
	if res.MatchedCount == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, nickname string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"nickname": nickname})
	if err != nil {
		return dbx.MapError(err)
	}
	if res.DeletedCount == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *MongoRepository) Search(ctx context.Context, c models.UserSearch, limit int) ([]*models.User, error) {
	if limit <= 0 || limit > DefaultSearchLimit {
		limit = DefaultSearchLimit
	}

	and := bson.A{}
	if c.Nickname != "" {
		and = append(and, bson.M{"nickname": dbx.ContainsFold(c.Nickname)})
	}
	if c.Email != "" {
		and = append(and, bson.M{"email": dbx.ContainsFold(c.Email)})
	}
	if c.Empresa != "" {
		and = append(and, bson.M{"empresa": dbx.ContainsFold(c.Empresa)})
	}
	if c.Rol != "" {
		and = append(and, bson.M{"rol": string(c.Rol)})
	}
	if c.Nombre != "" {
		and = append(and, bson.M{"$or": bson.A{
			bson.M{"nombre": dbx.ContainsFold(c.Nombre)},
			bson.M{"apellido_paterno": dbx.ContainsFold(c.Nombre)},
			bson.M{"apellido_materno": dbx.ContainsFold(c.Nombre)},
		}})
	}
	filter := bson.M{}
	if len(and) > 0 {
		filter["$and"] = and
	}

	opts := options.Find().SetLimit(int64(limit)).SetSort(bson.D{{Key: "nickname", Value: 1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	defer cur.Close(ctx)

	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, dbx.MapError(err)
	}

	out := make([]*models.User, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}
