package trabajadores

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

const CollectionName = "trabajadores"

type trabajadorDocument struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	models.Trabajador `bson:",inline"`
}

func (d trabajadorDocument) toModel() *models.Trabajador {
	t := d.Trabajador
	t.ID = d.ID.Hex()
	return &t
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "apellido_paterno", Value: 1}, {Key: "nombre", Value: 1}}},
		{Keys: bson.D{{Key: "curp", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("trabajadores indexes: %w", err)
	}
	return nil
}

func (r *MongoRepository) Create(ctx context.Context, t *models.Trabajador) (*models.Trabajador, error) {
	res, err := r.coll.InsertOne(ctx, trabajadorDocument{Trabajador: *t})
	if err != nil {
		return nil, dbx.MapError(err)
	}

	out := *t
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		out.ID = oid.Hex()
	}
	return &out, nil
}

func (r *MongoRepository) Get(ctx context.Context, id string) (*models.Trabajador, error) {
	oid, err := dbx.ParseID(id)
	if err != nil {
		return nil, err
	}

	var doc trabajadorDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, dbx.MapError(err)
	}
	return doc.toModel(), nil
}

func (r *MongoRepository) Replace(ctx context.Context, id string, t *models.Trabajador) error {
	oid, err := dbx.ParseID(id)
	if err != nil {
		return err
	}

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, trabajadorDocument{ID: oid, Trabajador: *t})
	if err != nil {
		return dbx.MapError(err)
	}
	if res.MatchedCount == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := dbx.ParseID(id)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return dbx.MapError(err)
	}
	if res.DeletedCount == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *MongoRepository) List(ctx context.Context, f models.TrabajadorFilter, limit, skip int) ([]*models.Trabajador, int64, error) {
	filter := buildFilter(f)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, dbx.MapError(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "apellido_paterno", Value: 1}, {Key: "nombre", Value: 1}}).
		SetLimit(int64(clampLimit(limit))).
		SetSkip(int64(max(skip, 0)))
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, dbx.MapError(err)
	}
	defer cur.Close(ctx)

	var docs []trabajadorDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, dbx.MapError(err)
	}

	out := make([]*models.Trabajador, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, total, nil
}

func buildFilter(f models.TrabajadorFilter) bson.M {
	filter := bson.M{}
	for field, v := range map[string]string{
		"nombre":           f.Nombre,
		"apellido_paterno": f.ApellidoPaterno,
		"apellido_materno": f.ApellidoMaterno,
		"puesto":           f.Puesto,
		"empresa_pagadora": f.EmpresaPagadora,
	} {
		if v != "" {
			filter[field] = dbx.ContainsFold(v)
		}
	}
	for field, v := range map[string]string{
		"sexo":          string(f.Sexo),
		"tipo_contrato": string(f.TipoContrato),
		"estado_civil":  string(f.EstadoCivil),
		"nacionalidad":  f.Nacionalidad,
	} {
		if v != "" {
			filter[field] = v
		}
	}
	return filter
}
