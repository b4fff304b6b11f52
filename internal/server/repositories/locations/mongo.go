package locations

import (
	"context"
	"errors"
	"fmt"

	"github.com/lacs/lacsapi/internal/dbx"
	"github.com/lacs/lacsapi/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "ubicaciones"

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

func (r *MongoRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, dbx.MapError(err)
	}
	return n, nil
}

func (r *MongoRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return dbx.MapError(err)
	}
	return nil
}

func (r *MongoRepository) InsertBatch(ctx context.Context, batch []models.Location) (BatchResult, error) {
	if len(batch) == 0 {
		return BatchResult{}, nil
	}

	docs := make([]any, len(batch))
	for i := range batch {
		docs[i] = batch[i]
	}

	var result BatchResult
	_, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		var bwe mongo.BulkWriteException
		if !errors.As(err, &bwe) || len(bwe.WriteErrors) == 0 {
			return result, dbx.MapError(err)
		}
		for _, we := range bwe.WriteErrors {
			item := FailedItem{Index: we.Index, Message: we.Message}
			if we.Index >= 0 && we.Index < len(batch) {
				item.CodigoPostal = batch[we.Index].CodigoPostal
			}
			result.Failed = append(result.Failed, item)
		}
	}
	result.Inserted = len(batch) - len(result.Failed)
	return result, nil
}

func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "codigo_postal", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "estado", Value: 1}, {Key: "municipio", Value: 1}}},
		{Keys: bson.D{{Key: "asentamientos.nombre", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("ubicaciones indexes: %w", err)
	}
	return nil
}

func (r *MongoRepository) CountSettlements(ctx context.Context) (int64, error) {
	cur, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$unwind", Value: "$asentamientos"}},
		{{Key: "$count", Value: "total"}},
	})
	if err != nil {
		return 0, dbx.MapError(err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		Total int64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, dbx.MapError(err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

func (r *MongoRepository) FindByPostalCode(ctx context.Context, cp string) (*models.Location, error) {
	var loc models.Location
	if err := r.coll.FindOne(ctx, bson.M{"codigo_postal": cp}).Decode(&loc); err != nil {
		return nil, dbx.MapError(err)
	}
	return &loc, nil
}

func (r *MongoRepository) FindByState(ctx context.Context, estado string, limit, skip int) ([]models.Location, int64, error) {
	filter := bson.M{"estado": dbx.ContainsFold(estado)}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, dbx.MapError(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "codigo_postal", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, dbx.MapError(err)
	}
	defer cur.Close(ctx)

	out := make([]models.Location, 0, limit)
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, dbx.MapError(err)
	}
	return out, total, nil
}

func (r *MongoRepository) Sample(ctx context.Context, limit int) ([]models.Location, error) {
	opts := options.Find().
		SetLimit(int64(limit)).
		SetProjection(bson.M{"_id": 0, "codigo_postal": 1, "municipio": 1, "estado": 1})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	defer cur.Close(ctx)

	out := make([]models.Location, 0, limit)
	if err := cur.All(ctx, &out); err != nil {
		return nil, dbx.MapError(err)
	}
	return out, nil
}
