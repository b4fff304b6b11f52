// Package settings stores server-wide values in the config collection.
package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/lacs/lacsapi/internal/common"
	"github.com/lacs/lacsapi/internal/dbx"
	"github.com/lacs/lacsapi/internal/server/auth"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "config"

type secretDocument struct {
	ID  string `bson:"_id"`
	Key string `bson:"key"`
}

// MongoRepository implements auth.SecretStore.
type MongoRepository struct {
	coll *mongo.Collection
}

var _ auth.SecretStore = (*MongoRepository)(nil)

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

func (r *MongoRepository) GetSecret(ctx context.Context) (string, error) {
	var doc secretDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": common.ServerSecretID}).Decode(&doc); err != nil {
		return "", dbx.MapError(err)
	}
	if doc.Key == "" {
		return "", common.ErrorNotFound
	}
	return doc.Key, nil
}

// PutSecretIfAbsent upserts with $setOnInsert so a concurrent writer that got
// there first keeps its value; the stored secret is read back either way.
func (r *MongoRepository) PutSecretIfAbsent(ctx context.Context, candidate string) (string, error) {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": common.ServerSecretID},
		bson.M{"$setOnInsert": bson.M{"key": candidate}},
		options.Update().SetUpsert(true),
	)
	// Two upserts racing on the same _id can make the loser fail with a
	// duplicate key; the winner's document is then readable.
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return "", fmt.Errorf("store secret: %w", dbx.MapError(err))
	}

	key, err := r.GetSecret(ctx)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", fmt.Errorf("%w: secret vanished after upsert", common.ErrorInternal)
		}
		return "", err
	}
	return key, nil
}
