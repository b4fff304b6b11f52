// Package dbx provides tiny document-store helpers shared by repositories:
// connecting, identifier parsing, duplicate-key detection and filter
// fragments.
package dbx

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/lacs/lacsapi/internal/common"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ConnectTimeout bounds the initial dial and ping.
const ConnectTimeout = 10 * time.Second

// Connect dials uri and pings the primary so misconfiguration surfaces at
// startup rather than on the first request.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

var objectIDPattern = regexp.MustCompile(`^[a-fA-F0-9]{24}$`)

// ValidID reports whether id looks like a 24-hex ObjectID.
func ValidID(id string) bool {
	return objectIDPattern.MatchString(id)
}

// ParseID converts a hex identifier, wrapping common.ErrorValidation when
// it is malformed.
func ParseID(id string) (primitive.ObjectID, error) {
	if !ValidID(id) {
		return primitive.NilObjectID, fmt.Errorf("%w: malformed identifier %q", common.ErrorValidation, id)
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	return oid, nil
}

// NewID returns a fresh hex ObjectID, used by in-memory repositories so
// their identifiers are interchangeable with stored ones.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// MapError translates driver errors to common sentinels.
func MapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return common.ErrorNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", common.ErrorAlreadyExists, err)
	default:
		return fmt.Errorf("db error: %w", err)
	}
}

// ContainsFold is a case-insensitive substring match on a literal value.
func ContainsFold(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
}
