package locations

import (
	"context"
	"testing"

	"github.com/lacs/lacsapi/internal/common"
	"github.com/lacs/lacsapi/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const ns = "lacs.ubicaciones"

func TestMongoRepository_InsertBatch(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	batch := []models.Location{loc("01000", "CDMX"), loc("01000", "CDMX"), loc("44100", "Jalisco")}

	mt.Run("all inserted", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		res, err := NewMongoRepository(mt.DB).InsertBatch(context.Background(), batch)
		require.NoError(t, err)
		assert.Equal(t, 3, res.Inserted)
		assert.Empty(t, res.Failed)
	})

	mt.Run("partial failure is summarized", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 1, Code: 11000, Message: "E11000 duplicate key error",
		}))
		res, err := NewMongoRepository(mt.DB).InsertBatch(context.Background(), batch)
		require.NoError(t, err)
		assert.Equal(t, 2, res.Inserted)
		require.Len(t, res.Failed, 1)
		assert.Equal(t, FailedItem{Index: 1, CodigoPostal: "01000", Message: "E11000 duplicate key error"}, res.Failed[0])
	})

	mt.Run("command failure is an error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 8000, Message: "boom", Name: "AtlasError"}))
		_, err := NewMongoRepository(mt.DB).InsertBatch(context.Background(), batch)
		assert.Error(t, err)
	})
}

func TestMongoRepository_CountSettlements(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("with data", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "total", Value: int64(42)}}))
		n, err := NewMongoRepository(mt.DB).CountSettlements(context.Background())
		require.NoError(t, err)
		assert.EqualValues(t, 42, n)
	})

	mt.Run("empty collection", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		n, err := NewMongoRepository(mt.DB).CountSettlements(context.Background())
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestMongoRepository_FindByPostalCode(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "codigo_postal", Value: "09000"},
			{Key: "estado", Value: "Ciudad de México"},
			{Key: "asentamientos", Value: bson.A{
				bson.D{{Key: "nombre", Value: "Centro"}, {Key: "tipo", Value: "Colonia"}},
			}},
		}))
		got, err := NewMongoRepository(mt.DB).FindByPostalCode(context.Background(), "09000")
		require.NoError(t, err)
		assert.Equal(t, "Ciudad de México", got.Estado)
		require.Len(t, got.Asentamientos, 1)
		assert.Equal(t, "Colonia", got.Asentamientos[0].Tipo)
	})

	mt.Run("missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		_, err := NewMongoRepository(mt.DB).FindByPostalCode(context.Background(), "99999")
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})
}

func TestMongoRepository_FindByState(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("count and page", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "_id", Value: 1}, {Key: "n", Value: int64(120)}}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
				bson.D{{Key: "codigo_postal", Value: "44100"}, {Key: "estado", Value: "Jalisco"}},
				bson.D{{Key: "codigo_postal", Value: "44110"}, {Key: "estado", Value: "Jalisco"}},
			),
		)
		page, total, err := NewMongoRepository(mt.DB).FindByState(context.Background(), "jal", 2, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 120, total)
		require.Len(t, page, 2)
		assert.Equal(t, "44110", page[1].CodigoPostal)
	})
}
