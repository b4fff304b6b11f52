package users

import (
	"context"
	"testing"

	"github.com/lacs/lacsapi/internal/common"
	"github.com/lacs/lacsapi/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const ns = "lacs.users"

func TestMongoRepository_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		repo := NewMongoRepository(mt.DB)
		got, err := repo.Create(context.Background(), &models.User{Nickname: "ANRUABCD", Rol: models.RoleOperador})
		require.NoError(t, err)
		assert.Len(t, got.ID, 24)
		assert.Equal(t, "ANRUABCD", got.Nickname)
	})

	mt.Run("duplicate nickname", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "E11000 duplicate key error",
		}))

		repo := NewMongoRepository(mt.DB)
		_, err := repo.Create(context.Background(), &models.User{Nickname: "ANRUABCD"})
		assert.ErrorIs(t, err, common.ErrorAlreadyExists)
	})
}

func TestMongoRepository_GetByNickname(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "nombre", Value: "Ana"},
			{Key: "nickname", Value: "ANRUABCD"},
			{Key: "rol", Value: "Operador"},
			{Key: "password", Value: "00ff:aa"},
		}))

		repo := NewMongoRepository(mt.DB)
		got, err := repo.GetByNickname(context.Background(), "ANRUABCD")
		require.NoError(t, err)
		assert.Equal(t, oid.Hex(), got.ID)
		assert.Equal(t, "Ana", got.Nombre)
		assert.Equal(t, models.RoleOperador, got.Rol)
		assert.Equal(t, "00ff:aa", got.PasswordHash)
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		repo := NewMongoRepository(mt.DB)
		_, err := repo.GetByNickname(context.Background(), "NOPE")
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})
}

func TestMongoRepository_ExistsByNicknameOrEmail(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("taken", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: 1}, {Key: "n", Value: int64(1)},
		}))

		repo := NewMongoRepository(mt.DB)
		ok, err := repo.ExistsByNicknameOrEmail(context.Background(), "ANRUABCD", "ana@example.com")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	mt.Run("free", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		repo := NewMongoRepository(mt.DB)
		ok, err := repo.ExistsByNicknameOrEmail(context.Background(), "ANRUABCD", "")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestMongoRepository_UpdateAndDelete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("update matched", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))
		repo := NewMongoRepository(mt.DB)
		assert.NoError(t, repo.Update(context.Background(), &models.User{Nickname: "ANRUABCD", Telefono: "555"}))
	})

	mt.Run("update missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))
		repo := NewMongoRepository(mt.DB)
		assert.ErrorIs(t, repo.Update(context.Background(), &models.User{Nickname: "NOPE"}), common.ErrorNotFound)
	})

	mt.Run("delete", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		repo := NewMongoRepository(mt.DB)
		assert.NoError(t, repo.Delete(context.Background(), "ANRUABCD"))
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		repo := NewMongoRepository(mt.DB)
		assert.ErrorIs(t, repo.Delete(context.Background(), "NOPE"), common.ErrorNotFound)
	})
}

func TestMongoRepository_Search(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes all", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "nickname", Value: "A"}, {Key: "rol", Value: "Supervisor"}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "nickname", Value: "B"}, {Key: "rol", Value: "Supervisor"}},
		))

		repo := NewMongoRepository(mt.DB)
		got, err := repo.Search(context.Background(), models.UserSearch{Rol: models.RoleSupervisor}, 0)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "A", got[0].Nickname)
		assert.Equal(t, "B", got[1].Nickname)
	})
}
