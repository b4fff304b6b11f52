package admins

import (
	"context"
	"testing"

	"github.com/lacs/lacsapi/internal/common"
	"github.com/lacs/lacsapi/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	n, _ := r.Count(ctx)
	assert.Zero(t, n)

	_, err := r.Create(ctx, &models.Admin{Nickname: "ROOT", PasswordHash: "a"})
	require.NoError(t, err)
	_, err = r.Create(ctx, &models.Admin{Nickname: "ROOT"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	n, _ = r.Count(ctx)
	assert.EqualValues(t, 1, n)

	require.NoError(t, r.UpdatePassword(ctx, "ROOT", "b"))
	a, err := r.GetByNickname(ctx, "ROOT")
	require.NoError(t, err)
	assert.Equal(t, "b", a.PasswordHash)

	assert.ErrorIs(t, r.UpdatePassword(ctx, "NOPE", "c"), common.ErrorNotFound)
	_, err = r.GetByNickname(ctx, "NOPE")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
