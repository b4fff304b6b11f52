package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lacs/lacsapi/internal/logging"
	"github.com/lacs/lacsapi/internal/server/auth"
	"github.com/lacs/lacsapi/internal/server/models"
	"github.com/lacs/lacsapi/internal/server/repositories/repomanager"
	"github.com/lacs/lacsapi/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

func newTestIssuer(t *testing.T, m repomanager.RepositoryManager) *auth.Issuer {
	t.Helper()
	keeper := auth.NewSecretKeeper(m.Secrets(), logging.Nop{})
	require.NoError(t, keeper.Ensure(context.Background()))
	return auth.NewIssuer(keeper, time.Hour)
}

func newTestUserService(t *testing.T) (*UserService, *repomanager.InMemoryRepositoryManager) {
	t.Helper()
	m := repomanager.NewInMemoryRepositoryManager()
	return NewUserService(m, newTestIssuer(t, m), nil, logging.Nop{}), m
}

func adminCaller() *auth.Claims {
	return &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "ROOT"},
		Rol:              models.RoleAdministrador,
		Tipo:             auth.KindAdmin,
	}
}

func userCaller(nickname string, rol models.Role) *auth.Claims {
	return &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: nickname},
		Rol:              rol,
		Tipo:             auth.KindUser,
	}
}

// fakeManager swaps the users repository of an in-memory manager.
type fakeManager struct {
	*repomanager.InMemoryRepositoryManager
	users users.Repository
}

func (f *fakeManager) Users() users.Repository { return f.users }

type fakeUsersRepo struct {
	users.Repository

	getOut *models.User
	getErr error

	existsOut bool
	existsErr error
}

func (f *fakeUsersRepo) GetByNickname(context.Context, string) (*models.User, error) {
	return f.getOut, f.getErr
}

func (f *fakeUsersRepo) ExistsByNicknameOrEmail(context.Context, string, string) (bool, error) {
	return f.existsOut, f.existsErr
}
