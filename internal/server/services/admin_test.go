package services

import (
	"context"
	"sync"
	"testing"

	"github.com/lacs/lacsapi/internal/common"
	"github.com/lacs/lacsapi/internal/logging"
	"github.com/lacs/lacsapi/internal/server/auth"
	"github.com/lacs/lacsapi/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdminService(t *testing.T) (*AdminService, *UserService) {
	t.Helper()
	users, m := newTestUserService(t)
	return NewAdminService(m, users, users.issuer, nil, logging.Nop{}), users
}

var rootNames = Names{Nombre: "Rosa", ApellidoPaterno: "Ortiz", ApellidoMaterno: "Díaz"}

func TestAdminService_CreateFirstAdminOnce(t *testing.T) {
	svc, _ := newTestAdminService(t)
	ctx := context.Background()

	first, err := svc.CreateFirstAdmin(ctx, rootNames)
	require.NoError(t, err)
	assert.Equal(t, first.Admin.Nickname, first.Credentials.Nickname)
	assert.Regexp(t, `^ROORDÍ[A-Z]{4}$`, first.Admin.Nickname)

	_, err = svc.CreateFirstAdmin(ctx, rootNames)
	assert.ErrorIs(t, err, common.ErrorForbidden)

	_, err = svc.CreateFirstAdmin(ctx, Names{Nombre: "x"})
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestAdminService_CreateFirstAdminConcurrent(t *testing.T) {
	svc, _ := newTestAdminService(t)
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.CreateFirstAdmin(ctx, rootNames); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, created)
}

func TestAdminService_Login(t *testing.T) {
	svc, _ := newTestAdminService(t)
	ctx := context.Background()

	first, err := svc.CreateFirstAdmin(ctx, rootNames)
	require.NoError(t, err)

	res, err := svc.Login(ctx, first.Credentials.Nickname, first.Credentials.Password)
	require.NoError(t, err)
	assert.Equal(t, auth.KindAdmin, res.UserType)
	require.NotNil(t, res.Admin)
	assert.Nil(t, res.User)

	claims, err := svc.issuer.Verify(ctx, res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, auth.KindAdmin, claims.Tipo)
	assert.Equal(t, models.RoleAdministrador, claims.Rol)
	assert.True(t, auth.IsManager(claims))

	_, err = svc.Login(ctx, first.Credentials.Nickname, "wrong")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	_, err = svc.Login(ctx, "ghost", "wrong")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestAdminService_CreateUser(t *testing.T) {
	svc, users := newTestAdminService(t)
	ctx := context.Background()

	first, err := svc.CreateFirstAdmin(ctx, rootNames)
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, "ghost", "pw", newUserInput())
	assert.ErrorIs(t, err, common.ErrorForbidden)

	_, err = svc.CreateUser(ctx, first.Credentials.Nickname, "wrong", newUserInput())
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	out, err := svc.CreateUser(ctx, first.Credentials.Nickname, first.Credentials.Password, newUserInput())
	require.NoError(t, err)
	require.NotNil(t, out.Credentials)

	_, err = users.Login(ctx, out.Credentials.Nickname, out.Credentials.Password)
	assert.NoError(t, err)
}

func TestAdminService_GenerateCredentials(t *testing.T) {
	svc, _ := newTestAdminService(t)
	ctx := context.Background()

	_, err := svc.GenerateCredentials(ctx, userCaller("op", models.RoleOperador), rootNames)
	assert.ErrorIs(t, err, common.ErrorForbidden)

	creds, err := svc.GenerateCredentials(ctx, adminCaller(), rootNames)
	require.NoError(t, err)
	assert.NotEmpty(t, creds.Nickname)
	assert.NotEmpty(t, creds.Password)

	n, err := svc.repomanager.Admins().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "preview stores nothing")
}

func TestAdminService_SetPassword(t *testing.T) {
	svc, _ := newTestAdminService(t)
	ctx := context.Background()

	first, err := svc.CreateFirstAdmin(ctx, rootNames)
	require.NoError(t, err)
	nick := first.Admin.Nickname

	assert.ErrorIs(t, svc.SetPassword(ctx, nick, "short"), common.ErrorValidation)
	assert.ErrorIs(t, svc.SetPassword(ctx, "ghost", "long-enough"), common.ErrorNotFound)

	require.NoError(t, svc.SetPassword(ctx, nick, "long-enough"))
	_, err = svc.Login(ctx, nick, "long-enough")
	assert.NoError(t, err)
}
