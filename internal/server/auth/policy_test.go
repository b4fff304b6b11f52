package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lacs/lacsapi/internal/common"
	"github.com/lacs/lacsapi/internal/server/models"
	"github.com/stretchr/testify/assert"
)

func claimsFor(sub string, rol models.Role, tipo Kind) *Claims {
	return &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: sub}, Rol: rol, Tipo: tipo}
}

func TestIsManager(t *testing.T) {
	tests := []struct {
		name   string
		claims *Claims
		want   bool
	}{
		{"admin token", claimsFor("root", models.RoleAdministrador, KindAdmin), true},
		{"administrador user", claimsFor("u", models.RoleAdministrador, KindUser), true},
		{"dev user", claimsFor("u", models.RoleDev, KindUser), true},
		{"supervisor", claimsFor("u", models.RoleSupervisor, KindUser), false},
		{"empleado", claimsFor("u", models.RoleEmpleado, KindUser), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsManager(tt.claims))
		})
	}
}

func TestRequireAnyRole(t *testing.T) {
	assert.NoError(t, RequireAnyRole(claimsFor("u", models.RoleSupervisor, KindUser), models.RoleSupervisor))
	assert.NoError(t, RequireAnyRole(claimsFor("a", models.RoleAdministrador, KindAdmin), models.RoleSupervisor))
	assert.ErrorIs(t, RequireAnyRole(claimsFor("u", models.RoleOperador, KindUser), models.RoleSupervisor), common.ErrorForbidden)
	assert.ErrorIs(t, RequireAnyRole(nil), common.ErrorForbidden)
}

func TestRequireSelfOrManager(t *testing.T) {
	self := claimsFor("ANRUABCD", models.RoleEmpleado, KindUser)
	assert.NoError(t, RequireSelfOrManager(self, "ANRUABCD"))
	assert.ErrorIs(t, RequireSelfOrManager(self, "OTHER"), common.ErrorForbidden)
	assert.NoError(t, RequireSelfOrManager(claimsFor("root", models.RoleAdministrador, KindAdmin), "OTHER"))

	assert.NoError(t, RequireManager(claimsFor("x", "", KindAdmin)))
	assert.ErrorIs(t, RequireManager(self), common.ErrorForbidden)
}
