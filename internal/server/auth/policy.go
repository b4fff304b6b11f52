package auth

import (
	"fmt"

	"github.com/lacs/lacsapi/internal/common"
	"github.com/lacs/lacsapi/internal/server/models"
)

// IsManager reports whether the caller may administer accounts and data
// loads: any admin token, or a user with the Administrador or Dev role.
func IsManager(c *Claims) bool {
	if c == nil {
		return false
	}
	return c.Tipo == KindAdmin || c.Rol == models.RoleAdministrador || c.Rol == models.RoleDev
}

// RequireManager returns common.ErrorForbidden unless IsManager.
func RequireManager(c *Claims) error {
	if !IsManager(c) {
		return fmt.Errorf("%w: administrator role required", common.ErrorForbidden)
	}
	return nil
}

// RequireAnyRole admits managers and users holding one of roles.
func RequireAnyRole(c *Claims, roles ...models.Role) error {
	if IsManager(c) {
		return nil
	}
	if c != nil {
		for _, r := range roles {
			if c.Rol == r {
				return nil
			}
		}
	}
	return fmt.Errorf("%w: role not allowed", common.ErrorForbidden)
}

// RequireSelfOrManager admits the owner of nickname and managers.
func RequireSelfOrManager(c *Claims, nickname string) error {
	if IsManager(c) {
		return nil
	}
	if c != nil && c.Tipo == KindUser && c.Subject == nickname {
		return nil
	}
	return fmt.Errorf("%w: cannot act on another account", common.ErrorForbidden)
}
