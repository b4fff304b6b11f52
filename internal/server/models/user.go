// Package models holds the typed records exchanged between repositories,
// services and the HTTP layer.
package models

import (
	"fmt"
	"strings"

	"github.com/lacs/lacsapi/internal/common"
)

// Role is the access level of a user account.
type Role string

const (
	RoleAdministrador Role = "Administrador"
	RoleInspector     Role = "Inspector"
	RoleSupervisor    Role = "Supervisor"
	RoleOperador      Role = "Operador"
	RoleEmpleado      Role = "Empleado"
	RoleDev           Role = "Dev"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleAdministrador, RoleInspector, RoleSupervisor, RoleOperador, RoleEmpleado, RoleDev}

// Valid reports whether r is one of Roles.
func (r Role) Valid() bool {
	for _, v := range Roles {
		if r == v {
			return true
		}
	}
	return false
}

// User is a regular account. PasswordHash is never serialized to clients.
type User struct {
	ID              string `json:"id"`
	Nombre          string `json:"nombre"`
	ApellidoPaterno string `json:"apellido_paterno"`
	ApellidoMaterno string `json:"apellido_materno"`
	Nickname        string `json:"nickname"`
	Email           string `json:"email,omitempty"`
	Telefono        string `json:"telefono,omitempty"`
	Empresa         string `json:"empresa,omitempty"`
	Rol             Role   `json:"rol"`
	PasswordHash    string `json:"-"`
}

// NewUser is the input for account creation. Nickname and Password are
// generated when empty.
type NewUser struct {
	Nombre          string `json:"nombre"`
	ApellidoPaterno string `json:"apellido_paterno"`
	ApellidoMaterno string `json:"apellido_materno"`
	Nickname        string `json:"nickname,omitempty"`
	Password        string `json:"password,omitempty"`
	Email           string `json:"email,omitempty"`
	Telefono        string `json:"telefono,omitempty"`
	Empresa         string `json:"empresa,omitempty"`
	Rol             Role   `json:"rol"`
}

// Validate checks required names and the role.
func (u *NewUser) Validate() error {
	if strings.TrimSpace(u.Nombre) == "" || strings.TrimSpace(u.ApellidoPaterno) == "" {
		return fmt.Errorf("%w: nombre and apellido_paterno are required", common.ErrorValidation)
	}
	if !u.Rol.Valid() {
		return fmt.Errorf("%w: invalid rol %q", common.ErrorValidation, u.Rol)
	}
	return nil
}

// UserUpdate carries the fields an administrator may change. Nil means
// unchanged.
type UserUpdate struct {
	Nombre          *string `json:"nombre,omitempty"`
	ApellidoPaterno *string `json:"apellido_paterno,omitempty"`
	ApellidoMaterno *string `json:"apellido_materno,omitempty"`
	Email           *string `json:"email,omitempty"`
	Telefono        *string `json:"telefono,omitempty"`
	Empresa         *string `json:"empresa,omitempty"`
	Rol             *Role   `json:"rol,omitempty"`
}

// Empty reports whether no field is set.
func (u *UserUpdate) Empty() bool {
	return u.Nombre == nil && u.ApellidoPaterno == nil && u.ApellidoMaterno == nil &&
		u.Email == nil && u.Telefono == nil && u.Empresa == nil && u.Rol == nil
}

// Apply copies the set fields onto user.
func (u *UserUpdate) Apply(user *User) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&user.Nombre, u.Nombre)
	set(&user.ApellidoPaterno, u.ApellidoPaterno)
	set(&user.ApellidoMaterno, u.ApellidoMaterno)
	set(&user.Email, u.Email)
	set(&user.Telefono, u.Telefono)
	set(&user.Empresa, u.Empresa)
	if u.Rol != nil {
		user.Rol = *u.Rol
	}
}

// UserSearch holds optional search criteria; string fields match as
// case-insensitive substrings, Rol matches exactly.
type UserSearch struct {
	Nickname string
	Email    string
	Nombre   string
	Empresa  string
	Rol      Role
}

// Empty reports whether no criterion is set.
func (s UserSearch) Empty() bool {
	return s.Nickname == "" && s.Email == "" && s.Nombre == "" && s.Empresa == "" && s.Rol == ""
}
