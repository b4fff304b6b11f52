package models

// Admin is an administrator account, stored apart from regular users.
type Admin struct {
	ID              string `json:"id"`
	Nickname        string `json:"nickname"`
	Nombre          string `json:"nombre"`
	ApellidoPaterno string `json:"apellido_paterno"`
	ApellidoMaterno string `json:"apellido_materno"`
	PasswordHash    string `json:"-"`
}
