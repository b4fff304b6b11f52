package repomanager

import (
	"context"

	"github.com/lacs/lacsapi/internal/server/auth"
	"github.com/lacs/lacsapi/internal/server/repositories/admins"
	"github.com/lacs/lacsapi/internal/server/repositories/locations"
	"github.com/lacs/lacsapi/internal/server/repositories/trabajadores"
	"github.com/lacs/lacsapi/internal/server/repositories/users"
)

// RepositoryManager hands out the repositories of one storage backend.
type RepositoryManager interface {
	// EnsureIndexes creates account and worker indexes. Location indexes
	// are created by the importer after each load.
	EnsureIndexes(ctx context.Context) error
	Users() users.Repository
	Admins() admins.Repository
	Trabajadores() trabajadores.Repository
	Locations() locations.Repository
	Secrets() auth.SecretStore
	Close(ctx context.Context) error
}
