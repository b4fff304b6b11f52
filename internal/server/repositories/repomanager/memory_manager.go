package repomanager

import (
	"context"

	"github.com/lacs/lacsapi/internal/server/auth"
	"github.com/lacs/lacsapi/internal/server/repositories/admins"
	"github.com/lacs/lacsapi/internal/server/repositories/locations"
	"github.com/lacs/lacsapi/internal/server/repositories/settings"
	"github.com/lacs/lacsapi/internal/server/repositories/trabajadores"
	"github.com/lacs/lacsapi/internal/server/repositories/users"
)

// InMemoryRepositoryManager keeps everything in process memory.
type InMemoryRepositoryManager struct {
	users        *users.MemoryRepository
	admins       *admins.MemoryRepository
	trabajadores *trabajadores.MemoryRepository
	locations    *locations.MemoryRepository
	settings     *settings.MemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:        users.NewMemoryRepository(),
		admins:       admins.NewMemoryRepository(),
		trabajadores: trabajadores.NewMemoryRepository(),
		locations:    locations.NewMemoryRepository(),
		settings:     settings.NewMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) EnsureIndexes(context.Context) error { return nil }

func (m *InMemoryRepositoryManager) Users() users.Repository               { return m.users }
func (m *InMemoryRepositoryManager) Admins() admins.Repository             { return m.admins }
func (m *InMemoryRepositoryManager) Trabajadores() trabajadores.Repository { return m.trabajadores }
func (m *InMemoryRepositoryManager) Locations() locations.Repository       { return m.locations }
func (m *InMemoryRepositoryManager) Secrets() auth.SecretStore             { return m.settings }

func (m *InMemoryRepositoryManager) Close(context.Context) error { return nil }
