package repomanager

import (
	"context"
	"fmt"

	"github.com/lacs/lacsapi/internal/dbx"
	"github.com/lacs/lacsapi/internal/server/auth"
	"github.com/lacs/lacsapi/internal/server/repositories/admins"
	"github.com/lacs/lacsapi/internal/server/repositories/locations"
	"github.com/lacs/lacsapi/internal/server/repositories/settings"
	"github.com/lacs/lacsapi/internal/server/repositories/trabajadores"
	"github.com/lacs/lacsapi/internal/server/repositories/users"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoRepositoryManager struct {
	client       *mongo.Client
	users        *users.MongoRepository
	admins       *admins.MongoRepository
	trabajadores *trabajadores.MongoRepository
	locations    *locations.MongoRepository
	settings     *settings.MongoRepository
}

// NewMongoRepositoryManager connects to uri and binds every repository to
// database dbName.
func NewMongoRepositoryManager(ctx context.Context, uri, dbName string) (*MongoRepositoryManager, error) {
	client, err := dbx.Connect(ctx, uri)
	if err != nil {
		return nil, err
	}
	m := newMongoRepositoryManager(client.Database(dbName))
	m.client = client
	return m, nil
}

func newMongoRepositoryManager(db *mongo.Database) *MongoRepositoryManager {
	return &MongoRepositoryManager{
		users:        users.NewMongoRepository(db),
		admins:       admins.NewMongoRepository(db),
		trabajadores: trabajadores.NewMongoRepository(db),
		locations:    locations.NewMongoRepository(db),
		settings:     settings.NewMongoRepository(db),
	}
}

func (m *MongoRepositoryManager) EnsureIndexes(ctx context.Context) error {
	for name, fn := range map[string]func(context.Context) error{
		"users":        m.users.EnsureIndexes,
		"admins":       m.admins.EnsureIndexes,
		"trabajadores": m.trabajadores.EnsureIndexes,
	} {
		if err := fn(ctx); err != nil {
			return fmt.Errorf("ensure %s indexes: %w", name, err)
		}
	}
	return nil
}

func (m *MongoRepositoryManager) Users() users.Repository               { return m.users }
func (m *MongoRepositoryManager) Admins() admins.Repository             { return m.admins }
func (m *MongoRepositoryManager) Trabajadores() trabajadores.Repository { return m.trabajadores }
func (m *MongoRepositoryManager) Locations() locations.Repository       { return m.locations }
func (m *MongoRepositoryManager) Secrets() auth.SecretStore             { return m.settings }

func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	return m.client.Disconnect(ctx)
}
