package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/lacs/lacsapi/internal/common"
	"github.com/lacs/lacsapi/internal/cryptox"
	"github.com/lacs/lacsapi/internal/logging"
)

// SecretStore persists the signing secret.
type SecretStore interface {
	// GetSecret returns common.ErrorNotFound when no secret was stored yet.
	GetSecret(ctx context.Context) (string, error)
	// PutSecretIfAbsent stores candidate unless a secret exists and returns
	// whichever value is persisted afterwards.
	PutSecretIfAbsent(ctx context.Context, candidate string) (string, error)
}

// SecretKeeper caches the server secret for the process lifetime. It is
// created once at startup and passed to every component that signs or
// verifies tokens.
type SecretKeeper struct {
	store  SecretStore
	logger logging.Logger

	mu  sync.Mutex
	key []byte
}

func NewSecretKeeper(store SecretStore, logger logging.Logger) *SecretKeeper {
	return &SecretKeeper{store: store, logger: logger.With("module", "secret_keeper")}
}

// Ensure loads the persisted secret, generating and storing one on first
// deployment. Calling it again is a no-op.
func (k *SecretKeeper) Ensure(ctx context.Context) error {
	_, err := k.Key(ctx)
	return err
}

// Key returns the cached secret, loading it on first use.
func (k *SecretKeeper) Key(ctx context.Context) ([]byte, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.key != nil {
		return k.key, nil
	}

	secret, err := k.store.GetSecret(ctx)
	switch {
	case err == nil:
		k.logger.Info(ctx, "server secret loaded")
	case errors.Is(err, common.ErrorNotFound):
		candidate, genErr := cryptox.NewServerSecret()
		if genErr != nil {
			return nil, fmt.Errorf("generate server secret: %w", genErr)
		}
		secret, err = k.store.PutSecretIfAbsent(ctx, candidate)
		if err != nil {
			return nil, fmt.Errorf("store server secret: %w", err)
		}
		k.logger.Info(ctx, "server secret initialized", "generated", secret == candidate)
	default:
		return nil, fmt.Errorf("read server secret: %w", err)
	}

	k.key = []byte(secret)
	return k.key, nil
}
