package settings

import (
	"context"
	"sync"

	"github.com/lacs/lacsapi/internal/common"
)

type MemoryRepository struct {
	mu     sync.Mutex
	secret string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) GetSecret(context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.secret == "" {
		return "", common.ErrorNotFound
	}
	return r.secret, nil
}

func (r *MemoryRepository) PutSecretIfAbsent(_ context.Context, candidate string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.secret == "" {
		r.secret = candidate
	}
	return r.secret, nil
}
