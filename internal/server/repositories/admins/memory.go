package admins

import (
	"context"
	"sync"

	"github.com/lacs/lacsapi/internal/common"
	"github.com/lacs/lacsapi/internal/dbx"
	"github.com/lacs/lacsapi/internal/server/models"
)

type MemoryRepository struct {
	mu     sync.RWMutex
	admins map[string]models.Admin
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{admins: make(map[string]models.Admin)}
}

func (r *MemoryRepository) Create(_ context.Context, admin *models.Admin) (*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.admins[admin.Nickname]; ok {
		return nil, common.ErrorAlreadyExists
	}
	a := *admin
	a.ID = dbx.NewID()
	r.admins[a.Nickname] = a

	out := a
	return &out, nil
}

func (r *MemoryRepository) GetByNickname(_ context.Context, nickname string) (*models.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.admins[nickname]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &a, nil
}

func (r *MemoryRepository) Count(context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.admins)), nil
}

func (r *MemoryRepository) UpdatePassword(_ context.Context, nickname, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.admins[nickname]
	if !ok {
		return common.ErrorNotFound
	}
	a.PasswordHash = passwordHash
	r.admins[nickname] = a
	return nil
}
