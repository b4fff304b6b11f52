package users

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/lacs/lacsapi/internal/common"
	"github.com/lacs/lacsapi/internal/dbx"
	"github.com/lacs/lacsapi/internal/server/models"
)

// MemoryRepository keeps accounts in process memory.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]models.User // by nickname
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]models.User)}
}

func (r *MemoryRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.takenLocked(user.Nickname, user.Email) {
		return nil, common.ErrorAlreadyExists
	}
	u := *user
	u.ID = dbx.NewID()
	r.users[u.Nickname] = u

	out := u
	return &out, nil
}

func (r *MemoryRepository) GetByNickname(_ context.Context, nickname string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[nickname]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) ExistsByNicknameOrEmail(_ context.Context, nickname, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.takenLocked(nickname, email), nil
}

func (r *MemoryRepository) takenLocked(nickname, email string) bool {
	if _, ok := r.users[nickname]; ok {
		return true
	}
	if email == "" {
		return false
	}
	for _, u := range r.users {
		if u.Email == email {
			return true
		}
	}
	return false
}

func (r *MemoryRepository) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.users[user.Nickname]
	if !ok {
		return common.ErrorNotFound
	}
	if user.Email != "" {
		for nick, u := range r.users {
			if nick != user.Nickname && u.Email == user.Email {
				return common.ErrorAlreadyExists
			}
		}
	}
	u := *user
	u.ID = cur.ID
	r.users[u.Nickname] = u
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, nickname string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[nickname]; !ok {
		return common.ErrorNotFound
	}
	delete(r.users, nickname)
	return nil
}

func (r *MemoryRepository) Search(_ context.Context, c models.UserSearch, limit int) ([]*models.User, error) {
	if limit <= 0 || limit > DefaultSearchLimit {
		limit = DefaultSearchLimit
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.User, 0)
	for _, u := range r.users {
		if !matches(u, c) {
			continue
		}
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nickname < out[j].Nickname })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func matches(u models.User, c models.UserSearch) bool {
	if c.Nickname != "" && !containsFold(u.Nickname, c.Nickname) {
		return false
	}
	if c.Email != "" && !containsFold(u.Email, c.Email) {
		return false
	}
	if c.Empresa != "" && !containsFold(u.Empresa, c.Empresa) {
		return false
	}
	if c.Rol != "" && u.Rol != c.Rol {
		return false
	}
	if c.Nombre != "" && !containsFold(u.Nombre, c.Nombre) &&
		!containsFold(u.ApellidoPaterno, c.Nombre) && !containsFold(u.ApellidoMaterno, c.Nombre) {
		return false
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
