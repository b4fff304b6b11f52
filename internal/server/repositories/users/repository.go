// Package users stores regular user accounts.
package users

import (
	"context"

	"github.com/lacs/lacsapi/internal/server/models"
)

// DefaultSearchLimit caps Search results.
const DefaultSearchLimit = 50

type Repository interface {
	// Create inserts user and returns it with ID set. A taken nickname or
	// email yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetByNickname returns common.ErrorNotFound when absent.
	GetByNickname(ctx context.Context, nickname string) (*models.User, error)
	// ExistsByNicknameOrEmail reports whether either value is taken. An
	// empty email is ignored.
	ExistsByNicknameOrEmail(ctx context.Context, nickname, email string) (bool, error)
	// Update replaces the stored account matching user.Nickname.
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, nickname string) error
	Search(ctx context.Context, criteria models.UserSearch, limit int) ([]*models.User, error)
}
