// Package admins stores administrator accounts.
package admins

import (
	"context"

	"github.com/lacs/lacsapi/internal/server/models"
)

type Repository interface {
	// Create inserts admin and returns it with ID set. A taken nickname
	// yields common.ErrorAlreadyExists.
	Create(ctx context.Context, admin *models.Admin) (*models.Admin, error)
	// GetByNickname returns common.ErrorNotFound when absent.
	GetByNickname(ctx context.Context, nickname string) (*models.Admin, error)
	Count(ctx context.Context) (int64, error)
	UpdatePassword(ctx context.Context, nickname, passwordHash string) error
}
