package users

import (
	"context"

	"github.com/forwardtrading/authsvc/internal/server/models"
)

// Repository is the user directory contract. Implementations must surface a
// uniqueness violation (common.ErrorAlreadyExists) distinctly from
// common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	LoginExists(ctx context.Context, login string) (bool, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByLoginWithHash(ctx context.Context, login string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	SetEmailVerified(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error
}
