package users

import (
	"context"

	"github.com/dmitrijs2005/triviaquiz/internal/server/models"
)

// Repository stores user accounts. Lookups that find nothing return
// common.ErrorNotFound; an email collision on write returns
// common.ErrEmailAlreadyRegistered.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// ExistsByEmail reports whether another user (not excludeID) holds email.
	ExistsByEmail(ctx context.Context, email string, excludeID string) (bool, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id string) error
}
