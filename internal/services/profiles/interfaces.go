package profiles

import (
	"context"

	"github.com/simeon-code254/matobev-apps/internal/models"
)

// Service defines the business logic interface for profile operations
type Service interface {
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	Exists(ctx context.Context, id string) (bool, error)
}

// Repository defines the interface for profile persistence
type Repository interface {
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, profile *models.Profile) error
}
