package profiles

import (
	"context"
	"errors"
	"fmt"

	"github.com/simeon-code254/matobev-apps/internal/models"
	"gorm.io/gorm"
)

// ErrProfileNotFound is returned when no profile exists for an id
var ErrProfileNotFound = errors.New("profile not found")

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new profile repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("getting profile: %w", err)
	}
	return &profile, nil
}

func (r *repository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking profile existence: %w", err)
	}
	return count > 0, nil
}

func (r *repository) Create(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}
