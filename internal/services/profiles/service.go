package profiles

import (
	"context"

	"github.com/simeon-code254/matobev-apps/internal/models"
)

type service struct {
	repo Repository
}

// NewService creates a new profile service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Exists(ctx context.Context, id string) (bool, error) {
	return s.repo.Exists(ctx, id)
}
