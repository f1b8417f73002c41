package videos

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/simeon-code254/matobev-apps/internal/models"
)

type service struct {
	repo Repository
}

// NewService creates a new video asset service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, video *models.VideoAsset) error {
	if video == nil {
		return errors.New("video cannot be nil")
	}
	if video.PlayerID == "" {
		return errors.New("video player id is required")
	}
	if video.StoragePath == "" {
		return errors.New("video storage path is required")
	}

	if err := s.repo.Create(ctx, video); err != nil {
		return err
	}

	log.Printf("[DEBUG] Registered video %s for player %s at %s", video.ID, video.PlayerID, video.StoragePath)
	return nil
}

func (s *service) SetStats(ctx context.Context, videoID string, metrics models.Metrics, analyzedAt time.Time) error {
	return s.repo.SetStatsOnce(ctx, videoID, metrics, analyzedAt)
}

func (s *service) GetVideo(ctx context.Context, id string) (*models.VideoAsset, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByPlayer(ctx context.Context, playerID string, limit int) ([]*models.VideoAsset, error) {
	return s.repo.ListByPlayer(ctx, playerID, limit)
}
