package analyses

import (
	"context"
	"errors"
	"log"

	"github.com/simeon-code254/matobev-apps/internal/models"
)

type service struct {
	repo Repository
}

// NewService creates a new analysis result service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Record(ctx context.Context, result *models.AnalysisResult) error {
	if result == nil {
		return errors.New("analysis result cannot be nil")
	}
	if result.VideoID == "" || result.PlayerID == "" {
		return errors.New("analysis result requires video and player ids")
	}
	if result.CompletedAt.IsZero() {
		return errors.New("analysis result requires a completion timestamp")
	}

	if err := s.repo.Create(ctx, result); err != nil {
		return err
	}

	log.Printf("[DEBUG] Recorded analysis %s for video %s (overall %.1f)", result.ID, result.VideoID, result.Metrics.OverallRating)
	return nil
}

func (s *service) GetResult(ctx context.Context, id string) (*models.AnalysisResult, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByPlayer(ctx context.Context, playerID string, opts ListOptions) ([]*models.AnalysisResult, error) {
	return s.repo.ListByPlayer(ctx, playerID, opts)
}

func (s *service) ListByVideo(ctx context.Context, videoID string) ([]*models.AnalysisResult, error) {
	return s.repo.ListByVideo(ctx, videoID)
}
