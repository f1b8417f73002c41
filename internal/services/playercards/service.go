package playercards

import (
	"context"
	"errors"
	"log"

	"github.com/simeon-code254/matobev-apps/internal/models"
)

type service struct {
	repo Repository
}

// NewService creates a new player card projection service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Apply folds one completed analysis into the projection. Last-writer-wins
// is decided by completion timestamp, not by arrival order, so a slow run
// finishing late with an old result is skipped rather than overwriting.
func (s *service) Apply(ctx context.Context, result *models.AnalysisResult) (ApplyOutcome, *models.PlayerCard, error) {
	if result == nil {
		return OutcomeSkipped, nil, errors.New("analysis result cannot be nil")
	}
	if result.PlayerID == "" {
		return OutcomeSkipped, nil, errors.New("analysis result requires a player id")
	}
	if result.CompletedAt.IsZero() {
		return OutcomeSkipped, nil, errors.New("analysis result requires a completion timestamp")
	}

	card := &models.PlayerCard{PlayerID: result.PlayerID}
	card.SetMetrics(result.Metrics, result.CompletedAt)

	updated, err := s.repo.UpsertIfNewer(ctx, card)
	if err != nil {
		return OutcomeSkipped, nil, err
	}

	if !updated {
		log.Printf("[DEBUG] Skipped stale card write for player %s (completed %s)", result.PlayerID, result.CompletedAt.Format("2006-01-02T15:04:05Z07:00"))
		// Return the winning row so callers can still render current state
		current, getErr := s.repo.GetByPlayerID(ctx, result.PlayerID)
		if getErr != nil {
			return OutcomeSkipped, nil, nil
		}
		return OutcomeSkipped, current, nil
	}

	log.Printf("[DEBUG] Updated player card for %s (overall %.1f)", result.PlayerID, card.OverallRating)
	return OutcomeUpdated, card, nil
}

func (s *service) GetCard(ctx context.Context, playerID string) (*models.PlayerCard, error) {
	return s.repo.GetByPlayerID(ctx, playerID)
}
