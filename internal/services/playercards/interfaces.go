package playercards

import (
	"context"

	"github.com/simeon-code254/matobev-apps/internal/models"
)

// ApplyOutcome reports what a projection write did
type ApplyOutcome string

const (
	// OutcomeUpdated means the card now reflects the given analysis
	OutcomeUpdated ApplyOutcome = "updated"
	// OutcomeSkipped means the card already reflects a newer analysis
	OutcomeSkipped ApplyOutcome = "skipped"
)

// Service maintains the player-card projection. Apply is idempotent: an
// analysis older than the card's last update never regresses the card and
// never errors.
type Service interface {
	Apply(ctx context.Context, result *models.AnalysisResult) (ApplyOutcome, *models.PlayerCard, error)
	GetCard(ctx context.Context, playerID string) (*models.PlayerCard, error)
}

// Repository defines the interface for player card persistence
type Repository interface {
	GetByPlayerID(ctx context.Context, playerID string) (*models.PlayerCard, error)
	// UpsertIfNewer atomically inserts the card or overwrites an existing
	// row whose last_updated is strictly older. Returns false when the
	// existing row won.
	UpsertIfNewer(ctx context.Context, card *models.PlayerCard) (bool, error)
}
