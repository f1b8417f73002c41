package videos

import (
	"context"
	"time"

	"github.com/simeon-code254/matobev-apps/internal/models"
)

// Service defines the business logic interface for video asset operations
type Service interface {
	// Register persists the metadata row for an uploaded blob
	Register(ctx context.Context, video *models.VideoAsset) error

	// SetStats writes the derived metrics blob. A video's stats are written
	// at most once; a second write for the same video is rejected.
	SetStats(ctx context.Context, videoID string, metrics models.Metrics, analyzedAt time.Time) error

	GetVideo(ctx context.Context, id string) (*models.VideoAsset, error)
	ListByPlayer(ctx context.Context, playerID string, limit int) ([]*models.VideoAsset, error)
}

// Repository defines the interface for video asset persistence
type Repository interface {
	Create(ctx context.Context, video *models.VideoAsset) error
	GetByID(ctx context.Context, id string) (*models.VideoAsset, error)
	ListByPlayer(ctx context.Context, playerID string, limit int) ([]*models.VideoAsset, error)
	SetStatsOnce(ctx context.Context, videoID string, metrics models.Metrics, analyzedAt time.Time) error
}
