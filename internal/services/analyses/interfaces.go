package analyses

import (
	"context"
	"time"

	"github.com/simeon-code254/matobev-apps/internal/models"
)

// ListOptions filters analysis history queries
type ListOptions struct {
	Since time.Time
	Until time.Time
	Limit int
}

// Service defines the business logic interface for analysis results. The
// history is append-only: results are recorded, never mutated or deleted.
type Service interface {
	Record(ctx context.Context, result *models.AnalysisResult) error
	GetResult(ctx context.Context, id string) (*models.AnalysisResult, error)
	ListByPlayer(ctx context.Context, playerID string, opts ListOptions) ([]*models.AnalysisResult, error)
	ListByVideo(ctx context.Context, videoID string) ([]*models.AnalysisResult, error)
}

// Repository defines the interface for analysis result persistence
type Repository interface {
	Create(ctx context.Context, result *models.AnalysisResult) error
	GetByID(ctx context.Context, id string) (*models.AnalysisResult, error)
	ListByPlayer(ctx context.Context, playerID string, opts ListOptions) ([]*models.AnalysisResult, error)
	ListByVideo(ctx context.Context, videoID string) ([]*models.AnalysisResult, error)
}
