package analyses

import (
	"context"
	"errors"
	"fmt"

	"github.com/simeon-code254/matobev-apps/internal/models"
	"gorm.io/gorm"
)

// ErrResultNotFound is returned when no analysis result exists for an id
var ErrResultNotFound = errors.New("analysis result not found")

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new analysis result repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, result *models.AnalysisResult) error {
	if err := r.db.WithContext(ctx).Create(result).Error; err != nil {
		return fmt.Errorf("creating analysis result: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*models.AnalysisResult, error) {
	var result models.AnalysisResult
	err := r.db.WithContext(ctx).First(&result, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("getting analysis result: %w", err)
	}
	return &result, nil
}

func (r *repository) ListByPlayer(ctx context.Context, playerID string, opts ListOptions) ([]*models.AnalysisResult, error) {
	query := r.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("completed_at DESC")

	if !opts.Since.IsZero() {
		query = query.Where("completed_at >= ?", opts.Since)
	}
	if !opts.Until.IsZero() {
		query = query.Where("completed_at <= ?", opts.Until)
	}
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}

	var list []*models.AnalysisResult
	if err := query.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("listing analysis results: %w", err)
	}
	return list, nil
}

func (r *repository) ListByVideo(ctx context.Context, videoID string) ([]*models.AnalysisResult, error) {
	var list []*models.AnalysisResult
	err := r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Order("completed_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("listing analysis results for video: %w", err)
	}
	return list, nil
}
