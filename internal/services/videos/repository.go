package videos

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/simeon-code254/matobev-apps/internal/models"
	"gorm.io/gorm"
)

// Repository errors
var (
	ErrVideoNotFound   = errors.New("video not found")
	ErrDuplicatePath   = errors.New("storage path already registered")
	ErrStatsAlreadySet = errors.New("video stats already set")
)

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new video asset repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, video *models.VideoAsset) error {
	if err := r.db.WithContext(ctx).Create(video).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicatePath
		}
		return fmt.Errorf("creating video: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*models.VideoAsset, error) {
	var video models.VideoAsset
	err := r.db.WithContext(ctx).First(&video, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("getting video: %w", err)
	}
	return &video, nil
}

func (r *repository) ListByPlayer(ctx context.Context, playerID string, limit int) ([]*models.VideoAsset, error) {
	var list []*models.VideoAsset
	query := r.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("listing videos: %w", err)
	}
	return list, nil
}

// SetStatsOnce writes derived metrics only when none exist yet, keeping the
// blob immutable after the first completed analysis.
func (r *repository) SetStatsOnce(ctx context.Context, videoID string, metrics models.Metrics, analyzedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.VideoAsset{}).
		Where("id = ? AND stats IS NULL", videoID).
		Updates(map[string]interface{}{
			"stats":       metrics,
			"analyzed_at": &analyzedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("setting video stats: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		// Either the row is missing or stats were already written
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.VideoAsset{}).Where("id = ?", videoID).Count(&count).Error; err != nil {
			return fmt.Errorf("checking video existence: %w", err)
		}
		if count == 0 {
			return ErrVideoNotFound
		}
		return ErrStatsAlreadySet
	}

	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
