package playercards

import (
	"context"
	"errors"
	"fmt"

	"github.com/simeon-code254/matobev-apps/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrCardNotFound is returned when no card exists for a player
var ErrCardNotFound = errors.New("player card not found")

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new player card repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByPlayerID(ctx context.Context, playerID string) (*models.PlayerCard, error) {
	var card models.PlayerCard
	err := r.db.WithContext(ctx).First(&card, "player_id = ?", playerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("getting player card: %w", err)
	}
	return &card, nil
}

// UpsertIfNewer relies on a single conditional upsert so concurrent writers
// need no lock: the row's last_updated is the only arbiter.
func (r *repository) UpsertIfNewer(ctx context.Context, card *models.PlayerCard) (bool, error) {
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "player_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"overall_rating":    card.OverallRating,
			"speed":             card.Speed,
			"stamina":           card.Stamina,
			"shooting_accuracy": card.ShootingAccuracy,
			"passing_accuracy":  card.PassingAccuracy,
			"strength":          card.Strength,
			"dribbling":         card.Dribbling,
			"last_updated":      card.LastUpdated,
		}),
		Where: clause.Where{
			Exprs: []clause.Expression{
				clause.Lt{
					Column: clause.Column{Table: "player_cards", Name: "last_updated"},
					Value:  card.LastUpdated,
				},
			},
		},
	}).Create(card)

	if result.Error != nil {
		return false, fmt.Errorf("upserting player card: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}
