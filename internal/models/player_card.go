package models

import "time"

// PlayerCard is the single current aggregate of a player's derived stats.
// One row per player; it always reflects the metrics of the most recently
// completed AnalysisResult, ordered by completion timestamp rather than by
// arrival order at the database.
type PlayerCard struct {
	PlayerID         string    `json:"player_id" gorm:"type:text;primaryKey"`
	OverallRating    float64   `json:"overall_rating"`
	Speed            float64   `json:"speed"`
	Stamina          float64   `json:"stamina"`
	ShootingAccuracy float64   `json:"shooting_accuracy"`
	PassingAccuracy  float64   `json:"passing_accuracy"`
	Strength         float64   `json:"strength"`
	Dribbling        float64   `json:"dribbling"`
	LastUpdated      time.Time `json:"last_updated" gorm:"not null"`
}

// SetMetrics copies a completed analysis onto the card
func (c *PlayerCard) SetMetrics(m Metrics, completedAt time.Time) {
	c.OverallRating = m.OverallRating
	c.Speed = m.Speed
	c.Stamina = m.Stamina
	c.ShootingAccuracy = m.ShootingAccuracy
	c.PassingAccuracy = m.PassingAccuracy
	c.Strength = m.Strength
	c.Dribbling = m.Dribbling
	c.LastUpdated = completedAt
}

// Metrics returns the card's stats in payload form
func (c *PlayerCard) Metrics() Metrics {
	return Metrics{
		Speed:            c.Speed,
		Stamina:          c.Stamina,
		ShootingAccuracy: c.ShootingAccuracy,
		PassingAccuracy:  c.PassingAccuracy,
		Strength:         c.Strength,
		Dribbling:        c.Dribbling,
		OverallRating:    c.OverallRating,
	}
}

// TableName specifies the table name for GORM
func (PlayerCard) TableName() string {
	return "player_cards"
}
