package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VideoAsset represents an uploaded video and its storage location.
// The storage path is unique and immutable once the row exists; Stats stays
// null until an analysis completes and is written exactly once per completed
// analysis.
type VideoAsset struct {
	ID          string     `json:"id" gorm:"type:text;primaryKey"`
	PlayerID    string     `json:"player_id" gorm:"type:text;not null;index"`
	StoragePath string     `json:"storage_path" gorm:"uniqueIndex;not null"`
	Title       string     `json:"title"`
	Description string     `json:"description" gorm:"type:text"`
	Stats       *Metrics   `json:"stats,omitempty" gorm:"type:json"`
	AnalyzedAt  *time.Time `json:"analyzed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// BeforeCreate assigns the row id on insert
func (v *VideoAsset) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// Analyzed returns true once derived metrics have been persisted
func (v *VideoAsset) Analyzed() bool {
	return v.Stats != nil
}

// TableName specifies the table name for GORM
func (VideoAsset) TableName() string {
	return "videos"
}
