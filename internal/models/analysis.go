package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AnalysisResult is one immutable outcome of running the remote analyzer
// against a video. History is append-only: rows are never updated or deleted
// by the service, and the list is queryable by player and by time range.
type AnalysisResult struct {
	ID                string    `json:"id" gorm:"type:text;primaryKey"`
	VideoID           string    `json:"video_id" gorm:"type:text;not null;index"`
	PlayerID          string    `json:"player_id" gorm:"type:text;not null;index:idx_video_analysis_player_completed"`
	VideoURL          string    `json:"video_url"`
	Metrics           Metrics   `json:"metrics" gorm:"type:json;not null"`
	CompletedAt       time.Time `json:"completed_at" gorm:"not null;index:idx_video_analysis_player_completed"`
	ProcessingSeconds float64   `json:"processing_seconds"`
	CreatedAt         time.Time `json:"created_at"`
}

// BeforeCreate assigns the row id on insert
func (r *AnalysisResult) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// TableName specifies the table name for GORM
func (AnalysisResult) TableName() string {
	return "video_analysis"
}
