package types

import (
	"time"

	"github.com/simeon-code254/matobev-apps/internal/models"
	"github.com/simeon-code254/matobev-apps/internal/services/pipeline"
)

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// ErrorResponse is the standard error body
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// RunResponse reports an ingestion run's progress
// @Description Current state of one video ingestion run
type RunResponse struct {
	ID          string   `json:"id" example:"052f3b9b-cc02-418c-a9ab-8f49534c01c8"`
	PlayerID    string   `json:"player_id"`
	VideoID     string   `json:"video_id,omitempty"`
	Stage       string   `json:"stage" example:"analyzing"`
	Progress    float64  `json:"progress" example:"0.66"`
	FailedStage string   `json:"failed_stage,omitempty"`
	Reason      string   `json:"reason,omitempty"`
	Error       string   `json:"error,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
	Orphaned    bool     `json:"orphaned"`
	StartedAt   string   `json:"started_at"`
	FinishedAt  string   `json:"finished_at,omitempty"`
}

// NewRunResponse maps a run snapshot into its API shape
func NewRunResponse(snap pipeline.Snapshot) RunResponse {
	resp := RunResponse{
		ID:          snap.ID,
		PlayerID:    snap.PlayerID,
		VideoID:     snap.VideoID,
		Stage:       string(snap.Stage),
		Progress:    snap.Progress,
		FailedStage: string(snap.FailedStage),
		Reason:      string(snap.Reason),
		Error:       snap.Error,
		Warnings:    snap.Warnings,
		Orphaned:    snap.Orphaned,
		StartedAt:   snap.StartedAt.Format(time.RFC3339),
	}
	if snap.FinishedAt != nil {
		resp.FinishedAt = snap.FinishedAt.Format(time.RFC3339)
	}
	return resp
}

// MetricsResponse is the fixed metric schema in API responses
type MetricsResponse struct {
	Speed            float64 `json:"speed"`
	Stamina          float64 `json:"stamina"`
	ShootingAccuracy float64 `json:"shooting_accuracy"`
	PassingAccuracy  float64 `json:"passing_accuracy"`
	Strength         float64 `json:"strength"`
	Dribbling        float64 `json:"dribbling"`
	OverallRating    float64 `json:"overall_rating"`
}

// NewMetricsResponse maps stored metrics into their API shape
func NewMetricsResponse(m models.Metrics) MetricsResponse {
	return MetricsResponse{
		Speed:            m.Speed,
		Stamina:          m.Stamina,
		ShootingAccuracy: m.ShootingAccuracy,
		PassingAccuracy:  m.PassingAccuracy,
		Strength:         m.Strength,
		Dribbling:        m.Dribbling,
		OverallRating:    m.OverallRating,
	}
}

// PlayerCardResponse is a player's current derived aggregate
type PlayerCardResponse struct {
	PlayerID    string          `json:"player_id"`
	Metrics     MetricsResponse `json:"metrics"`
	LastUpdated string          `json:"last_updated"`
}

// NewPlayerCardResponse maps a player card into its API shape
func NewPlayerCardResponse(card *models.PlayerCard) PlayerCardResponse {
	return PlayerCardResponse{
		PlayerID:    card.PlayerID,
		Metrics:     NewMetricsResponse(card.Metrics()),
		LastUpdated: card.LastUpdated.Format(time.RFC3339),
	}
}

// VideoResponse is a stored video asset
type VideoResponse struct {
	ID          string           `json:"id"`
	PlayerID    string           `json:"player_id"`
	StoragePath string           `json:"storage_path"`
	Title       string           `json:"title,omitempty"`
	Description string           `json:"description,omitempty"`
	Stats       *MetricsResponse `json:"stats,omitempty"`
	AnalyzedAt  string           `json:"analyzed_at,omitempty"`
	CreatedAt   string           `json:"created_at"`
}

// NewVideoResponse maps a video asset into its API shape
func NewVideoResponse(video *models.VideoAsset) VideoResponse {
	resp := VideoResponse{
		ID:          video.ID,
		PlayerID:    video.PlayerID,
		StoragePath: video.StoragePath,
		Title:       video.Title,
		Description: video.Description,
		CreatedAt:   video.CreatedAt.Format(time.RFC3339),
	}
	if video.Stats != nil {
		stats := NewMetricsResponse(*video.Stats)
		resp.Stats = &stats
	}
	if video.AnalyzedAt != nil {
		resp.AnalyzedAt = video.AnalyzedAt.Format(time.RFC3339)
	}
	return resp
}

// AnalysisResponse is one immutable analysis outcome
type AnalysisResponse struct {
	ID                string          `json:"id"`
	VideoID           string          `json:"video_id"`
	PlayerID          string          `json:"player_id"`
	Metrics           MetricsResponse `json:"metrics"`
	CompletedAt       string          `json:"completed_at"`
	ProcessingSeconds float64         `json:"processing_seconds"`
}

// NewAnalysisResponse maps an analysis result into its API shape
func NewAnalysisResponse(result *models.AnalysisResult) AnalysisResponse {
	return AnalysisResponse{
		ID:                result.ID,
		VideoID:           result.VideoID,
		PlayerID:          result.PlayerID,
		Metrics:           NewMetricsResponse(result.Metrics),
		CompletedAt:       result.CompletedAt.Format(time.RFC3339),
		ProcessingSeconds: result.ProcessingSeconds,
	}
}
