package types

import (
	"github.com/simeon-code254/matobev-apps/internal/database"
	"github.com/simeon-code254/matobev-apps/internal/services/analyses"
	"github.com/simeon-code254/matobev-apps/internal/services/analysis"
	"github.com/simeon-code254/matobev-apps/internal/services/hub"
	"github.com/simeon-code254/matobev-apps/internal/services/pipeline"
	"github.com/simeon-code254/matobev-apps/internal/services/playercards"
	"github.com/simeon-code254/matobev-apps/internal/services/profiles"
	"github.com/simeon-code254/matobev-apps/internal/services/storage"
	"github.com/simeon-code254/matobev-apps/internal/services/videos"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB                *database.DB
	ObjectStore       storage.ObjectStore
	AnalysisClient    analysis.Client
	Pipeline          pipeline.Service
	VideoService      videos.Service
	AnalysisService   analyses.Service
	PlayerCardService playercards.Service
	ProfileService    profiles.Service
	Hub               *hub.Hub
}
