package api

import (
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/simeon-code254/matobev-apps/api/analysisinfo"
	"github.com/simeon-code254/matobev-apps/api/health"
	"github.com/simeon-code254/matobev-apps/api/players"
	"github.com/simeon-code254/matobev-apps/api/types"
	"github.com/simeon-code254/matobev-apps/api/uploads"
	"github.com/simeon-code254/matobev-apps/api/version"
	"github.com/simeon-code254/matobev-apps/api/videos"
	"github.com/simeon-code254/matobev-apps/internal/services/analyses"
	analysisService "github.com/simeon-code254/matobev-apps/internal/services/analysis"
	"github.com/simeon-code254/matobev-apps/internal/services/hub"
	"github.com/simeon-code254/matobev-apps/internal/services/pipeline"
	"github.com/simeon-code254/matobev-apps/internal/services/playercards"
	"github.com/simeon-code254/matobev-apps/internal/services/profiles"
	videosService "github.com/simeon-code254/matobev-apps/internal/services/videos"
	"github.com/simeon-code254/matobev-apps/pkg/config"
)

// defaultMaxUploadBytes caps multipart video uploads when the config does
// not set server.max_upload_bytes
const defaultMaxUploadBytes = 200 << 20

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Register Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	// API v1 routes
	v1 := engine.Group("/api/v1")

	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if deps == nil {
		deps = &types.Dependencies{}
	}

	if deps.DB == nil || deps.DB.DB == nil {
		return fmt.Errorf("database is required")
	}

	initializeServices(deps, cfg)

	// Upload routes: a restrictive rate limit (uploads are expensive) and
	// a generous body cap for the video itself
	maxUpload := cfg.Server.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = defaultMaxUploadBytes
	}
	uploadGroup := v1.Group("/uploads")
	uploadGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 2, 4))
	uploadGroup.Use(UploadSizeLimit(maxUpload))
	uploads.RegisterRoutes(uploadGroup, deps)

	// Player routes with general rate limiting (10 req/s, burst of 20)
	playerGroup := v1.Group("/players")
	playerGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	players.RegisterRoutes(playerGroup, deps)

	// Video routes with general rate limiting (10 req/s, burst of 20)
	videoGroup := v1.Group("/videos")
	videoGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	videos.RegisterRoutes(videoGroup, deps)

	// Analysis info routes (estimate proxy)
	analysisGroup := v1.Group("/analysis")
	analysisGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	analysisinfo.RegisterRoutes(analysisGroup, deps)

	return nil
}

// initializeServices fills in any dependencies not injected by the caller
func initializeServices(deps *types.Dependencies, cfg *config.Config) {
	db := deps.DB.DB

	if deps.VideoService == nil {
		deps.VideoService = videosService.NewService(videosService.NewRepository(db))
	}
	if deps.AnalysisService == nil {
		deps.AnalysisService = analyses.NewService(analyses.NewRepository(db))
	}
	if deps.PlayerCardService == nil {
		deps.PlayerCardService = playercards.NewService(playercards.NewRepository(db))
	}
	if deps.ProfileService == nil {
		deps.ProfileService = profiles.NewService(profiles.NewRepository(db))
	}
	if deps.Hub == nil {
		deps.Hub = hub.New()
	}
	if deps.AnalysisClient == nil {
		client := analysisService.NewHTTPClient(analysisService.Config{
			BaseURL: cfg.Analysis.BaseURL,
			Timeout: cfg.Analysis.Timeout,
		})
		deps.AnalysisClient = analysisService.NewCachedClient(client, time.Minute)
	}
	if deps.Pipeline == nil && deps.ObjectStore != nil {
		deps.Pipeline = pipeline.NewService(
			deps.ObjectStore,
			deps.AnalysisClient,
			deps.VideoService,
			deps.AnalysisService,
			deps.PlayerCardService,
			deps.ProfileService,
			deps.Hub,
			pipeline.Options{
				SignTTL:           cfg.Storage.SignTTL,
				MaxConcurrentRuns: cfg.Pipeline.MaxConcurrentRuns,
				RunRetention:      cfg.Pipeline.RunRetention,
			},
		)
	}
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
