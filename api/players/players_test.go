package players

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simeon-code254/matobev-apps/api/types"
	"github.com/simeon-code254/matobev-apps/internal/database"
	"github.com/simeon-code254/matobev-apps/internal/models"
	"github.com/simeon-code254/matobev-apps/internal/services/analyses"
	"github.com/simeon-code254/matobev-apps/internal/services/playercards"
)

func newTestRouter(t *testing.T) (*gin.Engine, *types.Dependencies) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Initialize(":memory:", false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))

	deps := &types.Dependencies{
		DB:                db,
		AnalysisService:   analyses.NewService(analyses.NewRepository(db.DB)),
		PlayerCardService: playercards.NewService(playercards.NewRepository(db.DB)),
	}
	router := gin.New()
	RegisterRoutes(router.Group("/api/v1/players"), deps)
	return router, deps
}

func seedResult(t *testing.T, deps *types.Dependencies, playerID string, completedAt time.Time, overall float64) {
	t.Helper()
	result := &models.AnalysisResult{
		VideoID:  "v-" + completedAt.Format("150405"),
		PlayerID: playerID,
		Metrics: models.Metrics{
			Speed: 72, Stamina: 65, ShootingAccuracy: 58,
			PassingAccuracy: 81, Strength: 69, Dribbling: 74,
			OverallRating: overall,
		},
		CompletedAt: completedAt,
	}
	require.NoError(t, deps.AnalysisService.Record(context.Background(), result))
	_, _, err := deps.PlayerCardService.Apply(context.Background(), result)
	require.NoError(t, err)
}

func TestGetCard(t *testing.T) {
	router, deps := newTestRouter(t)
	seedResult(t, deps, "p1", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), 70)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/players/p1/card", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp types.PlayerCardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "p1", resp.PlayerID)
	assert.Equal(t, 70.0, resp.Metrics.OverallRating)
	assert.Equal(t, 72.0, resp.Metrics.Speed)
}

func TestGetCardNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/players/p1/card", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAnalyses(t *testing.T) {
	router, deps := newTestRouter(t)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		seedResult(t, deps, "p1", base.Add(time.Duration(i)*time.Minute), float64(70+i))
	}

	t.Run("newest first", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/players/p1/analyses", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Analyses []types.AnalysisResponse `json:"analyses"`
			Count    int                      `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, 3, resp.Count)
		assert.Equal(t, 72.0, resp.Analyses[0].Metrics.OverallRating)
	})

	t.Run("since filter", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/api/v1/players/p1/analyses?since="+base.Add(90*time.Second).Format(time.RFC3339), nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Count int `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Count)
	})

	t.Run("limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/players/p1/analyses?limit=2", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Count int `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Count)
	})

	t.Run("bad since", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/players/p1/analyses?since=yesterday", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
