package uploads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simeon-code254/matobev-apps/api/types"
	"github.com/simeon-code254/matobev-apps/internal/database"
	"github.com/simeon-code254/matobev-apps/internal/models"
	"github.com/simeon-code254/matobev-apps/internal/services/analyses"
	"github.com/simeon-code254/matobev-apps/internal/services/analysis"
	"github.com/simeon-code254/matobev-apps/internal/services/hub"
	"github.com/simeon-code254/matobev-apps/internal/services/pipeline"
	"github.com/simeon-code254/matobev-apps/internal/services/playercards"
	"github.com/simeon-code254/matobev-apps/internal/services/profiles"
	"github.com/simeon-code254/matobev-apps/internal/services/videos"
)

type stubStore struct {
	mu    sync.Mutex
	signs int
}

func (s *stubStore) Put(ctx context.Context, key string, body io.Reader, contentType string, upsert bool) error {
	_, err := io.Copy(io.Discard, body)
	return err
}

func (s *stubStore) SignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signs++
	return fmt.Sprintf("https://store.test/%s?sig=%d", key, s.signs), nil
}

type stubAnalyzer struct {
	gate chan struct{}
}

func (s *stubAnalyzer) Analyze(ctx context.Context, videoURL, playerID, videoID string) (*analysis.Result, error) {
	if s.gate != nil {
		<-s.gate
	}
	return &analysis.Result{
		Metrics: models.Metrics{
			Speed: 72, Stamina: 65, ShootingAccuracy: 58,
			PassingAccuracy: 81, Strength: 69, Dribbling: 74,
			OverallRating: 70,
		},
		ProcessingSeconds: 1.2,
	}, nil
}

func (s *stubAnalyzer) TimeEstimate(ctx context.Context) (time.Duration, error) {
	return 30 * time.Second, nil
}

func newTestRouter(t *testing.T, analyzer analysis.Client) (*gin.Engine, *types.Dependencies) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Initialize(":memory:", false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))
	require.NoError(t, profiles.NewRepository(db.DB).Create(context.Background(), &models.Profile{
		ID: "p1", FullName: "Test Player", Approved: true,
	}))

	h := hub.New()
	deps := &types.Dependencies{
		DB:                db,
		Hub:               h,
		VideoService:      videos.NewService(videos.NewRepository(db.DB)),
		AnalysisService:   analyses.NewService(analyses.NewRepository(db.DB)),
		PlayerCardService: playercards.NewService(playercards.NewRepository(db.DB)),
	}
	deps.Pipeline = pipeline.NewService(
		&stubStore{},
		analyzer,
		deps.VideoService,
		deps.AnalysisService,
		deps.PlayerCardService,
		profiles.NewService(profiles.NewRepository(db.DB)),
		h,
		pipeline.Options{},
	)

	router := gin.New()
	RegisterRoutes(router.Group("/api/v1/uploads"), deps)
	return router, deps
}

func multipartUpload(t *testing.T, playerID, fileName, contentType string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="video"; filename="%s"`, fileName))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("fake video bytes"))
	require.NoError(t, err)

	require.NoError(t, writer.WriteField("player_id", playerID))
	require.NoError(t, writer.WriteField("title", "Training clip"))
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func decodeRun(t *testing.T, body *bytes.Buffer) types.RunResponse {
	t.Helper()
	var resp types.RunResponse
	require.NoError(t, json.Unmarshal(body.Bytes(), &resp))
	return resp
}

func pollUntilTerminal(t *testing.T, router *gin.Engine, id string) types.RunResponse {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/uploads/"+id, nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decodeRun(t, w.Body)
		switch resp.Stage {
		case "completed", "failed", "cancelled":
			return resp
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("run %s never reached a terminal stage", id)
	return types.RunResponse{}
}

func TestCreateAndPollUpload(t *testing.T) {
	router, deps := newTestRouter(t, &stubAnalyzer{})

	body, contentType := multipartUpload(t, "p1", "clip.mp4", "video/mp4")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusAccepted, w.Code)
	accepted := decodeRun(t, w.Body)
	assert.NotEmpty(t, accepted.ID)
	assert.Equal(t, "p1", accepted.PlayerID)

	final := pollUntilTerminal(t, router, accepted.ID)
	assert.Equal(t, "completed", final.Stage)
	assert.NotEmpty(t, final.VideoID)
	assert.False(t, final.Orphaned)

	card, err := deps.PlayerCardService.GetCard(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 70.0, card.OverallRating)
}

func TestCreateRejectsBadInput(t *testing.T) {
	router, _ := newTestRouter(t, &stubAnalyzer{})

	tests := []struct {
		name        string
		playerID    string
		fileName    string
		contentType string
	}{
		{"unknown player", "ghost", "clip.mp4", "video/mp4"},
		{"missing player", "", "clip.mp4", "video/mp4"},
		{"not a video", "p1", "doc.pdf", "application/pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := multipartUpload(t, tt.playerID, tt.fileName, tt.contentType)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", body)
			req.Header.Set("Content-Type", contentType)
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCreateWithoutFile(t *testing.T) {
	router, _ := newTestRouter(t, &stubAnalyzer{})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("player_id", "p1"))
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUnknownRun(t *testing.T) {
	router, _ := newTestRouter(t, &stubAnalyzer{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/uploads/nope", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCancelsActiveRun(t *testing.T) {
	analyzer := &stubAnalyzer{gate: make(chan struct{})}
	router, _ := newTestRouter(t, analyzer)

	body, contentType := multipartUpload(t, "p1", "clip.mp4", "video/mp4")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusAccepted, w.Code)
	accepted := decodeRun(t, w.Body)

	// Wait for the run to reach the analyzer, then cancel
	require.Eventually(t, func() bool {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/uploads/"+accepted.ID, nil)
		router.ServeHTTP(w, req)
		return decodeRun(t, w.Body).Stage == "analyzing"
	}, 2*time.Second, 5*time.Millisecond)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/uploads/"+accepted.ID, nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	close(analyzer.gate)
	final := pollUntilTerminal(t, router, accepted.ID)
	assert.Equal(t, "cancelled", final.Stage)
}

func TestDeleteAcknowledgesFinishedRun(t *testing.T) {
	router, _ := newTestRouter(t, &stubAnalyzer{})

	body, contentType := multipartUpload(t, "p1", "clip.mp4", "video/mp4")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusAccepted, w.Code)
	accepted := decodeRun(t, w.Body)

	pollUntilTerminal(t, router, accepted.ID)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/uploads/"+accepted.ID, nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/uploads/"+accepted.ID, nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListRuns(t *testing.T) {
	router, _ := newTestRouter(t, &stubAnalyzer{})

	body, contentType := multipartUpload(t, "p1", "clip.mp4", "video/mp4")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusAccepted, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/uploads", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Runs  []types.RunResponse `json:"runs"`
		Count int                 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Runs, 1)
	assert.Equal(t, "p1", resp.Runs[0].PlayerID)
}
