package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/simeon-code254/matobev-apps/internal/models"
)

const defaultTimeEstimate = 30 * time.Second

// Result is a validated analysis outcome. CompletedAt is stamped by the
// caller when the response arrives; the remote clock is not trusted for
// ordering.
type Result struct {
	Metrics           models.Metrics
	ProcessingSeconds float64
}

// Client calls the remote ML analysis service. Analyze may take tens of
// seconds; callers bound it with a context deadline.
type Client interface {
	Analyze(ctx context.Context, videoURL, playerID, videoID string) (*Result, error)
	TimeEstimate(ctx context.Context) (time.Duration, error)
}

// HTTPClient is the production Client over the analysis service's HTTP API
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Config holds analysis service connection settings
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// NewHTTPClient creates an analysis service client
func NewHTTPClient(cfg Config) *HTTPClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &HTTPClient{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type analyzeRequest struct {
	VideoURL string `json:"video_url"`
	PlayerID string `json:"player_id"`
	VideoID  string `json:"video_id"`
}

// analyzePayload mirrors the service's response. Metric fields are pointers
// so a missing field can be told apart from a zero.
type analyzePayload struct {
	Metrics        *metricsPayload `json:"metrics"`
	ProcessingTime float64         `json:"processing_time"`
}

type metricsPayload struct {
	Speed            *float64 `json:"speed"`
	Stamina          *float64 `json:"stamina"`
	ShootingAccuracy *float64 `json:"shooting_accuracy"`
	PassingAccuracy  *float64 `json:"passing_accuracy"`
	Strength         *float64 `json:"strength"`
	Dribbling        *float64 `json:"dribbling"`
	OverallRating    *float64 `json:"overall_rating"`
}

// Analyze submits a retrievable video URL for analysis and returns the
// validated metric payload.
func (c *HTTPClient) Analyze(ctx context.Context, videoURL, playerID, videoID string) (*Result, error) {
	body, err := json.Marshal(analyzeRequest{
		VideoURL: videoURL,
		PlayerID: playerID,
		VideoID:  videoID,
	})
	if err != nil {
		return nil, &Error{Kind: KindRejected, Message: "encoding analyze request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: KindRejected, Message: "building analyze request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, &Error{Kind: KindUnreachable, Message: fmt.Sprintf("analysis service returned %d", resp.StatusCode)}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		detail := readErrorDetail(resp.Body)
		return nil, &Error{Kind: KindRejected, Message: fmt.Sprintf("analysis service rejected request (%d): %s", resp.StatusCode, detail)}
	}

	var payload analyzePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &Error{Kind: KindMalformed, Message: "decoding analysis response", Err: err}
	}

	metrics, err := validateMetrics(payload.Metrics)
	if err != nil {
		return nil, err
	}

	if clamped := metrics.Clamp(); clamped > 0 {
		log.Printf("[WARNING] Clamped %d out-of-range metric(s) for video %s", clamped, videoID)
	}

	processing := payload.ProcessingTime
	if processing <= 0 {
		processing = time.Since(start).Seconds()
	}

	return &Result{Metrics: *metrics, ProcessingSeconds: processing}, nil
}

// TimeEstimate queries the service's own processing time estimate. It is a
// UI hint only; failures fall back to a default instead of erroring.
func (c *HTTPClient) TimeEstimate(ctx context.Context) (time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/time_estimate", nil)
	if err != nil {
		return defaultTimeEstimate, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return defaultTimeEstimate, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return defaultTimeEstimate, fmt.Errorf("time estimate returned %d", resp.StatusCode)
	}

	var payload struct {
		EstimatedTimeSeconds float64 `json:"estimated_time_seconds"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.EstimatedTimeSeconds <= 0 {
		return defaultTimeEstimate, err
	}

	return time.Duration(payload.EstimatedTimeSeconds * float64(time.Second)), nil
}

// validateMetrics enforces the fixed metric schema. Every named field plus
// the aggregate must be present; anything less is a malformed payload.
func validateMetrics(p *metricsPayload) (*models.Metrics, error) {
	if p == nil {
		return nil, &Error{Kind: KindMalformed, Message: "response has no metrics object"}
	}

	required := map[string]*float64{
		"speed":             p.Speed,
		"stamina":           p.Stamina,
		"shooting_accuracy": p.ShootingAccuracy,
		"passing_accuracy":  p.PassingAccuracy,
		"strength":          p.Strength,
		"dribbling":         p.Dribbling,
		"overall_rating":    p.OverallRating,
	}
	for name, val := range required {
		if val == nil {
			return nil, &Error{Kind: KindMalformed, Message: fmt.Sprintf("metrics payload missing field %q", name)}
		}
	}

	return &models.Metrics{
		Speed:            *p.Speed,
		Stamina:          *p.Stamina,
		ShootingAccuracy: *p.ShootingAccuracy,
		PassingAccuracy:  *p.PassingAccuracy,
		Strength:         *p.Strength,
		Dribbling:        *p.Dribbling,
		OverallRating:    *p.OverallRating,
	}, nil
}

func classifyTransportError(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Message: "analysis call exceeded deadline", Err: err}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return &Error{Kind: KindTimeout, Message: "analysis call timed out", Err: err}
	}
	return &Error{Kind: KindUnreachable, Message: "analysis service unreachable", Err: err}
}

func readErrorDetail(r io.Reader) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 4096)).Decode(&payload); err != nil || payload.Detail == "" {
		return "no detail"
	}
	return payload.Detail
}
