package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/simeon-code254/matobev-apps/internal/models"
	"github.com/simeon-code254/matobev-apps/internal/services/analyses"
	"github.com/simeon-code254/matobev-apps/internal/services/analysis"
	"github.com/simeon-code254/matobev-apps/internal/services/hub"
	"github.com/simeon-code254/matobev-apps/internal/services/playercards"
	"github.com/simeon-code254/matobev-apps/internal/services/profiles"
	"github.com/simeon-code254/matobev-apps/internal/services/storage"
	"github.com/simeon-code254/matobev-apps/internal/services/videos"
)

// Options tunes the pipeline service
type Options struct {
	// SignTTL is the validity window requested for retrieval URLs
	SignTTL time.Duration
	// MaxConcurrentRuns caps simultaneously active runs
	MaxConcurrentRuns int
	// RunRetention is how long a terminal run stays pollable before it is
	// swept, absent an explicit acknowledge
	RunRetention time.Duration
}

type service struct {
	store    storage.ObjectStore
	analyzer analysis.Client
	videos   videos.Service
	analyses analyses.Service
	cards    playercards.Service
	profiles profiles.Service
	hub      *hub.Hub
	runs     *registry
	signTTL  time.Duration

	// cardMu spans the card apply and the hub publish as one step, so
	// subscribers observe same-player cards in the order the projection
	// accepted them
	cardMu sync.Mutex
}

// NewService creates the pipeline orchestrator
func NewService(
	store storage.ObjectStore,
	analyzer analysis.Client,
	videoSvc videos.Service,
	analysisSvc analyses.Service,
	cardSvc playercards.Service,
	profileSvc profiles.Service,
	h *hub.Hub,
	opts Options,
) Service {
	signTTL := opts.SignTTL
	if signTTL <= 0 {
		signTTL = 10 * time.Minute
	}
	return &service{
		store:    store,
		analyzer: analyzer,
		videos:   videoSvc,
		analyses: analysisSvc,
		cards:    cardSvc,
		profiles: profileSvc,
		hub:      h,
		runs:     newRegistry(opts.MaxConcurrentRuns, opts.RunRetention),
		signTTL:  signTTL,
	}
}

func (s *service) Start(ctx context.Context, input UploadInput) (*Run, error) {
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	run := newRun(uuid.NewString(), input.PlayerID)
	if err := s.runs.add(run); err != nil {
		run.cancel()
		return nil, err
	}

	log.Printf("[DEBUG] Starting ingestion run %s for player %s (%s)", run.ID, input.PlayerID, input.FileName)
	go s.execute(run, input)
	return run, nil
}

// validate performs the checks that must fail before any external system is
// contacted
func (s *service) validate(ctx context.Context, input UploadInput) error {
	if input.PlayerID == "" {
		return &InputError{Field: "player_id", Message: "player id is required"}
	}
	if input.Body == nil || input.Size <= 0 {
		return &InputError{Field: "video", Message: "video file is empty"}
	}
	if !strings.HasPrefix(input.ContentType, "video/") {
		return &InputError{Field: "video", Message: fmt.Sprintf("unsupported media type %q", input.ContentType)}
	}
	exists, err := s.profiles.Exists(ctx, input.PlayerID)
	if err != nil {
		return fmt.Errorf("checking player profile: %w", err)
	}
	if !exists {
		return &InputError{Field: "player_id", Message: "unknown player"}
	}
	return nil
}

func (s *service) Get(id string) (*Run, error) {
	return s.runs.get(id)
}

func (s *service) Cancel(id string) error {
	run, err := s.runs.get(id)
	if err != nil {
		return err
	}
	if !run.requestCancel() {
		return ErrRunNotCancellable
	}
	log.Printf("[DEBUG] Cancellation requested for run %s", id)
	return nil
}

func (s *service) Acknowledge(id string) error {
	run, err := s.runs.get(id)
	if err != nil {
		return err
	}
	if !run.Terminal() {
		return ErrRunActive
	}
	s.runs.remove(id)
	return nil
}

func (s *service) List() []*Run {
	return s.runs.list()
}

func (s *service) TimeEstimate(ctx context.Context) (time.Duration, error) {
	return s.analyzer.TimeEstimate(ctx)
}

// execute drives one run through the state machine on its own goroutine
func (s *service) execute(run *Run, input UploadInput) {
	defer s.runs.sweepAfter(run.ID)
	defer func() {
		if closer, ok := input.Body.(io.Closer); ok {
			_ = closer.Close()
		}
	}()

	ctx := run.ctx

	// Uploading
	run.setStage(StageUploading)
	key := objectKey(input.PlayerID, input.FileName)
	if err := s.store.Put(ctx, key, input.Body, input.ContentType, false); err != nil {
		if run.cancelled() {
			run.markCancelled()
			return
		}
		log.Printf("[ERROR] Run %s: upload failed: %v", run.ID, err)
		run.fail(StageUploading, ReasonStorageError, err)
		return
	}
	// The blob now exists; until the record and stats land, a failure
	// leaves it orphaned in storage.
	run.setOrphaned(true)
	if run.cancelled() {
		run.markCancelled()
		return
	}

	// Registering
	run.setStage(StageRegistering)
	video := &models.VideoAsset{
		PlayerID:    input.PlayerID,
		StoragePath: key,
		Title:       input.Title,
		Description: input.Description,
	}
	if err := s.videos.Register(ctx, video); err != nil {
		if run.cancelled() {
			run.markCancelled()
			return
		}
		log.Printf("[ERROR] Run %s: registering video failed: %v", run.ID, err)
		run.fail(StageRegistering, ReasonPersistenceError, err)
		return
	}
	run.setVideoID(video.ID)
	if run.cancelled() {
		run.markCancelled()
		return
	}

	// Signing
	run.setStage(StageSigning)
	url, err := s.store.SignGet(ctx, key, s.signTTL)
	if err != nil {
		if run.cancelled() {
			run.markCancelled()
			return
		}
		log.Printf("[ERROR] Run %s: signing retrieval URL failed: %v", run.ID, err)
		run.fail(StageSigning, ReasonStorageError, err)
		return
	}
	if run.cancelled() {
		run.markCancelled()
		return
	}

	// Analyzing. The remote call is not tied to the run's cancellation:
	// the service exposes no abort, so an in-flight call runs to
	// completion and a cancelled run simply discards the result.
	run.setStage(StageAnalyzing)
	result, err := s.analyzeWithRetry(context.WithoutCancel(ctx), run, key, url, input.PlayerID, video.ID)
	if err != nil {
		return // analyzeWithRetry already failed the run
	}
	if run.cancelled() {
		log.Printf("[DEBUG] Run %s: cancelled during analysis, discarding result", run.ID)
		run.markCancelled()
		return
	}

	// Persisting
	run.setStage(StagePersisting)
	completedAt := time.Now().UTC()
	record := &models.AnalysisResult{
		VideoID:           video.ID,
		PlayerID:          input.PlayerID,
		VideoURL:          url,
		Metrics:           result.Metrics,
		CompletedAt:       completedAt,
		ProcessingSeconds: result.ProcessingSeconds,
	}
	persistCtx := context.WithoutCancel(ctx)
	if err := s.analyses.Record(persistCtx, record); err != nil {
		log.Printf("[ERROR] Run %s: persisting analysis result failed: %v", run.ID, err)
		run.fail(StagePersisting, ReasonPersistenceError, err)
		return
	}
	if err := s.videos.SetStats(persistCtx, video.ID, result.Metrics, completedAt); err != nil {
		// The durable analysis record exists; a stale stats blob on the
		// video row is recoverable and not worth failing the run over.
		log.Printf("[WARNING] Run %s: updating video stats failed: %v", run.ID, err)
	}

	s.cardMu.Lock()
	outcome, card, err := s.cards.Apply(persistCtx, record)
	if err == nil && outcome == playercards.OutcomeUpdated {
		s.hub.Publish(input.PlayerID, card)
	}
	s.cardMu.Unlock()
	if err != nil {
		log.Printf("[WARNING] Run %s: player card update failed, card is stale: %v", run.ID, err)
		run.addWarning(WarningPlayerCardStale)
	}

	log.Printf("[DEBUG] Run %s completed for player %s (video %s)", run.ID, input.PlayerID, video.ID)
	run.complete()
}

// analyzeWithRetry invokes the analyzer, retrying exactly once with a fresh
// URL when the failure was transient. Terminal failures mark the run failed
// and return a non-nil error.
func (s *service) analyzeWithRetry(ctx context.Context, run *Run, key, url, playerID, videoID string) (*analysis.Result, error) {
	result, err := s.analyzer.Analyze(ctx, url, playerID, videoID)
	if err == nil {
		return result, nil
	}

	var analysisErr *analysis.Error
	if !errors.As(err, &analysisErr) {
		run.fail(StageAnalyzing, ReasonAnalysisUnreachable, err)
		return nil, err
	}
	if !analysisErr.Retryable() {
		log.Printf("[ERROR] Run %s: analysis failed (%s), not retrying: %v", run.ID, analysisErr.Kind, err)
		run.fail(StageAnalyzing, analysisReason(analysisErr.Kind), err)
		return nil, err
	}

	// The original URL may be near expiry after a slow failed attempt, so
	// the retry always carries a freshly signed one.
	log.Printf("[WARNING] Run %s: analysis failed (%s), re-signing and retrying once: %v", run.ID, analysisErr.Kind, err)
	freshURL, signErr := s.store.SignGet(ctx, key, s.signTTL)
	if signErr != nil {
		log.Printf("[ERROR] Run %s: re-signing for retry failed: %v", run.ID, signErr)
		run.fail(StageSigning, ReasonStorageError, signErr)
		return nil, signErr
	}

	result, err = s.analyzer.Analyze(ctx, freshURL, playerID, videoID)
	if err != nil {
		log.Printf("[ERROR] Run %s: analysis retry failed: %v", run.ID, err)
		if errors.As(err, &analysisErr) {
			run.fail(StageAnalyzing, analysisReason(analysisErr.Kind), err)
		} else {
			run.fail(StageAnalyzing, ReasonAnalysisUnreachable, err)
		}
		return nil, err
	}
	return result, nil
}

func analysisReason(kind analysis.ErrorKind) FailureReason {
	switch kind {
	case analysis.KindTimeout:
		return ReasonAnalysisTimeout
	case analysis.KindUnreachable:
		return ReasonAnalysisUnreachable
	case analysis.KindRejected:
		return ReasonAnalysisRejected
	default:
		return ReasonAnalysisMalformed
	}
}

// objectKey namespaces the blob under the owning player with a fresh id, so
// a resubmission after a failed run never collides with the orphaned key
func objectKey(playerID, fileName string) string {
	ext := path.Ext(fileName)
	return fmt.Sprintf("%s/%s%s", playerID, uuid.NewString(), ext)
}

// InputError reports a validation failure caught before any external call
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Field, e.Message)
}
