package pipeline

import (
	"context"
	"sync"
	"time"
)

// Stage is a pipeline run's position in the ingestion state machine
type Stage string

const (
	StageIdle        Stage = "idle"
	StageUploading   Stage = "uploading"
	StageRegistering Stage = "registering"
	StageSigning     Stage = "signing"
	StageAnalyzing   Stage = "analyzing"
	StagePersisting  Stage = "persisting"
	StageCompleted   Stage = "completed"
	StageFailed      Stage = "failed"
	StageCancelled   Stage = "cancelled"
)

// stageOrder ranks the linear stages. Cancellation uses it to tell
// reversible ground from irreversible ground, progress reporting to place a
// run on the track.
var stageOrder = map[Stage]int{
	StageIdle:        0,
	StageUploading:   1,
	StageRegistering: 2,
	StageSigning:     3,
	StageAnalyzing:   4,
	StagePersisting:  5,
}

// FailureReason classifies why a run failed
type FailureReason string

const (
	ReasonInvalidInput        FailureReason = "invalid_input"
	ReasonStorageError        FailureReason = "storage_error"
	ReasonPersistenceError    FailureReason = "persistence_error"
	ReasonAnalysisTimeout     FailureReason = "analysis_timeout"
	ReasonAnalysisUnreachable FailureReason = "analysis_unreachable"
	ReasonAnalysisRejected    FailureReason = "analysis_rejected"
	ReasonAnalysisMalformed   FailureReason = "analysis_malformed"
)

// WarningPlayerCardStale marks a run whose analysis record was persisted but
// whose player card projection could not be refreshed. The run still counts
// as completed; the card catches up on the player's next analysis.
const WarningPlayerCardStale = "player_card_stale"

// Run tracks one execution of the ingestion state machine. Runs live in
// memory only; a run that is never acknowledged is dropped after the
// configured retention window.
type Run struct {
	ID       string
	PlayerID string

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu              sync.Mutex
	stage           Stage
	progress        float64
	videoID         string
	failedStage     Stage
	reason          FailureReason
	errMessage      string
	warnings        []string
	orphaned        bool
	cancelRequested bool
	startedAt       time.Time
	finishedAt      time.Time
}

func newRun(id, playerID string) *Run {
	ctx, cancel := context.WithCancel(context.Background())
	return &Run{
		ID:        id,
		PlayerID:  playerID,
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
		stage:     StageIdle,
		startedAt: time.Now().UTC(),
	}
}

// Snapshot is a point-in-time copy of a run's state, safe to hand to
// handlers and encoders while the run keeps moving.
type Snapshot struct {
	ID          string        `json:"id"`
	PlayerID    string        `json:"player_id"`
	VideoID     string        `json:"video_id,omitempty"`
	Stage       Stage         `json:"stage"`
	Progress    float64       `json:"progress"`
	FailedStage Stage         `json:"failed_stage,omitempty"`
	Reason      FailureReason `json:"reason,omitempty"`
	Error       string        `json:"error,omitempty"`
	Warnings    []string      `json:"warnings,omitempty"`
	Orphaned    bool          `json:"orphaned"`
	StartedAt   time.Time     `json:"started_at"`
	FinishedAt  *time.Time    `json:"finished_at,omitempty"`
}

// Snapshot returns a copy of the run's current state
func (r *Run) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := Snapshot{
		ID:          r.ID,
		PlayerID:    r.PlayerID,
		VideoID:     r.videoID,
		Stage:       r.stage,
		Progress:    r.progress,
		FailedStage: r.failedStage,
		Reason:      r.reason,
		Error:       r.errMessage,
		Orphaned:    r.orphaned,
		StartedAt:   r.startedAt,
	}
	if len(r.warnings) > 0 {
		snap.Warnings = append([]string(nil), r.warnings...)
	}
	if !r.finishedAt.IsZero() {
		finished := r.finishedAt
		snap.FinishedAt = &finished
	}
	return snap
}

// Stage returns the run's current stage
func (r *Run) Stage() Stage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stage
}

// Done is closed when the run reaches a terminal state
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Terminal reports whether the run has finished
func (r *Run) Terminal() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

func (r *Run) setStage(stage Stage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stage = stage
	r.progress = float64(stageOrder[stage]) / float64(len(stageOrder))
}

func (r *Run) setVideoID(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.videoID = id
}

// setOrphaned records that a blob (and possibly a record) now exists in
// external systems which a later failure or cancellation will leave behind
func (r *Run) setOrphaned(orphaned bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orphaned = orphaned
}

func (r *Run) addWarning(w string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, w)
}

func (r *Run) fail(stage Stage, reason FailureReason, err error) {
	r.mu.Lock()
	r.failedStage = stage
	r.reason = reason
	if err != nil {
		r.errMessage = err.Error()
	}
	r.stage = StageFailed
	r.finishedAt = time.Now().UTC()
	r.mu.Unlock()
	r.cancel()
	close(r.done)
}

func (r *Run) complete() {
	r.mu.Lock()
	r.stage = StageCompleted
	r.progress = 1
	r.orphaned = false
	r.finishedAt = time.Now().UTC()
	r.mu.Unlock()
	r.cancel()
	close(r.done)
}

func (r *Run) markCancelled() {
	r.mu.Lock()
	r.stage = StageCancelled
	r.finishedAt = time.Now().UTC()
	r.mu.Unlock()
	r.cancel()
	close(r.done)
}

// requestCancel flags the run for cooperative cancellation. Through Signing
// the run's context is cancelled so in-flight store calls abort; during
// Analyzing the remote call is left to finish and its result discarded.
// Returns false when the run is already past the point of no return.
func (r *Run) requestCancel() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stage == StageCompleted || r.stage == StageFailed || r.stage == StageCancelled {
		return false
	}
	if r.stage == StagePersisting {
		return false
	}
	r.cancelRequested = true
	if stageOrder[r.stage] <= stageOrder[StageSigning] {
		r.cancel()
	}
	return true
}

func (r *Run) cancelled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancelRequested
}
