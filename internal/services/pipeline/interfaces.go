package pipeline

import (
	"context"
	"io"
	"time"
)

// UploadInput carries one submitted video through the pipeline
type UploadInput struct {
	PlayerID    string
	FileName    string
	ContentType string
	Size        int64
	Title       string
	Description string
	Body        io.Reader
}

// Service runs the ingestion state machine. Start validates the input and
// returns immediately with a tracked run; the stages execute on a background
// goroutine and the run is polled or cancelled by id.
type Service interface {
	// Start begins a run for the given upload. Invalid input fails before
	// any external system is contacted.
	Start(ctx context.Context, input UploadInput) (*Run, error)

	// Get returns the run for an id
	Get(id string) (*Run, error)

	// Cancel requests cooperative cancellation of a run
	Cancel(id string) error

	// Acknowledge discards a terminal run
	Acknowledge(id string) error

	// List returns all tracked runs
	List() []*Run

	// TimeEstimate reports the analysis service's current expected
	// processing time, for display only
	TimeEstimate(ctx context.Context) (time.Duration, error)
}
