package pipeline

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrRunNotFound is returned when no run exists for an id
	ErrRunNotFound = errors.New("pipeline run not found")
	// ErrTooManyRuns is returned when starting a run would exceed the
	// configured concurrency cap
	ErrTooManyRuns = errors.New("too many concurrent pipeline runs")
	// ErrRunNotCancellable is returned when a run is already past the
	// point where cancellation is honored
	ErrRunNotCancellable = errors.New("pipeline run can no longer be cancelled")
	// ErrRunActive is returned when acknowledging a run that has not
	// reached a terminal state
	ErrRunActive = errors.New("pipeline run still active")
)

// registry tracks in-flight and recently finished runs in memory. Finished
// runs linger for the retention window so clients can poll the terminal
// state, then get swept.
type registry struct {
	mu        sync.RWMutex
	runs      map[string]*Run
	maxActive int
	retention time.Duration
}

func newRegistry(maxActive int, retention time.Duration) *registry {
	if maxActive <= 0 {
		maxActive = 4
	}
	if retention <= 0 {
		retention = 10 * time.Minute
	}
	return &registry{
		runs:      make(map[string]*Run),
		maxActive: maxActive,
		retention: retention,
	}
}

func (g *registry) add(run *Run) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	active := 0
	for _, r := range g.runs {
		if !r.Terminal() {
			active++
		}
	}
	if active >= g.maxActive {
		return ErrTooManyRuns
	}
	g.runs[run.ID] = run
	return nil
}

func (g *registry) get(id string) (*Run, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	run, ok := g.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}
	return run, nil
}

func (g *registry) remove(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.runs, id)
}

func (g *registry) list() []*Run {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]*Run, 0, len(g.runs))
	for _, run := range g.runs {
		out = append(out, run)
	}
	return out
}

// sweepAfter schedules removal of a finished run once the retention window
// passes, unless the client acknowledged it first
func (g *registry) sweepAfter(id string) {
	time.AfterFunc(g.retention, func() {
		g.remove(id)
	})
}
