package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nvegesna/planmyday/internal/planner"
)

var (
	// ErrNotFound is returned when no run exists for a given id.
	ErrNotFound = errors.New("no plan run for id")
	// ErrActive is returned when an operation requires the run to be settled.
	ErrActive = errors.New("plan run is still in progress")
)

// Status tracks a run through its lifecycle.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Settled reports whether the run reached a terminal state.
func (s Status) Settled() bool {
	return s == StatusCompleted || s == StatusFailed
}

// StageEvent is one progress update recorded while the agents work.
type StageEvent struct {
	Stage   string    `json:"stage"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Run is a single plan request tracked from submission to completion.
type Run struct {
	ID        string          `json:"id"`
	Status    Status          `json:"status"`
	Payload   planner.Request `json:"payload"`
	Stages    []StageEvent    `json:"stages"`
	Result    *planner.Result `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (r *Run) clone() *Run {
	c := *r
	c.Stages = append([]StageEvent(nil), r.Stages...)
	if r.Result != nil {
		res := *r.Result
		c.Result = &res
	}
	return &c
}

// MemoryStore is a concurrency-safe in-memory registry of plan runs.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[string]*Run
}

// NewMemoryStore creates an empty run registry.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[string]*Run)}
}

// Create registers a new pending run for the payload and returns a copy.
func (s *MemoryStore) Create(payload planner.Request) *Run {
	now := time.Now().UTC()
	run := &Run{
		ID:        uuid.NewString(),
		Status:    StatusPending,
		Payload:   payload,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.runs[run.ID] = run
	s.mu.Unlock()

	return run.clone()
}

// Get returns a copy of the run so callers cannot mutate stored state.
func (s *MemoryStore) Get(id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return run.clone(), nil
}

// MarkRunning flips a run to the running state.
func (s *MemoryStore) MarkRunning(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[id]
	if !ok {
		return ErrNotFound
	}
	run.Status = StatusRunning
	run.UpdatedAt = time.Now().UTC()
	return nil
}

// AppendStage records a progress event on the run.
func (s *MemoryStore) AppendStage(id, stage, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[id]
	if !ok {
		return ErrNotFound
	}
	run.Stages = append(run.Stages, StageEvent{Stage: stage, Message: message, At: time.Now().UTC()})
	run.UpdatedAt = time.Now().UTC()
	return nil
}

// Complete stores the finished plan and settles the run.
func (s *MemoryStore) Complete(id string, result *planner.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[id]
	if !ok {
		return ErrNotFound
	}
	res := *result
	run.Result = &res
	run.Error = ""
	run.Status = StatusCompleted
	run.UpdatedAt = time.Now().UTC()
	return nil
}

// Fail settles the run with the workflow error.
func (s *MemoryStore) Fail(id string, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[id]
	if !ok {
		return ErrNotFound
	}
	run.Error = err.Error()
	run.Result = nil
	run.Status = StatusFailed
	run.UpdatedAt = time.Now().UTC()
	return nil
}

// RestartWithFeedback resets a settled run back to pending, replaces the
// adjustment feedback on its payload, and returns the payload to rerun.
// Runs still in progress are refused with ErrActive.
func (s *MemoryStore) RestartWithFeedback(id, feedback string) (planner.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[id]
	if !ok {
		return planner.Request{}, ErrNotFound
	}
	if !run.Status.Settled() {
		return planner.Request{}, ErrActive
	}

	run.Payload.Adjustments = feedback
	run.Status = StatusPending
	run.Stages = nil
	run.Result = nil
	run.Error = ""
	run.UpdatedAt = time.Now().UTC()
	return run.Payload, nil
}

// Prune drops settled runs whose last update is older than maxAge and
// returns how many were removed. Runs still in progress are kept.
func (s *MemoryStore) Prune(maxAge time.Duration) int {
	if maxAge <= 0 {
		return 0
	}
	cutoff := time.Now().UTC().Add(-maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, run := range s.runs {
		if run.Status.Settled() && run.UpdatedAt.Before(cutoff) {
			delete(s.runs, id)
			removed++
		}
	}
	return removed
}
