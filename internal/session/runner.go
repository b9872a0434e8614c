package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nvegesna/planmyday/internal/planner"
)

// PlanWorkflow drafts a full day plan for one request, reporting stage
// progress through the notify callback.
type PlanWorkflow interface {
	Run(ctx context.Context, req planner.Request, notify planner.Notify) (*planner.Result, error)
}

// Runner executes plan runs in background goroutines and records their
// progress and outcome in the store.
type Runner struct {
	store    *MemoryStore
	workflow PlanWorkflow
	timeout  time.Duration
	logger   *slog.Logger
	wg       sync.WaitGroup
}

// NewRunner builds a runner. timeout bounds a single end-to-end plan run;
// zero or negative disables the deadline.
func NewRunner(store *MemoryStore, workflow PlanWorkflow, timeout time.Duration, logger *slog.Logger) *Runner {
	return &Runner{
		store:    store,
		workflow: workflow,
		timeout:  timeout,
		logger:   logger,
	}
}

// Launch starts executing the run with the given id in the background.
func (r *Runner) Launch(id string) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.execute(id)
	}()
}

// Wait blocks until every launched run has settled. Used on shutdown so
// in-flight plans finish writing their outcome.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) execute(id string) {
	run, err := r.store.Get(id)
	if err != nil {
		r.logger.Warn("plan run vanished before start", "run_id", id, "error", err)
		return
	}
	if err := r.store.MarkRunning(id); err != nil {
		r.logger.Warn("mark plan run running", "run_id", id, "error", err)
		return
	}

	ctx := context.Background()
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	notify := func(stage, message string) {
		if err := r.store.AppendStage(id, stage, message); err != nil {
			r.logger.Warn("record plan stage", "run_id", id, "stage", stage, "error", err)
		}
	}

	result, err := r.workflow.Run(ctx, run.Payload, notify)
	if err != nil {
		r.logger.Error("plan run failed", "run_id", id, "error", err)
		if ferr := r.store.Fail(id, err); ferr != nil {
			r.logger.Warn("record plan failure", "run_id", id, "error", ferr)
		}
		return
	}

	if err := r.store.Complete(id, result); err != nil {
		r.logger.Warn("record plan result", "run_id", id, "error", err)
		return
	}
	r.logger.Info("plan run completed", "run_id", id, "location", run.Payload.Location)
}
