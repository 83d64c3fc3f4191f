package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/rs/xid"

	"github.com/nickrallison/svql-go/search"
)

// Runner executes a batch of Tasks concurrently over a Scheduler-bounded
// worker pool, reusing one IndexCache across the whole batch so a design
// referenced by several tasks is indexed only once.
type Runner struct {
	cache     *IndexCache
	scheduler Scheduler
}

// NewRunner builds a Runner with the default memory-aware scheduler sized
// per cfg.
func NewRunner(cfg PoolConfig) *Runner {
	return &Runner{cache: NewIndexCache(), scheduler: NewScheduler(cfg)}
}

// NewRunnerWithScheduler builds a Runner against an explicit Scheduler, the
// seam tests substitute a MockScheduler through.
func NewRunnerWithScheduler(scheduler Scheduler) *Runner {
	return &Runner{cache: NewIndexCache(), scheduler: scheduler}
}

// Run executes every task, each bounded by r.scheduler, and returns one
// Result per task in the same order as tasks.
func (r *Runner) Run(ctx context.Context, tasks []Task) []Result {
	results := make([]Result, len(tasks))
	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		go func(i int, task Task) {
			defer wg.Done()
			results[i] = r.runOne(ctx, task)
		}(i, task)
	}
	wg.Wait()
	return results
}

func (r *Runner) runOne(ctx context.Context, task Task) Result {
	id := xid.New()
	res := Result{ID: id, Label: task.Label}

	release, err := r.scheduler.Acquire(ctx)
	if err != nil {
		res.Err = err
		return res
	}
	defer release()

	slog.Debug("session: task start", "id", id.String(), "label", task.Label)

	pIndex := r.cache.Get(task.Needle)
	dIndex := r.cache.Get(task.Haystack)

	res.Matches = search.Run(pIndex, dIndex, task.Config)
	slog.Debug("session: task done", "id", id.String(), "label", task.Label, "matches", len(res.Matches))
	return res
}
