package sequence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/codecravings/playbian-auto-typer/internal/action"
	"github.com/codecravings/playbian-auto-typer/internal/logger"
	"github.com/codecravings/playbian-auto-typer/internal/retry"
	"github.com/codecravings/playbian-auto-typer/pkg/models"
)

// ErrAlreadyRunning is returned when Run is called while a run is in flight.
// A Runner executes at most one sequence at a time; there is only one
// physical mouse and keyboard to drive.
var ErrAlreadyRunning = errors.New("a sequence run is already in progress")

// Progress describes the runner's position, passed to the progress callback
// before each action and once before each inter-pass wait.
type Progress struct {
	Pass        int // 1-based pass number
	PassCount   int // total passes; 0 when running forever
	ActionIndex int // 0-based index into the action list; -1 during the inter-pass wait
	ActionCount int
	Action      *models.Action // nil during the inter-pass wait
}

// ProgressFunc receives progress updates. It runs on the runner's goroutine,
// so it must not block for long.
type ProgressFunc func(Progress)

// StopFunc is the cooperative cancellation check, consulted between actions
// and passes. Returning true ends the run cleanly.
type StopFunc func() bool

// Options carries the external collaborator hooks for one run.
type Options struct {
	Progress ProgressFunc
	Stop     StopFunc
}

// ActionResult records the outcome of one action execution within a run.
type ActionResult struct {
	Pass     int
	Index    int
	Variant  models.ActionType
	Skipped  bool // the action was disabled
	Duration time.Duration
	Err      error
}

// RunResult aggregates the outcome of a whole run.
type RunResult struct {
	Passes  int // full passes completed
	Results []ActionResult
	Err     error // terminal error for a stop-on-error abort, nil otherwise
}

// Failed returns the results of actions that failed.
func (r *RunResult) Failed() []ActionResult {
	var failed []ActionResult
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// Runner plays back a sequence one action at a time. Execution is
// synchronous on the caller's goroutine; cancellation is cooperative via the
// stop check and the run context.
type Runner struct {
	executor *action.Executor
	settings models.Settings
	running  atomic.Bool
}

// NewRunner creates a sequence runner.
func NewRunner(executor *action.Executor, settings models.Settings) *Runner {
	return &Runner{executor: executor, settings: settings}
}

// Run plays back the sequence. It validates first and refuses to start an
// invalid sequence. Each action executes under the sequence's retry policy
// merged over the application default. On action failure the run either
// aborts (stop-on-error) or records the failure and continues. The returned
// RunResult is populated even when err is non-nil.
func (r *Runner) Run(ctx context.Context, seq *models.Sequence, opts Options) (*RunResult, error) {
	if !r.running.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRunning
	}
	defer r.running.Store(false)

	if problems := seq.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("sequence validation failed:\n  %s", strings.Join(problems, "\n  "))
	}

	passCount, forever := seq.Passes()
	policy := retry.MergePolicies(seq.RetryPolicy, &r.settings.DefaultRetry)

	l := logger.L().With("sequence", seq.Name)
	l.Info("Starting sequence run", "actions", len(seq.Actions), "passes", passCount, "forever", forever)

	result := &RunResult{}
	total := len(seq.Actions)

	for pass := 0; forever || pass < passCount; pass++ {
		if stopped(ctx, opts.Stop) {
			l.Info("Run stopped before pass", "pass", pass+1)
			return result, ctx.Err()
		}

		for i := range seq.Actions {
			a := &seq.Actions[i]
			if stopped(ctx, opts.Stop) {
				l.Info("Run stopped mid-pass", "pass", pass+1, "action_index", i)
				return result, ctx.Err()
			}

			if opts.Progress != nil {
				opts.Progress(Progress{
					Pass:        pass + 1,
					PassCount:   passCount,
					ActionIndex: i,
					ActionCount: total,
					Action:      a,
				})
			}

			start := time.Now()
			err := retry.Do(ctx, a.Describe(), policy, func(opCtx context.Context) error {
				return r.executor.Execute(opCtx, a)
			})
			res := ActionResult{
				Pass:     pass + 1,
				Index:    i,
				Variant:  a.Type,
				Skipped:  !a.Enabled,
				Duration: time.Since(start),
				Err:      err,
			}
			result.Results = append(result.Results, res)

			if err != nil {
				if ctx.Err() != nil {
					l.Info("Run cancelled", "pass", pass+1, "action_index", i)
					return result, ctx.Err()
				}
				if seq.StopOnError {
					l.Error("Action failed, aborting run", "action_index", i, "error", err)
					result.Err = err
					return result, err
				}
				l.Error("Action failed, continuing", "action_index", i, "error", err)
			}
		}
		result.Passes++

		morePasses := forever || pass < passCount-1
		if morePasses && seq.RepeatInterval > 0 {
			if opts.Progress != nil {
				opts.Progress(Progress{
					Pass:        pass + 1,
					PassCount:   passCount,
					ActionIndex: -1,
					ActionCount: total,
				})
			}
			if err := waitInterval(ctx, opts.Stop, seq.RepeatInterval); err != nil {
				return result, err
			}
			if stopped(ctx, opts.Stop) {
				return result, ctx.Err()
			}
		}
	}

	l.Info("Sequence run finished", "passes", result.Passes, "failures", len(result.Failed()))
	return result, nil
}

// stopped reports whether the run should end, via either the context or the
// cooperative stop check.
func stopped(ctx context.Context, stop StopFunc) bool {
	if ctx.Err() != nil {
		return true
	}
	return stop != nil && stop()
}

// waitInterval sleeps the inter-pass interval, polling the stop check so a
// long interval does not hold the run hostage.
func waitInterval(ctx context.Context, stop StopFunc, seconds float64) error {
	remaining := time.Duration(seconds * float64(time.Second))
	const tick = 50 * time.Millisecond
	for remaining > 0 {
		d := remaining
		if stop != nil && d > tick {
			d = tick
		}
		timer := time.NewTimer(d)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
		if stop != nil && stop() {
			return nil
		}
		remaining -= d
	}
	return nil
}
