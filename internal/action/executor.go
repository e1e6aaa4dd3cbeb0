package action

import (
	"context"
	"fmt"
	"time"

	"github.com/codecravings/playbian-auto-typer/internal/logger"
	"github.com/codecravings/playbian-auto-typer/pkg/models"
)

// ExecutionError is the single error kind raised by action execution. It
// names the failing variant and wraps the underlying cause.
type ExecutionError struct {
	Variant models.ActionType
	Err     error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s action failed: %v", e.Variant, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// Executor executes single actions against a Simulator.
type Executor struct {
	sim Simulator
}

// NewExecutor creates a new action executor backed by the given simulator.
func NewExecutor(sim Simulator) *Executor {
	return &Executor{sim: sim}
}

// Execute runs one action. A disabled action is skipped without touching the
// simulator and reported as successful. The per-action pre-delay is honored
// first and is cancellable via ctx; a cancelled context returns the context
// error, not an ExecutionError. Any simulator fault comes back wrapped in
// *ExecutionError.
func (e *Executor) Execute(ctx context.Context, a *models.Action) error {
	l := logger.L().With("action", a.Describe())

	if !a.Enabled {
		l.Info("Skipping disabled action")
		return nil
	}

	if a.Delay > 0 {
		l.Debug("Waiting before executing", "delay_seconds", a.Delay)
		if err := sleepCtx(ctx, seconds(a.Delay)); err != nil {
			return err
		}
	}

	l.Info("Executing action")
	if err := e.executeVariant(ctx, a); err != nil {
		// Context errors pass through untouched so the runner can tell
		// cancellation apart from genuine failure.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		l.Error("Action execution failed", "error", err)
		return &ExecutionError{Variant: a.Type, Err: err}
	}
	return nil
}

// executeVariant dispatches over the closed variant set.
func (e *Executor) executeVariant(ctx context.Context, a *models.Action) error {
	switch a.Type {
	case models.ActionTypeText:
		return e.typeText(a.Text)
	case models.ActionClick:
		return e.sim.Click(a.X, a.Y, a.Button)
	case models.ActionDelay:
		return sleepCtx(ctx, seconds(a.WaitTime))
	case models.ActionHotkey:
		if len(a.Keys) == 0 {
			return fmt.Errorf("hotkey has no keys")
		}
		// The last key is tapped while the preceding keys are held.
		last := len(a.Keys) - 1
		return e.sim.KeyTap(a.Keys[last], a.Keys[:last]...)
	case models.ActionKey:
		return e.sim.KeyTap(a.Key)
	case models.ActionScroll:
		return e.sim.Scroll(a.X, a.Y, a.Clicks, a.Direction)
	case models.ActionDrag:
		return e.sim.Drag(a.StartX, a.StartY, a.EndX, a.EndY, seconds(a.Duration), a.Button)
	default:
		return fmt.Errorf("unknown action type %q", a.Type)
	}
}

// typeText types the text, honoring inline <key> markup.
func (e *Executor) typeText(text string) error {
	for _, seg := range splitTypeText(text) {
		switch seg.kind {
		case segmentText:
			if err := e.sim.TypeText(seg.value); err != nil {
				return err
			}
		case segmentKey:
			if err := e.sim.KeyTap(seg.value); err != nil {
				return err
			}
		}
	}
	return nil
}

// sleepCtx sleeps for d or until ctx is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
