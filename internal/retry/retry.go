package retry

import (
	"context"
	"time"

	"github.com/codecravings/playbian-auto-typer/internal/logger"
	"github.com/codecravings/playbian-auto-typer/pkg/models"
)

// Default retry constants. MaxRetries defaults to zero: input simulation is
// not retried unless the user asks for it, since replaying a half-applied
// click or keystroke is rarely harmless.
const (
	DefaultMaxRetries    = 0
	DefaultDelaySeconds  = 0.5
	DefaultBackoffFactor = 2.0
)

// DefaultRetryPolicy provides the defaults used for unset policy fields.
var DefaultRetryPolicy = models.RetryPolicy{
	MaxRetries:    intPtr(DefaultMaxRetries),
	Delay:         float64Ptr(DefaultDelaySeconds),
	BackoffFactor: float64Ptr(DefaultBackoffFactor),
}

// Operation is a function that performs an action and returns an error if it fails.
type Operation func(ctx context.Context) error

// Do executes the provided operation, retrying according to the policy if it
// fails. Unset policy fields fall back to the defaults. The delay between
// attempts grows by the backoff factor and is cancellable via ctx.
func Do(ctx context.Context, operationName string, policy *models.RetryPolicy, op Operation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	effective := MergePolicies(policy, &DefaultRetryPolicy)
	l := logger.L().With("operation", operationName)

	maxRetries := *effective.MaxRetries
	delay := time.Duration(*effective.Delay * float64(time.Second))
	backoff := *effective.BackoffFactor

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			if attempt > 0 {
				l.Info("Operation succeeded after retry", "attempt", attempt+1)
			}
			return nil
		}

		if attempt == maxRetries {
			break
		}
		l.Warn("Operation failed, scheduling retry",
			"attempt", attempt+1, "max_attempts", maxRetries+1, "delay", delay.String(), "error", lastErr)

		select {
		case <-time.After(delay):
			delay = time.Duration(float64(delay) * backoff)
		case <-ctx.Done():
			l.Warn("Retry cancelled", "error", ctx.Err())
			return ctx.Err()
		}
	}

	return lastErr
}

// MergePolicies combines a specific policy with a default policy. Specific
// values override defaults; pointers detect unset fields. Nil policies and
// missing fields fall back to the package constants.
func MergePolicies(specific, defaultP *models.RetryPolicy) *models.RetryPolicy {
	merged := &models.RetryPolicy{
		MaxRetries:    intPtr(DefaultMaxRetries),
		Delay:         float64Ptr(DefaultDelaySeconds),
		BackoffFactor: float64Ptr(DefaultBackoffFactor),
	}
	for _, p := range []*models.RetryPolicy{defaultP, specific} {
		if p == nil {
			continue
		}
		if p.MaxRetries != nil {
			merged.MaxRetries = p.MaxRetries
		}
		if p.Delay != nil {
			merged.Delay = p.Delay
		}
		if p.BackoffFactor != nil {
			merged.BackoffFactor = p.BackoffFactor
		}
	}
	return merged
}

func intPtr(i int) *int             { return &i }
func float64Ptr(f float64) *float64 { return &f }
