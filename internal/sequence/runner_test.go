package sequence

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codecravings/playbian-auto-typer/internal/action"
	"github.com/codecravings/playbian-auto-typer/internal/logger"
	"github.com/codecravings/playbian-auto-typer/pkg/models"
)

// testInitLogger initializes the logger for test execution, discarding output.
func testInitLogger(t *testing.T) {
	t.Helper()
	settings := models.Settings{LogLevel: "error", LogFormat: "text"}
	require.NoError(t, logger.Init(settings, io.Discard))
}

// scriptedSimulator records calls and fails on demand: failOn[call index]
// yields that error for the matching invocation (counting from 1).
type scriptedSimulator struct {
	calls  []string
	failOn map[int]error
}

func (f *scriptedSimulator) record(call string) error {
	f.calls = append(f.calls, call)
	if err, ok := f.failOn[len(f.calls)]; ok {
		return err
	}
	return nil
}

func (f *scriptedSimulator) Click(x, y int, button string) error {
	return f.record(fmt.Sprintf("click %s %d,%d", button, x, y))
}

func (f *scriptedSimulator) Scroll(x, y, clicks int, direction string) error {
	return f.record(fmt.Sprintf("scroll %s %d at %d,%d", direction, clicks, x, y))
}

func (f *scriptedSimulator) Drag(startX, startY, endX, endY int, duration time.Duration, button string) error {
	return f.record("drag")
}

func (f *scriptedSimulator) TypeText(text string) error { return f.record("type " + text) }

func (f *scriptedSimulator) KeyTap(key string, modifiers ...string) error {
	return f.record("tap " + key)
}

func newTestRunner(sim action.Simulator) *Runner {
	return NewRunner(action.NewExecutor(sim), models.DefaultSettings())
}

func TestRunner_Run_SingleAction(t *testing.T) {
	testInitLogger(t)
	sim := &scriptedSimulator{}
	runner := newTestRunner(sim)

	seq := models.NewSequence("test")
	seq.AddAction(models.NewClickAction(100, 200, "left"))

	result, err := runner.Run(context.Background(), seq, Options{})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Passes)
	require.Len(t, result.Results, 1)
	assert.NoError(t, result.Results[0].Err)
	assert.Equal(t, []string{"click left 100,200"}, sim.calls)
}

func TestRunner_Run_LoopCountPasses(t *testing.T) {
	testInitLogger(t)
	sim := &scriptedSimulator{}
	runner := newTestRunner(sim)

	seq := models.NewSequence("test")
	seq.LoopEnabled = true
	seq.LoopCount = 3
	seq.AddAction(models.NewKeyAction("enter"))
	seq.AddAction(models.NewKeyAction("tab"))

	result, err := runner.Run(context.Background(), seq, Options{})

	require.NoError(t, err)
	assert.Equal(t, 3, result.Passes, "loop count N must run exactly N full passes")
	assert.Len(t, result.Results, 6)
	assert.Len(t, sim.calls, 6)
}

// A delay then a click, looped twice without stop-on-error: both actions run
// twice and roughly two wait periods elapse.
func TestRunner_Run_DelayThenClickTwice(t *testing.T) {
	testInitLogger(t)
	sim := &scriptedSimulator{}
	runner := newTestRunner(sim)

	seq := models.NewSequence("test")
	seq.LoopEnabled = true
	seq.LoopCount = 2
	seq.StopOnError = false
	seq.AddAction(models.NewDelayAction(0.05))
	seq.AddAction(models.NewClickAction(100, 200, "left"))

	start := time.Now()
	result, err := runner.Run(context.Background(), seq, Options{})
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Passes)
	assert.Equal(t, []string{"click left 100,200", "click left 100,200"}, sim.calls)
	assert.GreaterOrEqual(t, elapsed, 100*time.Millisecond, "both delay actions must sleep")
}

func TestRunner_Run_StopOnErrorAborts(t *testing.T) {
	testInitLogger(t)
	sim := &scriptedSimulator{failOn: map[int]error{2: errors.New("boom")}}
	runner := newTestRunner(sim)

	seq := models.NewSequence("test")
	seq.StopOnError = true
	seq.AddAction(models.NewKeyAction("a"))
	seq.AddAction(models.NewKeyAction("b")) // fails
	seq.AddAction(models.NewKeyAction("c")) // must never be attempted

	result, err := runner.Run(context.Background(), seq, Options{})

	require.Error(t, err)
	var execErr *action.ExecutionError
	assert.ErrorAs(t, err, &execErr)
	assert.Equal(t, []string{"tap a", "tap b"}, sim.calls, "later actions must not run")
	assert.Equal(t, 0, result.Passes, "aborted pass does not count as completed")
	require.Len(t, result.Results, 2)
	assert.Error(t, result.Results[1].Err)
	assert.Equal(t, err, result.Err)
}

func TestRunner_Run_ContinueOnError(t *testing.T) {
	testInitLogger(t)
	sim := &scriptedSimulator{failOn: map[int]error{1: errors.New("boom")}}
	runner := newTestRunner(sim)

	seq := models.NewSequence("test")
	seq.StopOnError = false
	seq.AddAction(models.NewKeyAction("a")) // fails
	seq.AddAction(models.NewKeyAction("b"))
	seq.AddAction(models.NewKeyAction("c"))

	result, err := runner.Run(context.Background(), seq, Options{})

	require.NoError(t, err, "run must succeed overall despite action failure")
	assert.Equal(t, []string{"tap a", "tap b", "tap c"}, sim.calls, "all actions must be attempted")
	assert.Equal(t, 1, result.Passes)
	require.Len(t, result.Failed(), 1)
	assert.Equal(t, 0, result.Failed()[0].Index)
}

func TestRunner_Run_DisabledActionSkipped(t *testing.T) {
	testInitLogger(t)
	sim := &scriptedSimulator{}
	runner := newTestRunner(sim)

	disabled := models.NewKeyAction("a")
	disabled.Enabled = false

	seq := models.NewSequence("test")
	seq.AddAction(disabled)
	seq.AddAction(models.NewKeyAction("b"))

	result, err := runner.Run(context.Background(), seq, Options{})

	require.NoError(t, err)
	assert.Equal(t, []string{"tap b"}, sim.calls)
	require.Len(t, result.Results, 2)
	assert.True(t, result.Results[0].Skipped)
	assert.NoError(t, result.Results[0].Err, "skipped action reports success")
	assert.False(t, result.Results[1].Skipped)
}

func TestRunner_Run_InvalidSequenceRefused(t *testing.T) {
	testInitLogger(t)
	sim := &scriptedSimulator{}
	runner := newTestRunner(sim)

	seq := models.NewSequence("test")
	seq.AddAction(models.NewClickAction(-1, 0, "left"))

	_, err := runner.Run(context.Background(), seq, Options{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Empty(t, sim.calls)
}

func TestRunner_Run_StopCheckEndsRun(t *testing.T) {
	testInitLogger(t)
	sim := &scriptedSimulator{}
	runner := newTestRunner(sim)

	seq := models.NewSequence("test")
	seq.LoopEnabled = true
	seq.LoopCount = models.LoopForever
	seq.AddAction(models.NewKeyAction("a"))

	var executed atomic.Int32
	stop := func() bool { return executed.Load() >= 3 }

	result, err := runner.Run(context.Background(), seq, Options{
		Stop: stop,
		Progress: func(p Progress) {
			executed.Add(1)
		},
	})

	require.NoError(t, err, "cooperative stop is a clean termination")
	assert.Equal(t, 3, len(sim.calls))
	assert.Equal(t, 3, result.Passes)
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	testInitLogger(t)
	sim := &scriptedSimulator{}
	runner := newTestRunner(sim)

	seq := models.NewSequence("test")
	seq.LoopEnabled = true
	seq.LoopCount = models.LoopForever
	seq.AddAction(models.NewDelayAction(0.05))

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := runner.Run(ctx, seq, Options{})

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second, "cancellation must end a forever loop promptly")
}

func TestRunner_Run_ProgressCallback(t *testing.T) {
	testInitLogger(t)
	sim := &scriptedSimulator{}
	runner := newTestRunner(sim)

	seq := models.NewSequence("test")
	seq.LoopEnabled = true
	seq.LoopCount = 2
	seq.RepeatInterval = 0.02
	seq.AddAction(models.NewKeyAction("a"))
	seq.AddAction(models.NewKeyAction("b"))

	var updates []Progress
	_, err := runner.Run(context.Background(), seq, Options{
		Progress: func(p Progress) { updates = append(updates, p) },
	})
	require.NoError(t, err)

	// Two actions per pass, two passes, plus one inter-pass wait update.
	require.Len(t, updates, 5)
	assert.Equal(t, 1, updates[0].Pass)
	assert.Equal(t, 0, updates[0].ActionIndex)
	assert.Equal(t, 2, updates[0].ActionCount)
	require.NotNil(t, updates[0].Action)
	assert.Equal(t, models.ActionKey, updates[0].Action.Type)

	assert.Equal(t, 1, updates[1].Pass)
	assert.Equal(t, 1, updates[1].ActionIndex)

	// The inter-pass wait update carries no action.
	assert.Equal(t, -1, updates[2].ActionIndex)
	assert.Nil(t, updates[2].Action)

	assert.Equal(t, 2, updates[3].Pass)
	assert.Equal(t, 0, updates[3].ActionIndex)
}

func TestRunner_Run_RepeatIntervalBetweenPasses(t *testing.T) {
	testInitLogger(t)
	sim := &scriptedSimulator{}
	runner := newTestRunner(sim)

	seq := models.NewSequence("test")
	seq.LoopEnabled = true
	seq.LoopCount = 2
	seq.RepeatInterval = 0.08
	seq.AddAction(models.NewKeyAction("a"))

	start := time.Now()
	result, err := runner.Run(context.Background(), seq, Options{})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Passes)
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond,
		"one inter-pass interval must elapse between two passes")
}

func TestRunner_Run_RetryPolicyRecovers(t *testing.T) {
	testInitLogger(t)
	// First two taps fail, third succeeds.
	sim := &scriptedSimulator{failOn: map[int]error{
		1: errors.New("transient"),
		2: errors.New("transient"),
	}}
	runner := newTestRunner(sim)

	maxRetries := 2
	delay := 0.001
	seq := models.NewSequence("test")
	seq.RetryPolicy = &models.RetryPolicy{MaxRetries: &maxRetries, Delay: &delay}
	seq.AddAction(models.NewKeyAction("a"))

	result, err := runner.Run(context.Background(), seq, Options{})

	require.NoError(t, err, "action must succeed after retries")
	assert.Len(t, sim.calls, 3)
	require.Len(t, result.Results, 1)
	assert.NoError(t, result.Results[0].Err)
}

func TestRunner_Run_RejectsConcurrentRun(t *testing.T) {
	testInitLogger(t)
	sim := &scriptedSimulator{}
	runner := newTestRunner(sim)

	seq := models.NewSequence("test")
	seq.AddAction(models.NewDelayAction(0.2))

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		close(started)
		_, err := runner.Run(context.Background(), seq, Options{})
		done <- err
	}()

	<-started
	time.Sleep(50 * time.Millisecond) // let the first run get going

	other := models.NewSequence("other")
	other.AddAction(models.NewKeyAction("a"))
	_, err := runner.Run(context.Background(), other, Options{})

	require.ErrorIs(t, err, ErrAlreadyRunning)
	require.NoError(t, <-done)
}
