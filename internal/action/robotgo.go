package action

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-vgo/robotgo"

	"github.com/codecravings/playbian-auto-typer/internal/logger"
	"github.com/codecravings/playbian-auto-typer/pkg/models"
)

// ErrFailSafe is returned when the fail-safe triggers: the user parked the
// pointer in a screen corner to abort a runaway sequence.
var ErrFailSafe = errors.New("fail-safe triggered: pointer is in a screen corner")

// failSafeMargin is how close to a corner (in pixels) the pointer must be
// for the fail-safe to trigger.
const failSafeMargin = 2

// RobotSimulator drives the OS input layer through robotgo. The fail-safe
// flag and the inter-call pause come from application settings instead of
// process-global state.
type RobotSimulator struct {
	failSafe bool
	pause    time.Duration
}

// NewRobotSimulator creates a simulator configured from application settings.
func NewRobotSimulator(settings models.Settings) *RobotSimulator {
	return &RobotSimulator{
		failSafe: settings.FailSafe,
		pause:    time.Duration(settings.Pause * float64(time.Second)),
	}
}

// Click moves the pointer to (x, y) and clicks the given button once.
func (s *RobotSimulator) Click(x, y int, button string) error {
	if err := s.checkFailSafe(); err != nil {
		return err
	}
	robotgo.Move(x, y)
	robotgo.Click(button, false)
	s.rest()
	return nil
}

// Scroll moves the pointer to (x, y) and scrolls clicks wheel clicks in the
// given direction.
func (s *RobotSimulator) Scroll(x, y, clicks int, direction string) error {
	if err := s.checkFailSafe(); err != nil {
		return err
	}
	robotgo.Move(x, y)
	robotgo.ScrollDir(clicks, direction)
	s.rest()
	return nil
}

// Drag presses button at the start point and drags to the end point.
// robotgo's smooth drag controls its own pacing; duration sets a floor so
// very short drags still register with the target application.
func (s *RobotSimulator) Drag(startX, startY, endX, endY int, duration time.Duration, button string) error {
	if err := s.checkFailSafe(); err != nil {
		return err
	}
	start := time.Now()
	robotgo.Move(startX, startY)
	robotgo.DragSmooth(endX, endY, button)
	if remaining := duration - time.Since(start); remaining > 0 {
		time.Sleep(remaining)
	}
	s.rest()
	return nil
}

// TypeText types the literal text at the current focus.
func (s *RobotSimulator) TypeText(text string) error {
	if err := s.checkFailSafe(); err != nil {
		return err
	}
	robotgo.TypeStr(text)
	s.rest()
	return nil
}

// KeyTap presses and releases key while holding the modifiers.
func (s *RobotSimulator) KeyTap(key string, modifiers ...string) error {
	if err := s.checkFailSafe(); err != nil {
		return err
	}
	args := make([]interface{}, len(modifiers))
	for i, m := range modifiers {
		args[i] = m
	}
	if err := robotgo.KeyTap(key, args...); err != nil {
		return fmt.Errorf("key tap %q: %w", key, err)
	}
	s.rest()
	return nil
}

// checkFailSafe aborts when the pointer sits in any screen corner.
func (s *RobotSimulator) checkFailSafe() error {
	if !s.failSafe {
		return nil
	}
	x, y := robotgo.Location()
	w, h := robotgo.GetScreenSize()
	atEdgeX := x <= failSafeMargin || x >= w-1-failSafeMargin
	atEdgeY := y <= failSafeMargin || y >= h-1-failSafeMargin
	if atEdgeX && atEdgeY {
		logger.L().Warn("Fail-safe triggered", "x", x, "y", y)
		return ErrFailSafe
	}
	return nil
}

// rest pauses between simulated inputs so target applications keep up.
func (s *RobotSimulator) rest() {
	if s.pause > 0 {
		time.Sleep(s.pause)
	}
}
