package models

import (
	"fmt"
	"time"
)

// LoopForever, used as LoopCount with looping enabled, repeats the sequence
// until the stop check fires or the run context is cancelled.
const LoopForever = 0

// Sequence is an ordered, loopable collection of actions together with its
// playback configuration. Order is meaningful: actions play back in slice
// order. A Sequence is not safe for concurrent mutation or concurrent runs.
type Sequence struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	ModifiedAt  time.Time `json:"modified_at"`

	LoopEnabled    bool    `json:"loop_enabled"`              // Repeat the sequence LoopCount times
	LoopCount      int     `json:"loop_count"`                // Number of passes; <= 0 means run forever
	RepeatInterval float64 `json:"repeat_interval,omitempty"` // Seconds to wait between passes
	StopOnError    bool    `json:"stop_on_error"`             // Abort the run on the first failing action

	// Optional retry policy applied to each action execution,
	// merged over the application default.
	RetryPolicy *RetryPolicy `json:"retry_policy,omitempty"`

	Actions []Action `json:"actions"`
}

// NewSequence creates an empty sequence with the given name.
func NewSequence(name string) *Sequence {
	if name == "" {
		name = "Untitled Sequence"
	}
	now := time.Now()
	return &Sequence{
		Name:        name,
		CreatedAt:   now,
		ModifiedAt:  now,
		LoopCount:   1,
		StopOnError: true,
	}
}

// AddAction appends an action to the sequence.
func (s *Sequence) AddAction(a Action) {
	s.Actions = append(s.Actions, a)
	s.touch()
}

// RemoveAction removes the action at index. It reports whether the index
// was in range.
func (s *Sequence) RemoveAction(index int) bool {
	if index < 0 || index >= len(s.Actions) {
		return false
	}
	s.Actions = append(s.Actions[:index], s.Actions[index+1:]...)
	s.touch()
	return true
}

// MoveAction moves the action at from to position to, shifting the actions
// in between. It reports whether both indices were in range.
func (s *Sequence) MoveAction(from, to int) bool {
	n := len(s.Actions)
	if from < 0 || from >= n || to < 0 || to >= n {
		return false
	}
	a := s.Actions[from]
	s.Actions = append(s.Actions[:from], s.Actions[from+1:]...)
	s.Actions = append(s.Actions[:to], append([]Action{a}, s.Actions[to:]...)...)
	s.touch()
	return true
}

// Clear removes all actions from the sequence.
func (s *Sequence) Clear() {
	s.Actions = nil
	s.touch()
}

// Validate performs the pre-run check and returns human-readable problem
// descriptions. An empty slice means the sequence is runnable.
func (s *Sequence) Validate() []string {
	var problems []string
	if len(s.Actions) == 0 {
		problems = append(problems, "sequence is empty")
	}
	for i := range s.Actions {
		a := &s.Actions[i]
		if err := a.Validate(); err != nil {
			problems = append(problems, fmt.Sprintf("action %d (%s): %v", i+1, a.Describe(), err))
		}
	}
	if s.RepeatInterval < 0 {
		problems = append(problems, fmt.Sprintf("repeat_interval %g cannot be negative", s.RepeatInterval))
	}
	return problems
}

// Passes returns the number of playback passes a run should make and whether
// the run should instead repeat forever.
func (s *Sequence) Passes() (count int, forever bool) {
	if !s.LoopEnabled {
		return 1, false
	}
	if s.LoopCount <= LoopForever {
		return 0, true
	}
	return s.LoopCount, false
}

func (s *Sequence) touch() {
	s.ModifiedAt = time.Now()
}

// String implements fmt.Stringer for log output.
func (s *Sequence) String() string {
	return fmt.Sprintf("sequence %q with %d actions", s.Name, len(s.Actions))
}
