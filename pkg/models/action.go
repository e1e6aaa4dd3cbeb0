package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ActionType is the variant discriminator for an Action. The set of variants
// is closed; anything else fails validation and deserialization.
type ActionType string

const (
	ActionTypeText ActionType = "type"
	ActionClick    ActionType = "click"
	ActionDelay    ActionType = "delay"
	ActionHotkey   ActionType = "hotkey"
	ActionKey      ActionType = "key"
	ActionScroll   ActionType = "scroll"
	ActionDrag     ActionType = "drag"
)

// MouseButtons are the button names accepted by click and drag actions.
var MouseButtons = []string{"left", "right", "middle"}

// ScrollDirections are the directions accepted by scroll actions.
var ScrollDirections = []string{"up", "down"}

// Action is one automation step. It is a tagged variant: Type selects which
// of the variant-specific fields are meaningful, and the shared fields
// (ID, Name, Description, Enabled, Delay, CreatedAt) apply to every variant.
type Action struct {
	Type        ActionType `json:"type"`
	ID          string     `json:"id,omitempty"`          // Unique identifier, assigned on save if empty
	Name        string     `json:"name,omitempty"`        // Human-readable name
	Description string     `json:"description,omitempty"` // Optional longer description
	Enabled     bool       `json:"enabled"`               // Disabled actions are skipped during playback
	Delay       float64    `json:"delay,omitempty"`       // Pre-delay in seconds before executing
	CreatedAt   time.Time  `json:"created_at"`

	// type
	Text string `json:"text,omitempty"` // Text to type; may contain <enter>-style key markup

	// click, scroll
	X int `json:"x,omitempty"`
	Y int `json:"y,omitempty"`

	// click, drag
	Button string `json:"button,omitempty"` // left, right or middle

	// delay
	WaitTime float64 `json:"wait_time"` // Wait time in seconds; always serialized so zero survives a round trip

	// hotkey
	Keys []string `json:"keys,omitempty"` // Combination pressed together, e.g. [ctrl c]

	// key
	Key string `json:"key,omitempty"` // Single named key, e.g. enter

	// scroll
	Clicks    int    `json:"clicks,omitempty"`    // Scroll wheel clicks
	Direction string `json:"direction,omitempty"` // up or down

	// drag
	StartX   int     `json:"start_x,omitempty"`
	StartY   int     `json:"start_y,omitempty"`
	EndX     int     `json:"end_x,omitempty"`
	EndY     int     `json:"end_y,omitempty"`
	Duration float64 `json:"duration,omitempty"` // Drag duration in seconds
}

// Constructors set the variant tag, a default name and the creation timestamp.
// Fields not covered by a constructor (pre-delay, description) are set directly.

// NewTypeAction creates an action that types the given text.
func NewTypeAction(text string) Action {
	return Action{Type: ActionTypeText, Name: "Type Text", Text: text, Enabled: true, CreatedAt: time.Now()}
}

// NewClickAction creates a mouse click at (x, y) with the given button.
func NewClickAction(x, y int, button string) Action {
	return Action{Type: ActionClick, Name: "Click", X: x, Y: y, Button: button, Enabled: true, CreatedAt: time.Now()}
}

// NewDelayAction creates a wait of the given number of seconds.
func NewDelayAction(waitTime float64) Action {
	return Action{Type: ActionDelay, Name: "Delay", WaitTime: waitTime, Enabled: true, CreatedAt: time.Now()}
}

// NewHotkeyAction creates a key combination press, e.g. ("ctrl", "c").
func NewHotkeyAction(keys ...string) Action {
	return Action{Type: ActionHotkey, Name: "Hotkey", Keys: keys, Enabled: true, CreatedAt: time.Now()}
}

// NewKeyAction creates a single named key press, e.g. "enter".
func NewKeyAction(key string) Action {
	return Action{Type: ActionKey, Name: "Special Key", Key: key, Enabled: true, CreatedAt: time.Now()}
}

// NewScrollAction creates a scroll of clicks wheel clicks at (x, y).
func NewScrollAction(x, y, clicks int, direction string) Action {
	return Action{Type: ActionScroll, Name: "Scroll", X: x, Y: y, Clicks: clicks, Direction: direction, Enabled: true, CreatedAt: time.Now()}
}

// NewDragAction creates a drag from (startX, startY) to (endX, endY) taking
// duration seconds, using the left button.
func NewDragAction(startX, startY, endX, endY int, duration float64) Action {
	return Action{
		Type: ActionDrag, Name: "Drag",
		StartX: startX, StartY: startY, EndX: endX, EndY: endY,
		Duration: duration, Button: "left",
		Enabled: true, CreatedAt: time.Now(),
	}
}

// Validate checks the variant-specific parameters. It is a pure predicate:
// it does not touch the input layer and reports only the first problem found.
func (a *Action) Validate() error {
	switch a.Type {
	case ActionTypeText:
		return nil // any text is typeable, including empty
	case ActionClick:
		if a.X < 0 || a.Y < 0 {
			return fmt.Errorf("coordinates (%d, %d) must be non-negative", a.X, a.Y)
		}
		return validButton(a.Button)
	case ActionDelay:
		if a.WaitTime < 0 {
			return fmt.Errorf("wait_time %g cannot be negative", a.WaitTime)
		}
		return nil
	case ActionHotkey:
		if len(a.Keys) == 0 {
			return fmt.Errorf("keys cannot be empty")
		}
		for _, k := range a.Keys {
			if strings.TrimSpace(k) == "" {
				return fmt.Errorf("keys cannot contain blank entries")
			}
		}
		return nil
	case ActionKey:
		if strings.TrimSpace(a.Key) == "" {
			return fmt.Errorf("key cannot be blank")
		}
		return nil
	case ActionScroll:
		if a.X < 0 || a.Y < 0 {
			return fmt.Errorf("coordinates (%d, %d) must be non-negative", a.X, a.Y)
		}
		if a.Clicks <= 0 {
			return fmt.Errorf("clicks must be positive, got %d", a.Clicks)
		}
		return validDirection(a.Direction)
	case ActionDrag:
		if a.StartX < 0 || a.StartY < 0 || a.EndX < 0 || a.EndY < 0 {
			return fmt.Errorf("drag coordinates must be non-negative")
		}
		if a.Duration <= 0 {
			return fmt.Errorf("duration must be positive, got %g", a.Duration)
		}
		return validButton(a.Button)
	default:
		return fmt.Errorf("unknown action type %q", a.Type)
	}
}

func validButton(button string) error {
	for _, b := range MouseButtons {
		if button == b {
			return nil
		}
	}
	return fmt.Errorf("button must be one of %v, got %q", MouseButtons, button)
}

func validDirection(direction string) error {
	for _, d := range ScrollDirections {
		if direction == d {
			return nil
		}
	}
	return fmt.Errorf("direction must be one of %v, got %q", ScrollDirections, direction)
}

// Describe returns a short human-readable summary of what the action does.
func (a *Action) Describe() string {
	switch a.Type {
	case ActionTypeText:
		text := a.Text
		if len(text) > 50 {
			text = text[:50] + "..."
		}
		return fmt.Sprintf("Type: %s", text)
	case ActionClick:
		return fmt.Sprintf("Click %s at (%d, %d)", a.Button, a.X, a.Y)
	case ActionDelay:
		return fmt.Sprintf("Wait for %g seconds", a.WaitTime)
	case ActionHotkey:
		return fmt.Sprintf("Press %s", strings.Join(a.Keys, "+"))
	case ActionKey:
		return fmt.Sprintf("Press %s key", a.Key)
	case ActionScroll:
		return fmt.Sprintf("Scroll %s %d clicks at (%d, %d)", a.Direction, a.Clicks, a.X, a.Y)
	case ActionDrag:
		return fmt.Sprintf("Drag from (%d, %d) to (%d, %d)", a.StartX, a.StartY, a.EndX, a.EndY)
	default:
		return fmt.Sprintf("Unknown action %q", a.Type)
	}
}

// String implements fmt.Stringer for log output.
func (a *Action) String() string {
	return fmt.Sprintf("%s (delay: %gs)", a.Describe(), a.Delay)
}

// Clone returns an independent copy of the action.
func (a *Action) Clone() Action {
	c := *a
	if a.Keys != nil {
		c.Keys = append([]string(nil), a.Keys...)
	}
	return c
}

// actionAlias avoids recursing into UnmarshalJSON.
type actionAlias Action

// UnmarshalJSON decodes an action, applying the defaults the file format
// allows each variant to omit: enabled true, button left, wait_time 1,
// key enter, clicks 3, direction up, duration 1. It rejects unknown variant
// tags outright; there is no partial recovery.
func (a *Action) UnmarshalJSON(data []byte) error {
	// The variant tag decides which defaults to seed before the real decode.
	var probe struct {
		Type ActionType `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	aux := actionAlias{Enabled: true}
	switch probe.Type {
	case ActionTypeText, ActionHotkey:
		// no variant defaults
	case ActionClick:
		aux.Button = "left"
	case ActionDelay:
		aux.WaitTime = 1.0
	case ActionKey:
		aux.Key = "enter"
	case ActionScroll:
		aux.Clicks = 3
		aux.Direction = "up"
	case ActionDrag:
		aux.Button = "left"
		aux.Duration = 1.0
	default:
		return fmt.Errorf("unknown action type %q", probe.Type)
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.CreatedAt.IsZero() {
		aux.CreatedAt = time.Now()
	}
	*a = Action(aux)
	return nil
}
