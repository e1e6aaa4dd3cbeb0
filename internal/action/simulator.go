package action

import "time"

// Simulator abstracts the OS input layer so the executor and the sequence
// runner can be exercised without moving the real mouse. The production
// implementation is RobotSimulator; tests substitute a recording fake.
type Simulator interface {
	// Click moves the pointer to (x, y) and clicks the given button.
	Click(x, y int, button string) error

	// Scroll moves the pointer to (x, y) and scrolls the wheel the given
	// number of clicks up or down.
	Scroll(x, y, clicks int, direction string) error

	// Drag presses button at (startX, startY) and releases it at
	// (endX, endY), taking roughly duration to travel.
	Drag(startX, startY, endX, endY int, duration time.Duration, button string) error

	// TypeText types the literal text at the current focus.
	TypeText(text string) error

	// KeyTap presses and releases key while holding the modifiers.
	KeyTap(key string, modifiers ...string) error
}
