// Package input turns terminal input into discrete game events.
package input

import (
	"time"
)

// Kind distinguishes input event categories.
type Kind uint8

const (
	EventQuit        Kind = iota + 1 // Input closed or interrupt
	EventButtonPress                 // Primary pointer button pressed
	EventKeyDown
	EventKeyUp
)

// Code identifies a game key independent of the physical key.
type Code uint8

const (
	KeyNone Code = iota
	KeyLeft
	KeyRight
	KeyFire
	KeyQuit
	KeyStart
	numCodes
)

// Event is a single input event.
type Event struct {
	Kind Kind
	Code Code // For EventKeyDown and EventKeyUp
	Col  int  // For EventButtonPress, 0-based terminal cell
	Row  int
}

// Feed delivers input events to the game loop.
type Feed interface {
	// Poll returns all events that arrived since the last call without blocking.
	Poll() []Event
}

// keyHoldDuration is how long a movement key is considered held after its last press.
// Terminals only report presses, so releases are synthesized once it elapses.
const keyHoldDuration = 150 * time.Millisecond

// codeForRune maps a printable key to a game key.
func codeForRune(r rune) Code {
	switch r {
	case 'q', 'Q':
		return KeyQuit
	case 'a', 'A', 'h', 'H':
		return KeyLeft
	case 'd', 'D', 'l', 'L':
		return KeyRight
	case ' ':
		return KeyFire
	case '\r', '\n', 'p', 'P':
		return KeyStart
	}
	return KeyNone
}

// held reports whether a code has press and release semantics.
// Other codes are one-shot commands that only produce key down.
func held(c Code) bool {
	return c == KeyLeft || c == KeyRight
}

// keyTracker synthesizes key up events for terminals that only report presses.
type keyTracker struct {
	hold time.Duration
	last [numCodes]time.Time
	down [numCodes]bool
}

// press records a key press and appends the resulting events.
func (t *keyTracker) press(events []Event, c Code, now time.Time) []Event {
	if c == KeyNone {
		return events
	}
	if !held(c) {
		return append(events, Event{Kind: EventKeyDown, Code: c})
	}
	t.last[c] = now
	if !t.down[c] {
		t.down[c] = true
		events = append(events, Event{Kind: EventKeyDown, Code: c})
	}
	return events
}

// expire releases keys whose hold time has elapsed, in code order.
func (t *keyTracker) expire(events []Event, now time.Time) []Event {
	for c := range numCodes {
		if t.down[c] && now.Sub(t.last[c]) >= t.hold {
			t.down[c] = false
			events = append(events, Event{Kind: EventKeyUp, Code: c})
		}
	}
	return events
}
