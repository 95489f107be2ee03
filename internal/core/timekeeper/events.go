package timekeeper

import (
	"time"

	"grandmatimer/internal/core/pomodoro"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStateChange   EventType = "state_change"
	EventTick          EventType = "tick"
	EventPhaseComplete EventType = "phase_complete"
)

// Event represents a TimeKeeper update for observers. State is a private
// copy and may be read freely.
type Event struct {
	Type       EventType
	State      pomodoro.State
	Completion *pomodoro.Completion
	At         time.Time
}
