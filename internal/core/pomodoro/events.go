package pomodoro

import (
	"time"

	"grandmatimer/internal/core/model"
)

// Event is an input to Apply.
type Event interface {
	eventName() string
}

// ToggleRunning flips between running and paused.
type ToggleRunning struct{}

// Reset rewinds the current phase and pauses.
type Reset struct{}

// Tick is one elapsed second.
type Tick struct{}

// StartTask makes a pending task active and starts a work phase.
type StartTask struct {
	ID string
}

// AddTask appends a pending task. ID and At are supplied by the caller.
type AddTask struct {
	Text     string
	Priority model.Priority
	ID       string
	At       time.Time
}

// EditDraft records the entry form contents.
type EditDraft struct {
	Text     string
	Priority model.Priority
}

// DeleteTask removes a pending task.
type DeleteTask struct {
	ID string
}

// ToggleSound flips the completion sound.
type ToggleSound struct{}

func (ToggleRunning) eventName() string { return "toggle_running" }
func (Reset) eventName() string         { return "reset" }
func (Tick) eventName() string          { return "tick" }
func (StartTask) eventName() string     { return "start_task" }
func (AddTask) eventName() string       { return "add_task" }
func (EditDraft) eventName() string     { return "edit_draft" }
func (DeleteTask) eventName() string    { return "delete_task" }
func (ToggleSound) eventName() string   { return "toggle_sound" }

// Name returns a short identifier for logging.
func Name(event Event) string {
	if event == nil {
		return ""
	}
	return event.eventName()
}

// Completion describes a countdown that reached zero.
type Completion struct {
	// Phase is the phase that just finished.
	Phase model.Phase
	// Task is the task moved to the completed list, if any.
	Task      *model.Task
	PlayAlarm bool
}
