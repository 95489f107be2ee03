// Package pomodoro holds the timer and task list state and the pure
// transitions that drive it.
package pomodoro

import (
	"slices"

	"grandmatimer/internal/core/model"
)

// TimerState is the countdown part of State.
type TimerState struct {
	SecondsRemaining int
	Running          bool
	Phase            model.Phase
	// ActiveTaskID is empty when no task is active.
	ActiveTaskID string
}

// Draft mirrors the task entry form.
type Draft struct {
	Text     string
	Priority model.Priority
	// Revision is bumped every time an add clears the form.
	Revision int
}

// State is the whole component state.
type State struct {
	Timer        TimerState
	Pending      []model.Task
	Completed    []model.Task
	SoundEnabled bool
	Draft        Draft
}

// NewState returns a paused work phase at full length with empty lists.
func NewState(config model.TimerConfig) State {
	return State{
		Timer: TimerState{
			SecondsRemaining: config.Nominal(model.PhaseWork),
			Phase:            model.PhaseWork,
		},
		SoundEnabled: config.SoundEnabled,
		Draft:        Draft{Priority: model.PriorityMedium},
	}
}

// Clone returns a copy that shares no slices with the receiver.
func (state State) Clone() State {
	clone := state
	clone.Pending = append([]model.Task(nil), state.Pending...)
	clone.Completed = append([]model.Task(nil), state.Completed...)
	return clone
}

// Equal reports whether both states hold the same clock, lists, sound
// flag and draft.
func (state State) Equal(other State) bool {
	return state.Timer == other.Timer &&
		state.SoundEnabled == other.SoundEnabled &&
		state.Draft == other.Draft &&
		slices.Equal(state.Pending, other.Pending) &&
		slices.Equal(state.Completed, other.Completed)
}

// IsBreak reports whether the break phase is current.
func (state State) IsBreak() bool {
	return state.Timer.Phase == model.PhaseBreak
}

// ActiveTask returns the active task while it is still pending.
func (state State) ActiveTask() (model.Task, bool) {
	if state.Timer.ActiveTaskID == "" {
		return model.Task{}, false
	}
	index := indexOf(state.Pending, state.Timer.ActiveTaskID)
	if index < 0 {
		return model.Task{}, false
	}
	return state.Pending[index], true
}
