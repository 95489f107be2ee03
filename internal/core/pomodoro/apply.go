package pomodoro

import (
	"strings"

	"grandmatimer/internal/core/model"
)

// Apply computes the state that follows event. The input state is not
// modified. A non-nil Completion is returned only on the tick that takes
// the clock to zero.
func Apply(state State, config model.TimerConfig, event Event) (State, *Completion) {
	next := state.Clone()

	switch event := event.(type) {
	case ToggleRunning:
		next.Timer.Running = !next.Timer.Running
	case Reset:
		next.Timer.SecondsRemaining = config.Nominal(next.Timer.Phase)
		next.Timer.Running = false
		next.Timer.ActiveTaskID = ""
	case Tick:
		return tick(next, config)
	case StartTask:
		if indexOf(next.Pending, event.ID) < 0 {
			return state, nil
		}
		next.Timer = TimerState{
			SecondsRemaining: config.Nominal(model.PhaseWork),
			Running:          true,
			Phase:            model.PhaseWork,
			ActiveTaskID:     event.ID,
		}
	case AddTask:
		if strings.TrimSpace(event.Text) == "" {
			return state, nil
		}
		priority := event.Priority
		if !priority.Valid() {
			priority = model.PriorityMedium
		}
		next.Pending = append(next.Pending, model.Task{
			ID:        event.ID,
			Text:      event.Text,
			Priority:  priority,
			CreatedAt: event.At,
		})
		next.Draft = Draft{
			Priority: model.PriorityMedium,
			Revision: state.Draft.Revision + 1,
		}
	case EditDraft:
		next.Draft.Text = event.Text
		next.Draft.Priority = event.Priority
		if !next.Draft.Priority.Valid() {
			next.Draft.Priority = model.PriorityMedium
		}
	case DeleteTask:
		index := indexOf(next.Pending, event.ID)
		if index < 0 {
			return state, nil
		}
		next.Pending = append(next.Pending[:index], next.Pending[index+1:]...)
		if next.Timer.ActiveTaskID == event.ID {
			next.Timer.ActiveTaskID = ""
		}
	case ToggleSound:
		next.SoundEnabled = !next.SoundEnabled
	default:
		return state, nil
	}
	return next, nil
}

// tick decrements a running clock and completes the phase at zero. Once
// completed the clock is paused, so a second tick at zero is a no-op.
func tick(state State, config model.TimerConfig) (State, *Completion) {
	if !state.Timer.Running {
		return state, nil
	}
	if state.Timer.SecondsRemaining > 0 {
		state.Timer.SecondsRemaining--
	}
	if state.Timer.SecondsRemaining > 0 {
		return state, nil
	}
	return complete(state, config)
}

func complete(state State, config model.TimerConfig) (State, *Completion) {
	completion := &Completion{
		Phase:     state.Timer.Phase,
		PlayAlarm: state.SoundEnabled,
	}

	if state.Timer.Phase == model.PhaseWork {
		if index := indexOf(state.Pending, state.Timer.ActiveTaskID); index >= 0 {
			task := state.Pending[index]
			state.Pending = append(state.Pending[:index], state.Pending[index+1:]...)
			state.Completed = append(state.Completed, task)
			completion.Task = &task
		}
		state.Timer.ActiveTaskID = ""
		state.Timer.Phase = model.PhaseBreak
	} else {
		state.Timer.Phase = model.PhaseWork
	}
	state.Timer.SecondsRemaining = config.Nominal(state.Timer.Phase)
	state.Timer.Running = false
	return state, completion
}

// Rebase moves a paused clock that sits at the full length of its phase
// onto the new configuration. Running or partly elapsed clocks are kept.
func Rebase(state State, previous, current model.TimerConfig) State {
	if state.Timer.Running {
		return state
	}
	if state.Timer.SecondsRemaining != previous.Nominal(state.Timer.Phase) {
		return state
	}
	state.Timer.SecondsRemaining = current.Nominal(state.Timer.Phase)
	return state
}

func indexOf(tasks []model.Task, id string) int {
	if id == "" {
		return -1
	}
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
