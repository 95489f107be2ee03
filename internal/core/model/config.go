package model

import "time"

const (
	DefaultWorkDuration  = 25 * time.Minute
	DefaultBreakDuration = 5 * time.Minute
)

// Phase is one of the two countdown modes.
type Phase string

const (
	PhaseWork  Phase = "work"
	PhaseBreak Phase = "break"
)

// TimerConfig contains runtime settings for the pomodoro state machine.
type TimerConfig struct {
	Work         time.Duration
	Break        time.Duration
	SoundEnabled bool
}

// DefaultTimerConfig returns the classic 25/5 schedule with sound on.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		Work:         DefaultWorkDuration,
		Break:        DefaultBreakDuration,
		SoundEnabled: true,
	}
}

// Nominal returns the full length of a phase in whole seconds.
func (config TimerConfig) Nominal(phase Phase) int {
	duration := config.Work
	if phase == PhaseBreak {
		duration = config.Break
	}
	if duration <= 0 {
		if phase == PhaseBreak {
			duration = DefaultBreakDuration
		} else {
			duration = DefaultWorkDuration
		}
	}
	return int(duration / time.Second)
}
