package preferences

import (
	"time"

	"grandmatimer/internal/core/model"
	"grandmatimer/internal/feedback"
)

// Settings defines user preferences. They are read from the settings file
// or edited in the preferences window and live for the session only.
type Settings struct {
	WorkDuration  time.Duration
	BreakDuration time.Duration
	SoundEnabled  bool

	AlarmPath   string
	AlarmVolume float64

	LogLevel string
}

// DefaultSettings returns a 25 minute work phase, a 5 minute break and the
// alarm at half volume.
func DefaultSettings() Settings {
	return Settings{
		WorkDuration:  model.DefaultWorkDuration,
		BreakDuration: model.DefaultBreakDuration,
		SoundEnabled:  true,
		AlarmPath:     feedback.DefaultAlarmPath,
		AlarmVolume:   feedback.DefaultAlarmVolume,
		LogLevel:      "info",
	}
}

// TimerConfig converts settings to the state machine configuration.
func (settings Settings) TimerConfig() model.TimerConfig {
	return model.TimerConfig{
		Work:         settings.WorkDuration,
		Break:        settings.BreakDuration,
		SoundEnabled: settings.SoundEnabled,
	}
}
