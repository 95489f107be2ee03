package preferences

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyParsesMinutes(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var saved *Settings
	prefs := New(app, DefaultSettings(), func(settings Settings) {
		saved = &settings
	})

	prefs.workMin.SetText("50")
	prefs.breakMin.SetText("10")
	prefs.volume.SetValue(0.25)
	prefs.handleSave()

	require.NotNil(t, saved)
	assert.Equal(t, 50*time.Minute, saved.WorkDuration)
	assert.Equal(t, 10*time.Minute, saved.BreakDuration)
	assert.InDelta(t, 0.25, saved.AlarmVolume, 1e-9)
	assert.True(t, saved.SoundEnabled)
}

func TestApplyKeepsPreviousValueOnBadInput(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var saved Settings
	prefs := New(app, DefaultSettings(), func(settings Settings) {
		saved = settings
	})

	prefs.workMin.SetText("soon")
	prefs.breakMin.SetText("-4")
	prefs.handleSave()

	assert.Equal(t, 25*time.Minute, saved.WorkDuration)
	assert.Equal(t, 5*time.Minute, saved.BreakDuration)
}

func TestTimerConfig(t *testing.T) {
	settings := DefaultSettings()
	settings.SoundEnabled = false

	config := settings.TimerConfig()

	assert.Equal(t, 1500, config.Nominal("work"))
	assert.Equal(t, 300, config.Nominal("break"))
	assert.False(t, config.SoundEnabled)
}
