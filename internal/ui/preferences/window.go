package preferences

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window   fyne.Window
	settings Settings
	onSave   func(Settings)
	workMin  *widget.Entry
	breakMin *widget.Entry
	volume   *widget.Slider
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Grandma's Timer Settings")

	workMin := widget.NewEntry()
	breakMin := widget.NewEntry()

	volume := widget.NewSlider(0, 1)
	volume.Step = 0.05

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Work for"), workMin, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Break for"), breakMin, widget.NewLabel("min")),
		widget.NewLabelWithStyle("Alarm", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Volume"),
		volume,
	)

	saveButton := widget.NewButton("Apply", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(360, 280))
	window.SetCloseIntercept(window.Hide)

	prefs := &Window{
		window:   window,
		onSave:   onSave,
		workMin:  workMin,
		breakMin: breakMin,
		volume:   volume,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.workMin.SetText(fmt.Sprintf("%d", int(settings.WorkDuration.Minutes())))
	prefs.breakMin.SetText(fmt.Sprintf("%d", int(settings.BreakDuration.Minutes())))
	prefs.volume.SetValue(settings.AlarmVolume)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if minutes, ok := parsePositiveInt(prefs.workMin.Text); ok {
		settings.WorkDuration = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := parsePositiveInt(prefs.breakMin.Text); ok {
		settings.BreakDuration = time.Duration(minutes) * time.Minute
	}
	settings.AlarmVolume = prefs.volume.Value

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
