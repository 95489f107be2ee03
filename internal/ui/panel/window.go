// Package panel renders the timer, the task lists and grandma's messages.
package panel

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"grandmatimer/internal/core/model"
	"grandmatimer/internal/core/pomodoro"
	"grandmatimer/resources"
)

const title = "Grandma's Love Timer"

// Controller receives the user's actions.
type Controller interface {
	ToggleRunning()
	Reset()
	ToggleSound()
	StartTask(id string)
	DeleteTask(id string)
	EditDraft(text string, priority model.Priority)
	AddTask(text string, priority model.Priority) bool
}

// Messenger supplies grandma's message for a phase.
type Messenger interface {
	Message(phase model.Phase) string
}

type taskRow struct {
	task   model.Task
	start  *widget.Button
	remove *widget.Button
}

// Window is the main timer window. Render must run on the UI goroutine.
type Window struct {
	window     fyne.Window
	controller Controller
	messenger  Messenger

	titleLabel   *canvas.Text
	phaseIcon    *widget.Icon
	soundButton  *widget.Button
	timerLabel   *canvas.Text
	playButton   *widget.Button
	resetButton  *widget.Button
	activeLabel  *widget.Label
	activeCard   *widget.Card
	entry        *widget.Entry
	priority     *widget.Select
	addButton    *widget.Button
	pendingBox   *fyne.Container
	completedBox *fyne.Container
	messageLabel *widget.Label

	pendingRows   []taskRow
	completed     []model.Task
	rendered      bool
	phase         model.Phase
	activeID      string
	draftRevision int
}

var (
	pink     = color.NRGBA{R: 190, G: 24, B: 93, A: 255}
	deepPink = color.NRGBA{R: 157, G: 23, B: 77, A: 255}
)

// New creates the main window. It is not shown until Show is called.
func New(app fyne.App, controller Controller, messenger Messenger) *Window {
	panel := &Window{
		window:     app.NewWindow(title),
		controller: controller,
		messenger:  messenger,
	}

	panel.titleLabel = canvas.NewText(title, deepPink)
	panel.titleLabel.TextSize = 22
	panel.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	panel.phaseIcon = widget.NewIcon(resources.MustIcon(resources.IconBook))
	panel.soundButton = widget.NewButtonWithIcon("", theme.VolumeUpIcon(), controller.ToggleSound)
	panel.soundButton.Importance = widget.LowImportance

	panel.timerLabel = canvas.NewText(pomodoro.FormatTime(0), pink)
	panel.timerLabel.TextSize = 64
	panel.timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	panel.timerLabel.Alignment = fyne.TextAlignCenter

	panel.playButton = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), controller.ToggleRunning)
	panel.resetButton = widget.NewButtonWithIcon("", theme.MediaReplayIcon(), controller.Reset)

	panel.activeLabel = widget.NewLabel("")
	panel.activeCard = widget.NewCard("", "Currently working on:", panel.activeLabel)
	panel.activeCard.Hide()

	panel.entry = widget.NewEntry()
	panel.entry.SetPlaceHolder("What do you need to do, dearie?")
	panel.entry.OnChanged = func(text string) {
		controller.EditDraft(text, panel.selectedPriority())
	}
	panel.entry.OnSubmitted = func(string) {
		panel.submit()
	}

	labels := make([]string, 0, len(model.Priorities))
	for _, priority := range model.Priorities {
		labels = append(labels, priority.Label())
	}
	panel.priority = widget.NewSelect(labels, nil)
	panel.priority.SetSelected(model.PriorityMedium.Label())
	panel.priority.OnChanged = func(string) {
		controller.EditDraft(panel.entry.Text, panel.selectedPriority())
	}
	panel.addButton = widget.NewButtonWithIcon("", theme.ContentAddIcon(), panel.submit)
	panel.addButton.Importance = widget.HighImportance

	panel.pendingBox = container.NewVBox()
	panel.completedBox = container.NewVBox()
	panel.messageLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Italic: true})
	panel.messageLabel.Wrapping = fyne.TextWrapWord

	header := container.NewBorder(nil, nil, panel.phaseIcon, panel.soundButton, panel.titleLabel)
	controls := container.NewHBox(layout.NewSpacer(), panel.playButton, panel.resetButton, layout.NewSpacer())
	form := container.NewBorder(nil, nil, nil, container.NewHBox(panel.priority, panel.addButton), panel.entry)
	lists := container.NewGridWithColumns(2,
		container.NewBorder(sectionTitle("Tasks to Do (Grandma's List)"), nil, nil, nil, container.NewVScroll(panel.pendingBox)),
		container.NewBorder(sectionTitle("Completed Tasks (Grandma is so proud!)"), nil, nil, nil, container.NewVScroll(panel.completedBox)),
	)
	message := widget.NewCard("", "Grandma says:", panel.messageLabel)

	top := container.NewVBox(header, panel.timerLabel, controls, panel.activeCard, form)
	panel.window.SetContent(container.NewBorder(top, message, nil, nil, lists))
	panel.window.Resize(fyne.NewSize(640, 720))
	if icon := app.Icon(); icon != nil {
		panel.window.SetIcon(icon)
	}

	return panel
}

// Show displays the window.
func (panel *Window) Show() {
	panel.window.Show()
	panel.window.RequestFocus()
}

// SetMaster makes closing this window quit the application.
func (panel *Window) SetMaster() {
	panel.window.SetMaster()
}

// SetOnClose replaces the default close behaviour.
func (panel *Window) SetOnClose(handler func()) {
	panel.window.SetCloseIntercept(handler)
}

// Hide hides the window.
func (panel *Window) Hide() {
	panel.window.Hide()
}

// Render updates every widget from state.
func (panel *Window) Render(state pomodoro.State) {
	panel.renderTimer(state)
	panel.renderActive(state)
	panel.renderForm(state)
	panel.renderLists(state)
	panel.renderMessage(state)
	panel.rendered = true
}

func (panel *Window) renderTimer(state pomodoro.State) {
	panel.timerLabel.Text = pomodoro.FormatTime(state.Timer.SecondsRemaining)
	panel.timerLabel.Refresh()

	if state.Timer.Running {
		panel.playButton.SetIcon(theme.MediaPauseIcon())
	} else {
		panel.playButton.SetIcon(theme.MediaPlayIcon())
	}
	if state.SoundEnabled {
		panel.soundButton.SetIcon(theme.VolumeUpIcon())
	} else {
		panel.soundButton.SetIcon(theme.VolumeMuteIcon())
	}

	if state.IsBreak() {
		panel.titleLabel.Text = title + " ☕"
		panel.phaseIcon.SetResource(resources.MustIcon(resources.IconCoffee))
	} else {
		panel.titleLabel.Text = title + " 📚"
		panel.phaseIcon.SetResource(resources.MustIcon(resources.IconBook))
	}
	panel.titleLabel.Refresh()
}

func (panel *Window) renderActive(state pomodoro.State) {
	task, ok := state.ActiveTask()
	if !ok || state.IsBreak() {
		panel.activeCard.Hide()
		return
	}
	panel.activeLabel.SetText(task.Display())
	panel.activeCard.Show()
}

// renderForm resets the entry form only after an add, so typing in
// progress is not overwritten by ticks.
func (panel *Window) renderForm(state pomodoro.State) {
	if panel.rendered && state.Draft.Revision == panel.draftRevision {
		return
	}
	panel.draftRevision = state.Draft.Revision
	if panel.entry.Text != state.Draft.Text {
		panel.entry.SetText(state.Draft.Text)
	}
	label := state.Draft.Priority.Label()
	if panel.priority.Selected != label {
		panel.priority.SetSelected(label)
	}
}

func (panel *Window) renderLists(state pomodoro.State) {
	pending := pomodoro.SortedPending(state.Pending)
	if !panel.rendered || !sameRows(panel.pendingRows, pending) {
		panel.pendingRows = panel.pendingRows[:0]
		objects := make([]fyne.CanvasObject, 0, len(pending))
		for _, task := range pending {
			row, object := panel.newPendingRow(task)
			panel.pendingRows = append(panel.pendingRows, row)
			objects = append(objects, object)
		}
		panel.pendingBox.Objects = objects
		panel.pendingBox.Refresh()
	}

	if !panel.rendered || !sameTasks(panel.completed, state.Completed) {
		panel.completed = append(panel.completed[:0], state.Completed...)
		objects := make([]fyne.CanvasObject, 0, len(state.Completed))
		for _, task := range state.Completed {
			objects = append(objects, completedRow(task))
		}
		panel.completedBox.Objects = objects
		panel.completedBox.Refresh()
	}
}

// renderMessage picks a new message when the phase or the active task
// changes, not on every tick.
func (panel *Window) renderMessage(state pomodoro.State) {
	if panel.rendered && state.Timer.Phase == panel.phase && state.Timer.ActiveTaskID == panel.activeID {
		return
	}
	panel.phase = state.Timer.Phase
	panel.activeID = state.Timer.ActiveTaskID
	panel.messageLabel.SetText(panel.messenger.Message(state.Timer.Phase))
}

func (panel *Window) submit() {
	panel.controller.AddTask(panel.entry.Text, panel.selectedPriority())
}

func (panel *Window) selectedPriority() model.Priority {
	return model.PriorityFromLabel(panel.priority.Selected)
}

func (panel *Window) newPendingRow(task model.Task) (taskRow, fyne.CanvasObject) {
	row := taskRow{
		task: task,
		start: widget.NewButtonWithIcon("", theme.MediaPlayIcon(), func() {
			panel.controller.StartTask(task.ID)
		}),
		remove: widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
			panel.controller.DeleteTask(task.ID)
		}),
	}
	label := widget.NewLabel(task.Display())
	label.Wrapping = fyne.TextWrapWord

	background := canvas.NewRectangle(priorityColor(task.Priority))
	background.CornerRadius = 6
	content := container.NewBorder(nil, nil, nil, container.NewHBox(row.start, row.remove), label)
	return row, container.NewStack(background, content)
}

func completedRow(task model.Task) fyne.CanvasObject {
	background := canvas.NewRectangle(color.NRGBA{R: 220, G: 252, B: 231, A: 255})
	background.CornerRadius = 6
	heart := widget.NewIcon(resources.MustIcon(resources.IconHeart))
	return container.NewStack(background, container.NewBorder(nil, nil, heart, nil, widget.NewLabel(task.Text)))
}

func sectionTitle(text string) fyne.CanvasObject {
	return widget.NewLabelWithStyle(text, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
}

func priorityColor(priority model.Priority) color.Color {
	switch priority {
	case model.PriorityHigh:
		return color.NRGBA{R: 254, G: 226, B: 226, A: 255}
	case model.PriorityLow:
		return color.NRGBA{R: 220, G: 252, B: 231, A: 255}
	default:
		return color.NRGBA{R: 254, G: 249, B: 195, A: 255}
	}
}

func sameRows(rows []taskRow, tasks []model.Task) bool {
	if len(rows) != len(tasks) {
		return false
	}
	for i := range rows {
		if rows[i].task != tasks[i] {
			return false
		}
	}
	return true
}

func sameTasks(a, b []model.Task) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
