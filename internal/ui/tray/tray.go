package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
)

// MenuHost is the part of desktop.App the tray needs.
type MenuHost interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow          func()
	OnToggleRunning func()
	OnReset         func()
	OnToggleSound   func()
	OnPreferences   func()
	OnQuit          func()
}

// Manager handles system tray state.
type Manager struct {
	host         MenuHost
	callbacks    Callbacks
	statusItem   *fyne.MenuItem
	runningItem  *fyne.MenuItem
	soundItem    *fyne.MenuItem
	menu         *fyne.Menu
	statusLabel  string
	running      bool
	soundEnabled bool
}

// New creates a tray manager with the provided callbacks.
func New(host MenuHost, callbacks Callbacks) *Manager {
	manager := &Manager{
		host:         host,
		callbacks:    callbacks,
		statusLabel:  "starting...",
		soundEnabled: true,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.runningItem = fyne.NewMenuItem("", func() { call(manager.callbacks.OnToggleRunning) })
	manager.soundItem = fyne.NewMenuItem("", func() { call(manager.callbacks.OnToggleSound) })

	manager.menu = fyne.NewMenu("Grandma's Timer",
		manager.statusItem,
		fyne.NewMenuItem("Show timer", func() { call(manager.callbacks.OnShow) }),
		fyne.NewMenuItemSeparator(),
		manager.runningItem,
		fyne.NewMenuItem("Reset", func() { call(manager.callbacks.OnReset) }),
		manager.soundItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", func() { call(manager.callbacks.OnPreferences) }),
		fyne.NewMenuItem("Quit", func() { call(manager.callbacks.OnQuit) }),
	)
	manager.refreshLabels()
	manager.refreshMenu()

	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	if status == manager.statusLabel {
		return
	}
	manager.statusLabel = status
	manager.refreshLabels()
	manager.refreshMenu()
}

// SetRunning updates the start/pause item.
func (manager *Manager) SetRunning(running bool) {
	if running == manager.running {
		return
	}
	manager.running = running
	manager.refreshLabels()
	manager.refreshMenu()
}

// SetSoundEnabled updates the sound item.
func (manager *Manager) SetSoundEnabled(enabled bool) {
	if enabled == manager.soundEnabled {
		return
	}
	manager.soundEnabled = enabled
	manager.refreshLabels()
	manager.refreshMenu()
}

func (manager *Manager) refreshLabels() {
	status := manager.statusLabel
	if !manager.running {
		status = fmt.Sprintf("%s (paused)", status)
	}
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)

	if manager.running {
		manager.runningItem.Label = "Pause"
	} else {
		manager.runningItem.Label = "Start"
	}
	if manager.soundEnabled {
		manager.soundItem.Label = "Sound: on"
	} else {
		manager.soundItem.Label = "Sound: off"
	}
}

func (manager *Manager) refreshMenu() {
	if manager.host != nil {
		manager.host.SetSystemTrayMenu(manager.menu)
	}
}

func call(callback func()) {
	if callback != nil {
		callback()
	}
}
