package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"grandmatimer/internal/core/pomodoro"
	"grandmatimer/internal/core/timekeeper"
	"grandmatimer/internal/feedback"
	"grandmatimer/internal/logging"
	"grandmatimer/internal/platform"
	"grandmatimer/internal/storage"
	"grandmatimer/internal/ui/panel"
	"grandmatimer/internal/ui/preferences"
	"grandmatimer/internal/ui/tray"
	"grandmatimer/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const appName = "GrandmaTimer"

func main() {
	settings, settingsErr := storage.LoadSettings(appName)
	logLevel := new(slog.LevelVar)
	logLevel.Set(logging.ParseLevel(settings.LogLevel))
	logger := logging.New(os.Stderr, logLevel)
	slog.SetDefault(logger)
	if settingsErr != nil {
		logger.Warn("using default settings", "error", settingsErr)
	}

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Info("timer is already running, showing it", "error", err)
		} else {
			logger.Error("single instance", "error", err)
		}
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID("com.grandmatimer.app")
	fyneApp.SetIcon(resources.MustIcon(resources.IconHeart))

	alarm := feedback.NewAlarm(settings.AlarmPath, settings.AlarmVolume)
	keeper := timekeeper.New(settings.TimerConfig(), timekeeper.Config{
		TickInterval: time.Second,
		Logger:       logger,
	})
	keeper.SetAlarm(alarm)
	defer keeper.Stop()

	mainWindow := panel.New(fyneApp, keeper, feedback.NewQuotePicker(nil))
	guard.Serve(func() {
		logger.Debug("activation requested by another launch")
		fyne.Do(mainWindow.Show)
	})

	applySettings := func(updated preferences.Settings) {
		settings = updated
		logLevel.Set(logging.ParseLevel(settings.LogLevel))
		keeper.UpdateConfig(settings.TimerConfig())
		alarm.SetPath(settings.AlarmPath)
		alarm.SetVolume(settings.AlarmVolume)
	}
	prefsWindow := preferences.New(fyneApp, settings, applySettings)

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:          mainWindow.Show,
			OnToggleRunning: keeper.ToggleRunning,
			OnReset:         keeper.Reset,
			OnToggleSound:   keeper.ToggleSound,
			OnPreferences:   prefsWindow.Show,
			OnQuit: func() {
				keeper.Stop()
				fyneApp.Quit()
			},
		})
		desktopApp.SetSystemTrayIcon(resources.MustIcon(resources.IconHeart))
		mainWindow.SetOnClose(mainWindow.Hide)
	} else {
		logger.Info("system tray unsupported on this platform")
		mainWindow.SetMaster()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	err = storage.WatchSettings(ctx, appName, func(updated preferences.Settings) {
		logger.Info("settings reloaded")
		fyne.Do(func() {
			applySettings(updated)
			prefsWindow.UpdateSettings(updated)
		})
	}, func(err error) {
		logger.Warn("settings reload failed", "error", err)
	})
	if err != nil {
		logger.Debug("settings hot reload disabled", "error", err)
	}

	changes := keeper.Changes()
	go func() {
		for range changes {
			fyne.Do(func() {
				render(keeper.Snapshot(), mainWindow, trayManager)
			})
		}
	}()
	events := keeper.Subscribe(16)
	go func() {
		for event := range events {
			if event.Type == timekeeper.EventPhaseComplete {
				fyne.Do(mainWindow.Show)
			}
		}
	}()

	render(keeper.Snapshot(), mainWindow, trayManager)
	mainWindow.Show()
	fyneApp.Run()
}

func render(state pomodoro.State, mainWindow *panel.Window, trayManager *tray.Manager) {
	mainWindow.Render(state)
	if trayManager == nil {
		return
	}
	trayManager.SetStatus(string(state.Timer.Phase) + " " + pomodoro.FormatTime(state.Timer.SecondsRemaining))
	trayManager.SetRunning(state.Timer.Running)
	trayManager.SetSoundEnabled(state.SoundEnabled)
}
