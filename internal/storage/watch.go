package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"grandmatimer/internal/ui/preferences"
)

// WatchSettings reloads the settings file whenever it is written and passes
// the result to onChange. Reload errors go to onError. The watch ends when
// ctx is cancelled. The settings directory must already exist.
func WatchSettings(ctx context.Context, appName string, onChange func(preferences.Settings), onError func(error)) error {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return err
	}
	return watchSettingsFile(ctx, configPath, onChange, onError)
}

func watchSettingsFile(ctx context.Context, configPath string, onChange func(preferences.Settings), onError func(error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}
	// Editors often replace the file, so watch the directory.
	if err := watcher.Add(filepath.Dir(configPath)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch settings dir: %w", err)
	}

	configPath = filepath.Clean(configPath)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != configPath {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				settings, err := loadSettingsFile(configPath, preferences.DefaultSettings())
				if err != nil {
					if onError != nil {
						onError(err)
					}
					continue
				}
				if onChange != nil {
					onChange(settings)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if onError != nil {
					onError(fmt.Errorf("settings watcher: %w", err))
				}
			}
		}
	}()
	return nil
}
