package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"grandmatimer/internal/platform"
	"grandmatimer/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	WorkMinutes  int      `yaml:"work_minutes"`
	BreakMinutes int      `yaml:"break_minutes"`
	SoundEnabled *bool    `yaml:"sound_enabled"`
	AlarmPath    string   `yaml:"alarm_path"`
	AlarmVolume  *float64 `yaml:"alarm_volume"`
	LogLevel     string   `yaml:"log_level"`
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
// The file is never written by the application.
func LoadSettings(appName string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()
	configPath, err := SettingsPath(appName)
	if err != nil {
		return settings, err
	}
	return loadSettingsFile(configPath, settings)
}

// SettingsPath returns the location of the settings file.
func SettingsPath(appName string) (string, error) {
	configDir, err := platform.ConfigDir(appName)
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, settingsFileName), nil
}

func loadSettingsFile(configPath string, settings preferences.Settings) (preferences.Settings, error) {
	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.WorkMinutes > 0 {
		settings.WorkDuration = time.Duration(fileData.WorkMinutes) * time.Minute
	}
	if fileData.BreakMinutes > 0 {
		settings.BreakDuration = time.Duration(fileData.BreakMinutes) * time.Minute
	}
	if fileData.SoundEnabled != nil {
		settings.SoundEnabled = *fileData.SoundEnabled
	}
	if fileData.AlarmPath != "" {
		settings.AlarmPath = fileData.AlarmPath
	}
	if fileData.AlarmVolume != nil && *fileData.AlarmVolume >= 0 && *fileData.AlarmVolume <= 1 {
		settings.AlarmVolume = *fileData.AlarmVolume
	}
	if fileData.LogLevel != "" {
		settings.LogLevel = fileData.LogLevel
	}
}
