// Package storage loads user overrides of the application settings.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"TickTack/timer"
)

const (
	settingsFileName = "settings.yaml"
	// ConfigEnv names an explicit settings file, bypassing the user config dir.
	ConfigEnv = "TICKTACK_CONFIG"
)

// LoadSettings reads user settings from YAML on top of base.
// If the settings file does not exist, base is returned unchanged.
func LoadSettings(appName string, base timer.Config) (timer.Config, error) {
	configPath, err := ResolveConfigPath(appName)
	if err != nil {
		return base, err
	}

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return base, nil
		}
		return base, fmt.Errorf("read settings file: %w", err)
	}

	settings := base
	if err := timer.ParseConfig(rawData, &settings); err != nil {
		return base, fmt.Errorf("%s: %w", configPath, err)
	}
	return settings, nil
}

// ResolveConfigPath returns the settings file location.
func ResolveConfigPath(appName string) (string, error) {
	if explicit := strings.TrimSpace(os.Getenv(ConfigEnv)); explicit != "" {
		return explicit, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}
