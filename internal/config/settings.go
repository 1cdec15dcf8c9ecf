package config

import (
	"github.com/watchfire-io/presence/internal/models"
)

// LoadSettings loads the global settings from ~/.presence/settings.yaml.
// If the file doesn't exist, returns default settings.
func LoadSettings() (*models.Settings, error) {
	path, err := GlobalSettingsFile()
	if err != nil {
		return nil, err
	}
	return LoadSettingsFile(path)
}

// LoadSettingsFile loads settings from path, YAML or TOML by extension.
// Keys missing from the file keep their defaults.
func LoadSettingsFile(path string) (*models.Settings, error) {
	return LoadFileOrDefault(path, models.NewSettings)
}

// SaveSettings saves the global settings to ~/.presence/settings.yaml.
func SaveSettings(settings *models.Settings) error {
	path, err := GlobalSettingsFile()
	if err != nil {
		return err
	}
	return SaveFile(path, settings)
}
