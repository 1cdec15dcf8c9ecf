package config

import (
	"github.com/watchfire-io/presence/internal/models"
)

// LoadActivity loads the editor activity report from path. A missing file
// means no editor is reporting, which yields an empty report.
func LoadActivity(path string) (*models.ActivityState, error) {
	return LoadFileOrDefault(path, models.NewActivityState)
}

// SaveActivity writes an activity report to path.
func SaveActivity(path string, state *models.ActivityState) error {
	return SaveYAML(path, state)
}
