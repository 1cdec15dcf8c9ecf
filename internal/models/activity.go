// Package models contains shared data structures used across the application.
package models

import "time"

// ApplicationState describes the running editor.
type ApplicationState struct {
	Name      string    `yaml:"name"`              // e.g. "IntelliJ IDEA"
	Edition   string    `yaml:"edition,omitempty"` // e.g. "IntelliJ IDEA Ultimate"
	Version   string    `yaml:"version,omitempty"`
	StartedAt time.Time `yaml:"started_at"`
}

// ProjectState describes the focused project.
type ProjectState struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description,omitempty"`
	Path        string    `yaml:"path"`
	OpenedAt    time.Time `yaml:"opened_at"`
}

// FileState describes the focused file.
type FileState struct {
	Path     string    `yaml:"path"`
	ReadOnly bool      `yaml:"read_only,omitempty"`
	OpenedAt time.Time `yaml:"opened_at"`
}

// ActivityState is the editor's report of what the user is doing.
// This corresponds to ~/.presence/activity.yaml, rewritten by the editor
// integration whenever focus or input changes.
type ActivityState struct {
	Version      int               `yaml:"version"`
	Application  *ApplicationState `yaml:"application,omitempty"`
	Project      *ProjectState     `yaml:"project,omitempty"`
	File         *FileState        `yaml:"file,omitempty"`
	LastActivity time.Time         `yaml:"last_activity"`
	Plugins      []string          `yaml:"plugins,omitempty"` // installed editor plugin ids
}

// NewActivityState creates an empty activity report.
func NewActivityState() *ActivityState {
	return &ActivityState{Version: 1}
}
