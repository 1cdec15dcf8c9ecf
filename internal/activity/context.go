// Package activity builds the immutable per-render snapshot of what the
// user is doing.
package activity

import (
	"time"

	"github.com/watchfire-io/presence/internal/source"
)

// Application is the running editor.
type Application struct {
	Name      string
	Edition   string
	Version   string
	StartedAt time.Time
}

// Project is the focused project.
type Project struct {
	Name        string
	Description string
	Path        string
	OpenedAt    time.Time
}

// File is the focused file.
type File struct {
	Path         string
	Name         string
	RelativePath string
	ReadOnly     bool
	OpenedAt     time.Time
	Language     *source.Language // nil when no definition matches
	Ignored      bool             // excluded by the project's VCS ignore rules
}

// Context is a snapshot taken for a single render. It is never mutated
// after construction and must not be retained across renders.
type Context struct {
	Idle      bool
	IdleSince time.Time

	Application *Application
	Project     *Project
	File        *File

	// Icon sets per scope. Any of them may be nil.
	ApplicationIcons source.Provider
	ProjectIcons     source.Provider
	FileIcons        source.Provider

	// Languages resolves parent chains when looking up file icons.
	Languages source.LanguageMap
}

// LanguageName returns the display name of the file's language, or "".
func (c *Context) LanguageName() string {
	if c == nil || c.File == nil || c.File.Language == nil {
		return ""
	}
	return c.File.Language.Name
}
