// Package template executes user-supplied presence templates against the
// activity context.
package template

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"text/template"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/watchfire-io/presence/internal/activity"
)

// Engine executes template text against a context.
type Engine interface {
	Execute(text string, ctx *activity.Context) (string, error)
}

// ApplicationData is the template view of the editor.
type ApplicationData struct {
	Name    string
	Edition string
	Version string
}

// ProjectData is the template view of the project.
type ProjectData struct {
	Name        string
	Description string
	Path        string
}

// FileData is the template view of the file.
type FileData struct {
	Name     string
	Path     string
	Language string
	ReadOnly bool
	// Action is "Reading" for read-only files and "Editing" otherwise.
	Action string
}

// Data is the value templates are executed against. Sections that are
// absent from the context are zero valued, never nil.
type Data struct {
	Idle        bool
	IdleSince   time.Time
	Application ApplicationData
	Project     ProjectData
	File        FileData
}

// NewData flattens ctx into template data.
func NewData(ctx *activity.Context) Data {
	var d Data
	if ctx == nil {
		return d
	}
	d.Idle = ctx.Idle
	d.IdleSince = ctx.IdleSince
	if a := ctx.Application; a != nil {
		d.Application = ApplicationData{Name: a.Name, Edition: a.Edition, Version: a.Version}
	}
	if p := ctx.Project; p != nil {
		d.Project = ProjectData{Name: p.Name, Description: p.Description, Path: p.Path}
	}
	if f := ctx.File; f != nil {
		d.File = FileData{
			Name:     f.Name,
			Path:     f.RelativePath,
			Language: ctx.LanguageName(),
			ReadOnly: f.ReadOnly,
			Action:   FileAction(f.ReadOnly),
		}
	}
	return d
}

// FileAction returns the verb describing what is done to a file.
func FileAction(readOnly bool) string {
	if readOnly {
		return "Reading"
	}
	return "Editing"
}

// TextEngine is an Engine backed by text/template. Parsed templates are
// cached by their text.
type TextEngine struct {
	funcs template.FuncMap
	cache sync.Map // string -> *template.Template
}

// NewTextEngine creates a TextEngine with the standard helper functions.
func NewTextEngine() *TextEngine {
	return &TextEngine{funcs: template.FuncMap{
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		"trim":  strings.TrimSpace,
		"title": func(s string) string { return cases.Title(language.English).String(s) },
		"default": func(def, v string) string {
			if strings.TrimSpace(v) == "" {
				return def
			}
			return v
		},
	}}
}

// Execute runs text against ctx. Empty text yields "" without error; parse
// and execution failures, including references to unknown fields, are
// returned as errors.
func (e *TextEngine) Execute(text string, ctx *activity.Context) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	tmpl, err := e.parse(text)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, NewData(ctx)); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func (e *TextEngine) parse(text string) (*template.Template, error) {
	if t, ok := e.cache.Load(text); ok {
		return t.(*template.Template), nil
	}
	t, err := template.New("presence").Funcs(e.funcs).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	e.cache.Store(text, t)
	return t, nil
}
