package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/watchfire-io/presence/internal/activity"
	"github.com/watchfire-io/presence/internal/models"
	"github.com/watchfire-io/presence/internal/source"
	"github.com/watchfire-io/presence/internal/template"
	"github.com/watchfire-io/presence/internal/values"
)

var started = time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC)

func testContext() *activity.Context {
	langs := source.NewLanguageMap(&source.Language{ID: "go", Name: "Go"})
	golang, _ := langs.Get("go")
	theme := &source.Theme{ID: "classic", Icons: map[string]source.Asset{
		source.ApplicationKey: source.BundledAsset("classic/application.png"),
		"go":                  source.BundledAsset("classic/go.png"),
	}}
	return &activity.Context{
		Application: &activity.Application{Name: "IntelliJ IDEA", Edition: "IntelliJ IDEA Ultimate", Version: "2026.1", StartedAt: started},
		Project:     &activity.Project{Name: "presence", Description: "Rich presence", Path: "/work/presence", OpenedAt: started.Add(time.Minute)},
		File: &activity.File{
			Path:         "/work/presence/main.go",
			Name:         "main.go",
			RelativePath: "main.go",
			Language:     golang,
			OpenedAt:     started.Add(2 * time.Minute),
		},
		ApplicationIcons: theme,
		ProjectIcons:     theme,
		FileIcons:        theme,
		Languages:        langs,
	}
}

func newLayout(s *models.Settings) (*Holder, *Layout) {
	h := NewHolder(s)
	return h, NewLayout(h, template.NewTextEngine())
}

func TestDefaultLayout(t *testing.T) {
	_, l := newLayout(nil)
	ctx := testContext()

	tests := []struct {
		name  string
		field TextField
		want  string
	}{
		{"application details", l.Application.Details, "IntelliJ IDEA Ultimate"},
		{"application state", l.Application.State, ""},
		{"project details", l.Project.Details, "presence"},
		{"project state", l.Project.State, "Rich presence"},
		{"file details", l.File.Details, "presence"},
		{"file state", l.File.State, "Editing main.go"},
		{"file large caption", l.File.LargeIcon.Caption, "Go"},
		{"application large caption", l.Application.LargeIcon.Caption, "IntelliJ IDEA Ultimate 2026.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.field.Resolve(ctx)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}

	a, ok, err := l.File.LargeIcon.Resolve(ctx)
	if err != nil || !ok || a != source.BundledAsset("classic/go.png") {
		t.Errorf("file large icon = %v, %v, %v", a, ok, err)
	}
	if _, ok, _ := l.Application.SmallIcon.Resolve(ctx); ok {
		t.Error("application small icon should default to none")
	}
	tr, err := l.File.Time.Resolve(ctx)
	if err != nil || !tr.Show || !tr.Start.Equal(started.Add(2*time.Minute)) {
		t.Errorf("file time = %+v, %v", tr, err)
	}
}

func TestCustomTemplates(t *testing.T) {
	s := models.NewSettings()
	s.Project.Details = models.LineConfig{Source: values.TextCustom, Custom: "  {{.Project.Name | upper}} ({{.Application.Name}})  "}
	s.Project.IconLarge.Source = values.IconCustom
	s.Project.IconLarge.Custom = "https://img.example/{{.Project.Name}}.png"
	s.Project.IconSmall.Source = values.IconCustom
	s.Project.IconSmall.Custom = "{{if .Idle}}https://img.example/idle.png{{end}}"
	_, l := newLayout(s)
	ctx := testContext()

	got, err := l.Project.Details.Resolve(ctx)
	if err != nil || got != "PRESENCE (IntelliJ IDEA)" {
		t.Errorf("custom details = %q, %v", got, err)
	}
	a, ok, err := l.Project.LargeIcon.Resolve(ctx)
	if err != nil || !ok || a != source.WebAsset("https://img.example/presence.png") {
		t.Errorf("custom large icon = %v, %v, %v", a, ok, err)
	}
	if _, ok, err := l.Project.SmallIcon.Resolve(ctx); ok || err != nil {
		t.Errorf("blank custom icon = %v, %v, want no image", ok, err)
	}

	s.Project.Details.Custom = "{{.Nope}}"
	if _, err := l.Project.Details.Resolve(ctx); err == nil {
		t.Error("broken template should fail to resolve")
	}
}

func TestPreviewAndStored(t *testing.T) {
	stored := models.NewSettings()
	stored.Application.IconLarge = models.IconConfig{Source: values.IconCustom, Custom: "https://img.example/saved.png"}
	h, l := newLayout(stored)

	pending := models.NewSettings()
	pending.Application.IconLarge = models.IconConfig{Source: values.IconCustom, Custom: "https://img.example/draft.png"}
	pending.Application.Details.Source = values.TextNone
	h.Preview(pending)
	ctx := testContext()

	if got, _ := l.Application.Details.Resolve(ctx); got != "" {
		t.Errorf("details with pending edit = %q, want empty", got)
	}
	if a, _, _ := l.Application.LargeIcon.Resolve(ctx); a.Locator() != "https://img.example/draft.png" {
		t.Errorf("large icon = %v, want the pending template", a)
	}
	if a, _, _ := l.IdleIcon.Resolve(ctx); a.Locator() != "https://img.example/saved.png" {
		t.Errorf("idle icon = %v, want the stored template", a)
	}

	h.Preview(nil)
	if got, _ := l.Application.Details.Resolve(ctx); got != "IntelliJ IDEA Ultimate" {
		t.Errorf("details after discarding edits = %q", got)
	}
}

func TestTrackerConfig(t *testing.T) {
	tests := []struct {
		name    string
		timeout models.TimeoutConfig
		want    time.Duration
	}{
		{"enabled", models.TimeoutConfig{Enabled: true, Minutes: 5}, 5 * time.Minute},
		{"disabled", models.TimeoutConfig{Enabled: false, Minutes: 5}, 0},
		{"clamped low", models.TimeoutConfig{Enabled: true, Minutes: 0}, time.Minute},
		{"clamped high", models.TimeoutConfig{Enabled: true, Minutes: 100000}, MaxTimeoutMinutes * time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := models.NewSettings()
			s.Timeout = tt.timeout
			s.File.HideVCSIgnored = true
			s.IconsTheme = "flat"
			_, l := newLayout(s)
			cfg := l.TrackerConfig()
			if cfg.Timeout != tt.want {
				t.Errorf("Timeout = %v, want %v", cfg.Timeout, tt.want)
			}
			if !cfg.CheckIgnored || cfg.IconsTheme != "flat" || cfg.ApplicationTheme != source.DefaultThemeID {
				t.Errorf("TrackerConfig() = %+v", cfg)
			}
		})
	}
}

func TestHolderReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("version: 1\nshow: false\nidle: hide\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	h, l := newLayout(nil)
	if err := h.Reload(path); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if show, _ := l.Show.Resolve(nil); show {
		t.Error("Show = true after reloading show: false")
	}
	if idle, _ := l.Idle.Resolve(nil); idle != values.IdleHide {
		t.Errorf("Idle = %s, want hide", idle)
	}
	if got, _ := l.Project.Details.Resolve(testContext()); got != "presence" {
		t.Errorf("unset fields should keep defaults, got details %q", got)
	}

	if err := h.Reload(filepath.Join(t.TempDir(), "missing.yaml")); err != nil {
		t.Fatalf("Reload() of a missing file error = %v", err)
	}
	if show, _ := l.Show.Resolve(nil); !show {
		t.Error("a missing file should restore the defaults")
	}

	if err := os.WriteFile(path, []byte("show: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := h.Reload(path); err == nil {
		t.Error("Reload() of a malformed file error = nil")
	}
}
