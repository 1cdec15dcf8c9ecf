package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/presence/internal/config"
	"github.com/watchfire-io/presence/internal/diagnose"
	"github.com/watchfire-io/presence/internal/models"
	"github.com/watchfire-io/presence/internal/source"
)

// execute runs the CLI against a fresh presence home. Output goes to a
// buffer, so commands print JSON.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	flagJSON, flagIcons = false, ""
	flagActivityFile, flagSettingsFile = "", ""
	flagMatchTheme = ""
	flagSettingsTOML, flagSettingsForce = false, false

	var out bytes.Buffer
	rootCmd.SetIn(&bytes.Buffer{})
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func setHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.HomeEnv, home)
	return home
}

func decode[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	return v
}

func writeActivity(t *testing.T, home string, state *models.ActivityState) {
	t.Helper()
	if err := config.SaveActivity(filepath.Join(home, config.ActivityFileName), state); err != nil {
		t.Fatal(err)
	}
}

func TestLanguages(t *testing.T) {
	setHome(t)
	out, err := execute(t, "languages")
	if err != nil {
		t.Fatalf("languages error = %v", err)
	}
	views := decode[[]languageView](t, out)

	byID := make(map[string]languageView)
	for _, v := range views {
		byID[v.ID] = v
	}
	if _, ok := byID["go"]; !ok {
		t.Fatalf("bundled languages lack go: %v", views)
	}
	if got := byID["gomod"].Parent; got != "go" {
		t.Errorf("gomod parent = %q, want go", got)
	}
}

func TestMatch(t *testing.T) {
	setHome(t)
	tests := []struct {
		file     string
		language string
		icon     bool
	}{
		{"main.go", "go", true},
		{"go.mod", "gomod", true},
		{"archive.unknownext", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			out, err := execute(t, "match", tt.file)
			if err != nil {
				t.Fatalf("match error = %v", err)
			}
			v := decode[matchView](t, out)
			if tt.language == "" {
				if v.Language != nil {
					t.Errorf("language = %q, want none", v.Language.ID)
				}
				return
			}
			if v.Language == nil || v.Language.ID != tt.language {
				t.Fatalf("language = %+v, want %s", v.Language, tt.language)
			}
			if (v.Icon != nil) != tt.icon {
				t.Errorf("icon = %v, want present=%v", v.Icon, tt.icon)
			}
			if v.Icon != nil && v.Icon.Kind() != source.AssetBundled {
				t.Errorf("icon kind = %s, want bundled", v.Icon.Kind())
			}
		})
	}
}

func TestIconIsStrict(t *testing.T) {
	setHome(t)

	out, err := execute(t, "icon", "go", "classic")
	if err != nil {
		t.Fatalf("icon error = %v", err)
	}
	if v := decode[iconView](t, out); !v.Found || v.Icon == nil {
		t.Errorf("classic go icon = %+v, want found", v)
	}

	// gomod has no entry of its own; the lookup does not walk parents.
	out, err = execute(t, "icon", "gomod", "classic")
	if err != nil {
		t.Fatalf("icon error = %v", err)
	}
	if v := decode[iconView](t, out); v.Found {
		t.Errorf("gomod icon = %+v, want not found", v)
	}

	out, err = execute(t, "icon", "go", "nosuch")
	if err != nil {
		t.Fatalf("icon error = %v", err)
	}
	if v := decode[iconView](t, out); v.Found {
		t.Errorf("unknown theme icon = %+v, want not found", v)
	}
}

func TestThemes(t *testing.T) {
	setHome(t)
	out, err := execute(t, "themes")
	if err != nil {
		t.Fatalf("themes error = %v", err)
	}
	views := decode[[]themeView](t, out)
	defaults := 0
	for _, v := range views {
		if v.Default {
			defaults++
			if v.ID != source.DefaultThemeID {
				t.Errorf("default theme = %s, want %s", v.ID, source.DefaultThemeID)
			}
		}
	}
	if defaults != 1 {
		t.Errorf("%d default themes, want 1", defaults)
	}
}

func TestRender(t *testing.T) {
	home := setHome(t)
	now := time.Now()

	out, err := execute(t, "render")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	if v := decode[renderView](t, out); v.Presence != nil || v.Mode != "none" {
		t.Errorf("render without activity = %+v, want nothing", v)
	}

	state := models.NewActivityState()
	state.Application = &models.ApplicationState{Name: "IntelliJ IDEA", Version: "2026.1", StartedAt: now.Add(-time.Hour)}
	state.Project = &models.ProjectState{Path: "/work/presence", OpenedAt: now.Add(-time.Hour)}
	state.File = &models.FileState{Path: "/work/presence/main.go", OpenedAt: now.Add(-time.Minute)}
	state.LastActivity = now
	writeActivity(t, home, state)

	out, err = execute(t, "render")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	v := decode[renderView](t, out)
	if v.Mode != "file" || v.Presence == nil {
		t.Fatalf("render = %+v, want a file presence", v)
	}
	if v.Presence.Details != "presence" || v.Presence.State != "Editing main.go" {
		t.Errorf("lines = %q / %q", v.Presence.Details, v.Presence.State)
	}
	if v.Presence.LargeImage == nil || v.Presence.LargeImage.Text != "Go" {
		t.Errorf("large image = %+v, want the Go icon", v.Presence.LargeImage)
	}
}

func TestRenderIdle(t *testing.T) {
	home := setHome(t)
	now := time.Now()

	state := models.NewActivityState()
	state.Application = &models.ApplicationState{Name: "IntelliJ IDEA", StartedAt: now.Add(-time.Hour)}
	state.LastActivity = now.Add(-time.Hour)
	writeActivity(t, home, state)

	out, err := execute(t, "render")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	v := decode[renderView](t, out)
	if v.Mode != "idle" || v.Presence == nil || v.Presence.Details != "Idling" {
		t.Errorf("render = %+v, want idle", v)
	}
}

func TestSettingsInit(t *testing.T) {
	home := setHome(t)
	path := filepath.Join(home, config.SettingsFileName)

	if _, err := execute(t, "settings", "init"); err != nil {
		t.Fatalf("settings init error = %v", err)
	}
	if !config.FileExists(path) {
		t.Fatal("settings file not written")
	}

	if _, err := execute(t, "settings", "init"); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("second init error = %v, want already exists", err)
	}
	if _, err := execute(t, "settings", "init", "--force"); err != nil {
		t.Errorf("forced init error = %v", err)
	}

	if _, err := execute(t, "settings", "init", "--toml"); err != nil {
		t.Fatalf("toml init error = %v", err)
	}
	s, err := config.LoadSettingsFile(filepath.Join(home, config.SettingsTOMLFileName))
	if err != nil {
		t.Fatal(err)
	}
	if !s.Show || s.IconsTheme != "classic" {
		t.Errorf("toml defaults = %+v", s)
	}

	out, err := execute(t, "settings", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != path {
		t.Errorf("settings path = %q, want %q", out, path)
	}
}

func TestStatusNotRunning(t *testing.T) {
	setHome(t)
	out, err := execute(t, "status")
	if err != nil {
		t.Fatalf("status error = %v", err)
	}
	if v := decode[statusView](t, out); v.Running || v.Daemon != nil {
		t.Errorf("status = %+v, want not running", v)
	}
}

func TestDaemonStopLeavesForeignPIDAlone(t *testing.T) {
	setHome(t)
	// The test binary is alive but is not presenced, as after PID reuse.
	if err := config.SaveDaemonInfo(models.NewDaemonInfo("1.0.0", "localhost", 4242, os.Getpid())); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "daemon", "stop")
	if err != nil {
		t.Fatalf("daemon stop error = %v", err)
	}
	if !strings.Contains(out, "not running") {
		t.Errorf("daemon stop output = %q, want not running", out)
	}
	if info, _ := config.LoadDaemonInfo(); info != nil {
		t.Error("stale daemon.yaml was not removed")
	}

	out, err = execute(t, "status")
	if err != nil {
		t.Fatalf("status error = %v", err)
	}
	if v := decode[statusView](t, out); v.Running {
		t.Errorf("status = %+v, want not running", v)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version", "--json")
	if err != nil {
		t.Fatal(err)
	}
	if v := decode[VersionInfo](t, out); v.Version == "" || v.Platform == "" {
		t.Errorf("version = %+v", v)
	}
}

type fakeLister []diagnose.ProcessInfo

func (f fakeLister) Processes(context.Context) ([]diagnose.ProcessInfo, error) { return f, nil }

func TestDiagnose(t *testing.T) {
	home := setHome(t)
	state := models.NewActivityState()
	state.Application = &models.ApplicationState{Name: "IntelliJ IDEA"}
	state.Plugins = []string{diagnose.LegacyIntegration}
	writeActivity(t, home, state)

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetErr(&bytes.Buffer{})
	views, err := diagnoseWith(cmd, fakeLister{{PID: 1, Name: "Discord", Exe: "/usr/share/discord/Discord"}})
	if err != nil {
		t.Fatal(err)
	}

	got := make(map[string]string)
	for _, v := range views {
		got[v.Check] = v.Outcome
	}
	want := map[string]string{
		"discord":      diagnose.DiscordRunning.String(),
		"integrations": diagnose.IntegrationLegacy.String(),
		"ide":          diagnose.IDEOther.String(),
	}
	for check, outcome := range want {
		if got[check] != outcome {
			t.Errorf("%s = %q, want %q", check, got[check], outcome)
		}
	}
}
