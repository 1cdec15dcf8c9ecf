package activity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/watchfire-io/presence/internal/models"
	"github.com/watchfire-io/presence/internal/source"
)

type staticSource struct {
	langs  source.LanguageMap
	themes source.ThemeMap
	err    error
}

func (s staticSource) Languages(context.Context) (source.LanguageMap, error) { return s.langs, s.err }
func (s staticSource) Themes(context.Context) (source.ThemeMap, error) { return s.themes, s.err }

type fakeChecker map[string]bool

func (f fakeChecker) IsIgnored(_ context.Context, _, path string) bool { return f[path] }

func testSource() staticSource {
	return staticSource{
		langs: source.NewLanguageMap(
			&source.Language{ID: "go", Name: "Go", Extensions: []string{"go"}},
		),
		themes: source.NewThemeMap(
			&source.Theme{ID: "classic", Icons: map[string]source.Asset{"go": source.BundledAsset("go.png")}},
			&source.Theme{ID: "flat", Icons: map[string]source.Asset{"go": source.WebAsset("https://x/go.png")}},
		),
	}
}

var t0 = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

func testState() *models.ActivityState {
	return &models.ActivityState{
		Application:  &models.ApplicationState{Name: "GoLand", Edition: "GoLand 2026.1", StartedAt: t0},
		Project:      &models.ProjectState{Path: "/work/presence", OpenedAt: t0.Add(time.Minute)},
		File:         &models.FileState{Path: "/work/presence/cmd/main.go", OpenedAt: t0.Add(2 * time.Minute)},
		LastActivity: t0.Add(3 * time.Minute),
	}
}

func TestSnapshot(t *testing.T) {
	now := t0.Add(4 * time.Minute)
	tr := NewTracker(testSource(),
		WithClock(func() time.Time { return now }),
		WithIgnoreChecker(fakeChecker{"/work/presence/cmd/main.go": true}),
	)

	c, err := tr.Snapshot(context.Background(), testState(), Config{
		Timeout:      5 * time.Minute,
		CheckIgnored: true,
		IconsTheme:   "flat",
	})
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	if c.Idle {
		t.Error("Idle = true before the timeout elapsed")
	}
	if c.Project.Name != "presence" {
		t.Errorf("Project.Name = %q, want the directory name", c.Project.Name)
	}
	if c.File.Name != "main.go" || c.File.RelativePath != "cmd/main.go" {
		t.Errorf("File = %+v", c.File)
	}
	if c.LanguageName() != "Go" {
		t.Errorf("LanguageName() = %q, want Go", c.LanguageName())
	}
	if !c.File.Ignored {
		t.Error("File.Ignored = false, want true from the checker")
	}

	if a, _ := c.FileIcons.GetAsset("go"); a.Kind() != source.AssetWeb {
		t.Errorf("file icons should come from the flat theme, got %v", a)
	}
	if a, _ := c.ApplicationIcons.GetAsset("go"); a != source.BundledAsset("go.png") {
		t.Errorf("application icons should fall back to classic, got %v", a)
	}
}

func TestSnapshotIgnoreCheckDisabled(t *testing.T) {
	tr := NewTracker(testSource(), WithIgnoreChecker(fakeChecker{"/work/presence/cmd/main.go": true}))
	c, err := tr.Snapshot(context.Background(), testState(), Config{})
	if err != nil {
		t.Fatal(err)
	}
	if c.File.Ignored {
		t.Error("File.Ignored = true with CheckIgnored off")
	}
}

func TestSnapshotIdleAndReset(t *testing.T) {
	now := t0.Add(10 * time.Minute)
	tr := NewTracker(testSource(), WithClock(func() time.Time { return now }))
	cfg := Config{Timeout: 5 * time.Minute, ResetOnResume: true}
	state := testState()

	c, err := tr.Snapshot(context.Background(), state, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !c.Idle || !c.IdleSince.Equal(state.LastActivity) {
		t.Fatalf("Idle = %v since %v, want idle since %v", c.Idle, c.IdleSince, state.LastActivity)
	}

	now = now.Add(time.Minute)
	state.LastActivity = now
	c, err = tr.Snapshot(context.Background(), state, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if c.Idle {
		t.Fatal("still idle after new input")
	}
	for name, got := range map[string]time.Time{
		"application": c.Application.StartedAt,
		"project":     c.Project.OpenedAt,
		"file":        c.File.OpenedAt,
	} {
		if !got.Equal(now) {
			t.Errorf("%s timer = %v, want reset to %v", name, got, now)
		}
	}
}

func TestSnapshotTimeoutDisabled(t *testing.T) {
	tr := NewTracker(testSource(), WithClock(func() time.Time { return t0.Add(24 * time.Hour) }))
	c, err := tr.Snapshot(context.Background(), testState(), Config{})
	if err != nil {
		t.Fatal(err)
	}
	if c.Idle {
		t.Error("Idle = true with the timeout disabled")
	}
	if !c.Application.StartedAt.Equal(t0) {
		t.Errorf("StartedAt = %v, want %v", c.Application.StartedAt, t0)
	}
}

func TestSnapshotSourceError(t *testing.T) {
	src := testSource()
	src.err = errors.New("not loaded")
	if _, err := NewTracker(src).Snapshot(context.Background(), testState(), Config{}); err == nil {
		t.Error("Snapshot() error = nil, want source failure")
	}
}

func TestSnapshotNoTheme(t *testing.T) {
	src := testSource()
	src.themes = source.NewThemeMap()
	c, err := NewTracker(src).Snapshot(context.Background(), testState(), Config{})
	if err != nil {
		t.Fatal(err)
	}
	if c.ApplicationIcons != nil || c.FileIcons != nil {
		t.Error("icon sets should stay nil without themes")
	}
}
