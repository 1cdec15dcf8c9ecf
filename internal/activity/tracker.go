package activity

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/watchfire-io/presence/internal/models"
	"github.com/watchfire-io/presence/internal/source"
)

// IgnoreChecker reports whether a file is excluded by VCS ignore rules.
type IgnoreChecker interface {
	IsIgnored(ctx context.Context, repoDir, path string) bool
}

// Config carries the settings that shape a snapshot.
type Config struct {
	// Timeout after the last input at which the user becomes idle.
	// Zero disables idle detection.
	Timeout time.Duration
	// ResetOnResume restarts the open timers when the user returns from idle.
	ResetOnResume bool
	// CheckIgnored enables the VCS ignore lookup for the focused file.
	CheckIgnored     bool
	ApplicationTheme string
	IconsTheme       string
}

// Tracker turns editor activity reports into render Contexts. It remembers
// idle transitions between snapshots so open timers can be reset.
type Tracker struct {
	src     source.Source
	checker IgnoreChecker
	now     func() time.Time

	mu        sync.Mutex
	idle      bool
	resumedAt time.Time
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithClock overrides the time source.
func WithClock(now func() time.Time) TrackerOption {
	return func(t *Tracker) { t.now = now }
}

// WithIgnoreChecker enables VCS ignore detection.
func WithIgnoreChecker(c IgnoreChecker) TrackerOption {
	return func(t *Tracker) { t.checker = c }
}

// NewTracker creates a Tracker resolving languages and themes from src.
func NewTracker(src source.Source, opts ...TrackerOption) *Tracker {
	t := &Tracker{src: src, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Snapshot builds a Context from state. It waits for the definition maps,
// so the first call blocks until they are loaded.
func (t *Tracker) Snapshot(ctx context.Context, state *models.ActivityState, cfg Config) (*Context, error) {
	langs, err := t.src.Languages(ctx)
	if err != nil {
		return nil, fmt.Errorf("languages unavailable: %w", err)
	}
	themes, err := t.src.Themes(ctx)
	if err != nil {
		return nil, fmt.Errorf("themes unavailable: %w", err)
	}

	now := t.now()
	idle := cfg.Timeout > 0 && !state.LastActivity.IsZero() && now.Sub(state.LastActivity) >= cfg.Timeout

	t.mu.Lock()
	if t.idle && !idle && cfg.ResetOnResume {
		t.resumedAt = now
	}
	t.idle = idle
	resumedAt := t.resumedAt
	t.mu.Unlock()

	c := &Context{Languages: langs}
	if idle {
		c.Idle = true
		c.IdleSince = state.LastActivity
	}

	if a := state.Application; a != nil {
		c.Application = &Application{
			Name:      a.Name,
			Edition:   a.Edition,
			Version:   a.Version,
			StartedAt: later(a.StartedAt, resumedAt),
		}
	}
	if p := state.Project; p != nil {
		name := p.Name
		if name == "" && p.Path != "" {
			name = filepath.Base(p.Path)
		}
		c.Project = &Project{
			Name:        name,
			Description: p.Description,
			Path:        p.Path,
			OpenedAt:    later(p.OpenedAt, resumedAt),
		}
	}
	if f := state.File; f != nil && f.Path != "" {
		c.File = t.file(ctx, f, c.Project, langs, cfg, resumedAt)
	}

	if th, ok := themes.GetOrDefault(cfg.ApplicationTheme); ok {
		c.ApplicationIcons = th
		c.ProjectIcons = th
	}
	if th, ok := themes.GetOrDefault(cfg.IconsTheme); ok {
		c.FileIcons = th
	}
	return c, nil
}

func (t *Tracker) file(ctx context.Context, f *models.FileState, p *Project, langs source.LanguageMap, cfg Config, resumedAt time.Time) *File {
	file := &File{
		Path:         f.Path,
		Name:         filepath.Base(f.Path),
		RelativePath: f.Path,
		ReadOnly:     f.ReadOnly,
		OpenedAt:     later(f.OpenedAt, resumedAt),
	}
	if lang, ok := langs.Match(file.Name); ok {
		file.Language = lang
	}
	if p != nil && p.Path != "" {
		if rel, err := filepath.Rel(p.Path, f.Path); err == nil && !strings.HasPrefix(rel, "..") {
			file.RelativePath = filepath.ToSlash(rel)
		}
		if cfg.CheckIgnored && t.checker != nil {
			file.Ignored = t.checker.IsIgnored(ctx, p.Path, f.Path)
		}
	}
	return file
}

// later returns the later of two times.
func later(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
