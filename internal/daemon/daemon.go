// Package daemon runs the long-lived presence renderer.
package daemon

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/watchfire-io/presence/internal/activity"
	"github.com/watchfire-io/presence/internal/async"
	"github.com/watchfire-io/presence/internal/config"
	"github.com/watchfire-io/presence/internal/daemon/watcher"
	"github.com/watchfire-io/presence/internal/diagnose"
	"github.com/watchfire-io/presence/internal/presence"
	"github.com/watchfire-io/presence/internal/render"
	"github.com/watchfire-io/presence/internal/settings"
	"github.com/watchfire-io/presence/internal/source"
	"github.com/watchfire-io/presence/internal/template"
	"github.com/watchfire-io/presence/internal/vcs"
)

// DefaultInterval is how often the presence is re-rendered without file
// changes, so idle transitions are noticed.
const DefaultInterval = 15 * time.Second

// Config configures a Daemon.
type Config struct {
	// DefinitionsRoot holds user languages/ and themes/. Empty selects the
	// bundled definitions.
	DefinitionsRoot string
	SettingsFile    string
	ActivityFile    string
	Interval        time.Duration
	Debounce        time.Duration
	Retry           async.Policy
}

// DefaultConfig returns the configuration for the global presence
// directory.
func DefaultConfig() (Config, error) {
	settingsFile, err := config.GlobalSettingsFile()
	if err != nil {
		return Config{}, err
	}
	activityFile, err := config.GlobalActivityFile()
	if err != nil {
		return Config{}, err
	}
	iconsDir, err := config.GlobalIconsDir()
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		SettingsFile: settingsFile,
		ActivityFile: activityFile,
		Interval:     DefaultInterval,
		Debounce:     watcher.DefaultDebounce,
		Retry:        async.DefaultPolicy(),
	}
	if config.IconsDirExists(iconsDir) {
		cfg.DefinitionsRoot = iconsDir
	}
	return cfg, nil
}

// HealthReporter publishes the daemon's readiness.
type HealthReporter interface {
	SetServing(ok bool)
}

// Daemon renders the presence whenever activity, settings or definitions
// change, and on a fixed interval.
type Daemon struct {
	cfg       Config
	logger    *log.Logger
	sink      presence.Sink
	health    HealthReporter
	presenter diagnose.Presenter
	lister    diagnose.ProcessLister
	now       func() time.Time

	src      *source.FSSource
	holder   *settings.Holder
	layout   *settings.Layout
	tracker  *activity.Tracker
	pipeline *render.Pipeline

	mu   sync.Mutex
	last *presence.Presence
	sent bool
}

// Option configures a Daemon.
type Option func(*Daemon)

// WithLogger sets the daemon logger.
func WithLogger(l *log.Logger) Option {
	return func(d *Daemon) { d.logger = l }
}

// WithHealth sets where readiness is reported.
func WithHealth(h HealthReporter) Option {
	return func(d *Daemon) { d.health = h }
}

// WithPresenter sets where diagnosis outcomes go. The default logs them.
func WithPresenter(p diagnose.Presenter) Option {
	return func(d *Daemon) { d.presenter = p }
}

// WithProcessLister overrides process inspection for diagnosis.
func WithProcessLister(l diagnose.ProcessLister) Option {
	return func(d *Daemon) { d.lister = l }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(d *Daemon) { d.now = now }
}

// New creates a Daemon publishing to sink.
func New(cfg Config, sink presence.Sink, opts ...Option) (*Daemon, error) {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	d := &Daemon{
		cfg:    cfg,
		sink:   sink,
		logger: log.New(os.Stderr, "", log.LstdFlags),
		lister: diagnose.SystemProcessLister{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.presenter == nil {
		d.presenter = logPresenter{logger: d.logger}
	}

	s, err := config.LoadSettingsFile(cfg.SettingsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	d.holder = settings.NewHolder(s)
	d.layout = settings.NewLayout(d.holder, template.NewTextEngine())

	srcOpts := []source.Option{source.WithRetry(cfg.Retry), source.WithLogger(d.logger)}
	if cfg.DefinitionsRoot != "" {
		d.src = source.NewLocalSource(cfg.DefinitionsRoot, srcOpts...)
	} else {
		d.src = source.NewBundledSource(srcOpts...)
	}

	d.tracker = activity.NewTracker(d.src,
		activity.WithClock(d.now),
		activity.WithIgnoreChecker(vcs.NewChecker(vcs.OSCommandRunner{})),
	)
	d.pipeline = render.NewPipeline(d.layout, render.WithLogger(d.logger))
	return d, nil
}

// Source returns the definition source.
func (d *Daemon) Source() *source.FSSource {
	return d.src
}

// Run renders until ctx is cancelled, then clears the presence.
func (d *Daemon) Run(ctx context.Context) error {
	defer d.src.Close()

	w, err := watcher.New(watcher.Config{
		DefinitionsRoot: d.cfg.DefinitionsRoot,
		SettingsFile:    d.cfg.SettingsFile,
		ActivityFile:    d.cfg.ActivityFile,
		Debounce:        d.cfg.Debounce,
	}, d.logger)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Stop()

	go d.reportReady(ctx)
	go d.diagnose(ctx)
	d.checkUpdate()

	ticker := time.NewTicker(d.cfg.Interval)
	defer ticker.Stop()

	d.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			d.clear()
			return nil
		case ev := <-w.Events():
			d.logger.Printf("[daemon] %s changed: %s", ev.Type, ev.Path)
			d.handle(ctx, ev)
			d.tick(ctx)
		case <-ticker.C:
			d.tick(ctx)
		}
	}
}

func (d *Daemon) handle(ctx context.Context, ev watcher.Event) {
	switch ev.Type {
	case watcher.EventDefinitionsChanged:
		d.src.Reload()
		go d.reportReady(ctx)
	case watcher.EventSettingsChanged:
		if err := d.holder.Reload(ev.Path); err != nil {
			d.logger.Printf("[daemon] Failed to reload settings: %v", err)
		}
	}
}

// reportReady marks the daemon serving once both definition maps load.
func (d *Daemon) reportReady(ctx context.Context) {
	if d.health == nil {
		return
	}
	d.health.SetServing(false)
	if _, err := d.src.Languages(ctx); err != nil {
		return
	}
	if _, err := d.src.Themes(ctx); err != nil {
		return
	}
	if d.src.Ready() {
		d.health.SetServing(true)
	}
}

func (d *Daemon) tick(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, d.cfg.Interval)
	defer cancel()
	if err := d.Tick(ctx); err != nil && ctx.Err() == nil {
		d.logger.Printf("[daemon] Render failed: %v", err)
	}
}

// Tick renders the current activity once and publishes the result when it
// differs from the last one sent.
func (d *Daemon) Tick(ctx context.Context) error {
	state, err := config.LoadActivity(d.cfg.ActivityFile)
	if err != nil {
		return fmt.Errorf("failed to load activity: %w", err)
	}
	c, err := d.tracker.Snapshot(ctx, state, d.layout.TrackerConfig())
	if err != nil {
		return err
	}
	var next *presence.Presence
	if p, ok := d.pipeline.Render(c); ok {
		next = &p
	}
	return d.publish(ctx, next)
}

func (d *Daemon) publish(ctx context.Context, next *presence.Presence) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.sent && samePresence(d.last, next) {
		return nil
	}
	if err := d.sink.Send(ctx, presence.NewUpdate(next, d.now())); err != nil {
		return err
	}
	d.last = next
	d.sent = true
	return nil
}

// clear withdraws a shown presence on shutdown.
func (d *Daemon) clear() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	d.mu.Lock()
	shown := d.last != nil
	d.mu.Unlock()
	if !shown {
		return
	}
	if err := d.publish(ctx, nil); err != nil {
		d.logger.Printf("[daemon] Failed to clear presence: %v", err)
	}
}

func samePresence(a, b *presence.Presence) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
