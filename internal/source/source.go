package source

import (
	"context"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/watchfire-io/presence/internal/async"
	"github.com/watchfire-io/presence/internal/source/bundled"
)

// Source gives access to the loaded definition maps.
type Source interface {
	Languages(ctx context.Context) (LanguageMap, error)
	Themes(ctx context.Context) (ThemeMap, error)
}

// FSSource loads definitions from an fs.FS laid out as
// languages/*.yaml and themes/*.yaml. Both loads start as soon as the
// source is created and run concurrently.
type FSSource struct {
	fsys    fs.FS
	resolve assetResolver
	policy  async.Policy
	logger  *log.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	stopCycle context.CancelFunc
	languages atomic.Pointer[async.Deferred[LanguageMap]]
	themes    atomic.Pointer[async.Deferred[ThemeMap]]
}

// Option configures an FSSource.
type Option func(*FSSource)

// WithRetry sets the retry policy for failed loads.
func WithRetry(p async.Policy) Option {
	return func(s *FSSource) { s.policy = p }
}

// WithoutRetry makes the first load failure final.
func WithoutRetry() Option {
	return WithRetry(async.NoRetry())
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *FSSource) { s.logger = l }
}

// WithContext ties the load scope to ctx. Cancelling it stops all loads.
func WithContext(ctx context.Context) Option {
	return func(s *FSSource) { s.ctx = ctx }
}

// NewLocalSource loads definitions from the directory root. Relative theme
// entries become local file assets below root/themes.
func NewLocalSource(root string, opts ...Option) *FSSource {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return newFSSource(os.DirFS(root), localResolver(root), opts)
}

// NewBundledSource loads the definitions embedded in the binary.
func NewBundledSource(opts ...Option) *FSSource {
	return newFSSource(bundled.FS(), bundledResolver(bundled.Root), opts)
}

// NewFSSource loads definitions from fsys. Relative theme entries become
// bundled assets prefixed with prefix.
func NewFSSource(fsys fs.FS, prefix string, opts ...Option) *FSSource {
	return newFSSource(fsys, bundledResolver(prefix), opts)
}

func newFSSource(fsys fs.FS, resolve assetResolver, opts []Option) *FSSource {
	s := &FSSource{
		fsys:    fsys,
		resolve: resolve,
		policy:  async.DefaultPolicy(),
		logger:  log.Default(),
		ctx:     context.Background(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ctx, s.cancel = context.WithCancel(s.ctx)
	s.start()
	return s
}

// start launches a fresh pair of loads under their own cycle scope and
// publishes them. It returns the cancel func of the cycle it replaced.
// Callers hold s.mu, except the constructor.
func (s *FSSource) start() context.CancelFunc {
	ctx, cancel := context.WithCancel(s.ctx)
	s.languages.Store(async.Go(ctx, func(ctx context.Context) (LanguageMap, error) {
		return async.Retry(ctx, s.policy, s.notify(LanguagesDir), s.loadLanguages)
	}))
	s.themes.Store(async.Go(ctx, func(ctx context.Context) (ThemeMap, error) {
		return async.Retry(ctx, s.policy, s.notify(ThemesDir), s.loadThemes)
	}))
	prev := s.stopCycle
	s.stopCycle = cancel
	return prev
}

func (s *FSSource) notify(what string) func(error, time.Duration) {
	return func(err error, next time.Duration) {
		s.logger.Printf("[source] %s load failed, retrying in %s: %v", what, next, err)
	}
}

func (s *FSSource) loadLanguages(ctx context.Context) (LanguageMap, error) {
	langs, err := readDefinitions(s.fsys, LanguagesDir, parseLanguage)
	if err != nil {
		return LanguageMap{}, err
	}
	return NewLanguageMap(langs...), nil
}

func (s *FSSource) loadThemes(ctx context.Context) (ThemeMap, error) {
	themes, err := readDefinitions(s.fsys, ThemesDir, func(id string, data []byte) (*Theme, error) {
		return parseTheme(id, data, s.resolve)
	})
	if err != nil {
		return ThemeMap{}, err
	}
	return NewThemeMap(themes...), nil
}

// Languages waits for the current language load and returns its result.
func (s *FSSource) Languages(ctx context.Context) (LanguageMap, error) {
	return s.languages.Load().Await(ctx)
}

// Themes waits for the current theme load and returns its result.
func (s *FSSource) Themes(ctx context.Context) (ThemeMap, error) {
	return s.themes.Load().Await(ctx)
}

// Ready reports whether both loads have completed successfully.
func (s *FSSource) Ready() bool {
	l, t := s.languages.Load(), s.themes.Load()
	if !l.Ready() || !t.Ready() {
		return false
	}
	_, lerr := l.Await(context.Background())
	_, terr := t.Await(context.Background())
	return lerr == nil && terr == nil
}

// ResolveIcon waits for the themes and looks languageID up in themeID.
func (s *FSSource) ResolveIcon(ctx context.Context, languageID, themeID string) (Asset, bool, error) {
	themes, err := s.Themes(ctx)
	if err != nil {
		return Asset{}, false, err
	}
	a, ok := ResolveIcon(themes, languageID, themeID)
	return a, ok, nil
}

// Reload starts a new load cycle and cancels the one it replaces. A load
// of the old cycle that already finished keeps its result; callers still
// waiting on an unfinished one receive context.Canceled. Later calls see
// the new cycle.
func (s *FSSource) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx.Err() != nil {
		return
	}
	s.logger.Printf("[source] reloading definitions")
	if prev := s.start(); prev != nil {
		prev()
	}
}

// Close cancels every load in flight. Waiting callers observe the
// cancellation error.
func (s *FSSource) Close() {
	s.cancel()
}
