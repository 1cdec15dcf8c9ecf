package diagnose

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/watchfire-io/presence/internal/async"
	"github.com/watchfire-io/presence/internal/buildinfo"
)

// LegacyIntegration is the plugin id of the discontinued integration that
// breaks this one when both are installed.
const LegacyIntegration = "com.almightyalpaca.intellij.plugins.discord"

// KnownIntegrations lists other editor plugins that publish a presence.
var KnownIntegrations = []string{
	"com.tsunderebug.discordintellij",
	"io.github.pandier.intellijdiscordrp",
}

var browsers = []string{"chrome", "chromium", "firefox", "msedge", "brave", "opera", "safari", "vivaldi"}

// Input is what the environment checks know about the editor.
type Input struct {
	ApplicationName string
	Plugins         []string
}

// Report collects the outcome of every check.
type Report struct {
	Discord      Outcome `json:"discord"`
	Integrations Outcome `json:"integrations"`
	IDE          Outcome `json:"ide"`
}

// Outcomes returns the report's outcomes in check order.
func (r Report) Outcomes() []Outcome {
	return []Outcome{r.Discord, r.Integrations, r.IDE}
}

// Service runs the environment checks.
type Service struct {
	lister    ProcessLister
	presenter Presenter
	logger    *log.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithPresenter sets the presenter that receives outcomes needing
// attention.
func WithPresenter(p Presenter) Option {
	return func(s *Service) { s.presenter = p }
}

// WithLogger sets the service logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a Service inspecting processes through lister.
func NewService(lister ProcessLister, opts ...Option) *Service {
	s := &Service{
		lister: lister,
		logger: log.New(os.Stderr, "", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run runs every check concurrently and waits for them. Outcomes with a
// severity are handed to the presenter in check order. A failed check
// reports Unknown.
func (s *Service) Run(ctx context.Context, in Input) Report {
	procs := async.Go(ctx, s.lister.Processes)
	discord := async.Go(ctx, func(ctx context.Context) (Outcome, error) {
		ps, err := procs.Await(ctx)
		if err != nil {
			return Unknown, err
		}
		return classifyDiscord(ps), nil
	})
	ide := async.Go(ctx, func(ctx context.Context) (Outcome, error) {
		ps, err := procs.Await(ctx)
		if err != nil {
			return Unknown, err
		}
		return classifyIDE(ps, in.ApplicationName), nil
	})
	integrations := async.Resolved(classifyIntegrations(in.Plugins), nil)

	r := Report{
		Discord:      s.await(ctx, "discord", discord),
		Integrations: s.await(ctx, "integrations", integrations),
		IDE:          s.await(ctx, "ide", ide),
	}
	for _, o := range r.Outcomes() {
		s.present(o)
	}
	return r
}

func (s *Service) await(ctx context.Context, check string, d *async.Deferred[Outcome]) Outcome {
	o, err := d.Await(ctx)
	if err != nil {
		s.logger.Printf("[diagnose] %s check failed: %v", check, err)
		return Unknown
	}
	return o
}

func (s *Service) present(o Outcome) {
	if s.presenter == nil || o.Severity() == SeverityNone {
		return
	}
	s.presenter.Present(o)
}

func classifyDiscord(ps []ProcessInfo) Outcome {
	var found *ProcessInfo
	for i, p := range ps {
		if strings.Contains(strings.ToLower(p.Name), "discord") {
			found = &ps[i]
			break
		}
	}
	if found == nil {
		for _, p := range ps {
			if isBrowser(p.Name) && strings.Contains(strings.ToLower(p.Cmdline), "discord.com") {
				return DiscordBrowser
			}
		}
		return DiscordClosed
	}

	exe := strings.ToLower(found.Exe)
	switch {
	case strings.HasPrefix(exe, "/snap/"):
		return DiscordSnap
	case strings.Contains(exe, "flatpak") || strings.HasPrefix(exe, "/app/"):
		return DiscordFlatpak
	case found.Elevated():
		return DiscordAdministrator
	default:
		return DiscordRunning
	}
}

func isBrowser(name string) bool {
	name = strings.ToLower(name)
	for _, b := range browsers {
		if strings.Contains(name, b) {
			return true
		}
	}
	return false
}

func classifyIDE(ps []ProcessInfo, applicationName string) Outcome {
	fields := strings.Fields(strings.ToLower(applicationName))
	if len(fields) == 0 {
		return IDEOther
	}
	token := fields[0]
	for _, p := range ps {
		exe := strings.ToLower(p.Exe)
		if strings.HasPrefix(exe, "/snap/") && strings.Contains(exe, token) {
			return IDESnap
		}
	}
	return IDEOther
}

func classifyIntegrations(plugins []string) Outcome {
	n := 0
	for _, id := range plugins {
		if id == LegacyIntegration {
			return IntegrationLegacy
		}
		for _, known := range KnownIntegrations {
			if id == known {
				n++
			}
		}
	}
	switch n {
	case 0:
		return IntegrationsNone
	case 1:
		return IntegrationsOne
	default:
		return IntegrationsMultiple
	}
}

// CheckUpdate reports whether current is a release newer than the version
// the user was last notified about. Development builds never notify.
func CheckUpdate(lastNotified, current string) (Outcome, bool) {
	cur, err := buildinfo.ParseSemver(current)
	if err != nil {
		return Unknown, false
	}
	last, err := buildinfo.ParseSemver(lastNotified)
	if err != nil || last.LessThan(cur) {
		return UpdatedVersion, true
	}
	return Unknown, false
}
