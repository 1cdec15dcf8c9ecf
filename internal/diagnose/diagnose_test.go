package diagnose

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"
)

type fakeLister struct {
	procs []ProcessInfo
	err   error
	calls int
	mu    sync.Mutex
}

func (f *fakeLister) Processes(context.Context) ([]ProcessInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.procs, f.err
}

type recorder struct {
	mu  sync.Mutex
	got []Outcome
}

func (r *recorder) Present(o Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, o)
}

func quiet() Option { return WithLogger(log.New(io.Discard, "", 0)) }

func TestClassifyDiscord(t *testing.T) {
	tests := []struct {
		name  string
		procs []ProcessInfo
		want  Outcome
	}{
		{"closed", []ProcessInfo{{Name: "bash"}}, DiscordClosed},
		{"running", []ProcessInfo{{Name: "Discord", Exe: "/usr/share/discord/Discord", Username: "alice"}}, DiscordRunning},
		{"canary", []ProcessInfo{{Name: "DiscordCanary", Exe: "/opt/discord-canary/DiscordCanary"}}, DiscordRunning},
		{"snap", []ProcessInfo{{Name: "Discord", Exe: "/snap/discord/180/usr/share/discord/Discord"}}, DiscordSnap},
		{"flatpak", []ProcessInfo{{Name: "Discord", Exe: "/app/discord/Discord"}}, DiscordFlatpak},
		{"root", []ProcessInfo{{Name: "Discord", Exe: "/usr/bin/discord", Username: "root"}}, DiscordAdministrator},
		{"windows admin", []ProcessInfo{{Name: "Discord.exe", Exe: `C:\Discord\Discord.exe`, Username: `DESKTOP\Administrator`}}, DiscordAdministrator},
		{"browser", []ProcessInfo{{Name: "chrome", Cmdline: "chrome --app=https://discord.com/app"}}, DiscordBrowser},
		{"browser without discord", []ProcessInfo{{Name: "firefox", Cmdline: "firefox https://go.dev"}}, DiscordClosed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyDiscord(tt.procs); got != tt.want {
				t.Errorf("classifyDiscord() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassifyIntegrations(t *testing.T) {
	tests := []struct {
		plugins []string
		want    Outcome
	}{
		{nil, IntegrationsNone},
		{[]string{"org.jetbrains.kotlin"}, IntegrationsNone},
		{[]string{KnownIntegrations[0]}, IntegrationsOne},
		{KnownIntegrations, IntegrationsMultiple},
		{[]string{KnownIntegrations[0], LegacyIntegration}, IntegrationLegacy},
	}
	for _, tt := range tests {
		if got := classifyIntegrations(tt.plugins); got != tt.want {
			t.Errorf("classifyIntegrations(%v) = %s, want %s", tt.plugins, got, tt.want)
		}
	}
}

func TestClassifyIDE(t *testing.T) {
	procs := []ProcessInfo{{Name: "java", Exe: "/snap/intellij-idea-ultimate/500/jbr/bin/java"}}
	if got := classifyIDE(procs, "IntelliJ IDEA"); got != IDESnap {
		t.Errorf("snap IDE = %s", got)
	}
	if got := classifyIDE(procs, "GoLand"); got != IDEOther {
		t.Errorf("other IDE = %s", got)
	}
	if got := classifyIDE(procs, ""); got != IDEOther {
		t.Errorf("unnamed IDE = %s", got)
	}
}

func TestServiceRun(t *testing.T) {
	lister := &fakeLister{procs: []ProcessInfo{
		{Name: "Discord", Exe: "/snap/discord/1/Discord"},
		{Name: "goland", Exe: "/opt/goland/bin/goland"},
	}}
	rec := &recorder{}
	s := NewService(lister, WithPresenter(rec), quiet())

	r := s.Run(context.Background(), Input{ApplicationName: "GoLand", Plugins: []string{KnownIntegrations[1]}})
	want := Report{Discord: DiscordSnap, Integrations: IntegrationsOne, IDE: IDEOther}
	if r != want {
		t.Errorf("Run() = %+v, want %+v", r, want)
	}
	if lister.calls != 1 {
		t.Errorf("processes listed %d times, want once", lister.calls)
	}
	if len(rec.got) != 2 || rec.got[0] != DiscordSnap || rec.got[1] != IntegrationsOne {
		t.Errorf("presented %v, want only outcomes needing attention", rec.got)
	}
}

func TestServiceRunListFailure(t *testing.T) {
	s := NewService(&fakeLister{err: errors.New("permission denied")}, quiet())
	r := s.Run(context.Background(), Input{Plugins: []string{LegacyIntegration}})
	if r.Discord != Unknown || r.IDE != Unknown {
		t.Errorf("process checks = %s/%s, want unknown", r.Discord, r.IDE)
	}
	if r.Integrations != IntegrationLegacy {
		t.Errorf("Integrations = %s, want legacy", r.Integrations)
	}
}

func TestServiceRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	done := make(chan Report)
	go func() { done <- NewService(&fakeLister{}, quiet()).Run(ctx, Input{}) }()
	select {
	case r := <-done:
		if r.Discord != Unknown && r.Discord != DiscordClosed {
			t.Errorf("Discord = %s", r.Discord)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancellation")
	}
}

func TestCheckUpdate(t *testing.T) {
	tests := []struct {
		last, current string
		want          bool
	}{
		{"", "1.2.0", true},
		{"1.1.9", "1.2.0", true},
		{"v1.2.0", "1.2.0", false},
		{"1.3.0", "1.2.0", false},
		{"1.2.0", "dev", false},
	}
	for _, tt := range tests {
		o, got := CheckUpdate(tt.last, tt.current)
		if got != tt.want {
			t.Errorf("CheckUpdate(%q, %q) = %v, want %v", tt.last, tt.current, got, tt.want)
		}
		if got && o != UpdatedVersion {
			t.Errorf("CheckUpdate outcome = %s", o)
		}
	}
}

func TestOutcomeText(t *testing.T) {
	b, _ := DiscordBrowser.MarshalText()
	if string(b) != "discord_browser" || DiscordBrowser.Severity() != SeverityError || DiscordBrowser.Message() == "" {
		t.Errorf("DiscordBrowser = %s/%s/%q", b, DiscordBrowser.Severity(), DiscordBrowser.Message())
	}
	if DiscordRunning.Severity() != SeverityNone {
		t.Error("a running client needs no attention")
	}
}
