// Package render turns an activity context into a presence.
package render

import (
	"log"
	"time"

	"github.com/watchfire-io/presence/internal/activity"
	"github.com/watchfire-io/presence/internal/presence"
	"github.com/watchfire-io/presence/internal/settings"
)

// IdleText is the details line shown while idle.
const IdleText = "Idling"

// Mode identifies which renderer handles a context.
type Mode int

// Modes.
const (
	ModeNone Mode = iota
	ModeIdle
	ModeApplication
	ModeProject
	ModeFile
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeApplication:
		return "application"
	case ModeProject:
		return "project"
	case ModeFile:
		return "file"
	default:
		return "none"
	}
}

// Select picks the renderer for ctx.
func Select(ctx *activity.Context) Mode {
	if ctx == nil || ctx.Application == nil {
		return ModeNone
	}
	if ctx.Idle {
		return ModeIdle
	}
	return activeMode(ctx)
}

func activeMode(ctx *activity.Context) Mode {
	switch {
	case ctx.File != nil:
		return ModeFile
	case ctx.Project != nil:
		return ModeProject
	default:
		return ModeApplication
	}
}

// Renderer builds a presence for one mode. It returns false when it
// declines the context.
type Renderer interface {
	Render(ctx *activity.Context) (presence.Presence, bool)
}

// fieldLogger reports field failures. A failed field renders empty.
type fieldLogger struct {
	logger *log.Logger
}

func (f fieldLogger) text(field settings.TextField, ctx *activity.Context) string {
	s, err := field.Resolve(ctx)
	if err != nil {
		f.logger.Printf("[render] %s: %v", field.Selection.Name(), err)
		return ""
	}
	return s
}

func (f fieldLogger) image(field settings.IconField, ctx *activity.Context, caption func() string) *presence.Image {
	a, ok, err := field.Resolve(ctx)
	if err != nil {
		f.logger.Printf("[render] %s: %v", field.Selection.Name(), err)
		return nil
	}
	if !ok {
		return nil
	}
	return &presence.Image{Asset: a, Text: caption()}
}

// IdleRenderer renders the idle presence.
type IdleRenderer struct {
	fieldLogger
	icon    settings.IconField
	partyID func() (string, bool)
}

// Render implements Renderer.
func (r *IdleRenderer) Render(ctx *activity.Context) (presence.Presence, bool) {
	p := presence.Presence{Details: IdleText}
	if !ctx.IdleSince.IsZero() {
		p.StartTimestamp = timePtr(ctx.IdleSince)
		p.ShowElapsed = true
	}
	p.LargeImage = r.image(r.icon, ctx, func() string { return IdleText })
	if id, ok := r.partyID(); ok {
		p.PartyID = id
	}
	return p, true
}

// ScopeRenderer renders the application, project or file presence from
// its scope's fields.
type ScopeRenderer struct {
	fieldLogger
	scope   settings.Scope
	decline func(ctx *activity.Context) bool
}

// Render implements Renderer.
func (r *ScopeRenderer) Render(ctx *activity.Context) (presence.Presence, bool) {
	if r.decline != nil && r.decline(ctx) {
		return presence.Presence{}, false
	}
	s := r.scope
	p := presence.Presence{
		Details: r.text(s.Details, ctx),
		State:   r.text(s.State, ctx),
	}
	p.LargeImage = r.image(s.LargeIcon, ctx, func() string { return r.text(s.LargeIcon.Caption, ctx) })
	p.SmallImage = r.image(s.SmallIcon, ctx, func() string { return r.text(s.SmallIcon.Caption, ctx) })

	t, err := s.Time.Resolve(ctx)
	if err != nil {
		r.logger.Printf("[render] %s: %v", s.Time.Name(), err)
	} else if t.Show {
		p.StartTimestamp = timePtr(t.Start)
		p.ShowElapsed = true
	}
	return p, true
}

func timePtr(t time.Time) *time.Time { return &t }

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for field failures.
func WithLogger(l *log.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithPartyID overrides the source of the idle party id.
func WithPartyID(fn func() (string, bool)) Option {
	return func(p *Pipeline) { p.partyID = fn }
}
