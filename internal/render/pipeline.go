package render

import (
	"log"
	"os"

	"github.com/watchfire-io/presence/internal/activity"
	"github.com/watchfire-io/presence/internal/buildinfo"
	"github.com/watchfire-io/presence/internal/presence"
	"github.com/watchfire-io/presence/internal/settings"
	"github.com/watchfire-io/presence/internal/values"
)

// Pipeline selects and runs one renderer per context. It holds no
// per-render state and may be used from several goroutines.
type Pipeline struct {
	layout  *settings.Layout
	logger  *log.Logger
	partyID func() (string, bool)

	idle        Renderer
	application Renderer
	project     Renderer
	file        Renderer
}

// NewPipeline creates a Pipeline rendering with layout.
func NewPipeline(layout *settings.Layout, opts ...Option) *Pipeline {
	p := &Pipeline{
		layout:  layout,
		logger:  log.New(os.Stderr, "", log.LstdFlags),
		partyID: buildinfo.PartyID,
	}
	for _, opt := range opts {
		opt(p)
	}

	fl := fieldLogger{logger: p.logger}
	p.idle = &IdleRenderer{fieldLogger: fl, icon: layout.IdleIcon, partyID: p.partyID}
	p.application = &ScopeRenderer{fieldLogger: fl, scope: layout.Application}
	p.project = &ScopeRenderer{fieldLogger: fl, scope: layout.Project}
	p.file = &ScopeRenderer{fieldLogger: fl, scope: layout.File, decline: p.hideIgnored}
	return p
}

func (p *Pipeline) hideIgnored(ctx *activity.Context) bool {
	if ctx.File == nil || !ctx.File.Ignored {
		return false
	}
	hide, err := p.layout.HideIgnored.Resolve(ctx)
	return err == nil && hide
}

// Render builds the presence for ctx. It returns false when nothing should
// be shown.
func (p *Pipeline) Render(ctx *activity.Context) (presence.Presence, bool) {
	_, pres, ok := p.RenderMode(ctx)
	return pres, ok
}

// RenderMode is Render that also reports which renderer produced the
// presence.
func (p *Pipeline) RenderMode(ctx *activity.Context) (Mode, presence.Presence, bool) {
	if show, err := p.layout.Show.Resolve(ctx); err != nil || !show {
		return ModeNone, presence.Presence{}, false
	}

	mode := Select(ctx)
	if mode == ModeIdle {
		vis, err := p.layout.Idle.Resolve(ctx)
		if err != nil {
			p.logger.Printf("[render] %s: %v", p.layout.Idle.Name(), err)
		}
		switch vis {
		case values.IdleHide:
			return ModeIdle, presence.Presence{}, false
		case values.IdleIgnore:
			mode = activeMode(ctx)
		}
	}

	switch mode {
	case ModeIdle:
		pres, ok := p.idle.Render(ctx)
		return ModeIdle, pres, ok
	case ModeFile:
		if pres, ok := p.file.Render(ctx); ok {
			return ModeFile, pres, true
		}
		if ctx.Project != nil {
			return p.scope(ModeProject, ctx)
		}
		return p.scope(ModeApplication, ctx)
	case ModeProject:
		return p.scope(ModeProject, ctx)
	case ModeApplication:
		return p.scope(ModeApplication, ctx)
	default:
		return ModeNone, presence.Presence{}, false
	}
}

func (p *Pipeline) scope(mode Mode, ctx *activity.Context) (Mode, presence.Presence, bool) {
	r := p.application
	if mode == ModeProject {
		r = p.project
	}
	pres, ok := r.Render(ctx)
	return mode, pres, ok
}
