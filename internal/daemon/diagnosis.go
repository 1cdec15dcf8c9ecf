package daemon

import (
	"context"
	"log"

	"github.com/watchfire-io/presence/internal/buildinfo"
	"github.com/watchfire-io/presence/internal/config"
	"github.com/watchfire-io/presence/internal/diagnose"
)

// logPresenter writes outcomes to the daemon log.
type logPresenter struct {
	logger *log.Logger
}

func (p logPresenter) Present(o diagnose.Outcome) {
	p.logger.Printf("[diagnose] %s: %s", o.Severity(), o.Message())
}

// diagnose inspects the environment once, using the editor's latest
// activity report.
func (d *Daemon) diagnose(ctx context.Context) {
	state, err := config.LoadActivity(d.cfg.ActivityFile)
	if err != nil {
		d.logger.Printf("[diagnose] Failed to load activity: %v", err)
		return
	}
	in := diagnose.Input{Plugins: state.Plugins}
	if state.Application != nil {
		in.ApplicationName = state.Application.Name
	}
	r := diagnose.NewService(d.lister, diagnose.WithPresenter(d.presenter), diagnose.WithLogger(d.logger)).Run(ctx, in)
	d.logger.Printf("[diagnose] discord=%s integrations=%s ide=%s", r.Discord, r.Integrations, r.IDE)
}

// checkUpdate announces a newly installed release once, remembering the
// announced version in the stored settings.
func (d *Daemon) checkUpdate() {
	stored := d.holder.Stored()
	o, ok := diagnose.CheckUpdate(stored.LastUpdateNotification, buildinfo.Version)
	if !ok {
		return
	}
	d.presenter.Present(o)

	next := *stored
	next.LastUpdateNotification = buildinfo.Version
	if err := config.SaveFile(d.cfg.SettingsFile, &next); err != nil {
		d.logger.Printf("[update] Failed to save last notified version: %v", err)
		return
	}
	d.holder.Store(&next)
}
