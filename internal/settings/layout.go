package settings

import (
	"strings"
	"time"

	"github.com/watchfire-io/presence/internal/activity"
	"github.com/watchfire-io/presence/internal/models"
	"github.com/watchfire-io/presence/internal/option"
	"github.com/watchfire-io/presence/internal/source"
	"github.com/watchfire-io/presence/internal/template"
	"github.com/watchfire-io/presence/internal/values"
)

// Idle timeout bounds, in minutes.
const (
	MinTimeoutMinutes = 1
	MaxTimeoutMinutes = 24 * 60
)

// TextField is a text line: a selection of built-in sources whose "custom"
// choice defers to a template.
type TextField struct {
	Selection *option.Option[values.TextResult]
	Custom    *option.Option[string]
}

// Resolve returns the line's text. An empty string means the line is
// absent.
func (f TextField) Resolve(ctx *activity.Context) (string, error) {
	r, err := f.Selection.Resolve(ctx)
	if err != nil {
		return "", err
	}
	switch r.Kind {
	case values.TextString:
		return r.Value, nil
	case values.TextCustomTemplate:
		s, err := f.Custom.Resolve(ctx)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	default:
		return "", nil
	}
}

// IconField is an image slot with its own caption. A custom icon is a
// template rendering to an image URL.
type IconField struct {
	Selection *option.Option[values.IconResult]
	Custom    *option.Option[string]
	Caption   TextField
}

// Resolve returns the slot's asset, if any.
func (f IconField) Resolve(ctx *activity.Context) (source.Asset, bool, error) {
	r, err := f.Selection.Resolve(ctx)
	if err != nil {
		return source.Asset{}, false, err
	}
	switch r.Kind {
	case values.IconAsset:
		return r.Asset, true, nil
	case values.IconCustomTemplate:
		url, err := f.Custom.Resolve(ctx)
		if err != nil {
			return source.Asset{}, false, err
		}
		url = strings.TrimSpace(url)
		if url == "" {
			return source.Asset{}, false, nil
		}
		return source.WebAsset(url), true, nil
	default:
		return source.Asset{}, false, nil
	}
}

// Scope groups the fields rendered for one of application, project or file.
type Scope struct {
	Name      string
	Details   TextField
	State     TextField
	LargeIcon IconField
	SmallIcon IconField
	Time      *option.Option[values.TimeResult]
}

// Layout is every presence setting as an option tree. It is built once and
// always reads the holder's current settings.
type Layout struct {
	Show            *option.Option[bool]
	TimeoutMinutes  *option.Option[int]
	ResetOpenTime   *option.Option[bool]
	Idle            *option.Option[values.IdleVisibility]
	ApplicationName *option.Option[string]

	Application Scope
	Project     Scope
	File        Scope
	// IdleIcon is the application large icon, with the custom template
	// read from stored settings only.
	IdleIcon IconField

	FilePrefix       *option.Option[bool]
	HideIgnored      *option.Option[bool]
	ApplicationTheme *option.Option[string]
	IconsTheme       *option.Option[string]
}

type builder struct {
	h      *Holder
	engine template.Engine
	deps   values.TextDeps
}

type scopeSpec struct {
	name         string
	layout       func(*models.Settings) *models.LayoutConfig
	details      []string
	state        []string
	largeCaption []string
	smallCaption []string
	largeIcons   []string
	smallIcons   []string
	times        []string
	iconSet      values.IconSet
}

// NewLayout builds the option trees over h, executing custom templates
// with engine.
func NewLayout(h *Holder, engine template.Engine) *Layout {
	b := builder{h: h, engine: engine}
	l := &Layout{}

	l.Show = option.Simple("show", field(h, func(s *models.Settings) bool { return s.Show }))
	l.TimeoutMinutes = option.Toggle("timeout",
		field(h, func(s *models.Settings) bool { return s.Timeout.Enabled }),
		option.EnableOn(true),
		option.Simple("timeout.minutes", field(h, func(s *models.Settings) int {
			return min(max(s.Timeout.Minutes, MinTimeoutMinutes), MaxTimeoutMinutes)
		})),
	)
	l.ResetOpenTime = option.Simple("timeout.reset_time", field(h, func(s *models.Settings) bool { return s.Timeout.ResetTime }))
	l.Idle = option.Selection("idle", field(h, func(s *models.Settings) string { return s.Idle }), values.IdleVariants()...)
	l.ApplicationName = option.Selection("application_type",
		field(h, func(s *models.Settings) string { return s.ApplicationType }),
		values.ApplicationNameVariants()...)
	l.FilePrefix = option.Simple("file.prefix_enabled", field(h, func(s *models.Settings) bool { return s.File.PrefixEnabled }))
	l.HideIgnored = option.Simple("file.hide_vcs_ignored", field(h, func(s *models.Settings) bool { return s.File.HideVCSIgnored }))
	l.ApplicationTheme = option.Simple("application_theme", field(h, func(s *models.Settings) string { return s.ApplicationTheme }))
	l.IconsTheme = option.Simple("icons_theme", field(h, func(s *models.Settings) string { return s.IconsTheme }))

	b.deps = values.TextDeps{
		ApplicationName: l.ApplicationName,
		FilePrefix:      field(h, func(s *models.Settings) bool { return s.File.PrefixEnabled }),
	}

	l.Application = b.scope(scopeSpec{
		name:         "application",
		layout:       func(s *models.Settings) *models.LayoutConfig { return &s.Application },
		details:      values.ApplicationDetailsTexts,
		state:        values.ApplicationStateTexts,
		largeCaption: values.LargeCaptionTexts,
		smallCaption: values.SmallCaptionTexts,
		largeIcons:   values.LargeApplicationIcons,
		smallIcons:   values.SmallApplicationIcons,
		times:        values.ApplicationTimes,
		iconSet:      values.ApplicationIconSet,
	})
	l.Project = b.scope(scopeSpec{
		name:         "project",
		layout:       func(s *models.Settings) *models.LayoutConfig { return &s.Project },
		details:      values.ProjectDetailsTexts,
		state:        values.ProjectStateTexts,
		largeCaption: values.LargeCaptionTexts,
		smallCaption: values.SmallCaptionTexts,
		largeIcons:   values.LargeProjectIcons,
		smallIcons:   values.SmallProjectIcons,
		times:        values.ProjectTimes,
		iconSet:      values.ProjectIconSet,
	})
	l.File = b.scope(scopeSpec{
		name:         "file",
		layout:       func(s *models.Settings) *models.LayoutConfig { return &s.File.LayoutConfig },
		details:      values.FileDetailsTexts,
		state:        values.FileStateTexts,
		largeCaption: values.FileLargeCaptionTexts,
		smallCaption: values.FileSmallCaptionTexts,
		largeIcons:   values.LargeFileIcons,
		smallIcons:   values.SmallFileIcons,
		times:        values.FileTimes,
		iconSet:      values.ApplicationIconSet,
	})

	appIcon := func(s *models.Settings) *models.IconConfig { return &s.Application.IconLarge }
	l.IdleIcon = IconField{
		Selection: l.Application.LargeIcon.Selection,
		Custom: option.Toggle("idle.icon.custom",
			field(h, func(s *models.Settings) string { return appIcon(s).Source }),
			option.EnableOn(values.IconCustom),
			option.Text("idle.icon.custom",
				option.StoredOnly(field(h, func(s *models.Settings) string { return appIcon(s).Custom })),
				engine)),
	}
	return l
}

func (b builder) text(name string, line func(*models.Settings) *models.LineConfig, ids []string) TextField {
	selector := field(b.h, func(s *models.Settings) string { return line(s).Source })
	custom := field(b.h, func(s *models.Settings) string { return line(s).Custom })
	return TextField{
		Selection: option.Selection(name, selector, values.TextVariants(b.deps, ids...)...),
		Custom: option.Toggle(name+".custom", selector, option.EnableOn(values.TextCustom),
			option.Text(name+".custom", custom, b.engine)),
	}
}

func (b builder) icon(name string, icon func(*models.Settings) *models.IconConfig, set values.IconSet, ids, captions []string) IconField {
	selector := field(b.h, func(s *models.Settings) string { return icon(s).Source })
	custom := field(b.h, func(s *models.Settings) string { return icon(s).Custom })
	return IconField{
		Selection: option.Selection(name, selector, values.IconVariants(set, ids...)...),
		Custom: option.Toggle(name+".custom", selector, option.EnableOn(values.IconCustom),
			option.Text(name+".custom", custom, b.engine)),
		Caption: b.text(name+".text", func(s *models.Settings) *models.LineConfig { return &icon(s).Text }, captions),
	}
}

func (b builder) scope(sp scopeSpec) Scope {
	return Scope{
		Name: sp.name,
		Details: b.text(sp.name+".details",
			func(s *models.Settings) *models.LineConfig { return &sp.layout(s).Details }, sp.details),
		State: b.text(sp.name+".state",
			func(s *models.Settings) *models.LineConfig { return &sp.layout(s).State }, sp.state),
		LargeIcon: b.icon(sp.name+".icon_large",
			func(s *models.Settings) *models.IconConfig { return &sp.layout(s).IconLarge },
			sp.iconSet, sp.largeIcons, sp.largeCaption),
		SmallIcon: b.icon(sp.name+".icon_small",
			func(s *models.Settings) *models.IconConfig { return &sp.layout(s).IconSmall },
			sp.iconSet, sp.smallIcons, sp.smallCaption),
		Time: option.Selection(sp.name+".time",
			field(b.h, func(s *models.Settings) string { return sp.layout(s).Time }),
			values.TimeVariants(sp.times...)...),
	}
}

// TrackerConfig resolves the settings that shape activity snapshots.
func (l *Layout) TrackerConfig() activity.Config {
	minutes, _ := l.TimeoutMinutes.Resolve(nil)
	reset, _ := l.ResetOpenTime.Resolve(nil)
	hide, _ := l.HideIgnored.Resolve(nil)
	appTheme, _ := l.ApplicationTheme.Resolve(nil)
	iconsTheme, _ := l.IconsTheme.Resolve(nil)
	return activity.Config{
		Timeout:          time.Duration(minutes) * time.Minute,
		ResetOnResume:    reset,
		CheckIgnored:     hide,
		ApplicationTheme: appTheme,
		IconsTheme:       iconsTheme,
	}
}
