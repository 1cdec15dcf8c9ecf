// Package values defines the built-in choices available to presence
// options and what each choice computes.
package values

import (
	"github.com/watchfire-io/presence/internal/activity"
	"github.com/watchfire-io/presence/internal/option"
	"github.com/watchfire-io/presence/internal/template"
)

// Text line sources.
const (
	TextApplication        = "application"
	TextApplicationVersion = "application_version"
	TextProject            = "project"
	TextProjectDescription = "project_description"
	TextFile               = "file"
	TextFilePath           = "file_path"
	TextLanguage           = "language"
	TextCustom             = "custom"
	TextNone               = "none"
)

// TextKind classifies a resolved text line.
type TextKind int

// Text result kinds.
const (
	TextEmpty TextKind = iota
	TextString
	TextCustomTemplate // the caller's custom template supplies the text
)

// TextResult is what a text selection resolves to.
type TextResult struct {
	Kind  TextKind
	Value string
}

// Variant orders per field. The first entry is the field's default and the
// fallback for unknown selectors.
var (
	ApplicationDetailsTexts = []string{TextApplication, TextApplicationVersion, TextCustom, TextNone}
	ApplicationStateTexts   = []string{TextNone, TextApplication, TextApplicationVersion, TextCustom}
	ProjectDetailsTexts     = []string{TextProject, TextProjectDescription, TextApplication, TextCustom, TextNone}
	ProjectStateTexts       = []string{TextProjectDescription, TextProject, TextApplication, TextCustom, TextNone}
	FileDetailsTexts        = []string{TextProject, TextFile, TextFilePath, TextLanguage, TextApplication, TextCustom, TextNone}
	FileStateTexts          = []string{TextFile, TextFilePath, TextProject, TextLanguage, TextApplication, TextCustom, TextNone}

	LargeCaptionTexts     = []string{TextApplicationVersion, TextApplication, TextCustom, TextNone}
	SmallCaptionTexts     = []string{TextNone, TextApplication, TextApplicationVersion, TextCustom}
	FileLargeCaptionTexts = []string{TextLanguage, TextFile, TextApplicationVersion, TextCustom, TextNone}
	FileSmallCaptionTexts = []string{TextApplicationVersion, TextApplication, TextLanguage, TextCustom, TextNone}
)

// TextDeps are the settings some text sources depend on.
type TextDeps struct {
	// ApplicationName resolves the editor name for the configured type.
	ApplicationName *option.Option[string]
	// FilePrefix prepends "Reading"/"Editing" to file names.
	FilePrefix option.Value[bool]
}

// TextVariants builds the variants for ids, in order.
func TextVariants(d TextDeps, ids ...string) []option.Variant[TextResult] {
	out := make([]option.Variant[TextResult], 0, len(ids))
	for _, id := range ids {
		out = append(out, d.variant(id))
	}
	return out
}

func str(s string) TextResult {
	if s == "" {
		return TextResult{}
	}
	return TextResult{Kind: TextString, Value: s}
}

func (d TextDeps) appName(ctx *activity.Context) (string, error) {
	if d.ApplicationName == nil {
		if ctx == nil || ctx.Application == nil {
			return "", nil
		}
		return ctx.Application.Name, nil
	}
	return d.ApplicationName.Resolve(ctx)
}

func (d TextDeps) prefixed(ctx *activity.Context, s string) string {
	if s == "" || d.FilePrefix == nil || !d.FilePrefix.Get() {
		return s
	}
	return template.FileAction(ctx.File.ReadOnly) + " " + s
}

func (d TextDeps) variant(id string) option.Variant[TextResult] {
	v := option.Variant[TextResult]{ID: id}
	switch id {
	case TextApplication:
		v.Name = "Application name"
		v.Compute = func(ctx *activity.Context) (TextResult, error) {
			name, err := d.appName(ctx)
			return str(name), err
		}
	case TextApplicationVersion:
		v.Name = "Application name and version"
		v.Compute = func(ctx *activity.Context) (TextResult, error) {
			name, err := d.appName(ctx)
			if err != nil || name == "" {
				return TextResult{}, err
			}
			if ctx.Application.Version != "" {
				name += " " + ctx.Application.Version
			}
			return str(name), nil
		}
	case TextProject:
		v.Name = "Project name"
		v.Compute = func(ctx *activity.Context) (TextResult, error) {
			if ctx.Project == nil {
				return TextResult{}, nil
			}
			return str(ctx.Project.Name), nil
		}
	case TextProjectDescription:
		v.Name = "Project description"
		v.Compute = func(ctx *activity.Context) (TextResult, error) {
			if ctx.Project == nil {
				return TextResult{}, nil
			}
			return str(ctx.Project.Description), nil
		}
	case TextFile:
		v.Name = "File name"
		v.Compute = func(ctx *activity.Context) (TextResult, error) {
			if ctx.File == nil {
				return TextResult{}, nil
			}
			return str(d.prefixed(ctx, ctx.File.Name)), nil
		}
	case TextFilePath:
		v.Name = "File path"
		v.Compute = func(ctx *activity.Context) (TextResult, error) {
			if ctx.File == nil {
				return TextResult{}, nil
			}
			return str(d.prefixed(ctx, ctx.File.RelativePath)), nil
		}
	case TextLanguage:
		v.Name = "File language"
		v.Compute = func(ctx *activity.Context) (TextResult, error) {
			return str(ctx.LanguageName()), nil
		}
	case TextCustom:
		v.Name = "Custom"
		v.Compute = func(*activity.Context) (TextResult, error) {
			return TextResult{Kind: TextCustomTemplate}, nil
		}
	default:
		v.Name = "None"
		v.Compute = func(*activity.Context) (TextResult, error) {
			return TextResult{}, nil
		}
	}
	return v
}
