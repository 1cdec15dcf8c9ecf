package values

import (
	"github.com/watchfire-io/presence/internal/activity"
	"github.com/watchfire-io/presence/internal/option"
	"github.com/watchfire-io/presence/internal/source"
)

// Icon sources.
const (
	IconCustom      = "custom"
	IconApplication = "application"
	IconFile        = "file"
	IconNone        = "none"
)

// IconKind classifies a resolved icon.
type IconKind int

// Icon result kinds.
const (
	IconEmpty IconKind = iota
	IconCustomTemplate
	IconAsset
)

// IconResult is what an icon selection resolves to.
type IconResult struct {
	Kind  IconKind
	Asset source.Asset
}

// Variant orders per icon slot; the first entry is the default.
var (
	LargeApplicationIcons = []string{IconApplication, IconCustom, IconNone}
	LargeProjectIcons     = []string{IconApplication, IconCustom, IconNone}
	LargeFileIcons        = []string{IconFile, IconApplication, IconCustom, IconNone}
	SmallApplicationIcons = []string{IconNone, IconApplication, IconCustom}
	SmallProjectIcons     = []string{IconNone, IconApplication, IconCustom}
	SmallFileIcons        = []string{IconApplication, IconFile, IconCustom, IconNone}
)

// IconSet picks the provider that holds the application icon for a scope.
type IconSet func(ctx *activity.Context) source.Provider

// ApplicationIconSet and ProjectIconSet select the per-scope icon sets.
var (
	ApplicationIconSet IconSet = func(ctx *activity.Context) source.Provider { return ctx.ApplicationIcons }
	ProjectIconSet     IconSet = func(ctx *activity.Context) source.Provider { return ctx.ProjectIcons }
)

func asset(a source.Asset, ok bool) IconResult {
	if !ok {
		return IconResult{}
	}
	return IconResult{Kind: IconAsset, Asset: a}
}

// IconVariants builds the variants for ids. Application icons come from
// set; file icons come from the file icon set, following language parents.
func IconVariants(set IconSet, ids ...string) []option.Variant[IconResult] {
	out := make([]option.Variant[IconResult], 0, len(ids))
	for _, id := range ids {
		v := option.Variant[IconResult]{ID: id}
		switch id {
		case IconApplication:
			v.Name = "Application"
			v.Compute = func(ctx *activity.Context) (IconResult, error) {
				p := set(ctx)
				if p == nil {
					return IconResult{}, nil
				}
				return asset(p.GetAsset(source.ApplicationKey)), nil
			}
		case IconFile:
			v.Name = "File"
			v.Compute = func(ctx *activity.Context) (IconResult, error) {
				if ctx.File == nil || ctx.File.Language == nil {
					return IconResult{}, nil
				}
				return asset(ctx.Languages.FindIcon(ctx.File.Language, ctx.FileIcons)), nil
			}
		case IconCustom:
			v.Name = "Custom"
			v.Compute = func(*activity.Context) (IconResult, error) {
				return IconResult{Kind: IconCustomTemplate}, nil
			}
		default:
			v.Name = "None"
			v.Compute = func(*activity.Context) (IconResult, error) {
				return IconResult{}, nil
			}
		}
		out = append(out, v)
	}
	return out
}
