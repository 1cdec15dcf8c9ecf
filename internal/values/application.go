package values

import (
	"github.com/watchfire-io/presence/internal/activity"
	"github.com/watchfire-io/presence/internal/option"
)

// Application name styles.
const (
	ApplicationIDEEdition = "ide_edition" // "IntelliJ IDEA Ultimate"
	ApplicationIDE        = "ide"         // "IntelliJ IDEA"
)

// ApplicationNameVariants lists the ways the editor can be named.
func ApplicationNameVariants() []option.Variant[string] {
	return []option.Variant[string]{
		{
			ID:   ApplicationIDEEdition,
			Name: "IDE edition",
			Compute: func(ctx *activity.Context) (string, error) {
				if ctx == nil || ctx.Application == nil {
					return "", nil
				}
				if ctx.Application.Edition != "" {
					return ctx.Application.Edition, nil
				}
				return ctx.Application.Name, nil
			},
		},
		{
			ID:   ApplicationIDE,
			Name: "IDE",
			Compute: func(ctx *activity.Context) (string, error) {
				if ctx == nil || ctx.Application == nil {
					return "", nil
				}
				return ctx.Application.Name, nil
			},
		},
	}
}
