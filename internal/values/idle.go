package values

import (
	"github.com/watchfire-io/presence/internal/activity"
	"github.com/watchfire-io/presence/internal/option"
)

// IdleVisibility decides what is shown while the user is idle.
type IdleVisibility string

// Idle visibilities. The first is the default.
const (
	IdleShow   IdleVisibility = "idle"   // show the idle presence
	IdleIgnore IdleVisibility = "ignore" // keep showing the normal presence
	IdleHide   IdleVisibility = "hide"   // show nothing
)

// IdleVariants lists every idle visibility.
func IdleVariants() []option.Variant[IdleVisibility] {
	names := map[IdleVisibility]string{
		IdleShow:   "Show idle status",
		IdleIgnore: "Ignore idleness",
		IdleHide:   "Hide presence",
	}
	var out []option.Variant[IdleVisibility]
	for _, vis := range []IdleVisibility{IdleShow, IdleIgnore, IdleHide} {
		out = append(out, option.Variant[IdleVisibility]{
			ID:      string(vis),
			Name:    names[vis],
			Compute: func(*activity.Context) (IdleVisibility, error) { return vis, nil },
		})
	}
	return out
}
