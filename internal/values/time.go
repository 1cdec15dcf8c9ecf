package values

import (
	"time"

	"github.com/watchfire-io/presence/internal/activity"
	"github.com/watchfire-io/presence/internal/option"
)

// Elapsed time sources.
const (
	TimeApplication = "application"
	TimeProject     = "project"
	TimeFile        = "file"
	TimeHide        = "hide"
)

// TimeResult is the start of the elapsed-time counter, if shown.
type TimeResult struct {
	Start time.Time
	Show  bool
}

// Variant orders per scope; the first entry is the default.
var (
	ApplicationTimes = []string{TimeApplication, TimeHide}
	ProjectTimes     = []string{TimeProject, TimeApplication, TimeHide}
	FileTimes        = []string{TimeFile, TimeProject, TimeApplication, TimeHide}
)

func since(t time.Time) TimeResult {
	if t.IsZero() {
		return TimeResult{}
	}
	return TimeResult{Start: t, Show: true}
}

// TimeVariants builds the variants for ids.
func TimeVariants(ids ...string) []option.Variant[TimeResult] {
	out := make([]option.Variant[TimeResult], 0, len(ids))
	for _, id := range ids {
		v := option.Variant[TimeResult]{ID: id}
		switch id {
		case TimeApplication:
			v.Name = "Since application start"
			v.Compute = func(ctx *activity.Context) (TimeResult, error) {
				if ctx.Application == nil {
					return TimeResult{}, nil
				}
				return since(ctx.Application.StartedAt), nil
			}
		case TimeProject:
			v.Name = "Since project open"
			v.Compute = func(ctx *activity.Context) (TimeResult, error) {
				if ctx.Project == nil {
					return TimeResult{}, nil
				}
				return since(ctx.Project.OpenedAt), nil
			}
		case TimeFile:
			v.Name = "Since file open"
			v.Compute = func(ctx *activity.Context) (TimeResult, error) {
				if ctx.File == nil {
					return TimeResult{}, nil
				}
				return since(ctx.File.OpenedAt), nil
			}
		default:
			v.Name = "Hide"
			v.Compute = func(*activity.Context) (TimeResult, error) {
				return TimeResult{}, nil
			}
		}
		out = append(out, v)
	}
	return out
}
