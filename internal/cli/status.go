package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the daemon is running and ready",
	RunE:  runStatus,
}

type statusView struct {
	Running bool              `json:"running"`
	Daemon  *DaemonStatusInfo `json:"daemon,omitempty"`
	Health  string            `json:"health,omitempty"`
	Error   string            `json:"error,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	running, info, err := GetDaemonStatus()
	if err != nil {
		return err
	}

	view := statusView{Running: running, Daemon: info}
	if running {
		status, err := checkHealth(cmd.Context())
		view.Health = status.String()
		if err != nil {
			view.Error = err.Error()
		}
	}

	out := cmd.OutOrStdout()
	if jsonOutput(cmd) {
		return printJSON(out, view)
	}
	printStatus(out, view)
	return nil
}

func printStatus(out io.Writer, v statusView) {
	if !v.Running || v.Daemon == nil {
		fmt.Fprintf(out, "%s\n", styleWarning.Render("Daemon is not running."))
		fmt.Fprintf(out, "%s %s\n", styleHint.Render("Start it with"), styleCommand.Render("presence daemon start"))
		return
	}

	fmt.Fprintf(out, "%s %s\n\n", styleBrand.Render("presenced"), styleVersion.Render(v.Daemon.Version))
	printLine(out, "Address", fmt.Sprintf("%s:%d", v.Daemon.Host, v.Daemon.Port))
	printLine(out, "PID", fmt.Sprint(v.Daemon.PID))
	printLine(out, "Started", humanize.Time(v.Daemon.StartedAt))

	health := styleError.Render(v.Health)
	if v.Health == healthpb.HealthCheckResponse_SERVING.String() {
		health = styleSuccess.Render(v.Health)
	}
	fmt.Fprintf(out, "  %s %s\n", styleLabel.Render(fmt.Sprintf("%-8s", "Health")), health)
	printLine(out, "Error", v.Error)
}
