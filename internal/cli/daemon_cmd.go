package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/presence/internal/config"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Manage the presence daemon",
	Long:  `Manage the presenced process that keeps the presence up to date.`,
}

var daemonStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status",
	RunE:  runStatus,
}

var daemonStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the daemon",
	RunE:  runDaemonStart,
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the daemon",
	Long: `Stop the daemon. Only a live presenced process matching daemon.yaml is
signalled; a record left behind by a crash is cleared instead.`,
	RunE: runDaemonStop,
}

func init() {
	daemonCmd.AddCommand(daemonStartCmd)
	daemonCmd.AddCommand(daemonStatusCmd)
	daemonCmd.AddCommand(daemonStopCmd)
}

func runDaemonStart(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	running, info, err := GetDaemonStatus()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}
	if running {
		fmt.Fprintf(out, "Daemon is already running (PID %d, %s).\n", info.PID, daemonAddr(info))
		return nil
	}

	fmt.Fprint(out, "Starting daemon...")
	if err := startDaemon(cmd.Context()); err != nil {
		fmt.Fprintln(out)
		return err
	}

	if _, info, err := GetDaemonStatus(); err == nil && info != nil {
		fmt.Fprintf(out, " started (PID %d, %s).\n", info.PID, daemonAddr(info))
		return nil
	}
	fmt.Fprintln(out, " started.")
	return nil
}

func runDaemonStop(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	info, err := config.LoadDaemonInfo()
	if err != nil {
		return fmt.Errorf("failed to read daemon info: %w", err)
	}
	proc, err := config.DaemonProcess(ctx, info)
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}
	if proc == nil {
		if info != nil {
			_ = config.RemoveDaemonInfo()
		}
		fmt.Fprintln(out, "Daemon is not running.")
		return nil
	}

	// SIGTERM lets the daemon clear the presence before exiting.
	if err := proc.TerminateWithContext(ctx); err != nil {
		return fmt.Errorf("failed to stop PID %d: %w", proc.Pid, err)
	}
	if err := waitForDaemon(ctx, false); err != nil {
		return fmt.Errorf("daemon did not stop: %w", err)
	}
	fmt.Fprintln(out, "Daemon stopped.")
	return nil
}
