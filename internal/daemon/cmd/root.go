// Package cmd implements the presenced command line.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/watchfire-io/presence/internal/buildinfo"
	"github.com/watchfire-io/presence/internal/config"
	"github.com/watchfire-io/presence/internal/daemon"
	"github.com/watchfire-io/presence/internal/daemon/server"
	"github.com/watchfire-io/presence/internal/models"
	"github.com/watchfire-io/presence/internal/presence"
)

var (
	flagPort     int
	flagOutput   string
	flagInterval time.Duration
	flagIcons    string
)

var rootCmd = &cobra.Command{
	Use:   "presenced",
	Short: "Keep the editor presence up to date",
	Long: `presenced watches the editor's activity report, the settings file and the
language and theme definitions, and publishes a presence update as JSON
lines whenever the rendered presence changes.`,
	SilenceUsage: true,
	RunE:         run,
}

// Execute runs the daemon command line.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().IntVar(&flagPort, "port", 0, "Port to listen on (0 for dynamic allocation)")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "-", "File to append presence updates to (- for stdout)")
	rootCmd.Flags().DurationVar(&flagInterval, "interval", daemon.DefaultInterval, "Re-render interval without file changes")
	rootCmd.Flags().StringVar(&flagIcons, "icons", "", "Directory holding languages/ and themes/ (defaults to ~/.presence/icons, then the bundled set)")
}

func run(cmd *cobra.Command, args []string) error {
	// Ensure global directory exists
	if err := config.EnsureGlobalDir(); err != nil {
		return fmt.Errorf("failed to create global directory: %w", err)
	}

	logger, logFile, err := config.OpenLogger("presenced", "[presenced] ")
	if err != nil {
		return err
	}
	defer logFile.Close()

	// Check if daemon is already running
	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}
	if running {
		return fmt.Errorf("daemon already running on port %d (PID %d)", info.Port, info.PID)
	}

	cfg, err := daemon.DefaultConfig()
	if err != nil {
		return err
	}
	cfg.Interval = flagInterval
	if flagIcons != "" {
		cfg.DefinitionsRoot = flagIcons
	}

	out, err := openOutput(flagOutput)
	if err != nil {
		return err
	}
	defer out.Close()

	srv, err := server.New("localhost", flagPort)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	d, err := daemon.New(cfg, presence.NewWriterSink(out), daemon.WithLogger(logger), daemon.WithHealth(srv))
	if err != nil {
		srv.Stop()
		return err
	}

	daemonInfo := models.NewDaemonInfo(buildinfo.Version, "localhost", srv.Port(), os.Getpid())
	if err := config.SaveDaemonInfo(daemonInfo); err != nil {
		srv.Stop()
		return fmt.Errorf("failed to write daemon info: %w", err)
	}
	defer func() {
		if err := config.RemoveDaemonInfo(); err != nil {
			logger.Printf("Failed to remove daemon info: %v", err)
		}
	}()

	logger.Printf("Daemon started on port %d (PID %d)", srv.Port(), os.Getpid())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve()
	}()

	runCh := make(chan error, 1)
	go func() {
		runCh <- d.Run(ctx)
	}()

	select {
	case <-ctx.Done():
		logger.Println("Received signal, shutting down...")
		err = <-runCh
	case err = <-errCh:
		logger.Printf("Server error: %v", err)
		stop()
		<-runCh
	case err = <-runCh:
		if err != nil {
			logger.Printf("Renderer error: %v", err)
		}
	}

	srv.Stop()
	logger.Println("Daemon stopped")
	return err
}

// openOutput opens where presence updates are written.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open output: %w", err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
