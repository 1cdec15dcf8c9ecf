package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/watchfire-io/presence/internal/config"
)

// daemonBinary is the name of the daemon executable.
const daemonBinary = config.DaemonProcessName

// daemonWait bounds how long start and stop wait for the daemon.
const daemonWait = 5 * time.Second

// startDaemon launches presenced detached and waits until it has published
// daemon.yaml.
func startDaemon(ctx context.Context) error {
	daemonPath, err := findDaemonBinary()
	if err != nil {
		return err
	}

	proc := exec.Command(daemonPath)
	if err := proc.Start(); err != nil {
		return fmt.Errorf("failed to start daemon: %w", err)
	}
	if err := proc.Process.Release(); err != nil {
		return fmt.Errorf("failed to detach daemon: %w", err)
	}

	if err := waitForDaemon(ctx, true); err != nil {
		return fmt.Errorf("daemon failed to start: %w", err)
	}
	return nil
}

// waitForDaemon polls daemon.yaml until the daemon's liveness equals want
// or daemonWait elapses.
func waitForDaemon(ctx context.Context, want bool) error {
	ctx, cancel := context.WithTimeout(ctx, daemonWait)
	defer cancel()

	b := backoff.WithContext(backoff.NewConstantBackOff(100*time.Millisecond), ctx)
	return backoff.Retry(func() error {
		running, _, err := config.IsDaemonRunning()
		if err != nil {
			return err
		}
		if running != want {
			return fmt.Errorf("daemon running = %v", running)
		}
		return nil
	}, b)
}

// findDaemonBinary looks in PATH, next to the current executable and in
// ./build, in that order.
func findDaemonBinary() (string, error) {
	if path, err := exec.LookPath(daemonBinary); err == nil {
		return path, nil
	}

	candidates := []string{filepath.Join("build", daemonBinary)}
	if self, err := os.Executable(); err == nil {
		candidates = append([]string{filepath.Join(filepath.Dir(self), daemonBinary)}, candidates...)
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", fmt.Errorf("%s not found. Install or build it first", daemonBinary)
}

// GetDaemonStatus returns the running daemon's info, or false when no live
// presenced matches daemon.yaml.
func GetDaemonStatus() (bool, *DaemonStatusInfo, error) {
	running, info, err := config.IsDaemonRunning()
	if err != nil || !running {
		return false, nil, err
	}
	return true, &DaemonStatusInfo{
		Version:   info.BuildVersion,
		Host:      info.Host,
		Port:      info.Port,
		PID:       info.PID,
		StartedAt: info.StartedAt,
	}, nil
}

// DaemonStatusInfo contains daemon status information.
type DaemonStatusInfo struct {
	Version   string    `json:"version"`
	Host      string    `json:"host"`
	Port      int       `json:"port"`
	PID       int       `json:"pid"`
	StartedAt time.Time `json:"started_at"`
}

func daemonAddr(info *DaemonStatusInfo) string {
	return fmt.Sprintf("%s:%d", info.Host, info.Port)
}
