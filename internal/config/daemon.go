package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/watchfire-io/presence/internal/models"
)

// DaemonProcessName is the executable name presenced runs under.
const DaemonProcessName = "presenced"

// daemonName is the process name a recorded PID must carry to count as the
// daemon. Tests point it at the test binary.
var daemonName = DaemonProcessName

// LoadDaemonInfo reads ~/.presence/daemon.yaml. A missing file yields nil.
func LoadDaemonInfo() (*models.DaemonInfo, error) {
	path, err := GlobalDaemonFile()
	if err != nil {
		return nil, err
	}
	if !FileExists(path) {
		return nil, nil
	}

	var info models.DaemonInfo
	if err := LoadYAML(path, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SaveDaemonInfo publishes the daemon's address and PID.
func SaveDaemonInfo(info *models.DaemonInfo) error {
	if err := EnsureGlobalDir(); err != nil {
		return err
	}
	path, err := GlobalDaemonFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, info)
}

// RemoveDaemonInfo deletes daemon.yaml if present.
func RemoveDaemonInfo() error {
	path, err := GlobalDaemonFile()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// DaemonProcess returns the process recorded in info if it is alive and
// named presenced. A dead PID, or one reused by another program, yields nil.
func DaemonProcess(ctx context.Context, info *models.DaemonInfo) (*process.Process, error) {
	if info == nil || info.PID <= 0 {
		return nil, nil
	}

	p, err := process.NewProcessWithContext(ctx, int32(info.PID))
	if errors.Is(err, process.ErrorProcessNotRunning) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up PID %d: %w", info.PID, err)
	}

	name, err := p.NameWithContext(ctx)
	if err != nil {
		if alive, _ := p.IsRunningWithContext(ctx); !alive {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read name of PID %d: %w", info.PID, err)
	}
	if strings.TrimSuffix(name, ".exe") != daemonName {
		return nil, nil
	}
	return p, nil
}

// IsDaemonRunning reports whether daemon.yaml names a live presenced. A
// stale file is removed; the info it held is still returned.
func IsDaemonRunning() (bool, *models.DaemonInfo, error) {
	info, err := LoadDaemonInfo()
	if err != nil || info == nil {
		return false, nil, err
	}

	p, err := DaemonProcess(context.Background(), info)
	if err != nil {
		return false, info, err
	}
	if p == nil {
		_ = RemoveDaemonInfo()
		return false, info, nil
	}
	return true, info, nil
}
