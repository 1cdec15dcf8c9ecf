package diagnose

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// ProcessInfo is the subset of process details the checks inspect.
type ProcessInfo struct {
	PID      int32
	Name     string
	Exe      string
	Cmdline  string
	Username string
}

// Elevated reports whether the process runs as root or an administrator.
func (p ProcessInfo) Elevated() bool {
	u := strings.ToLower(p.Username)
	return u == "root" || strings.HasSuffix(u, `\administrator`) || u == `nt authority\system`
}

// ProcessLister enumerates running processes.
type ProcessLister interface {
	Processes(ctx context.Context) ([]ProcessInfo, error)
}

// SystemProcessLister lists processes through gopsutil.
type SystemProcessLister struct{}

// Processes implements ProcessLister. Fields that cannot be read (for
// example because of permissions) are left empty.
func (SystemProcessLister) Processes(ctx context.Context) ([]ProcessInfo, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}
	out := make([]ProcessInfo, 0, len(procs))
	for _, p := range procs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info := ProcessInfo{PID: p.Pid}
		info.Name, _ = p.NameWithContext(ctx)
		info.Exe, _ = p.ExeWithContext(ctx)
		info.Cmdline, _ = p.CmdlineWithContext(ctx)
		info.Username, _ = p.UsernameWithContext(ctx)
		out = append(out, info)
	}
	return out, nil
}
