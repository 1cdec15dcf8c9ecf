package models

import (
	"net"
	"strconv"
	"time"
)

// DaemonInfo represents the daemon connection information.
// This corresponds to ~/.presence/daemon.yaml.
type DaemonInfo struct {
	Version      int       `yaml:"version"`
	BuildVersion string    `yaml:"build_version"`
	Host         string    `yaml:"host"`
	Port         int       `yaml:"port"`
	PID          int       `yaml:"pid"`
	StartedAt    time.Time `yaml:"started_at"`
}

// NewDaemonInfo creates a new daemon info with current values.
func NewDaemonInfo(buildVersion, host string, port, pid int) *DaemonInfo {
	return &DaemonInfo{
		Version:      1,
		BuildVersion: buildVersion,
		Host:         host,
		Port:         port,
		PID:          pid,
		StartedAt:    time.Now().UTC(),
	}
}

// Addr returns the host:port the daemon listens on.
func (d *DaemonInfo) Addr() string {
	return net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
}
