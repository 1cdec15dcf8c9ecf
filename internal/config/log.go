package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// OpenLogger opens ~/.presence/logs/<name>.log for appending and returns a
// logger writing to it and to stderr. The caller closes the returned file.
func OpenLogger(name, prefix string) (*log.Logger, io.Closer, error) {
	if err := EnsureGlobalLogsDir(); err != nil {
		return nil, nil, fmt.Errorf("failed to ensure logs dir: %w", err)
	}

	logsDir, err := GlobalLogsDir()
	if err != nil {
		return nil, nil, err
	}

	path := filepath.Join(logsDir, name+".log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	w := io.MultiWriter(os.Stderr, f)
	return log.New(w, prefix, log.Ldate|log.Ltime|log.Lshortfile), f, nil
}
