// Package vcs answers version-control questions about open files.
package vcs

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// CommandRunner abstracts git execution for testability.
type CommandRunner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// OSCommandRunner executes real git commands via os/exec.
type OSCommandRunner struct{}

func (r OSCommandRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("git %v failed (exit %d): %s", args, exitErr.ExitCode(), strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git %v failed: %w", args, err)
	}
	return string(out), nil
}

// FakeCommandRunner is a test double that returns preset output.
type FakeCommandRunner struct {
	Outputs map[string]string
	Errors  map[string]error

	mu    sync.Mutex
	Calls int
}

func (r *FakeCommandRunner) key(dir string, args ...string) string {
	return fmt.Sprintf("%s:%v", dir, args)
}

func (r *FakeCommandRunner) Run(_ context.Context, dir string, args ...string) (string, error) {
	r.mu.Lock()
	r.Calls++
	r.mu.Unlock()

	key := r.key(dir, args...)
	if err, ok := r.Errors[key]; ok {
		return "", err
	}
	if out, ok := r.Outputs[key]; ok {
		return out, nil
	}
	return "", fmt.Errorf("FakeCommandRunner: no output for key %q", key)
}

// DefaultCacheTTL is how long an ignore answer is reused.
const DefaultCacheTTL = 30 * time.Second

type cacheEntry struct {
	ignored bool
	at      time.Time
}

// Checker reports whether files are excluded by the repository's ignore
// rules. Answers are cached briefly since the same file is asked about on
// every render.
type Checker struct {
	runner CommandRunner
	ttl    time.Duration
	now    func() time.Time

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// NewChecker creates a Checker running git through runner.
func NewChecker(runner CommandRunner) *Checker {
	return &Checker{
		runner: runner,
		ttl:    DefaultCacheTTL,
		now:    time.Now,
		cache:  make(map[string]cacheEntry),
	}
}

// IsIgnored reports whether path is ignored in the repository at repoDir.
// Any git failure, including repoDir not being a repository, counts as
// not ignored.
func (c *Checker) IsIgnored(ctx context.Context, repoDir, path string) bool {
	rel := path
	if r, err := filepath.Rel(repoDir, path); err == nil && !strings.HasPrefix(r, "..") {
		rel = filepath.ToSlash(r)
	}
	key := repoDir + "\x00" + rel

	c.mu.Lock()
	if e, ok := c.cache[key]; ok && c.now().Sub(e.at) < c.ttl {
		c.mu.Unlock()
		return e.ignored
	}
	c.mu.Unlock()

	out, err := c.runner.Run(ctx, repoDir, "check-ignore", "--", rel)
	ignored := err == nil && strings.TrimSpace(out) != ""

	c.mu.Lock()
	now := c.now()
	for k, e := range c.cache {
		if now.Sub(e.at) >= c.ttl {
			delete(c.cache, k)
		}
	}
	c.cache[key] = cacheEntry{ignored: ignored, at: now}
	c.mu.Unlock()
	return ignored
}
