package vcs

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestIsIgnored(t *testing.T) {
	runner := &FakeCommandRunner{
		Outputs: map[string]string{
			"/repo:[check-ignore -- build/out.js]": "build/out.js\n",
			"/repo:[check-ignore -- empty.go]":     "",
		},
		Errors: map[string]error{
			"/repo:[check-ignore -- main.go]": errors.New("git [check-ignore] failed (exit 1)"),
		},
	}
	c := NewChecker(runner)
	ctx := context.Background()

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"ignored", "/repo/build/out.js", true},
		{"tracked", "/repo/main.go", false},
		{"no output", "/repo/empty.go", false},
		{"not a repository", "/elsewhere/x.go", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.IsIgnored(ctx, "/repo", tt.path); got != tt.want {
				t.Errorf("IsIgnored(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsIgnoredCaches(t *testing.T) {
	runner := &FakeCommandRunner{
		Outputs: map[string]string{"/repo:[check-ignore -- a.log]": "a.log\n"},
	}
	c := NewChecker(runner)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if !c.IsIgnored(context.Background(), "/repo", "/repo/a.log") {
			t.Fatal("IsIgnored() = false, want true")
		}
	}
	if runner.Calls != 1 {
		t.Errorf("git ran %d times within the TTL, want 1", runner.Calls)
	}

	now = now.Add(DefaultCacheTTL)
	c.IsIgnored(context.Background(), "/repo", "/repo/a.log")
	if runner.Calls != 2 {
		t.Errorf("git ran %d times after the TTL, want 2", runner.Calls)
	}
}

func TestIsIgnoredDropsExpiredEntries(t *testing.T) {
	runner := &FakeCommandRunner{Outputs: map[string]string{}}
	c := NewChecker(runner)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	for _, f := range []string{"a.go", "b.go", "c.go"} {
		c.IsIgnored(context.Background(), "/repo", "/repo/"+f)
	}
	if n := len(c.cache); n != 3 {
		t.Fatalf("cache size = %d, want 3", n)
	}

	now = now.Add(DefaultCacheTTL)
	c.IsIgnored(context.Background(), "/repo", "/repo/d.go")
	if n := len(c.cache); n != 1 {
		t.Errorf("cache size after the TTL = %d, want 1", n)
	}
}
