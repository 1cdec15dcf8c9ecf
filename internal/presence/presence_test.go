package presence

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/watchfire-io/presence/internal/source"
)

func ptr[T any](v T) *T { return &v }

func TestEqual(t *testing.T) {
	at := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	base := Presence{
		Details:        "presence",
		State:          "Editing main.go",
		LargeImage:     &Image{Asset: source.BundledAsset("classic/go.png"), Text: "Go"},
		StartTimestamp: ptr(at),
		ShowElapsed:    true,
	}

	tests := []struct {
		name  string
		other Presence
		want  bool
	}{
		{"identical", base, true},
		{"same instant other zone", func() Presence {
			p := base
			p.StartTimestamp = ptr(at.In(time.FixedZone("CET", 3600)))
			return p
		}(), true},
		{"different details", func() Presence { p := base; p.Details = "x"; return p }(), false},
		{"different asset kind", func() Presence {
			p := base
			p.LargeImage = &Image{Asset: source.WebAsset("classic/go.png"), Text: "Go"}
			return p
		}(), false},
		{"missing image", func() Presence { p := base; p.LargeImage = nil; return p }(), false},
		{"missing timestamp", func() Presence { p := base; p.StartTimestamp = nil; return p }(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Equal(tt.other); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}

	if !(Presence{}).IsEmpty() || base.IsEmpty() {
		t.Error("IsEmpty() mismatch")
	}
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewWriterSink(&buf)
	at := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	first := NewUpdate(&Presence{
		Details:    "Idling",
		LargeImage: &Image{Asset: source.WebAsset("https://img.example/app.png")},
		PartyID:    "1.2.0",
	}, at)
	second := NewUpdate(nil, at.Add(time.Second))
	for _, u := range []Update{first, second} {
		if err := sink.Send(context.Background(), u); err != nil {
			t.Fatalf("Send() error = %v", err)
		}
	}
	if first.Nonce == second.Nonce || first.Nonce == uuid.Nil {
		t.Error("updates should carry distinct nonces")
	}

	sc := bufio.NewScanner(&buf)
	var lines []map[string]any
	for sc.Scan() {
		var m map[string]any
		if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
			t.Fatalf("line %q is not JSON: %v", sc.Text(), err)
		}
		lines = append(lines, m)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	p := lines[0]["presence"].(map[string]any)
	img := p["large_image"].(map[string]any)["asset"].(map[string]any)
	if img["kind"] != "web" || img["locator"] != "https://img.example/app.png" {
		t.Errorf("asset = %v", img)
	}
	if lines[1]["presence"] != nil {
		t.Errorf("clear update presence = %v, want null", lines[1]["presence"])
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sink.Send(ctx, first); err == nil {
		t.Error("Send() on a cancelled context error = nil")
	}
}
