// Package presence defines the rendered status card and the sinks that
// receive it.
package presence

import (
	"time"

	"github.com/watchfire-io/presence/internal/source"
)

// Image is a presence image with an optional caption.
type Image struct {
	Asset source.Asset `json:"asset"`
	Text  string       `json:"text,omitempty"`
}

// Presence is one rendered status card.
type Presence struct {
	Details        string     `json:"details,omitempty"`
	State          string     `json:"state,omitempty"`
	LargeImage     *Image     `json:"large_image,omitempty"`
	SmallImage     *Image     `json:"small_image,omitempty"`
	StartTimestamp *time.Time `json:"start_timestamp,omitempty"`
	// ShowElapsed reports whether the consumer should display the time
	// elapsed since StartTimestamp.
	ShowElapsed bool   `json:"show_elapsed,omitempty"`
	PartyID     string `json:"party_id,omitempty"`
}

// IsEmpty reports whether p carries nothing to display.
func (p Presence) IsEmpty() bool {
	return p.Equal(Presence{})
}

// Equal reports whether p and o render identically.
func (p Presence) Equal(o Presence) bool {
	if p.Details != o.Details || p.State != o.State || p.ShowElapsed != o.ShowElapsed || p.PartyID != o.PartyID {
		return false
	}
	if !imageEqual(p.LargeImage, o.LargeImage) || !imageEqual(p.SmallImage, o.SmallImage) {
		return false
	}
	switch {
	case p.StartTimestamp == nil || o.StartTimestamp == nil:
		return p.StartTimestamp == o.StartTimestamp
	default:
		return p.StartTimestamp.Equal(*o.StartTimestamp)
	}
}

func imageEqual(a, b *Image) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Asset.Equal(b.Asset) && a.Text == b.Text
}
