package presence

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Update is one message handed to a Sink. A nil Presence clears the
// consumer's status.
type Update struct {
	Nonce    uuid.UUID `json:"nonce"`
	At       time.Time `json:"at"`
	Presence *Presence `json:"presence"`
}

// NewUpdate creates an Update stamped with a fresh nonce.
func NewUpdate(p *Presence, at time.Time) Update {
	return Update{Nonce: uuid.New(), At: at, Presence: p}
}

// Sink receives rendered presences. Establishing and keeping the transport
// alive is the sink's concern.
type Sink interface {
	Send(ctx context.Context, u Update) error
}

// WriterSink writes each update as one JSON line.
type WriterSink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewWriterSink creates a sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{enc: json.NewEncoder(w)}
}

// Send implements Sink.
func (s *WriterSink) Send(ctx context.Context, u Update) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enc.Encode(u); err != nil {
		return fmt.Errorf("failed to write presence update: %w", err)
	}
	return nil
}
