// Package settings exposes the presence configuration as option trees.
package settings

import (
	"sync/atomic"

	"github.com/watchfire-io/presence/internal/config"
	"github.com/watchfire-io/presence/internal/models"
	"github.com/watchfire-io/presence/internal/option"
)

// Holder owns the current settings. Stored settings are what was last
// loaded or saved; pending settings are unsaved edits used for previews.
type Holder struct {
	stored  atomic.Pointer[models.Settings]
	pending atomic.Pointer[models.Settings]
}

// NewHolder creates a Holder with s as the stored settings.
func NewHolder(s *models.Settings) *Holder {
	if s == nil {
		s = models.NewSettings()
	}
	h := &Holder{}
	h.stored.Store(s)
	return h
}

// Stored returns the saved settings.
func (h *Holder) Stored() *models.Settings {
	return h.stored.Load()
}

// Current returns the pending settings if any, else the stored ones.
func (h *Holder) Current() *models.Settings {
	if p := h.pending.Load(); p != nil {
		return p
	}
	return h.stored.Load()
}

// Store replaces the stored settings and drops pending edits.
func (h *Holder) Store(s *models.Settings) {
	h.stored.Store(s)
	h.pending.Store(nil)
}

// Preview sets unsaved edits. Passing nil discards them.
func (h *Holder) Preview(s *models.Settings) {
	h.pending.Store(s)
}

// Reload replaces the stored settings with the contents of path.
func (h *Holder) Reload(path string) error {
	s, err := config.LoadSettingsFile(path)
	if err != nil {
		return err
	}
	h.Store(s)
	return nil
}

// field exposes one settings field as an option.Value.
func field[T any](h *Holder, get func(*models.Settings) T) option.Value[T] {
	return option.FuncValue[T]{
		GetFn:    func() T { return get(h.Current()) },
		StoredFn: func() T { return get(h.Stored()) },
	}
}
