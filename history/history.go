package history

import (
	"time"

	"go.uber.org/zap"
)

// Backend persists history entries.
type Backend interface {
	// Load returns the stored entries, oldest first. A missing store is
	// not an error.
	Load() ([]Entry, error)
	// Append adds one entry at the end.
	Append(e Entry) error
	// Rewrite replaces the stored entries.
	Rewrite(entries []Entry) error
	Close() error
}

// trimmer is implemented by backends whose Append already drops entries
// beyond the cap, so eviction needs no full rewrite.
type trimmer interface {
	Trims() bool
}

func backendTrims(b Backend) bool {
	t, ok := b.(trimmer)
	return ok && t.Trims()
}

// History is the in-memory conversion log backed by a ring buffer.
type History struct {
	ring    *Ring[Entry]
	backend Backend
	logger  *zap.Logger
	now     func() time.Time
}

// Option configures a History.
type Option func(*History)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(h *History) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithClock overrides the time source used to stamp entries.
func WithClock(now func() time.Time) Option {
	return func(h *History) {
		h.now = now
	}
}

// Open creates a history of the given capacity and loads prior entries
// from backend. A load failure is logged and treated as an empty history.
// backend may be nil for an in-memory history.
func Open(backend Backend, maxEntries int, opts ...Option) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	h := &History{
		ring:    NewRing[Entry](maxEntries),
		backend: backend,
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}

	if backend == nil {
		return h
	}
	entries, err := backend.Load()
	if err != nil {
		h.logger.Debug("no prior history", zap.Error(err))
		return h
	}
	// Keep the newest entries when the store holds more than the cap.
	if extra := len(entries) - maxEntries; extra > 0 {
		entries = entries[extra:]
	}
	for _, e := range entries {
		h.ring.Push(e)
	}
	h.logger.Debug("history loaded", zap.Int("entries", h.ring.Len()))
	return h
}

// Record stamps and adds a conversion. See Add.
func (h *History) Record(from, to string, value, result float64) (Entry, error) {
	e := Entry{From: from, To: to, Value: value, Result: result, Time: h.now().Truncate(time.Second)}
	return e, h.Add(e)
}

// Add appends e, evicting the oldest entry when full, and persists the
// change. The in-memory log is updated even when persisting fails; the
// error then wraps ErrStorageUnavailable.
func (h *History) Add(e Entry) error {
	evicted := h.ring.Push(e)
	if h.backend == nil {
		return nil
	}
	var err error
	if evicted && !backendTrims(h.backend) {
		err = h.backend.Rewrite(h.ring.Items())
	} else {
		err = h.backend.Append(e)
	}
	if err != nil {
		h.logger.Warn("history not saved", zap.Error(err))
	}
	return err
}

// Entries returns every entry, oldest first.
func (h *History) Entries() []Entry {
	return h.ring.Items()
}

// Last returns up to n of the newest entries, oldest first. n <= 0 means all.
func (h *History) Last(n int) []Entry {
	items := h.ring.Items()
	if n > 0 && n < len(items) {
		items = items[len(items)-n:]
	}
	return items
}

// Since returns the entries recorded at or after t, oldest first.
func (h *History) Since(t time.Time) []Entry {
	var out []Entry
	for _, e := range h.ring.Items() {
		if !e.Time.Before(t) {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of entries.
func (h *History) Len() int {
	return h.ring.Len()
}

// Cap returns the capacity.
func (h *History) Cap() int {
	return h.ring.Cap()
}

// Clear removes every entry and persists the empty log.
func (h *History) Clear() error {
	h.ring.Clear()
	if h.backend == nil {
		return nil
	}
	return h.backend.Rewrite(nil)
}

// Close releases the backend.
func (h *History) Close() error {
	if h.backend == nil {
		return nil
	}
	return h.backend.Close()
}
