package history

// Ring is a fixed-capacity circular buffer. Pushing onto a full ring
// overwrites the oldest element.
type Ring[T any] struct {
	buf   []T
	start int // index of the oldest element
	n     int
}

// NewRing returns an empty ring. A capacity below one is treated as one.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{buf: make([]T, capacity)}
}

// Push appends v and reports whether the oldest element was evicted.
func (r *Ring[T]) Push(v T) bool {
	if r.n < len(r.buf) {
		r.buf[(r.start+r.n)%len(r.buf)] = v
		r.n++
		return false
	}
	r.buf[r.start] = v
	r.start = (r.start + 1) % len(r.buf)
	return true
}

// Items returns the elements oldest first.
func (r *Ring[T]) Items() []T {
	out := make([]T, r.n)
	for i := range r.n {
		out[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	return out
}

// Len returns the number of stored elements.
func (r *Ring[T]) Len() int { return r.n }

// Cap returns the capacity.
func (r *Ring[T]) Cap() int { return len(r.buf) }

// Clear removes every element.
func (r *Ring[T]) Clear() {
	var zero T
	for i := range r.buf {
		r.buf[i] = zero
	}
	r.start, r.n = 0, 0
}
