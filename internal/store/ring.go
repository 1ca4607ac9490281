package store

import "sync"

// Ring is a capacity-bounded FIFO log. Appending past capacity evicts the
// oldest entry. Construct with NewRing; the zero value has no capacity.
type Ring[T any] struct {
	mu      sync.Mutex
	entries []T
	max     int
}

func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{max: capacity}
}

func (r *Ring[T]) Append(e T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	if len(r.entries) > r.max {
		r.entries = r.entries[len(r.entries)-r.max:]
	}
}

// Entries returns a snapshot in insertion order, oldest first.
func (r *Ring[T]) Entries() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Ring[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Ring[T]) Cap() int {
	return r.max
}
