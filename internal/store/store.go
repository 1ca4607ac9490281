// Package store holds the in-process recording table and the bounded
// event logs. All state lives for the process lifetime only; nothing is
// persisted across restarts.
package store

import (
	"sync"
	"time"
)

// ContentType is the media type of every stored recording. The capture UI
// always produces WebM.
const ContentType = "video/webm"

// Recording is one captured clip held in process memory. Data is never
// mutated after insertion.
type Recording struct {
	ID          string
	Filename    string
	Data        []byte
	Duration    string // client-supplied display string, not validated
	CreatedAt   time.Time
	SizeBytes   int64
	ContentType string
}

// Store maps an opaque handle to a recording. Put inserts unconditionally;
// an existing handle is silently overwritten. Get reports presence via the
// second return value; a miss is not an error at this layer. There is no
// delete and no list.
type Store interface {
	Put(rec Recording)
	Get(id string) (Recording, bool)
	Len() int
}

// Memory is the default Store: an unbounded map living for the process
// lifetime, no expiry. Handlers run concurrently, so access is guarded by
// an RWMutex.
type Memory struct {
	mu   sync.RWMutex
	recs map[string]Recording
}

func NewMemory() *Memory {
	return &Memory{recs: make(map[string]Recording)}
}

func (m *Memory) Put(rec Recording) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[rec.ID] = rec
}

func (m *Memory) Get(id string) (Recording, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.recs[id]
	return rec, ok
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.recs)
}
