package world

import (
	"sync"
)

// Metrics tracks counters of the chunk pipeline for observability. A nil
// *Metrics discards all updates.
type Metrics struct {
	mu sync.Mutex
	s  Stats
}

// Stats is a snapshot of the counters and gauges of a World.
type Stats struct {
	// Tick is the number of ticks performed.
	Tick int64
	// Loaded is the number of chunk entities and Resident the number of
	// chunks with blocks in memory.
	Loaded, Resident int
	// PendingGeneration and PendingMeshes are the numbers of tasks queued or
	// running.
	PendingGeneration, PendingMeshes int

	Generated, Restored, Meshed, Destroyed, Saved uint64
	// Skipped counts mesh tasks not queued because the blocks of the chunk
	// and its border did not change since the last mesh.
	Skipped uint64
	// Stale counts task results discarded because their chunk was destroyed
	// or re-queued before they completed.
	Stale uint64
	// Panics counts tasks that panicked.
	Panics uint64
	// Quads is the number of quads of all meshes currently alive.
	Quads int
}

// NewMetrics creates an empty metrics registry.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// update calls f with the counters locked.
func (m *Metrics) update(f func(s *Stats)) {
	if m == nil {
		return
	}
	m.mu.Lock()
	f(&m.s)
	m.mu.Unlock()
}

// Snapshot returns a copy of the current counters.
func (m *Metrics) Snapshot() Stats {
	if m == nil {
		return Stats{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s
}
