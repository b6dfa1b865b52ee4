package ttable

import (
	"sync"

	"github.com/lgbarn/drawback-go/internal/chess"
)

// ThreadSafe wraps Table with mutex protection for concurrent access.
type ThreadSafe struct {
	table *Table
	mu    sync.RWMutex
}

// NewThreadSafe creates a new thread-safe table.
func NewThreadSafe(capacity int, evictFraction float64) *ThreadSafe {
	return &ThreadSafe{table: New(capacity, evictFraction)}
}

// Store records bounds for key.
func (t *ThreadSafe) Store(key uint64, depth, lower, upper int, best chess.Move) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.table.Store(key, depth, lower, upper, best)
}

// Lookup returns the entry for key when it was searched at least depth deep.
func (t *ThreadSafe) Lookup(key uint64, depth int) (Entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.table.Lookup(key, depth)
}

// Probe returns the entry for key at any depth.
func (t *ThreadSafe) Probe(key uint64) (Entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.table.Probe(key)
}

// Clear removes every entry.
func (t *ThreadSafe) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.table.Clear()
}

// Len returns the number of stored entries.
func (t *ThreadSafe) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.table.Len()
}

// Capacity returns the maximum number of entries.
func (t *ThreadSafe) Capacity() int {
	return t.table.Capacity()
}

// Stats returns a snapshot of the counters.
func (t *ThreadSafe) Stats() Stats {
	return t.table.Stats()
}
