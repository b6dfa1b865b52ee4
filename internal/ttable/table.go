// Package ttable provides a bounded transposition table for the search.
package ttable

import (
	"sync/atomic"

	"github.com/lgbarn/drawback-go/internal/chess"
)

// Infinity bounds scores that have not been established.
const Infinity = 1 << 30

// Bound classifies what an entry's score bounds establish.
type Bound int

const (
	Exact Bound = iota
	LowerBound
	UpperBound
	NoBound
)

// String returns the bound name.
func (b Bound) String() string {
	switch b {
	case Exact:
		return "exact"
	case LowerBound:
		return "lower"
	case UpperBound:
		return "upper"
	}
	return "none"
}

// Entry is a stored search result for one position.
type Entry struct {
	Key   uint64
	Depth int
	Lower int
	Upper int
	Best  chess.Move
}

// Bound reports which of the entry's bounds are established.
func (e Entry) Bound() Bound {
	switch {
	case e.Lower == e.Upper:
		return Exact
	case e.Lower > -Infinity && e.Upper >= Infinity:
		return LowerBound
	case e.Upper < Infinity && e.Lower <= -Infinity:
		return UpperBound
	}
	return NoBound
}

// Cutoff returns a score usable for the [alpha, beta) window when the entry's
// bounds dominate it.
func (e Entry) Cutoff(alpha, beta int) (int, bool) {
	switch {
	case e.Lower >= beta:
		return e.Lower, true
	case e.Upper <= alpha:
		return e.Upper, true
	case e.Lower == e.Upper:
		return e.Lower, true
	}
	return 0, false
}

// Stats counts table activity.
type Stats struct {
	Stores    uint64
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Table maps position signatures to entries. It holds at most Capacity
// entries; inserting a new key into a full table first evicts a fixed
// fraction of entries in insertion order.
type Table struct {
	entries  map[uint64]*Entry
	order    []uint64
	capacity int
	fraction float64

	stores, hits, misses, evictions atomic.Uint64
}

// New creates a table. Capacity below one is raised to one; a fraction
// outside (0, 1] falls back to 0.1.
func New(capacity int, evictFraction float64) *Table {
	if capacity < 1 {
		capacity = 1
	}
	if evictFraction <= 0 || evictFraction > 1 {
		evictFraction = 0.1
	}
	return &Table{
		entries:  make(map[uint64]*Entry, capacity),
		order:    make([]uint64, 0, capacity),
		capacity: capacity,
		fraction: evictFraction,
	}
}

// Capacity returns the maximum number of entries.
func (t *Table) Capacity() int { return t.capacity }

// Len returns the number of entries currently stored.
func (t *Table) Len() int { return len(t.entries) }

// EvictionBatch returns how many entries one eviction pass removes.
func (t *Table) EvictionBatch() int {
	n := int(float64(t.capacity) * t.fraction)
	if n < 1 {
		n = 1
	}
	return n
}

// Store records bounds for key. An existing entry for key is replaced.
func (t *Table) Store(key uint64, depth, lower, upper int, best chess.Move) {
	t.stores.Add(1)
	if e, ok := t.entries[key]; ok {
		*e = Entry{Key: key, Depth: depth, Lower: lower, Upper: upper, Best: best}
		return
	}
	if len(t.entries) >= t.capacity {
		t.evict()
	}
	t.entries[key] = &Entry{Key: key, Depth: depth, Lower: lower, Upper: upper, Best: best}
	t.order = append(t.order, key)
}

// evict drops the oldest EvictionBatch entries.
func (t *Table) evict() {
	n := t.EvictionBatch()
	if n > len(t.order) {
		n = len(t.order)
	}
	for _, key := range t.order[:n] {
		delete(t.entries, key)
	}
	t.evictions.Add(uint64(n))
	// Copy down so the backing array does not grow without bound.
	t.order = append(t.order[:0], t.order[n:]...)
}

// Lookup returns the entry for key when it was searched at least depth deep.
func (t *Table) Lookup(key uint64, depth int) (Entry, bool) {
	e, ok := t.entries[key]
	if !ok || e.Depth < depth {
		t.misses.Add(1)
		return Entry{}, false
	}
	t.hits.Add(1)
	return *e, true
}

// Probe returns the entry for key at any depth, for move ordering hints.
func (t *Table) Probe(key uint64) (Entry, bool) {
	e, ok := t.entries[key]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Clear removes every entry and resets the counters.
func (t *Table) Clear() {
	t.entries = make(map[uint64]*Entry, t.capacity)
	t.order = t.order[:0]
	t.stores.Store(0)
	t.hits.Store(0)
	t.misses.Store(0)
	t.evictions.Store(0)
}

// Stats returns a snapshot of the counters.
func (t *Table) Stats() Stats {
	return Stats{
		Stores:    t.stores.Load(),
		Hits:      t.hits.Load(),
		Misses:    t.misses.Load(),
		Evictions: t.evictions.Load(),
	}
}
