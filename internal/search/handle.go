package search

import (
	"context"
	"sync/atomic"
)

// Status is the state of a search.
type Status int32

const (
	Idle Status = iota
	Searching
	Complete
	Cancelled
	TimedOut
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Searching:
		return "searching"
	case Complete:
		return "complete"
	case Cancelled:
		return "cancelled"
	case TimedOut:
		return "timed out"
	}
	return "idle"
}

// Handle tracks one background search started with Engine.Start.
type Handle struct {
	status atomic.Int32
	depth  atomic.Int32
	nodes  atomic.Uint64

	cancel context.CancelFunc
	done   chan struct{}
	result Result // written once before done is closed
}

// Poll returns the current status without blocking.
func (h *Handle) Poll() Status {
	if h == nil {
		return Idle
	}
	return Status(h.status.Load())
}

// Depth returns the depth currently being searched.
func (h *Handle) Depth() int { return int(h.depth.Load()) }

// Nodes returns the number of positions visited so far.
func (h *Handle) Nodes() uint64 { return h.nodes.Load() }

// Done is closed when the search has stopped.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Wait blocks until the search stops and returns its result.
func (h *Handle) Wait() Result {
	<-h.done
	return h.result
}

// Result returns the result once the search has stopped.
func (h *Handle) Result() (Result, bool) {
	select {
	case <-h.done:
		return h.result, true
	default:
		return Result{}, false
	}
}

// Cancel asks the search to stop. The result holds the best move of the
// last completed depth.
func (h *Handle) Cancel() { h.cancel() }
