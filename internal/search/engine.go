// Package search finds moves with an iterative deepening alpha-beta search
// over drawback positions.
package search

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/lgbarn/drawback-go/internal/book"
	"github.com/lgbarn/drawback-go/internal/chess"
	"github.com/lgbarn/drawback-go/internal/config"
	"github.com/lgbarn/drawback-go/internal/engine"
	"github.com/lgbarn/drawback-go/internal/eval"
	"github.com/lgbarn/drawback-go/internal/ttable"
)

// Result is the outcome of one top-level search.
type Result struct {
	Move     chess.Move // Best move of the last completed depth
	Score    int        // Score of Move from the mover's point of view
	Nodes    uint64     // Positions visited
	Depth    int        // Last completed depth; 0 for an immediate king capture
	Status   Status     // Complete, Cancelled or TimedOut
	Degraded bool       // Move was picked at random after the search found none
}

// Engine runs searches for one caller. The transposition table and opening
// book are shared; killers and history belong to each search. At most one
// search runs at a time.
type Engine struct {
	cfg    config.SearchConfig
	ev     *eval.Evaluator
	book   *book.Book
	tt     *ttable.ThreadSafe
	logger zerolog.Logger

	// progress is how often a running search logs its node rate.
	progress time.Duration

	mu      sync.Mutex
	current *Handle
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default is the global zerolog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithProgressInterval sets how often a running search logs its node rate
// at debug level. Zero disables progress logging.
func WithProgressInterval(d time.Duration) Option {
	return func(e *Engine) {
		e.progress = d
	}
}

// New creates an engine. A nil book disables book ordering and bias; a nil
// table gets a private one of the default size.
func New(cfg config.SearchConfig, ev *eval.Evaluator, bk *book.Book, tt *ttable.ThreadSafe, opts ...Option) *Engine {
	if tt == nil {
		tc := config.NewTableConfig()
		tt = ttable.NewThreadSafe(tc.Capacity, tc.EvictFraction)
	}
	e := &Engine{
		cfg:      cfg,
		ev:       ev,
		book:     bk,
		tt:       tt,
		logger:   log.Logger,
		progress: time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Table returns the engine's transposition table.
func (e *Engine) Table() *ttable.ThreadSafe { return e.tt }

// Search runs a search to completion. A maxDepth or budget of zero selects
// the configured default. b is copied and never modified.
func (e *Engine) Search(ctx context.Context, b *engine.Board, maxDepth int, budget time.Duration) Result {
	return e.Start(ctx, b, maxDepth, budget).Wait()
}

// Start begins a search in the background and returns its handle. Any
// search still running on e is cancelled and waited for first. b is copied
// before Start returns.
func (e *Engine) Start(ctx context.Context, b *engine.Board, maxDepth int, budget time.Duration) *Handle {
	e.mu.Lock()
	defer e.mu.Unlock()
	if prev := e.current; prev != nil {
		prev.Cancel()
		prev.Wait()
	}

	if maxDepth <= 0 {
		maxDepth = e.cfg.MaxDepth
	}
	if limit := e.cfg.MaxPly - e.cfg.QuiescenceDepth; maxDepth > limit {
		maxDepth = limit
	}
	if budget <= 0 {
		budget = e.cfg.TimeBudget
	}

	board := b.Copy()
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{cancel: cancel, done: make(chan struct{})}
	h.status.Store(int32(Searching))
	e.current = h

	go func() {
		defer cancel()
		defer close(h.done)

		timed, stop := context.WithTimeout(ctx, budget)
		defer stop()
		s := e.newSearcher(timed, board, h)

		g := errgroup.Group{}
		finished := make(chan struct{})
		if e.progress > 0 {
			g.Go(func() error {
				ticker := time.NewTicker(e.progress)
				defer ticker.Stop()
				var last uint64
				for {
					select {
					case <-finished:
						return nil
					case <-ticker.C:
						nodes := h.Nodes()
						e.logger.Debug().
							Uint64("nps", nodesPerSecond(nodes-last, e.progress)).
							Uint64("nodes", nodes).
							Msg("search-progress")
						last = nodes
					}
				}
			})
		}
		g.Go(func() error {
			defer close(finished)
			h.result = s.run(maxDepth)
			return nil
		})
		_ = g.Wait()
		h.status.Store(int32(h.result.Status))
	}()
	return h
}

// nodesPerSecond converts the nodes visited over interval into a rate.
func nodesPerSecond(nodes uint64, interval time.Duration) uint64 {
	if interval <= 0 {
		return 0
	}
	return uint64(float64(nodes) / interval.Seconds())
}

func (e *Engine) newSearcher(ctx context.Context, board *engine.Board, h *Handle) *searcher {
	e.tt.Clear()
	killers := make([][2]chess.Move, e.cfg.MaxPly+1)
	for i := range killers {
		killers[i] = [2]chess.Move{chess.NullMove, chess.NullMove}
	}
	return &searcher{
		cfg:     e.cfg,
		ev:      e.ev,
		book:    e.book,
		tt:      e.tt,
		logger:  e.logger,
		ctx:     ctx,
		board:   board,
		handle:  h,
		mate:    e.ev.MateValue(),
		killers: killers,
	}
}
