// Package book provides an opening book built from a hand-curated table
// and an optional corpus of games in coordinate notation.
package book

import (
	"context"
	"os"
	"sort"
	"sync"

	"github.com/lgbarn/drawback-go/internal/chess"
	"github.com/lgbarn/drawback-go/internal/config"
	"github.com/lgbarn/drawback-go/internal/errors"
)

// Candidate is a book move and how often it was seen.
type Candidate struct {
	Move      chess.Move
	Frequency int
}

// Report summarises one corpus load.
type Report struct {
	Lines       int     // Non-blank, non-comment lines read
	Games       int     // Lines that contributed at least one move
	Moves       int     // Moves recorded
	Skipped     int     // Lines cut short by a diagnostic
	Diagnostics []error // One *errors.ParseError per skipped line, in line order
}

// Book maps position keys to move frequencies. Curated and corpus counts
// are kept apart and merged at lookup time. It is safe for concurrent use.
type Book struct {
	cfg config.BookConfig

	mu      sync.RWMutex
	curated map[string]map[chess.Move]int
	corpus  map[string]map[chess.Move]int
}

// Option configures a Book.
type Option func(*Book)

// WithConfig sets the ply limit, replay workers and ordering bonus.
func WithConfig(cfg config.BookConfig) Option {
	return func(b *Book) {
		b.cfg = cfg
	}
}

// WithoutCurated starts the book without the hand-curated table.
func WithoutCurated() Option {
	return func(b *Book) {
		b.curated = map[string]map[chess.Move]int{}
	}
}

// New creates a book holding the curated table.
func New(opts ...Option) *Book {
	b := &Book{
		cfg:    *config.NewBookConfig(),
		corpus: map[string]map[chess.Move]int{},
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.curated == nil {
		b.curated = curatedTable()
	}
	return b
}

// PlyLimit returns the deepest ply the corpus contributes to.
func (b *Book) PlyLimit() int { return b.cfg.PlyLimit }

// Len returns the number of distinct positions in the book.
func (b *Book) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := len(b.curated)
	for key := range b.corpus {
		if _, ok := b.curated[key]; !ok {
			n++
		}
	}
	return n
}

// LoadCorpusFile loads a corpus from a file; see LoadCorpus.
func (b *Book) LoadCorpusFile(ctx context.Context, path string) (Report, error) {
	file, err := os.Open(path)
	if err != nil {
		return Report{}, errors.Wrap(err, "cannot open book corpus")
	}
	defer file.Close()

	return b.loadCorpus(ctx, file, path)
}

// MovesFor returns the book moves for a position key, most frequent first
// and by move text among equals.
func (b *Book) MovesFor(key string) []Candidate {
	b.mu.RLock()
	merged := make(map[chess.Move]int, len(b.curated[key])+len(b.corpus[key]))
	for m, n := range b.curated[key] {
		merged[m] += n
	}
	for m, n := range b.corpus[key] {
		merged[m] += n
	}
	b.mu.RUnlock()

	candidates := make([]Candidate, 0, len(merged))
	for m, n := range merged {
		candidates = append(candidates, Candidate{Move: m, Frequency: n})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Frequency != candidates[j].Frequency {
			return candidates[i].Frequency > candidates[j].Frequency
		}
		return candidates[i].Move.String() < candidates[j].Move.String()
	})
	return candidates
}

// BestMove returns the most frequent book move for a position key.
func (b *Book) BestMove(key string) (chess.Move, bool) {
	candidates := b.MovesFor(key)
	if len(candidates) == 0 {
		return chess.NullMove, false
	}
	return candidates[0].Move, true
}

// Bonuses returns the move-ordering bonus of each book move for a position
// key: the configured bonus scaled by frequency relative to the best move.
func (b *Book) Bonuses(key string) map[chess.Move]int {
	candidates := b.MovesFor(key)
	if len(candidates) == 0 {
		return nil
	}
	top := candidates[0].Frequency
	bonuses := make(map[chess.Move]int, len(candidates))
	for _, c := range candidates {
		bonuses[c.Move] = b.cfg.Bonus * c.Frequency / top
	}
	return bonuses
}

// Bias returns destination-square weights in (0,1] for the most frequent
// book moves of a position key, for the evaluator's bias hook. It is nil
// when the position is not in the book.
func (b *Book) Bias(key string) map[chess.Square]float64 {
	candidates := b.MovesFor(key)
	if len(candidates) == 0 {
		return nil
	}
	if n := b.cfg.BiasMoves; n > 0 && n < len(candidates) {
		candidates = candidates[:n]
	}
	top := float64(candidates[0].Frequency)
	weights := make(map[chess.Square]float64, len(candidates))
	for _, c := range candidates {
		w := float64(c.Frequency) / top
		if w > weights[c.Move.To] {
			weights[c.Move.To] = w
		}
	}
	return weights
}

func add(table map[string]map[chess.Move]int, key string, m chess.Move, n int) {
	moves, ok := table[key]
	if !ok {
		moves = make(map[chess.Move]int)
		table[key] = moves
	}
	moves[m] += n
}
