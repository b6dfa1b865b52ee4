// Package eval scores positions in centipawns from White's point of view.
package eval

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/lgbarn/drawback-go/internal/chess"
	"github.com/lgbarn/drawback-go/internal/config"
	"github.com/lgbarn/drawback-go/internal/engine"
	"github.com/lgbarn/drawback-go/internal/rules"
)

// Evaluator computes a static score from material, piece placement and a
// few structural terms. It is immutable and safe for concurrent use.
type Evaluator struct {
	cfg  config.EvalConfig
	bias map[chess.Square]float64
}

// New creates an evaluator with the given weights.
func New(cfg config.EvalConfig) *Evaluator {
	return &Evaluator{cfg: cfg}
}

// Config returns the evaluator's weights.
func (e *Evaluator) Config() config.EvalConfig { return e.cfg }

// MateValue returns the score of a position without a king.
func (e *Evaluator) MateValue() int { return e.cfg.MateValue }

// WithBias returns a copy of e that leans toward the weighted squares.
// Favourable piece-square terms are scaled by 0.5+0.5*w, where w is the
// square's weight in (0,1] or the configured default for squares not in
// weights. Unfavourable terms are untouched. An empty map removes the bias.
func (e *Evaluator) WithBias(weights map[chess.Square]float64) *Evaluator {
	c := &Evaluator{cfg: e.cfg}
	if len(weights) == 0 {
		return c
	}
	c.bias = make(map[chess.Square]float64, len(weights))
	for sq, w := range weights {
		if w > 0 {
			c.bias[sq] = clamp(w, 0, 1)
		}
	}
	return c
}

// Biased reports whether a square bias is active.
func (e *Evaluator) Biased() bool { return e.bias != nil }

// Score evaluates the board from White's point of view. A missing king
// scores the mate value toward the side that still has one.
func (e *Evaluator) Score(b *engine.Board) int {
	pos := b.Position()
	switch {
	case !pos.HasKing(chess.White):
		return -e.cfg.MateValue
	case !pos.HasKing(chess.Black):
		return e.cfg.MateValue
	}

	// Terms are summed in units of 1/PhaseTotal centipawns so that an
	// unbiased score is exact whatever the summation order.
	p, total := e.phaseUnits(pos), e.cfg.PhaseTotal
	var score float64
	for sq := chess.Square(0); sq < 64; sq++ {
		cp := pos.Squares[sq]
		if cp == chess.Empty {
			continue
		}
		colour, piece := chess.ExtractColour(cp), chess.ExtractPiece(cp)
		mg, eg := e.material(b.Drawback(colour), piece)
		v := float64(taper(mg, eg, p, total)) + e.pst(piece, sq, colour, p)
		if colour == chess.White {
			score += v
		} else {
			score -= v
		}
	}

	score += float64(e.doubledPawns(pos) * p)
	score += float64((e.development(pos) + e.centre(pos)) * total)
	return int(math.Round(score / float64(total)))
}

// Relative evaluates the board from the side to move's point of view.
func (e *Evaluator) Relative(b *engine.Board) int {
	if b.ToMove() == chess.Black {
		return -e.Score(b)
	}
	return e.Score(b)
}

// Value returns the midgame material value of a piece type, used to rank
// captures. The king is worth the mate value.
func (e *Evaluator) Value(piece chess.Piece) int {
	if piece == chess.King {
		return e.cfg.MateValue
	}
	return e.cfg.Midgame[piece]
}

// Phase returns 1 for full midgame material down to 0 for bare kings and
// pawns.
func (e *Evaluator) Phase(pos *chess.Position) float64 {
	return float64(e.phaseUnits(pos)) / float64(e.cfg.PhaseTotal)
}

func (e *Evaluator) phaseUnits(pos *chess.Position) int {
	units := 0
	for _, cp := range pos.Squares {
		if cp != chess.Empty {
			units += e.cfg.PhaseWeights[chess.ExtractPiece(cp)]
		}
	}
	return clamp(units, 0, e.cfg.PhaseTotal)
}

// material returns the midgame and endgame values of piece, honouring a
// drawback's override for the side it is assigned to.
func (e *Evaluator) material(m rules.Modifier, piece chess.Piece) (int, int) {
	if piece == chess.King {
		return 0, 0
	}
	if v, ok := rules.PieceValue(m, piece); ok {
		return v, v
	}
	return e.cfg.Midgame[piece], e.cfg.Endgame[piece]
}

// pst returns the interpolated piece-square term for a piece of colour on
// sq, as seen by its owner, in units of 1/PhaseTotal.
func (e *Evaluator) pst(piece chess.Piece, sq chess.Square, colour chess.Colour, phaseUnits int) float64 {
	i := tableIndex(sq, colour)
	v := taper(midgameTables[piece][i], endgameTables[piece][i], phaseUnits, e.cfg.PhaseTotal)
	return e.applyBias(float64(v), sq)
}

// applyBias scales a favourable term toward the book's squares. The factor
// is always in (0.5, 1], so the sign never changes.
func (e *Evaluator) applyBias(v float64, sq chess.Square) float64 {
	if e.bias == nil || v <= 0 {
		return v
	}
	w, ok := e.bias[sq]
	if !ok {
		w = e.cfg.BiasWeight
	}
	return v * (0.5 + 0.5*w)
}

// taper interpolates between midgame and endgame values, scaled by total.
func taper(mg, eg, phaseUnits, total int) int {
	return mg*phaseUnits + eg*(total-phaseUnits)
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
