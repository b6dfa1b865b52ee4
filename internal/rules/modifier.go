// Package rules defines drawbacks: per-colour rule modifiers that restrict
// which moves a side may play or give that side an extra way to lose.
package rules

import "github.com/lgbarn/drawback-go/internal/chess"

// Modifier restricts the moves available to the colour it is assigned to.
// Allowed sees the position before m is played; m is always pseudo-legal
// and moves a piece of the given colour.
type Modifier interface {
	Name() string
	Description() string
	Allowed(pos *chess.Position, m chess.Move, colour chess.Colour) bool
}

// LossChecker is implemented by modifiers with an alternate losing condition.
// HasLost is evaluated after every applied move.
type LossChecker interface {
	HasLost(pos *chess.Position, colour chess.Colour) bool
}

// ValueOverrider is implemented by modifiers that change how much the
// evaluator should value the affected side's pieces.
type ValueOverrider interface {
	PieceValue(piece chess.Piece) (int, bool)
}

// Funcs adapts plain functions into a Modifier. Any nil hook is neutral: every
// move is allowed, the side never loses and no value is overridden.
type Funcs struct {
	ID          string
	Summary     string
	AllowedFunc func(pos *chess.Position, m chess.Move, colour chess.Colour) bool
	HasLostFunc func(pos *chess.Position, colour chess.Colour) bool
	Values      map[chess.Piece]int
}

// Name returns the registry identifier.
func (f *Funcs) Name() string { return f.ID }

// Description returns a one-line human readable summary.
func (f *Funcs) Description() string { return f.Summary }

// Allowed invokes the configured legality hook if present.
func (f *Funcs) Allowed(pos *chess.Position, m chess.Move, colour chess.Colour) bool {
	if f.AllowedFunc == nil {
		return true
	}
	return f.AllowedFunc(pos, m, colour)
}

// HasLost invokes the configured loss hook if present.
func (f *Funcs) HasLost(pos *chess.Position, colour chess.Colour) bool {
	if f.HasLostFunc == nil {
		return false
	}
	return f.HasLostFunc(pos, colour)
}

// PieceValue returns the overridden centipawn value of a piece type.
func (f *Funcs) PieceValue(piece chess.Piece) (int, bool) {
	v, ok := f.Values[piece]
	return v, ok
}

// HasLost reports whether m carries a loss predicate that fires for colour.
// A nil modifier never loses.
func HasLost(m Modifier, pos *chess.Position, colour chess.Colour) bool {
	if m == nil {
		return false
	}
	lc, ok := m.(LossChecker)
	return ok && lc.HasLost(pos, colour)
}

// PieceValue returns the value override m declares for piece, if any.
func PieceValue(m Modifier, piece chess.Piece) (int, bool) {
	if m == nil {
		return 0, false
	}
	vo, ok := m.(ValueOverrider)
	if !ok {
		return 0, false
	}
	return vo.PieceValue(piece)
}
