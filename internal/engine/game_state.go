package engine

import (
	"github.com/lgbarn/drawback-go/internal/chess"
	"github.com/lgbarn/drawback-go/internal/rules"
)

// Reason explains why a game ended.
type Reason int

const (
	NotOver Reason = iota
	KingCaptured
	DrawbackLoss
	NoLegalMoves
)

// String returns a short description of the reason.
func (r Reason) String() string {
	switch r {
	case KingCaptured:
		return "king captured"
	case DrawbackLoss:
		return "drawback loss"
	case NoLegalMoves:
		return "no legal moves"
	}
	return "not over"
}

// Outcome is the result of a finished game.
type Outcome struct {
	Winner chess.Colour
	Reason Reason
}

// Decided reports a win by king capture or by a drawback's loss predicate.
// Loss predicates are evaluated for the opponent of the side that just
// moved first and for the mover second; if both fire, the mover loses.
func (b *Board) Decided() (bool, Outcome) {
	whiteKing := b.pos.HasKing(chess.White)
	blackKing := b.pos.HasKing(chess.Black)
	switch {
	case !whiteKing:
		return true, Outcome{Winner: chess.Black, Reason: KingCaptured}
	case !blackKing:
		return true, Outcome{Winner: chess.White, Reason: KingCaptured}
	}

	first := b.pos.ToMove
	second := first.Opposite()
	firstLost := rules.HasLost(b.drawbacks[first], &b.pos, first)
	secondLost := rules.HasLost(b.drawbacks[second], &b.pos, second)
	switch {
	case secondLost:
		return true, Outcome{Winner: first, Reason: DrawbackLoss}
	case firstLost:
		return true, Outcome{Winner: second, Reason: DrawbackLoss}
	}
	return false, Outcome{}
}

// IsTerminal reports whether the game is over and who won. In addition to
// Decided, a side to move with no legal moves loses.
func (b *Board) IsTerminal() (bool, Outcome) {
	if over, out := b.Decided(); over {
		return true, out
	}
	if !b.HasLegalMoves(b.pos.ToMove) {
		return true, Outcome{Winner: b.pos.ToMove.Opposite(), Reason: NoLegalMoves}
	}
	return false, Outcome{}
}
