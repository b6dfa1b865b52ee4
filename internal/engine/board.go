package engine

import (
	"github.com/lgbarn/drawback-go/internal/chess"
	"github.com/lgbarn/drawback-go/internal/errors"
	"github.com/lgbarn/drawback-go/internal/hashing"
	"github.com/lgbarn/drawback-go/internal/rules"
)

// Board is a position plus the drawback assigned to each colour and the
// position's incrementally maintained signature.
type Board struct {
	pos       chess.Position
	drawbacks [chess.NumColours]rules.Modifier
	sig       uint64
	rules     *rules.RuleSet
	keys      *hashing.Keys
}

// Undo restores the board to its state before one Make.
type Undo struct {
	prev chess.Position
	sig  uint64
}

// NewBoard creates a board in the initial position with no drawbacks.
// A nil rule set selects rules.Default().
func NewBoard(rs *rules.RuleSet) *Board {
	return newBoard(chess.NewInitialPosition(), rs)
}

// NewBoardFromFEN creates a board from a FEN string.
func NewBoardFromFEN(fen string, rs *rules.RuleSet) (*Board, error) {
	pos, err := ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return newBoard(pos, rs), nil
}

// NewBoardFromPosition creates a board holding a copy of pos.
func NewBoardFromPosition(pos *chess.Position, rs *rules.RuleSet) *Board {
	return newBoard(pos.Copy(), rs)
}

func newBoard(pos *chess.Position, rs *rules.RuleSet) *Board {
	if rs == nil {
		rs = rules.Default()
	}
	b := &Board{pos: *pos, rules: rs, keys: hashing.Default()}
	b.sig = b.keys.Hash(&b.pos)
	return b
}

// Copy creates a deep copy of the board. Drawbacks are immutable and shared.
func (b *Board) Copy() *Board {
	c := *b
	return &c
}

// Assign gives colour the named drawback; the empty name removes it. An
// unknown name returns a ConfigurationError and leaves the board unchanged.
func (b *Board) Assign(colour chess.Colour, name string) error {
	m, err := b.rules.Resolve(colour, name)
	if err != nil {
		return err
	}
	b.drawbacks[colour] = m
	return nil
}

// Drawback returns the modifier assigned to colour, or nil.
func (b *Board) Drawback(colour chess.Colour) rules.Modifier {
	return b.drawbacks[colour]
}

// DrawbackName returns the name of colour's drawback, or "" for none.
func (b *Board) DrawbackName(colour chess.Colour) string {
	if m := b.drawbacks[colour]; m != nil {
		return m.Name()
	}
	return rules.None
}

// Rules returns the rule set drawbacks are resolved from.
func (b *Board) Rules() *rules.RuleSet { return b.rules }

// Position returns the current position. Callers must not modify it.
func (b *Board) Position() *chess.Position { return &b.pos }

// ToMove returns the side to move.
func (b *Board) ToMove() chess.Colour { return b.pos.ToMove }

// PieceAt returns the coloured piece on sq, or chess.Empty.
func (b *Board) PieceAt(sq chess.Square) chess.Piece { return b.pos.PieceAt(sq) }

// Signature returns the Zobrist signature of the current position.
func (b *Board) Signature() uint64 { return b.sig }

// Ply returns the number of half-moves since the standard start.
func (b *Board) Ply() int { return b.pos.Ply() }

// FEN returns the FEN string of the current position.
func (b *Board) FEN() string { return PositionToFEN(&b.pos) }

// Key returns the opening-book key of the current position.
func (b *Board) Key() string { return PositionKey(&b.pos) }

// Make plays m for the side to move. A move absent from LegalMoves returns
// an IllegalMoveError and leaves the board unchanged.
func (b *Board) Make(m chess.Move) (Undo, error) {
	if !b.IsLegal(m) {
		return Undo{}, &errors.IllegalMoveError{
			Err:  errors.ErrIllegalMove,
			Move: m.String(),
			FEN:  b.FEN(),
		}
	}
	return b.MakeUnchecked(m), nil
}

// MakeUnchecked plays m without checking legality. m must come from
// LegalMoves for the side to move.
func (b *Board) MakeUnchecked(m chess.Move) Undo {
	u := Undo{prev: b.pos, sig: b.sig}
	b.pos.Play(m)
	b.sig = b.keys.Update(b.sig, m, &u.prev, &b.pos)
	return u
}

// MakeNull passes the turn without moving.
func (b *Board) MakeNull() Undo {
	u := Undo{prev: b.pos, sig: b.sig}
	b.pos.PlayNull()
	b.sig = b.keys.NullUpdate(b.sig, &u.prev, &b.pos)
	return u
}

// Unmake reverts the Make, MakeUnchecked or MakeNull that returned u.
func (b *Board) Unmake(u Undo) {
	b.pos = u.prev
	b.sig = u.sig
}
