package chess

import "fmt"

// Move is an origin, a destination and an optional promotion piece.
// Moves are plain values: two moves are equal when all three fields are.
type Move struct {
	From      Square
	To        Square
	Promotion Piece // Empty when not a promotion
}

// NullMove is the "no move" sentinel.
var NullMove = Move{From: NoSquare, To: NoSquare}

// NewMove creates a non-promoting move.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to}
}

// IsNull reports whether m is the null move.
func (m Move) IsNull() bool {
	return m.From == NoSquare || m.To == NoSquare
}

// String returns coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.Promotion != Empty {
		s += string(rune(m.Promotion.Letter() + ('a' - 'A')))
	}
	return s
}

// ParseMove parses coordinate notation such as "g1f3" or "a7a8n".
func ParseMove(text string) (Move, error) {
	if len(text) != 4 && len(text) != 5 {
		return NullMove, fmt.Errorf("invalid move %q", text)
	}
	from, err := ParseSquare(text[0:2])
	if err != nil {
		return NullMove, fmt.Errorf("invalid move %q: %w", text, err)
	}
	to, err := ParseSquare(text[2:4])
	if err != nil {
		return NullMove, fmt.Errorf("invalid move %q: %w", text, err)
	}
	m := Move{From: from, To: to}
	if len(text) == 5 {
		switch p := PieceFromLetter(text[4]); p {
		case Queen, Rook, Bishop, Knight:
			m.Promotion = p
		default:
			return NullMove, fmt.Errorf("invalid promotion in %q", text)
		}
	}
	return m, nil
}

// MustParseMove is ParseMove for literals known to be valid.
func MustParseMove(text string) Move {
	m, err := ParseMove(text)
	if err != nil {
		panic(err)
	}
	return m
}
