package hashing

import (
	"testing"

	"github.com/lgbarn/drawback-go/internal/chess"
)

func TestHashDeterministic(t *testing.T) {
	a := NewKeys(DefaultSeed)
	b := NewKeys(DefaultSeed)
	pos := chess.NewInitialPosition()
	if a.Hash(pos) != b.Hash(pos) {
		t.Error("same seed produced different signatures")
	}
	if NewKeys(1).Hash(pos) == a.Hash(pos) {
		t.Error("different seeds produced the same signature")
	}
}

func TestHashComponentsMatter(t *testing.T) {
	base := chess.NewInitialPosition()
	baseHash := Hash(base)

	tests := []struct {
		name   string
		mutate func(p *chess.Position)
	}{
		{"side to move", func(p *chess.Position) { p.ToMove = chess.Black }},
		{"castling right", func(p *chess.Position) { p.Castling &^= chess.WhiteKingside }},
		{"en passant file", func(p *chess.Position) { p.EnPassant = chess.NewSquare(4, 2) }},
		{"piece placement", func(p *chess.Position) { p.Squares[chess.NewSquare(4, 1)] = chess.Empty }},
		{"piece colour", func(p *chess.Position) { p.Squares[chess.NewSquare(0, 0)] = chess.B(chess.Rook) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base.Copy()
			tt.mutate(p)
			if Hash(p) == baseHash {
				t.Errorf("signature unchanged after changing %s", tt.name)
			}
		})
	}

	t.Run("clocks ignored", func(t *testing.T) {
		p := base.Copy()
		p.HalfmoveClock = 17
		p.MoveNumber = 40
		if Hash(p) != baseHash {
			t.Error("clocks should not affect the signature")
		}
	})
}

func TestUpdateMatchesHash(t *testing.T) {
	opening := []string{"e2e4", "d7d5", "e4d5", "c7c5", "d5c6", "g8f6", "g1f3", "e7e6", "f1e2", "f8e7"}
	lines := []struct {
		name  string
		start func() *chess.Position
		moves []string
	}{
		{
			name:  "opening with en passant",
			start: chess.NewInitialPosition,
			moves: opening,
		},
		{
			name:  "castling both sides",
			start: chess.NewInitialPosition,
			moves: append(append([]string{}, opening...), "e1g1", "e8g8"),
		},
		{
			name: "promotion with capture",
			start: func() *chess.Position {
				p := chess.NewPosition()
				p.Set(chess.NewSquare(4, 0), chess.W(chess.King))
				p.Set(chess.NewSquare(4, 7), chess.B(chess.King))
				p.Set(chess.NewSquare(1, 6), chess.W(chess.Pawn))
				p.Set(chess.NewSquare(0, 7), chess.B(chess.Rook))
				p.Castling = chess.BlackQueenside
				return p
			},
			moves: []string{"b7a8n", "e8d8"},
		},
		{
			name: "king capture",
			start: func() *chess.Position {
				p := chess.NewPosition()
				p.Set(chess.NewSquare(4, 0), chess.W(chess.King))
				p.Set(chess.NewSquare(4, 7), chess.B(chess.King))
				p.Set(chess.NewSquare(4, 3), chess.W(chess.Rook))
				return p
			},
			moves: []string{"e4e8"},
		},
	}

	for _, line := range lines {
		t.Run(line.name, func(t *testing.T) {
			pos := line.start()
			sig := Hash(pos)
			for _, text := range line.moves {
				m := chess.MustParseMove(text)
				before := *pos
				pos.Play(m)
				sig = Update(sig, m, &before, pos)
				if want := Hash(pos); sig != want {
					t.Fatalf("after %s: Update = %#x; Hash = %#x", text, sig, want)
				}
			}
		})
	}
}

func TestNullUpdate(t *testing.T) {
	pos := chess.NewInitialPosition()
	pos.Play(chess.MustParseMove("e2e4"))
	sig := Hash(pos)
	before := *pos
	pos.PlayNull()
	if got, want := Default().NullUpdate(sig, &before, pos), Hash(pos); got != want {
		t.Errorf("NullUpdate = %#x; want %#x", got, want)
	}
}

func BenchmarkHash(b *testing.B) {
	pos := chess.NewInitialPosition()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Hash(pos)
	}
}

func BenchmarkUpdate(b *testing.B) {
	pos := chess.NewInitialPosition()
	m := chess.MustParseMove("g1f3")
	after := *pos
	after.Play(m)
	sig := Hash(pos)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Update(sig, m, pos, &after)
	}
}
