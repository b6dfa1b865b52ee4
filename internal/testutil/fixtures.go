package testutil

import (
	"testing"

	"github.com/lgbarn/drawback-go/internal/chess"
)

// Positions used across package tests, in FEN.
const (
	InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

	// Black rook next to the white king; taking it is Black's only capture.
	KingCaptureFEN = "7k/8/8/8/8/8/8/4Kr2 b - - 0 1"

	// White queen facing a black knight on d5.
	KnightTargetFEN = "4k3/8/8/3n4/8/8/8/3QK3 w - - 0 1"

	// Middlegame with captures available to both sides.
	MiddlegameFEN = "r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4"

	// Both sides may castle either way.
	CastlingFEN = "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1"

	// Black has just double-pushed next to a white pawn.
	EnPassantFEN = "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3"

	// White pawn one step from promotion.
	PromotionFEN = "4k3/1P6/8/8/8/8/8/4K3 w - - 0 1"
)

// MustSquare parses an algebraic square or fails the test.
func MustSquare(t testing.TB, name string) chess.Square {
	t.Helper()
	sq, err := chess.ParseSquare(name)
	if err != nil {
		t.Fatalf("bad square %q: %v", name, err)
	}
	return sq
}

// MustMoves parses coordinate moves or fails the test.
func MustMoves(t testing.TB, texts ...string) []chess.Move {
	t.Helper()
	moves := make([]chess.Move, 0, len(texts))
	for _, text := range texts {
		m, err := chess.ParseMove(text)
		if err != nil {
			t.Fatalf("bad move %q: %v", text, err)
		}
		moves = append(moves, m)
	}
	return moves
}
