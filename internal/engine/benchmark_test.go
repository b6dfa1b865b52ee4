package engine

import (
	"testing"

	"github.com/lgbarn/drawback-go/internal/chess"
)

var benchFENs = map[string]string{
	"Initial":   "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	"Midgame":   "r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4",
	"Endgame":   "8/5k2/8/8/8/8/5K2/4R3 w - - 0 1",
	"Complex":   "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"EnPassant": "rnbqkbnr/pppp1ppp/8/4pP2/8/8/PPPPP1PP/RNBQKBNR w KQkq e6 0 3",
	"Castling":  "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1",
}

func BenchmarkParseFEN(b *testing.B) {
	for name, fen := range benchFENs {
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				ParseFEN(fen)
			}
		})
	}
}

func BenchmarkPositionToFEN(b *testing.B) {
	for name, fen := range benchFENs {
		b.Run(name, func(b *testing.B) {
			pos, _ := ParseFEN(fen)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				PositionToFEN(pos)
			}
		})
	}
}

func BenchmarkLegalMoves(b *testing.B) {
	for name, fen := range benchFENs {
		b.Run(name, func(b *testing.B) {
			board, _ := NewBoardFromFEN(fen, nil)
			if err := board.Assign(board.ToMove(), "vegan"); err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				board.LegalMoves(board.ToMove())
			}
		})
	}
}

func BenchmarkMakeUnmake(b *testing.B) {
	for name, fen := range benchFENs {
		b.Run(name, func(b *testing.B) {
			board, _ := NewBoardFromFEN(fen, nil)
			moves := board.LegalMoves(board.ToMove())
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				for _, m := range moves {
					u := board.MakeUnchecked(m)
					board.Unmake(u)
				}
			}
		})
	}
}

func BenchmarkIsTerminal(b *testing.B) {
	board, _ := NewBoardFromFEN(benchFENs["Midgame"], nil)
	board.Assign(chess.Black, "no-bishop-moves")
	board.Assign(chess.White, "atomic-bomb")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		board.IsTerminal()
	}
}
