package eval

import "github.com/lgbarn/drawback-go/internal/chess"

var (
	coreCentre = []chess.Square{
		chess.NewSquare(3, 3), chess.NewSquare(4, 3),
		chess.NewSquare(3, 4), chess.NewSquare(4, 4),
	}

	// The ring c3-f3, c4, f4, c5, f5, c6-f6.
	extendedCentre = func() []chess.Square {
		var ring []chess.Square
		for rank := 2; rank <= 5; rank++ {
			for file := 2; file <= 5; file++ {
				if (rank == 3 || rank == 4) && (file == 3 || file == 4) {
					continue
				}
				ring = append(ring, chess.NewSquare(file, rank))
			}
		}
		return ring
	}()
)

// homeSquares lists the starting squares of colour's minor pieces.
func homeSquares(colour chess.Colour) (knights, bishops [2]chess.Square) {
	rank := 0
	if colour == chess.Black {
		rank = chess.BoardSize - 1
	}
	knights = [2]chess.Square{chess.NewSquare(1, rank), chess.NewSquare(6, rank)}
	bishops = [2]chess.Square{chess.NewSquare(2, rank), chess.NewSquare(5, rank)}
	return knights, bishops
}

func sign(colour chess.Colour) int {
	if colour == chess.White {
		return 1
	}
	return -1
}

// doubledPawns charges each extra pawn on a file at its full midgame
// weight; the caller scales it by phase.
func (e *Evaluator) doubledPawns(pos *chess.Position) int {
	score := 0
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		pawn := chess.MakeColouredPiece(colour, chess.Pawn)
		for file := 0; file < chess.BoardSize; file++ {
			n := 0
			for rank := 0; rank < chess.BoardSize; rank++ {
				if pos.Squares[chess.NewSquare(file, rank)] == pawn {
					n++
				}
			}
			if n > 1 {
				score -= sign(colour) * (n - 1) * e.cfg.DoubledPawnPenalty
			}
		}
	}
	return score
}

// development penalises minor pieces still on their starting squares and
// unmoved d and e pawns early in the game.
func (e *Evaluator) development(pos *chess.Position) int {
	ply := pos.Ply()
	if ply >= e.cfg.DevelopmentPlies {
		return 0
	}
	score := 0
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		knights, bishops := homeSquares(colour)
		knight := chess.MakeColouredPiece(colour, chess.Knight)
		bishop := chess.MakeColouredPiece(colour, chess.Bishop)
		for i := range knights {
			if pos.Squares[knights[i]] == knight {
				score -= sign(colour) * e.cfg.MinorDevelopment
			}
			if pos.Squares[bishops[i]] == bishop {
				score -= sign(colour) * e.cfg.MinorDevelopment
			}
		}

		if ply >= e.cfg.CentralPawnPlies {
			continue
		}
		pawnRank := 1
		if colour == chess.Black {
			pawnRank = chess.BoardSize - 2
		}
		pawn := chess.MakeColouredPiece(colour, chess.Pawn)
		for _, file := range []int{3, 4} {
			if pos.Squares[chess.NewSquare(file, pawnRank)] == pawn {
				score -= sign(colour) * e.cfg.CentralPawnPenalty
			}
		}
	}
	return score
}

// centre rewards occupying the four centre squares and the number of
// attacks on them and on the ring around them.
func (e *Evaluator) centre(pos *chess.Position) int {
	score := 0
	for _, sq := range coreCentre {
		if cp := pos.Squares[sq]; cp != chess.Empty {
			bonus := e.cfg.CentrePiece
			if chess.ExtractPiece(cp) == chess.Pawn {
				bonus = e.cfg.CentrePawn
			}
			score += sign(chess.ExtractColour(cp)) * bonus
		}
		score += e.cfg.CoreCentreAttack * (pos.AttackCount(sq, chess.White) - pos.AttackCount(sq, chess.Black))
	}
	for _, sq := range extendedCentre {
		score += e.cfg.ExtendedCentreAttack * (pos.AttackCount(sq, chess.White) - pos.AttackCount(sq, chess.Black))
	}
	return score
}
