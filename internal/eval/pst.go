package eval

import "github.com/lgbarn/drawback-go/internal/chess"

// Piece-square tables from White's point of view, written as the board is
// drawn: the first row is rank 8, the last rank 1.
type table [64]int

var midgameTables = [chess.NumPieceValues]table{
	chess.Pawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		50, 50, 50, 50, 50, 50, 50, 50,
		10, 10, 20, 35, 35, 20, 10, 10,
		0, 5, 10, 40, 40, 10, 5, 0,
		0, 0, 20, 40, 40, 20, 0, 0,
		5, -5, -5, -20, -20, -5, -5, 5,
		-10, 10, 10, -50, -50, 10, 10, -10,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	chess.Knight: {
		-40, -20, -10, -10, -10, -10, -20, -40,
		-20, 0, 5, 5, 5, 5, 0, -20,
		-10, 5, 10, 10, 10, 10, 5, -10,
		-10, 5, 10, 15, 15, 10, 5, -10,
		-10, 5, 10, 15, 15, 10, 5, -10,
		-10, 5, 15, 10, 10, 15, 5, -10,
		-20, 0, 5, 5, 5, 5, 0, -20,
		-40, -20, -10, -10, -10, -10, -20, -40,
	},
	chess.Bishop: {
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 15, 0, 0, 0, 0, 15, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	},
	chess.Rook: {
		40, 40, 40, 0, 0, 40, 40, 40,
		5, 15, 15, 50, 50, 15, 50, 5,
		5, 0, 0, 0, 0, 0, 0, 5,
		5, 0, 0, 0, 0, 0, 0, 5,
		5, 0, 0, 0, 0, 0, 0, 5,
		5, 0, 0, 0, 0, 0, 0, 5,
		5, 0, 0, 0, 0, 0, 0, 5,
		0, -5, 5, 5, 5, 10, -5, 0,
	},
	chess.Queen: {
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-5, 0, 5, 5, 5, 5, 0, -5,
		0, 0, 5, 5, 5, 5, 0, -5,
		-10, 5, 5, 5, 5, 5, 0, -10,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	},
	chess.King: {
		-120, -120, -120, -120, -120, -120, -120, -120,
		-100, -100, -100, -100, -100, -100, -100, -100,
		-80, -80, -80, -80, -80, -80, -80, -80,
		-70, -70, -70, -70, -70, -70, -70, -70,
		-60, -60, -60, -60, -60, -60, -60, -60,
		-40, -40, -40, -40, -40, -40, -40, -40,
		0, 0, -10, -30, -30, -10, 0, 0,
		20, 40, 10, 0, 0, 10, 40, 20,
	},
}

var endgameTables = [chess.NumPieceValues]table{
	chess.Pawn: {
		0, 0, 0, 0, 0, 0, 0, 0,
		80, 85, 80, 80, 80, 80, 85, 80,
		50, 55, 50, 50, 50, 50, 55, 50,
		30, 35, 30, 30, 30, 30, 35, 30,
		25, 20, 20, 20, 20, 20, 20, 25,
		15, 10, 10, 10, 10, 10, 10, 15,
		10, 10, 10, 10, 10, 10, 10, 10,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	chess.Knight: {
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-30, 10, 15, 20, 20, 15, 10, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 15, 15, 15, 15, 5, -30,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	},
	chess.Bishop: {
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 10, 0, 0, 0, 0, 10, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	},
	chess.Rook: {
		40, 40, 40, 0, 0, 40, 40, 40,
		5, 10, 10, 10, 10, 10, 10, 5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		0, 0, 10, 5, 5, 10, 0, 0,
	},
	chess.Queen: {
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-5, 0, 5, 5, 5, 5, 0, -5,
		0, 0, 5, 5, 5, 5, 0, -5,
		-10, 5, 5, 5, 5, 5, 0, -10,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	},
	chess.King: {
		-50, -30, -30, -30, -30, -30, -30, -50,
		-30, -20, -20, -20, -20, -20, -20, -30,
		-30, -10, -5, 0, 0, -5, -10, -30,
		-30, -10, 0, 10, 10, 0, -10, -30,
		-30, -10, 0, 10, 10, 0, -10, -30,
		-30, -10, -5, 0, 0, -5, -10, -30,
		-30, -20, -20, -20, -20, -20, -20, -30,
		-50, -30, -30, -30, -30, -30, -30, -50,
	},
}

// tableIndex maps a square to its entry for a piece of colour. White reads
// the tables flipped since they are written rank 8 first; Black reads them
// as written, which mirrors the board.
func tableIndex(sq chess.Square, colour chess.Colour) int {
	if colour == chess.White {
		return int(sq.Mirror())
	}
	return int(sq)
}
