package engine

import "github.com/lgbarn/drawback-go/internal/chess"

var promotionPieces = []chess.Piece{chess.Queen, chess.Rook, chess.Bishop, chess.Knight}

// PseudoLegalMoves generates every move obeying piece geometry for colour,
// in square order. There is no check in this variant, so moves that leave
// the king attacked are included, and castling only needs the rights and
// empty squares between king and rook.
func PseudoLegalMoves(pos *chess.Position, colour chess.Colour) []chess.Move {
	moves := make([]chess.Move, 0, 48)
	for sq := chess.Square(0); sq < 64; sq++ {
		piece := pos.Squares[sq]
		if piece == chess.Empty || chess.ExtractColour(piece) != colour {
			continue
		}
		switch chess.ExtractPiece(piece) {
		case chess.Pawn:
			moves = pawnMoves(pos, sq, colour, moves)
		case chess.Knight:
			moves = stepMoves(pos, sq, colour, chess.KnightOffsets(), moves)
		case chess.Bishop:
			moves = slideMoves(pos, sq, colour, chess.DiagonalDirs(), moves)
		case chess.Rook:
			moves = slideMoves(pos, sq, colour, chess.StraightDirs(), moves)
		case chess.Queen:
			moves = slideMoves(pos, sq, colour, chess.DiagonalDirs(), moves)
			moves = slideMoves(pos, sq, colour, chess.StraightDirs(), moves)
		case chess.King:
			moves = stepMoves(pos, sq, colour, chess.KingOffsets(), moves)
			moves = castlingMoves(pos, sq, colour, moves)
		}
	}
	return moves
}

// canLand reports whether a piece of colour may end on sq (empty or enemy).
func canLand(pos *chess.Position, sq chess.Square, colour chess.Colour) bool {
	target := pos.Squares[sq]
	return target == chess.Empty || chess.ExtractColour(target) != colour
}

func stepMoves(pos *chess.Position, from chess.Square, colour chess.Colour, offsets [][2]int, moves []chess.Move) []chess.Move {
	file, rank := from.File(), from.Rank()
	for _, o := range offsets {
		f, r := file+o[0], rank+o[1]
		if !chess.OnBoard(f, r) {
			continue
		}
		to := chess.NewSquare(f, r)
		if canLand(pos, to, colour) {
			moves = append(moves, chess.NewMove(from, to))
		}
	}
	return moves
}

func slideMoves(pos *chess.Position, from chess.Square, colour chess.Colour, dirs [][2]int, moves []chess.Move) []chess.Move {
	file, rank := from.File(), from.Rank()
	for _, d := range dirs {
		f, r := file+d[0], rank+d[1]
		for chess.OnBoard(f, r) {
			to := chess.NewSquare(f, r)
			target := pos.Squares[to]
			if target == chess.Empty {
				moves = append(moves, chess.NewMove(from, to))
			} else {
				if chess.ExtractColour(target) != colour {
					moves = append(moves, chess.NewMove(from, to))
				}
				break // Blocked
			}
			f, r = f+d[0], r+d[1]
		}
	}
	return moves
}

func pawnMoves(pos *chess.Position, from chess.Square, colour chess.Colour, moves []chess.Move) []chess.Move {
	dir := colour.Forward()
	file, rank := from.File(), from.Rank()
	startRank, lastRank := 1, chess.BoardSize-1
	if colour == chess.Black {
		startRank, lastRank = chess.BoardSize-2, 0
	}

	add := func(to chess.Square) {
		if to.Rank() == lastRank {
			for _, p := range promotionPieces {
				moves = append(moves, chess.Move{From: from, To: to, Promotion: p})
			}
			return
		}
		moves = append(moves, chess.NewMove(from, to))
	}

	// Forward pushes
	if chess.OnBoard(file, rank+dir) {
		one := chess.NewSquare(file, rank+dir)
		if pos.Squares[one] == chess.Empty {
			add(one)
			if rank == startRank {
				two := chess.NewSquare(file, rank+2*dir)
				if pos.Squares[two] == chess.Empty {
					add(two)
				}
			}
		}
	}

	// Captures, including en passant
	for _, df := range []int{-1, 1} {
		f, r := file+df, rank+dir
		if !chess.OnBoard(f, r) {
			continue
		}
		to := chess.NewSquare(f, r)
		target := pos.Squares[to]
		if target != chess.Empty && chess.ExtractColour(target) != colour {
			add(to)
		} else if target == chess.Empty && to == pos.EnPassant {
			add(to)
		}
	}
	return moves
}

func castlingMoves(pos *chess.Position, from chess.Square, colour chess.Colour, moves []chess.Move) []chess.Move {
	backRank := 0
	if colour == chess.Black {
		backRank = chess.BoardSize - 1
	}
	if from != chess.NewSquare(4, backRank) {
		return moves
	}
	rook := chess.MakeColouredPiece(colour, chess.Rook)
	empty := func(files ...int) bool {
		for _, f := range files {
			if pos.Squares[chess.NewSquare(f, backRank)] != chess.Empty {
				return false
			}
		}
		return true
	}
	if pos.Castling.Has(chess.KingsideFor(colour)) &&
		pos.Squares[chess.NewSquare(7, backRank)] == rook && empty(5, 6) {
		moves = append(moves, chess.NewMove(from, chess.NewSquare(6, backRank)))
	}
	if pos.Castling.Has(chess.QueensideFor(colour)) &&
		pos.Squares[chess.NewSquare(0, backRank)] == rook && empty(1, 2, 3) {
		moves = append(moves, chess.NewMove(from, chess.NewSquare(2, backRank)))
	}
	return moves
}
