// Package hashing computes Zobrist position signatures, both from scratch
// and incrementally as moves are applied.
package hashing

import (
	"github.com/lgbarn/drawback-go/internal/chess"
)

// Keys holds the random values XORed together to form a signature.
type Keys struct {
	pieces    [12][64]uint64
	castling  [4]uint64
	enPassant [chess.BoardSize]uint64
	side      uint64
}

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// DefaultSeed seeds the package-level key table.
const DefaultSeed uint64 = 0x44524157424b4348

// NewKeys generates a deterministic key table from seed.
func NewKeys(seed uint64) *Keys {
	rng := splitmix64{state: seed}
	k := &Keys{}
	for p := range k.pieces {
		for sq := range k.pieces[p] {
			k.pieces[p][sq] = rng.next()
		}
	}
	for i := range k.castling {
		k.castling[i] = rng.next()
	}
	for i := range k.enPassant {
		k.enPassant[i] = rng.next()
	}
	k.side = rng.next()
	return k
}

var defaultKeys = NewKeys(DefaultSeed)

// Default returns the process-wide key table.
func Default() *Keys {
	return defaultKeys
}

// Hash computes the signature of pos with the default keys.
func Hash(pos *chess.Position) uint64 {
	return defaultKeys.Hash(pos)
}

// Update incrementally derives the signature after m with the default keys.
func Update(sig uint64, m chess.Move, before, after *chess.Position) uint64 {
	return defaultKeys.Update(sig, m, before, after)
}

// pieceIndex maps a coloured piece to 0..11.
func pieceIndex(colouredPiece chess.Piece) int {
	return (int(chess.ExtractPiece(colouredPiece))-1)*chess.NumColours + int(chess.ExtractColour(colouredPiece))
}

// Piece returns the key for a coloured piece standing on sq.
func (k *Keys) Piece(colouredPiece chess.Piece, sq chess.Square) uint64 {
	if colouredPiece == chess.Empty {
		return 0
	}
	return k.pieces[pieceIndex(colouredPiece)][sq]
}

// Castling returns the XOR of the keys of every right in rights.
func (k *Keys) Castling(rights chess.CastlingRights) uint64 {
	var h uint64
	for i := range k.castling {
		if rights&(1<<i) != 0 {
			h ^= k.castling[i]
		}
	}
	return h
}

// EnPassant returns the key for the en-passant file of sq, or 0 if unset.
func (k *Keys) EnPassant(sq chess.Square) uint64 {
	if !sq.Valid() {
		return 0
	}
	return k.enPassant[sq.File()]
}

// Side returns the key XORed in when Black is to move.
func (k *Keys) Side() uint64 {
	return k.side
}

// Hash computes the signature of pos from scratch.
func (k *Keys) Hash(pos *chess.Position) uint64 {
	var h uint64
	for sq, cp := range pos.Squares {
		if cp != chess.Empty {
			h ^= k.Piece(cp, chess.Square(sq))
		}
	}
	if pos.ToMove == chess.Black {
		h ^= k.side
	}
	h ^= k.Castling(pos.Castling)
	h ^= k.EnPassant(pos.EnPassant)
	return h
}

// Update derives the signature of after from sig, the signature of before,
// where after is before with m applied. Only the squares m touches are
// visited.
func (k *Keys) Update(sig uint64, m chess.Move, before, after *chess.Position) uint64 {
	mover := before.Squares[m.From]
	sig ^= k.Piece(mover, m.From)
	sig ^= k.Piece(after.Squares[m.To], m.To)

	if victim := before.Squares[m.To]; victim != chess.Empty {
		sig ^= k.Piece(victim, m.To)
	} else if chess.ExtractPiece(mover) == chess.Pawn && m.To == before.EnPassant && m.From.File() != m.To.File() {
		victimSq := m.To - chess.Square(chess.BoardSize*chess.ExtractColour(mover).Forward())
		sig ^= k.Piece(before.Squares[victimSq], victimSq)
	}

	if chess.ExtractPiece(mover) == chess.King {
		if rookFrom, rookTo, ok := chess.CastlingRookMove(m); ok {
			rook := before.Squares[rookFrom]
			sig ^= k.Piece(rook, rookFrom) ^ k.Piece(rook, rookTo)
		}
	}

	sig ^= k.side
	if before.Castling != after.Castling {
		sig ^= k.Castling(before.Castling ^ after.Castling)
	}
	if before.EnPassant != after.EnPassant {
		sig ^= k.EnPassant(before.EnPassant) ^ k.EnPassant(after.EnPassant)
	}
	return sig
}

// NullUpdate derives the signature after a null move (side switch only).
func (k *Keys) NullUpdate(sig uint64, before, after *chess.Position) uint64 {
	sig ^= k.side
	if before.EnPassant != after.EnPassant {
		sig ^= k.EnPassant(before.EnPassant) ^ k.EnPassant(after.EnPassant)
	}
	return sig
}
