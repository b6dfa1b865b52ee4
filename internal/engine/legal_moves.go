package engine

import "github.com/lgbarn/drawback-go/internal/chess"

// view returns the position as seen by colour when generating its moves.
// When colour is not to move, the en-passant target is dropped since it
// belongs to colour's own last move.
func (b *Board) view(colour chess.Colour) *chess.Position {
	if colour == b.pos.ToMove {
		return &b.pos
	}
	v := b.pos
	v.ToMove = colour
	v.EnPassant = chess.NoSquare
	return &v
}

// PseudoLegalMoves returns colour's moves before drawback filtering.
func (b *Board) PseudoLegalMoves(colour chess.Colour) []chess.Move {
	return PseudoLegalMoves(b.view(colour), colour)
}

// LegalMoves returns colour's pseudo-legal moves that its drawback allows.
func (b *Board) LegalMoves(colour chess.Colour) []chess.Move {
	pos := b.view(colour)
	moves := PseudoLegalMoves(pos, colour)
	mod := b.drawbacks[colour]
	if mod == nil {
		return moves
	}
	legal := moves[:0]
	for _, m := range moves {
		if mod.Allowed(pos, m, colour) {
			legal = append(legal, m)
		}
	}
	return legal
}

// HasLegalMoves returns true if the given colour has at least one legal move.
func (b *Board) HasLegalMoves(colour chess.Colour) bool {
	pos := b.view(colour)
	mod := b.drawbacks[colour]
	for _, m := range PseudoLegalMoves(pos, colour) {
		if mod == nil || mod.Allowed(pos, m, colour) {
			return true
		}
	}
	return false
}

// IsLegal reports whether m is a legal move for the side to move.
func (b *Board) IsLegal(m chess.Move) bool {
	piece := b.pos.PieceAt(m.From)
	if piece == chess.Empty || chess.ExtractColour(piece) != b.pos.ToMove {
		return false
	}
	for _, legal := range b.LegalMoves(b.pos.ToMove) {
		if legal == m {
			return true
		}
	}
	return false
}

// Captures returns the legal moves of the side to move that capture.
func (b *Board) Captures() []chess.Move {
	moves := b.LegalMoves(b.pos.ToMove)
	captures := moves[:0]
	for _, m := range moves {
		if b.pos.IsCapture(m) {
			captures = append(captures, m)
		}
	}
	return captures
}

// KingCapture returns a legal move of the side to move that takes the
// enemy king, if one exists.
func (b *Board) KingCapture() (chess.Move, bool) {
	for _, m := range b.LegalMoves(b.pos.ToMove) {
		if chess.ExtractPiece(b.pos.CapturedBy(m)) == chess.King {
			return m, true
		}
	}
	return chess.NullMove, false
}

// Normalize fills in a queen promotion for a pawn move to the last rank
// given without one, as coordinate text often omits it.
func (b *Board) Normalize(m chess.Move) chess.Move {
	piece := b.pos.PieceAt(m.From)
	if m.Promotion == chess.Empty && chess.ExtractPiece(piece) == chess.Pawn &&
		(m.To.Rank() == 0 || m.To.Rank() == chess.BoardSize-1) {
		m.Promotion = chess.Queen
	}
	return m
}
