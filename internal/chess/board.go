package chess

// Position holds the full placement and game state of one chess position.
// It is a plain value: assigning a Position copies it.
type Position struct {
	// Coloured pieces indexed by Square; Empty for vacant squares.
	Squares [64]Piece

	// Who has the next move.
	ToMove Colour

	Castling  CastlingRights
	EnPassant Square

	// The half-move clock since the last pawn move or capture.
	HalfmoveClock uint

	// The current move number.
	MoveNumber uint

	// The most recent move played and the coloured piece it captured.
	LastMove    Move
	LastCapture Piece
}

// NewPosition creates an empty position with White to move.
func NewPosition() *Position {
	return &Position{
		ToMove:     White,
		EnPassant:  NoSquare,
		MoveNumber: 1,
		LastMove:   NullMove,
	}
}

// NewInitialPosition creates the standard starting position.
func NewInitialPosition() *Position {
	p := NewPosition()
	p.SetupInitialPosition()
	return p
}

// SetupInitialPosition sets up the standard chess starting position.
func (p *Position) SetupInitialPosition() {
	p.Squares = [64]Piece{}
	backRank := []Piece{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file := 0; file < BoardSize; file++ {
		p.Squares[NewSquare(file, 0)] = W(backRank[file])
		p.Squares[NewSquare(file, 1)] = W(Pawn)
		p.Squares[NewSquare(file, 6)] = B(Pawn)
		p.Squares[NewSquare(file, 7)] = B(backRank[file])
	}
	p.ToMove = White
	p.Castling = AllCastling
	p.EnPassant = NoSquare
	p.HalfmoveClock = 0
	p.MoveNumber = 1
	p.LastMove = NullMove
	p.LastCapture = Empty
}

// PieceAt returns the coloured piece on sq, or Empty.
func (p *Position) PieceAt(sq Square) Piece {
	if !sq.Valid() {
		return Empty
	}
	return p.Squares[sq]
}

// Set places a coloured piece on sq.
func (p *Position) Set(sq Square, piece Piece) {
	p.Squares[sq] = piece
}

// Copy creates a deep copy of the position.
func (p *Position) Copy() *Position {
	c := *p
	return &c
}

// Ply returns the number of half-moves played since the standard start,
// derived from the move number and side to move.
func (p *Position) Ply() int {
	ply := 2 * (int(p.MoveNumber) - 1)
	if p.ToMove == Black {
		ply++
	}
	return ply
}

// KingSquare finds the king of the given colour.
func (p *Position) KingSquare(colour Colour) (Square, bool) {
	king := MakeColouredPiece(colour, King)
	for sq := Square(0); sq < 64; sq++ {
		if p.Squares[sq] == king {
			return sq, true
		}
	}
	return NoSquare, false
}

// HasKing reports whether the colour still has its king.
func (p *Position) HasKing(colour Colour) bool {
	_, ok := p.KingSquare(colour)
	return ok
}

// Count returns how many pieces of the given type and colour are on the board.
func (p *Position) Count(colour Colour, piece Piece) int {
	want := MakeColouredPiece(colour, piece)
	n := 0
	for _, sq := range p.Squares {
		if sq == want {
			n++
		}
	}
	return n
}

// IsCapture reports whether m lands on an enemy piece or captures en passant.
func (p *Position) IsCapture(m Move) bool {
	return p.CapturedBy(m) != Empty
}

// CapturedBy returns the coloured piece m would capture, or Empty.
func (p *Position) CapturedBy(m Move) Piece {
	mover := p.PieceAt(m.From)
	if mover == Empty {
		return Empty
	}
	target := p.PieceAt(m.To)
	if target != Empty {
		if ExtractColour(target) == ExtractColour(mover) {
			return Empty
		}
		return target
	}
	if ExtractPiece(mover) == Pawn && m.To == p.EnPassant && m.From.File() != m.To.File() {
		return p.PieceAt(enPassantVictim(m, ExtractColour(mover)))
	}
	return Empty
}

func enPassantVictim(m Move, mover Colour) Square {
	return m.To - Square(BoardSize*mover.Forward())
}

var (
	knightOffsets = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs  = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs  = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// KnightOffsets returns the knight's (file, rank) jumps.
func KnightOffsets() [][2]int { return knightOffsets }

// KingOffsets returns the king's (file, rank) steps.
func KingOffsets() [][2]int { return kingOffsets }

// DiagonalDirs returns the bishop's ray directions.
func DiagonalDirs() [][2]int { return diagonalDirs }

// StraightDirs returns the rook's ray directions.
func StraightDirs() [][2]int { return straightDirs }

// IsAttacked returns true if the square is attacked by the given colour.
func (p *Position) IsAttacked(sq Square, by Colour) bool {
	return p.attackers(sq, by, 1) > 0
}

// AttackCount returns the number of pieces of the given colour attacking sq.
func (p *Position) AttackCount(sq Square, by Colour) int {
	return p.attackers(sq, by, 64)
}

// attackers counts attackers of sq, stopping once limit is reached.
func (p *Position) attackers(sq Square, by Colour, limit int) int {
	file, rank := sq.File(), sq.Rank()
	n := 0
	hit := func(f, r int, want ...Piece) bool {
		if !OnBoard(f, r) {
			return false
		}
		got := p.Squares[NewSquare(f, r)]
		for _, w := range want {
			if got == MakeColouredPiece(by, w) {
				n++
				return true
			}
		}
		return false
	}

	// Pawns attack from one rank behind, relative to their direction.
	pawnRank := rank - by.Forward()
	hit(file-1, pawnRank, Pawn)
	hit(file+1, pawnRank, Pawn)
	if n >= limit {
		return n
	}

	for _, o := range knightOffsets {
		hit(file+o[0], rank+o[1], Knight)
	}
	for _, o := range kingOffsets {
		hit(file+o[0], rank+o[1], King)
	}
	if n >= limit {
		return n
	}

	scan := func(dirs [][2]int, sliders ...Piece) {
		for _, d := range dirs {
			f, r := file+d[0], rank+d[1]
			for OnBoard(f, r) {
				if p.Squares[NewSquare(f, r)] != Empty {
					hit(f, r, sliders...)
					break // Blocked
				}
				f, r = f+d[0], r+d[1]
			}
		}
	}
	scan(diagonalDirs, Bishop, Queen)
	scan(straightDirs, Rook, Queen)
	return n
}

// Play applies m geometrically without any legality check and returns the
// coloured piece captured (Empty if none). It handles en passant, the
// castling rook hop, promotion (defaulting to a queen), castling rights,
// the en-passant target, both clocks and the side to move.
func (p *Position) Play(m Move) Piece {
	mover := p.Squares[m.From]
	colour := ExtractColour(mover)
	kind := ExtractPiece(mover)

	captured := p.CapturedBy(m)
	if captured != Empty && p.Squares[m.To] == Empty {
		p.Squares[enPassantVictim(m, colour)] = Empty
	}

	p.Squares[m.From] = Empty
	placed := mover
	if kind == Pawn && (m.To.Rank() == 0 || m.To.Rank() == BoardSize-1) {
		promo := m.Promotion
		if promo == Empty {
			promo = Queen
		}
		placed = MakeColouredPiece(colour, promo)
	}
	p.Squares[m.To] = placed

	if kind == King {
		if rookFrom, rookTo, ok := CastlingRookMove(m); ok {
			p.Squares[rookTo] = p.Squares[rookFrom]
			p.Squares[rookFrom] = Empty
		}
		p.Castling &^= KingsideFor(colour) | QueensideFor(colour)
	}
	p.Castling &^= rightsTouching(m.From) | rightsTouching(m.To)

	p.EnPassant = NoSquare
	if kind == Pawn && abs(m.To.Rank()-m.From.Rank()) == 2 {
		p.EnPassant = m.From + Square(BoardSize*colour.Forward())
	}

	if kind == Pawn || captured != Empty {
		p.HalfmoveClock = 0
	} else {
		p.HalfmoveClock++
	}
	if colour == Black {
		p.MoveNumber++
	}
	p.ToMove = colour.Opposite()
	p.LastMove = m
	p.LastCapture = captured
	return captured
}

// PlayNull passes the move to the other side.
func (p *Position) PlayNull() {
	p.EnPassant = NoSquare
	p.HalfmoveClock++
	if p.ToMove == Black {
		p.MoveNumber++
	}
	p.ToMove = p.ToMove.Opposite()
	p.LastMove = NullMove
	p.LastCapture = Empty
}

// CastlingRookMove returns the rook's hop when m is a two-square king move.
func CastlingRookMove(m Move) (from, to Square, ok bool) {
	switch m.To.File() - m.From.File() {
	case 2:
		return m.From + 3, m.From + 1, true
	case -2:
		return m.From - 4, m.From - 1, true
	}
	return NoSquare, NoSquare, false
}

// rightsTouching returns the castling rights lost when a piece leaves or
// lands on sq.
func rightsTouching(sq Square) CastlingRights {
	switch sq {
	case NewSquare(0, 0):
		return WhiteQueenside
	case NewSquare(7, 0):
		return WhiteKingside
	case NewSquare(0, 7):
		return BlackQueenside
	case NewSquare(7, 7):
		return BlackKingside
	}
	return NoCastling
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
