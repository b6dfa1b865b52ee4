package rules

import (
	"github.com/lgbarn/drawback-go/internal/chess"
)

// Names of the built-in drawbacks.
const (
	Vegan                = "vegan"
	NoKnightCaptures     = "no-knight-captures"
	NoKnightMoves        = "no-knight-moves"
	NoBishopCaptures     = "no-bishop-captures"
	NoBishopMoves        = "no-bishop-moves"
	ForwardMarch         = "forward-march"
	TrueGentleman        = "true-gentleman"
	Chivalry             = "chivalry"
	ProfessionalCourtesy = "professional-courtesy"
	PunchingDown         = "punching-down"
	CoveringFire         = "covering-fire"
	PackMentality        = "pack-mentality"
	GetDownMrPresident   = "get-down-mr-president"
	JustPassingThrough   = "just-passing-through"
	BlindedByTheSun      = "blinded-by-the-sun"
	AtomicBomb           = "atomic-bomb"
)

// Default parameters of the configurable drawbacks.
const (
	DefaultPassingRank = 3 // zero-based, from the owner's side
	DefaultSunSquare   = chess.Square(28)
)

// captureValues ranks pieces for punching-down.
var captureValues = map[chess.Piece]int{
	chess.Pawn:   100,
	chess.Knight: 320,
	chess.Bishop: 330,
	chess.Rook:   500,
	chess.Queen:  900,
	chess.King:   20000,
}

// RegisterBuiltins adds every built-in drawback to rs.
func RegisterBuiltins(rs *RuleSet) {
	for _, m := range []Modifier{
		NewVegan(),
		NewNoKnightCaptures(),
		NewNoKnightMoves(),
		NewNoBishopCaptures(),
		NewNoBishopMoves(),
		NewForwardMarch(),
		NewTrueGentleman(),
		NewChivalry(),
		NewProfessionalCourtesy(),
		NewPunchingDown(),
		NewCoveringFire(),
		NewPackMentality(),
		NewGetDownMrPresident(),
		NewJustPassingThrough(DefaultPassingRank),
		NewBlindedByTheSun(DefaultSunSquare),
		NewAtomicBomb(),
	} {
		mustRegister(rs, m)
	}
}

func mustRegister(rs *RuleSet, m Modifier) {
	if err := rs.Register(m.Name(), m); err != nil {
		panic(err)
	}
}

func moverOf(pos *chess.Position, m chess.Move) chess.Piece {
	return chess.ExtractPiece(pos.PieceAt(m.From))
}

func victimOf(pos *chess.Position, m chess.Move) chess.Piece {
	return chess.ExtractPiece(pos.CapturedBy(m))
}

// capturing reports whether m captures something other than a king.
// Taking the king wins outright, so capture restrictions never forbid it.
func capturing(pos *chess.Position, m chess.Move) bool {
	v := victimOf(pos, m)
	return v != chess.Empty && v != chess.King
}

// NewVegan forbids capturing knights.
func NewVegan() Modifier {
	return &Funcs{
		ID:      Vegan,
		Summary: "You cannot capture knights",
		AllowedFunc: func(pos *chess.Position, m chess.Move, _ chess.Colour) bool {
			return victimOf(pos, m) != chess.Knight
		},
	}
}

// NewNoKnightCaptures forbids knights from capturing.
func NewNoKnightCaptures() Modifier {
	return &Funcs{
		ID:      NoKnightCaptures,
		Summary: "Your knights cannot capture",
		AllowedFunc: func(pos *chess.Position, m chess.Move, _ chess.Colour) bool {
			return moverOf(pos, m) != chess.Knight || !capturing(pos, m)
		},
		Values: map[chess.Piece]int{chess.Knight: 200},
	}
}

// NewNoKnightMoves forbids moving knights at all.
func NewNoKnightMoves() Modifier {
	return &Funcs{
		ID:      NoKnightMoves,
		Summary: "Your knights cannot move",
		AllowedFunc: func(pos *chess.Position, m chess.Move, _ chess.Colour) bool {
			return moverOf(pos, m) != chess.Knight
		},
		Values: map[chess.Piece]int{chess.Knight: 0},
	}
}

// NewNoBishopCaptures forbids bishops from capturing.
func NewNoBishopCaptures() Modifier {
	return &Funcs{
		ID:      NoBishopCaptures,
		Summary: "Your bishops cannot capture",
		AllowedFunc: func(pos *chess.Position, m chess.Move, _ chess.Colour) bool {
			return moverOf(pos, m) != chess.Bishop || !capturing(pos, m)
		},
		Values: map[chess.Piece]int{chess.Bishop: 200},
	}
}

// NewNoBishopMoves forbids moving bishops; the side loses once bishops are
// all it has left besides the king.
func NewNoBishopMoves() Modifier {
	return &Funcs{
		ID:      NoBishopMoves,
		Summary: "Your bishops cannot move; you lose if only bishops remain",
		AllowedFunc: func(pos *chess.Position, m chess.Move, _ chess.Colour) bool {
			return moverOf(pos, m) != chess.Bishop
		},
		HasLostFunc: func(pos *chess.Position, colour chess.Colour) bool {
			bishops := 0
			for _, cp := range pos.Squares {
				if cp == chess.Empty || chess.ExtractColour(cp) != colour {
					continue
				}
				switch chess.ExtractPiece(cp) {
				case chess.King:
				case chess.Bishop:
					bishops++
				default:
					return false
				}
			}
			return bishops > 0
		},
	}
}

// NewForwardMarch forbids moving any piece towards its own back rank.
func NewForwardMarch() Modifier {
	return &Funcs{
		ID:      ForwardMarch,
		Summary: "You cannot move backwards",
		AllowedFunc: func(_ *chess.Position, m chess.Move, colour chess.Colour) bool {
			return (m.To.Rank()-m.From.Rank())*colour.Forward() >= 0
		},
	}
}

// NewTrueGentleman forbids capturing queens.
func NewTrueGentleman() Modifier {
	return &Funcs{
		ID:      TrueGentleman,
		Summary: "You cannot capture queens",
		AllowedFunc: func(pos *chess.Position, m chess.Move, _ chess.Colour) bool {
			return victimOf(pos, m) != chess.Queen
		},
	}
}

// NewChivalry lets only knights capture rooks and queens.
func NewChivalry() Modifier {
	return &Funcs{
		ID:      Chivalry,
		Summary: "Only your knights can capture rooks and queens",
		AllowedFunc: func(pos *chess.Position, m chess.Move, _ chess.Colour) bool {
			switch victimOf(pos, m) {
			case chess.Rook, chess.Queen:
				return moverOf(pos, m) == chess.Knight
			}
			return true
		},
	}
}

// NewProfessionalCourtesy forbids capturing a non-pawn with the same type.
func NewProfessionalCourtesy() Modifier {
	return &Funcs{
		ID:      ProfessionalCourtesy,
		Summary: "You cannot capture non-pawn pieces with pieces of the same type",
		AllowedFunc: func(pos *chess.Position, m chess.Move, _ chess.Colour) bool {
			if !capturing(pos, m) {
				return true
			}
			victim := victimOf(pos, m)
			return victim == chess.Pawn || victim != moverOf(pos, m)
		},
	}
}

// NewPunchingDown allows capturing only pieces worth no more than the attacker.
func NewPunchingDown() Modifier {
	return &Funcs{
		ID:      PunchingDown,
		Summary: "You can only capture pieces of equal or lesser value",
		AllowedFunc: func(pos *chess.Position, m chess.Move, _ chess.Colour) bool {
			if !capturing(pos, m) {
				return true
			}
			return captureValues[moverOf(pos, m)] >= captureValues[victimOf(pos, m)]
		},
	}
}

// NewCoveringFire allows a capture only when a second piece attacks the target.
func NewCoveringFire() Modifier {
	return &Funcs{
		ID:      CoveringFire,
		Summary: "You can only capture a piece you could capture two different ways",
		AllowedFunc: func(pos *chess.Position, m chess.Move, colour chess.Colour) bool {
			if !capturing(pos, m) {
				return true
			}
			return pos.AttackCount(m.To, colour) >= 2
		},
	}
}

// NewPackMentality requires a moved piece to land next to a friendly piece.
func NewPackMentality() Modifier {
	return &Funcs{
		ID:      PackMentality,
		Summary: "Your pieces must move next to another of your pieces",
		AllowedFunc: func(pos *chess.Position, m chess.Move, colour chess.Colour) bool {
			after := *pos
			after.Play(m)
			for _, o := range chess.KingOffsets() {
				f, r := m.To.File()+o[0], m.To.Rank()+o[1]
				if !chess.OnBoard(f, r) {
					continue
				}
				cp := after.Squares[chess.NewSquare(f, r)]
				if cp != chess.Empty && chess.ExtractColour(cp) == colour {
					return true
				}
			}
			return false
		},
	}
}

// NewGetDownMrPresident forbids moving the king while it is attacked.
func NewGetDownMrPresident() Modifier {
	return &Funcs{
		ID:      GetDownMrPresident,
		Summary: "Your king cannot move while attacked",
		AllowedFunc: func(pos *chess.Position, m chess.Move, colour chess.Colour) bool {
			if moverOf(pos, m) != chess.King {
				return true
			}
			return !pos.IsAttacked(m.From, colour.Opposite())
		},
	}
}

// NewJustPassingThrough forbids captures on one rank, counted zero-based from
// the owner's side of the board.
func NewJustPassingThrough(rank int) Modifier {
	return &Funcs{
		ID:      JustPassingThrough,
		Summary: "You cannot capture on one rank",
		AllowedFunc: func(pos *chess.Position, m chess.Move, colour chess.Colour) bool {
			if !capturing(pos, m) {
				return true
			}
			restricted := rank
			if colour == chess.Black {
				restricted = chess.BoardSize - 1 - rank
			}
			return m.To.Rank() != restricted
		},
	}
}

// NewBlindedByTheSun forbids ending a move attacking the sun square.
func NewBlindedByTheSun(sun chess.Square) Modifier {
	return &Funcs{
		ID:      BlindedByTheSun,
		Summary: "You cannot end your turn attacking the sun square (" + sun.String() + ")",
		AllowedFunc: func(pos *chess.Position, m chess.Move, colour chess.Colour) bool {
			after := *pos
			after.Play(m)
			return !after.IsAttacked(sun, colour)
		},
	}
}

// NewAtomicBomb forbids king captures; the side loses when the opponent
// captures next to its king.
func NewAtomicBomb() Modifier {
	return &Funcs{
		ID:      AtomicBomb,
		Summary: "Your king cannot capture; you lose if the opponent captures next to your king",
		AllowedFunc: func(pos *chess.Position, m chess.Move, _ chess.Colour) bool {
			return moverOf(pos, m) != chess.King || !capturing(pos, m)
		},
		HasLostFunc: func(pos *chess.Position, colour chess.Colour) bool {
			if pos.ToMove != colour || pos.LastCapture == chess.Empty || pos.LastMove.IsNull() {
				return false
			}
			king, ok := pos.KingSquare(colour)
			if !ok || king == pos.LastMove.To {
				return false
			}
			df := king.File() - pos.LastMove.To.File()
			dr := king.Rank() - pos.LastMove.To.Rank()
			return df >= -1 && df <= 1 && dr >= -1 && dr <= 1
		},
	}
}
