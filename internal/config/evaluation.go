package config

import (
	"fmt"

	"github.com/lgbarn/drawback-go/internal/chess"
	"github.com/lgbarn/drawback-go/internal/errors"
)

// PieceTable holds one value per piece type, indexed by chess.Piece.
type PieceTable [chess.NumPieceValues]int

// EvalConfig holds the weights of the static evaluation.
type EvalConfig struct {
	// Material values interpolated between midgame and endgame
	Midgame PieceTable
	Endgame PieceTable

	// MateValue is the score of a position whose king is gone
	MateValue int

	// Phase weights of the non-pawn material; PhaseTotal is the sum for the
	// starting position
	PhaseWeights PieceTable
	PhaseTotal   int

	// DoubledPawnPenalty is charged per extra pawn on a file, scaled by phase
	DoubledPawnPenalty int

	// Development terms apply for the first DevelopmentPlies plies; the
	// unmoved d/e pawn penalty for the first CentralPawnPlies
	DevelopmentPlies   int
	CentralPawnPlies   int
	MinorDevelopment   int
	CentralPawnPenalty int

	// Centre terms: occupation of d4, e4, d5, e5 and attacks on it and on
	// the surrounding ring
	CentrePawn           int
	CentrePiece          int
	CoreCentreAttack     int
	ExtendedCentreAttack int

	// BiasWeight applies to squares the book bias does not weight
	BiasWeight float64
}

// NewEvalConfig creates an EvalConfig with default values.
func NewEvalConfig() *EvalConfig {
	return &EvalConfig{
		Midgame:              PieceTable{chess.Pawn: 94, chess.Knight: 337, chess.Bishop: 365, chess.Rook: 479, chess.Queen: 1025},
		Endgame:              PieceTable{chess.Pawn: 100, chess.Knight: 281, chess.Bishop: 297, chess.Rook: 512, chess.Queen: 929},
		MateValue:            20000,
		PhaseWeights:         PieceTable{chess.Knight: 1, chess.Bishop: 1, chess.Rook: 2, chess.Queen: 4},
		PhaseTotal:           24,
		DoubledPawnPenalty:   20,
		DevelopmentPlies:     15,
		CentralPawnPlies:     10,
		MinorDevelopment:     15,
		CentralPawnPenalty:   20,
		CentrePawn:           25,
		CentrePiece:          15,
		CoreCentreAttack:     10,
		ExtendedCentreAttack: 5,
		BiasWeight:           0.2,
	}
}

// Validate checks that the evaluation configuration is usable.
func (e *EvalConfig) Validate() error {
	switch {
	case e.PhaseTotal <= 0:
		return fmt.Errorf("phase total %d not positive: %w", e.PhaseTotal, errors.ErrInvalidConfig)
	case e.BiasWeight <= 0 || e.BiasWeight > 1:
		return fmt.Errorf("bias weight %v outside (0,1]: %w", e.BiasWeight, errors.ErrInvalidConfig)
	}
	// Mate must dominate a full side's material.
	counts := PieceTable{chess.Pawn: 8, chess.Knight: 2, chess.Bishop: 2, chess.Rook: 2, chess.Queen: 1}
	var material int
	for p := chess.Pawn; p < chess.King; p++ {
		v := e.Midgame[p]
		if e.Endgame[p] > v {
			v = e.Endgame[p]
		}
		material += counts[p] * v
	}
	if e.MateValue <= 2*material {
		return fmt.Errorf("mate value %d does not exceed material bound %d: %w",
			e.MateValue, 2*material, errors.ErrInvalidConfig)
	}
	return nil
}
