package config

import (
	"fmt"
	"time"

	"github.com/lgbarn/drawback-go/internal/errors"
)

// SearchConfig holds settings for the alpha-beta search.
type SearchConfig struct {
	// MaxDepth is the deepest iteration when the caller does not give one
	MaxDepth int

	// TimeBudget bounds a search when the caller does not give one
	TimeBudget time.Duration

	// AspirationWindow is the half-width of the window around the previous
	// depth's score
	AspirationWindow int

	// QuiescenceDepth caps the capture-only extension
	QuiescenceDepth int

	// Null-move pruning is tried from NullMoveMinDepth, searching
	// NullMoveReduction plies shallower
	NullMoveMinDepth  int
	NullMoveReduction int

	// MaxPly bounds the killer table
	MaxPly int

	// Move ordering bonuses. Captures order before killers, killers before
	// history, history before checks, checks before opening pawn moves.
	KingCaptureBonus int
	TTMoveBonus      int
	CaptureBonus     int
	KillerBonus      [2]int
	HistoryLimit     int // Cap on a quiet move's history score
	CheckBonus       int

	// Opening pawn advances on the d/e and c/f files during the first
	// OpeningPlies plies
	OpeningPlies     int
	CentralPawnBonus int
	FlankCentreBonus int
}

// NewSearchConfig creates a SearchConfig with default values.
func NewSearchConfig() *SearchConfig {
	return &SearchConfig{
		MaxDepth:          4,
		TimeBudget:        5 * time.Second,
		AspirationWindow:  50,
		QuiescenceDepth:   5,
		NullMoveMinDepth:  3,
		NullMoveReduction: 3,
		MaxPly:            64,
		KingCaptureBonus:  20000000,
		TTMoveBonus:       10000000,
		CaptureBonus:      1000000,
		KillerBonus:       [2]int{90000, 80000},
		HistoryLimit:      70000,
		CheckBonus:        4000,
		OpeningPlies:      15,
		CentralPawnBonus:  400,
		FlankCentreBonus:  300,
	}
}

// Validate checks that the search configuration is usable.
func (s *SearchConfig) Validate() error {
	switch {
	case s.MaxDepth < 1:
		return fmt.Errorf("max depth %d < 1: %w", s.MaxDepth, errors.ErrInvalidConfig)
	case s.TimeBudget <= 0:
		return fmt.Errorf("time budget %v not positive: %w", s.TimeBudget, errors.ErrInvalidConfig)
	case s.AspirationWindow < 1:
		return fmt.Errorf("aspiration window %d < 1: %w", s.AspirationWindow, errors.ErrInvalidConfig)
	case s.QuiescenceDepth < 0:
		return fmt.Errorf("quiescence depth %d negative: %w", s.QuiescenceDepth, errors.ErrInvalidConfig)
	case s.NullMoveReduction < 1:
		return fmt.Errorf("null move reduction %d < 1: %w", s.NullMoveReduction, errors.ErrInvalidConfig)
	case s.CaptureBonus <= s.KillerBonus[0] || s.KillerBonus[0] < s.KillerBonus[1]:
		return fmt.Errorf("killer bonuses %v must stay below capture bonus %d: %w",
			s.KillerBonus, s.CaptureBonus, errors.ErrInvalidConfig)
	case s.KillerBonus[1] <= s.HistoryLimit+s.CheckBonus+s.CentralPawnBonus:
		return fmt.Errorf("killer bonus %d must exceed history limit, check and opening bonuses: %w",
			s.KillerBonus[1], errors.ErrInvalidConfig)
	case s.CheckBonus <= s.CentralPawnBonus || s.CentralPawnBonus < s.FlankCentreBonus:
		return fmt.Errorf("check bonus %d must exceed opening bonuses %d/%d: %w",
			s.CheckBonus, s.CentralPawnBonus, s.FlankCentreBonus, errors.ErrInvalidConfig)
	case s.MaxPly < s.MaxDepth+s.QuiescenceDepth:
		return fmt.Errorf("max ply %d below depth %d plus quiescence %d: %w",
			s.MaxPly, s.MaxDepth, s.QuiescenceDepth, errors.ErrInvalidConfig)
	}
	return nil
}
