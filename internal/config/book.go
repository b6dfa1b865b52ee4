package config

import (
	"fmt"
	"runtime"

	"github.com/lgbarn/drawback-go/internal/errors"
)

// BookConfig holds settings for the opening book.
type BookConfig struct {
	// PlyLimit is the number of plies of each corpus game that are kept
	PlyLimit int

	// Workers replay corpus games concurrently
	Workers int

	// Bonus is the move-ordering bonus of the most frequent book move;
	// others get a share proportional to their frequency
	Bonus int

	// BiasMoves is how many of the most frequent book moves feed the
	// evaluator's square bias; 0 means all of them
	BiasMoves int
}

// NewBookConfig creates a BookConfig with default values.
func NewBookConfig() *BookConfig {
	return &BookConfig{
		PlyLimit:  20,
		Workers:   runtime.NumCPU(),
		Bonus:     1200000,
		BiasMoves: 3,
	}
}

// Validate checks that the book configuration is usable.
func (b *BookConfig) Validate() error {
	switch {
	case b.PlyLimit < 0:
		return fmt.Errorf("book ply limit %d negative: %w", b.PlyLimit, errors.ErrInvalidConfig)
	case b.Workers < 1:
		return fmt.Errorf("book workers %d < 1: %w", b.Workers, errors.ErrInvalidConfig)
	case b.Bonus < 0:
		return fmt.Errorf("book bonus %d negative: %w", b.Bonus, errors.ErrInvalidConfig)
	case b.BiasMoves < 0:
		return fmt.Errorf("book bias moves %d negative: %w", b.BiasMoves, errors.ErrInvalidConfig)
	}
	return nil
}
