package config

import (
	"fmt"

	"github.com/lgbarn/drawback-go/internal/errors"
)

// TableConfig holds settings for the transposition table.
type TableConfig struct {
	// Capacity is the maximum number of stored positions
	Capacity int

	// EvictFraction of Capacity is dropped, oldest first, when a new
	// position arrives at a full table
	EvictFraction float64
}

// NewTableConfig creates a TableConfig with default values.
func NewTableConfig() *TableConfig {
	return &TableConfig{
		Capacity:      1 << 18,
		EvictFraction: 0.10,
	}
}

// Validate checks that the table configuration is usable.
func (t *TableConfig) Validate() error {
	if t.Capacity < 1 {
		return fmt.Errorf("table capacity %d < 1: %w", t.Capacity, errors.ErrInvalidConfig)
	}
	if t.EvictFraction <= 0 || t.EvictFraction > 1 {
		return fmt.Errorf("evict fraction %v outside (0,1]: %w", t.EvictFraction, errors.ErrInvalidConfig)
	}
	return nil
}
