package config

import (
	"io"
	"time"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithMaxDepth sets the default search depth.
func (b *ConfigBuilder) WithMaxDepth(depth int) *ConfigBuilder {
	b.cfg.Search.MaxDepth = depth
	return b
}

// WithTimeBudget sets the default search time budget.
func (b *ConfigBuilder) WithTimeBudget(budget time.Duration) *ConfigBuilder {
	b.cfg.Search.TimeBudget = budget
	return b
}

// WithAspirationWindow sets the aspiration half-width.
func (b *ConfigBuilder) WithAspirationWindow(window int) *ConfigBuilder {
	b.cfg.Search.AspirationWindow = window
	return b
}

// WithQuiescenceDepth sets the capture extension cap.
func (b *ConfigBuilder) WithQuiescenceDepth(depth int) *ConfigBuilder {
	b.cfg.Search.QuiescenceDepth = depth
	return b
}

// WithTableCapacity sets the transposition table size and eviction fraction.
func (b *ConfigBuilder) WithTableCapacity(capacity int, evictFraction float64) *ConfigBuilder {
	b.cfg.Table.Capacity = capacity
	b.cfg.Table.EvictFraction = evictFraction
	return b
}

// WithMateValue sets the score of a captured king.
func (b *ConfigBuilder) WithMateValue(mate int) *ConfigBuilder {
	b.cfg.Eval.MateValue = mate
	return b
}

// WithBiasWeight sets the bias weight of squares the book does not name.
func (b *ConfigBuilder) WithBiasWeight(weight float64) *ConfigBuilder {
	b.cfg.Eval.BiasWeight = weight
	return b
}

// WithBookPlyLimit sets how many plies of each corpus game are kept.
func (b *ConfigBuilder) WithBookPlyLimit(plies int) *ConfigBuilder {
	b.cfg.Book.PlyLimit = plies
	return b
}

// WithBookWorkers sets the number of corpus replay workers.
func (b *ConfigBuilder) WithBookWorkers(workers int) *ConfigBuilder {
	b.cfg.Book.Workers = workers
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
