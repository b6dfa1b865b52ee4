// Package config provides the tunable settings of the engine: search limits,
// evaluation weights, transposition table sizing and opening book ingestion.
package config

import (
	"io"
	"os"
)

// Config holds all program configuration.
type Config struct {
	Search *SearchConfig
	Eval   *EvalConfig
	Table  *TableConfig
	Book   *BookConfig

	Verbosity int // 0=warnings only, 1=info, 2=debug

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Search:     NewSearchConfig(),
		Eval:       NewEvalConfig(),
		Table:      NewTableConfig(),
		Book:       NewBookConfig(),
		Verbosity:  1,
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the output writer.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// Validate checks every sub-configuration and returns the first problem.
func (c *Config) Validate() error {
	validators := []interface{ Validate() error }{c.Search, c.Eval, c.Table, c.Book}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}
