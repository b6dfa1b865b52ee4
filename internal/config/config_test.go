package config

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/lgbarn/drawback-go/internal/chess"
	drawerrors "github.com/lgbarn/drawback-go/internal/errors"
)

// TestSearchConfig_Defaults verifies SearchConfig has sensible defaults
func TestSearchConfig_Defaults(t *testing.T) {
	cfg := NewSearchConfig()

	if cfg.MaxDepth != 4 {
		t.Errorf("MaxDepth = %d, want 4", cfg.MaxDepth)
	}
	if cfg.TimeBudget != 5*time.Second {
		t.Errorf("TimeBudget = %v, want 5s", cfg.TimeBudget)
	}
	if cfg.QuiescenceDepth != 5 {
		t.Errorf("QuiescenceDepth = %d, want 5", cfg.QuiescenceDepth)
	}
	if cfg.KingCaptureBonus <= cfg.TTMoveBonus {
		t.Error("king capture should order before the table move")
	}
	if cfg.KillerBonus[0] <= cfg.KillerBonus[1] {
		t.Error("first killer should order before the second")
	}
	if cfg.KillerBonus[1] <= cfg.HistoryLimit+cfg.CheckBonus+cfg.CentralPawnBonus {
		t.Error("a killer should order before any other quiet move")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

// TestEvalConfig_Defaults verifies EvalConfig has sensible defaults
func TestEvalConfig_Defaults(t *testing.T) {
	cfg := NewEvalConfig()

	if cfg.MateValue != 20000 {
		t.Errorf("MateValue = %d, want 20000", cfg.MateValue)
	}
	if cfg.Midgame[chess.Queen] != 1025 || cfg.Endgame[chess.Queen] != 929 {
		t.Errorf("queen values = %d/%d, want 1025/929", cfg.Midgame[chess.Queen], cfg.Endgame[chess.Queen])
	}
	if cfg.DevelopmentPlies != 15 {
		t.Errorf("DevelopmentPlies = %d, want 15", cfg.DevelopmentPlies)
	}

	// The phase weights of the starting material sum to the phase total.
	start := 2*cfg.PhaseWeights[chess.Knight] + 2*cfg.PhaseWeights[chess.Bishop] +
		2*cfg.PhaseWeights[chess.Rook] + cfg.PhaseWeights[chess.Queen]
	if 2*start != cfg.PhaseTotal {
		t.Errorf("starting phase = %d, want %d", 2*start, cfg.PhaseTotal)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

// TestTableConfig_Defaults verifies TableConfig has sensible defaults
func TestTableConfig_Defaults(t *testing.T) {
	cfg := NewTableConfig()

	if cfg.Capacity != 1<<18 {
		t.Errorf("Capacity = %d, want %d", cfg.Capacity, 1<<18)
	}
	if cfg.EvictFraction != 0.10 {
		t.Errorf("EvictFraction = %v, want 0.10", cfg.EvictFraction)
	}
}

// TestBookConfig_Defaults verifies BookConfig has sensible defaults
func TestBookConfig_Defaults(t *testing.T) {
	cfg := NewBookConfig()

	if cfg.PlyLimit != 20 {
		t.Errorf("PlyLimit = %d, want 20", cfg.PlyLimit)
	}
	if cfg.Workers < 1 {
		t.Errorf("Workers = %d, want at least 1", cfg.Workers)
	}
}

// TestValidate verifies configuration validation
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			modify: func(*Config) {},
		},
		{
			name:    "zero depth",
			modify:  func(c *Config) { c.Search.MaxDepth = 0 },
			wantErr: true,
		},
		{
			name:    "no time",
			modify:  func(c *Config) { c.Search.TimeBudget = 0 },
			wantErr: true,
		},
		{
			name:    "killer table too small",
			modify:  func(c *Config) { c.Search.MaxPly = 2 },
			wantErr: true,
		},
		{
			name:    "history can reach the killers",
			modify:  func(c *Config) { c.Search.HistoryLimit = c.Search.KillerBonus[1] },
			wantErr: true,
		},
		{
			name:    "checks outrank killers",
			modify:  func(c *Config) { c.Search.CheckBonus = 500000 },
			wantErr: true,
		},
		{
			name:    "opening bonus outranks checks",
			modify:  func(c *Config) { c.Search.CentralPawnBonus = c.Search.CheckBonus },
			wantErr: true,
		},
		{
			name:    "killers outrank captures",
			modify:  func(c *Config) { c.Search.KillerBonus = [2]int{2000000, 80000} },
			wantErr: true,
		},
		{
			name:    "empty table",
			modify:  func(c *Config) { c.Table.Capacity = 0 },
			wantErr: true,
		},
		{
			name:    "evict everything and more",
			modify:  func(c *Config) { c.Table.EvictFraction = 1.5 },
			wantErr: true,
		},
		{
			name:    "mate below material",
			modify:  func(c *Config) { c.Eval.MateValue = 900 },
			wantErr: true,
		},
		{
			name:    "zero bias weight",
			modify:  func(c *Config) { c.Eval.BiasWeight = 0 },
			wantErr: true,
		},
		{
			name:    "no book workers",
			modify:  func(c *Config) { c.Book.Workers = 0 },
			wantErr: true,
		},
		{
			name:   "book disabled",
			modify: func(c *Config) { c.Book.PlyLimit = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, drawerrors.ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

// TestConfig_SetOutput verifies output stream setting
func TestConfig_SetOutput(t *testing.T) {
	cfg := NewConfig()
	buf := &bytes.Buffer{}

	cfg.SetOutput(buf)

	if cfg.OutputFile != buf {
		t.Error("SetOutput did not set OutputFile")
	}
}

// TestConfigBuilder verifies the builder pattern works correctly
func TestConfigBuilder(t *testing.T) {
	buf := &bytes.Buffer{}
	cfg := NewConfigBuilder().
		WithMaxDepth(6).
		WithTimeBudget(time.Second).
		WithAspirationWindow(25).
		WithQuiescenceDepth(3).
		WithTableCapacity(1000, 0.25).
		WithMateValue(50000).
		WithBiasWeight(0.5).
		WithBookPlyLimit(12).
		WithBookWorkers(2).
		WithOutput(buf).
		WithVerbosity(2).
		Build()

	if cfg.Search.MaxDepth != 6 {
		t.Errorf("MaxDepth = %d, want 6", cfg.Search.MaxDepth)
	}
	if cfg.Search.TimeBudget != time.Second {
		t.Errorf("TimeBudget = %v, want 1s", cfg.Search.TimeBudget)
	}
	if cfg.Search.AspirationWindow != 25 {
		t.Errorf("AspirationWindow = %d, want 25", cfg.Search.AspirationWindow)
	}
	if cfg.Search.QuiescenceDepth != 3 {
		t.Errorf("QuiescenceDepth = %d, want 3", cfg.Search.QuiescenceDepth)
	}
	if cfg.Table.Capacity != 1000 || cfg.Table.EvictFraction != 0.25 {
		t.Errorf("Table = %+v, want 1000/0.25", *cfg.Table)
	}
	if cfg.Eval.MateValue != 50000 {
		t.Errorf("MateValue = %d, want 50000", cfg.Eval.MateValue)
	}
	if cfg.Eval.BiasWeight != 0.5 {
		t.Errorf("BiasWeight = %v, want 0.5", cfg.Eval.BiasWeight)
	}
	if cfg.Book.PlyLimit != 12 || cfg.Book.Workers != 2 {
		t.Errorf("Book = %+v, want 12 plies on 2 workers", *cfg.Book)
	}
	if cfg.OutputFile != buf {
		t.Error("WithOutput did not set OutputFile")
	}
	if cfg.Verbosity != 2 {
		t.Errorf("Verbosity = %d, want 2", cfg.Verbosity)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}
