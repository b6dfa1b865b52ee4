// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/drawback-go/internal/config"
)

var (
	// Position and drawbacks
	fenFlag       = flag.String("fen", "", "Position to analyse in FEN (default: initial position)")
	whiteDrawback = flag.String("white", "", "Drawback for White (\"random\" picks one)")
	blackDrawback = flag.String("black", "", "Drawback for Black (\"random\" picks one)")
	listDrawbacks = flag.Bool("list", false, "List the available drawbacks and exit")

	// Search limits
	depth     = flag.Int("depth", 0, "Maximum search depth (0 = default)")
	moveTime  = flag.Duration("time", 0, "Time budget per move (0 = default)")
	tableSize = flag.Int("tt", 0, "Transposition table capacity in entries (0 = default)")

	// Opening book
	bookFile    = flag.String("book", "", "Opening corpus in coordinate notation, one game per line")
	noBook      = flag.Bool("nobook", false, "Disable the opening book")
	bookPlies   = flag.Int("bookplies", 0, "Plies of each corpus game to keep (0 = default)")
	bookWorkers = flag.Int("workers", 0, "Corpus replay workers (0 = one per CPU)")

	// Self-play
	games    = flag.Int("games", 0, "Play N games against itself instead of analysing one position")
	parallel = flag.Int("parallel", 0, "Games played at once (0 = one per CPU)")
	maxPlies = flag.Int("maxplies", 200, "Stop a self-play game after N plies")

	// Output and logging
	outputFile   = flag.String("o", "", "Output file (default: stdout)")
	outputFormat = flag.String("format", "text", "Self-play record format: text, pgn or json")
	lineLength   = flag.Int("w", 80, "Maximum PGN movetext line length")
	logFile      = flag.String("l", "", "Write log to file (default: stderr)")
	verbosity    = flag.Int("v", 1, "Log verbosity: 0=warnings, 1=info, 2=debug")
	quiet        = flag.Bool("s", false, "Silent mode (warnings only)")
	help         = flag.Bool("h", false, "Show help")
	version      = flag.Bool("version", false, "Show version")
)

// buildConfig creates the configuration from the command-line flags.
func buildConfig() (*config.Config, error) {
	b := config.NewConfigBuilder().WithVerbosity(*verbosity)
	if *quiet {
		b.WithVerbosity(0)
	}
	if *depth > 0 {
		b.WithMaxDepth(*depth)
	}
	if *moveTime > 0 {
		b.WithTimeBudget(*moveTime)
	}
	if *tableSize > 0 {
		b.WithTableCapacity(*tableSize, config.NewTableConfig().EvictFraction)
	}
	if *bookPlies > 0 {
		b.WithBookPlyLimit(*bookPlies)
	}
	if *bookWorkers > 0 {
		b.WithBookWorkers(*bookWorkers)
	}

	cfg := b.Build()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
