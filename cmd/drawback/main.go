// drawback is a Drawback Chess engine: it analyses a position or plays games
// against itself with a drawback assigned to each side.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lgbarn/drawback-go/internal/book"
	"github.com/lgbarn/drawback-go/internal/chess"
	"github.com/lgbarn/drawback-go/internal/config"
	"github.com/lgbarn/drawback-go/internal/eval"
	"github.com/lgbarn/drawback-go/internal/output"
	"github.com/lgbarn/drawback-go/internal/rules"
	"github.com/lgbarn/drawback-go/internal/search"
	"github.com/lgbarn/drawback-go/internal/ttable"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("drawback version %s\n", programVersion)
		os.Exit(0)
	}

	rs := rules.Default()
	if *listDrawbacks {
		printDrawbacks(os.Stdout, rs)
		return
	}

	cfg, err := buildConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	format, err := output.ParseFormat(*outputFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Set up logging and output files
	setupLogFile(cfg)
	setupOutputFile(cfg)
	logger := newLogger(cfg.LogFile, cfg.Verbosity)
	log.Logger = logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	bk := loadBook(ctx, cfg, logger)

	setup := gameSetup{
		fen:      *fenFlag,
		white:    *whiteDrawback,
		black:    *blackDrawback,
		maxPlies: *maxPlies,
	}
	if *games > 0 {
		gw := output.NewWriter(format, cfg.OutputFile, *lineLength)
		err = runSelfPlay(ctx, cfg, gw, setup, *games, *parallel, rs, bk, logger)
	} else {
		err = runAnalysis(ctx, cfg, setup, rs, bk, logger)
	}
	if err != nil {
		logger.Error().Err(err).Msg("drawback failed")
		stop()
		os.Exit(1)
	}
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile != "" {
		file, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
			os.Exit(1)
		}
		cfg.LogFile = file
	}
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) {
	if *outputFile != "" {
		file, err := os.Create(*outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
			os.Exit(1)
		}
		cfg.SetOutput(file)
	}
}

// newLogger returns a console logger writing to w at the level for verbosity.
func newLogger(w io.Writer, verbosity int) zerolog.Logger {
	level := zerolog.InfoLevel
	switch {
	case verbosity <= 0:
		level = zerolog.WarnLevel
	case verbosity >= 2:
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// loadBook builds the opening book. A corpus that cannot be read is logged
// and the curated openings are used alone. Cancelling ctx stops replaying
// the corpus and keeps the lines replayed so far.
func loadBook(ctx context.Context, cfg *config.Config, logger zerolog.Logger) *book.Book {
	if *noBook {
		return nil
	}
	bk := book.New(book.WithConfig(*cfg.Book))
	if *bookFile == "" {
		return bk
	}

	report, err := bk.LoadCorpusFile(ctx, *bookFile)
	for _, diag := range report.Diagnostics {
		logger.Warn().Err(diag).Msg("book-line-skipped")
	}
	if err != nil {
		logger.Warn().Err(err).Msg("book corpus unavailable, using curated openings")
	}
	logger.Info().
		Int("games", report.Games).
		Int("moves", report.Moves).
		Int("skipped", report.Skipped).
		Int("positions", bk.Len()).
		Msg("book-loaded")
	return bk
}

// newEngine creates a search engine with its own transposition table.
func newEngine(cfg *config.Config, bk *book.Book, logger zerolog.Logger) *search.Engine {
	tt := ttable.NewThreadSafe(cfg.Table.Capacity, cfg.Table.EvictFraction)
	return search.New(*cfg.Search, eval.New(*cfg.Eval), bk, tt, search.WithLogger(logger))
}

// runAnalysis searches the configured position once and prints the move.
func runAnalysis(ctx context.Context, cfg *config.Config, setup gameSetup, rs *rules.RuleSet, bk *book.Book, logger zerolog.Logger) error {
	board, err := newBoard(rs, setup)
	if err != nil {
		return err
	}
	if over, out := board.IsTerminal(); over {
		fmt.Fprintf(cfg.OutputFile, "game over: %s\n", output.DescribeOutcome(out))
		return nil
	}

	logger.Info().
		Str("white", board.DrawbackName(chess.White)).
		Str("black", board.DrawbackName(chess.Black)).
		Str("fen", board.FEN()).
		Msg("analysing")
	res := newEngine(cfg, bk, logger).Search(ctx, board, cfg.Search.MaxDepth, cfg.Search.TimeBudget)
	fmt.Fprintln(cfg.OutputFile, formatResult(res))
	return nil
}

// formatResult renders a search result on one line.
func formatResult(res search.Result) string {
	line := fmt.Sprintf("bestmove %s score %d depth %d nodes %d status %s",
		res.Move, res.Score, res.Depth, res.Nodes, res.Status)
	if res.Degraded {
		line += " degraded"
	}
	return line
}

// printDrawbacks lists every registered drawback with its summary.
func printDrawbacks(w io.Writer, rs *rules.RuleSet) {
	for _, name := range rs.Names() {
		m, _ := rs.Get(name)
		fmt.Fprintf(w, "%-24s %s\n", name, m.Description())
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: drawback [options]\n\n")
	fmt.Fprintf(os.Stderr, "A chess engine for Drawback Chess, where each side plays under a\n")
	fmt.Fprintf(os.Stderr, "handicap and wins by capturing the enemy king.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nUse -list to see the drawbacks accepted by -white and -black.\n")
}
