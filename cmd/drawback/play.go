package main

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/lgbarn/drawback-go/internal/book"
	"github.com/lgbarn/drawback-go/internal/chess"
	"github.com/lgbarn/drawback-go/internal/config"
	"github.com/lgbarn/drawback-go/internal/engine"
	"github.com/lgbarn/drawback-go/internal/errors"
	"github.com/lgbarn/drawback-go/internal/output"
	"github.com/lgbarn/drawback-go/internal/rules"
)

// randomDrawback asks for a drawback picked uniformly per game.
const randomDrawback = "random"

// gameSetup describes the starting point of a game.
type gameSetup struct {
	fen          string // Empty for the initial position
	white, black string // Drawback names, rules.None or randomDrawback
	maxPlies     int
}

// resolveDrawback turns randomDrawback into a registered name.
func resolveDrawback(rs *rules.RuleSet, name string) string {
	if name != randomDrawback {
		return name
	}
	names := rs.Names()
	if len(names) == 0 {
		return rules.None
	}
	return names[frand.Intn(len(names))]
}

// newBoard creates the starting board of setup with its drawbacks assigned.
func newBoard(rs *rules.RuleSet, setup gameSetup) (*engine.Board, error) {
	board := engine.NewBoard(rs)
	if setup.fen != "" {
		var err error
		if board, err = engine.NewBoardFromFEN(setup.fen, rs); err != nil {
			return nil, err
		}
	}
	if err := board.Assign(chess.White, resolveDrawback(rs, setup.white)); err != nil {
		return nil, err
	}
	if err := board.Assign(chess.Black, resolveDrawback(rs, setup.black)); err != nil {
		return nil, err
	}
	return board, nil
}

// playGame plays one game of the engine against itself until it ends or
// reaches the ply limit.
func playGame(ctx context.Context, index int, setup gameSetup, cfg *config.Config, rs *rules.RuleSet, bk *book.Book, logger zerolog.Logger) (output.Record, error) {
	board, err := newBoard(rs, setup)
	if err != nil {
		return output.Record{Index: index}, err
	}
	logger = logger.With().Int("game", index).Logger()
	eng := newEngine(cfg, bk, logger)
	rec := output.Record{
		Index: index,
		FEN:   setup.fen,
		White: board.DrawbackName(chess.White),
		Black: board.DrawbackName(chess.Black),
	}

	for len(rec.Moves) < setup.maxPlies {
		if rec.Over, rec.Outcome = board.IsTerminal(); rec.Over {
			break
		}
		if err := ctx.Err(); err != nil {
			return rec, err
		}
		res := eng.Search(ctx, board, cfg.Search.MaxDepth, cfg.Search.TimeBudget)
		if res.Degraded {
			rec.Degraded++
		}
		if _, err := board.Make(res.Move); err != nil {
			return rec, errors.Wrapf(err, "game %d ply %d", index, len(rec.Moves)+1)
		}
		rec.Moves = append(rec.Moves, res.Move)
	}
	if !rec.Over {
		rec.Over, rec.Outcome = board.IsTerminal()
	}

	event := logger.Info().Int("plies", len(rec.Moves))
	if rec.Over {
		event = event.Str("winner", rec.Outcome.Winner.String()).Str("reason", rec.Outcome.Reason.String())
	}
	event.Msg("game-finished")
	return rec, nil
}

// playGames plays n games, at most limit at a time, and returns their
// records in game order. The first failing game cancels the rest.
func playGames(ctx context.Context, n, limit int, setup gameSetup, cfg *config.Config, rs *rules.RuleSet, bk *book.Book, logger zerolog.Logger) ([]output.Record, error) {
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	records := make([]output.Record, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range records {
		i := i
		g.Go(func() error {
			rec, err := playGame(gctx, i+1, setup, cfg, rs, bk, logger)
			records[i] = rec
			return err
		})
	}
	err := g.Wait()
	return records, err
}

// runSelfPlay plays the requested games and writes each record through gw.
// Text output is followed by a summary line.
func runSelfPlay(ctx context.Context, cfg *config.Config, gw output.GameWriter, setup gameSetup, n, limit int, rs *rules.RuleSet, bk *book.Book, logger zerolog.Logger) error {
	records, err := playGames(ctx, n, limit, setup, cfg, rs, bk, logger)
	for i := range records {
		if r := &records[i]; len(r.Moves) > 0 || r.Over {
			if werr := gw.WriteGame(r); werr != nil && err == nil {
				err = errors.Wrap(werr, "writing game record")
			}
		}
	}
	if cerr := gw.Close(); cerr != nil && err == nil {
		err = errors.Wrap(cerr, "writing game records")
	}
	if _, ok := gw.(*output.TextWriter); ok {
		writeSummary(cfg.OutputFile, records)
	}
	return err
}

// writeSummary prints the win counts over records.
func writeSummary(w io.Writer, records []output.Record) {
	var white, black, unfinished int
	for _, r := range records {
		switch {
		case !r.Over:
			unfinished++
		case r.Outcome.Winner == chess.White:
			white++
		default:
			black++
		}
	}
	fmt.Fprintf(w, "%d game(s): %d won by White, %d won by Black, %d unfinished.\n",
		len(records), white, black, unfinished)
}
