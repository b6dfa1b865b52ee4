package book

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/lgbarn/drawback-go/internal/chess"
	"github.com/lgbarn/drawback-go/internal/engine"
	"github.com/lgbarn/drawback-go/internal/errors"
	"github.com/lgbarn/drawback-go/internal/worker"
)

// MaxLineLength is the longest corpus line accepted, in bytes. Longer
// lines are skipped with a diagnostic.
const MaxLineLength = 64 * 1024

var (
	movePattern   = regexp.MustCompile(`^[a-h][1-8][a-h][1-8][qrbn]?$`)
	numberPattern = regexp.MustCompile(`^[0-9]+\.+$`)
	resultTokens  = map[string]bool{"1-0": true, "0-1": true, "1/2-1/2": true, "*": true}
)

// LoadCorpus adds the games read from r, one per line in coordinate
// notation ("e2e4 e7e5 g1f3 ..."). Move numbers, results, blank lines and
// '#' comments are ignored. Each line is replayed from the initial position
// for at most PlyLimit plies; a malformed or illegal move ends its line and
// is reported, keeping the moves before it. A line longer than
// MaxLineLength is reported and skipped whole. Lines are replayed in
// parallel and merged in line order. A read error or a cancelled ctx
// returns the report for the lines handled so far together with the error.
func (b *Book) LoadCorpus(ctx context.Context, r io.Reader) (Report, error) {
	return b.loadCorpus(ctx, r, "")
}

func (b *Book) loadCorpus(ctx context.Context, r io.Reader, name string) (Report, error) {
	items, overlong, readErr := readLines(r)

	limit := b.cfg.PlyLimit
	results, runErr := worker.Run(ctx, items, func(item worker.WorkItem) worker.ProcessResult {
		if overlong[item.Index] {
			return worker.ProcessResult{Index: item.Index, Err: &errors.ParseError{
				Err:      errors.ErrParseFailure,
				File:     name,
				Line:     item.Index,
				Column:   MaxLineLength + 1,
				Expected: fmt.Sprintf("line of at most %d bytes", MaxLineLength),
				Got:      "longer line",
			}}
		}
		steps, err := replay(item.Line, limit)
		if pe, ok := err.(*errors.ParseError); ok {
			pe.File = name
			pe.Line = item.Index
		}
		return worker.ProcessResult{Index: item.Index, Steps: steps, Err: err}
	}, worker.WithWorkers(b.cfg.Workers), worker.WithBufferSize(2*b.cfg.Workers))

	report := Report{Lines: len(items)}
	b.mu.Lock()
	for _, res := range results {
		if len(res.Steps) > 0 {
			report.Games++
		}
		for _, s := range res.Steps {
			add(b.corpus, s.Key, s.Move, 1)
		}
		report.Moves += len(res.Steps)
		if res.Err != nil {
			report.Skipped++
			report.Diagnostics = append(report.Diagnostics, res.Err)
		}
	}
	b.mu.Unlock()

	if runErr != nil {
		return report, errors.Wrap(runErr, "loading book corpus")
	}
	if readErr != nil {
		return report, errors.Wrap(readErr, "reading book corpus")
	}
	return report, nil
}

// readLines returns the non-blank, non-comment lines of r with their
// 1-based line numbers. Lines longer than MaxLineLength are returned empty
// and flagged in overlong.
func readLines(r io.Reader) (items []worker.WorkItem, overlong map[int]bool, err error) {
	br := bufio.NewReader(r)
	overlong = make(map[int]bool)
	for number := 1; ; number++ {
		raw, tooLong, rerr := readLine(br)
		if tooLong {
			overlong[number] = true
			items = append(items, worker.WorkItem{Index: number})
		} else {
			line := raw
			if i := strings.IndexByte(line, '#'); i >= 0 {
				line = line[:i]
			}
			if strings.TrimSpace(line) != "" {
				items = append(items, worker.WorkItem{Index: number, Line: line})
			}
		}
		if rerr == io.EOF {
			return items, overlong, nil
		}
		if rerr != nil {
			return items, overlong, rerr
		}
	}
}

// readLine reads one line without its terminator. Once a line passes
// MaxLineLength the rest of it is discarded and tooLong is set.
func readLine(br *bufio.Reader) (string, bool, error) {
	var buf []byte
	tooLong := false
	for {
		chunk, err := br.ReadSlice('\n')
		if !tooLong {
			buf = append(buf, chunk...)
			if len(bytes.TrimRight(buf, "\r\n")) > MaxLineLength {
				tooLong, buf = true, nil
			}
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		return string(bytes.TrimRight(buf, "\r\n")), tooLong, err
	}
}

type token struct {
	text   string
	column int // 1-based
}

func tokenize(line string) []token {
	var tokens []token
	start := -1
	for i, r := range line {
		space := r == ' ' || r == '\t' || r == '\r'
		switch {
		case space && start >= 0:
			tokens = append(tokens, token{line[start:i], start + 1})
			start = -1
		case !space && start < 0:
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, token{line[start:], start + 1})
	}
	return tokens
}

// replay plays the moves of line from the initial position without
// drawbacks and returns the key and move of each ply, up to limit plies.
func replay(line string, limit int) ([]worker.Step, error) {
	board := engine.NewBoard(nil)
	var steps []worker.Step
	for _, tok := range tokenize(line) {
		if len(steps) >= limit {
			break
		}
		if numberPattern.MatchString(tok.text) || resultTokens[tok.text] {
			continue
		}
		if !movePattern.MatchString(tok.text) {
			return steps, &errors.ParseError{
				Err:      errors.ErrParseFailure,
				Column:   tok.column,
				Expected: "coordinate move",
				Got:      tok.text,
			}
		}
		m, err := chess.ParseMove(tok.text)
		if err != nil {
			return steps, &errors.ParseError{Err: err, Column: tok.column, Got: tok.text}
		}
		m = board.Normalize(m)
		key := board.Key()
		if _, err := board.Make(m); err != nil {
			return steps, &errors.ParseError{
				Err:      err,
				Column:   tok.column,
				Expected: "legal move",
				Got:      tok.text,
			}
		}
		steps = append(steps, worker.Step{Key: key, Move: m})
	}
	return steps, nil
}
