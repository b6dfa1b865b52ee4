// Package output writes finished self-play games as one-line summaries,
// PGN-style records with coordinate movetext, or JSON.
package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/drawback-go/internal/chess"
	"github.com/lgbarn/drawback-go/internal/engine"
	"github.com/lgbarn/drawback-go/internal/rules"
)

// Record is the move list and result of one self-play game.
type Record struct {
	Index    int
	FEN      string // Starting position; empty for the initial position
	White    string // Drawback names
	Black    string
	Moves    []chess.Move
	Over     bool
	Outcome  engine.Outcome
	Degraded int // Moves chosen by the random fallback
}

// String renders the record on one line.
func (r Record) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "game %d [white: %s, black: %s]:", r.Index, DrawbackLabel(r.White), DrawbackLabel(r.Black))
	for _, m := range r.Moves {
		sb.WriteByte(' ')
		sb.WriteString(m.String())
	}
	if r.Over {
		fmt.Fprintf(&sb, " => %s", DescribeOutcome(r.Outcome))
	} else {
		fmt.Fprintf(&sb, " => unfinished after %d plies", len(r.Moves))
	}
	return sb.String()
}

// Result returns the PGN result token: "1-0", "0-1" or "*".
func (r Record) Result() string {
	switch {
	case !r.Over:
		return "*"
	case r.Outcome.Winner == chess.White:
		return "1-0"
	default:
		return "0-1"
	}
}

// Termination describes how the game stopped.
func (r Record) Termination() string {
	if !r.Over {
		return "unterminated"
	}
	return r.Outcome.Reason.String()
}

// start returns the full move number and side to move of the first ply.
// Fields missing from the FEN fall back to move 1 with White to move.
func (r Record) start() (int, chess.Colour) {
	fields := strings.Fields(r.FEN)
	side := chess.White
	if len(fields) > 1 && fields[1] == "b" {
		side = chess.Black
	}
	number := 1
	if len(fields) > 5 {
		if n, err := strconv.Atoi(fields[5]); err == nil && n > 0 {
			number = n
		}
	}
	return number, side
}

// DrawbackLabel renders a drawback name, spelling out the empty one.
func DrawbackLabel(name string) string {
	if name == rules.None {
		return "none"
	}
	return name
}

// DescribeOutcome renders a finished game's result.
func DescribeOutcome(out engine.Outcome) string {
	return fmt.Sprintf("%s wins (%s)", out.Winner, out.Reason)
}
