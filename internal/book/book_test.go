package book

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/lgbarn/drawback-go/internal/chess"
	"github.com/lgbarn/drawback-go/internal/config"
	"github.com/lgbarn/drawback-go/internal/engine"
	drawerrors "github.com/lgbarn/drawback-go/internal/errors"
	"github.com/lgbarn/drawback-go/internal/testutil"
	"github.com/lgbarn/drawback-go/internal/worker"
)

// keyAfter returns the position key after playing moves from the start.
func keyAfter(t *testing.T, moves ...string) string {
	t.Helper()
	b := engine.NewBoard(nil)
	for _, m := range testutil.MustMoves(t, moves...) {
		if _, err := b.Make(m); err != nil {
			t.Fatalf("Make(%s) error = %v", m, err)
		}
	}
	return b.Key()
}

func summarize(candidates []Candidate) map[string]int {
	out := make(map[string]int, len(candidates))
	for _, c := range candidates {
		out[c.Move.String()] = c.Frequency
	}
	return out
}

func moveTexts(candidates []Candidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.Move.String()
	}
	return out
}

func TestCuratedTable(t *testing.T) {
	bk := New()
	tests := []struct {
		name  string
		moves []string
		want  []string
	}{
		{"initial position", nil, []string{"e2e4", "d2d4"}},
		{"after e4", []string{"e2e4"}, []string{"e7e5", "c7c5", "e7e6"}},
		{"after d4", []string{"d2d4"}, []string{"d7d5", "g8f6", "e7e6"}},
		{"out of book", []string{"a2a3"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, moveTexts(bk.MovesFor(keyAfter(t, tt.moves...))), tt.want)
		})
	}

	m, ok := bk.BestMove(keyAfter(t))
	testutil.AssertTrue(t, ok, "no best move from the start")
	testutil.AssertEqual(t, m.String(), "e2e4")

	_, ok = bk.BestMove(keyAfter(t, "h2h4"))
	testutil.AssertFalse(t, ok, "best move out of book")
}

func TestWithoutCurated(t *testing.T) {
	bk := New(WithoutCurated())
	testutil.AssertEqual(t, bk.Len(), 0)
	if _, ok := bk.BestMove(keyAfter(t)); ok {
		t.Errorf("empty book has a best move")
	}
}

func TestLoadCorpus(t *testing.T) {
	corpus := `# sample games
1. e2e4 e7e5 2. g1f3 b8c6 1-0

e2e4 c7c5 g1f3
d2d4 d7d5 c2c4 *
e2e4 e7e5 f1c4   # comment after moves
`
	bk := New()
	report, err := bk.LoadCorpus(context.Background(), strings.NewReader(corpus))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, report, Report{Lines: 4, Games: 4, Moves: 13})

	testutil.AssertEqual(t, summarize(bk.MovesFor(keyAfter(t))), map[string]int{"e2e4": 13, "d2d4": 9})
	testutil.AssertEqual(t, summarize(bk.MovesFor(keyAfter(t, "e2e4"))), map[string]int{"e7e5": 12, "c7c5": 10, "e7e6": 6})
	testutil.AssertEqual(t, summarize(bk.MovesFor(keyAfter(t, "e2e4", "e7e5"))), map[string]int{"g1f3": 1, "f1c4": 1})

	// Ties are broken by move text.
	testutil.AssertEqual(t, moveTexts(bk.MovesFor(keyAfter(t, "e2e4", "e7e5"))), []string{"f1c4", "g1f3"})
}

func TestLoadCorpusPlyLimit(t *testing.T) {
	cfg := *config.NewBookConfig()
	cfg.PlyLimit = 2
	bk := New(WithConfig(cfg), WithoutCurated())

	report, err := bk.LoadCorpus(context.Background(), strings.NewReader("e2e4 e7e5 g1f3 b8c6\n"))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, report.Moves, 2)
	testutil.AssertEqual(t, bk.Len(), 2)
	testutil.AssertEqual(t, len(bk.MovesFor(keyAfter(t, "e2e4", "e7e5"))), 0)
	testutil.AssertEqual(t, bk.PlyLimit(), 2)
}

func TestLoadCorpusSkipsBadLines(t *testing.T) {
	corpus := "e2e4 e7e5\n" +
		"e2e4 zz99 g1f3\n" +
		"e2e5 e7e5\n" +
		"d2d4 d7d5\n"
	bk := New(WithoutCurated())
	report, err := bk.LoadCorpus(context.Background(), strings.NewReader(corpus))
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, report.Lines, 4)
	testutil.AssertEqual(t, report.Games, 3)
	testutil.AssertEqual(t, report.Skipped, 2)
	if len(report.Diagnostics) != 2 {
		t.Fatalf("Diagnostics = %v; want 2", report.Diagnostics)
	}

	var malformed *drawerrors.ParseError
	if !errors.As(report.Diagnostics[0], &malformed) {
		t.Fatalf("Diagnostics[0] = %T; want *ParseError", report.Diagnostics[0])
	}
	testutil.AssertEqual(t, malformed.Line, 2)
	testutil.AssertEqual(t, malformed.Column, 6)
	testutil.AssertEqual(t, malformed.Got, "zz99")
	testutil.AssertErrorIs(t, malformed, drawerrors.ErrParseFailure)

	var illegal *drawerrors.ParseError
	if !errors.As(report.Diagnostics[1], &illegal) {
		t.Fatalf("Diagnostics[1] = %T; want *ParseError", report.Diagnostics[1])
	}
	testutil.AssertEqual(t, illegal.Line, 3)
	testutil.AssertErrorIs(t, illegal, drawerrors.ErrIllegalMove)

	// The bad line keeps the moves before its error; the rest still load.
	testutil.AssertEqual(t, summarize(bk.MovesFor(keyAfter(t))), map[string]int{"e2e4": 2, "d2d4": 1})
	testutil.AssertEqual(t, summarize(bk.MovesFor(keyAfter(t, "d2d4"))), map[string]int{"d7d5": 1})
}

func TestLoadCorpusSkipsOverlongLine(t *testing.T) {
	corpus := "d2d4 d7d5\n" +
		strings.Repeat("e2e4 ", MaxLineLength/5+100) + "\n" +
		"g1f3 g8f6\n" +
		"c2c4 e7e5\n"
	bk := New(WithoutCurated())
	report, err := bk.LoadCorpus(context.Background(), strings.NewReader(corpus))
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, report.Lines, 4)
	testutil.AssertEqual(t, report.Games, 3)
	testutil.AssertEqual(t, report.Skipped, 1)
	if len(report.Diagnostics) != 1 {
		t.Fatalf("Diagnostics = %v; want 1", report.Diagnostics)
	}
	var pe *drawerrors.ParseError
	if !errors.As(report.Diagnostics[0], &pe) {
		t.Fatalf("Diagnostics[0] = %T; want *ParseError", report.Diagnostics[0])
	}
	testutil.AssertEqual(t, pe.Line, 2)
	testutil.AssertErrorIs(t, pe, drawerrors.ErrParseFailure)

	// Lines after the long one still load.
	testutil.AssertEqual(t, summarize(bk.MovesFor(keyAfter(t))), map[string]int{"d2d4": 1, "g1f3": 1, "c2c4": 1})
}

func TestReadLine(t *testing.T) {
	long := strings.Repeat("a", MaxLineLength+1)
	exact := strings.Repeat("b", MaxLineLength)
	items, overlong, err := readLines(strings.NewReader("x\r\n" + long + "\n" + exact + "\n# note\nlast"))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(items), 4)
	testutil.AssertEqual(t, items[0], worker.WorkItem{Index: 1, Line: "x"})
	testutil.AssertEqual(t, items[1], worker.WorkItem{Index: 2})
	testutil.AssertEqual(t, overlong, map[int]bool{2: true})
	testutil.AssertEqual(t, len(items[2].Line), MaxLineLength)
	testutil.AssertEqual(t, items[3], worker.WorkItem{Index: 5, Line: "last"})
}

func TestLoadCorpusCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bk := New(WithoutCurated())
	report, err := bk.LoadCorpus(ctx, strings.NewReader("e2e4 e7e5\nd2d4 d7d5\n"))
	testutil.AssertErrorIs(t, err, context.Canceled)
	testutil.AssertEqual(t, report.Moves, 0)
	testutil.AssertEqual(t, bk.Len(), 0)
}

func TestLoadCorpusReaderFailure(t *testing.T) {
	errBoom := errors.New("disk on fire")
	r := io.MultiReader(strings.NewReader("e2e4 c7c5\n"), iotest.ErrReader(errBoom))

	bk := New()
	report, err := bk.LoadCorpus(context.Background(), r)
	testutil.AssertErrorIs(t, err, errBoom)
	testutil.AssertEqual(t, report.Games, 1)

	// Curated entries survive, and lines read before the failure count.
	testutil.AssertEqual(t, summarize(bk.MovesFor(keyAfter(t))), map[string]int{"e2e4": 11, "d2d4": 8})
	testutil.AssertEqual(t, moveTexts(bk.MovesFor(keyAfter(t, "e2e4"))), []string{"c7c5", "e7e5", "e7e6"})
}

func TestLoadCorpusIsDeterministic(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 200; i++ {
		switch i % 4 {
		case 0:
			sb.WriteString("e2e4 e7e5 g1f3 b8c6 f1b5\n")
		case 1:
			sb.WriteString("d2d4 g8f6 c2c4 e7e6\n")
		case 2:
			sb.WriteString("e2e4 c7c5 bogus\n")
		case 3:
			sb.WriteString("c2c4 e7e5 b1c3\n")
		}
	}
	corpus := sb.String()

	load := func(workers int) (*Book, Report) {
		cfg := *config.NewBookConfig()
		cfg.Workers = workers
		bk := New(WithConfig(cfg))
		report, err := bk.LoadCorpus(context.Background(), strings.NewReader(corpus))
		testutil.AssertNoError(t, err)
		return bk, report
	}

	serial, serialReport := load(1)
	parallel, parallelReport := load(8)
	testutil.AssertEqual(t, parallelReport.Moves, serialReport.Moves)
	testutil.AssertEqual(t, len(parallelReport.Diagnostics), 50)
	for i := range serialReport.Diagnostics {
		testutil.AssertEqual(t, parallelReport.Diagnostics[i].Error(), serialReport.Diagnostics[i].Error())
	}
	for _, moves := range [][]string{nil, {"e2e4"}, {"d2d4", "g8f6"}, {"c2c4"}} {
		key := keyAfter(t, moves...)
		testutil.AssertEqual(t, parallel.MovesFor(key), serial.MovesFor(key))
	}
}

func TestLoadCorpusFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.txt")
	if err := os.WriteFile(path, []byte("e2e4 e7e5\ng1f3 e7e9\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	bk := New(WithoutCurated())
	report, err := bk.LoadCorpusFile(context.Background(), path)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, report.Games, 2)
	if len(report.Diagnostics) != 1 {
		t.Fatalf("Diagnostics = %v; want 1", report.Diagnostics)
	}
	testutil.AssertContains(t, report.Diagnostics[0].Error(), path+":2:6")

	_, err = bk.LoadCorpusFile(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	testutil.AssertError(t, err)
}

func TestBonuses(t *testing.T) {
	bk := New()
	bonuses := bk.Bonuses(keyAfter(t))
	e2e4 := testutil.MustMoves(t, "e2e4")[0]
	d2d4 := testutil.MustMoves(t, "d2d4")[0]

	bonus := config.NewBookConfig().Bonus
	testutil.AssertEqual(t, bonuses, map[chess.Move]int{e2e4: bonus, d2d4: bonus * 8 / 10})
	if bk.Bonuses(keyAfter(t, "a2a3")) != nil {
		t.Errorf("Bonuses out of book should be nil")
	}
}

func TestBias(t *testing.T) {
	bk := New()
	weights := bk.Bias(keyAfter(t))
	testutil.AssertEqual(t, weights, map[chess.Square]float64{
		testutil.MustSquare(t, "e4"): 1,
		testutil.MustSquare(t, "d4"): 0.8,
	})
	for sq, w := range bk.Bias(keyAfter(t, "e2e4")) {
		if w <= 0 || w > 1 {
			t.Errorf("weight of %v = %v; want in (0,1]", sq, w)
		}
	}
	if bk.Bias(keyAfter(t, "a2a3")) != nil {
		t.Errorf("Bias out of book should be nil")
	}

	cfg := *config.NewBookConfig()
	cfg.BiasMoves = 1
	testutil.AssertEqual(t, len(New(WithConfig(cfg)).Bias(keyAfter(t, "e2e4"))), 1)
}

func TestTokenize(t *testing.T) {
	var got []string
	for _, tok := range tokenize("  1. e2e4\te7e5  ") {
		got = append(got, fmt.Sprintf("%s@%d", tok.text, tok.column))
	}
	testutil.AssertEqual(t, got, []string{"1.@3", "e2e4@6", "e7e5@11"})
}
