package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/lgbarn/drawback-go/internal/chess"
	"github.com/lgbarn/drawback-go/internal/engine"
	drawerrors "github.com/lgbarn/drawback-go/internal/errors"
	"github.com/lgbarn/drawback-go/internal/rules"
	"github.com/lgbarn/drawback-go/internal/testutil"
)

func finishedRecord(t *testing.T) *Record {
	t.Helper()
	return &Record{
		Index:   3,
		White:   rules.Vegan,
		Black:   rules.None,
		Moves:   testutil.MustMoves(t, "e2e4", "f7f6", "d1h5", "g7g6", "h5e8"),
		Over:    true,
		Outcome: engine.Outcome{Winner: chess.White, Reason: engine.KingCaptured},
	}
}

func TestRecordString(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		want   string
	}{
		{
			name:   "finished",
			record: *finishedRecord(t),
			want:   "game 3 [white: " + rules.Vegan + ", black: none]: e2e4 f7f6 d1h5 g7g6 h5e8 => White wins (king captured)",
		},
		{
			name:   "unfinished",
			record: Record{Index: 1, Moves: testutil.MustMoves(t, "d2d4")},
			want:   "game 1 [white: none, black: none]: d2d4 => unfinished after 1 plies",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, tt.record.String(), tt.want)
		})
	}
}

func TestRecordResult(t *testing.T) {
	tests := []struct {
		record      Record
		result      string
		termination string
	}{
		{Record{}, "*", "unterminated"},
		{Record{Over: true, Outcome: engine.Outcome{Winner: chess.White, Reason: engine.KingCaptured}}, "1-0", "king captured"},
		{Record{Over: true, Outcome: engine.Outcome{Winner: chess.Black, Reason: engine.DrawbackLoss}}, "0-1", "drawback loss"},
	}
	for _, tt := range tests {
		testutil.AssertEqual(t, tt.record.Result(), tt.result)
		testutil.AssertEqual(t, tt.record.Termination(), tt.termination)
	}
}

func TestRecordStart(t *testing.T) {
	tests := []struct {
		fen    string
		number int
		side   chess.Colour
	}{
		{"", 1, chess.White},
		{testutil.KingCaptureFEN, 1, chess.Black},
		{"4k3/8/8/8/8/8/8/4K3 w - - 0 17", 17, chess.White},
		{"4k3/8/8/8/8/8/8/4K3 b - - 0 x", 1, chess.Black},
	}
	for _, tt := range tests {
		number, side := Record{FEN: tt.fen}.start()
		testutil.AssertEqual(t, number, tt.number, "fen %q", tt.fen)
		testutil.AssertEqual(t, side, tt.side, "fen %q", tt.fen)
	}
}

func TestPGNWriter_WriteGame(t *testing.T) {
	var buf bytes.Buffer
	w := NewPGNWriter(&buf, 0)
	testutil.AssertNoError(t, w.WriteGame(finishedRecord(t)))
	testutil.AssertNoError(t, w.Close())

	want := `[Event "Drawback self-play"]
[Round "3"]
[White "engine"]
[Black "engine"]
[Result "1-0"]
[WhiteDrawback "` + rules.Vegan + `"]
[BlackDrawback "none"]
[PlyCount "5"]
[Termination "king captured"]

1. e2e4 f7f6 2. d1h5 g7g6 3. h5e8 1-0

`
	testutil.AssertEqual(t, buf.String(), want)
}

func TestPGNWriter_BlackToMoveFromFEN(t *testing.T) {
	r := &Record{
		Index: 1,
		FEN:   testutil.KingCaptureFEN,
		Moves: testutil.MustMoves(t, "f1e1"),
		Over:  true,
		Outcome: engine.Outcome{
			Winner: chess.Black,
			Reason: engine.KingCaptured,
		},
	}
	var buf bytes.Buffer
	testutil.AssertNoError(t, NewPGNWriter(&buf, 0).WriteGame(r))
	testutil.AssertContains(t, buf.String(), "[SetUp \"1\"]\n[FEN \""+testutil.KingCaptureFEN+"\"]\n")
	testutil.AssertContains(t, buf.String(), "\n1... f1e1 0-1\n")
}

func TestPGNWriter_WrapsMovetext(t *testing.T) {
	var moves []string
	for i := 0; i < 10; i++ {
		moves = append(moves, "g1f3", "g8f6", "f3g1", "f6g8")
	}
	r := &Record{Index: 1, Moves: testutil.MustMoves(t, moves...)}

	var buf bytes.Buffer
	testutil.AssertNoError(t, NewPGNWriter(&buf, 40).WriteGame(r))
	movetext := strings.SplitN(buf.String(), "\n\n", 2)[1]
	lines := strings.Split(strings.TrimSpace(movetext), "\n")
	testutil.AssertTrue(t, len(lines) > 1, "movetext not wrapped: %q", movetext)
	for _, line := range lines {
		testutil.AssertTrue(t, len(line) <= 40, "line too long: %q", line)
	}
	last := strings.Fields(lines[len(lines)-1])
	testutil.AssertEqual(t, last[len(last)-1], "*")
}

func TestEscapeTagValue(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{`say "hi"`, `say \"hi\"`},
		{`back\slash`, `back\\slash`},
	}
	for _, tt := range tests {
		testutil.AssertEqual(t, escapeTagValue(tt.in), tt.want)
	}
}

func TestJSONWriter_Batch(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONWriter(&buf)
	testutil.AssertNoError(t, w.WriteGame(finishedRecord(t)))
	testutil.AssertNoError(t, w.WriteGame(&Record{Index: 4, Moves: testutil.MustMoves(t, "e7e8q")}))
	testutil.AssertEqual(t, buf.Len(), 0, "batch writer wrote before Close")
	testutil.AssertNoError(t, w.Close())

	var out JSONOutput
	testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &out))
	testutil.AssertEqual(t, len(out.Games), 2)

	first := out.Games[0]
	testutil.AssertEqual(t, first.Index, 3)
	testutil.AssertEqual(t, first.WhiteDrawback, rules.Vegan)
	testutil.AssertEqual(t, first.Result, "1-0")
	testutil.AssertEqual(t, first.Winner, "white")
	testutil.AssertEqual(t, first.PlyCount, 5)
	testutil.AssertEqual(t, first.Moves[1], JSONMove{MoveNumber: 1, Color: "black", UCI: "f7f6", From: "f7", To: "f6"})
	testutil.AssertEqual(t, first.Moves[4].MoveNumber, 3)

	second := out.Games[1]
	testutil.AssertEqual(t, second.Result, "*")
	testutil.AssertEqual(t, second.Winner, "")
	testutil.AssertEqual(t, second.Moves[0].Promotion, "q")

	// A second Close has nothing left to write.
	buf.Reset()
	testutil.AssertNoError(t, w.Close())
	testutil.AssertEqual(t, buf.Len(), 0)
}

func TestJSONWriter_Single(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONWriterSingle(&buf)
	testutil.AssertNoError(t, w.WriteGame(finishedRecord(t)))
	testutil.AssertTrue(t, buf.Len() > 0, "single writer did not write immediately")

	var game JSONGame
	testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &game))
	testutil.AssertEqual(t, game.Termination, "king captured")
}

func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(Text, &buf, 0)
	testutil.AssertNoError(t, w.WriteGame(finishedRecord(t)))
	testutil.AssertNoError(t, w.Flush())
	testutil.AssertEqual(t, buf.String(), finishedRecord(t).String()+"\n")
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{"text", Text, false},
		{"pgn", PGN, false},
		{"json", JSON, false},
		{"xml", Text, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.name)
			if tt.wantErr {
				testutil.AssertErrorIs(t, err, drawerrors.ErrInvalidConfig)
				return
			}
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, got, tt.want)
			testutil.AssertEqual(t, got.String(), tt.name)
		})
	}

	got, err := ParseFormat("")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, Text)
}

func TestNewWriterKinds(t *testing.T) {
	var buf bytes.Buffer
	if _, ok := NewWriter(PGN, &buf, 0).(*PGNWriter); !ok {
		t.Error("NewWriter(PGN) is not a PGNWriter")
	}
	if _, ok := NewWriter(JSON, &buf, 0).(*JSONWriter); !ok {
		t.Error("NewWriter(JSON) is not a JSONWriter")
	}
	if _, ok := NewWriter(Text, &buf, 0).(*TextWriter); !ok {
		t.Error("NewWriter(Text) is not a TextWriter")
	}
}
