package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/drawback-go/internal/chess"
)

// DefaultLineLength is the movetext width used when none is given.
const DefaultLineLength = 80

// lineWriter writes space-separated tokens, wrapping before maxLineLength.
type lineWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

func newLineWriter(w io.Writer, maxLineLength int) *lineWriter {
	if maxLineLength <= 0 {
		maxLineLength = DefaultLineLength
	}
	return &lineWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a token, adding a space separator or a line break first.
func (o *lineWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}
	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine ends the current line.
func (o *lineWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// writePGN writes r as a tag section, a blank line, the movetext and a
// blank line separating it from the next game.
func writePGN(w io.Writer, r *Record, lineLength int) error {
	tags := [][2]string{
		{"Event", "Drawback self-play"},
		{"Round", fmt.Sprint(r.Index)},
		{"White", "engine"},
		{"Black", "engine"},
		{"Result", r.Result()},
		{"WhiteDrawback", DrawbackLabel(r.White)},
		{"BlackDrawback", DrawbackLabel(r.Black)},
		{"PlyCount", fmt.Sprint(len(r.Moves))},
		{"Termination", r.Termination()},
	}
	if r.FEN != "" {
		tags = append(tags, [2]string{"SetUp", "1"}, [2]string{"FEN", r.FEN})
	}
	for _, tag := range tags {
		if _, err := fmt.Fprintf(w, "[%s \"%s\"]\n", tag[0], escapeTagValue(tag[1])); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	ow := newLineWriter(w, lineLength)
	moveNum, side := r.start()
	for i, m := range r.Moves {
		if side == chess.White {
			ow.Write(fmt.Sprintf("%d.", moveNum))
		} else if i == 0 {
			ow.Write(fmt.Sprintf("%d...", moveNum))
		}
		ow.Write(m.String())
		if side == chess.Black {
			moveNum++
		}
		side = side.Opposite()
	}
	ow.Write(r.Result())
	ow.NewLine()
	_, err := fmt.Fprintln(w)
	return err
}

// escapeTagValue escapes backslashes and quotes in tag values.
func escapeTagValue(s string) string {
	if !strings.ContainsAny(s, "\\\"") {
		return s
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}
