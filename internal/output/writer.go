package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lgbarn/drawback-go/internal/errors"
)

// Format selects how records are written.
type Format int

const (
	Text Format = iota // One line per game
	PGN
	JSON
)

// String returns the name accepted by ParseFormat.
func (f Format) String() string {
	switch f {
	case PGN:
		return "pgn"
	case JSON:
		return "json"
	}
	return "text"
}

// ParseFormat parses "text", "pgn" or "json".
func ParseFormat(name string) (Format, error) {
	switch name {
	case "", "text":
		return Text, nil
	case "pgn":
		return PGN, nil
	case "json":
		return JSON, nil
	}
	return Text, errors.Wrapf(errors.ErrInvalidConfig, "unknown output format %q", name)
}

// GameWriter is the interface for writing games to output.
type GameWriter interface {
	// WriteGame writes a single game to the output.
	WriteGame(r *Record) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close writes any pending output. It does not close the underlying writer.
	Close() error
}

// NewWriter returns a writer for format. lineLength limits PGN movetext.
func NewWriter(format Format, w io.Writer, lineLength int) GameWriter {
	switch format {
	case PGN:
		return NewPGNWriter(w, lineLength)
	case JSON:
		return NewJSONWriter(w)
	}
	return NewTextWriter(w)
}

// TextWriter writes each game on one line.
type TextWriter struct {
	w io.Writer
}

// NewTextWriter creates a new one-line writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w}
}

// WriteGame writes r as a single line.
func (tw *TextWriter) WriteGame(r *Record) error {
	_, err := fmt.Fprintln(tw.w, r)
	return err
}

// Flush is a no-op; lines are written immediately.
func (tw *TextWriter) Flush() error { return nil }

// Close is a no-op.
func (tw *TextWriter) Close() error { return nil }

// PGNWriter writes games in PGN format with coordinate movetext.
type PGNWriter struct {
	w          io.Writer
	lineLength int
}

// NewPGNWriter creates a new PGN writer.
func NewPGNWriter(w io.Writer, lineLength int) *PGNWriter {
	return &PGNWriter{
		w:          w,
		lineLength: lineLength,
	}
}

// WriteGame writes a game in PGN format.
func (pw *PGNWriter) WriteGame(r *Record) error {
	return writePGN(pw.w, r, pw.lineLength)
}

// Flush flushes the PGN writer (no-op for PGN as it writes immediately).
func (pw *PGNWriter) Flush() error {
	return nil
}

// Close closes the PGN writer.
func (pw *PGNWriter) Close() error {
	return nil
}

// JSONWriter writes games in JSON format.
// It buffers games and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w      io.Writer
	games  []*Record
	single bool // If true, write each game immediately instead of batching
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches games and writes them as an array on Close().
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

// NewJSONWriterSingle creates a JSON writer that writes each game immediately.
func NewJSONWriterSingle(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w, single: true}
}

// WriteGame buffers a game for JSON output (or writes immediately in single mode).
func (jw *JSONWriter) WriteGame(r *Record) error {
	if jw.single {
		enc := json.NewEncoder(jw.w)
		enc.SetIndent("", "  ")
		return enc.Encode(GameToJSON(r))
	}
	jw.games = append(jw.games, r)
	return nil
}

// Flush writes all buffered games as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.games) == 0 {
		return nil
	}

	out := &JSONOutput{
		Games: make([]*JSONGame, 0, len(jw.games)),
	}
	for _, r := range jw.games {
		out.Games = append(out.Games, GameToJSON(r))
	}

	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	err := enc.Encode(out)

	// Clear buffer after writing
	jw.games = jw.games[:0]

	return err
}

// Close flushes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
