package output

import (
	"github.com/lgbarn/drawback-go/internal/chess"
)

// JSONGame represents a game in JSON format.
type JSONGame struct {
	Index         int        `json:"index"`
	WhiteDrawback string     `json:"whiteDrawback,omitempty"`
	BlackDrawback string     `json:"blackDrawback,omitempty"`
	InitialFEN    string     `json:"initialFEN,omitempty"`
	Moves         []JSONMove `json:"moves"`
	Result        string     `json:"result"`
	Termination   string     `json:"termination"`
	Winner        string     `json:"winner,omitempty"`
	PlyCount      int        `json:"plyCount"`
	Degraded      int        `json:"degraded,omitempty"`
}

// JSONMove represents a move in JSON format.
type JSONMove struct {
	MoveNumber int    `json:"moveNumber"`
	Color      string `json:"color"` // "white" or "black"
	UCI        string `json:"uci"`
	From       string `json:"from"`
	To         string `json:"to"`
	Promotion  string `json:"promotion,omitempty"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games []*JSONGame `json:"games"`
}

// GameToJSON converts a record to its JSON form.
func GameToJSON(r *Record) *JSONGame {
	jg := &JSONGame{
		Index:         r.Index,
		WhiteDrawback: r.White,
		BlackDrawback: r.Black,
		InitialFEN:    r.FEN,
		Moves:         make([]JSONMove, 0, len(r.Moves)),
		Result:        r.Result(),
		Termination:   r.Termination(),
		PlyCount:      len(r.Moves),
		Degraded:      r.Degraded,
	}
	if r.Over {
		jg.Winner = colorName(r.Outcome.Winner)
	}

	moveNum, side := r.start()
	for _, m := range r.Moves {
		jm := JSONMove{
			MoveNumber: moveNum,
			Color:      colorName(side),
			UCI:        m.String(),
			From:       m.From.String(),
			To:         m.To.String(),
		}
		if m.Promotion != chess.Empty {
			jm.Promotion = jm.UCI[len(jm.UCI)-1:]
		}
		jg.Moves = append(jg.Moves, jm)
		if side == chess.Black {
			moveNum++
		}
		side = side.Opposite()
	}
	return jg
}

func colorName(c chess.Colour) string {
	if c == chess.White {
		return "white"
	}
	return "black"
}
