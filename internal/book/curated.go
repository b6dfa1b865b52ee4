package book

import (
	"fmt"
	"strings"

	"github.com/lgbarn/drawback-go/internal/chess"
)

// curatedLines are well-known first moves and replies. The frequency is
// credited to the last move of each line.
var curatedLines = []struct {
	line      string
	frequency int
}{
	{"e2e4", 10},
	{"d2d4", 8},
	{"e2e4 e7e5", 10},
	{"e2e4 c7c5", 9},
	{"e2e4 e7e6", 6},
	{"d2d4 d7d5", 10},
	{"d2d4 g8f6", 9},
	{"d2d4 e7e6", 6},
}

func curatedTable() map[string]map[chess.Move]int {
	table := make(map[string]map[chess.Move]int)
	for _, c := range curatedLines {
		steps, err := replay(c.line, len(strings.Fields(c.line)))
		if err != nil {
			panic(fmt.Sprintf("curated book line %q: %v", c.line, err))
		}
		last := steps[len(steps)-1]
		add(table, last.Key, last.Move, c.frequency)
	}
	return table
}
