package search

import (
	"sort"

	"github.com/lgbarn/drawback-go/internal/chess"
)

type scoredMove struct {
	move  chess.Move
	score int
}

// order returns moves sorted by ordering score, best first. Equal scores
// keep generation order.
func (s *searcher) order(moves []chess.Move, ply int, hint chess.Move) []chess.Move {
	bonuses := s.bookBonuses()
	scored := make([]scoredMove, len(moves))
	for i, m := range moves {
		scored[i] = scoredMove{move: m, score: s.scoreMove(m, ply, hint, bonuses)}
	}
	return sortScored(scored)
}

// orderCaptures sorts captures by victim value less a tenth of the
// attacker's value.
func (s *searcher) orderCaptures(moves []chess.Move) []chess.Move {
	pos := s.board.Position()
	scored := make([]scoredMove, len(moves))
	for i, m := range moves {
		scored[i] = scoredMove{move: m, score: s.captureScore(pos, m)}
	}
	return sortScored(scored)
}

func sortScored(scored []scoredMove) []chess.Move {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	out := make([]chess.Move, len(scored))
	for i, sm := range scored {
		out[i] = sm.move
	}
	return out
}

// scoreMove ranks m for the side to move: king capture, the table's move,
// captures, killers, history, checks, then opening pawn moves. A king
// capture deliberately ranks above the table's move since it ends the game.
func (s *searcher) scoreMove(m chess.Move, ply int, hint chess.Move, bonuses map[chess.Move]int) int {
	pos := s.board.Position()
	victim := chess.ExtractPiece(pos.CapturedBy(m))
	if victim == chess.King {
		return s.cfg.KingCaptureBonus
	}
	if m == hint {
		return s.cfg.TTMoveBonus
	}

	score := bonuses[m]
	if victim != chess.Empty {
		score += s.captureScore(pos, m)
	} else {
		switch m {
		case s.killers[ply][0]:
			score += s.cfg.KillerBonus[0]
		case s.killers[ply][1]:
			score += s.cfg.KillerBonus[1]
		}
		score += s.history[m.From][m.To]
	}
	if givesCheck(pos, m) {
		score += s.cfg.CheckBonus
	}
	return score + s.openingBonus(pos, m)
}

func (s *searcher) captureScore(pos *chess.Position, m chess.Move) int {
	victim := chess.ExtractPiece(pos.CapturedBy(m))
	if victim == chess.King {
		return s.cfg.KingCaptureBonus
	}
	attacker := chess.ExtractPiece(pos.PieceAt(m.From))
	return s.cfg.CaptureBonus + s.ev.Value(victim) - s.ev.Value(attacker)/10
}

// openingBonus favours pawn moves from the starting rank in the centre
// early in the game.
func (s *searcher) openingBonus(pos *chess.Position, m chess.Move) int {
	if pos.Ply() >= s.cfg.OpeningPlies {
		return 0
	}
	cp := pos.PieceAt(m.From)
	if chess.ExtractPiece(cp) != chess.Pawn {
		return 0
	}
	home := 1
	if chess.ExtractColour(cp) == chess.Black {
		home = 6
	}
	if m.From.Rank() != home {
		return 0
	}
	switch m.From.File() {
	case 3, 4:
		return s.cfg.CentralPawnBonus
	case 2, 5:
		return s.cfg.FlankCentreBonus
	}
	return 0
}

// bookBonuses returns the book's ordering bonuses for the current position
// while it is within the book's ply range.
func (s *searcher) bookBonuses() map[chess.Move]int {
	if s.book == nil || s.board.Ply() >= s.book.PlyLimit() {
		return nil
	}
	return s.book.Bonuses(s.board.Key())
}

// remember records a quiet move that caused a cutoff.
func (s *searcher) remember(m chess.Move, depth, ply int) {
	if k := &s.killers[ply]; k[0] != m {
		k[1] = k[0]
		k[0] = m
	}
	s.history[m.From][m.To] = min(s.history[m.From][m.To]+depth*depth, s.cfg.HistoryLimit)
}

// givesCheck reports whether m leaves the enemy king attacked.
func givesCheck(pos *chess.Position, m chess.Move) bool {
	mover := chess.ExtractColour(pos.PieceAt(m.From))
	after := *pos
	after.Play(m)
	king, ok := after.KingSquare(mover.Opposite())
	return ok && after.IsAttacked(king, mover)
}
