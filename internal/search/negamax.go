package search

import (
	"context"
	stderrors "errors"

	"github.com/rs/zerolog"
	"golang.org/x/exp/constraints"
	"lukechampine.com/frand"

	"github.com/lgbarn/drawback-go/internal/book"
	"github.com/lgbarn/drawback-go/internal/chess"
	"github.com/lgbarn/drawback-go/internal/config"
	"github.com/lgbarn/drawback-go/internal/engine"
	"github.com/lgbarn/drawback-go/internal/errors"
	"github.com/lgbarn/drawback-go/internal/eval"
	"github.com/lgbarn/drawback-go/internal/ttable"
)

const infinity = ttable.Infinity

// quiescenceMargin lets a capture by a more valuable piece through when
// the exchange loses at most this much.
const quiescenceMargin = 50

// searcher holds the state of one top-level search.
type searcher struct {
	cfg    config.SearchConfig
	ev     *eval.Evaluator
	book   *book.Book
	tt     *ttable.ThreadSafe
	logger zerolog.Logger

	ctx    context.Context
	halted bool
	board  *engine.Board
	handle *Handle
	mate   int

	killers [][2]chess.Move
	history [64][64]int
	failed  int
}

// run iterates depth 1..maxDepth and returns the result of the last depth
// that completed.
func (s *searcher) run(maxDepth int) (res Result) {
	res = Result{Move: chess.NullMove, Status: Complete}
	defer func() {
		res.Nodes = s.handle.Nodes()
		if r := recover(); r != nil {
			s.logger.Error().Interface("cause", r).Msg("search-aborted")
			res.Move, res.Degraded = chess.NullMove, true
		}
	}()

	if over, out := s.board.Decided(); over {
		res.Score = s.terminal(out, 0)
		return res
	}
	root := s.board.LegalMoves(s.board.ToMove())
	if len(root) == 0 {
		res.Score = -s.mate
		return res
	}
	if m, ok := s.board.KingCapture(); ok {
		s.handle.nodes.Add(1)
		res.Move, res.Score = m, s.mate
		s.logger.Debug().Str("move", m.String()).Msg("king-capture")
		return res
	}
	s.applyBookBias()

	prev := 0
	for depth := 1; depth <= maxDepth; depth++ {
		s.handle.depth.Store(int32(depth))
		alpha, beta := -infinity, infinity
		if depth > 1 {
			alpha, beta = prev-s.cfg.AspirationWindow, prev+s.cfg.AspirationWindow
		}
		score, move := s.root(root, depth, alpha, beta, res.Move)
		if !s.halted && !move.IsNull() && (score <= alpha || score >= beta) {
			s.logger.Debug().Int("depth", depth).Int("score", score).Msg("aspiration-research")
			score, move = s.root(root, depth, -infinity, infinity, res.Move)
		}
		if s.halted || move.IsNull() {
			break
		}
		prev = score
		res.Move, res.Score, res.Depth = move, score, depth
		s.logger.Debug().
			Int("depth", depth).
			Int("score", score).
			Uint64("nodes", s.handle.Nodes()).
			Str("move", move.String()).
			Msg("depth-complete")
		if abs(score) >= s.mate-s.cfg.MaxPly {
			break
		}
	}

	if s.halted {
		res.Status = Cancelled
		if stderrors.Is(s.ctx.Err(), context.DeadlineExceeded) {
			res.Status = TimedOut
		}
		s.logger.Info().
			Str("status", res.Status.String()).
			Int("depth", res.Depth).
			Msg("search-stopped")
	}
	if res.Move.IsNull() {
		res.Move, res.Degraded = root[frand.Intn(len(root))], true
		res.Score = 0
		s.logger.Warn().
			Str("move", res.Move.String()).
			Int("failed", s.failed).
			Msg("random-fallback")
	}
	return res
}

// applyBookBias leans the evaluator toward the book's squares while the
// position is still in book range.
func (s *searcher) applyBookBias() {
	if s.book == nil || s.board.Ply() >= s.book.PlyLimit() {
		return
	}
	if weights := s.book.Bias(s.board.Key()); weights != nil {
		s.ev = s.ev.WithBias(weights)
	}
}

// stopped reports whether the search must unwind.
func (s *searcher) stopped() bool {
	if !s.halted && s.ctx.Err() != nil {
		s.halted = true
	}
	return s.halted
}

// root searches every root move and returns the best. A null move means no
// move finished.
func (s *searcher) root(moves []chess.Move, depth, alpha, beta int, prevBest chess.Move) (int, chess.Move) {
	hint := prevBest
	if e, ok := s.tt.Probe(s.board.Signature()); ok && !e.Best.IsNull() {
		hint = e.Best
	}
	ordered := s.order(moves, 0, hint)

	origAlpha := alpha
	best, bestMove := -infinity, chess.NullMove
	for _, m := range ordered {
		if s.stopped() {
			return 0, chess.NullMove
		}
		score, err := s.explore(m, depth, alpha, beta, 1, false)
		if err != nil {
			s.skip(err)
			continue
		}
		if s.halted {
			return 0, chess.NullMove
		}
		if score > best {
			best, bestMove = score, m
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	if !bestMove.IsNull() {
		s.store(depth, best, origAlpha, beta, bestMove, 0)
	}
	return best, bestMove
}

// negamax returns the score of the current position for the side to move.
func (s *searcher) negamax(depth, alpha, beta, ply int, allowNull bool) int {
	s.handle.nodes.Add(1)
	if s.stopped() {
		return 0
	}
	if over, out := s.board.Decided(); over {
		return s.terminal(out, ply)
	}
	if depth <= 0 || ply >= s.cfg.MaxPly {
		return s.quiescence(alpha, beta, ply, 0)
	}

	key := s.board.Signature()
	hint := chess.NullMove
	if e, ok := s.tt.Lookup(key, depth); ok {
		e.Lower, e.Upper = s.fromTable(e.Lower, ply), s.fromTable(e.Upper, ply)
		if v, ok := e.Cutoff(alpha, beta); ok {
			return v
		}
		hint = e.Best
	} else if e, ok := s.tt.Probe(key); ok {
		hint = e.Best
	}

	toMove := s.board.ToMove()
	if allowNull && depth >= s.cfg.NullMoveMinDepth && s.hasPieces(toMove) {
		u := s.board.MakeNull()
		v := -s.negamax(depth-1-s.cfg.NullMoveReduction, -beta, -beta+1, ply+1, false)
		s.board.Unmake(u)
		if s.halted {
			return 0
		}
		if v >= beta && v < s.mate-s.cfg.MaxPly {
			return beta
		}
	}

	moves := s.board.LegalMoves(toMove)
	if len(moves) == 0 {
		return -(s.mate - ply)
	}
	ordered := s.order(moves, ply, hint)

	origAlpha := alpha
	best, bestMove := -infinity, chess.NullMove
	pos := s.board.Position()
	for _, m := range ordered {
		if s.stopped() {
			return 0
		}
		capture := pos.IsCapture(m)
		score, err := s.explore(m, depth, alpha, beta, ply+1, false)
		if err != nil {
			s.skip(err)
			continue
		}
		if s.halted {
			return 0
		}
		if score > best {
			best, bestMove = score, m
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			if !capture {
				s.remember(m, depth, ply)
			}
			break
		}
	}
	if bestMove.IsNull() {
		return s.ev.Relative(s.board)
	}
	s.store(depth, best, origAlpha, beta, bestMove, ply)
	return best
}

// quiescence extends the search through captures until the position is
// quiet or the extension cap is reached.
func (s *searcher) quiescence(alpha, beta, ply, qdepth int) int {
	s.handle.nodes.Add(1)
	if s.stopped() {
		return 0
	}
	if over, out := s.board.Decided(); over {
		return s.terminal(out, ply)
	}

	standPat := s.ev.Relative(s.board)
	if qdepth >= s.cfg.QuiescenceDepth || ply >= s.cfg.MaxPly {
		return standPat
	}
	if standPat >= beta {
		return standPat
	}
	if standPat > alpha {
		alpha = standPat
	}

	pos := s.board.Position()
	best := standPat
	for _, m := range s.orderCaptures(s.board.Captures()) {
		if s.stopped() {
			return 0
		}
		attacker := chess.ExtractPiece(pos.PieceAt(m.From))
		victim := chess.ExtractPiece(pos.CapturedBy(m))
		if qdepth > 0 && victim != chess.King && attacker != chess.King &&
			s.ev.Value(attacker) > s.ev.Value(victim)+quiescenceMargin {
			continue
		}
		score, err := s.explore(m, qdepth, alpha, beta, ply+1, true)
		if err != nil {
			s.skip(err)
			continue
		}
		if s.halted {
			return 0
		}
		if score > best {
			best = score
		}
		if score >= beta {
			return score
		}
		if score > alpha {
			alpha = score
		}
	}
	return best
}

// explore plays m, scores the child and restores the board. A panic below
// m is recovered and reported as a SearchFailure so that the caller can
// skip the move.
func (s *searcher) explore(m chess.Move, depth, alpha, beta, ply int, capturesOnly bool) (score int, err error) {
	u := s.board.MakeUnchecked(m)
	defer func() {
		s.board.Unmake(u)
		if r := recover(); r != nil {
			err = &errors.SearchFailure{Move: m.String(), Depth: depth, Cause: r}
		}
	}()
	if capturesOnly {
		return -s.quiescence(-beta, -alpha, ply, depth+1), nil
	}
	return -s.negamax(depth-1, -beta, -alpha, ply, true), nil
}

func (s *searcher) skip(err error) {
	s.failed++
	s.logger.Warn().Err(err).Msg("branch-skipped")
}

// terminal scores a decided game for the side to move. Earlier wins score
// higher.
func (s *searcher) terminal(out engine.Outcome, ply int) int {
	if out.Winner == s.board.ToMove() {
		return s.mate - ply
	}
	return -(s.mate - ply)
}

// hasPieces reports whether colour has material besides its king and pawns.
func (s *searcher) hasPieces(colour chess.Colour) bool {
	for _, cp := range s.board.Position().Squares {
		if cp == chess.Empty || chess.ExtractColour(cp) != colour {
			continue
		}
		if p := chess.ExtractPiece(cp); p != chess.Pawn && p != chess.King {
			return true
		}
	}
	return false
}

// store records a node's result as bounds of its search window.
func (s *searcher) store(depth, score, alpha, beta int, best chess.Move, ply int) {
	lower, upper := -infinity, infinity
	switch {
	case score <= alpha:
		upper = s.toTable(score, ply)
	case score >= beta:
		lower = s.toTable(score, ply)
	default:
		lower = s.toTable(score, ply)
		upper = lower
	}
	s.tt.Store(s.board.Signature(), depth, lower, upper, best)
}

// toTable makes a mate score relative to the stored node rather than the
// root; fromTable reverses it.
func (s *searcher) toTable(score, ply int) int {
	switch {
	case score >= s.mate-s.cfg.MaxPly:
		return score + ply
	case score <= -(s.mate - s.cfg.MaxPly):
		return score - ply
	}
	return score
}

func (s *searcher) fromTable(score, ply int) int {
	switch {
	case score >= infinity || score <= -infinity:
		return score
	case score >= s.mate-s.cfg.MaxPly:
		return score - ply
	case score <= -(s.mate - s.cfg.MaxPly):
		return score + ply
	}
	return score
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}
