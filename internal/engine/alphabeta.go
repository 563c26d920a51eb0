package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hailam/chessplay960/internal/board"
)

// AlphaBeta is minimax with alpha-beta pruning, move ordering and a capped
// one-ply extension for tactical horizon nodes. With Parallel > 1 the root
// moves are searched concurrently, each with a full window.
type AlphaBeta struct {
	cfg Config
}

// NewAlphaBeta creates an alpha-beta strategy.
func NewAlphaBeta(cfg Config) *AlphaBeta {
	return &AlphaBeta{cfg: cfg.normalize()}
}

func (s *AlphaBeta) String() string {
	return StrategyAlphaBeta
}

// Execute implements MoveStrategy.
func (s *AlphaBeta) Execute(b *board.Board) board.Move {
	res, _ := s.Search(context.Background(), b)
	return res.Move
}

// rootResult is the score of one root move; done is false when the move
// was refused or its subtree was abandoned.
type rootResult struct {
	move  board.Move
	score int
	done  bool
}

// Search implements MoveStrategy.
func (s *AlphaBeta) Search(ctx context.Context, b *board.Board) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{Move: board.NullMove}, err
	}
	st := newSearchState(ctx, s.cfg)
	defer st.release()

	moves := OrderMoves(b.CurrentPlayer().LegalMoves())
	var results []rootResult
	if s.cfg.Parallel > 1 {
		results = s.searchRootParallel(st, b, moves)
	} else {
		results = s.searchRoot(st, b, moves)
	}

	// The first of equally scored moves wins, so ties resolve by ordering.
	side := b.SideToMove()
	res := Result{Move: board.NullMove, Score: worst(side)}
	for _, r := range results {
		if r.done && (res.Move.IsNull() || better(side, r.score, res.Score)) {
			res.Move, res.Score = r.move, r.score
		}
	}
	if res.Move.IsNull() && !st.stopped() {
		res.Score = st.leaf(b, s.cfg.Depth)
	}

	res.Info = st.info(s.String(), res)
	return res, ctx.Err()
}

func (s *AlphaBeta) searchRoot(st *searchState, b *board.Board, moves []board.Move) []rootResult {
	results := make([]rootResult, len(moves))
	alpha, beta := -Infinity, Infinity
	white := b.SideToMove() == board.White
	p := b.CurrentPlayer()
	for i, m := range moves {
		tr := p.MakeMove(m)
		if !tr.Status.IsDone() {
			continue
		}
		score := st.alphaBeta(tr.To, st.childDepth(tr.To, s.cfg.Depth), alpha, beta)
		if st.stopped() {
			break
		}
		results[i] = rootResult{move: tr.Move, score: score, done: true}
		if white {
			alpha = max(alpha, score)
		} else {
			beta = min(beta, score)
		}
	}
	return results
}

func (s *AlphaBeta) searchRootParallel(st *searchState, b *board.Board, moves []board.Move) []rootResult {
	results := make([]rootResult, len(moves))
	p := b.CurrentPlayer()

	var g errgroup.Group
	g.SetLimit(s.cfg.Parallel)
	for i, m := range moves {
		g.Go(func() error {
			if st.stopped() {
				return nil
			}
			tr := p.MakeMove(m)
			if !tr.Status.IsDone() {
				return nil
			}
			score := st.alphaBeta(tr.To, st.childDepth(tr.To, s.cfg.Depth), -Infinity, Infinity)
			if !st.stopped() {
				results[i] = rootResult{move: tr.Move, score: score, done: true}
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// alphaBeta returns the minimax value of b within the (alpha, beta) window.
func (st *searchState) alphaBeta(b *board.Board, depth, alpha, beta int) int {
	if st.stopped() {
		return 0
	}
	if depth <= 0 || isDecided(b) {
		return st.leaf(b, depth)
	}

	p := b.CurrentPlayer()
	white := b.SideToMove() == board.White
	best := worst(b.SideToMove())
	for _, m := range OrderMoves(p.LegalMoves()) {
		tr := p.MakeMove(m)
		if !tr.Status.IsDone() {
			continue
		}
		score := st.alphaBeta(tr.To, st.childDepth(tr.To, depth), alpha, beta)
		if white {
			best = max(best, score)
			alpha = max(alpha, score)
		} else {
			best = min(best, score)
			beta = min(beta, score)
		}
		if alpha >= beta {
			st.cutoffs.Add(1)
			break
		}
	}
	return best
}
