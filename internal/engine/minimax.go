package engine

import (
	"context"

	"github.com/hailam/chessplay960/internal/board"
)

// Minimax searches every move to a fixed depth, maximising for White and
// minimising for Black. It never extends the depth.
type Minimax struct {
	cfg Config
}

// NewMinimax creates a minimax strategy.
func NewMinimax(cfg Config) *Minimax {
	return &Minimax{cfg: cfg.normalize()}
}

func (s *Minimax) String() string {
	return StrategyMinimax
}

// Execute implements MoveStrategy.
func (s *Minimax) Execute(b *board.Board) board.Move {
	res, _ := s.Search(context.Background(), b)
	return res.Move
}

// Search implements MoveStrategy.
func (s *Minimax) Search(ctx context.Context, b *board.Board) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{Move: board.NullMove}, err
	}
	st := newSearchState(ctx, s.cfg)
	defer st.release()

	side := b.SideToMove()
	res := Result{Move: board.NullMove, Score: worst(side)}
	p := b.CurrentPlayer()
	for _, m := range p.LegalMoves() {
		tr := p.MakeMove(m)
		if !tr.Status.IsDone() {
			continue
		}
		score := s.minimax(st, tr.To, s.cfg.Depth-1)
		if st.stopped() {
			break
		}
		if res.Move.IsNull() || better(side, score, res.Score) {
			res.Move, res.Score = tr.Move, score
		}
	}
	if res.Move.IsNull() {
		res.Score = st.leaf(b, s.cfg.Depth)
	}

	res.Info = st.info(s.String(), res)
	return res, ctx.Err()
}

func (s *Minimax) minimax(st *searchState, b *board.Board, depth int) int {
	if st.stopped() {
		return 0
	}
	if depth <= 0 || isDecided(b) {
		return st.leaf(b, depth)
	}

	side := b.SideToMove()
	best := worst(side)
	p := b.CurrentPlayer()
	for _, m := range p.LegalMoves() {
		tr := p.MakeMove(m)
		if !tr.Status.IsDone() {
			continue
		}
		if score := s.minimax(st, tr.To, depth-1); better(side, score, best) {
			best = score
		}
	}
	return best
}
