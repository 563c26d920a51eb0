package engine

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/hailam/chessplay960/internal/board"
)

// Search constants
const (
	Infinity = math.MaxInt32
	MaxDepth = 8

	// DefaultMaxExtensions caps the tactical extensions of one search.
	DefaultMaxExtensions = 16

	// recentPlies and recentCaptures define a tactical position: at least
	// recentCaptures captures among the last recentPlies plies.
	recentPlies    = 4
	recentCaptures = 2
)

// searchState holds the counters and stop flag shared by every node of one
// search. It is safe for use by parallel root workers.
type searchState struct {
	cfg   Config
	start time.Time

	nodes      atomic.Uint64
	cutoffs    atomic.Uint64
	extensions atomic.Int64
	stopFlag   atomic.Bool

	release func() bool
}

func newSearchState(ctx context.Context, cfg Config) *searchState {
	st := &searchState{cfg: cfg, start: time.Now()}
	st.release = context.AfterFunc(ctx, func() { st.stopFlag.Store(true) })
	return st
}

func (st *searchState) stopped() bool {
	return st.stopFlag.Load()
}

// leaf evaluates a node at the search horizon or a decided position.
func (st *searchState) leaf(b *board.Board, depth int) int {
	st.nodes.Add(1)
	return st.cfg.Evaluator.Evaluate(b, depth)
}

// childDepth returns the depth to search a child at. A child that would
// sit on the horizon is searched one ply deeper when it is tactical and
// the extension budget allows it.
func (st *searchState) childDepth(child *board.Board, depth int) int {
	next := depth - 1
	if next > 0 || st.cfg.MaxExtensions <= 0 || !isTactical(child) {
		return next
	}
	for {
		n := st.extensions.Load()
		if n >= int64(st.cfg.MaxExtensions) {
			return next
		}
		if st.extensions.CompareAndSwap(n, n+1) {
			return next + 1
		}
	}
}

func (st *searchState) info(name string, res Result) SearchInfo {
	return SearchInfo{
		Strategy:   name,
		Depth:      st.cfg.Depth,
		Score:      res.Score,
		Move:       res.Move,
		Nodes:      st.nodes.Load(),
		Cutoffs:    st.cutoffs.Load(),
		Extensions: int(st.extensions.Load()),
		Time:       time.Since(st.start),
	}
}

// isDecided reports whether the game is over on b.
func isDecided(b *board.Board) bool {
	if b.IsInsufficientMaterial() {
		return true
	}
	p := b.CurrentPlayer()
	return p.IsCheckMate() || p.IsInStalemate()
}

// isTactical reports whether the side to move is in check or the last few
// plies were capture-heavy.
func isTactical(b *board.Board) bool {
	if b.CurrentPlayer().IsInCheck() {
		return true
	}
	captures := 0
	m := b.TransitionMove()
	for i := 0; i < recentPlies && !m.IsNull(); i++ {
		if m.IsCapture() {
			captures++
		}
		m = m.Board().TransitionMove()
	}
	return captures >= recentCaptures
}

// better reports whether score improves on best for the side to move.
func better(side board.Color, score, best int) bool {
	if side == board.White {
		return score > best
	}
	return score < best
}

// worst returns the initial best score for the side to move.
func worst(side board.Color) int {
	if side == board.White {
		return -Infinity
	}
	return Infinity
}
