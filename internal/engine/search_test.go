package engine

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hailam/chessplay960/internal/board"
)

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		depth int
	}{
		{"start", board.StartFEN, 3},
		{"italian", "r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 0 1", 2},
		{"rook endgame", "8/5k2/8/3R4/8/2K5/8/6r1 w - - 0 1", 3},
		{"hanging queen", "4k3/8/8/3q4/8/8/8/3QK3 w - - 0 1", 3},
		{"black to move", "4k3/8/8/3q4/8/8/4P3/3QK3 b - - 0 1", 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustFEN(t, tc.fen)
			cfg := Config{Depth: tc.depth}

			mm, err := NewMinimax(cfg).Search(t.Context(), b)
			if err != nil {
				t.Fatal(err)
			}
			ab, err := NewAlphaBeta(cfg).Search(t.Context(), b)
			if err != nil {
				t.Fatal(err)
			}
			if mm.Score != ab.Score {
				t.Errorf("minimax %v scores %d, alpha-beta %v scores %d", mm.Move, mm.Score, ab.Move, ab.Score)
			}
			if ab.Info.Nodes > mm.Info.Nodes {
				t.Errorf("alpha-beta evaluated %d boards, more than minimax's %d", ab.Info.Nodes, mm.Info.Nodes)
			}

			cfg.Parallel = 4
			par, err := NewAlphaBeta(cfg).Search(t.Context(), b)
			if err != nil {
				t.Fatal(err)
			}
			if par.Score != mm.Score {
				t.Errorf("parallel alpha-beta %v scores %d, want %d", par.Move, par.Score, mm.Score)
			}
			t.Logf("%s: %v %d (minimax %d nodes, alpha-beta %d nodes, %d cutoffs)",
				tc.name, ab.Move, ab.Score, mm.Info.Nodes, ab.Info.Nodes, ab.Info.Cutoffs)
		})
	}
}

func TestFindsMateInOne(t *testing.T) {
	b := mustFEN(t, "6k1/5ppp/8/8/8/8/8/R3K3 w - - 0 1")

	for _, depth := range []int{1, 2, 3} {
		for _, s := range []MoveStrategy{
			NewMinimax(Config{Depth: depth}),
			NewAlphaBeta(Config{Depth: depth, MaxExtensions: DefaultMaxExtensions}),
		} {
			m := s.Execute(b)
			if m.From() != board.A1 || m.To() != board.A8 {
				t.Errorf("%s depth %d chose %v, want a1a8", s, depth, m)
			}
		}
	}
}

func TestBlackFindsMateInOne(t *testing.T) {
	b := mustFEN(t, "r3k3/8/8/8/8/8/5PPP/6K1 b - - 0 1")
	m := NewAlphaBeta(Config{Depth: 3}).Execute(b)
	if m.From() != board.A8 || m.To() != board.A1 {
		t.Errorf("chose %v, want a8a1", m)
	}
}

func TestPrefersQuickerMate(t *testing.T) {
	b := mustFEN(t, "6k1/5ppp/8/8/8/8/8/R3K3 w - - 0 1")
	res, err := NewAlphaBeta(Config{Depth: 3}).Search(t.Context(), b)
	if err != nil {
		t.Fatal(err)
	}
	// Mate on the first ply leaves two plies of depth on the mated board.
	if res.Score < checkmateBonus*3 {
		t.Errorf("score %d, want at least %d", res.Score, checkmateBonus*3)
	}
}

func TestCapturesHangingQueen(t *testing.T) {
	b := mustFEN(t, "4k3/8/8/3q4/8/8/8/3QK3 w - - 0 1")
	for _, s := range []MoveStrategy{NewMinimax(Config{Depth: 2}), NewAlphaBeta(Config{Depth: 2})} {
		if m := s.Execute(b); m.From() != board.D1 || m.To() != board.D5 {
			t.Errorf("%s chose %v, want d1d5", s, m)
		}
	}
}

func TestExtensionCap(t *testing.T) {
	b := mustFEN(t, "r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 0 1")

	tests := []struct {
		max int
	}{
		{0},
		{2},
		{DefaultMaxExtensions},
	}
	for _, tc := range tests {
		res, err := NewAlphaBeta(Config{Depth: 2, MaxExtensions: tc.max}).Search(t.Context(), b)
		if err != nil {
			t.Fatal(err)
		}
		if res.Info.Extensions > tc.max {
			t.Errorf("MaxExtensions %d: used %d extensions", tc.max, res.Info.Extensions)
		}
		// Bxf7+ puts Black in check on the horizon, so any budget is used.
		if tc.max > 0 && res.Info.Extensions == 0 {
			t.Errorf("MaxExtensions %d: no extension used", tc.max)
		}
	}
}

func TestIsTactical(t *testing.T) {
	start := board.NewStandardBoard()
	if isTactical(start) {
		t.Error("starting position reported as tactical")
	}

	// 1.e4 d5 2.exd5 Qxd5: two captures in the last four plies.
	b := start
	for _, s := range []string{"e2e4", "d7d5", "e4d5", "d8d5"} {
		m, err := board.ParseMove(b, s)
		if err != nil {
			t.Fatal(err)
		}
		b = m.Execute()
	}
	if !isTactical(b) {
		t.Error("capture sequence not reported as tactical")
	}

	check := mustFEN(t, "4k3/8/8/8/1b6/8/8/4K3 w - - 0 1")
	if !isTactical(check) {
		t.Error("side in check not reported as tactical")
	}
}

// stallingEvaluator scores normally for the first budget boards, then
// blocks until ctx is done, so a search is interrupted part way through
// the root moves.
type stallingEvaluator struct {
	ctx    context.Context
	budget int64
	calls  atomic.Int64
}

func (e *stallingEvaluator) Evaluate(b *board.Board, depth int) int {
	if e.calls.Add(1) > e.budget {
		<-e.ctx.Done()
	}
	return Evaluate(b, depth)
}

func TestSearchTimeoutReturnsFinishedMove(t *testing.T) {
	b := board.NewStandardBoard()

	// The first root move needs one board per Black reply.
	for _, name := range []string{StrategyMinimax, StrategyAlphaBeta} {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
			defer cancel()

			eval := &stallingEvaluator{ctx: ctx, budget: 30}
			s, err := NewStrategy(name, Config{Depth: 2, Evaluator: eval})
			if err != nil {
				t.Fatal(err)
			}
			res, err := s.Search(ctx, b)
			if !errors.Is(err, context.DeadlineExceeded) {
				t.Errorf("Search() error = %v, want context.DeadlineExceeded", err)
			}
			if res.Move.IsNull() {
				t.Fatal("Search() returned the null move after finishing a root move")
			}
			if !b.CurrentPlayer().IsMoveLegal(res.Move) {
				t.Errorf("Search() returned %v, which is not a legal move", res.Move)
			}
			t.Logf("%s: %v after %d boards", name, res.Move, eval.calls.Load())
		})
	}
}

func TestScoreBounds(t *testing.T) {
	if Infinity > math.MaxInt32 {
		t.Errorf("Infinity = %d does not fit in 32 bits", Infinity)
	}
	if deepest := checkmateBonus*(MaxDepth+2*DefaultMaxExtensions+1) + 10*QueenValue; deepest >= Infinity {
		t.Errorf("a mate score of %d reaches Infinity", deepest)
	}
}
