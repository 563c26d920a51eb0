package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/hailam/chessplay960/internal/board"
)

var (
	// ErrNoLegalMoves is returned when the side to move has no move to play.
	ErrNoLegalMoves = errors.New("no legal moves")

	// ErrUnknownStrategy is returned by NewStrategy for an unrecognised name.
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// Strategy names accepted by NewStrategy.
const (
	StrategyMinimax   = "minimax"
	StrategyAlphaBeta = "alphabeta"
)

// Config controls one search.
type Config struct {
	Depth         int       // Plies searched from the root
	MaxExtensions int       // Tactical extensions allowed per search (0 = none)
	Parallel      int       // Root moves searched concurrently (<= 1 = sequential)
	Evaluator     Evaluator // nil = StandardEvaluator
}

// DefaultConfig returns a three-ply sequential search.
func DefaultConfig() Config {
	return Config{Depth: 3, MaxExtensions: DefaultMaxExtensions, Parallel: 1}
}

func (c Config) normalize() Config {
	c.Depth = clamp(c.Depth, 1, MaxDepth)
	c.MaxExtensions = max(c.MaxExtensions, 0)
	c.Parallel = clamp(c.Parallel, 1, runtime.GOMAXPROCS(0))
	if c.Evaluator == nil {
		c.Evaluator = StandardEvaluator{}
	}
	return c
}

// SearchInfo reports the statistics of a finished search.
type SearchInfo struct {
	Strategy   string
	Depth      int
	Score      int
	Move       board.Move
	Nodes      uint64 // Boards evaluated
	Cutoffs    uint64
	Extensions int
	Time       time.Duration
}

// Result is the outcome of a search: the chosen move and its score from
// White's point of view.
type Result struct {
	Move  board.Move
	Score int
	Info  SearchInfo
}

// MoveStrategy picks a move for the side to move.
type MoveStrategy interface {
	// Execute returns the chosen move, or NullMove if there is none.
	Execute(b *board.Board) board.Move
	// Search is Execute with cancellation and statistics. On cancellation
	// it returns the best root move completed so far with ctx.Err().
	Search(ctx context.Context, b *board.Board) (Result, error)
	String() string
}

// NewStrategy returns the named strategy configured with cfg.
func NewStrategy(name string, cfg Config) (MoveStrategy, error) {
	switch strings.ToLower(name) {
	case StrategyMinimax:
		return NewMinimax(cfg), nil
	case StrategyAlphaBeta, "alpha-beta", "":
		return NewAlphaBeta(cfg), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}
