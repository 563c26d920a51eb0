package engine

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/hailam/chessplay960/internal/board"
)

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Easy   Difficulty = iota // 2 ply
	Medium                   // 3 ply
	Hard                     // 4 ply, parallel root
)

// DifficultySettings maps difficulty to search configuration.
var DifficultySettings = map[Difficulty]Config{
	Easy:   {Depth: 2, MaxExtensions: DefaultMaxExtensions / 2, Parallel: 1},
	Medium: {Depth: 3, MaxExtensions: DefaultMaxExtensions, Parallel: 1},
	Hard:   {Depth: 4, MaxExtensions: DefaultMaxExtensions * 2, Parallel: runtime.NumCPU()},
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return fmt.Sprintf("difficulty(%d)", int(d))
}

// ParseDifficulty accepts "easy", "medium" or "hard".
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(s) {
	case "easy":
		return Easy, nil
	case "medium", "":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Medium, fmt.Errorf("unknown difficulty %q", s)
}

// Engine is the chess AI engine. It is not safe to reconfigure an Engine
// while a search is running.
type Engine struct {
	strategy string
	config   Config

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates an alpha-beta engine with the given configuration.
func NewEngine(cfg Config) *Engine {
	return &Engine{strategy: StrategyAlphaBeta, config: cfg}
}

// SetDifficulty replaces the configuration with a difficulty preset.
func (e *Engine) SetDifficulty(d Difficulty) {
	if cfg, ok := DifficultySettings[d]; ok {
		e.config = cfg
	}
}

// SetStrategy selects the search strategy by name.
func (e *Engine) SetStrategy(name string) error {
	if _, err := NewStrategy(name, e.config); err != nil {
		return err
	}
	e.strategy = name
	return nil
}

// SetDepth overrides the search depth.
func (e *Engine) SetDepth(depth int) {
	e.config.Depth = depth
}

// Config returns the current search configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Strategy returns the configured strategy.
func (e *Engine) Strategy() MoveStrategy {
	s, _ := NewStrategy(e.strategy, e.config)
	return s
}

// Search finds the best move for the side to move, or NullMove if the game
// is over.
func (e *Engine) Search(b *board.Board) board.Move {
	m, _ := e.SearchContext(context.Background(), b)
	return m
}

// SearchContext finds the best move, stopping early when ctx is done. An
// interrupted search returns the best root move completed so far together
// with ctx.Err().
func (e *Engine) SearchContext(ctx context.Context, b *board.Board) (board.Move, error) {
	res, err := e.Strategy().Search(ctx, b)
	if e.OnInfo != nil {
		e.OnInfo(res.Info)
	}
	if err != nil {
		return res.Move, err
	}
	if res.Move.IsNull() {
		return board.NullMove, ErrNoLegalMoves
	}
	return res.Move, nil
}

// Evaluate returns the static evaluation of a position.
func (e *Engine) Evaluate(b *board.Board) int {
	cfg := e.config.normalize()
	return cfg.Evaluator.Evaluate(b, 0)
}

// ScoreToString converts a White-relative score to a human-readable string.
func ScoreToString(score int) string {
	if abs(score) >= checkmateBonus {
		if score > 0 {
			return "White mates"
		}
		return "Black mates"
	}
	return fmt.Sprintf("%+.2f", float64(score)/100)
}
