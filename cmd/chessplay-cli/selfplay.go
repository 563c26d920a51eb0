package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/hailam/chessplay960/internal/board"
	"github.com/hailam/chessplay960/internal/engine"
	"github.com/hailam/chessplay960/internal/storage"
)

// gameOutcome describes how a self-play game ended.
type gameOutcome struct {
	winner   board.Color
	decisive bool
	reason   string
	plies    int
	duration time.Duration
	result   storage.GameResult
}

// selfPlay lets the engine play both sides until the game ends, the
// -selfplay ply limit is reached or ctx is done.
func selfPlay(ctx context.Context, out io.Writer, opts *options, eng *engine.Engine, b *board.Board, prefs *storage.Preferences) gameOutcome {
	fmt.Fprint(out, b)
	start := time.Now()
	maxPlies := opts.selfplay
	var played []board.Move
	reason := ""
	for plies := 0; plies < maxPlies; plies++ {
		if r := outcome(b); r != "" {
			reason = r
			break
		}
		m, err := opts.search(ctx, eng, b)
		if err != nil {
			if m.IsNull() {
				reason = err.Error()
				break
			}
			log.Printf("search interrupted: %v", err)
		}
		played = append(played, m)
		b = m.Execute()
		if ctx.Err() != nil {
			reason = ctx.Err().Error()
			break
		}
	}
	if reason == "" {
		reason = outcome(b)
		if reason == "" {
			reason = fmt.Sprintf("ply limit %d", maxPlies)
		}
	}

	fmt.Fprintln(out, formatGame(board.MovesToSAN(played)))
	fmt.Fprint(out, b)

	res := gameOutcome{
		reason:   reason,
		plies:    len(played),
		duration: time.Since(start),
	}
	if b.CurrentPlayer().IsCheckMate() {
		res.decisive = true
		res.winner = b.SideToMove().Other()
	}

	human := board.White
	if prefs.PlayerColor == storage.ColorBlack {
		human = board.Black
	}
	res.result = storage.GameResult{
		Won:        res.decisive && res.winner == human,
		Draw:       !res.decisive,
		Variant:    b.Variant().String(),
		Difficulty: prefs.Difficulty,
		Plies:      res.plies,
		Duration:   res.duration,
	}

	if res.decisive {
		fmt.Fprintf(out, "%s wins: %s after %d plies\n", res.winner, reason, res.plies)
	} else {
		fmt.Fprintf(out, "Draw: %s after %d plies\n", reason, res.plies)
	}
	return res
}

// outcome names the reason the game on b is over, or "" if it is not.
func outcome(b *board.Board) string {
	p := b.CurrentPlayer()
	switch {
	case p.IsCheckMate():
		return "checkmate"
	case p.IsInStalemate():
		return "stalemate"
	case b.IsInsufficientMaterial():
		return "insufficient material"
	}
	return ""
}

// formatGame numbers SAN moves in pairs: "1. e4 e5 2. Nf3".
func formatGame(sans []string) string {
	var sb strings.Builder
	for i, s := range sans {
		if i%2 == 0 {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%d.", i/2+1)
		}
		sb.WriteByte(' ')
		sb.WriteString(s)
	}
	return sb.String()
}

func recordGame(store *storage.Storage, out gameOutcome) {
	if store == nil {
		return
	}
	stats, err := store.RecordGame(out.result)
	if err != nil {
		log.Printf("Warning: game not recorded: %v", err)
		return
	}
	log.Printf("Recorded game %d (win rate %.1f%%)", stats.GamesPlayed, stats.GetWinRate())
}
