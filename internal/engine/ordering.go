package engine

import (
	"cmp"
	"slices"

	"github.com/hailam/chessplay960/internal/board"
)

// Ordering scores
const (
	castleScore = 1 << 20
)

// moveKey ranks a move for ordering: castles first, then by the value of
// the captured piece minus the value of the capturing piece, then by the
// value of the moving piece. Quiet moves count as a zero-value exchange.
type moveKey struct {
	castle   int
	exchange int
	mover    int
}

func keyOf(m board.Move) moveKey {
	k := moveKey{mover: pieceValues[m.Piece().Type]}
	if m.IsCastle() {
		k.castle = castleScore
	}
	if m.IsCapture() {
		k.exchange = pieceValues[m.Captured().Type] - attackerValue(m.Piece().Type)
	}
	return k
}

// OrderMoves returns a copy of moves sorted best-first. The sort is stable,
// so equally ranked moves keep their generation order.
func OrderMoves(moves []board.Move) []board.Move {
	type keyed struct {
		move board.Move
		key  moveKey
	}
	ks := make([]keyed, len(moves))
	for i, m := range moves {
		ks[i] = keyed{m, keyOf(m)}
	}
	slices.SortStableFunc(ks, func(a, b keyed) int {
		if c := cmp.Compare(b.key.castle, a.key.castle); c != 0 {
			return c
		}
		if c := cmp.Compare(b.key.exchange, a.key.exchange); c != 0 {
			return c
		}
		return cmp.Compare(b.key.mover, a.key.mover)
	})
	ordered := make([]board.Move, len(ks))
	for i, k := range ks {
		ordered[i] = k.move
	}
	return ordered
}
