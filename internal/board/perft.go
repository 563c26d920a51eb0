package board

// Perft counts the leaf nodes of the tree of king-safe moves to the given
// depth. It is the standard check of move generation correctness.
func Perft(b *Board, depth int) int64 {
	if depth == 0 {
		return 1
	}
	moves := b.CurrentPlayer().PlayableMoves()
	if depth == 1 {
		return int64(len(moves))
	}
	var nodes int64
	for _, m := range moves {
		nodes += Perft(m.Execute(), depth-1)
	}
	return nodes
}

// Divide reports the perft count below each root move, keyed by the move's
// coordinate notation.
func Divide(b *Board, depth int) map[string]int64 {
	counts := make(map[string]int64)
	if depth < 1 {
		return counts
	}
	for _, m := range b.CurrentPlayer().PlayableMoves() {
		counts[m.String()] = Perft(m.Execute(), depth-1)
	}
	return counts
}
