package board

// lacksMatingMaterial reports whether color c cannot mate on its own:
// a bare king, king and one minor piece, or king and two knights.
func lacksMatingMaterial(b *Board, c Color) bool {
	if len(b.active[c]) > 3 {
		return false
	}
	pcs := &b.pieces[c]
	if pcs[Pawn]|pcs[Rook]|pcs[Queen] != 0 {
		return false
	}
	knights := pcs[Knight].PopCount()
	bishops := pcs[Bishop].PopCount()
	switch knights + bishops {
	case 0, 1:
		return true
	case 2:
		return knights == 2
	}
	return false
}

// insufficientMaterial applies the policy symmetrically: the game is drawn
// only when neither side has mating material.
func insufficientMaterial(b *Board) bool {
	if len(b.active[White]) > 3 && len(b.active[Black]) > 3 {
		return false
	}
	return lacksMatingMaterial(b, White) && lacksMatingMaterial(b, Black)
}
