package board

// FindMove turns a start and destination square into the matching legal
// move of the side to move, or NullMove if none matches.
//
// For promotions promo selects the piece; NoPieceType means a queen.
// Castling matches either the king's destination square or the castling
// rook's square. The king's destination only selects castling when no
// ordinary king move goes there, which matters in Chess960.
func FindMove(b *Board, from, to Square, promo PieceType) Move {
	if !from.IsValid() || !to.IsValid() {
		return NullMove
	}
	if promo == NoPieceType {
		promo = Queen
	}

	castle := NullMove
	for _, m := range b.CurrentPlayer().LegalMoves() {
		if m.From() != from {
			continue
		}
		switch {
		case m.IsCastle():
			if to == m.rook.Square {
				return m
			}
			if to == m.to && castle.IsNull() {
				castle = m
			}
		case m.to != to:
		case m.IsPromotion():
			if m.promotion == promo {
				return m
			}
		default:
			return m
		}
	}
	return castle
}

// FindCastle returns the side to move's castling move on one wing, or NullMove.
func FindCastle(b *Board, kingSide bool) Move {
	return b.CurrentPlayer().CastleMove(kingSide)
}
