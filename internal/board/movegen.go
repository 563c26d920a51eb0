package board

// generateMoves returns the pseudo-legal moves of every active piece of
// color c. Castling is added by the Player, and nothing here checks whether
// the mover's own king is left in check.
func (b *Board) generateMoves(c Color) []Move {
	moves := make([]Move, 0, 48)
	for _, p := range b.active[c] {
		moves = b.pieceMoves(p, moves)
	}
	return moves
}

// pieceMoves dispatches on piece type to its movement policy.
func (b *Board) pieceMoves(p Piece, moves []Move) []Move {
	switch p.Type {
	case Pawn:
		return b.pawnMoves(p, moves)
	case Knight:
		return b.stepMoves(p, knightOffsets, moves)
	case Bishop:
		return b.slideMoves(p, bishopDirections, moves)
	case Rook:
		return b.slideMoves(p, rookDirections, moves)
	case Queen:
		return b.slideMoves(p, queenDirections, moves)
	case King:
		return b.stepMoves(p, kingOffsets, moves)
	}
	return moves
}

// slideMoves walks each ray until it leaves the board or meets a piece.
// An enemy blocker is included as a capture.
func (b *Board) slideMoves(p Piece, dirs [][2]int, moves []Move) []Move {
	for _, d := range dirs {
		for to, ok := p.Square.Offset(d[0], d[1]); ok; to, ok = to.Offset(d[0], d[1]) {
			target := b.tiles[to].piece
			if target.IsNone() {
				moves = append(moves, newMove(KindQuiet, b, p, to))
				continue
			}
			if target.Color != p.Color {
				moves = append(moves, newCapture(KindCapture, b, p, to, target))
			}
			break
		}
	}
	return moves
}

// stepMoves evaluates each fixed offset once.
func (b *Board) stepMoves(p Piece, offsets [][2]int, moves []Move) []Move {
	for _, o := range offsets {
		to, ok := p.Square.Offset(o[0], o[1])
		if !ok {
			continue
		}
		target := b.tiles[to].piece
		switch {
		case target.IsNone():
			moves = append(moves, newMove(KindQuiet, b, p, to))
		case target.Color != p.Color:
			moves = append(moves, newCapture(KindCapture, b, p, to, target))
		}
	}
	return moves
}

// pawnMoves generates pushes, the two-square jump, diagonal captures,
// en passant and promotions.
func (b *Board) pawnMoves(p Piece, moves []Move) []Move {
	dir := p.Color.Direction()
	promoRank := p.Color.PromotionRank()

	if to, ok := p.Square.Offset(0, dir); ok && b.IsEmpty(to) {
		push := newMove(KindPawnMove, b, p, to)
		if to.Rank() == promoRank {
			moves = addPromotions(moves, push)
		} else {
			moves = append(moves, push)
			if p.Square.Rank() == p.Color.PawnStartRank() {
				if jump, ok := to.Offset(0, dir); ok && b.IsEmpty(jump) {
					moves = append(moves, newMove(KindPawnJump, b, p, jump))
				}
			}
		}
	}

	for _, df := range [2]int{-1, 1} {
		to, ok := p.Square.Offset(df, dir)
		if !ok {
			continue
		}
		target := b.tiles[to].piece
		if !target.IsNone() {
			if target.Color == p.Color {
				continue
			}
			capture := newCapture(KindPawnCapture, b, p, to, target)
			if to.Rank() == promoRank {
				moves = addPromotions(moves, capture)
			} else {
				moves = append(moves, capture)
			}
			continue
		}
		ep := b.enPassantPawn
		if ep.IsNone() || ep.Color == p.Color || ep.Type != Pawn {
			continue
		}
		if beside, ok := p.Square.Offset(df, 0); ok && beside == ep.Square {
			moves = append(moves, newCapture(KindEnPassant, b, p, to, ep))
		}
	}
	return moves
}

// addPromotions adds one promotion per promotable piece type.
func addPromotions(moves []Move, base Move) []Move {
	for _, pt := range PromotionTypes {
		moves = append(moves, newPromotion(base, pt))
	}
	return moves
}
