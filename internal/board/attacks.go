package board

// Direction vectors as (file, rank) deltas.
var (
	rookDirections   = [][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	bishopDirections = [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirections  = append(append([][2]int{}, rookDirections...), bishopDirections...)
	knightOffsets    = [][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingOffsets      = queenDirections
)

// Pre-computed attack tables for non-sliding pieces
var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard // [Color][Square]

	// Squares strictly between two aligned squares
	betweenBB [64][64]Bitboard
)

func init() {
	for sq := A1; sq <= H8; sq++ {
		knightAttacks[sq] = offsetsBB(sq, knightOffsets)
		kingAttacks[sq] = offsetsBB(sq, kingOffsets)
		pawnAttacks[White][sq] = offsetsBB(sq, [][2]int{{-1, 1}, {1, 1}})
		pawnAttacks[Black][sq] = offsetsBB(sq, [][2]int{{-1, -1}, {1, -1}})
	}
	initBetweenBB()
}

func offsetsBB(sq Square, offsets [][2]int) Bitboard {
	var bb Bitboard
	for _, o := range offsets {
		if to, ok := sq.Offset(o[0], o[1]); ok {
			bb = bb.Set(to)
		}
	}
	return bb
}

func initBetweenBB() {
	for sq1 := A1; sq1 <= H8; sq1++ {
		for _, d := range queenDirections {
			var between Bitboard
			for to, ok := sq1.Offset(d[0], d[1]); ok; to, ok = to.Offset(d[0], d[1]) {
				betweenBB[sq1][to] = between
				between = between.Set(to)
			}
		}
	}
}

// rayAttacks walks each direction from sq until the first occupied square,
// which is included.
func rayAttacks(sq Square, occupied Bitboard, dirs [][2]int) Bitboard {
	var attacks Bitboard
	for _, d := range dirs {
		for to, ok := sq.Offset(d[0], d[1]); ok; to, ok = to.Offset(d[0], d[1]) {
			attacks = attacks.Set(to)
			if occupied.IsSet(to) {
				break
			}
		}
	}
	return attacks
}

// KingAttacks returns the king attack bitboard for a square.
func KingAttacks(sq Square) Bitboard {
	return kingAttacks[sq]
}

// BishopAttacks returns the bishop attack bitboard for a square with given occupancy.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	return rayAttacks(sq, occupied, bishopDirections)
}

// RookAttacks returns the rook attack bitboard for a square with given occupancy.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	return rayAttacks(sq, occupied, rookDirections)
}

// QueenAttacks returns the queen attack bitboard for a square with given occupancy.
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return BishopAttacks(sq, occupied) | RookAttacks(sq, occupied)
}

// Between returns the bitboard of squares strictly between two squares.
// Returns empty if squares are not aligned (not on same rank, file, or diagonal).
func Between(sq1, sq2 Square) Bitboard {
	return betweenBB[sq1][sq2]
}

// AttacksFrom returns the squares a piece attacks given the occupancy.
// Pawns attack diagonally only.
func AttacksFrom(p Piece, occupied Bitboard) Bitboard {
	switch p.Type {
	case Pawn:
		return pawnAttacks[p.Color][p.Square]
	case Knight:
		return knightAttacks[p.Square]
	case Bishop:
		return BishopAttacks(p.Square, occupied)
	case Rook:
		return RookAttacks(p.Square, occupied)
	case Queen:
		return QueenAttacks(p.Square, occupied)
	case King:
		return kingAttacks[p.Square]
	}
	return 0
}

// AttackersOf returns the pieces of color by that attack sq under the given occupancy.
func (b *Board) AttackersOf(sq Square, by Color, occupied Bitboard) Bitboard {
	pcs := &b.pieces[by]
	return (pawnAttacks[by.Other()][sq] & pcs[Pawn]) |
		(knightAttacks[sq] & pcs[Knight]) |
		(kingAttacks[sq] & pcs[King]) |
		(BishopAttacks(sq, occupied) & (pcs[Bishop] | pcs[Queen])) |
		(RookAttacks(sq, occupied) & (pcs[Rook] | pcs[Queen]))
}

// IsAttacked reports whether any piece of color by attacks sq.
func (b *Board) IsAttacked(sq Square, by Color) bool {
	return b.AttackersOf(sq, by, b.all) != 0
}
