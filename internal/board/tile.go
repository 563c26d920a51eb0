package board

// Tile is the occupancy of one square: empty, or holding exactly one piece.
type Tile struct {
	square Square
	piece  Piece
}

func emptyTile(sq Square) Tile {
	return Tile{square: sq, piece: NoPiece}
}

// Square returns the tile's location.
func (t Tile) Square() Square {
	return t.square
}

// IsOccupied reports whether a piece stands on the tile.
func (t Tile) IsOccupied() bool {
	return !t.piece.IsNone()
}

// Piece returns the occupying piece, or NoPiece for an empty tile.
func (t Tile) Piece() Piece {
	return t.piece
}

// String renders the tile the way Board.String draws it.
func (t Tile) String() string {
	if !t.IsOccupied() {
		return "."
	}
	return string(t.piece.Char())
}
