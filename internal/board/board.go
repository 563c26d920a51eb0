package board

import (
	"fmt"
	"strings"
)

// Board is an immutable chess position. It is created by a Builder, never
// modified afterwards, and is safe for concurrent reads.
type Board struct {
	tiles  [64]Tile
	active [2][]Piece

	// Piece bitboards: [Color][PieceType]
	pieces   [2][6]Bitboard
	occupied [2]Bitboard
	all      Bitboard

	enPassantPawn Piece
	variant       Variant
	files         CastlingFiles
	castled       [2]bool
	sideToMove    Color
	transition    Move

	players      [2]*Player
	insufficient bool
}

// newBoard materialises the builder's placement, generates both sides'
// pseudo-legal moves and constructs the two Player views.
func newBoard(bld *Builder) *Board {
	b := placeBoard(bld)
	var pseudo [2][]Move
	for c := White; c <= Black; c++ {
		pseudo[c] = b.generateMoves(c)
	}
	for c := White; c <= Black; c++ {
		b.players[c] = newPlayer(b, c, pseudo[c])
	}
	b.insufficient = insufficientMaterial(b)
	return b
}

// placeBoard fills tiles, piece lists and bitboards only. The result has no
// players and is used for cheap king-safety probes.
func placeBoard(bld *Builder) *Board {
	b := &Board{
		enPassantPawn: bld.enPassantPawn,
		variant:       bld.variant,
		files:         bld.files,
		castled:       bld.castled,
		sideToMove:    bld.nextMover,
		transition:    bld.transition,
	}
	for sq := A1; sq <= H8; sq++ {
		p, ok := bld.placement[sq]
		if !ok {
			b.tiles[sq] = emptyTile(sq)
			continue
		}
		b.tiles[sq] = Tile{square: sq, piece: p}
		b.pieces[p.Color][p.Type] |= SquareBB(sq)
		b.occupied[p.Color] |= SquareBB(sq)
		b.active[p.Color] = append(b.active[p.Color], p)
	}
	b.all = b.occupied[White] | b.occupied[Black]
	return b
}

// Tile returns the tile at sq. sq must be a valid square.
func (b *Board) Tile(sq Square) Tile {
	return b.tiles[sq]
}

// TileAt returns the tile at (file, rank), both 0-indexed.
func (b *Board) TileAt(file, rank int) (Tile, error) {
	if !ValidCoords(file, rank) {
		return Tile{}, fmt.Errorf("%w: (%d,%d)", ErrInvalidSquare, file, rank)
	}
	return b.tiles[NewSquare(file, rank)], nil
}

// TileByName returns the tile at an algebraic square name such as "e4".
func (b *Board) TileByName(name string) (Tile, error) {
	sq, err := ParseSquare(name)
	if err != nil {
		return Tile{}, err
	}
	return b.tiles[sq], nil
}

// PieceAt returns the piece on sq, or NoPiece.
func (b *Board) PieceAt(sq Square) Piece {
	return b.tiles[sq].piece
}

// IsEmpty returns true if the square is empty.
func (b *Board) IsEmpty(sq Square) bool {
	return !b.all.IsSet(sq)
}

// ActivePieces returns the pieces of color c on the board, in square order.
// The returned slice must not be modified.
func (b *Board) ActivePieces(c Color) []Piece {
	return b.active[c]
}

// Pieces returns the bitboard of pieces of the given color and type.
func (b *Board) Pieces(c Color, pt PieceType) Bitboard {
	return b.pieces[c][pt]
}

// Occupied returns the squares holding pieces of color c.
func (b *Board) Occupied(c Color) Bitboard {
	return b.occupied[c]
}

// AllOccupied returns every occupied square.
func (b *Board) AllOccupied() Bitboard {
	return b.all
}

// WhitePlayer returns the view of the board for White.
func (b *Board) WhitePlayer() *Player {
	return b.players[White]
}

// BlackPlayer returns the view of the board for Black.
func (b *Board) BlackPlayer() *Player {
	return b.players[Black]
}

// Player returns the view of the board for color c.
func (b *Board) Player(c Color) *Player {
	return b.players[c]
}

// CurrentPlayer returns the view for the side to move.
func (b *Board) CurrentPlayer() *Player {
	return b.players[b.sideToMove]
}

// SideToMove returns the color whose turn it is.
func (b *Board) SideToMove() Color {
	return b.sideToMove
}

// AllLegalMoves returns White's legal moves followed by Black's.
func (b *Board) AllLegalMoves() []Move {
	white, black := b.players[White].moves, b.players[Black].moves
	all := make([]Move, 0, len(white)+len(black))
	all = append(all, white...)
	return append(all, black...)
}

// EnPassantPawn returns the pawn that just advanced two squares, if any.
func (b *Board) EnPassantPawn() (Piece, bool) {
	return b.enPassantPawn, !b.enPassantPawn.IsNone()
}

// Variant returns the rule set this board is played under.
func (b *Board) Variant() Variant {
	return b.variant
}

// CastlingFiles returns the starting files of the king and castling rooks.
func (b *Board) CastlingFiles() CastlingFiles {
	return b.files
}

// TransitionMove returns the move that produced this board, or NullMove for
// an initial position.
func (b *Board) TransitionMove() Move {
	return b.transition
}

// IsInsufficientMaterial reports whether neither side can deliver mate.
func (b *Board) IsInsufficientMaterial() bool {
	return b.insufficient
}

// String returns a visual representation of the board.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < BoardSize; file++ {
			sb.WriteString(b.tiles[NewSquare(file, rank)].String())
			sb.WriteByte(' ')
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", b.sideToMove)
	fmt.Fprintf(&sb, "Variant: %s\n", b.variant)
	fmt.Fprintf(&sb, "FEN: %s\n", b.FEN())
	return sb.String()
}
