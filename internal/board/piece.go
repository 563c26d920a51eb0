package board

import "fmt"

// Color represents the side a piece belongs to.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// Direction returns the rank delta of a forward pawn step.
func (c Color) Direction() int {
	if c == White {
		return 1
	}
	return -1
}

// PromotionRank returns the absolute rank on which this side's pawns promote.
func (c Color) PromotionRank() int {
	if c == White {
		return 7
	}
	return 0
}

// PawnStartRank returns the absolute rank this side's pawns start on.
func (c Color) PawnStartRank() int {
	if c == White {
		return 1
	}
	return 6
}

// BackRank returns the absolute rank of this side's pieces in the initial position.
func (c Color) BackRank() int {
	if c == White {
		return 0
	}
	return 7
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// PieceType represents the type of a chess piece.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

// PieceValue is the base material value of each piece type in centipawns.
var PieceValue = [7]int{100, 300, 330, 500, 900, 10000, 0}

// PromotionTypes lists the piece types a pawn may promote to, strongest first.
var PromotionTypes = [4]PieceType{Queen, Rook, Bishop, Knight}

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the FEN character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	if pt >= NoPieceType {
		return ' '
	}
	return "pnbrqk"[pt]
}

// Value returns the base material value of the piece type.
func (pt PieceType) Value() int {
	return PieceValue[pt]
}

// IsMinor reports whether the type is a knight or bishop.
func (pt PieceType) IsMinor() bool {
	return pt == Knight || pt == Bishop
}

// IsMajor reports whether the type is a rook or queen.
func (pt PieceType) IsMajor() bool {
	return pt == Rook || pt == Queen
}

// PieceTypeFromChar converts a FEN letter of either case to a piece type.
func PieceTypeFromChar(c byte) PieceType {
	switch c {
	case 'p', 'P':
		return Pawn
	case 'n', 'N':
		return Knight
	case 'b', 'B':
		return Bishop
	case 'r', 'R':
		return Rook
	case 'q', 'Q':
		return Queen
	case 'k', 'K':
		return King
	default:
		return NoPieceType
	}
}

// Piece is an immutable piece value. Two pieces are equal iff all fields match,
// so logically identical pieces are interchangeable.
type Piece struct {
	Type   PieceType
	Color  Color
	Square Square
	// Moved is set once the piece has left its starting square.
	Moved bool
}

// NoPiece is the zero-information piece used where a piece is absent.
var NoPiece = Piece{Type: NoPieceType, Color: NoColor, Square: NoSquare}

// NewPiece creates an unmoved piece.
func NewPiece(pt PieceType, c Color, sq Square) Piece {
	return Piece{Type: pt, Color: c, Square: sq}
}

// IsNone reports whether p is NoPiece.
func (p Piece) IsNone() bool {
	return p.Type == NoPieceType
}

// MovedTo returns the piece relocated to sq with its moved flag set.
func (p Piece) MovedTo(sq Square) Piece {
	return Piece{Type: p.Type, Color: p.Color, Square: sq, Moved: true}
}

// Value returns the material value of the piece in centipawns.
func (p Piece) Value() int {
	return PieceValue[p.Type]
}

// Char returns the FEN character: uppercase for white, lowercase for black.
func (p Piece) Char() byte {
	c := p.Type.Char()
	if p.Color == White {
		c -= 'a' - 'A'
	}
	return c
}

// String returns e.g. "Nf3" or "pe7".
func (p Piece) String() string {
	if p.IsNone() {
		return "-"
	}
	return fmt.Sprintf("%c%s", p.Char(), p.Square)
}
