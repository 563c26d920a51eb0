package board

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingKing is returned when a side does not have exactly one king.
	ErrMissingKing = errors.New("each side must have exactly one king")

	// ErrTooManyPieces is returned when a side has more than 16 pieces.
	ErrTooManyPieces = errors.New("too many pieces")
)

// MaxPiecesPerSide bounds the number of active pieces of one color.
const MaxPiecesPerSide = 16

// Variant selects the rule set for castling geometry.
type Variant uint8

const (
	Classic Variant = iota
	Chess960
)

// String returns the variant name.
func (v Variant) String() string {
	if v == Chess960 {
		return "chess960"
	}
	return "classic"
}

// ParseVariant accepts "classic"/"standard" and "chess960"/"960"/"fischer".
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "classic", "standard", "":
		return Classic, nil
	case "chess960", "960", "fischer", "frc":
		return Chess960, nil
	}
	return Classic, fmt.Errorf("unknown variant %q", s)
}

// CastlingFiles records the starting files of the king and both castling rooks.
// Both colors share one set of files, mirroring each other across the board.
type CastlingFiles struct {
	King          int
	KingSideRook  int
	QueenSideRook int
}

// ClassicFiles are the castling files of standard chess.
var ClassicFiles = CastlingFiles{King: 4, KingSideRook: 7, QueenSideRook: 0}

// Builder stages piece placements and game metadata for one Board.
// It is mutable and short-lived; Build publishes an immutable Board.
type Builder struct {
	placement     map[Square]Piece
	nextMover     Color
	enPassantPawn Piece
	variant       Variant
	files         CastlingFiles
	castled       [2]bool
	transition    Move
}

// NewBuilder returns an empty builder for a classic board with White to move.
func NewBuilder() *Builder {
	return &Builder{
		placement:     make(map[Square]Piece, 32),
		nextMover:     White,
		enPassantPawn: NoPiece,
		variant:       Classic,
		files:         ClassicFiles,
		transition:    NullMove,
	}
}

// SetPiece places p on its square, replacing any previous occupant.
func (b *Builder) SetPiece(p Piece) *Builder {
	b.placement[p.Square] = p
	return b
}

// SetMoveMaker sets the side to move.
func (b *Builder) SetMoveMaker(c Color) *Builder {
	b.nextMover = c
	return b
}

// SetEnPassantPawn records the pawn that just made a two-square advance.
func (b *Builder) SetEnPassantPawn(p Piece) *Builder {
	b.enPassantPawn = p
	return b
}

// SetVariant sets the variant and the castling files it uses.
func (b *Builder) SetVariant(v Variant, files CastlingFiles) *Builder {
	b.variant = v
	b.files = files
	return b
}

// SetCastled records whether a side has already castled this game.
func (b *Builder) SetCastled(c Color, castled bool) *Builder {
	b.castled[c] = castled
	return b
}

// SetTransitionMove records the move that produced the board being built.
func (b *Builder) SetTransitionMove(m Move) *Builder {
	b.transition = m
	return b
}

// Build validates the staged placement and constructs the Board.
func (b *Builder) Build() (*Board, error) {
	var kings, counts [2]int
	for _, p := range b.placement {
		counts[p.Color]++
		if p.Type == King {
			kings[p.Color]++
		}
	}
	for c := White; c <= Black; c++ {
		if kings[c] != 1 {
			return nil, fmt.Errorf("%w: %s has %d", ErrMissingKing, c, kings[c])
		}
		if counts[c] > MaxPiecesPerSide {
			return nil, fmt.Errorf("%w: %s has %d", ErrTooManyPieces, c, counts[c])
		}
	}
	return newBoard(b), nil
}

// mustBuild is used by move execution, where a failure means the rules
// engine itself produced a corrupt position.
func (b *Builder) mustBuild() *Board {
	board, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("board: corrupt position after %s: %v", b.transition, err))
	}
	return board
}
