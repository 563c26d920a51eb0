package board

import (
	"errors"
	"fmt"
)

// ErrIllegalMove is returned by ParseMove when text names no legal move.
var ErrIllegalMove = errors.New("illegal move")

// MoveKind tags the variant of a Move.
type MoveKind uint8

const (
	KindNull MoveKind = iota
	KindQuiet
	KindCapture
	KindPawnMove
	KindPawnJump
	KindPawnCapture
	KindEnPassant
	KindPromotion
	KindKingSideCastle
	KindQueenSideCastle
)

var kindNames = [...]string{
	KindNull:            "null",
	KindQuiet:           "quiet",
	KindCapture:         "capture",
	KindPawnMove:        "pawn",
	KindPawnJump:        "pawn-jump",
	KindPawnCapture:     "pawn-capture",
	KindEnPassant:       "en-passant",
	KindPromotion:       "promotion",
	KindKingSideCastle:  "O-O",
	KindQueenSideCastle: "O-O-O",
}

// String returns the kind name.
func (k MoveKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Move describes the effect of one ply. It is a pure value: it references
// the board it was generated on, and Execute derives the next board from it.
type Move struct {
	kind     MoveKind
	board    *Board
	piece    Piece
	to       Square
	captured Piece

	// Castling only
	rook   Piece
	rookTo Square

	// Promotion only: base is KindPawnMove or KindPawnCapture.
	base      MoveKind
	promotion PieceType
}

// NullMove is the sentinel returned when no move matches. Executing it panics.
var NullMove = Move{
	kind:      KindNull,
	piece:     NoPiece,
	to:        NoSquare,
	captured:  NoPiece,
	rook:      NoPiece,
	rookTo:    NoSquare,
	promotion: NoPieceType,
}

func newMove(kind MoveKind, b *Board, p Piece, to Square) Move {
	return Move{
		kind:      kind,
		board:     b,
		piece:     p,
		to:        to,
		captured:  NoPiece,
		rook:      NoPiece,
		rookTo:    NoSquare,
		promotion: NoPieceType,
	}
}

func newCapture(kind MoveKind, b *Board, p Piece, to Square, captured Piece) Move {
	m := newMove(kind, b, p, to)
	m.captured = captured
	return m
}

func newPromotion(base Move, pt PieceType) Move {
	m := base
	m.base = base.kind
	m.kind = KindPromotion
	m.promotion = pt
	return m
}

func newCastle(kind MoveKind, b *Board, king Piece, kingTo Square, rook Piece, rookTo Square) Move {
	m := newMove(kind, b, king, kingTo)
	m.rook = rook
	m.rookTo = rookTo
	return m
}

// Kind returns the move's variant tag.
func (m Move) Kind() MoveKind {
	return m.kind
}

// Board returns the board the move was generated against.
func (m Move) Board() *Board {
	return m.board
}

// Piece returns the moving piece as it stood before the move.
func (m Move) Piece() Piece {
	return m.piece
}

// From returns the origin square of the moving piece.
func (m Move) From() Square {
	return m.piece.Square
}

// To returns the destination of the moving piece.
func (m Move) To() Square {
	return m.to
}

// Captured returns the captured piece, or NoPiece.
func (m Move) Captured() Piece {
	return m.captured
}

// IsNull reports whether m is the null sentinel.
func (m Move) IsNull() bool {
	return m.kind == KindNull
}

// IsCapture reports whether the move removes an enemy piece.
func (m Move) IsCapture() bool {
	return !m.captured.IsNone()
}

// IsCastle reports whether the move is either castling move.
func (m Move) IsCastle() bool {
	return m.kind == KindKingSideCastle || m.kind == KindQueenSideCastle
}

// IsPromotion reports whether a pawn promotes.
func (m Move) IsPromotion() bool {
	return m.kind == KindPromotion
}

// BaseKind returns the underlying pawn move kind of a promotion, or the
// move's own kind otherwise.
func (m Move) BaseKind() MoveKind {
	if m.kind == KindPromotion {
		return m.base
	}
	return m.kind
}

// Promotion returns the promoted piece type, or NoPieceType.
func (m Move) Promotion() PieceType {
	return m.promotion
}

// Rook returns the castling rook at its starting square, or NoPiece.
func (m Move) Rook() Piece {
	return m.rook
}

// RookTo returns the castling rook's destination, or NoSquare.
func (m Move) RookTo() Square {
	return m.rookTo
}

// Equal reports whether two moves have the same effect, ignoring the board
// they were generated on.
func (m Move) Equal(o Move) bool {
	return m.kind == o.kind &&
		m.piece == o.piece &&
		m.to == o.to &&
		m.captured == o.captured &&
		m.rook == o.rook &&
		m.rookTo == o.rookTo &&
		m.base == o.base &&
		m.promotion == o.promotion
}

// String returns the move in coordinate form (e.g., "e2e4", "e7e8q").
// Castling is written as the king's start and destination squares, or in
// Chess960 as the king's start and the castling rook's square.
func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	if m.IsCastle() && m.board != nil && m.board.variant == Chess960 {
		return m.From().String() + m.rook.Square.String()
	}
	s := m.From().String() + m.to.String()
	if m.IsPromotion() {
		s += string(m.promotion.Char())
	}
	return s
}

// Execute derives the board that results from playing m.
// It panics if m is the null move.
func (m Move) Execute() *Board {
	if m.IsNull() {
		panic("board: cannot execute the null move")
	}
	return m.stage().mustBuild()
}

// stage fills a fresh builder with the position after m.
func (m Move) stage() *Builder {
	b := m.board
	mover := m.piece.Color
	nb := NewBuilder().
		SetVariant(b.variant, b.files).
		SetMoveMaker(mover.Other()).
		SetTransitionMove(m)
	nb.castled = b.castled

	for _, p := range b.active[mover] {
		if p == m.piece || (m.IsCastle() && p == m.rook) {
			continue
		}
		nb.SetPiece(p)
	}
	for _, p := range b.active[mover.Other()] {
		if m.IsCapture() && p == m.captured {
			continue
		}
		nb.SetPiece(p)
	}

	moved := m.piece.MovedTo(m.to)
	switch m.kind {
	case KindPawnJump:
		nb.SetEnPassantPawn(moved)
	case KindKingSideCastle, KindQueenSideCastle:
		nb.SetPiece(m.rook.MovedTo(m.rookTo))
		nb.SetCastled(mover, true)
	case KindPromotion:
		moved.Type = m.promotion
	}
	nb.SetPiece(moved)
	return nb
}

// ParseMove resolves coordinate notation ("e2e4", "e7e8q", "e1g1") against
// the legal moves of the side to move.
func ParseMove(b *Board, s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NullMove, fmt.Errorf("%w: %q", ErrIllegalMove, s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NullMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NullMove, err
	}
	promo := NoPieceType
	if len(s) == 5 {
		promo = PieceTypeFromChar(s[4])
		if promo == NoPieceType || promo == Pawn || promo == King {
			return NullMove, fmt.Errorf("%w: invalid promotion piece %q", ErrIllegalMove, s[4])
		}
	}
	m := FindMove(b, from, to, promo)
	if m.IsNull() {
		return NullMove, fmt.Errorf("%w: %s", ErrIllegalMove, s)
	}
	return m, nil
}
