// Package board implements the chess rules engine: an immutable board model,
// per-piece move generation, castling, en passant and promotion legality, and
// check, checkmate and stalemate detection for standard chess and Chess960.
package board

import (
	"errors"
	"fmt"
)

// BoardSize is the number of files (and ranks) on the board.
const BoardSize = 8

// ErrInvalidSquare is returned by lookups given off-board coordinates or
// malformed algebraic names.
var ErrInvalidSquare = errors.New("invalid square")

// Square is a board location (0-63).
// Uses Little-Endian Rank-File Mapping: A1=0, H1=7, A8=56, H8=63.
type Square uint8

// Square constants for all 64 squares.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	NoSquare Square = 64
)

// Notation lookup tables, built once at startup.
var (
	squareNames  [64]string
	namedSquares = make(map[string]Square, 64)
	fileLetters  = [BoardSize]byte{'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h'}
	rankDigits   = [BoardSize]byte{'1', '2', '3', '4', '5', '6', '7', '8'}
)

func init() {
	for sq := A1; sq <= H8; sq++ {
		name := string([]byte{fileLetters[sq.File()], rankDigits[sq.Rank()]})
		squareNames[sq] = name
		namedSquares[name] = sq
	}
}

// ValidCoords reports whether (file, rank) lies on the board.
// Callers must check this before NewSquare; NewSquare does no bounds checking.
func ValidCoords(file, rank int) bool {
	return file >= 0 && file < BoardSize && rank >= 0 && rank < BoardSize
}

// NewSquare creates a square from file and rank (0-indexed).
func NewSquare(file, rank int) Square {
	return Square(rank*BoardSize + file)
}

// File returns the file (column) of the square (0-7, where 0=a, 7=h).
func (sq Square) File() int {
	return int(sq) & 7
}

// Rank returns the rank (row) of the square (0-7, where 0=1, 7=8).
func (sq Square) Rank() int {
	return int(sq) >> 3
}

// IsValid returns true if the square is a valid board square (0-63).
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return squareNames[sq]
}

// IsLight reports whether the square is a light square (h1 is light).
func (sq Square) IsLight() bool {
	return (sq.File()+sq.Rank())%2 == 1
}

// Offset returns the square displaced by (df, dr) and whether it is on the board.
func (sq Square) Offset(df, dr int) (Square, bool) {
	f, r := sq.File()+df, sq.Rank()+dr
	if !ValidCoords(f, r) {
		return NoSquare, false
	}
	return NewSquare(f, r), true
}

// Mirror returns the square mirrored vertically (for black's perspective).
func (sq Square) Mirror() Square {
	return sq ^ 56
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	sq, ok := namedSquares[s]
	if !ok {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return sq, nil
}

// FileLetter returns the letter naming a file (0 -> 'a').
func FileLetter(file int) byte {
	return fileLetters[file]
}

// FileFromLetter converts a file letter ('a'-'h') to its index.
func FileFromLetter(c byte) (int, bool) {
	if c < 'a' || c > 'h' {
		return 0, false
	}
	return int(c - 'a'), true
}
