package board

import (
	"math/bits"
	"strings"
)

// Bitboard is a set of squares, one bit per square in Square order:
// bit 0 is a1, bit 7 is h1, bit 63 is h8.
type Bitboard uint64

const (
	fileABB Bitboard = 0x0101010101010101

	// LightSquares holds the light squares (b1, a2, ...).
	LightSquares Bitboard = 0x55AA55AA55AA55AA
	DarkSquares  Bitboard = ^LightSquares
)

// FileMask holds every square of a file, indexed 0-7.
var FileMask = func() (masks [BoardSize]Bitboard) {
	for i := range BoardSize {
		masks[i] = fileABB << i
	}
	return masks
}()

// SquareBB returns a bitboard with only the given square set.
func SquareBB(sq Square) Bitboard {
	return 1 << sq
}

// Set returns b with sq added.
func (b Bitboard) Set(sq Square) Bitboard {
	return b | SquareBB(sq)
}

// IsSet reports whether sq is in b.
func (b Bitboard) IsSet(sq Square) bool {
	return b&SquareBB(sq) != 0
}

// PopCount returns the number of squares in b.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the lowest square in b, or NoSquare when b is empty.
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// PopLSB removes and returns the lowest square.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// North shifts every square one rank toward rank 8.
func (b Bitboard) North() Bitboard {
	return b << 8
}

// South shifts every square one rank toward rank 1.
func (b Bitboard) South() Bitboard {
	return b >> 8
}

// Squares lists the squares of b in ascending order.
func (b Bitboard) Squares() []Square {
	squares := make([]Square, 0, b.PopCount())
	for b != 0 {
		squares = append(squares, b.PopLSB())
	}
	return squares
}

// String draws b rank 8 first, for debugging.
func (b Bitboard) String() string {
	var sb strings.Builder
	for rank := BoardSize - 1; rank >= 0; rank-- {
		sb.WriteByte(byte('1' + rank))
		for file := range BoardSize {
			if b.IsSet(NewSquare(file, rank)) {
				sb.WriteString(" 1")
			} else {
				sb.WriteString(" .")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
