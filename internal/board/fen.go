package board

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFEN is returned when a FEN string cannot describe a legal board.
var ErrInvalidFEN = errors.New("invalid FEN")

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// castleRights holds the rook files a side may still castle with, -1 if none.
type castleRights struct {
	kingSide  int
	queenSide int
}

func (r castleRights) any() bool {
	return r.kingSide >= 0 || r.queenSide >= 0
}

// ParseFEN builds a board from a FEN string. The castling field accepts
// KQkq as well as Shredder file letters (e.g. "HAha"); a position whose
// castling rooks are not on the a- and h-files with the king on e is
// treated as Chess960. Move counters are accepted but not kept.
func ParseFEN(fen string) (*Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, fmt.Errorf("%w: need at least 4 fields, got %d", ErrInvalidFEN, len(parts))
	}

	placement, err := parsePlacement(parts[0])
	if err != nil {
		return nil, err
	}

	var stm Color
	switch parts[1] {
	case "w":
		stm = White
	case "b":
		stm = Black
	default:
		return nil, fmt.Errorf("%w: side to move %q", ErrInvalidFEN, parts[1])
	}

	rights, shredder, err := parseCastling(placement, parts[2])
	if err != nil {
		return nil, err
	}
	files, variant := castlingFiles(placement, rights, shredder)
	// Rights that disagree with the shared files cannot be honoured.
	for c := White; c <= Black; c++ {
		if rights[c].kingSide != files.KingSideRook {
			rights[c].kingSide = -1
		}
		if rights[c].queenSide != files.QueenSideRook {
			rights[c].queenSide = -1
		}
	}

	bld := NewBuilder().SetVariant(variant, files).SetMoveMaker(stm)
	for sq, p := range placement {
		p.Moved = movedFlag(p, rights[p.Color], files)
		if p.Type == Pawn && (sq.Rank() == 0 || sq.Rank() == BoardSize-1) {
			return nil, fmt.Errorf("%w: pawn on %s", ErrInvalidFEN, sq)
		}
		bld.SetPiece(p)
	}

	if parts[3] != "-" {
		target, err := ParseSquare(parts[3])
		if err != nil {
			return nil, fmt.Errorf("%w: en passant square %q", ErrInvalidFEN, parts[3])
		}
		jumper := stm.Other()
		pawnSq, ok := target.Offset(0, jumper.Direction())
		pawn, found := placement[pawnSq]
		if !ok || !found || pawn.Type != Pawn || pawn.Color != jumper {
			return nil, fmt.Errorf("%w: no pawn behind en passant square %s", ErrInvalidFEN, target)
		}
		bld.SetEnPassantPawn(pawn.MovedTo(pawnSq))
	}

	b, err := bld.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFEN, err)
	}
	if b.Player(stm.Other()).IsInCheck() {
		return nil, fmt.Errorf("%w: side not to move is in check", ErrInvalidFEN)
	}
	return b, nil
}

func parsePlacement(field string) (map[Square]Piece, error) {
	ranks := strings.Split(field, "/")
	if len(ranks) != BoardSize {
		return nil, fmt.Errorf("%w: need 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}

	placement := make(map[Square]Piece, 32)
	for i, rankStr := range ranks {
		rank := BoardSize - 1 - i
		file := 0
		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if file >= BoardSize {
				return nil, fmt.Errorf("%w: too many squares in rank %d", ErrInvalidFEN, rank+1)
			}
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			pt := PieceTypeFromChar(c)
			if pt == NoPieceType {
				return nil, fmt.Errorf("%w: piece character %q", ErrInvalidFEN, c)
			}
			color := Black
			if c >= 'A' && c <= 'Z' {
				color = White
			}
			sq := NewSquare(file, rank)
			placement[sq] = NewPiece(pt, color, sq)
			file++
		}
		if file != BoardSize {
			return nil, fmt.Errorf("%w: rank %d has %d squares", ErrInvalidFEN, rank+1, file)
		}
	}
	return placement, nil
}

// backRankKing returns the file of c's king if it stands on its back rank.
func backRankKing(placement map[Square]Piece, c Color) int {
	for f := 0; f < BoardSize; f++ {
		p, ok := placement[NewSquare(f, c.BackRank())]
		if ok && p.Type == King && p.Color == c {
			return f
		}
	}
	return -1
}

func isRook(placement map[Square]Piece, c Color, file int) bool {
	p, ok := placement[NewSquare(file, c.BackRank())]
	return ok && p.Type == Rook && p.Color == c
}

func parseCastling(placement map[Square]Piece, field string) ([2]castleRights, bool, error) {
	rights := [2]castleRights{{-1, -1}, {-1, -1}}
	if field == "-" {
		return rights, false, nil
	}

	shredder := false
	for i := 0; i < len(field); i++ {
		c := field[i]
		color, lower := White, c
		if c >= 'a' && c <= 'z' {
			color = Black
		} else {
			lower = c + ('a' - 'A')
		}

		kingFile := backRankKing(placement, color)
		if kingFile < 0 {
			return rights, false, fmt.Errorf("%w: castling right %q without king on back rank", ErrInvalidFEN, c)
		}

		rookFile := -1
		switch lower {
		case 'k':
			for f := BoardSize - 1; f > kingFile; f-- {
				if isRook(placement, color, f) {
					rookFile = f
					break
				}
			}
		case 'q':
			for f := 0; f < kingFile; f++ {
				if isRook(placement, color, f) {
					rookFile = f
					break
				}
			}
		default:
			f, ok := FileFromLetter(lower)
			if !ok {
				return rights, false, fmt.Errorf("%w: castling character %q", ErrInvalidFEN, c)
			}
			if isRook(placement, color, f) && f != kingFile {
				rookFile = f
			}
			shredder = true
		}
		if rookFile < 0 {
			return rights, false, fmt.Errorf("%w: no rook for castling right %q", ErrInvalidFEN, c)
		}

		if rookFile > kingFile {
			rights[color].kingSide = rookFile
		} else {
			rights[color].queenSide = rookFile
		}
	}
	return rights, shredder, nil
}

// castlingFiles derives the shared castling files. White's rights decide
// when both colors disagree.
func castlingFiles(placement map[Square]Piece, rights [2]castleRights, shredder bool) (CastlingFiles, Variant) {
	files := ClassicFiles
	for _, c := range [2]Color{Black, White} {
		if !rights[c].any() {
			continue
		}
		files.King = backRankKing(placement, c)
		if rights[c].kingSide >= 0 {
			files.KingSideRook = rights[c].kingSide
		}
		if rights[c].queenSide >= 0 {
			files.QueenSideRook = rights[c].queenSide
		}
	}
	if shredder || files != ClassicFiles {
		return files, Chess960
	}
	return files, Classic
}

// movedFlag infers whether a piece has moved. Kings and rooks count as
// unmoved only while they hold a castling right.
func movedFlag(p Piece, r castleRights, files CastlingFiles) bool {
	rank := p.Square.Rank()
	switch p.Type {
	case Pawn:
		return rank != p.Color.PawnStartRank()
	case King:
		return !r.any() || rank != p.Color.BackRank() || p.Square.File() != files.King
	case Rook:
		if rank != p.Color.BackRank() {
			return true
		}
		f := p.Square.File()
		return f != r.kingSide && f != r.queenSide
	}
	return rank != p.Color.BackRank()
}

// FEN returns the position in Forsyth-Edwards Notation. Chess960 boards
// write castling rights as Shredder file letters. The move counters are
// not tracked and always read "0 1".
func (b *Board) FEN() string {
	var sb strings.Builder

	for rank := BoardSize - 1; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < BoardSize; file++ {
			p := b.tiles[NewSquare(file, rank)].piece
			if p.IsNone() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.Char())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if b.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(b.castlingField())

	sb.WriteByte(' ')
	if b.enPassantPawn.IsNone() {
		sb.WriteByte('-')
	} else {
		behind, _ := b.enPassantPawn.Square.Offset(0, -b.enPassantPawn.Color.Direction())
		sb.WriteString(behind.String())
	}

	sb.WriteString(" 0 1")
	return sb.String()
}

func (b *Board) castlingField() string {
	var sb strings.Builder
	for c := White; c <= Black; c++ {
		king := b.players[c].king
		if king.Moved {
			continue
		}
		for _, f := range [2]int{b.files.KingSideRook, b.files.QueenSideRook} {
			rook := b.tiles[NewSquare(f, c.BackRank())].piece
			if rook.Type != Rook || rook.Color != c || rook.Moved {
				continue
			}
			var ch byte
			switch {
			case b.variant == Chess960:
				ch = FileLetter(f)
			case f > king.Square.File():
				ch = 'k'
			default:
				ch = 'q'
			}
			if c == White {
				ch -= 'a' - 'A'
			}
			sb.WriteByte(ch)
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}
