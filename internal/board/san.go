package board

import (
	"fmt"
	"strings"
)

// SAN returns the move in Standard Algebraic Notation, with a check or
// mate suffix. It must be called on a move of the side to move.
func (m Move) SAN() string {
	if m.IsNull() {
		return "-"
	}

	var sb strings.Builder
	switch {
	case m.kind == KindKingSideCastle:
		sb.WriteString("O-O")
	case m.kind == KindQueenSideCastle:
		sb.WriteString("O-O-O")
	default:
		pt := m.piece.Type
		if pt != Pawn {
			sb.WriteByte("PNBRQK"[pt])
			sb.WriteString(disambiguation(m))
		}
		if m.IsCapture() {
			if pt == Pawn {
				sb.WriteByte(FileLetter(m.From().File()))
			}
			sb.WriteByte('x')
		}
		sb.WriteString(m.to.String())
		if m.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteByte("PNBRQK"[m.promotion])
		}
	}

	next := m.Execute()
	switch opp := next.CurrentPlayer(); {
	case opp.IsCheckMate():
		sb.WriteByte('#')
	case opp.IsInCheck():
		sb.WriteByte('+')
	}
	return sb.String()
}

// disambiguation returns the origin file, rank or square needed when
// another piece of the same type can also reach the destination.
func disambiguation(m Move) string {
	from := m.From()
	player := m.board.Player(m.piece.Color)

	var sameFile, sameRank, ambiguous bool
	for _, other := range player.PlayableMoves() {
		if other.to != m.to || other.From() == from || other.piece.Type != m.piece.Type || other.IsCastle() {
			continue
		}
		ambiguous = true
		if other.From().File() == from.File() {
			sameFile = true
		}
		if other.From().Rank() == from.Rank() {
			sameRank = true
		}
	}

	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return string(FileLetter(from.File()))
	case !sameRank:
		return string(rankDigits[from.Rank()])
	}
	return from.String()
}

// ParseSAN resolves a SAN string against the moves of the side to move.
func ParseSAN(b *Board, s string) (Move, error) {
	orig := s
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "+#!?")

	switch s {
	case "O-O", "0-0":
		if m := FindCastle(b, true); !m.IsNull() {
			return m, nil
		}
		return NullMove, fmt.Errorf("%w: %s", ErrIllegalMove, orig)
	case "O-O-O", "0-0-0":
		if m := FindCastle(b, false); !m.IsNull() {
			return m, nil
		}
		return NullMove, fmt.Errorf("%w: %s", ErrIllegalMove, orig)
	}

	promo := NoPieceType
	if idx := strings.Index(s, "="); idx >= 0 && idx+1 < len(s) {
		promo = PieceTypeFromChar(s[idx+1])
		s = s[:idx]
	}

	isCapture := strings.Contains(s, "x")
	s = strings.ReplaceAll(s, "x", "")

	pt := Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		pt = PieceTypeFromChar(s[0])
		s = s[1:]
	}

	if len(s) < 2 {
		return NullMove, fmt.Errorf("%w: %s", ErrIllegalMove, orig)
	}
	dest, err := ParseSquare(s[len(s)-2:])
	if err != nil {
		return NullMove, err
	}
	s = s[:len(s)-2]

	fileHint, rankHint := -1, -1
	for i := 0; i < len(s); i++ {
		c := s[i]
		if f, ok := FileFromLetter(c); ok {
			fileHint = f
		} else if c >= '1' && c <= '8' {
			rankHint = int(c - '1')
		}
	}

	for _, m := range b.CurrentPlayer().PlayableMoves() {
		if m.IsCastle() || m.to != dest || m.piece.Type != pt {
			continue
		}
		if fileHint >= 0 && m.From().File() != fileHint {
			continue
		}
		if rankHint >= 0 && m.From().Rank() != rankHint {
			continue
		}
		if isCapture && !m.IsCapture() {
			continue
		}
		if m.IsPromotion() && m.promotion != promo && !(promo == NoPieceType && m.promotion == Queen) {
			continue
		}
		return m, nil
	}
	return NullMove, fmt.Errorf("%w: %s", ErrIllegalMove, orig)
}

// MovesToSAN converts a line of moves to SAN. Each move carries the board
// it was played on, so the line needs no starting position.
func MovesToSAN(moves []Move) []string {
	result := make([]string, 0, len(moves))
	for _, m := range moves {
		result = append(result, m.SAN())
	}
	return result
}
