package board

import "sync"

// MoveStatus is the outcome of Player.MakeMove.
type MoveStatus uint8

const (
	// Done means the move was played and its board is the new game state.
	Done MoveStatus = iota
	// IllegalMove means the move is not in the player's legal-move set.
	IllegalMove
	// LeavesPlayerInCheck means the move would expose the mover's own king.
	LeavesPlayerInCheck
)

// String returns the status name.
func (s MoveStatus) String() string {
	switch s {
	case Done:
		return "done"
	case IllegalMove:
		return "illegal"
	case LeavesPlayerInCheck:
		return "king-exposed"
	default:
		return "unknown"
	}
}

// IsDone reports whether the transition completed.
func (s MoveStatus) IsDone() bool {
	return s == Done
}

// MoveTransition is the result of attempting a move. To is the resulting
// board only when Status is Done; otherwise it is the unchanged From board.
type MoveTransition struct {
	From   *Board
	To     *Board
	Move   Move
	Status MoveStatus
}

// Player is a read-only view of a board for one side. It is created
// together with its Board and never modified afterwards.
type Player struct {
	board   *Board
	color   Color
	king    Piece
	moves   []Move
	inCheck bool

	kingSideCastle  Move
	queenSideCastle Move

	escapeOnce sync.Once
	hasEscape  bool
}

func newPlayer(b *Board, c Color, pseudo []Move) *Player {
	kingBB := b.pieces[c][King]
	if kingBB.PopCount() != 1 {
		panic("board: player constructed without exactly one king")
	}
	p := &Player{
		board:           b,
		color:           c,
		king:            b.tiles[kingBB.LSB()].piece,
		moves:           pseudo,
		kingSideCastle:  NullMove,
		queenSideCastle: NullMove,
	}
	p.inCheck = b.IsAttacked(p.king.Square, c.Other())

	if !p.king.Moved && !p.inCheck {
		p.kingSideCastle = p.castle(true)
		p.queenSideCastle = p.castle(false)
		for _, m := range [2]Move{p.kingSideCastle, p.queenSideCastle} {
			if !m.IsNull() {
				p.moves = append(p.moves, m)
			}
		}
	}
	return p
}

// castle builds the castling move for one wing, or NullMove if it is not
// currently available. The king always lands on the g- or c-file and the
// rook on the f- or d-file, wherever they started.
func (p *Player) castle(kingSide bool) Move {
	b := p.board
	rank := p.color.BackRank()
	if p.king.Square.Rank() != rank {
		return NullMove
	}

	rookFile, kingToFile, rookToFile, kind := b.files.QueenSideRook, 2, 3, KindQueenSideCastle
	if kingSide {
		rookFile, kingToFile, rookToFile, kind = b.files.KingSideRook, 6, 5, KindKingSideCastle
	}
	kingFile := p.king.Square.File()
	if kingSide && rookFile <= kingFile || !kingSide && rookFile >= kingFile {
		return NullMove
	}
	rook := b.tiles[NewSquare(rookFile, rank)].piece
	if rook.Type != Rook || rook.Color != p.color || rook.Moved {
		return NullMove
	}

	kingTo := NewSquare(kingToFile, rank)
	rookTo := NewSquare(rookToFile, rank)

	// Every square either piece crosses, destinations included, must be
	// empty or hold only the king or the castling rook.
	others := b.all &^ SquareBB(p.king.Square) &^ SquareBB(rook.Square)
	span := rankSpan(rank, kingFile, kingToFile) | rankSpan(rank, rookFile, rookToFile)
	if span&others != 0 {
		return NullMove
	}

	// The king may not pass through or land on an attacked square.
	enemy := p.color.Other()
	path := rankSpan(rank, kingFile, kingToFile)
	for path != 0 {
		if b.AttackersOf(path.PopLSB(), enemy, others) != 0 {
			return NullMove
		}
	}
	return newCastle(kind, b, p.king, kingTo, rook, rookTo)
}

// rankSpan returns the squares of one rank between two files, inclusive.
func rankSpan(rank, f1, f2 int) Bitboard {
	if f1 > f2 {
		f1, f2 = f2, f1
	}
	var bb Bitboard
	for f := f1; f <= f2; f++ {
		bb = bb.Set(NewSquare(f, rank))
	}
	return bb
}

// Board returns the board this player views.
func (p *Player) Board() *Board {
	return p.board
}

// Color returns the side this player plays.
func (p *Player) Color() Color {
	return p.color
}

// King returns this side's king.
func (p *Player) King() Piece {
	return p.king
}

// Opponent returns the other side's view of the same board.
func (p *Player) Opponent() *Player {
	return p.board.players[p.color.Other()]
}

// ActivePieces returns this side's pieces on the board.
func (p *Player) ActivePieces() []Piece {
	return p.board.active[p.color]
}

// LegalMoves returns the pseudo-legal moves plus any available castling
// moves. A move in this set may still expose the king; MakeMove reports
// that as LeavesPlayerInCheck. The returned slice must not be modified.
func (p *Player) LegalMoves() []Move {
	return p.moves
}

// PlayableMoves returns the legal moves whose MakeMove status is Done.
func (p *Player) PlayableMoves() []Move {
	playable := make([]Move, 0, len(p.moves))
	for _, m := range p.moves {
		if !p.exposesKing(m) {
			playable = append(playable, m)
		}
	}
	return playable
}

// IsInCheck reports whether an enemy piece attacks this side's king.
func (p *Player) IsInCheck() bool {
	return p.inCheck
}

// IsCheckMate reports whether the side is in check with no escaping move.
func (p *Player) IsCheckMate() bool {
	return p.inCheck && !p.hasEscapeMoves()
}

// IsInStalemate reports whether the side is not in check but has no move
// that keeps its king safe.
func (p *Player) IsInStalemate() bool {
	return !p.inCheck && !p.hasEscapeMoves()
}

// IsCastled reports whether this side has castled during the game.
func (p *Player) IsCastled() bool {
	return p.board.castled[p.color]
}

// CanCastleKingSide reports whether king-side castling is available now.
func (p *Player) CanCastleKingSide() bool {
	return !p.kingSideCastle.IsNull()
}

// CanCastleQueenSide reports whether queen-side castling is available now.
func (p *Player) CanCastleQueenSide() bool {
	return !p.queenSideCastle.IsNull()
}

// CanCastle reports whether either castling move is available now.
func (p *Player) CanCastle() bool {
	return p.CanCastleKingSide() || p.CanCastleQueenSide()
}

// CastleMove returns the available castling move on one wing, or NullMove.
func (p *Player) CastleMove(kingSide bool) Move {
	if kingSide {
		return p.kingSideCastle
	}
	return p.queenSideCastle
}

// hasEscapeMoves is computed at most once; the result never changes
// because the board is immutable.
func (p *Player) hasEscapeMoves() bool {
	p.escapeOnce.Do(func() {
		for _, m := range p.moves {
			if !p.exposesKing(m) {
				p.hasEscape = true
				return
			}
		}
	})
	return p.hasEscape
}

// exposesKing reports whether the mover's king is attacked once m is
// played. Only the resulting placement is staged; no moves are generated
// for it. Capturing the enemy king is never exposing; it only arises when
// asking about the side not to move.
func (p *Player) exposesKing(m Move) bool {
	if m.captured.Type == King {
		return false
	}
	next := placeBoard(m.stage())
	king := next.pieces[p.color][King].LSB()
	return next.IsAttacked(king, p.color.Other())
}

// legalMove returns the member of the legal-move set equal to m.
func (p *Player) legalMove(m Move) (Move, bool) {
	for _, lm := range p.moves {
		if lm.Equal(m) {
			return lm, true
		}
	}
	return NullMove, false
}

// IsMoveLegal reports whether m belongs to the legal-move set.
func (p *Player) IsMoveLegal(m Move) bool {
	_, ok := p.legalMove(m)
	return ok
}

// MakeMove attempts m. Moves outside the legal set, moves that capture a
// king and any move by the player not on turn are IllegalMove; moves that
// leave the mover's king attacked are LeavesPlayerInCheck. Only a Done
// transition carries a new board.
func (p *Player) MakeMove(m Move) MoveTransition {
	lm, ok := p.legalMove(m)
	if !ok || p.color != p.board.sideToMove || lm.captured.Type == King {
		return MoveTransition{From: p.board, To: p.board, Move: m, Status: IllegalMove}
	}
	next := lm.Execute()
	if next.players[p.color].inCheck {
		return MoveTransition{From: p.board, To: p.board, Move: lm, Status: LeavesPlayerInCheck}
	}
	return MoveTransition{From: p.board, To: next, Move: lm, Status: Done}
}
