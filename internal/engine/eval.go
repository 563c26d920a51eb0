// Package engine implements the computer opponent: a classical evaluator
// and minimax / alpha-beta move strategies over immutable boards.
package engine

import (
	"github.com/hailam/chessplay960/internal/board"
)

// Evaluation constants
const (
	PawnValue   = 100
	KnightValue = 320
	BishopValue = 330
	RookValue   = 500
	QueenValue  = 900
)

// Piece values array for quick lookup; the king is priceless and scores 0.
var pieceValues = [7]int{PawnValue, KnightValue, BishopValue, RookValue, QueenValue, 0, 0}

// kingAttackerValue stands in for the king when it is the capturing piece,
// so a king capture never counts as winning material.
const kingAttackerValue = 10 * QueenValue

// attackerValue is the value risked by a piece of type pt when it captures.
func attackerValue(pt board.PieceType) int {
	if pt == board.King {
		return kingAttackerValue
	}
	return pieceValues[pt]
}

const (
	// checkmateBonus is multiplied by the remaining depth plus one, so a
	// mate found nearer the root outscores a deeper one.
	checkmateBonus = 100000

	mobilityMultiplier = 5
	castledBonus       = 60
	castleCapableBonus = 25
	attackBonus        = 10
)

// Pawn structure penalties
const (
	doubledPawnPenalty  = -15
	isolatedPawnPenalty = -12
)

// Rook bonuses
const (
	rookOpenFileBonus     = 25
	rookConnectedBonus    = 15
	rookSharesFileKing    = 10
	rookSharesFileQueen   = 15
	bishopPairBonus       = 40
	bishopComplementBonus = 3
)

// King safety weights
const (
	pawnShieldBonus      = 10  // Bonus per pawn in front of king
	pawnShieldMissing    = -15 // Penalty per missing shield pawn
	pawnStormPenalty     = -8  // Penalty per enemy pawn near the king
	openFileNearKing     = -20 // Penalty for open file near king
	semiOpenFileNearKing = -10 // Penalty for semi-open file
)

// King safety weights per attacker type
var attackerWeight = [6]int{0, 20, 20, 40, 80, 0} // Pawn, Knight, Bishop, Rook, Queen, King

// endgameMaterial is the non-pawn material per side below which the king
// switches to its endgame table.
const endgameMaterial = RookValue + BishopValue

// Evaluator scores a board from White's point of view: positive favours
// White. depth is the remaining search depth at the scored node.
type Evaluator interface {
	Evaluate(b *board.Board, depth int) int
}

// StandardEvaluator is the classical multi-term evaluator.
type StandardEvaluator struct{}

// Evaluate implements Evaluator. Drawn positions score 0.
func (StandardEvaluator) Evaluate(b *board.Board, depth int) int {
	if b.IsInsufficientMaterial() || b.CurrentPlayer().IsInStalemate() {
		return 0
	}
	return scorePlayer(b, board.White, depth) - scorePlayer(b, board.Black, depth)
}

// Evaluate scores b with the standard evaluator.
func Evaluate(b *board.Board, depth int) int {
	return StandardEvaluator{}.Evaluate(b, depth)
}

func scorePlayer(b *board.Board, c board.Color, depth int) int {
	p := b.Player(c)
	return material(b, c) +
		mobility(p) +
		checkmate(p, depth) +
		castled(p) +
		attacks(p) +
		pawnStructure(b, c) +
		rookStructure(b, c) +
		bishopStructure(b, c) +
		kingSafety(b, c)
}

// IsEndgame reports whether both sides are down to light material.
func IsEndgame(b *board.Board) bool {
	for c := board.White; c <= board.Black; c++ {
		if nonPawnMaterial(b, c) > endgameMaterial {
			return false
		}
	}
	return true
}

func nonPawnMaterial(b *board.Board, c board.Color) int {
	total := 0
	for pt := board.Knight; pt <= board.Queen; pt++ {
		total += b.Pieces(c, pt).PopCount() * pieceValues[pt]
	}
	return total
}

// material sums piece values and piece-square bonuses.
func material(b *board.Board, c board.Color) int {
	endgame := IsEndgame(b)
	score := 0
	for _, p := range b.ActivePieces(c) {
		score += pieceValues[p.Type] + pieceSquare(p, endgame)
	}
	return score
}

// mobility rewards having more moves than the opponent.
func mobility(p *board.Player) int {
	own := len(p.LegalMoves())
	opp := max(len(p.Opponent().LegalMoves()), 1)
	return mobilityMultiplier * own * 10 / opp
}

// checkmate awards the bonus when the opponent is mated.
func checkmate(p *board.Player, depth int) int {
	if !p.Opponent().IsCheckMate() {
		return 0
	}
	return checkmateBonus * (max(depth, 0) + 1)
}

func castled(p *board.Player) int {
	switch {
	case p.IsCastled():
		return castledBonus
	case p.CanCastle():
		return castleCapableBonus
	}
	return 0
}

// attacks counts captures of a piece worth more than its attacker.
func attacks(p *board.Player) int {
	count := 0
	for _, m := range p.LegalMoves() {
		if !m.IsCapture() || m.Captured().Type == board.King {
			continue
		}
		if attackerValue(m.Piece().Type) < pieceValues[m.Captured().Type] {
			count++
		}
	}
	return attackBonus * count
}

// pawnStructure penalises doubled and isolated pawns.
func pawnStructure(b *board.Board, c board.Color) int {
	pawns := b.Pieces(c, board.Pawn)
	score := 0
	for f := 0; f < board.BoardSize; f++ {
		onFile := (pawns & board.FileMask[f]).PopCount()
		if onFile == 0 {
			continue
		}
		if onFile > 1 {
			score += doubledPawnPenalty * (onFile - 1)
		}
		if pawns&adjacentFiles(f) == 0 {
			score += isolatedPawnPenalty * onFile
		}
	}
	return score
}

func adjacentFiles(f int) board.Bitboard {
	var adj board.Bitboard
	if f > 0 {
		adj |= board.FileMask[f-1]
	}
	if f < board.BoardSize-1 {
		adj |= board.FileMask[f+1]
	}
	return adj
}

// rookStructure rewards open files, connected rooks and rooks that share a
// file with the enemy king or queen.
func rookStructure(b *board.Board, c board.Color) int {
	rooks := b.Pieces(c, board.Rook)
	if rooks == 0 {
		return 0
	}
	allPawns := b.Pieces(board.White, board.Pawn) | b.Pieces(board.Black, board.Pawn)
	enemy := c.Other()
	enemyKing := b.Pieces(enemy, board.King)
	enemyQueens := b.Pieces(enemy, board.Queen)

	score := 0
	squares := rooks.Squares()
	for i, sq := range squares {
		file := board.FileMask[sq.File()]
		if allPawns&file == 0 {
			score += rookOpenFileBonus
		}
		if enemyKing&file != 0 {
			score += rookSharesFileKing
		}
		if enemyQueens&file != 0 {
			score += rookSharesFileQueen
		}
		for _, other := range squares[i+1:] {
			aligned := sq.File() == other.File() || sq.Rank() == other.Rank()
			if aligned && board.Between(sq, other)&b.AllOccupied() == 0 {
				score += rookConnectedBonus
			}
		}
	}
	return score
}

// bishopStructure rewards the bishop pair, or a lone bishop whose pawns sit
// on the squares it cannot cover.
func bishopStructure(b *board.Board, c board.Color) int {
	bishops := b.Pieces(c, board.Bishop)
	switch bishops.PopCount() {
	case 0:
		return 0
	case 1:
		missing := board.DarkSquares
		if bishops&board.DarkSquares != 0 {
			missing = board.LightSquares
		}
		return bishopComplementBonus * (b.Pieces(c, board.Pawn) & missing).PopCount()
	}
	if bishops&board.LightSquares != 0 && bishops&board.DarkSquares != 0 {
		return bishopPairBonus
	}
	return 0
}

// kingSafety scores the pawn shield, enemy pawn storms, open files near the
// king while the enemy has major pieces, and attackers of the king zone.
func kingSafety(b *board.Board, c board.Color) int {
	king := b.Player(c).King()
	kingSq := king.Square
	enemy := c.Other()
	ownPawns := b.Pieces(c, board.Pawn)
	enemyPawns := b.Pieces(enemy, board.Pawn)
	enemyMajors := b.Pieces(enemy, board.Rook) | b.Pieces(enemy, board.Queen)

	zone := board.KingAttacks(kingSq) | board.SquareBB(kingSq)
	if c == board.White {
		zone |= zone.North()
	} else {
		zone |= zone.South()
	}

	score := 0
	dir := c.Direction()
	for f := kingSq.File() - 1; f <= kingSq.File()+1; f++ {
		if f < 0 || f >= board.BoardSize {
			continue
		}
		fileMask := board.FileMask[f]

		// Shield: an own pawn one or two ranks ahead of the king.
		shielded := false
		for step := 1; step <= 2; step++ {
			r := kingSq.Rank() + dir*step
			if r >= 0 && r < board.BoardSize && ownPawns.IsSet(board.NewSquare(f, r)) {
				shielded = true
				break
			}
		}
		if shielded {
			score += pawnShieldBonus
		} else {
			score += pawnShieldMissing
		}

		// Storm: enemy pawns within three ranks ahead of the king.
		for storm := enemyPawns & fileMask; storm != 0; {
			sq := storm.PopLSB()
			ahead := (sq.Rank() - kingSq.Rank()) * dir
			if ahead > 0 && ahead <= 3 {
				score += pawnStormPenalty
			}
		}

		if enemyMajors != 0 && ownPawns&fileMask == 0 {
			if enemyPawns&fileMask == 0 {
				score += openFileNearKing
			} else {
				score += semiOpenFileNearKing
			}
		}
	}

	attackerCount, weight := 0, 0
	for _, p := range b.ActivePieces(enemy) {
		if p.Type == board.King || p.Type == board.Pawn {
			continue
		}
		if board.AttacksFrom(p, b.AllOccupied())&zone != 0 {
			attackerCount++
			weight += attackerWeight[p.Type]
		}
	}
	// More attackers are disproportionately worse.
	if attackerCount >= 2 {
		weight = weight * attackerCount / 2
	}
	return score - weight
}
