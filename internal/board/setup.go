package board

import "math/rand"

// standardBackRank is the classic piece order from the a-file to the h-file.
var standardBackRank = [BoardSize]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewStandardBoard returns the initial position of standard chess.
func NewStandardBoard() *Board {
	return setupBoard(standardBackRank, Classic, ClassicFiles)
}

// NewChess960Board returns a Fischer Random initial position derived from
// seed. The same seed always yields the same position.
func NewChess960Board(seed int64) *Board {
	order, files := Chess960BackRank(rand.New(rand.NewSource(seed)))
	return setupBoard(order, Chess960, files)
}

// NewBoardForVariant returns the initial position for a variant. The seed
// is ignored for classic chess.
func NewBoardForVariant(v Variant, seed int64) *Board {
	if v == Chess960 {
		return NewChess960Board(seed)
	}
	return NewStandardBoard()
}

// Chess960BackRank draws a legal Chess960 back rank: bishops on opposite
// colored squares, then the queen and both knights on free files, then
// king and rooks on the three files left with the king between the rooks.
func Chess960BackRank(rng *rand.Rand) ([BoardSize]PieceType, CastlingFiles) {
	var order [BoardSize]PieceType
	for i := range order {
		order[i] = NoPieceType
	}

	// a1 is dark, so even files are dark squares on the first rank.
	order[2*rng.Intn(4)] = Bishop
	order[2*rng.Intn(4)+1] = Bishop

	for _, pt := range [3]PieceType{Queen, Knight, Knight} {
		free := freeFiles(order)
		order[free[rng.Intn(len(free))]] = pt
	}

	free := freeFiles(order)
	order[free[0]] = Rook
	order[free[1]] = King
	order[free[2]] = Rook
	return order, CastlingFiles{King: free[1], KingSideRook: free[2], QueenSideRook: free[0]}
}

func freeFiles(order [BoardSize]PieceType) []int {
	free := make([]int, 0, BoardSize)
	for f, pt := range order {
		if pt == NoPieceType {
			free = append(free, f)
		}
	}
	return free
}

// setupBoard places mirrored back ranks and full pawn ranks for both sides.
func setupBoard(order [BoardSize]PieceType, v Variant, files CastlingFiles) *Board {
	bld := NewBuilder().SetVariant(v, files).SetMoveMaker(White)
	for c := White; c <= Black; c++ {
		for f := 0; f < BoardSize; f++ {
			bld.SetPiece(NewPiece(order[f], c, NewSquare(f, c.BackRank())))
			bld.SetPiece(NewPiece(Pawn, c, NewSquare(f, c.PawnStartRank())))
		}
	}
	return bld.mustBuild()
}
