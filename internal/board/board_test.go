package board

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStandardBoardMoves(t *testing.T) {
	b := NewStandardBoard()

	if got := b.SideToMove(); got != White {
		t.Fatalf("SideToMove() = %v, want white", got)
	}
	if !b.TransitionMove().IsNull() {
		t.Errorf("TransitionMove() = %v, want the null move", b.TransitionMove())
	}

	counts := map[PieceType]int{}
	for _, m := range b.WhitePlayer().LegalMoves() {
		counts[m.Piece().Type]++
	}
	want := map[PieceType]int{Pawn: 16, Knight: 4}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Errorf("white move counts mismatch (-want +got):\n%s", diff)
	}
	if n := len(b.BlackPlayer().LegalMoves()); n != 20 {
		t.Errorf("black has %d moves, want 20", n)
	}
	if n := len(b.AllLegalMoves()); n != 40 {
		t.Errorf("AllLegalMoves() has %d moves, want 40", n)
	}
	if b.WhitePlayer().IsInCheck() || b.WhitePlayer().CanCastle() {
		t.Error("white should be neither in check nor able to castle")
	}
	if got := b.FEN(); got != StartFEN {
		t.Errorf("FEN() = %q, want %q", got, StartFEN)
	}
}

func TestChess960Setup(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		b := NewChess960Board(seed)
		if b.Variant() != Chess960 {
			t.Fatalf("seed %d: Variant() = %v", seed, b.Variant())
		}

		files := b.CastlingFiles()
		if !(files.QueenSideRook < files.King && files.King < files.KingSideRook) {
			t.Errorf("seed %d: king file %d not between rooks %d and %d",
				seed, files.King, files.QueenSideRook, files.KingSideRook)
		}

		bishops := b.Pieces(White, Bishop)
		if bishops.PopCount() != 2 {
			t.Fatalf("seed %d: %d white bishops", seed, bishops.PopCount())
		}
		if bishops&LightSquares == 0 || bishops&DarkSquares == 0 {
			t.Errorf("seed %d: bishops on the same color", seed)
		}

		for f := 0; f < BoardSize; f++ {
			w := b.Tile(NewSquare(f, 0)).Piece()
			bl := b.Tile(NewSquare(f, 7)).Piece()
			if w.Type != bl.Type || w.Color != White || bl.Color != Black {
				t.Errorf("seed %d: file %c not mirrored: %v / %v", seed, FileLetter(f), w, bl)
			}
		}

		for _, p := range []*Player{b.WhitePlayer(), b.BlackPlayer()} {
			castles, others := 0, 0
			for _, m := range p.PlayableMoves() {
				switch {
				case m.IsCastle():
					castles++
				case m.Piece().Type == Pawn || m.Piece().Type == Knight:
					others++
				default:
					t.Errorf("seed %d: unexpected move %v", seed, m)
				}
			}
			// A king next to its castling rook may castle by swapping squares.
			if others < 18 || others > 20 || castles > 1 {
				t.Errorf("seed %d %v: %d moves and %d castles, want 18-20 and at most 1",
					seed, p.Color(), others, castles)
			}
		}
	}
}

func TestChess960SwapCastle(t *testing.T) {
	b, err := ParseFEN("bbnnrkrq/pppppppp/8/8/8/8/PPPPPPPP/BBNNRKRQ w GEge - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	p := b.WhitePlayer()
	if n := len(p.PlayableMoves()); n != 21 {
		t.Errorf("%d playable moves, want 21", n)
	}
	m := p.CastleMove(true)
	if m.IsNull() || p.CanCastleQueenSide() {
		t.Fatalf("king-side castle = %v, queen-side available = %v", m, p.CanCastleQueenSide())
	}
	if m.From() != F1 || m.To() != G1 || m.RookTo() != F1 {
		t.Errorf("castle moves king %v-%v and rook to %v, want f1-g1 and f1", m.From(), m.To(), m.RookTo())
	}
	next := p.MakeMove(m)
	if !next.Status.IsDone() {
		t.Fatalf("MakeMove(O-O) = %v", next.Status)
	}
	if k, r := next.To.PieceAt(G1), next.To.PieceAt(F1); k.Type != King || r.Type != Rook {
		t.Errorf("after O-O: g1 = %v, f1 = %v", k, r)
	}
}

func TestChess960Deterministic(t *testing.T) {
	a, b := NewChess960Board(42), NewChess960Board(42)
	if a.FEN() != b.FEN() {
		t.Errorf("same seed gave %q and %q", a.FEN(), b.FEN())
	}
}

func TestExecuteRecordsTransition(t *testing.T) {
	b := NewStandardBoard()
	before := b.FEN()

	m, err := ParseMove(b, "e2e4")
	if err != nil {
		t.Fatalf("ParseMove() error = %v", err)
	}
	if m.Kind() != KindPawnJump {
		t.Errorf("Kind() = %v, want %v", m.Kind(), KindPawnJump)
	}

	next := m.Execute()
	if !next.TransitionMove().Equal(m) {
		t.Errorf("TransitionMove() = %v, want %v", next.TransitionMove(), m)
	}
	if next.SideToMove() != Black {
		t.Errorf("SideToMove() = %v, want black", next.SideToMove())
	}
	if ep, ok := next.EnPassantPawn(); !ok || ep.Square != E4 {
		t.Errorf("EnPassantPawn() = %v, %v; want pawn on e4", ep, ok)
	}
	if p := next.PieceAt(E4); p.Type != Pawn || !p.Moved {
		t.Errorf("PieceAt(e4) = %+v, want a moved pawn", p)
	}

	// The source board is untouched, and replaying gives the same result.
	if got := b.FEN(); got != before {
		t.Errorf("source board changed: %q", got)
	}
	if again := m.Execute(); again.FEN() != next.FEN() {
		t.Errorf("second Execute() = %q, want %q", again.FEN(), next.FEN())
	}

	// The en passant pawn only lives for one ply.
	reply, _ := ParseMove(next, "g8f6")
	if _, ok := reply.Execute().EnPassantPawn(); ok {
		t.Error("en passant pawn survived a reply")
	}
}

func TestCastlingKingSide(t *testing.T) {
	b := playSAN(t, NewStandardBoard(), "e4", "e5", "Nf3", "Nc6", "Bb5", "d6")

	white := b.WhitePlayer()
	if !white.CanCastleKingSide() {
		t.Fatal("white should be able to castle king side")
	}
	if white.CanCastleQueenSide() {
		t.Error("white should not be able to castle queen side")
	}

	m := white.CastleMove(true)
	if m.Kind() != KindKingSideCastle || m.To() != G1 || m.Rook().Square != H1 || m.RookTo() != F1 {
		t.Fatalf("castle move = %v kind %v rook %v->%v", m, m.Kind(), m.Rook(), m.RookTo())
	}
	if got := m.SAN(); got != "O-O" {
		t.Errorf("SAN() = %q, want O-O", got)
	}

	tr := white.MakeMove(m)
	if tr.Status != Done {
		t.Fatalf("MakeMove status = %v", tr.Status)
	}
	after := tr.To
	if k := after.PieceAt(G1); k.Type != King || k.Color != White {
		t.Errorf("g1 = %v, want white king", k)
	}
	if r := after.PieceAt(F1); r.Type != Rook || r.Color != White {
		t.Errorf("f1 = %v, want white rook", r)
	}
	if !after.WhitePlayer().IsCastled() {
		t.Error("white should be marked castled")
	}
	if after.BlackPlayer().IsCastled() || after.BlackPlayer().CanCastle() {
		t.Error("black should neither be castled nor able to castle")
	}
	if got, want := after.FEN(), "r1bqkbnr/ppp2ppp/2np4/1B2p3/4P3/5N2/PPPP1PPP/RNBQ1RK1 b kq - 0 1"; got != want {
		t.Errorf("FEN() = %q, want %q", got, want)
	}
}

func TestNoCastlingOutOfCheck(t *testing.T) {
	b, err := ParseFEN("4k3/8/8/8/1b6/8/8/4K2R w K - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	white := b.WhitePlayer()
	if !white.IsInCheck() {
		t.Fatal("white should be in check from b4")
	}
	if white.CanCastle() {
		t.Error("castling offered while in check")
	}
	for _, m := range white.LegalMoves() {
		if m.IsCastle() {
			t.Errorf("castle %v in legal moves", m)
		}
	}

	// The same castle taken from the position without the bishop is refused.
	quiet, err := ParseFEN("4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	castle := quiet.WhitePlayer().CastleMove(true)
	if castle.IsNull() {
		t.Fatal("castling missing without the bishop")
	}
	if tr := white.MakeMove(castle); tr.Status != IllegalMove {
		t.Errorf("MakeMove(O-O) in check status = %v, want %v", tr.Status, IllegalMove)
	}
}

func TestNoCastlingThroughAttack(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want bool
	}{
		{"clear", "4k3/8/8/8/8/8/8/4K2R w K - 0 1", true},
		{"f1 attacked", "4kr2/8/8/8/8/8/8/4K2R w K - 0 1", false},
		{"g1 attacked", "4k1r1/8/8/8/8/8/8/4K2R w K - 0 1", false},
		{"h1 attacked only", "4k2r/8/8/8/8/8/8/4K2R w K - 0 1", true},
		{"blocked", "4k3/8/8/8/8/8/8/4KN1R w K - 0 1", false},
		{"pawn covers g1", "4k3/8/8/8/8/8/7p/4K2R w K - 0 1", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatal(err)
			}
			if got := b.WhitePlayer().CanCastleKingSide(); got != tc.want {
				t.Errorf("CanCastleKingSide() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestChess960CastlingSwapsKingAndRook(t *testing.T) {
	// King d1 and queen-side rook c1: castling swaps them.
	b, err := ParseFEN("6k1/8/8/8/8/8/8/2RK3R w CH - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if b.Variant() != Chess960 {
		t.Fatalf("Variant() = %v", b.Variant())
	}

	m, err := ParseMove(b, "d1c1")
	if err != nil {
		t.Fatalf("ParseMove(d1c1) error = %v", err)
	}
	if m.Kind() != KindQueenSideCastle {
		t.Fatalf("Kind() = %v, want queen-side castle", m.Kind())
	}
	if got := m.String(); got != "d1c1" {
		t.Errorf("String() = %q, want d1c1", got)
	}

	next := m.Execute()
	if k := next.PieceAt(C1); k.Type != King {
		t.Errorf("c1 = %v, want king", k)
	}
	if r := next.PieceAt(D1); r.Type != Rook {
		t.Errorf("d1 = %v, want rook", r)
	}
	if r := next.PieceAt(H1); r.Type != Rook || r.Moved {
		t.Errorf("h1 = %+v, want unmoved rook", r)
	}
	if next.WhitePlayer().CanCastle() {
		t.Error("white can castle again after castling")
	}
}

func TestMakeMoveStatus(t *testing.T) {
	// The e2 pawn is pinned by the rook on e8 but may advance along the pin.
	b, err := ParseFEN("4r1k1/8/8/8/8/8/4P3/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	pinned := FindMove(b, E2, E3, NoPieceType)
	if pinned.IsNull() {
		t.Fatal("e2e3 missing from the legal-move set")
	}
	if tr := b.WhitePlayer().MakeMove(pinned); tr.Status != Done {
		t.Errorf("e2e3 status = %v, want %v", tr.Status, Done)
	}

	bld := NewBuilder().
		SetPiece(NewPiece(King, White, E1).MovedTo(E1)).
		SetPiece(NewPiece(Bishop, White, E2).MovedTo(E2)).
		SetPiece(NewPiece(Rook, Black, E8).MovedTo(E8)).
		SetPiece(NewPiece(King, Black, G8).MovedTo(G8))
	b, err = bld.Build()
	if err != nil {
		t.Fatal(err)
	}

	exposing := FindMove(b, E2, D3, NoPieceType)
	if exposing.IsNull() {
		t.Fatal("Be2-d3 missing from the legal-move set")
	}
	tr := b.WhitePlayer().MakeMove(exposing)
	if tr.Status != LeavesPlayerInCheck {
		t.Errorf("Bd3 status = %v, want %v", tr.Status, LeavesPlayerInCheck)
	}
	if tr.To != b {
		t.Error("a rejected move must return the unchanged board")
	}

	blackMove := b.BlackPlayer().LegalMoves()[0]
	if tr := b.BlackPlayer().MakeMove(blackMove); tr.Status != IllegalMove {
		t.Errorf("moving out of turn: status = %v, want %v", tr.Status, IllegalMove)
	}

	other := NewStandardBoard().WhitePlayer().LegalMoves()[0]
	if tr := b.WhitePlayer().MakeMove(other); tr.Status != IllegalMove {
		t.Errorf("foreign move: status = %v, want %v", tr.Status, IllegalMove)
	}
}

func TestEnPassant(t *testing.T) {
	b := playSAN(t, NewStandardBoard(), "e4", "a6", "e5", "d5")

	m, err := ParseMove(b, "e5d6")
	if err != nil {
		t.Fatalf("ParseMove(e5d6) error = %v", err)
	}
	if m.Kind() != KindEnPassant {
		t.Fatalf("Kind() = %v, want en passant", m.Kind())
	}
	if m.Captured().Square != D5 {
		t.Errorf("Captured() = %v, want the pawn on d5", m.Captured())
	}

	next := m.Execute()
	if !next.IsEmpty(D5) {
		t.Error("captured pawn still on d5")
	}
	if p := next.PieceAt(D6); p.Type != Pawn || p.Color != White {
		t.Errorf("d6 = %v, want white pawn", p)
	}
	if got := m.SAN(); got != "exd6" {
		t.Errorf("SAN() = %q, want exd6", got)
	}
}

func TestPromotion(t *testing.T) {
	b, err := ParseFEN("1r2k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	var pushes, captures []PieceType
	for _, m := range b.WhitePlayer().LegalMoves() {
		if !m.IsPromotion() {
			continue
		}
		switch m.BaseKind() {
		case KindPawnMove:
			pushes = append(pushes, m.Promotion())
		case KindPawnCapture:
			captures = append(captures, m.Promotion())
		}
	}
	want := PromotionTypes[:]
	if diff := cmp.Diff(want, pushes); diff != "" {
		t.Errorf("push promotions mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, captures); diff != "" {
		t.Errorf("capture promotions mismatch (-want +got):\n%s", diff)
	}

	m, err := ParseMove(b, "a7b8n")
	if err != nil {
		t.Fatal(err)
	}
	next := m.Execute()
	if p := next.PieceAt(B8); p.Type != Knight || p.Color != White {
		t.Errorf("b8 = %v, want white knight", p)
	}
	if got := m.SAN(); got != "axb8=N" {
		t.Errorf("SAN() = %q, want axb8=N", got)
	}

	q, _ := ParseMove(b, "a7a8")
	if q.Promotion() != Queen {
		t.Errorf("default promotion = %v, want queen", q.Promotion())
	}
	if got := q.SAN(); got != "a8=Q" {
		t.Errorf("SAN() = %q, want a8=Q", got)
	}
}

func TestSANDisambiguation(t *testing.T) {
	tests := []struct {
		fen      string
		from, to Square
		want     string
	}{
		{"4k3/8/8/8/8/8/8/1N2KN2 w - - 0 1", B1, D2, "Nbd2"},
		{"4k3/R7/8/8/8/8/8/R3K3 w - - 0 1", A1, A4, "R1a4"},
		{"4k3/8/8/8/8/8/8/4K2R w - - 0 1", H1, H8, "Rh8+"},
		{"6k1/5ppp/8/8/8/8/8/R3K3 w - - 0 1", A1, A8, "Ra8#"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			b, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatal(err)
			}
			m := FindMove(b, tc.from, tc.to, NoPieceType)
			if got := m.SAN(); got != tc.want {
				t.Errorf("SAN() = %q, want %q", got, tc.want)
			}
			parsed, err := ParseSAN(b, tc.want)
			if err != nil {
				t.Fatalf("ParseSAN(%q) error = %v", tc.want, err)
			}
			if !parsed.Equal(m) {
				t.Errorf("ParseSAN(%q) = %v, want %v", tc.want, parsed, m)
			}
		})
	}
}

func TestMovesToSAN(t *testing.T) {
	want := []string{"e4", "e5", "Nf3", "Nc6", "Bb5", "a6", "Bxc6", "dxc6", "O-O", "Bg4"}

	b := NewStandardBoard()
	var moves []Move
	for _, s := range want {
		m, err := ParseSAN(b, s)
		if err != nil {
			t.Fatalf("ParseSAN(%q) error = %v", s, err)
		}
		moves = append(moves, m)
		b = m.Execute()
	}
	if diff := cmp.Diff(want, MovesToSAN(moves)); diff != "" {
		t.Errorf("MovesToSAN mismatch (-want +got):\n%s", diff)
	}
}

func TestLookupErrors(t *testing.T) {
	b := NewStandardBoard()

	if _, err := b.TileAt(8, 0); !errors.Is(err, ErrInvalidSquare) {
		t.Errorf("TileAt(8,0) error = %v, want ErrInvalidSquare", err)
	}
	if _, err := b.TileByName("z9"); !errors.Is(err, ErrInvalidSquare) {
		t.Errorf("TileByName(z9) error = %v, want ErrInvalidSquare", err)
	}
	tile, err := b.TileByName("e1")
	if err != nil || tile.Piece().Type != King {
		t.Errorf("TileByName(e1) = %v, %v; want king", tile, err)
	}
	if _, err := ParseMove(b, "e2e5"); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("ParseMove(e2e5) error = %v, want ErrIllegalMove", err)
	}
	if _, err := ParseSAN(b, "O-O"); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("ParseSAN(O-O) error = %v, want ErrIllegalMove", err)
	}
	if m := FindMove(b, E2, E5, NoPieceType); !m.IsNull() {
		t.Errorf("FindMove(e2,e5) = %v, want the null move", m)
	}
}

func TestNullMoveExecutePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("executing the null move did not panic")
		}
	}()
	NullMove.Execute()
}

func TestBuildValidation(t *testing.T) {
	_, err := NewBuilder().SetPiece(NewPiece(King, White, E1)).Build()
	if !errors.Is(err, ErrMissingKing) {
		t.Errorf("Build() without black king error = %v, want ErrMissingKing", err)
	}

	bld := NewBuilder().
		SetPiece(NewPiece(King, White, E1)).
		SetPiece(NewPiece(King, Black, E8))
	for sq := A2; sq <= H3; sq++ {
		bld.SetPiece(NewPiece(Knight, White, sq))
	}
	if _, err := bld.Build(); !errors.Is(err, ErrTooManyPieces) {
		t.Errorf("Build() with 17 white pieces error = %v, want ErrTooManyPieces", err)
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 1",
		"bqnb1rkr/pp3ppp/3ppn2/2p5/5P2/P2P4/NPP1P1PP/BQ1BNRKR w HFhf - 0 1",
		"4k3/8/8/8/8/8/8/4K2R w K - 0 1",
	}
	for _, fen := range fens {
		b, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q) error = %v", fen, err)
		}
		if got := b.FEN(); got != fen {
			t.Errorf("FEN() = %q, want %q", got, fen)
		}
	}
}

func TestParseFENErrors(t *testing.T) {
	bad := []string{
		"",
		"8/8/8/8/8/8/8 w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"8/8/8/8/8/8/8/4K3 w - - 0 1",
		"4k3/8/8/8/8/8/8/4K3 w K - 0 1",
		"4k3/8/8/8/8/8/8/4K3 w - e3 0 1",
		"4k3/4R3/8/8/8/8/8/4K3 w - - 0 1",
		"P3k3/8/8/8/8/8/8/4K3 w - - 0 1",
	}
	for _, fen := range bad {
		if _, err := ParseFEN(fen); !errors.Is(err, ErrInvalidFEN) {
			t.Errorf("ParseFEN(%q) error = %v, want ErrInvalidFEN", fen, err)
		}
	}
}

func TestAttackedSquares(t *testing.T) {
	b := NewStandardBoard()
	tests := []struct {
		sq   Square
		by   Color
		want bool
	}{
		{E3, White, true},  // pawn diagonals from d2 and f2
		{E4, White, false}, // nothing reaches the fourth rank
		{F3, White, true},  // knight g1
		{E6, Black, true},
		{E5, Black, false},
	}
	for _, tc := range tests {
		if got := b.IsAttacked(tc.sq, tc.by); got != tc.want {
			t.Errorf("IsAttacked(%v, %v) = %v, want %v", tc.sq, tc.by, got, tc.want)
		}
	}
}
