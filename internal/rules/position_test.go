package rules

import (
	"errors"
	"testing"

	nchess "github.com/corentings/chess/v2"
)

func mustPosition(t *testing.T, fen string) *Position {
	t.Helper()
	p, err := FromFEN(fen)
	if err != nil {
		t.Fatalf("FromFEN(%q): %v", fen, err)
	}
	return p
}

func TestFromFENRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		fen  string
	}{
		{"empty", ""},
		{"garbage", "not a fen at all"},
		{"missing both kings", "8/8/8/8/8/8/8/8 w - - 0 1"},
		{"missing black king", "8/8/8/8/8/8/8/4K3 w - - 0 1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := FromFEN(tc.fen); !errors.Is(err, ErrInvalidFEN) {
				t.Fatalf("expected ErrInvalidFEN, got %v", err)
			}
		})
	}
}

func TestStartingPositionBasics(t *testing.T) {
	p := StartingPosition()
	if p.Turn() != nchess.White {
		t.Fatalf("expected white to move")
	}
	if p.FullMoveNumber() != 1 {
		t.Fatalf("expected move 1, got %d", p.FullMoveNumber())
	}
	if p.InCheck() {
		t.Fatalf("start position is not check")
	}

	rights := p.CastlingRights()
	if !rights.WhiteKingside || !rights.WhiteQueenside || !rights.BlackKingside || !rights.BlackQueenside {
		t.Fatalf("expected full castling rights, got %+v", rights)
	}

	if got := len(p.LegalTargets(nchess.White)); got != 20 {
		t.Fatalf("white mobility at start = %d, want 20", got)
	}
	if got := len(p.LegalTargets(nchess.Black)); got != 20 {
		t.Fatalf("black mobility at start = %d, want 20", got)
	}
}

func TestLegalTargetsForSideNotOnMove(t *testing.T) {
	p := mustPosition(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	// If white could move again after 1.e4 it would have 30 moves.
	if got := len(p.LegalTargets(nchess.White)); got != 30 {
		t.Fatalf("white mobility after e4 = %d, want 30", got)
	}
	if got := len(p.LegalTargets(nchess.Black)); got != 20 {
		t.Fatalf("black mobility after e4 = %d, want 20", got)
	}
}

func TestParseMoveAcceptsSANAndUCI(t *testing.T) {
	p := StartingPosition()

	san, err := p.ParseMove("e4")
	if err != nil {
		t.Fatalf("parse SAN: %v", err)
	}
	uci, err := p.ParseMove("e2e4")
	if err != nil {
		t.Fatalf("parse UCI: %v", err)
	}
	if san.UCI != "e2e4" || uci.UCI != "e2e4" {
		t.Fatalf("normalized UCI mismatch: %q vs %q", san.UCI, uci.UCI)
	}
	if san.SAN != "e4" {
		t.Fatalf("normalized SAN = %q, want e4", san.SAN)
	}
	if san.IsCapture || san.IsCastle || san.IsPromotion() || san.GivesCheck {
		t.Fatalf("unexpected flags on quiet pawn push: %+v", san)
	}
}

func TestParseMoveRejectsBadMoves(t *testing.T) {
	p := StartingPosition()
	for _, text := range []string{"", "zzz", "e2e5", "Ke4", "a1a1"} {
		if _, err := p.ParseMove(text); !errors.Is(err, ErrInvalidMove) {
			t.Fatalf("ParseMove(%q): expected ErrInvalidMove, got %v", text, err)
		}
	}
}

func TestParseMoveFlags(t *testing.T) {
	t.Run("capture", func(t *testing.T) {
		p := mustPosition(t, "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2")
		d, err := p.ParseMove("exd5")
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if !d.IsCapture || d.IsEnPassant {
			t.Fatalf("want plain capture, got %+v", d)
		}
	})

	t.Run("en passant", func(t *testing.T) {
		p := mustPosition(t, "rnbqkbnr/pppp1ppp/8/8/4pP2/8/PPPPP1PP/RNBQKBNR b KQkq f3 0 3")
		d, err := p.ParseMove("e4f3")
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if !d.IsCapture || !d.IsEnPassant {
			t.Fatalf("want en passant capture, got %+v", d)
		}
	})

	t.Run("castle", func(t *testing.T) {
		p := mustPosition(t, "r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4")
		d, err := p.ParseMove("O-O")
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if !d.IsCastle {
			t.Fatalf("want castle flag, got %+v", d)
		}
		if d.UCI != "e1g1" {
			t.Fatalf("castle UCI = %q", d.UCI)
		}
	})

	t.Run("check", func(t *testing.T) {
		p := mustPosition(t, "r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/8/PPPP1PPP/RNBQK1NR w KQkq - 2 3")
		d, err := p.ParseMove("c4f7")
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if !d.GivesCheck || !d.IsCapture {
			t.Fatalf("want checking capture, got %+v", d)
		}
	})

	t.Run("promotion", func(t *testing.T) {
		p := mustPosition(t, "8/P7/8/8/8/8/k7/7K w - - 0 1")
		d, err := p.ParseMove("a7a8q")
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if !d.IsPromotion() || d.Promotion != nchess.Queen {
			t.Fatalf("want queen promotion, got %+v", d)
		}
	})
}

func TestApplyUCI(t *testing.T) {
	p := StartingPosition()
	after, err := p.ApplyUCI("e2e4")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if after.Turn() != nchess.Black {
		t.Fatalf("expected black to move after e4")
	}
	if p.Turn() != nchess.White {
		t.Fatalf("original position mutated")
	}
	if _, err := p.ApplyUCI("e2e5"); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("expected ErrInvalidMove for illegal UCI, got %v", err)
	}
}

func TestTerminalDetection(t *testing.T) {
	mate := mustPosition(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if !mate.IsCheckmate() {
		t.Fatalf("fool's mate position should be checkmate")
	}
	if mate.IsStalemate() {
		t.Fatalf("checkmate is not stalemate")
	}

	stale := mustPosition(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if !stale.IsStalemate() {
		t.Fatalf("expected stalemate")
	}
	if stale.IsCheckmate() {
		t.Fatalf("stalemate is not checkmate")
	}
}

func TestHasInsufficientMaterial(t *testing.T) {
	cases := []struct {
		fen  string
		want bool
	}{
		{"8/8/8/8/8/5k2/8/4K3 w - - 0 1", true},
		{"8/8/8/8/8/5k2/8/4K2B w - - 0 1", true},
		{"8/8/8/8/8/5k2/8/4KN2 w - - 0 1", true},
		{"8/8/8/8/8/5k2/8/4K2R w - - 0 1", false},
		{"8/8/8/8/8/4pk2/8/4K3 w - - 0 1", false},
		// Bishops on the same square color cannot force progress.
		{"8/8/8/8/8/2b2k2/8/4K2B w - - 0 1", false},
		{"8/8/8/8/8/1b3k2/8/4K2B w - - 0 1", true},
	}
	for _, tc := range cases {
		p := mustPosition(t, tc.fen)
		if got := p.HasInsufficientMaterial(); got != tc.want {
			t.Fatalf("HasInsufficientMaterial(%q) = %v, want %v", tc.fen, got, tc.want)
		}
	}
}
