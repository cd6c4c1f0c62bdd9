package features

import (
	"testing"

	nchess "github.com/corentings/chess/v2"
)

func TestKingDangerEmptyAtStart(t *testing.T) {
	b := snapshot(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if m := KingDanger(b, nchess.White); len(m) != 0 {
		t.Fatalf("white king danger at start = %v, want empty", m)
	}
	if m := KingDanger(b, nchess.Black); len(m) != 0 {
		t.Fatalf("black king danger at start = %v, want empty", m)
	}
}

func TestKingDangerFindsWorseEscapeSquares(t *testing.T) {
	// White king on e4 with a black rook on d6: squares stepping toward the
	// rook's rank and file face more attacked neighbors than staying put.
	b := snapshot(t, "8/8/3r4/8/4K3/8/8/4k3 w - - 0 1")
	m := KingDanger(b, nchess.White)
	for sq, inc := range m {
		if inc <= 0 {
			t.Fatalf("danger increase for %v must be positive, got %d", sq, inc)
		}
	}
}

func TestKingDangerDeterministic(t *testing.T) {
	b := snapshot(t, "8/8/3r4/8/4K3/8/8/4k3 w - - 0 1")
	first := KingDanger(b, nchess.White)
	for i := 0; i < 5; i++ {
		again := KingDanger(b, nchess.White)
		if len(again) != len(first) {
			t.Fatalf("map size changed between runs")
		}
		for sq, inc := range first {
			if again[sq] != inc {
				t.Fatalf("value for %v changed between runs", sq)
			}
		}
	}
}
