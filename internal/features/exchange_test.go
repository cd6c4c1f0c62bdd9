package features

import (
	"testing"

	nchess "github.com/corentings/chess/v2"

	"github.com/chessreact/move-reactor/internal/rules"
)

func TestUnderdefendedLoneKnightWithNoAttackers(t *testing.T) {
	b := snapshot(t, "8/8/8/4N3/8/8/8/4K2k w - - 0 1")
	ud := UnderdefendedPieces(b)
	if len(ud.White) != 0 || len(ud.Black) != 0 {
		t.Fatalf("no attackers means nothing underdefended, got %+v", ud)
	}
}

func TestUnderdefendedPieceAttackedByPawn(t *testing.T) {
	// Black pawn on d6 attacks the undefended knight on e5.
	b := snapshot(t, "8/8/3p4/4N3/8/8/8/4K2k w - - 0 1")
	ud := UnderdefendedPieces(b)
	if len(ud.White) != 1 {
		t.Fatalf("expected one underdefended white piece, got %+v", ud.White)
	}
	if got := ud.White[0]; rules.SquareName(got.Square) != "e5" || got.Piece.Type() != nchess.Knight {
		t.Fatalf("unexpected loose piece %+v", got)
	}
}

func TestUnderdefendedEvenPawnTradeIsFine(t *testing.T) {
	// Pawn attacked by a pawn but defended by a pawn: the trade is even.
	b := snapshot(t, "8/8/3p4/4P3/3P4/8/8/4K2k w - - 0 1")
	ud := UnderdefendedPieces(b)
	for _, lp := range ud.White {
		if rules.SquareName(lp.Square) == "e5" {
			t.Fatalf("evenly traded pawn flagged underdefended")
		}
	}
}

func TestUnderdefendedDefendedKnightStillLosesToPawn(t *testing.T) {
	// Defender count does not save a knight from a pawn capture.
	b := snapshot(t, "8/8/3p4/4N3/8/4R3/8/4K2k w - - 0 1")
	ud := UnderdefendedPieces(b)
	found := false
	for _, lp := range ud.White {
		if rules.SquareName(lp.Square) == "e5" {
			found = true
		}
	}
	if !found {
		t.Fatalf("knight attacked by pawn should be underdefended even when defended, got %+v", ud.White)
	}
}

func TestExchangeLosesMaterial(t *testing.T) {
	cases := []struct {
		name string
		a, d []int
		want bool
	}{
		{"free piece", []int{1}, []int{3}, true},
		{"even pawn trade", []int{1}, []int{1, 1}, false},
		{"knight for pawn recapture", []int{1}, []int{3, 1}, true},
		{"queen takes defended pawn", []int{9}, []int{1, 1}, false},
		{"no attackers leaves score at zero", nil, []int{5}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := append([]int(nil), tc.a...)
			d := append([]int(nil), tc.d...)
			if got := exchangeLosesMaterial(a, d); got != tc.want {
				t.Fatalf("exchangeLosesMaterial(%v, %v) = %v, want %v", tc.a, tc.d, got, tc.want)
			}
		})
	}
}
