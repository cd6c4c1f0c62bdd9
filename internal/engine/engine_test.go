package engine

import (
	"testing"

	"github.com/chessreact/move-reactor/internal/engine/uci"
)

func intp(v int) *int { return &v }

func TestOrientToWhiteCP(t *testing.T) {
	whiteFEN := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	blackFEN := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1"

	got := orientToWhite(uci.Evaluation{ScoreCP: intp(35), BestMove: "e2e4"}, whiteFEN)
	if !got.OK || got.ScoreCentipawn == nil || *got.ScoreCentipawn != 35 {
		t.Fatalf("white to move: got %+v", got)
	}
	if got.BestMove != "e2e4" {
		t.Fatalf("bestmove lost: %+v", got)
	}

	got = orientToWhite(uci.Evaluation{ScoreCP: intp(35)}, blackFEN)
	if got.ScoreCentipawn == nil || *got.ScoreCentipawn != -35 {
		t.Fatalf("black to move: got %+v", got)
	}
}

func TestOrientToWhiteMate(t *testing.T) {
	blackFEN := "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"
	got := orientToWhite(uci.Evaluation{MateIn: intp(2)}, blackFEN)
	if !got.OK || got.MateIn == nil || *got.MateIn != -2 {
		t.Fatalf("mate orientation: got %+v", got)
	}
	if got.ScoreCentipawn != nil {
		t.Fatalf("cp should be nil in mate eval: %+v", got)
	}
}

func TestOrientToWhiteNoScore(t *testing.T) {
	got := orientToWhite(uci.Evaluation{BestMove: "e2e4"}, "startpos")
	if got.OK {
		t.Fatalf("missing score should not be OK: %+v", got)
	}
	if got.Note == "" {
		t.Fatal("missing score should carry a note")
	}
}

func TestEvaluateBeforeAfterDisabled(t *testing.T) {
	var e *Evaluator
	if e.Enabled() {
		t.Fatal("nil evaluator reports enabled")
	}

	rep := (&Evaluator{}).EvaluateBeforeAfter(t.Context(), "startpos", "startpos", 12)
	if rep.Enabled {
		t.Fatalf("unconfigured evaluator produced enabled report: %+v", rep)
	}
	if rep.Before.OK || rep.After.OK {
		t.Fatalf("unconfigured evaluator produced OK evals: %+v", rep)
	}
}

func TestNewRequiresBinaryPath(t *testing.T) {
	if _, err := New(Config{}, nil); err == nil {
		t.Fatal("expected error for missing binary path")
	}
}
