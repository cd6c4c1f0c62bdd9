package advisor

import (
	"math"
	"testing"

	"github.com/chessreact/move-reactor/internal/rules"
)

func setup(t *testing.T, fen, moveText string) (*rules.Position, rules.MoveDescriptor) {
	t.Helper()
	pos, err := rules.FromFEN(fen)
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	mv, err := pos.ParseMove(moveText)
	if err != nil {
		t.Fatalf("ParseMove(%q): %v", moveText, err)
	}
	return pos, mv
}

func TestFeatureVectorStartingPosition(t *testing.T) {
	pos, mv := setup(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "e4")
	v := FeatureVector(pos, mv)

	if len(v) != 22 {
		t.Fatalf("vector length = %d, want 22", len(v))
	}
	// Eight pawns and one queen per side.
	if v[0] != 8 || v[4] != 1 || v[5] != 8 || v[9] != 1 {
		t.Fatalf("piece counts wrong: %v", v[:10])
	}
	if v[10] != 0 {
		t.Fatalf("material balance = %v, want 0", v[10])
	}
	if v[13] != 20 || v[14] != 20 {
		t.Fatalf("mobility = %v/%v, want 20/20", v[13], v[14])
	}
	if v[15] != 0 {
		t.Fatalf("game phase = %v, want 0 at full material", v[15])
	}
	if v[idxIsCapture] != 0 || v[idxIsCheck] != 0 || v[idxIsPromotion] != 0 {
		t.Fatalf("move flags wrong: %v", v[16:])
	}
	if v[idxPieceValueMoved] != 1 {
		t.Fatalf("moved piece value = %v, want 1", v[idxPieceValueMoved])
	}
}

func TestPredictQuietMove(t *testing.T) {
	pos, mv := setup(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "e4")
	got := New().Predict(pos, mv)

	if got.Prediction != "inaccuracy" {
		t.Fatalf("quiet move = %q, want inaccuracy at neutral score", got.Prediction)
	}
	if got.Method != "heuristic" {
		t.Fatalf("method = %q", got.Method)
	}
	if got.Confidence != 0.6 {
		t.Fatalf("confidence = %v", got.Confidence)
	}
	sum := 0.0
	for _, p := range got.Probabilities {
		sum += p
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("probabilities sum to %v", sum)
	}
}

func TestPredictWinningCapture(t *testing.T) {
	// Pawn takes queen: capture bonus pushes the score into excellent.
	pos, mv := setup(t, "4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1", "exd5")
	got := New().Predict(pos, mv)
	if got.Prediction != "excellent" {
		t.Fatalf("winning capture = %q, want excellent", got.Prediction)
	}
}

func TestPredictQueenIntoAttack(t *testing.T) {
	// Queen moves onto a pawn-covered square and wins nothing.
	pos, mv := setup(t, "4k3/8/8/8/8/1p6/8/3QK3 w - - 0 1", "Qc2")
	got := New().Predict(pos, mv)
	if got.Prediction != "mistake" {
		t.Fatalf("queen into attack = %q, want mistake", got.Prediction)
	}
}

func TestPredictPromotionWithCheck(t *testing.T) {
	pos, mv := setup(t, "8/P7/8/8/8/8/k6K/8 w - - 0 1", "a8=Q")
	got := New().Predict(pos, mv)
	if got.Prediction != "excellent" {
		t.Fatalf("promotion = %q, want excellent", got.Prediction)
	}
}
