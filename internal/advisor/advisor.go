// Package advisor gives a fast heuristic verdict on move quality, independent
// of the rule-based classifier and the engine. It scores a small feature
// vector extracted from the position and the candidate move.
package advisor

import (
	nchess "github.com/corentings/chess/v2"

	"github.com/chessreact/move-reactor/internal/features"
	"github.com/chessreact/move-reactor/internal/rules"
)

// QualityLabels orders the possible verdicts from best to worst.
var QualityLabels = []string{"excellent", "good", "inaccuracy", "mistake", "blunder"}

type Prediction struct {
	Prediction    string             `json:"prediction"`
	Confidence    float64            `json:"confidence"`
	Probabilities map[string]float64 `json:"probabilities"`
	Method        string             `json:"method"`
}

type Advisor struct{}

func New() *Advisor {
	return &Advisor{}
}

// Feature vector layout. The heuristic only reads the move-specific tail but
// the full vector keeps parity with the training pipeline.
const (
	idxIsCapture = 16 + iota
	idxIsCheck
	idxIsPromotion
	idxPieceValueMoved
	idxPieceValueCaptured
	idxToSquareAttacked
)

// Predict scores the move and buckets it into a quality label. The result
// is advisory only and never feeds back into classification.
func (a *Advisor) Predict(pos *rules.Position, mv rules.MoveDescriptor) Prediction {
	v := FeatureVector(pos, mv)

	isCapture := v[idxIsCapture] > 0.5
	isCheck := v[idxIsCheck] > 0.5
	isPromotion := v[idxIsPromotion] > 0.5
	valueMoved := v[idxPieceValueMoved]
	valueCaptured := v[idxPieceValueCaptured]
	toAttacked := v[idxToSquareAttacked] > 0.5

	score := 0.5

	if isCheck {
		score += 0.15
	}
	if isPromotion {
		score += 0.25
	}
	if isCapture && valueCaptured > valueMoved {
		score += 0.2
	} else if isCapture && valueCaptured == valueMoved {
		score += 0.05
	}

	if toAttacked && valueMoved >= 5 {
		score -= 0.2
	}
	if isCapture && valueCaptured < valueMoved {
		score -= 0.15
	}

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	var label string
	switch {
	case score >= 0.7:
		label = "excellent"
	case score >= 0.55:
		label = "good"
	case score >= 0.4:
		label = "inaccuracy"
	case score >= 0.25:
		label = "mistake"
	default:
		label = "blunder"
	}

	probabilities := make(map[string]float64, len(QualityLabels))
	for _, l := range QualityLabels {
		probabilities[l] = 0.1
	}
	probabilities[label] = 0.6

	return Prediction{
		Prediction:    label,
		Confidence:    probabilities[label],
		Probabilities: probabilities,
		Method:        "heuristic",
	}
}

var countedTypes = []nchess.PieceType{
	nchess.Pawn, nchess.Knight, nchess.Bishop, nchess.Rook, nchess.Queen,
}

// FeatureVector extracts the 22-value numeric description of a position and
// candidate move: per-side piece counts, material balance, center attacks,
// per-side mobility, game phase, and the move-specific flags.
func FeatureVector(pos *rules.Position, mv rules.MoveDescriptor) []float64 {
	board := pos.Snapshot()
	v := make([]float64, 0, 22)

	type sideType struct {
		side nchess.Color
		pt   nchess.PieceType
	}
	counts := make(map[sideType]int)
	board.EachPiece(func(sq nchess.Square, pc nchess.Piece) {
		counts[sideType{pc.Color(), pc.Type()}]++
	})
	for _, side := range []nchess.Color{nchess.White, nchess.Black} {
		for _, pt := range countedTypes {
			v = append(v, float64(counts[sideType{side, pt}]))
		}
	}

	v = append(v, float64(features.MaterialScore(board)))

	centerSquares := [4]nchess.Square{
		rules.SquareAt(3, 3), rules.SquareAt(4, 3),
		rules.SquareAt(3, 4), rules.SquareAt(4, 4),
	}
	for _, side := range []nchess.Color{nchess.White, nchess.Black} {
		attacked := 0
		for _, sq := range centerSquares {
			if board.IsAttacked(sq, side) {
				attacked++
			}
		}
		v = append(v, float64(attacked))
	}

	v = append(v, float64(len(pos.LegalTargets(nchess.White))))
	v = append(v, float64(len(pos.LegalTargets(nchess.Black))))

	// Game phase runs from 0 at full material to 1 in a bare endgame.
	total := 0
	board.EachPiece(func(sq nchess.Square, pc nchess.Piece) {
		total += features.PieceValue(pc.Type())
	})
	v = append(v, 1-float64(total)/78)

	v = append(v, boolFeature(mv.IsCapture))
	v = append(v, boolFeature(mv.GivesCheck))
	v = append(v, boolFeature(mv.IsPromotion()))

	v = append(v, float64(features.PieceValue(board.Piece(mv.From).Type())))
	// En passant leaves the destination empty, so the captured value reads
	// as zero there.
	v = append(v, float64(features.PieceValue(board.Piece(mv.To).Type())))

	attackedByOpponent := board.IsAttacked(mv.To, rules.Opponent(pos.Turn()))
	v = append(v, boolFeature(attackedByOpponent))

	return v
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
