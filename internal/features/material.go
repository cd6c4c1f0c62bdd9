package features

import (
	nchess "github.com/corentings/chess/v2"

	"github.com/chessreact/move-reactor/internal/rules"
)

// PieceValue returns the conventional pawn-unit value used for material
// scoring. Kings score zero here.
func PieceValue(pt nchess.PieceType) int {
	switch pt {
	case nchess.Pawn:
		return 1
	case nchess.Knight, nchess.Bishop:
		return 3
	case nchess.Rook:
		return 5
	case nchess.Queen:
		return 9
	}
	return 0
}

// ExchangeValue is PieceValue with kings priced out of reach, for capture
// sequence simulation where a king can never profitably be traded.
func ExchangeValue(pt nchess.PieceType) int {
	if pt == nchess.King {
		return 999
	}
	return PieceValue(pt)
}

// MaterialScore sums piece values from White's perspective. Positive means
// White is ahead.
func MaterialScore(b rules.Board) int {
	score := 0
	b.EachPiece(func(_ nchess.Square, pc nchess.Piece) {
		v := PieceValue(pc.Type())
		if pc.Color() == nchess.White {
			score += v
		} else {
			score -= v
		}
	})
	return score
}
