package features

import (
	"sort"

	nchess "github.com/corentings/chess/v2"

	"github.com/chessreact/move-reactor/internal/rules"
)

// LoosePiece identifies one underdefended piece.
type LoosePiece struct {
	Square nchess.Square
	Piece  nchess.Piece
}

// Sides splits underdefended pieces by owner.
type Sides struct {
	White []LoosePiece
	Black []LoosePiece
}

// ForColor returns the list belonging to side.
func (s Sides) ForColor(side nchess.Color) []LoosePiece {
	if side == nchess.White {
		return s.White
	}
	return s.Black
}

// UnderdefendedPieces simulates a cheapest-first capture exchange on every
// attacked non-king piece and flags pieces whose exchange leaves the owner
// net down. Known blind spots, kept on purpose: the attacker set cannot see
// pieces stacked behind other attackers on the same line, pinned pieces are
// assumed free to recapture, and only the ascending-value capture order is
// explored.
func UnderdefendedPieces(b rules.Board) Sides {
	var out Sides
	b.EachPiece(func(sq nchess.Square, pc nchess.Piece) {
		// Kings are never exchanged.
		if pc.Type() == nchess.King {
			return
		}
		attackers := b.Attackers(sq, rules.Opponent(pc.Color()))
		if len(attackers) == 0 {
			return
		}
		defenders := b.Attackers(sq, pc.Color())

		aValues := make([]int, 0, len(attackers))
		for _, a := range attackers {
			aValues = append(aValues, ExchangeValue(b.Piece(a).Type()))
		}
		dValues := make([]int, 0, len(defenders)+1)
		for _, d := range defenders {
			dValues = append(dValues, ExchangeValue(b.Piece(d).Type()))
		}
		sort.Ints(aValues)
		sort.Ints(dValues)
		// The piece itself is taken first.
		dValues = append([]int{ExchangeValue(pc.Type())}, dValues...)

		if exchangeLosesMaterial(aValues, dValues) {
			loose := LoosePiece{Square: sq, Piece: pc}
			if pc.Color() == nchess.White {
				out.White = append(out.White, loose)
			} else {
				out.Black = append(out.Black, loose)
			}
		}
	})
	return out
}

// exchangeLosesMaterial runs the alternating capture sequence. The score is
// tracked from the defender's perspective; either side stops as soon as
// stopping is favorable for them.
func exchangeLosesMaterial(aValues, dValues []int) bool {
	score := 0
	attackersTurn := true
	for {
		if attackersTurn && len(aValues) == 0 {
			break
		}
		if !attackersTurn && len(dValues) == 0 {
			break
		}
		if attackersTurn {
			score -= dValues[0]
			dValues = dValues[1:]
			attackersTurn = false
			if score >= 0 {
				// Defender declines further trades while not down.
				return false
			}
		} else {
			score += aValues[0]
			aValues = aValues[1:]
			attackersTurn = true
			if score < 0 {
				// Attacker quits while ahead, leaving the defender down.
				return true
			}
		}
	}
	return score < 0
}
