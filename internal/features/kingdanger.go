package features

import (
	nchess "github.com/corentings/chess/v2"

	"github.com/chessreact/move-reactor/internal/rules"
)

// KingDanger maps king escape squares to how much more dangerous they are
// than staying put. For each neighbor square the king could reach unattacked,
// the king is hypothetically relocated there and the attacked-neighbor count
// around the new square is compared with the current baseline. An empty map
// means the king keeps at least one escape square with no net safety loss.
func KingDanger(b rules.Board, side nchess.Color) map[nchess.Square]int {
	out := make(map[nchess.Square]int)
	kingSq, ok := b.KingSquare(side)
	if !ok {
		return out
	}
	enemy := rules.Opponent(side)
	baseline := attackedNeighborCount(b, kingSq, enemy)

	king := b.Piece(kingSq)
	for _, n := range neighborSquares(kingSq) {
		if b.IsAttacked(n, enemy) {
			continue
		}
		relocated := b.WithPiece(kingSq, nchess.NoPiece).WithPiece(n, king)
		attacks := attackedNeighborCount(relocated, n, enemy)
		if attacks > baseline {
			out[n] = attacks - baseline
		}
	}
	return out
}

func attackedNeighborCount(b rules.Board, sq nchess.Square, by nchess.Color) int {
	n := 0
	for _, neighbor := range neighborSquares(sq) {
		if b.IsAttacked(neighbor, by) {
			n++
		}
	}
	return n
}

func neighborSquares(sq nchess.Square) []nchess.Square {
	f, r := int(sq.File()), int(sq.Rank())
	out := make([]nchess.Square, 0, 8)
	for df := -1; df <= 1; df++ {
		for dr := -1; dr <= 1; dr++ {
			if df == 0 && dr == 0 {
				continue
			}
			nf, nr := f+df, r+dr
			if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
				continue
			}
			out = append(out, rules.SquareAt(nf, nr))
		}
	}
	return out
}
