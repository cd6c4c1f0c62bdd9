package rules

import (
	nchess "github.com/corentings/chess/v2"
)

var knightOffsets = [8][2]int{
	{1, 2}, {2, 1}, {2, -1}, {1, -2},
	{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

var kingOffsets = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

var orthoDirs = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
var diagDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

func onBoard(file, rank int) bool {
	return file >= 0 && file < 8 && rank >= 0 && rank < 8
}

// Attackers returns the squares of every piece of color by that attacks
// target, in a1..h8 order. Pawn attacks are capture moves only.
func (b Board) Attackers(target nchess.Square, by nchess.Color) []nchess.Square {
	var out []nchess.Square
	tf, tr := int(target.File()), int(target.Rank())

	add := func(file, rank int) {
		out = append(out, SquareAt(file, rank))
	}

	// Pawns capture diagonally toward their opponent.
	pawnRank := tr - 1
	if by == nchess.Black {
		pawnRank = tr + 1
	}
	for _, df := range []int{-1, 1} {
		f := tf + df
		if onBoard(f, pawnRank) {
			pc := b.At(f, pawnRank)
			if pc != nchess.NoPiece && pc.Color() == by && pc.Type() == nchess.Pawn {
				add(f, pawnRank)
			}
		}
	}

	for _, off := range knightOffsets {
		f, r := tf+off[0], tr+off[1]
		if onBoard(f, r) {
			pc := b.At(f, r)
			if pc != nchess.NoPiece && pc.Color() == by && pc.Type() == nchess.Knight {
				add(f, r)
			}
		}
	}

	for _, off := range kingOffsets {
		f, r := tf+off[0], tr+off[1]
		if onBoard(f, r) {
			pc := b.At(f, r)
			if pc != nchess.NoPiece && pc.Color() == by && pc.Type() == nchess.King {
				add(f, r)
			}
		}
	}

	slider := func(dirs [4][2]int, want nchess.PieceType) {
		for _, d := range dirs {
			f, r := tf+d[0], tr+d[1]
			for onBoard(f, r) {
				pc := b.At(f, r)
				if pc != nchess.NoPiece {
					if pc.Color() == by && (pc.Type() == want || pc.Type() == nchess.Queen) {
						add(f, r)
					}
					break
				}
				f += d[0]
				r += d[1]
			}
		}
	}
	slider(orthoDirs, nchess.Rook)
	slider(diagDirs, nchess.Bishop)

	sortSquares(out)
	return out
}

// IsAttacked reports whether target is attacked by any piece of color by.
func (b Board) IsAttacked(target nchess.Square, by nchess.Color) bool {
	return len(b.Attackers(target, by)) > 0
}

// IsPinned reports whether the piece on sq is absolutely pinned against its
// own king by an enemy slider. Kings themselves are never pinned.
func (b Board) IsPinned(sq nchess.Square) bool {
	pc := b.Piece(sq)
	if pc == nchess.NoPiece || pc.Type() == nchess.King {
		return false
	}
	kingSq, ok := b.KingSquare(pc.Color())
	if !ok {
		return false
	}

	sf, sr := int(sq.File()), int(sq.Rank())
	kf, kr := int(kingSq.File()), int(kingSq.Rank())
	df, dr := kf-sf, kr-sr
	if df == 0 && dr == 0 {
		return false
	}
	// The square must share a rank, file, or diagonal with the king.
	if df != 0 && dr != 0 && abs(df) != abs(dr) {
		return false
	}
	stepF, stepR := sign(df), sign(dr)

	// Squares between the piece and its king must be empty.
	f, r := sf+stepF, sr+stepR
	for f != kf || r != kr {
		if b.At(f, r) != nchess.NoPiece {
			return false
		}
		f += stepF
		r += stepR
	}

	// Walk away from the king; the first piece met must be an enemy slider
	// that moves along this line.
	f, r = sf-stepF, sr-stepR
	for onBoard(f, r) {
		blocker := b.At(f, r)
		if blocker != nchess.NoPiece {
			if blocker.Color() == pc.Color() {
				return false
			}
			ortho := stepF == 0 || stepR == 0
			if blocker.Type() == nchess.Queen {
				return true
			}
			if ortho && blocker.Type() == nchess.Rook {
				return true
			}
			if !ortho && blocker.Type() == nchess.Bishop {
				return true
			}
			return false
		}
		f -= stepF
		r -= stepR
	}
	return false
}

// PinnedSquares lists squares of side's pinned pieces in a1..h8 order.
func (b Board) PinnedSquares(side nchess.Color) []nchess.Square {
	var out []nchess.Square
	b.EachPiece(func(sq nchess.Square, pc nchess.Piece) {
		if pc.Color() == side && b.IsPinned(sq) {
			out = append(out, sq)
		}
	})
	return out
}

func sortSquares(s []nchess.Square) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && squareLess(s[j], s[j-1]); j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

func squareLess(a, c nchess.Square) bool {
	if a.Rank() != c.Rank() {
		return a.Rank() < c.Rank()
	}
	return a.File() < c.File()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
