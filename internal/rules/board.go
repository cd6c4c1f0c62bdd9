package rules

import (
	nchess "github.com/corentings/chess/v2"
)

// Board is a plain snapshot of piece placement, detached from the game it was
// taken from. Squares are indexed rank-major from a1.
type Board [64]nchess.Piece

func boardIndex(file, rank int) int { return rank*8 + file }

// SquareAt builds a square from zero-based file and rank indexes.
func SquareAt(file, rank int) nchess.Square {
	return nchess.NewSquare(nchess.File(file), nchess.Rank(rank))
}

// SquareName renders sq in coordinate form, e.g. "e4".
func SquareName(sq nchess.Square) string {
	return string([]byte{byte('a' + int(sq.File())), byte('1' + int(sq.Rank()))})
}

// At returns the piece at zero-based file and rank indexes.
func (b Board) At(file, rank int) nchess.Piece {
	return b[boardIndex(file, rank)]
}

// Piece returns the piece on sq, or NoPiece for empty squares.
func (b Board) Piece(sq nchess.Square) nchess.Piece {
	return b[boardIndex(int(sq.File()), int(sq.Rank()))]
}

func (b *Board) set(sq nchess.Square, pc nchess.Piece) {
	b[boardIndex(int(sq.File()), int(sq.Rank()))] = pc
}

// WithPiece returns a copy of the board with sq set to pc, replacing any
// occupant. Used for hypothetical relocations; pass NoPiece to clear.
func (b Board) WithPiece(sq nchess.Square, pc nchess.Piece) Board {
	b.set(sq, pc)
	return b
}

// KingSquare locates side's king. The second return is false when the king is
// missing, which only happens for hand-built boards.
func (b Board) KingSquare(side nchess.Color) (nchess.Square, bool) {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			pc := b.At(file, rank)
			if pc != nchess.NoPiece && pc.Type() == nchess.King && pc.Color() == side {
				return SquareAt(file, rank), true
			}
		}
	}
	return 0, false
}

// CountPieces returns the number of occupied squares.
func (b Board) CountPieces() int {
	n := 0
	for i := range b {
		if b[i] != nchess.NoPiece {
			n++
		}
	}
	return n
}

// EachPiece visits every occupied square in a1..h8 order. The fixed order
// keeps downstream reason lists stable between runs.
func (b Board) EachPiece(fn func(sq nchess.Square, pc nchess.Piece)) {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			pc := b.At(file, rank)
			if pc != nchess.NoPiece {
				fn(SquareAt(file, rank), pc)
			}
		}
	}
}
