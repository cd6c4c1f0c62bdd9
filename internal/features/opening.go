package features

import (
	nchess "github.com/corentings/chess/v2"

	"github.com/chessreact/move-reactor/internal/rules"
)

// Note marks an opening-principle violation.
type Note string

const (
	NoteEarlyQueen Note = "early_queen"
	NoteMovedTwice Note = "moved_twice"
)

const (
	openingMoveWindow   = 8
	openingMinimumUnits = 10
)

// homeSquares lists where each piece kind starts the game, keyed by color.
var homeSquares = map[nchess.Color]map[nchess.PieceType][]nchess.Square{
	nchess.White: {
		nchess.Knight: {rules.SquareAt(1, 0), rules.SquareAt(6, 0)},
		nchess.Bishop: {rules.SquareAt(2, 0), rules.SquareAt(5, 0)},
		nchess.Rook:   {rules.SquareAt(0, 0), rules.SquareAt(7, 0)},
		nchess.Queen:  {rules.SquareAt(3, 0)},
	},
	nchess.Black: {
		nchess.Knight: {rules.SquareAt(1, 7), rules.SquareAt(6, 7)},
		nchess.Bishop: {rules.SquareAt(2, 7), rules.SquareAt(5, 7)},
		nchess.Rook:   {rules.SquareAt(0, 7), rules.SquareAt(7, 7)},
		nchess.Queen:  {rules.SquareAt(3, 7)},
	},
}

// OpeningNotes flags opening-principle violations for the move: developing
// the queen straight off its home square, or re-moving an already developed
// piece. Both are only judged within the first few full moves and while the
// board is still crowded, so endgame shuffling is never penalized.
func OpeningNotes(before *rules.Position, mv rules.MoveDescriptor) []Note {
	board := before.Snapshot()
	if before.FullMoveNumber() > openingMoveWindow || board.CountPieces() < openingMinimumUnits {
		return nil
	}
	moved := board.Piece(mv.From)
	if moved == nchess.NoPiece {
		return nil
	}

	var notes []Note
	switch moved.Type() {
	case nchess.Pawn, nchess.King:
		// Pawn pushes and castling are normal opening business.
	case nchess.Queen:
		if isHomeSquare(moved, mv.From) {
			notes = append(notes, NoteEarlyQueen)
		} else {
			notes = append(notes, NoteMovedTwice)
		}
	default:
		if !isHomeSquare(moved, mv.From) {
			notes = append(notes, NoteMovedTwice)
		}
	}
	return notes
}

func isHomeSquare(pc nchess.Piece, sq nchess.Square) bool {
	for _, home := range homeSquares[pc.Color()][pc.Type()] {
		if home == sq {
			return true
		}
	}
	return false
}

// IsHangingToLesserPiece reports whether the move lands its piece on a square
// attacked by a cheaper enemy piece. Defenders are deliberately ignored: even
// a defended queen is lost value when a pawn can take it.
func IsHangingToLesserPiece(after rules.Board, mv rules.MoveDescriptor, mover nchess.Color) bool {
	moved := after.Piece(mv.To)
	if moved == nchess.NoPiece {
		return false
	}
	movedValue := ExchangeValue(moved.Type())
	for _, a := range after.Attackers(mv.To, rules.Opponent(mover)) {
		if ExchangeValue(after.Piece(a).Type()) < movedValue {
			return true
		}
	}
	return false
}
