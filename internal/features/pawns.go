package features

import (
	nchess "github.com/corentings/chess/v2"

	"github.com/chessreact/move-reactor/internal/rules"
)

// PawnIssues lists structural pawn weaknesses and strengths for one side.
// Doubled and Isolated hold file letters, Passed holds square names; all are
// sorted ascending.
type PawnIssues struct {
	Doubled  []string
	Isolated []string
	Passed   []string
}

// PawnStructure holds both sides' pawn issues.
type PawnStructure struct {
	White PawnIssues
	Black PawnIssues
}

// ForColor returns the issues belonging to side.
func (s PawnStructure) ForColor(side nchess.Color) PawnIssues {
	if side == nchess.White {
		return s.White
	}
	return s.Black
}

// AnalyzePawnStructure detects doubled, isolated, and passed pawns for both
// sides.
func AnalyzePawnStructure(b rules.Board) PawnStructure {
	return PawnStructure{
		White: pawnIssuesFor(b, nchess.White),
		Black: pawnIssuesFor(b, nchess.Black),
	}
}

func pawnIssuesFor(b rules.Board, side nchess.Color) PawnIssues {
	var issues PawnIssues

	var pawnsPerFile [8]int
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			pc := b.At(file, rank)
			if pc != nchess.NoPiece && pc.Type() == nchess.Pawn && pc.Color() == side {
				pawnsPerFile[file]++
			}
		}
	}

	for file := 0; file < 8; file++ {
		if pawnsPerFile[file] >= 2 {
			issues.Doubled = append(issues.Doubled, fileLetter(file))
		}
		if pawnsPerFile[file] == 0 {
			continue
		}
		left := file == 0 || pawnsPerFile[file-1] == 0
		right := file == 7 || pawnsPerFile[file+1] == 0
		if left && right {
			issues.Isolated = append(issues.Isolated, fileLetter(file))
		}
	}

	enemy := rules.Opponent(side)
	b.EachPiece(func(sq nchess.Square, pc nchess.Piece) {
		if pc.Type() != nchess.Pawn || pc.Color() != side {
			return
		}
		if isPassedPawn(b, sq, side, enemy) {
			issues.Passed = append(issues.Passed, rules.SquareName(sq))
		}
	})
	return issues
}

// isPassedPawn reports whether no enemy pawn on the same or an adjacent file
// stands ahead of the pawn.
func isPassedPawn(b rules.Board, sq nchess.Square, side, enemy nchess.Color) bool {
	f, r := int(sq.File()), int(sq.Rank())
	forward := 1
	if side == nchess.Black {
		forward = -1
	}
	for df := -1; df <= 1; df++ {
		nf := f + df
		if nf < 0 || nf > 7 {
			continue
		}
		for nr := r + forward; nr >= 0 && nr <= 7; nr += forward {
			pc := b.At(nf, nr)
			if pc != nchess.NoPiece && pc.Type() == nchess.Pawn && pc.Color() == enemy {
				return false
			}
		}
	}
	return true
}

func fileLetter(file int) string {
	return string(rune('a' + file))
}
