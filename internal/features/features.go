// Package features turns a position and a candidate move into the FeatureSet
// consumed by move classification: material, mobility, center control, pins,
// castling rights, pawn structure, exchange simulation, and king danger, each
// computed before and after the move.
package features

import (
	nchess "github.com/corentings/chess/v2"

	"github.com/chessreact/move-reactor/internal/rules"
)

// SideCount is a per-side counter.
type SideCount struct {
	White int
	Black int
}

// ForColor returns the count belonging to side.
func (c SideCount) ForColor(side nchess.Color) int {
	if side == nchess.White {
		return c.White
	}
	return c.Black
}

// RightsLost records which castling rights the move destroyed.
type RightsLost struct {
	WhiteKingside  bool
	WhiteQueenside bool
	BlackKingside  bool
	BlackQueenside bool
}

// FeatureSet is the full before/after picture of one move. Before fields are
// computed strictly before the move is applied, after fields strictly after;
// MaterialDelta always equals MaterialAfter minus MaterialBefore.
type FeatureSet struct {
	Mover         nchess.Color
	InCheckBefore bool

	IsCapture   bool
	IsEnPassant bool
	IsCheckMove bool
	IsPromotion bool
	IsCastle    bool

	MovedPiece nchess.Piece
	FromSquare nchess.Square
	ToSquare   nchess.Square

	MaterialBefore int
	MaterialAfter  int
	MaterialDelta  int

	PinsBefore SideCount
	PinsAfter  SideCount

	CastlingBefore rules.CastlingRights
	CastlingAfter  rules.CastlingRights
	CastlingLost   RightsLost

	UnderdefendedBefore Sides
	UnderdefendedAfter  Sides

	MobilityBefore SideCount
	MobilityAfter  SideCount

	CenterBefore SideCount
	CenterAfter  SideCount

	// KingDanger describes the mover's king after the move; see KingDanger.
	KingDanger map[nchess.Square]int

	KingSquareBefore nchess.Square
	KingSquareAfter  nchess.Square

	PawnsBefore PawnStructure
	PawnsAfter  PawnStructure

	OpeningNotes []Note

	HangingToLesser bool

	// ImmediateRecapture is true when the opponent has a legal reply that
	// captures on the move's destination square.
	ImmediateRecapture bool
	// MovedPieceUndefended is true when the piece now on the destination
	// square has no defender at all.
	MovedPieceUndefended bool
	MovedPieceAfter      nchess.Piece

	CheckmateAfter            bool
	StalemateAfter            bool
	InsufficientMaterialAfter bool
}

// HasNote reports whether the opening notes contain n.
func (f FeatureSet) HasNote(n Note) bool {
	for _, note := range f.OpeningNotes {
		if note == n {
			return true
		}
	}
	return false
}

var centerSquares = [4]nchess.Square{
	rules.SquareAt(3, 3), // d4
	rules.SquareAt(4, 3), // e4
	rules.SquareAt(3, 4), // d5
	rules.SquareAt(4, 4), // e5
}

// Extract computes the FeatureSet for a legal move. The after position must
// be the result of applying mv to before; both positions stay untouched.
// Extract never fails on well-formed input.
func Extract(before, after *rules.Position, mv rules.MoveDescriptor) FeatureSet {
	boardBefore := before.Snapshot()
	boardAfter := after.Snapshot()
	mover := before.Turn()

	f := FeatureSet{
		Mover:         mover,
		InCheckBefore: before.InCheck(),

		IsCapture:   mv.IsCapture,
		IsEnPassant: mv.IsEnPassant,
		IsCheckMove: mv.GivesCheck,
		IsPromotion: mv.IsPromotion(),
		IsCastle:    mv.IsCastle,

		MovedPiece: boardBefore.Piece(mv.From),
		FromSquare: mv.From,
		ToSquare:   mv.To,

		MaterialBefore: MaterialScore(boardBefore),
		MaterialAfter:  MaterialScore(boardAfter),

		PinsBefore: countPins(boardBefore),
		PinsAfter:  countPins(boardAfter),

		CastlingBefore: before.CastlingRights(),
		CastlingAfter:  after.CastlingRights(),

		UnderdefendedBefore: UnderdefendedPieces(boardBefore),
		UnderdefendedAfter:  UnderdefendedPieces(boardAfter),

		PawnsBefore: AnalyzePawnStructure(boardBefore),
		PawnsAfter:  AnalyzePawnStructure(boardAfter),

		OpeningNotes: OpeningNotes(before, mv),

		HangingToLesser: IsHangingToLesserPiece(boardAfter, mv, mover),

		KingDanger: KingDanger(boardAfter, mover),

		CheckmateAfter:            after.IsCheckmate(),
		StalemateAfter:            after.IsStalemate(),
		InsufficientMaterialAfter: after.HasInsufficientMaterial(),
	}
	f.KingSquareBefore, _ = boardBefore.KingSquare(mover)
	f.KingSquareAfter, _ = boardAfter.KingSquare(mover)

	f.MaterialDelta = f.MaterialAfter - f.MaterialBefore
	f.CastlingLost = rightsLost(f.CastlingBefore, f.CastlingAfter)

	f.MobilityBefore, f.CenterBefore = mobilityAndCenter(before)
	f.MobilityAfter, f.CenterAfter = mobilityAndCenter(after)

	f.ImmediateRecapture = f.IsCapture && hasRecapture(after, mv.To)
	f.MovedPieceAfter = boardAfter.Piece(mv.To)
	f.MovedPieceUndefended = f.MovedPieceAfter != nchess.NoPiece &&
		len(boardAfter.Attackers(mv.To, mover)) == 0

	return f
}

// mobilityAndCenter counts each side's legal moves and the subset landing on
// the four central squares, with side to move overridden per side.
func mobilityAndCenter(p *rules.Position) (SideCount, SideCount) {
	var mobility, center SideCount
	for _, side := range []nchess.Color{nchess.White, nchess.Black} {
		targets := p.LegalTargets(side)
		centerHits := 0
		for _, t := range targets {
			for _, c := range centerSquares {
				if t.To == c {
					centerHits++
					break
				}
			}
		}
		if side == nchess.White {
			mobility.White = len(targets)
			center.White = centerHits
		} else {
			mobility.Black = len(targets)
			center.Black = centerHits
		}
	}
	return mobility, center
}

func countPins(b rules.Board) SideCount {
	return SideCount{
		White: len(b.PinnedSquares(nchess.White)),
		Black: len(b.PinnedSquares(nchess.Black)),
	}
}

func rightsLost(before, after rules.CastlingRights) RightsLost {
	return RightsLost{
		WhiteKingside:  before.WhiteKingside && !after.WhiteKingside,
		WhiteQueenside: before.WhiteQueenside && !after.WhiteQueenside,
		BlackKingside:  before.BlackKingside && !after.BlackKingside,
		BlackQueenside: before.BlackQueenside && !after.BlackQueenside,
	}
}

// hasRecapture reports whether the side to move in pos can legally capture on
// sq.
func hasRecapture(pos *rules.Position, sq nchess.Square) bool {
	for _, t := range pos.LegalTargets(pos.Turn()) {
		if t.To == sq && t.IsCapture {
			return true
		}
	}
	return false
}
