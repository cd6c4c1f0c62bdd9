// Package classify assigns a reaction category to an analyzed move and
// collects the human-readable reasons behind it. Classification is fully
// deterministic: the same FeatureSet and engine summary always produce the
// same category and the same reasons in the same order.
package classify

import (
	"fmt"
	"sort"
	"strings"

	nchess "github.com/corentings/chess/v2"

	"github.com/chessreact/move-reactor/internal/evaltone"
	"github.com/chessreact/move-reactor/internal/features"
	"github.com/chessreact/move-reactor/internal/rules"
)

type Category string

const (
	CategoryMateFor              Category = "mate_for"
	CategoryStalemate            Category = "stalemate"
	CategoryInsufficientMaterial Category = "insufficient_material"
	CategoryGreatTactic          Category = "great_tactic"
	CategorySolidImprovement     Category = "solid_improvement"
	CategoryWarningHanging       Category = "warning_hanging"
	CategoryBlunderish           Category = "blunderish"
	CategoryNeutral              Category = "neutral"
	CategoryGameContinues        Category = "game_continues"
)

// Terminal reports whether the category ends the game. Terminal categories
// carry exactly one fixed reason and are never overridden by engine tone.
func (c Category) Terminal() bool {
	switch c {
	case CategoryMateFor, CategoryStalemate, CategoryInsufficientMaterial:
		return true
	}
	return false
}

type Classification struct {
	Category Category
	Reasons  []string
}

// evalDropThreshold is the evaluation swing, in pawns, past which a move
// counts as giving something away.
const evalDropThreshold = 0.25

// Classify maps a move's features and optional engine summary to a category
// and its supporting reasons. Terminal positions short-circuit with a single
// fixed reason.
func Classify(feats features.FeatureSet, summary evaltone.Summary) Classification {
	if feats.CheckmateAfter {
		return Classification{CategoryMateFor, []string{"The move delivers checkmate."}}
	}
	if feats.StalemateAfter {
		return Classification{CategoryStalemate, []string{"The side to move has no legal moves and is not in check."}}
	}
	if feats.InsufficientMaterialAfter {
		return Classification{CategoryInsufficientMaterial, []string{"Both sides lack mating material, so the game is drawn."}}
	}

	ctx := newMoveContext(feats, summary)
	reasons := newReasonList()
	key := CategoryGameContinues

	switch {
	case feats.IsCapture:
		key = classifyCapture(reasons, ctx)
	case feats.IsCheckMove:
		if ctx.evalDrop {
			key = CategoryWarningHanging
		} else {
			key = CategoryGreatTactic
		}
	default:
		switch {
		case len(feats.KingDanger) > 0 || ctx.evalDrop:
			key = CategoryWarningHanging
		case ctx.materialDeltaFromMover > 0:
			key = CategorySolidImprovement
		default:
			key = CategoryNeutral
		}
	}

	addMoveReasons(reasons, ctx)
	key = applyKeyOverrides(key, reasons, ctx)

	return Classification{Category: key, Reasons: reasons.build()}
}

// moveContext precomputes the mover-oriented values the classification rules
// share.
type moveContext struct {
	feats features.FeatureSet

	materialBalanceBefore  int
	materialBalanceAfter   int
	materialDeltaFromMover int

	engineEvalReady bool
	evalDrop        bool

	udMoverBefore   []features.LoosePiece
	udMover         []features.LoosePiece
	udOpponent      []features.LoosePiece
	udMoverNoLonger []features.LoosePiece

	capturingPieceLoose bool
	destination         string
}

func newMoveContext(feats features.FeatureSet, summary evaltone.Summary) moveContext {
	sign := 1
	if feats.Mover == nchess.Black {
		sign = -1
	}

	ctx := moveContext{
		feats:                  feats,
		materialBalanceBefore:  sign * feats.MaterialBefore,
		materialBalanceAfter:   sign * feats.MaterialAfter,
		materialDeltaFromMover: sign * feats.MaterialDelta,
		destination:            rules.SquareName(feats.ToSquare),
	}

	ctx.engineEvalReady = summary.BeforeCP != nil && summary.AfterCP != nil
	var evalBefore, evalAfter float64
	if ctx.engineEvalReady {
		evalBefore = float64(*summary.BeforeCP) / 100
		evalAfter = float64(*summary.AfterCP) / 100
	} else {
		evalBefore = float64(ctx.materialBalanceBefore)
		evalAfter = float64(ctx.materialBalanceAfter)
	}
	delta := evalAfter - evalBefore
	if delta < 0 {
		delta = -delta
	}
	ctx.evalDrop = delta >= evalDropThreshold

	opponent := rules.Opponent(feats.Mover)
	ctx.udMoverBefore = feats.UnderdefendedBefore.ForColor(feats.Mover)
	ctx.udMover = feats.UnderdefendedAfter.ForColor(feats.Mover)
	ctx.udOpponent = feats.UnderdefendedAfter.ForColor(opponent)

	// A piece that was underdefended before the move keeps its identity if
	// it is the one that moved, so remap its square before comparing.
	for _, lp := range ctx.udMoverBefore {
		target := lp
		if lp.Square == feats.FromSquare {
			target.Square = feats.ToSquare
		}
		if !containsLoose(ctx.udMover, target) {
			ctx.udMoverNoLonger = append(ctx.udMoverNoLonger, target)
		}
	}

	if feats.IsCapture {
		for _, lp := range ctx.udMover {
			if lp.Square == feats.ToSquare {
				ctx.capturingPieceLoose = true
				break
			}
		}
	}

	return ctx
}

func containsLoose(list []features.LoosePiece, want features.LoosePiece) bool {
	for _, lp := range list {
		if lp == want {
			return true
		}
	}
	return false
}

func classifyCapture(reasons *reasonList, ctx moveContext) Category {
	winningCleanly := ctx.materialBalanceAfter > ctx.materialBalanceBefore &&
		ctx.materialBalanceAfter > 0 &&
		!ctx.feats.ImmediateRecapture

	if winningCleanly {
		reasons.add("You win material outright.")
	} else if ctx.engineEvalReady && ctx.materialDeltaFromMover <= 0 && !ctx.evalDrop {
		reasons.add("Engine expects the initiative to justify the capture.")
	}

	if ctx.feats.ImmediateRecapture {
		reasons.add("An immediate recapture is possible.")
	}
	if !ctx.feats.ImmediateRecapture && ctx.capturingPieceLoose {
		reasons.add("The capturing piece may be chased away.")
	}

	switch {
	case ctx.evalDrop:
		reasons.add("The capture may not be justified.")
		return CategoryBlunderish
	case winningCleanly:
		return CategoryGreatTactic
	case ctx.materialBalanceAfter > ctx.materialBalanceBefore:
		return CategorySolidImprovement
	default:
		reasons.add("It simplifies material without changing the balance.")
		return CategoryNeutral
	}
}

func addMoveReasons(reasons *reasonList, ctx moveContext) {
	feats := ctx.feats

	if feats.IsCheckMove {
		reasons.add("You check the opponent's king, forcing a response.")
	}
	if feats.IsPromotion {
		reasons.add("Promotion increases your material!")
	}

	switch {
	case ctx.materialDeltaFromMover >= 2:
		reasons.add("You win material with this move.")
	case ctx.materialDeltaFromMover <= -2:
		reasons.add("Material losses with this move.")
	case ctx.materialDeltaFromMover == -1:
		reasons.add("Slight material loss with this move.")
	}

	addKingSafetyReasons(reasons, ctx)

	for _, lp := range ctx.udMoverNoLonger {
		reasons.add(fmt.Sprintf("Your %s at %s is no longer underdefended.",
			describePiece(lp.Piece), rules.SquareName(lp.Square)))
	}
	for _, lp := range ctx.udMover {
		reasons.add(fmt.Sprintf("You have an underdefended %s at %s.",
			describePiece(lp.Piece), rules.SquareName(lp.Square)))
	}
	for _, lp := range ctx.udOpponent {
		reasons.add(fmt.Sprintf("Your opponent has an underdefended %s at %s.",
			describePiece(lp.Piece), rules.SquareName(lp.Square)))
	}

	addCastlingReasons(reasons, ctx)
	addMobilityReasons(reasons, feats)
	addCenterControlReasons(reasons, feats)
	addPinReasons(reasons, feats)
	addPawnStructureReasons(reasons, feats)

	if feats.MovedPieceUndefended && feats.MovedPieceAfter != nchess.NoPiece && !feats.ImmediateRecapture {
		reasons.add(fmt.Sprintf("Your %s at %s is undefended.",
			describePiece(feats.MovedPieceAfter), ctx.destination))
	}
}

// addKingSafetyReasons flags shrinking king shelter, but only for moves that
// plausibly caused it: king moves and pawn moves from a file adjacent to the
// king.
func addKingSafetyReasons(reasons *reasonList, ctx moveContext) {
	feats := ctx.feats
	if len(feats.KingDanger) == 0 {
		return
	}

	kingMove := feats.MovedPiece.Type() == nchess.King
	pawnNearKing := false
	if feats.MovedPiece.Type() == nchess.Pawn {
		zone := kingZoneFiles(feats.KingSquareBefore)
		for f := range kingZoneFiles(feats.KingSquareAfter) {
			zone[f] = struct{}{}
		}
		if _, ok := zone[int(feats.FromSquare.File())]; ok {
			pawnNearKing = true
		}
	}
	if !kingMove && !pawnNearKing {
		return
	}

	if len(feats.KingDanger) >= 3 {
		reasons.add("Safe squares for the King to move to have decreased.")
	} else {
		reasons.add("King escape squares have been reduced.")
	}
}

func kingZoneFiles(kingSq nchess.Square) map[int]struct{} {
	zone := make(map[int]struct{}, 3)
	kf := int(kingSq.File())
	for f := kf - 1; f <= kf+1; f++ {
		if f >= 0 && f <= 7 {
			zone[f] = struct{}{}
		}
	}
	return zone
}

func addCastlingReasons(reasons *reasonList, ctx moveContext) {
	feats := ctx.feats

	var moverLostK, moverLostQ, oppLostK, oppLostQ bool
	if feats.Mover == nchess.White {
		moverLostK, moverLostQ = feats.CastlingLost.WhiteKingside, feats.CastlingLost.WhiteQueenside
		oppLostK, oppLostQ = feats.CastlingLost.BlackKingside, feats.CastlingLost.BlackQueenside
	} else {
		moverLostK, moverLostQ = feats.CastlingLost.BlackKingside, feats.CastlingLost.BlackQueenside
		oppLostK, oppLostQ = feats.CastlingLost.WhiteKingside, feats.CastlingLost.WhiteQueenside
	}

	kingMovedNoCastle := feats.MovedPiece.Type() == nchess.King && !feats.IsCastle
	rookFromK := feats.MovedPiece.Type() == nchess.Rook && feats.FromSquare == rookHomeSquare(feats.Mover, true)
	rookFromQ := feats.MovedPiece.Type() == nchess.Rook && feats.FromSquare == rookHomeSquare(feats.Mover, false)

	if kingMovedNoCastle && (moverLostK || moverLostQ) {
		reasons.add("You can no longer castle.")
	} else {
		if moverLostK && !feats.IsCastle && rookFromK {
			reasons.add("You can no longer castle kingside.")
		}
		if moverLostQ && !feats.IsCastle && rookFromQ {
			reasons.add("Queenside castling is now off the table for you.")
		}
	}

	if oppLostK {
		reasons.add("The opponent can no longer castle kingside.")
	}
	if oppLostQ {
		reasons.add("The opponent can no longer castle queenside.")
	}
}

func rookHomeSquare(side nchess.Color, kingside bool) nchess.Square {
	rank := 0
	if side == nchess.Black {
		rank = 7
	}
	file := 0
	if kingside {
		file = 7
	}
	return rules.SquareAt(file, rank)
}

func addMobilityReasons(reasons *reasonList, feats features.FeatureSet) {
	opponent := rules.Opponent(feats.Mover)
	deltaMover := feats.MobilityAfter.ForColor(feats.Mover) - feats.MobilityBefore.ForColor(feats.Mover)
	deltaOpp := feats.MobilityAfter.ForColor(opponent) - feats.MobilityBefore.ForColor(opponent)

	if deltaMover >= 3 {
		reasons.add("Your pieces gain mobility options.")
	} else if deltaMover <= -5 {
		reasons.add("This choice limits your own piece activity.")
	}
	if deltaOpp <= -3 {
		reasons.add("The opponent's options are more limited after this move.")
	}
}

func addCenterControlReasons(reasons *reasonList, feats features.FeatureSet) {
	opponent := rules.Opponent(feats.Mover)
	deltaMover := feats.CenterAfter.ForColor(feats.Mover) - feats.CenterBefore.ForColor(feats.Mover)
	deltaOpp := feats.CenterAfter.ForColor(opponent) - feats.CenterBefore.ForColor(opponent)
	bothDrop := deltaMover <= -1 && deltaOpp <= -1

	switch {
	case deltaMover >= 2:
		reasons.add("You increase control of the central squares.")
	case bothDrop:
		reasons.add("Central activity decreases for both sides.")
	case deltaMover <= -2:
		reasons.add("Central influence decreases a bit here.")
	}

	if !bothDrop && deltaOpp <= -1 {
		reasons.add("Your opponent's center control declines.")
	}
}

func addPinReasons(reasons *reasonList, feats features.FeatureSet) {
	opponent := rules.Opponent(feats.Mover)
	if feats.PinsAfter.ForColor(opponent) > feats.PinsBefore.ForColor(opponent) {
		reasons.add("Note that you have increased pins against your opponent.")
	}
	if feats.PinsAfter.ForColor(feats.Mover) > feats.PinsBefore.ForColor(feats.Mover) {
		reasons.add("Note that pins against you have increased.")
	}
}

func addPawnStructureReasons(reasons *reasonList, feats features.FeatureSet) {
	before := feats.PawnsBefore.ForColor(feats.Mover)
	after := feats.PawnsAfter.ForColor(feats.Mover)

	if doubled := newEntries(before.Doubled, after.Doubled); len(doubled) > 0 {
		reasons.add(fmt.Sprintf("This creates doubled pawns on the %s-file(s).", strings.Join(doubled, ", ")))
	}
	if isolated := newEntries(before.Isolated, after.Isolated); len(isolated) > 0 {
		reasons.add(fmt.Sprintf("Your pawn on the %s-file(s) becomes isolated.", strings.Join(isolated, ", ")))
	}
	if passed := newEntries(before.Passed, after.Passed); len(passed) > 0 {
		reasons.add(fmt.Sprintf("You create a passed pawn! (%s)", strings.Join(passed, ", ")))
	}
}

// newEntries returns the sorted set difference after minus before.
func newEntries(before, after []string) []string {
	old := make(map[string]struct{}, len(before))
	for _, v := range before {
		old[v] = struct{}{}
	}
	var out []string
	for _, v := range after {
		if _, ok := old[v]; !ok {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func applyKeyOverrides(key Category, reasons *reasonList, ctx moveContext) Category {
	feats := ctx.feats

	// An even trade is judged by the raw balance before the move: trading
	// while ahead simplifies, trading while behind helps the opponent.
	if feats.IsCapture && feats.MaterialDelta == 0 {
		raw := feats.MaterialBefore
		moverIsWhite := feats.Mover == nchess.White
		isWinning := (moverIsWhite && raw >= 3) || (!moverIsWhite && raw <= -3)
		isLosing := (moverIsWhite && raw <= -3) || (!moverIsWhite && raw >= 3)

		if isWinning {
			key = CategorySolidImprovement
			reasons.add("Trading simplifies the game when you are ahead.")
		} else if isLosing {
			key = CategoryBlunderish
			reasons.add("Trading pieces usually helps the opponent when you are behind.")
		}
	}

	if feats.HasNote(features.NoteEarlyQueen) {
		key = CategoryBlunderish
		reasons.add("Bringing the Queen out this early makes her a target.")
	}
	if feats.HasNote(features.NoteMovedTwice) {
		key = CategoryBlunderish
		reasons.add("Moving the same piece twice in the opening costs time (tempo).")
	}

	if feats.HangingToLesser {
		key = CategoryBlunderish
		reasons.add("You moved a valuable piece to a square attacked by a pawn or minor piece!")
	}

	return key
}

func describePiece(pc nchess.Piece) string {
	switch pc.Type() {
	case nchess.Pawn:
		return "Pawn"
	case nchess.Knight:
		return "Knight"
	case nchess.Bishop:
		return "Bishop"
	case nchess.Rook:
		return "Rook"
	case nchess.Queen:
		return "Queen"
	case nchess.King:
		return "King"
	}
	return "Piece"
}
