package httpapi

import (
	"sort"

	nchess "github.com/corentings/chess/v2"

	"github.com/chessreact/move-reactor/internal/engine"
	"github.com/chessreact/move-reactor/internal/features"
	"github.com/chessreact/move-reactor/internal/rules"
	"github.com/chessreact/move-reactor/internal/service/analysis"
	"github.com/chessreact/move-reactor/pkg/reactdto"
)

func toResponse(rep analysis.Report) reactdto.AnalyzeResponse {
	return reactdto.AnalyzeResponse{
		RequestID:      rep.RequestID,
		NormalizedMove: rep.NormalizedMove,
		UCI:            rep.UCI,
		Category:       string(rep.Category),
		Reaction:       rep.Reaction,
		Reasons:        rep.Reasons,
		Details: reactdto.Details{
			Features:      toFeatures(rep.Features),
			Engine:        toEngineReport(rep.Engine),
			EngineSummary: toEngineSummary(rep),
			Advisory:      toAdvisory(rep),
		},
	}
}

func toFeatures(f features.FeatureSet) reactdto.Features {
	return reactdto.Features{
		Turn:        colorLabel(f.Mover),
		IsCapture:   f.IsCapture,
		IsEnPassant: f.IsEnPassant,
		IsCheckMove: f.IsCheckMove,
		IsPromotion: f.IsPromotion,
		IsCastle:    f.IsCastle,

		MovedPiece: pieceLetter(f.MovedPiece),
		FromSquare: rules.SquareName(f.FromSquare),
		ToSquare:   rules.SquareName(f.ToSquare),

		MaterialBefore: f.MaterialBefore,
		MaterialAfter:  f.MaterialAfter,
		MaterialDelta:  f.MaterialDelta,

		PinsBefore: toSideCounts(f.PinsBefore),
		PinsAfter:  toSideCounts(f.PinsAfter),

		CastlingBefore: toCastling(f.CastlingBefore),
		CastlingAfter:  toCastling(f.CastlingAfter),
		CastlingLost: reactdto.CastlingLost{
			WhiteKingside:  f.CastlingLost.WhiteKingside,
			WhiteQueenside: f.CastlingLost.WhiteQueenside,
			BlackKingside:  f.CastlingLost.BlackKingside,
			BlackQueenside: f.CastlingLost.BlackQueenside,
		},

		UnderdefendedBefore: toUnderdefended(f.UnderdefendedBefore),
		UnderdefendedAfter:  toUnderdefended(f.UnderdefendedAfter),

		MobilityBefore: toSideCounts(f.MobilityBefore),
		MobilityAfter:  toSideCounts(f.MobilityAfter),

		CenterBefore: toSideCounts(f.CenterBefore),
		CenterAfter:  toSideCounts(f.CenterAfter),

		KingExposed: toKingExposed(f.KingDanger),

		PawnsBefore: toPawnStructure(f.PawnsBefore),
		PawnsAfter:  toPawnStructure(f.PawnsAfter),

		OpeningNotes: toNotes(f.OpeningNotes),

		IsHangingToLesser:  f.HangingToLesser,
		ImmediateRecapture: f.ImmediateRecapture,

		IsCheckmateAfter:            f.CheckmateAfter,
		IsStalemateAfter:            f.StalemateAfter,
		IsInsufficientMaterialAfter: f.InsufficientMaterialAfter,
	}
}

func toSideCounts(c features.SideCount) reactdto.SideCounts {
	return reactdto.SideCounts{White: c.White, Black: c.Black}
}

func toCastling(r rules.CastlingRights) reactdto.CastlingRights {
	return reactdto.CastlingRights{
		WhiteKingside:  r.WhiteKingside,
		WhiteQueenside: r.WhiteQueenside,
		BlackKingside:  r.BlackKingside,
		BlackQueenside: r.BlackQueenside,
	}
}

func toUnderdefended(s features.Sides) reactdto.Underdefended {
	return reactdto.Underdefended{
		White: toLoosePieces(s.White),
		Black: toLoosePieces(s.Black),
	}
}

func toLoosePieces(list []features.LoosePiece) []reactdto.LoosePiece {
	out := make([]reactdto.LoosePiece, 0, len(list))
	for _, lp := range list {
		out = append(out, reactdto.LoosePiece{
			Square: rules.SquareName(lp.Square),
			Piece:  pieceLetter(lp.Piece),
		})
	}
	return out
}

func toKingExposed(m map[nchess.Square]int) map[string]int {
	out := make(map[string]int, len(m))
	for sq, delta := range m {
		out[rules.SquareName(sq)] = delta
	}
	return out
}

func toPawnStructure(p features.PawnStructure) reactdto.PawnStructure {
	return reactdto.PawnStructure{
		White: toPawnIssues(p.White),
		Black: toPawnIssues(p.Black),
	}
}

func toPawnIssues(p features.PawnIssues) reactdto.PawnIssues {
	return reactdto.PawnIssues{
		Doubled:  sortedCopy(p.Doubled),
		Isolated: sortedCopy(p.Isolated),
		Passed:   sortedCopy(p.Passed),
	}
}

func sortedCopy(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	sort.Strings(out)
	return out
}

func toNotes(notes []features.Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, string(n))
	}
	return out
}

func toEngineReport(rep engine.Report) reactdto.EngineReport {
	out := reactdto.EngineReport{
		Enabled: rep.Enabled,
		Depth:   rep.Depth,
		Note:    rep.Note,
	}
	if rep.Enabled {
		before := toPositionEval(rep.Before)
		after := toPositionEval(rep.After)
		out.Before = &before
		out.After = &after
	}
	return out
}

func toPositionEval(ev engine.PositionEval) reactdto.PositionEval {
	return reactdto.PositionEval{
		OK:             ev.OK,
		ScoreCentipawn: ev.ScoreCentipawn,
		MateIn:         ev.MateIn,
		BestMove:       ev.BestMove,
		Note:           ev.Note,
	}
}

func toEngineSummary(rep analysis.Report) reactdto.EngineSummary {
	return reactdto.EngineSummary{
		Available: rep.Summary.Available,
		Tone:      string(rep.Summary.Tone),
		BeforeCP:  rep.Summary.BeforeCP,
		AfterCP:   rep.Summary.AfterCP,
		DeltaCP:   rep.Summary.DeltaCP,
	}
}

func toAdvisory(rep analysis.Report) *reactdto.MoveAdvisory {
	if rep.Advisory == nil {
		return nil
	}
	return &reactdto.MoveAdvisory{
		Prediction:    rep.Advisory.Prediction,
		Confidence:    rep.Advisory.Confidence,
		Probabilities: rep.Advisory.Probabilities,
		Method:        rep.Advisory.Method,
	}
}

func colorLabel(c nchess.Color) string {
	if c == nchess.White {
		return "White"
	}
	return "Black"
}

// pieceLetter renders a piece in FEN style: uppercase for White, lowercase
// for Black.
func pieceLetter(pc nchess.Piece) string {
	if pc == nchess.NoPiece {
		return ""
	}
	var letter byte
	switch pc.Type() {
	case nchess.Pawn:
		letter = 'p'
	case nchess.Knight:
		letter = 'n'
	case nchess.Bishop:
		letter = 'b'
	case nchess.Rook:
		letter = 'r'
	case nchess.Queen:
		letter = 'q'
	case nchess.King:
		letter = 'k'
	default:
		return ""
	}
	if pc.Color() == nchess.White {
		letter -= 'a' - 'A'
	}
	return string(letter)
}
