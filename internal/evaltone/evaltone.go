// Package evaltone condenses a raw engine report into a mover-oriented
// verdict bucketed by how far the evaluation moved.
package evaltone

import (
	nchess "github.com/corentings/chess/v2"

	"github.com/chessreact/move-reactor/internal/engine"
)

type Tone string

const (
	ToneExcellent Tone = "excellent"
	ToneGood      Tone = "good"
	ToneOkay      Tone = "okay"
	ToneMistake   Tone = "mistake"
	ToneBlunder   Tone = "blunder"
)

// Summary is the normalized engine verdict for one move. Centipawn fields
// are oriented toward the mover, so a negative DeltaCP always means the
// mover's position got worse.
type Summary struct {
	Available bool `json:"available"`
	Tone      Tone `json:"tone,omitempty"`
	BeforeCP  *int `json:"before_cp,omitempty"`
	AfterCP   *int `json:"after_cp,omitempty"`
	DeltaCP   *int `json:"delta_cp,omitempty"`
}

var toneBuckets = []struct {
	limitPawns float64
	tone       Tone
}{
	{0.19, ToneExcellent},
	{0.44, ToneGood},
	{0.74, ToneOkay},
	{1.24, ToneMistake},
}

// ToneFromDelta buckets an evaluation swing, in pawns, by magnitude. Large
// swings in either direction read as mistakes or blunders.
func ToneFromDelta(deltaPawns float64) Tone {
	if deltaPawns < 0 {
		deltaPawns = -deltaPawns
	}
	for _, b := range toneBuckets {
		if deltaPawns <= b.limitPawns {
			return b.tone
		}
	}
	return ToneBlunder
}

// Summarize normalizes a before/after engine report for the given mover.
// Both positions must have evaluated cleanly, otherwise the summary is
// unavailable and callers fall back to material heuristics.
func Summarize(rep engine.Report, mover nchess.Color) Summary {
	if !rep.Enabled || !rep.Before.OK || !rep.After.OK {
		return Summary{}
	}

	sign := 1
	if mover == nchess.Black {
		sign = -1
	}
	orient := func(value *int) int {
		if value == nil {
			return 0
		}
		return sign * *value
	}

	out := Summary{Available: true}

	if rep.Before.ScoreCentipawn != nil && rep.After.ScoreCentipawn != nil {
		before := orient(rep.Before.ScoreCentipawn)
		after := orient(rep.After.ScoreCentipawn)
		delta := after - before
		out.BeforeCP = &before
		out.AfterCP = &after
		out.DeltaCP = &delta
		out.Tone = ToneFromDelta(float64(delta) / 100)
		return out
	}

	if rep.Before.MateIn != nil || rep.After.MateIn != nil {
		delta := float64(orient(rep.After.MateIn) - orient(rep.Before.MateIn))
		if delta < 0 {
			delta = -delta
		}
		switch {
		case delta <= 0.15:
			out.Tone = ToneExcellent
		case delta <= 0.99:
			out.Tone = ToneMistake
		default:
			out.Tone = ToneBlunder
		}
		return out
	}

	return out
}
