// Package engine evaluates positions with an external UCI engine and reports
// scores from White's perspective.
package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/chessreact/move-reactor/internal/engine/uci"
)

// PositionEval is the outcome of evaluating a single position. When the
// engine could not be consulted OK is false and Note says why.
type PositionEval struct {
	OK             bool   `json:"ok"`
	ScoreCentipawn *int   `json:"score_centipawn,omitempty"`
	MateIn         *int   `json:"mate_in,omitempty"`
	BestMove       string `json:"bestmove,omitempty"`
	Note           string `json:"note,omitempty"`
}

// Report pairs the evaluations of the position before and after a move.
type Report struct {
	Enabled bool         `json:"enabled"`
	Depth   int          `json:"depth,omitempty"`
	Note    string       `json:"note,omitempty"`
	Before  PositionEval `json:"before"`
	After   PositionEval `json:"after"`
}

type Config struct {
	BinaryPath string
	Depth      int
	MoveTimeMS int
	Threads    int
	HashMB     int
	Timeout    time.Duration
	PoolSize   int
}

type Evaluator struct {
	pool       *uci.Pool
	opt        uci.Options
	depth      int
	moveTimeMS int
	timeout    time.Duration
	logger     *zap.Logger
}

func New(cfg Config, logger *zap.Logger) (*Evaluator, error) {
	if cfg.BinaryPath == "" {
		return nil, fmt.Errorf("engine binary path is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	pool, err := uci.NewPool(uci.PoolConfig{
		BinaryPath: cfg.BinaryPath,
		Capacity:   cfg.PoolSize,
	})
	if err != nil {
		return nil, fmt.Errorf("create engine pool: %w", err)
	}

	depth := cfg.Depth
	if depth <= 0 {
		depth = 12
	}
	hashMB := cfg.HashMB
	if hashMB <= 0 {
		hashMB = 64
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Evaluator{
		pool: pool,
		opt: uci.Options{
			Threads: cfg.Threads,
			HashMB:  hashMB,
			MultiPV: 1,
		},
		depth:      depth,
		moveTimeMS: cfg.MoveTimeMS,
		timeout:    timeout,
		logger:     logger,
	}, nil
}

func (e *Evaluator) Enabled() bool {
	return e != nil && e.pool != nil
}

func (e *Evaluator) Close() {
	if e != nil && e.pool != nil {
		e.pool.Close()
	}
}

// EvaluateBeforeAfter never returns an error: evaluation failures are
// reported per position through the OK flag and Note field so callers can
// degrade to heuristics.
func (e *Evaluator) EvaluateBeforeAfter(ctx context.Context, fenBefore, fenAfter string, depth int) Report {
	if !e.Enabled() {
		return Report{Note: "engine not configured"}
	}
	if depth <= 0 {
		depth = e.depth
	}

	rep := Report{Enabled: true, Depth: depth}
	rep.Before = e.evalPosition(ctx, fenBefore, depth)
	rep.After = e.evalPosition(ctx, fenAfter, depth)
	return rep
}

func (e *Evaluator) evalPosition(ctx context.Context, fen string, depth int) PositionEval {
	evalCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	session, err := e.pool.Acquire(evalCtx, e.opt)
	if err != nil {
		e.logger.Warn("engine session acquire failed", zap.Error(err))
		return PositionEval{Note: fmt.Sprintf("acquire session: %v", err)}
	}

	if err := session.NewGame(evalCtx); err != nil {
		e.pool.Discard(session)
		e.logger.Warn("engine new game failed", zap.Error(err))
		return PositionEval{Note: fmt.Sprintf("new game: %v", err)}
	}

	result, err := session.Evaluate(evalCtx, uci.EvaluateRequest{
		FEN: fen,
		Limits: uci.Limits{
			Depth:          depth,
			MoveTimeMillis: e.moveTimeMS,
		},
	})
	if err != nil {
		e.pool.Discard(session)
		e.logger.Warn("engine evaluation failed", zap.String("fen", fen), zap.Error(err))
		return PositionEval{Note: fmt.Sprintf("evaluate: %v", err)}
	}
	e.pool.Release(session, e.opt)

	return orientToWhite(result, fen)
}

// orientToWhite converts the engine's side-to-move relative score into a
// White-perspective score using the FEN's active color field.
func orientToWhite(ev uci.Evaluation, fen string) PositionEval {
	out := PositionEval{OK: true, BestMove: ev.BestMove}

	blackToMove := false
	if fields := strings.Fields(fen); len(fields) >= 2 && fields[1] == "b" {
		blackToMove = true
	}

	if ev.ScoreCP != nil {
		cp := *ev.ScoreCP
		if blackToMove {
			cp = -cp
		}
		out.ScoreCentipawn = &cp
	}
	if ev.MateIn != nil {
		mate := *ev.MateIn
		if blackToMove {
			mate = -mate
		}
		out.MateIn = &mate
	}
	if ev.ScoreCP == nil && ev.MateIn == nil {
		out.OK = false
		out.Note = "engine returned no score"
	}
	return out
}
