// Package analysis orchestrates a full move review: rules validation,
// feature extraction, optional engine evaluation, classification, and the
// final reaction text.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chessreact/move-reactor/internal/advisor"
	"github.com/chessreact/move-reactor/internal/classify"
	"github.com/chessreact/move-reactor/internal/engine"
	"github.com/chessreact/move-reactor/internal/evaltone"
	"github.com/chessreact/move-reactor/internal/features"
	"github.com/chessreact/move-reactor/internal/msgcat"
	"github.com/chessreact/move-reactor/internal/rules"
)

// EngineEvaluator abstracts the engine so the service works the same with or
// without a configured binary.
type EngineEvaluator interface {
	Enabled() bool
	EvaluateBeforeAfter(ctx context.Context, fenBefore, fenAfter string, depth int) engine.Report
}

// Report is the complete result of analyzing one move.
type Report struct {
	RequestID      string
	FEN            string
	NormalizedMove string
	UCI            string
	Category       classify.Category
	Reasons        []string
	Reaction       string
	Features       features.FeatureSet
	Engine         engine.Report
	Summary        evaltone.Summary
	Advisory       *advisor.Prediction
}

type Options struct {
	Catalog *msgcat.Catalog
	Engine  EngineEvaluator
	Advisor *advisor.Advisor
	Depth   int
	// Picker chooses a phrase index from a bank of n lines. The default is
	// uniform random; tests inject a fixed picker for stable output.
	Picker func(n int) int
	Logger *zap.Logger
}

type Service struct {
	catalog *msgcat.Catalog
	engine  EngineEvaluator
	advisor *advisor.Advisor
	depth   int
	pick    func(n int) int
	logger  *zap.Logger
}

func New(opts Options) (*Service, error) {
	if opts.Catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	pick := opts.Picker
	if pick == nil {
		pick = rand.Intn
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		catalog: opts.Catalog,
		engine:  opts.Engine,
		advisor: opts.Advisor,
		depth:   opts.Depth,
		pick:    pick,
		logger:  logger,
	}, nil
}

// Analyze validates the position and move, then produces the classified
// reaction. It returns rules.ErrInvalidFEN or rules.ErrInvalidMove for bad
// input; everything else degrades gracefully inside the report.
func (s *Service) Analyze(ctx context.Context, fen, moveText string) (Report, error) {
	requestID := uuid.NewString()

	pos, err := rules.FromFEN(fen)
	if err != nil {
		return Report{}, err
	}
	mv, err := pos.ParseMove(moveText)
	if err != nil {
		if !errors.Is(err, rules.ErrInvalidMove) {
			err = fmt.Errorf("%w: %s", rules.ErrInvalidMove, moveText)
		}
		return Report{}, err
	}
	after, err := pos.ApplyUCI(mv.UCI)
	if err != nil {
		return Report{}, err
	}

	feats := features.Extract(pos, after, mv)

	engineReport := engine.Report{Note: "Set STOCKFISH_PATH to enable engine evals."}
	if s.engine != nil && s.engine.Enabled() {
		engineReport = s.engine.EvaluateBeforeAfter(ctx, pos.FEN(), after.FEN(), s.depth)
	}
	summary := evaltone.Summarize(engineReport, feats.Mover)

	result := classify.Classify(feats, summary)

	report := Report{
		RequestID:      requestID,
		FEN:            fen,
		NormalizedMove: mv.SAN,
		UCI:            mv.UCI,
		Category:       result.Category,
		Reasons:        result.Reasons,
		Features:       feats,
		Engine:         engineReport,
		Summary:        summary,
	}
	report.Reaction = s.buildReaction(result, summary)

	if s.advisor != nil {
		prediction := s.advisor.Predict(pos, mv)
		report.Advisory = &prediction
	}

	s.logger.Debug("move analyzed",
		zap.String("request_id", requestID),
		zap.String("move", mv.SAN),
		zap.String("category", string(result.Category)),
		zap.Int("reasons", len(result.Reasons)),
		zap.Bool("engine", engineReport.Enabled),
	)

	return report, nil
}

// buildReaction joins the headline with the accumulated reasons. When an
// engine tone is available and the game is not over, the tone headline
// replaces the category one.
func (s *Service) buildReaction(result classify.Classification, summary evaltone.Summary) string {
	headline := s.pickLine("reactions." + string(result.Category))
	if headline == "" {
		headline = s.pickLine("reactions.neutral")
	}

	if !result.Category.Terminal() && summary.Tone != "" {
		if toneLine := s.pickLine("engine_tones." + string(summary.Tone)); toneLine != "" {
			headline = toneLine
		}
	}

	reasonText := strings.TrimSpace(strings.Join(result.Reasons, " "))
	if reasonText == "" {
		return strings.TrimSpace(headline)
	}
	return strings.TrimSpace(headline + " " + reasonText)
}

func (s *Service) pickLine(bank string) string {
	lines := s.catalog.Lines(bank)
	if len(lines) == 0 {
		return ""
	}
	return lines[s.pick(len(lines))]
}
