// Package builder wires the application dependencies from configuration.
package builder

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chessreact/move-reactor/internal/advisor"
	"github.com/chessreact/move-reactor/internal/config"
	"github.com/chessreact/move-reactor/internal/engine"
	"github.com/chessreact/move-reactor/internal/msgcat"
	"github.com/chessreact/move-reactor/internal/service/analysis"
)

type Deps struct {
	Service *analysis.Service
	Engine  *engine.Evaluator
	Catalog *msgcat.Catalog
}

func New(cfg *config.AppConfig, logger *zap.Logger) (*Deps, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	catalog, err := msgcat.New(cfg.TemplateDir)
	if err != nil {
		return nil, fmt.Errorf("init message catalog: %w", err)
	}

	// The engine is optional: without STOCKFISH_PATH the service degrades
	// to material-based evaluation.
	var eval *engine.Evaluator
	if cfg.EngineConfigured() {
		eval, err = engine.New(engine.Config{
			BinaryPath: cfg.StockfishPath,
			Depth:      cfg.StockfishDepth,
			MoveTimeMS: cfg.StockfishMoveTimeMS,
			Threads:    cfg.StockfishThreads,
			HashMB:     cfg.StockfishHashMB,
			Timeout:    time.Duration(cfg.EngineTimeoutSec) * time.Second,
			PoolSize:   cfg.EnginePoolSize,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("init engine: %w", err)
		}
		logger.Info("engine configured",
			zap.String("path", cfg.StockfishPath),
			zap.Int("depth", cfg.StockfishDepth),
		)
	} else {
		logger.Info("engine not configured, using material evaluation")
	}

	var adv *advisor.Advisor
	if cfg.AdvisorEnabled {
		adv = advisor.New()
	}

	opts := analysis.Options{
		Catalog: catalog,
		Advisor: adv,
		Depth:   cfg.StockfishDepth,
		Logger:  logger,
	}
	if eval != nil {
		opts.Engine = eval
	}
	svc, err := analysis.New(opts)
	if err != nil {
		return nil, fmt.Errorf("init analysis service: %w", err)
	}

	return &Deps{Service: svc, Engine: eval, Catalog: catalog}, nil
}

// EngineEnabled is safe to call with a nil engine.
func (d *Deps) EngineEnabled() bool {
	return d.Engine.Enabled()
}

// Close releases pooled engine sessions.
func (d *Deps) Close() {
	if d.Engine != nil {
		d.Engine.Close()
	}
}
