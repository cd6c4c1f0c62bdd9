package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

type AppConfig struct {
	HTTPAddr string

	TemplateDir string

	StockfishPath       string
	StockfishDepth      int
	StockfishMoveTimeMS int
	StockfishThreads    int
	StockfishHashMB     int
	EngineTimeoutSec    int
	EnginePoolSize      int

	AdvisorEnabled bool
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		HTTPAddr:         ":8000",
		StockfishDepth:   12,
		StockfishThreads: 1,
		StockfishHashMB:  64,
		EngineTimeoutSec: 30,
		AdvisorEnabled:   true,
	}

	if v := strings.TrimSpace(os.Getenv("HTTP_ADDR")); v != "" {
		cfg.HTTPAddr = v
	}
	cfg.TemplateDir = strings.TrimSpace(os.Getenv("TEMPLATE_DIR"))

	cfg.StockfishPath = strings.TrimSpace(os.Getenv("STOCKFISH_PATH"))
	if v := strings.TrimSpace(os.Getenv("STOCKFISH_DEPTH")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.StockfishDepth = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("STOCKFISH_MOVETIME_MS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.StockfishMoveTimeMS = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("STOCKFISH_THREADS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.StockfishThreads = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("STOCKFISH_HASH_MB")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.StockfishHashMB = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("ENGINE_TIMEOUT_SEC")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.EngineTimeoutSec = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("ENGINE_POOL_SIZE")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.EnginePoolSize = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("ADVISOR_ENABLED")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.AdvisorEnabled = b
		}
	}

	if cfg.StockfishDepth > 30 {
		return nil, errors.New("STOCKFISH_DEPTH too large (max 30)")
	}
	return cfg, nil
}

// EngineConfigured reports whether a Stockfish binary path was provided.
func (c *AppConfig) EngineConfigured() bool {
	return c.StockfishPath != ""
}
