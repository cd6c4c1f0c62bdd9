// Package httpapi exposes the move analysis service over fasthttp.
package httpapi

import (
	"encoding/json"
	"errors"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/chessreact/move-reactor/internal/rules"
	"github.com/chessreact/move-reactor/internal/service/analysis"
	"github.com/chessreact/move-reactor/pkg/reactdto"
)

type Handler struct {
	svc           *analysis.Service
	engineEnabled func() bool
	logger        *zap.Logger
}

func NewHandler(svc *analysis.Service, engineEnabled func() bool, logger *zap.Logger) *Handler {
	if engineEnabled == nil {
		engineEnabled = func() bool { return false }
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, engineEnabled: engineEnabled, logger: logger}
}

// HandleFastHTTP routes every request; it is the fasthttp server handler.
func (h *Handler) HandleFastHTTP(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/api/analyze":
		if !ctx.IsPost() {
			h.writeError(ctx, fasthttp.StatusMethodNotAllowed, "POST required")
			return
		}
		h.handleAnalyze(ctx)
	case "/healthz":
		h.handleHealth(ctx)
	default:
		h.writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

func (h *Handler) handleAnalyze(ctx *fasthttp.RequestCtx) {
	var req reactdto.AnalyzeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.writeError(ctx, fasthttp.StatusBadRequest, "malformed JSON body")
		return
	}
	if req.FEN == "" || req.Move == "" {
		h.writeError(ctx, fasthttp.StatusBadRequest, "fen and move are required")
		return
	}

	rep, err := h.svc.Analyze(ctx, req.FEN, req.Move)
	if err != nil {
		switch {
		case errors.Is(err, rules.ErrInvalidFEN):
			h.writeError(ctx, fasthttp.StatusBadRequest, "invalid FEN")
		case errors.Is(err, rules.ErrInvalidMove):
			h.writeError(ctx, fasthttp.StatusBadRequest, "invalid or illegal move")
		default:
			h.logger.Error("analyze failed", zap.Error(err))
			h.writeError(ctx, fasthttp.StatusInternalServerError, "analysis failed")
		}
		return
	}

	h.writeJSON(ctx, fasthttp.StatusOK, toResponse(rep))
}

func (h *Handler) handleHealth(ctx *fasthttp.RequestCtx) {
	h.writeJSON(ctx, fasthttp.StatusOK, reactdto.HealthResponse{
		Status: "ok",
		Engine: h.engineEnabled(),
	})
}

func (h *Handler) writeJSON(ctx *fasthttp.RequestCtx, status int, body any) {
	payload, err := json.Marshal(body)
	if err != nil {
		h.logger.Error("encode response", zap.Error(err))
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json; charset=utf-8")
	ctx.SetBody(payload)
}

func (h *Handler) writeError(ctx *fasthttp.RequestCtx, status int, msg string) {
	h.writeJSON(ctx, status, reactdto.ErrorResponse{Error: msg})
}
