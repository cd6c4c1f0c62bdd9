package httpapi

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/valyala/fasthttp"

	"github.com/chessreact/move-reactor/internal/advisor"
	"github.com/chessreact/move-reactor/internal/msgcat"
	"github.com/chessreact/move-reactor/internal/service/analysis"
	"github.com/chessreact/move-reactor/pkg/reactdto"
)

func newHandler(t *testing.T) *Handler {
	t.Helper()
	catalog, err := msgcat.New("")
	if err != nil {
		t.Fatalf("msgcat.New: %v", err)
	}
	svc, err := analysis.New(analysis.Options{
		Catalog: catalog,
		Advisor: advisor.New(),
		Picker:  func(n int) int { return 0 },
	})
	if err != nil {
		t.Fatalf("analysis.New: %v", err)
	}
	return NewHandler(svc, nil, nil)
}

func doRequest(h *Handler, method, path, body string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	if body != "" {
		ctx.Request.SetBodyString(body)
	}
	h.HandleFastHTTP(ctx)
	return ctx
}

func TestAnalyzeEndpoint(t *testing.T) {
	h := newHandler(t)

	body := `{"fen":"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1","move":"e4"}`
	ctx := doRequest(h, "POST", "/api/analyze", body)

	if got := ctx.Response.StatusCode(); got != fasthttp.StatusOK {
		t.Fatalf("status = %d, body = %s", got, ctx.Response.Body())
	}

	var resp reactdto.AnalyzeResponse
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.NormalizedMove != "e4" {
		t.Fatalf("normalized_move = %q", resp.NormalizedMove)
	}
	if resp.Category != "neutral" {
		t.Fatalf("category = %q", resp.Category)
	}
	if resp.Reaction == "" || resp.RequestID == "" {
		t.Fatalf("incomplete response: %+v", resp)
	}
	if resp.Details.Features.Turn != "White" {
		t.Fatalf("turn = %q", resp.Details.Features.Turn)
	}
	if resp.Details.Features.MobilityBefore.White != 20 {
		t.Fatalf("mobility_before.white = %d", resp.Details.Features.MobilityBefore.White)
	}
	if resp.Details.Engine.Enabled {
		t.Fatal("engine should be disabled")
	}
	if resp.Details.Advisory == nil {
		t.Fatal("advisory missing")
	}
}

func TestAnalyzeEndpointBadInput(t *testing.T) {
	h := newHandler(t)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", "{", fasthttp.StatusBadRequest},
		{"missing fields", `{"fen":""}`, fasthttp.StatusBadRequest},
		{"bad fen", `{"fen":"garbage","move":"e4"}`, fasthttp.StatusBadRequest},
		{"illegal move", `{"fen":"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1","move":"e2e5"}`, fasthttp.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := doRequest(h, "POST", "/api/analyze", tc.body)
			if got := ctx.Response.StatusCode(); got != tc.want {
				t.Fatalf("status = %d, want %d (body %s)", got, tc.want, ctx.Response.Body())
			}
			var resp reactdto.ErrorResponse
			if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if resp.Error == "" {
				t.Fatal("error message missing")
			}
		})
	}
}

func TestAnalyzeEndpointMethodNotAllowed(t *testing.T) {
	h := newHandler(t)
	ctx := doRequest(h, "GET", "/api/analyze", "")
	if got := ctx.Response.StatusCode(); got != fasthttp.StatusMethodNotAllowed {
		t.Fatalf("status = %d", got)
	}
}

func TestHealthEndpoint(t *testing.T) {
	h := newHandler(t)
	ctx := doRequest(h, "GET", "/healthz", "")
	if got := ctx.Response.StatusCode(); got != fasthttp.StatusOK {
		t.Fatalf("status = %d", got)
	}
	var resp reactdto.HealthResponse
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" || resp.Engine {
		t.Fatalf("health = %+v", resp)
	}
}

func TestUnknownPath(t *testing.T) {
	h := newHandler(t)
	ctx := doRequest(h, "GET", "/nope", "")
	if got := ctx.Response.StatusCode(); got != fasthttp.StatusNotFound {
		t.Fatalf("status = %d", got)
	}
}

func TestResponseBodyIsStableJSON(t *testing.T) {
	h := newHandler(t)
	body := `{"fen":"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1","move":"Nf3"}`

	first := doRequest(h, "POST", "/api/analyze", body).Response.Body()
	var a, b reactdto.AnalyzeResponse
	if err := json.Unmarshal(first, &a); err != nil {
		t.Fatalf("decode: %v", err)
	}
	second := doRequest(h, "POST", "/api/analyze", body).Response.Body()
	if err := json.Unmarshal(second, &b); err != nil {
		t.Fatalf("decode: %v", err)
	}

	// Request IDs differ per call; everything else must match.
	a.RequestID, b.RequestID = "", ""
	aj, _ := json.Marshal(a)
	bj, _ := json.Marshal(b)
	if !strings.EqualFold(string(aj), string(bj)) {
		t.Fatalf("responses differ:\n%s\n%s", aj, bj)
	}
}
