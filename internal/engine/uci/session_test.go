package uci

import (
	"strings"
	"testing"
	"time"
)

func TestBuildGoTokens(t *testing.T) {
	tests := []struct {
		name    string
		limits  Limits
		want    string
		wantErr bool
	}{
		{name: "depth only", limits: Limits{Depth: 12}, want: "go depth 12"},
		{name: "movetime only", limits: Limits{MoveTimeMillis: 500}, want: "go movetime 500"},
		{name: "depth and movetime", limits: Limits{Depth: 8, MoveTimeMillis: 250}, want: "go depth 8 movetime 250"},
		{name: "no limits", limits: Limits{}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := buildGoTokens(tt.limits)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("buildGoTokens: %v", err)
			}
			if got := strings.Join(tokens, " "); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestComputeSearchTimeout(t *testing.T) {
	if got := computeSearchTimeout(Limits{MoveTimeMillis: 1000}); got != 9*time.Second {
		t.Fatalf("movetime timeout = %v, want 9s", got)
	}
	if got := computeSearchTimeout(Limits{Depth: 4}); got != 6*time.Second {
		t.Fatalf("shallow depth timeout = %v, want 6s floor", got)
	}
	if got := computeSearchTimeout(Limits{Depth: 100}); got != 20*time.Second {
		t.Fatalf("deep depth timeout = %v, want 20s cap", got)
	}
	if got := computeSearchTimeout(Limits{}); got != 6*time.Second {
		t.Fatalf("default timeout = %v, want 6s", got)
	}
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		line     string
		wantKind string
		wantVal  int
		wantOK   bool
	}{
		{"info depth 12 seldepth 16 score cp 35 nodes 90312 pv e2e4", "cp", 35, true},
		{"info depth 20 score mate -3 nodes 12345", "mate", -3, true},
		{"info depth 1 nodes 20", "", 0, false},
		{"info string NNUE evaluation enabled", "", 0, false},
		{"info score cp notanumber", "", 0, false},
	}
	for _, tt := range tests {
		kind, val, ok := parseScore(tt.line)
		if ok != tt.wantOK || kind != tt.wantKind || val != tt.wantVal {
			t.Errorf("parseScore(%q) = (%q, %d, %v), want (%q, %d, %v)",
				tt.line, kind, val, ok, tt.wantKind, tt.wantVal, tt.wantOK)
		}
	}
}

func TestBuildPositionCommand(t *testing.T) {
	if got := buildPositionCommand("startpos"); got != "position startpos\n" {
		t.Fatalf("startpos command = %q", got)
	}
	fen := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	if got := buildPositionCommand(fen); got != "position fen "+fen+"\n" {
		t.Fatalf("fen command = %q", got)
	}
}

func TestValidateOptions(t *testing.T) {
	if err := validateOptions(Options{Threads: 1, HashMB: 64, MultiPV: 1}); err != nil {
		t.Fatalf("valid options rejected: %v", err)
	}
	if err := validateOptions(Options{Threads: 1, HashMB: 0, MultiPV: 1}); err == nil {
		t.Fatal("zero hash accepted")
	}
	if err := validateOptions(Options{Threads: 1, HashMB: 64, MultiPV: 0}); err == nil {
		t.Fatal("zero multipv accepted")
	}
}
