package msgcat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEmbeddedCatalogLoads(t *testing.T) {
	c, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got, err := c.Render("reactions.mate_for.1", nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "Checkmate." {
		t.Fatalf("Render = %q", got)
	}

	if _, err := c.Render("reactions.no_such_key", nil); err == nil {
		t.Fatal("missing key should error")
	}
}

func TestLinesReturnsBankInOrder(t *testing.T) {
	c, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	want := []string{
		"Balanced move.",
		"Reasonable choice.",
		"Steady play.",
	}
	if diff := cmp.Diff(want, c.Lines("reactions.neutral")); diff != "" {
		t.Fatalf("Lines mismatch (-want +got):\n%s", diff)
	}

	if got := c.Lines("reactions.no_such_bank"); len(got) != 0 {
		t.Fatalf("unknown bank should be empty, got %v", got)
	}
}

func TestEveryCategoryHasLines(t *testing.T) {
	c, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	banks := []string{
		"reactions.great_tactic",
		"reactions.solid_improvement",
		"reactions.warning_hanging",
		"reactions.blunderish",
		"reactions.neutral",
		"reactions.mate_for",
		"reactions.stalemate",
		"reactions.insufficient_material",
		"reactions.game_continues",
		"engine_tones.excellent",
		"engine_tones.good",
		"engine_tones.okay",
		"engine_tones.mistake",
		"engine_tones.blunder",
	}
	for _, bank := range banks {
		if len(c.Lines(bank)) == 0 {
			t.Errorf("bank %s has no lines", bank)
		}
	}
}

func TestOverrideDir(t *testing.T) {
	dir := t.TempDir()
	override := "reactions:\n  neutral:\n    \"1\": \"Nothing to see here.\"\n"
	if err := os.WriteFile(filepath.Join(dir, "local.yaml"), []byte(override), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	c, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := c.Render("reactions.neutral.1", nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "Nothing to see here." {
		t.Fatalf("override not applied: %q", got)
	}
	// Untouched keys keep their embedded values.
	if got, _ := c.Render("reactions.neutral.2", nil); got != "Reasonable choice." {
		t.Fatalf("sibling key lost: %q", got)
	}
}

func TestDuplicateOverrideKeysRejected(t *testing.T) {
	dir := t.TempDir()
	body := "reactions:\n  neutral:\n    \"1\": \"A\"\n"
	for _, name := range []string{"a.yaml", "b.yaml"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if _, err := New(dir); err == nil {
		t.Fatal("duplicate keys across override files should error")
	}
}
