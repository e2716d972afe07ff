package severity

import (
	"math"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/dass-check/internal/instrument"
)

func TestFillClamps(t *testing.T) {
	cases := []struct {
		score, max, want float64
	}{
		{0, 42, 0},
		{21, 42, 0.5},
		{42, 42, 1},
		{50, 42, 1},
		{-3, 42, 0},
		{10, 0, 0},
		{10, -5, 0},
		{math.NaN(), 42, 0},
	}
	for _, c := range cases {
		if got := Fill(c.score, c.max); got != c.want {
			t.Fatalf("Fill(%v, %v) = %v, want %v", c.score, c.max, got, c.want)
		}
	}
	if got := Percent(14, 42); got != 33 {
		t.Fatalf("Percent(14, 42) = %d, want 33", got)
	}
}

func TestBadgeForKnownLabels(t *testing.T) {
	seen := map[lipgloss.TerminalColor]bool{}
	for _, sev := range instrument.Severities() {
		badge := BadgeFor(string(sev))
		if !badge.Known {
			t.Fatalf("%q should be known", sev)
		}
		if badge.Text != string(sev) {
			t.Fatalf("badge text = %q, want %q", badge.Text, sev)
		}
		if badge.Render() == "" {
			t.Fatalf("%q rendered empty", sev)
		}
		seen[badge.Style.GetBackground()] = true
	}
	if len(seen) != len(instrument.Severities()) {
		t.Fatalf("expected a distinct background per band, got %d", len(seen))
	}
}

func TestBadgeForAnyLabel(t *testing.T) {
	for _, label := range []string{"", "   ", "Catastrophic", "normal", "EXTREMELY SEVERE", "Ĉu?"} {
		badge := BadgeFor(label)
		if badge.Known {
			t.Fatalf("%q should not be known", label)
		}
		if badge.Text == "" {
			t.Fatalf("%q produced an empty badge", label)
		}
		if badge.Render() == "" {
			t.Fatalf("%q rendered empty", label)
		}
	}
	if got := BadgeFor("  Mild ").Text; got != "Mild" {
		t.Fatalf("label should be trimmed, got %q", got)
	}
}

func TestBarColourPerSubscale(t *testing.T) {
	colours := map[string]bool{}
	for _, s := range instrument.Subscales() {
		colours[BarColour(s)] = true
	}
	if len(colours) != 3 {
		t.Fatalf("expected three distinct bar colours, got %v", colours)
	}
	if BarColour("other") != NeutralColour {
		t.Fatalf("unknown subscale should use the neutral colour")
	}
}
