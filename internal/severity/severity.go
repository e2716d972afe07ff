// Package severity turns a score reported by the scoring service into what
// the result view draws: a bar fill and a coloured badge. It never derives a
// band from a score; the service's label is authoritative.
package severity

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/dass-check/internal/instrument"
)

var (
	badgeBase = lipgloss.NewStyle().Bold(true).Padding(0, 1)

	badgeStyles = map[instrument.Severity]lipgloss.Style{
		instrument.SeverityNormal:          badgeBase.Foreground(lipgloss.Color("#047857")).Background(lipgloss.Color("#D1FAE5")),
		instrument.SeverityMild:            badgeBase.Foreground(lipgloss.Color("#A16207")).Background(lipgloss.Color("#FEF9C3")),
		instrument.SeverityModerate:        badgeBase.Foreground(lipgloss.Color("#C2410C")).Background(lipgloss.Color("#FFEDD5")),
		instrument.SeveritySevere:          badgeBase.Foreground(lipgloss.Color("#B91C1C")).Background(lipgloss.Color("#FEE2E2")),
		instrument.SeverityExtremelySevere: badgeBase.Foreground(lipgloss.Color("#BE123C")).Background(lipgloss.Color("#FFE4E6")),
	}
	neutralBadge = badgeBase.Foreground(lipgloss.Color("#374151")).Background(lipgloss.Color("#F3F4F6"))

	barColours = map[instrument.Subscale]string{
		instrument.Depression: "#6366F1", // indigo
		instrument.Anxiety:    "#14B8A6", // teal
		instrument.Stress:     "#F59E0B", // amber
	}
)

// NeutralColour is the bar colour for anything without its own.
const NeutralColour = "#9CA3AF"

// unknownLabel is shown when the service sent an empty severity.
const unknownLabel = "Unknown"

// Fill returns score/maximum clamped to [0, 1]. A non-positive maximum
// yields 0.
func Fill(score, maximum float64) float64 {
	if maximum <= 0 {
		return 0
	}
	f := score / maximum
	switch {
	case math.IsNaN(f), f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// Percent is Fill rounded to a whole percentage.
func Percent(score, maximum float64) int {
	return int(Fill(score, maximum)*100 + 0.5)
}

// Badge is a rendered severity classification.
type Badge struct {
	Text  string
	Style lipgloss.Style
	// Known is false when the label is outside the five bands.
	Known bool
}

// Render draws the badge.
func (b Badge) Render() string {
	return b.Style.Render(b.Text)
}

// BadgeFor maps any label to a badge. Labels outside the closed set keep
// their text and get the neutral style.
func BadgeFor(label string) Badge {
	text := strings.TrimSpace(label)
	sev := instrument.Severity(text)
	if style, ok := badgeStyles[sev]; ok {
		return Badge{Text: text, Style: style, Known: true}
	}
	if text == "" {
		text = unknownLabel
	}
	return Badge{Text: text, Style: neutralBadge}
}

// BarColour returns the progress bar colour for a subscale.
func BarColour(s instrument.Subscale) string {
	if c, ok := barColours[s]; ok {
		return c
	}
	return NeutralColour
}
