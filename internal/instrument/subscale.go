package instrument

import "strings"

// Subscale names one of the three DASS-21 dimensions.
type Subscale string

const (
	Depression Subscale = "depression"
	Anxiety    Subscale = "anxiety"
	Stress     Subscale = "stress"
)

// Subscales lists the dimensions in display order.
func Subscales() []Subscale {
	return []Subscale{Depression, Anxiety, Stress}
}

// FriendlyName returns the capitalised display name.
func (s Subscale) FriendlyName() string {
	switch s {
	case Depression:
		return "Depression"
	case Anxiety:
		return "Anxiety"
	case Stress:
		return "Stress"
	default:
		return "Unknown"
	}
}

// Severity is a band label reported by the scoring service. The set is
// closed, but values outside it still flow through as-is; callers decide how
// to render them.
type Severity string

const (
	SeverityNormal          Severity = "Normal"
	SeverityMild            Severity = "Mild"
	SeverityModerate        Severity = "Moderate"
	SeveritySevere          Severity = "Severe"
	SeverityExtremelySevere Severity = "Extremely Severe"
)

// Severities lists the known bands from least to most severe.
func Severities() []Severity {
	return []Severity{
		SeverityNormal,
		SeverityMild,
		SeverityModerate,
		SeveritySevere,
		SeverityExtremelySevere,
	}
}

// Known reports whether s is one of the five bands. Surrounding whitespace is
// ignored; case is not.
func (s Severity) Known() bool {
	trimmed := Severity(strings.TrimSpace(string(s)))
	for _, known := range Severities() {
		if trimmed == known {
			return true
		}
	}
	return false
}
