package assessment

import (
	"time"

	"github.com/kingrea/dass-check/internal/instrument"
)

// ScoreResult is what the scoring service returned for one submission. It is
// rendered as-is; nothing in this module recomputes scores or bands.
type ScoreResult struct {
	DepressionScore    int
	AnxietyScore       int
	StressScore        int
	DepressionSeverity instrument.Severity
	AnxietySeverity    instrument.Severity
	StressSeverity     instrument.Severity
	TotalScore         int
	// AssessmentID is empty when the service did not persist the record.
	AssessmentID string
}

// Score returns the reported score for a subscale.
func (r ScoreResult) Score(s instrument.Subscale) int {
	switch s {
	case instrument.Depression:
		return r.DepressionScore
	case instrument.Anxiety:
		return r.AnxietyScore
	case instrument.Stress:
		return r.StressScore
	default:
		return 0
	}
}

// Severity returns the reported band for a subscale.
func (r ScoreResult) Severity(s instrument.Subscale) instrument.Severity {
	switch s {
	case instrument.Depression:
		return r.DepressionSeverity
	case instrument.Anxiety:
		return r.AnxietySeverity
	case instrument.Stress:
		return r.StressSeverity
	default:
		return ""
	}
}

// RecentAssessmentSummary is one entry of the recent-assessments feed. Any
// field may be missing.
type RecentAssessmentSummary struct {
	StudentName     *string
	CreatedAt       *time.Time
	DepressionScore *float64
	AnxietyScore    *float64
	StressScore     *float64
}
