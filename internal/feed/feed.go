// Package feed loads and formats the recent-assessments sidebar. The feed is
// decorative: it never reports an error to the user and never blocks the
// assessment.
package feed

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/kingrea/dass-check/internal/assessment"
)

// DefaultLimit is how many records the sidebar shows.
const DefaultLimit = 5

const (
	anonymous   = "Anonymous"
	placeholder = "-"
	dateLayout  = "Jan 2, 2006"
)

// Source fetches the raw list. scoring.Client satisfies it.
type Source interface {
	RecentAssessments(ctx context.Context) ([]assessment.RecentAssessmentSummary, error)
}

// Loader wraps a Source with truncation and error absorption.
type Loader struct {
	source Source
	limit  int
	log    *zap.Logger
}

// NewLoader builds a loader. A non-positive limit uses DefaultLimit and a nil
// logger is replaced with a no-op one.
func NewLoader(source Source, limit int, log *zap.Logger) *Loader {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{source: source, limit: limit, log: log}
}

// Load returns at most limit summaries. Failures are logged and produce an
// empty list.
func (l *Loader) Load(ctx context.Context) []assessment.RecentAssessmentSummary {
	if l == nil || l.source == nil {
		return nil
	}
	items, err := l.source.RecentAssessments(ctx)
	if err != nil {
		l.log.Warn("feed.Loader.Load failed", zap.Error(err))
		return nil
	}
	if len(items) > l.limit {
		items = items[:l.limit]
	}
	return items
}

// Line is one formatted sidebar entry.
type Line struct {
	Name   string
	Date   string
	Scores string
}

// Format renders a summary with placeholders for whatever is missing.
func Format(s assessment.RecentAssessmentSummary) Line {
	line := Line{Name: anonymous, Date: placeholder}
	if s.StudentName != nil && *s.StudentName != "" {
		line.Name = *s.StudentName
	}
	if s.CreatedAt != nil && !s.CreatedAt.IsZero() {
		line.Date = s.CreatedAt.Local().Format(dateLayout)
	}
	line.Scores = fmt.Sprintf("D %s · A %s · S %s",
		formatScore(s.DepressionScore),
		formatScore(s.AnxietyScore),
		formatScore(s.StressScore),
	)
	return line
}

func formatScore(v *float64) string {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return placeholder
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
