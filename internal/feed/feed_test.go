package feed

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kingrea/dass-check/internal/assessment"
)

type stubSource struct {
	items []assessment.RecentAssessmentSummary
	err   error
	calls int
}

func (s *stubSource) RecentAssessments(ctx context.Context) ([]assessment.RecentAssessmentSummary, error) {
	s.calls++
	return s.items, s.err
}

func ptr[T any](v T) *T { return &v }

func TestLoadTruncatesToLimit(t *testing.T) {
	src := &stubSource{items: make([]assessment.RecentAssessmentSummary, 8)}
	got := NewLoader(src, 0, nil).Load(context.Background())
	if len(got) != DefaultLimit {
		t.Fatalf("expected %d items, got %d", DefaultLimit, len(got))
	}
	got = NewLoader(src, 3, nil).Load(context.Background())
	if len(got) != 3 {
		t.Fatalf("expected 3 items, got %d", len(got))
	}
}

func TestLoadAbsorbsErrors(t *testing.T) {
	src := &stubSource{err: errors.New("connection refused")}
	if got := NewLoader(src, 5, nil).Load(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty list on failure, got %v", got)
	}
	if src.calls != 1 {
		t.Fatalf("expected one fetch, got %d", src.calls)
	}
	var nilLoader *Loader
	if got := nilLoader.Load(context.Background()); got != nil {
		t.Fatalf("nil loader should load nothing")
	}
}

func TestFormatFullRecord(t *testing.T) {
	created := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.Local)
	line := Format(assessment.RecentAssessmentSummary{
		StudentName:     ptr("Kai"),
		CreatedAt:       &created,
		DepressionScore: ptr(10.0),
		AnxietyScore:    ptr(4.0),
		StressScore:     ptr(12.5),
	})
	if line.Name != "Kai" {
		t.Fatalf("name = %q", line.Name)
	}
	if line.Date != "Mar 5, 2024" {
		t.Fatalf("date = %q", line.Date)
	}
	if line.Scores != "D 10 · A 4 · S 12.5" {
		t.Fatalf("scores = %q", line.Scores)
	}
}

func TestFormatEmptyRecord(t *testing.T) {
	line := Format(assessment.RecentAssessmentSummary{StudentName: ptr("")})
	if line.Name != "Anonymous" {
		t.Fatalf("name = %q", line.Name)
	}
	if line.Date != "-" {
		t.Fatalf("date = %q", line.Date)
	}
	if line.Scores != "D - · A - · S -" {
		t.Fatalf("scores = %q", line.Scores)
	}
	if strings.Contains(line.Scores, "<nil>") {
		t.Fatalf("placeholder leaked: %q", line.Scores)
	}
}
