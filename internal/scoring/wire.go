package scoring

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/kingrea/dass-check/internal/assessment"
	"github.com/kingrea/dass-check/internal/instrument"
)

var validate = validator.New()

// scoreResponse mirrors the service's result body. Pointers make a missing
// field distinguishable from a zero score.
type scoreResponse struct {
	DepressionScore    *float64        `json:"depression_score" validate:"required,gte=0,lte=42"`
	AnxietyScore       *float64        `json:"anxiety_score" validate:"required,gte=0,lte=42"`
	StressScore        *float64        `json:"stress_score" validate:"required,gte=0,lte=42"`
	DepressionSeverity *string         `json:"depression_severity" validate:"required"`
	AnxietySeverity    *string         `json:"anxiety_severity" validate:"required"`
	StressSeverity     *string         `json:"stress_severity" validate:"required"`
	TotalScore         *float64        `json:"total_score" validate:"required,gte=0,lte=126"`
	AssessmentID       json.RawMessage `json:"assessment_id"`
}

func decodeScoreResult(body []byte) (assessment.ScoreResult, error) {
	var wire scoreResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return assessment.ScoreResult{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := validate.Struct(wire); err != nil {
		return assessment.ScoreResult{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	id, err := assessmentID(wire.AssessmentID)
	if err != nil {
		return assessment.ScoreResult{}, err
	}
	return assessment.ScoreResult{
		DepressionScore:    roundScore(*wire.DepressionScore),
		AnxietyScore:       roundScore(*wire.AnxietyScore),
		StressScore:        roundScore(*wire.StressScore),
		DepressionSeverity: instrument.Severity(*wire.DepressionSeverity),
		AnxietySeverity:    instrument.Severity(*wire.AnxietySeverity),
		StressSeverity:     instrument.Severity(*wire.StressSeverity),
		TotalScore:         roundScore(*wire.TotalScore),
		AssessmentID:       id,
	}, nil
}

func roundScore(v float64) int {
	return int(math.Round(v))
}

// assessmentID accepts a string, a number or null.
func assessmentID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}
	return "", fmt.Errorf("%w: assessment_id must be a string or number", ErrMalformedResponse)
}

// decodeSummaries decodes the recent-assessments body. Only a non-array
// body is an error; every element and field inside is best effort.
func decodeSummaries(body []byte) ([]assessment.RecentAssessmentSummary, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	out := make([]assessment.RecentAssessmentSummary, 0, len(items))
	for _, item := range items {
		out = append(out, decodeSummary(item))
	}
	return out, nil
}

func decodeSummary(raw json.RawMessage) assessment.RecentAssessmentSummary {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return assessment.RecentAssessmentSummary{}
	}
	summary := assessment.RecentAssessmentSummary{
		StudentName:     field[string](fields["student_name"]),
		DepressionScore: field[float64](fields["depression_score"]),
		AnxietyScore:    field[float64](fields["anxiety_score"]),
		StressScore:     field[float64](fields["stress_score"]),
	}
	if created := field[string](fields["created_at"]); created != nil {
		summary.CreatedAt = parseTimestamp(*created)
	}
	return summary
}

// field decodes raw into T, treating null and type mismatches as absent.
func field[T any](raw json.RawMessage) *T {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return &v
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

func parseTimestamp(value string) *time.Time {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return &ts
		}
	}
	return nil
}

// decodeStatus flattens a system-check body into display strings. A body
// that is not an object yields no fields.
func decodeStatus(body []byte) map[string]string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(fields))
	for key, raw := range fields {
		if s := field[string](raw); s != nil {
			out[key] = *s
			continue
		}
		out[key] = string(bytes.TrimSpace(raw))
	}
	return out
}
