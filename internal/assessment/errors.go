package assessment

import "errors"

var (
	// ErrItemOutOfRange rejects item indices outside 1..21.
	ErrItemOutOfRange = errors.New("assessment: item index out of range")
	// ErrResponseOutOfRange rejects values outside the 0..3 scale.
	ErrResponseOutOfRange = errors.New("assessment: response out of range")
	// ErrIncomplete blocks submission while any item is unanswered.
	ErrIncomplete = errors.New("assessment: answer set incomplete")
	// ErrInvalidEmail and ErrInvalidAge block submission on bad metadata.
	ErrInvalidEmail = errors.New("assessment: invalid email")
	ErrInvalidAge   = errors.New("assessment: invalid age")
	// ErrReadOnly is returned for edits outside the editing phase.
	ErrReadOnly = errors.New("assessment: answers are read-only in this phase")
	// ErrSubmissionInFlight rejects a second submit while one is pending.
	ErrSubmissionInFlight = errors.New("assessment: submission already in flight")
	// ErrResultShown rejects submit once a result is displayed; reset first.
	ErrResultShown = errors.New("assessment: result already shown")
	// ErrStaleSubmission marks an outcome for a round that is no longer current.
	ErrStaleSubmission = errors.New("assessment: stale submission outcome")
)

// User-facing messages. They are fixed so the form renders the same text
// every time.
const (
	MessageIncomplete    = "Please answer all 21 questions before submitting."
	MessageInvalidEmail  = "Please enter a valid email address."
	MessageInvalidAge    = "Age must be a whole number between 5 and 120."
	MessageScoringFailed = "Failed to score. Please try again."
)
