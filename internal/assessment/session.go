// internal/assessment/session.go
//
// Session is the intake workflow for one respondent:
//
//	Editing --BeginSubmit--> Submitting --CompleteSubmit--> Result
//	   ^                         |
//	   +-------FailSubmit--------+
//
// Errors are not a phase of their own. A failed validation or a failed request
// leaves the session in Editing with a message attached and the answers intact.
// Session is not safe for concurrent use; it is owned by the UI event loop.

package assessment

import (
	"errors"
	"fmt"

	"github.com/kingrea/dass-check/internal/instrument"
)

// Phase enumerates the workflow states.
type Phase string

const (
	PhaseEditing    Phase = "editing"
	PhaseSubmitting Phase = "submitting"
	PhaseResult     Phase = "result"
)

// Submission is handed to the caller when a submit is accepted. Round ties
// the eventual outcome back to this attempt.
type Submission struct {
	Round   int
	Payload SubmissionPayload
}

// Session holds the answer set, the metadata input and the workflow phase.
type Session struct {
	phase    Phase
	answers  AnswerSet
	metadata MetadataInput
	result   *ScoreResult
	errMsg   string
	cause    error
	round    int
}

// NewSession starts in Editing with an empty answer set.
func NewSession() *Session {
	return &Session{phase: PhaseEditing}
}

// Phase returns the current workflow phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Answers returns a copy of the answer set.
func (s *Session) Answers() AnswerSet {
	return s.answers
}

// Metadata returns the current metadata input.
func (s *Session) Metadata() MetadataInput {
	return s.metadata
}

// Result returns the score result once the session reached PhaseResult.
func (s *Session) Result() (ScoreResult, bool) {
	if s.result == nil {
		return ScoreResult{}, false
	}
	return *s.result, true
}

// ErrorMessage returns the user-facing message for the last failure, if any.
func (s *Session) ErrorMessage() string {
	return s.errMsg
}

// LastFailure returns the underlying cause of the most recent failed
// submission, or nil.
func (s *Session) LastFailure() error {
	return s.cause
}

// IsComplete reports whether all items are answered.
func (s *Session) IsComplete() bool {
	return s.answers.IsComplete()
}

// CanSubmit reports whether the submit action should be enabled.
func (s *Session) CanSubmit() bool {
	return s.phase == PhaseEditing && s.answers.IsComplete()
}

// SetAnswer records a response. Only allowed while editing.
func (s *Session) SetAnswer(index int, value instrument.Response) error {
	if s.phase != PhaseEditing {
		return ErrReadOnly
	}
	return s.answers.Set(index, value)
}

// SetMetadata replaces the metadata input. Only allowed while editing.
func (s *Session) SetMetadata(in MetadataInput) error {
	if s.phase != PhaseEditing {
		return ErrReadOnly
	}
	s.metadata = in
	return nil
}

// BeginSubmit validates the session and, on success, freezes it in
// Submitting. The caller must issue exactly one request with the returned
// payload and report back through CompleteSubmit or FailSubmit.
func (s *Session) BeginSubmit() (Submission, error) {
	switch s.phase {
	case PhaseSubmitting:
		return Submission{}, ErrSubmissionInFlight
	case PhaseResult:
		return Submission{}, ErrResultShown
	}
	s.errMsg = ""
	if !s.answers.IsComplete() {
		s.errMsg = MessageIncomplete
		return Submission{}, ErrIncomplete
	}
	meta, err := ParseMetadata(s.metadata)
	if err != nil {
		s.errMsg = metadataMessage(err)
		return Submission{}, err
	}
	payload, err := NewSubmissionPayload(s.answers, meta)
	if err != nil {
		s.errMsg = MessageIncomplete
		return Submission{}, err
	}
	s.round++
	s.phase = PhaseSubmitting
	return Submission{Round: s.round, Payload: payload}, nil
}

// CompleteSubmit moves a pending submission to Result.
func (s *Session) CompleteSubmit(round int, result ScoreResult) error {
	if err := s.checkRound(round); err != nil {
		return err
	}
	s.result = &result
	s.errMsg = ""
	s.cause = nil
	s.phase = PhaseResult
	return nil
}

// FailSubmit returns a pending submission to Editing with the generic retry
// message. The cause is kept for diagnostics; the user never sees it.
func (s *Session) FailSubmit(round int, cause error) error {
	if err := s.checkRound(round); err != nil {
		return err
	}
	s.cause = cause
	s.errMsg = MessageScoringFailed
	s.phase = PhaseEditing
	return nil
}

// Reset clears answers, result and error and returns to Editing from any
// phase. A submission still in flight becomes stale and its outcome is
// dropped. Metadata input is kept.
func (s *Session) Reset() {
	s.answers.Reset()
	s.result = nil
	s.errMsg = ""
	s.cause = nil
	s.phase = PhaseEditing
	s.round++
}

func (s *Session) checkRound(round int) error {
	if s.phase != PhaseSubmitting || round != s.round {
		return fmt.Errorf("%w: round %d (current %d, phase %s)", ErrStaleSubmission, round, s.round, s.phase)
	}
	return nil
}

func metadataMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidEmail):
		return MessageInvalidEmail
	case errors.Is(err, ErrInvalidAge):
		return MessageInvalidAge
	default:
		return err.Error()
	}
}
