package assessment

// SubmissionPayload is the body sent to the scoring service. The metadata
// fields are flattened next to answers on the wire.
type SubmissionPayload struct {
	RespondentMetadata
	Answers []int `json:"answers"`
}

// NewSubmissionPayload builds a payload from a complete answer set.
func NewSubmissionPayload(answers AnswerSet, meta RespondentMetadata) (SubmissionPayload, error) {
	values, err := answers.Values()
	if err != nil {
		return SubmissionPayload{}, err
	}
	return SubmissionPayload{RespondentMetadata: meta, Answers: values}, nil
}
