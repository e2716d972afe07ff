package assessment

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Age bounds accepted for the optional respondent age.
const (
	MinAge = 5
	MaxAge = 120
)

var validate = validator.New()

// MetadataInput is the raw text typed into the optional respondent fields.
type MetadataInput struct {
	Name    string
	Email   string
	Age     string
	Context string
}

// RespondentMetadata is the descriptive part of a submission. Every field is
// optional and nil fields are omitted from the wire payload.
type RespondentMetadata struct {
	Name    *string `json:"student_name,omitempty"`
	Email   *string `json:"student_email,omitempty" validate:"omitempty,email"`
	Age     *int    `json:"age,omitempty" validate:"omitempty,gte=5,lte=120"`
	Context *string `json:"context,omitempty"`
}

// ParseMetadata trims the raw input, drops empty fields and validates what is
// left. It returns ErrInvalidEmail or ErrInvalidAge on the first bad field.
func ParseMetadata(in MetadataInput) (RespondentMetadata, error) {
	meta := RespondentMetadata{
		Name:    optionalString(in.Name),
		Email:   optionalString(in.Email),
		Context: optionalString(in.Context),
	}
	if raw := strings.TrimSpace(in.Age); raw != "" {
		age, err := strconv.Atoi(raw)
		if err != nil {
			return RespondentMetadata{}, ErrInvalidAge
		}
		meta.Age = &age
	}
	if err := validate.Struct(meta); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			switch fieldErrs[0].StructField() {
			case "Age":
				return RespondentMetadata{}, ErrInvalidAge
			case "Email":
				return RespondentMetadata{}, ErrInvalidEmail
			}
		}
		return RespondentMetadata{}, err
	}
	return meta, nil
}

func optionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
