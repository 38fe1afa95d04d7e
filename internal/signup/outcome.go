// Package signup validates the signup form locally and maps server failures
// onto user-facing outcomes.
package signup

import (
	"errors"
	"fmt"

	"github.com/weiawesome/momentroom/internal/api"
)

// Platform conflict codes returned on signup.
const (
	CodeEmailTaken    = 40901
	CodeNicknameTaken = 40902
)

// ErrValidation matches outcomes produced before anything is sent.
var ErrValidation = errors.New("signup validation failed")

// Kind classifies an Outcome.
type Kind int

const (
	KindFieldMissing Kind = iota + 1
	KindPasswordMismatch
	KindServerConflict
	KindUnknown
)

// Conflict is the reason of a KindServerConflict outcome.
type Conflict int

const (
	ConflictNone Conflict = iota
	ConflictEmailTaken
	ConflictNicknameTaken
)

// Outcome is a failed signup. Field is set for KindFieldMissing and Conflict
// for KindServerConflict.
type Outcome struct {
	Kind     Kind
	Field    string
	Conflict Conflict
}

// FieldMissing reports that a required form field was left empty.
func FieldMissing(field string) *Outcome {
	return &Outcome{Kind: KindFieldMissing, Field: field}
}

// PasswordMismatch reports that the password confirmation differs.
func PasswordMismatch() *Outcome {
	return &Outcome{Kind: KindPasswordMismatch}
}

// ServerConflict reports that the platform rejected a taken nickname or email.
func ServerConflict(c Conflict) *Outcome {
	return &Outcome{Kind: KindServerConflict, Conflict: c}
}

// Unknown reports a failure the form cannot attribute to a field.
func Unknown() *Outcome {
	return &Outcome{Kind: KindUnknown}
}

// Message is the text shown to the user.
func (o *Outcome) Message() string {
	switch o.Kind {
	case KindFieldMissing:
		return fmt.Sprintf("%s is empty!", o.Field)
	case KindPasswordMismatch:
		return "Check the confirmation password."
	case KindServerConflict:
		switch o.Conflict {
		case ConflictEmailTaken:
			return "This email address has already been registered."
		case ConflictNicknameTaken:
			return "This nickname is already in use."
		}
	}
	return "Sign-up failed due to an unknown error"
}

func (o *Outcome) Error() string {
	return o.Message()
}

func (o *Outcome) Is(target error) bool {
	return target == ErrValidation && (o.Kind == KindFieldMissing || o.Kind == KindPasswordMismatch)
}

// MapFailure classifies a failed signup submission. It is total: anything
// that is not a structured 40901 or 40902 conflict is Unknown, nil included.
func MapFailure(err error) *Outcome {
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) || !apiErr.Structured {
		return Unknown()
	}

	switch apiErr.Code {
	case CodeEmailTaken:
		return ServerConflict(ConflictEmailTaken)
	case CodeNicknameTaken:
		return ServerConflict(ConflictNicknameTaken)
	default:
		return Unknown()
	}
}
