package signup

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/weiawesome/momentroom/internal/domain"
)

var (
	ErrUnknownField     = errors.New("unknown signup field")
	ErrSubmitInProgress = errors.New("signup already in progress")
)

// SubmitFunc sends a validated request to the platform.
type SubmitFunc func(ctx context.Context, req domain.SignupRequest) error

// Form holds the signup form between keystrokes. Updates replace the whole
// value; readers get copies.
type Form struct {
	mu         sync.Mutex
	values     domain.SignupForm
	message    string
	submitting bool
}

// NewForm creates an empty form.
func NewForm() *Form {
	return &Form{}
}

// Set replaces one field.
func (f *Form) Set(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	next := f.values
	switch field {
	case domain.FieldEmail:
		next.Email = value
	case domain.FieldPassword:
		next.Password = value
	case domain.FieldConfirmationPassword:
		next.ConfirmationPassword = value
	case domain.FieldNickname:
		next.Nickname = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	f.values = next
	return nil
}

// Values returns the current form contents.
func (f *Form) Values() domain.SignupForm {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.values
}

// PasswordHint is the inline hint under the confirmation input, shown while
// the two passwords differ.
func (f *Form) PasswordHint() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.values.Password != f.values.ConfirmationPassword {
		return "Check the password"
	}
	return ""
}

// Message is the error shown for the last submission, or "".
func (f *Form) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.message
}

// Submitting reports whether a submission is in flight.
func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.submitting
}

// Submit validates the form and, if valid, sends it with submit. It returns
// nil on success and the Outcome otherwise; the outcome's message becomes the
// form message. Invalid forms never reach submit.
func (f *Form) Submit(ctx context.Context, submit SubmitFunc) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrSubmitInProgress
	}

	req, err := Validate(f.values)
	if err != nil {
		f.message = err.Error()
		f.mu.Unlock()
		return err
	}

	f.message = ""
	f.submitting = true
	f.mu.Unlock()

	err = submit(ctx, req)

	f.mu.Lock()
	defer f.mu.Unlock()

	f.submitting = false
	if err != nil {
		var outcome *Outcome
		if !errors.As(err, &outcome) {
			outcome = MapFailure(err)
		}
		f.message = outcome.Message()
		return outcome
	}
	return nil
}
