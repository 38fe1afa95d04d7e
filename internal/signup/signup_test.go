package signup

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/weiawesome/momentroom/internal/api"
	"github.com/weiawesome/momentroom/internal/domain"
)

func validForm() domain.SignupForm {
	return domain.SignupForm{
		Email:                "neo@example.com",
		Password:             "hunter22",
		ConfirmationPassword: "hunter22",
		Nickname:             "neo",
	}
}

func TestValidateBuildsRequest(t *testing.T) {
	req, err := Validate(validForm())
	if err != nil {
		t.Fatal(err)
	}
	want := domain.SignupRequest{Email: "neo@example.com", Password: "hunter22", Nickname: "neo"}
	if req != want {
		t.Fatalf("expected %+v, got %+v", want, req)
	}
}

func TestValidateFirstMissingFieldWins(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*domain.SignupForm)
		field string
	}{
		{"email", func(f *domain.SignupForm) { f.Email = "" }, domain.FieldEmail},
		{"whitespace password", func(f *domain.SignupForm) { f.Password = "   " }, domain.FieldPassword},
		{"confirmation", func(f *domain.SignupForm) { f.ConfirmationPassword = "" }, domain.FieldConfirmationPassword},
		{"nickname", func(f *domain.SignupForm) { f.Nickname = "\t" }, domain.FieldNickname},
		{"email before nickname", func(f *domain.SignupForm) { f.Email = ""; f.Nickname = "" }, domain.FieldEmail},
		{"missing beats mismatch", func(f *domain.SignupForm) { f.Password = "a"; f.Nickname = "" }, domain.FieldNickname},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.edit(&form)

			_, err := Validate(form)
			var outcome *Outcome
			if !errors.As(err, &outcome) {
				t.Fatalf("expected *Outcome, got %v", err)
			}
			if outcome.Kind != KindFieldMissing || outcome.Field != tt.field {
				t.Fatalf("expected missing %s, got %+v", tt.field, outcome)
			}
			if outcome.Message() != fmt.Sprintf("%s is empty!", tt.field) {
				t.Fatalf("unexpected message %q", outcome.Message())
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatal("missing field should be a validation error")
			}
		})
	}
}

func TestValidatePasswordMismatch(t *testing.T) {
	form := validForm()
	form.ConfirmationPassword = "hunter23"

	_, err := Validate(form)
	var outcome *Outcome
	if !errors.As(err, &outcome) || outcome.Kind != KindPasswordMismatch {
		t.Fatalf("expected PasswordMismatch, got %v", err)
	}
	if outcome.Message() != "Check the confirmation password." {
		t.Fatalf("unexpected message %q", outcome.Message())
	}
}

func TestMapFailure(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     Kind
		conflict Conflict
		message  string
	}{
		{"email taken", &api.APIError{StatusCode: 409, Code: 40901, Structured: true}, KindServerConflict, ConflictEmailTaken, "This email address has already been registered."},
		{"nickname taken", &api.APIError{StatusCode: 409, Code: 40902, Structured: true}, KindServerConflict, ConflictNicknameTaken, "This nickname is already in use."},
		{"wrapped", fmt.Errorf("signup: %w", &api.APIError{StatusCode: 409, Code: 40902, Structured: true}), KindServerConflict, ConflictNicknameTaken, "This nickname is already in use."},
		{"other code", &api.APIError{StatusCode: 400, Code: 40000, Structured: true}, KindUnknown, ConflictNone, "Sign-up failed due to an unknown error"},
		{"unstructured", &api.APIError{StatusCode: 502, Message: "bad gateway"}, KindUnknown, ConflictNone, "Sign-up failed due to an unknown error"},
		{"transport", errors.New("connection refused"), KindUnknown, ConflictNone, "Sign-up failed due to an unknown error"},
		{"nil", nil, KindUnknown, ConflictNone, "Sign-up failed due to an unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := MapFailure(tt.err)
			if o == nil {
				t.Fatal("MapFailure must never return nil")
			}
			if o.Kind != tt.kind || o.Conflict != tt.conflict || o.Message() != tt.message {
				t.Fatalf("unexpected outcome %+v %q", o, o.Message())
			}
			if errors.Is(o, ErrValidation) {
				t.Fatal("server outcomes are not validation errors")
			}
		})
	}
}

func TestFormSetAndHint(t *testing.T) {
	f := NewForm()
	if err := f.Set(domain.FieldPassword, "abc"); err != nil {
		t.Fatal(err)
	}
	if f.PasswordHint() != "Check the password" {
		t.Fatalf("expected hint, got %q", f.PasswordHint())
	}
	f.Set(domain.FieldConfirmationPassword, "abc")
	if f.PasswordHint() != "" {
		t.Fatalf("expected no hint, got %q", f.PasswordHint())
	}
	if err := f.Set("age", "3"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if v := f.Values(); v.Password != "abc" || v.Email != "" {
		t.Fatalf("unexpected values %+v", v)
	}
}

func TestFormSubmitInvalidNeverSends(t *testing.T) {
	f := NewForm()
	f.Set(domain.FieldEmail, "neo@example.com")

	err := f.Submit(context.Background(), func(ctx context.Context, req domain.SignupRequest) error {
		t.Fatal("invalid form must not be sent")
		return nil
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if f.Message() != "password is empty!" {
		t.Fatalf("unexpected message %q", f.Message())
	}
}

func TestFormSubmitMapsServerFailure(t *testing.T) {
	f := NewForm()
	form := validForm()
	f.Set(domain.FieldEmail, form.Email)
	f.Set(domain.FieldPassword, form.Password)
	f.Set(domain.FieldConfirmationPassword, form.ConfirmationPassword)
	f.Set(domain.FieldNickname, form.Nickname)

	var sent domain.SignupRequest
	err := f.Submit(context.Background(), func(ctx context.Context, req domain.SignupRequest) error {
		sent = req
		if !f.Submitting() {
			t.Error("expected form to be submitting")
		}
		return &api.APIError{StatusCode: 409, Code: CodeEmailTaken, Structured: true}
	})

	if sent.Nickname != "neo" {
		t.Fatalf("unexpected request %+v", sent)
	}
	var outcome *Outcome
	if !errors.As(err, &outcome) || outcome.Conflict != ConflictEmailTaken {
		t.Fatalf("expected email conflict, got %v", err)
	}
	if f.Message() != "This email address has already been registered." || f.Submitting() {
		t.Fatalf("unexpected form state %q %v", f.Message(), f.Submitting())
	}

	if err := f.Submit(context.Background(), func(ctx context.Context, req domain.SignupRequest) error { return nil }); err != nil {
		t.Fatal(err)
	}
	if f.Message() != "" {
		t.Fatalf("expected message cleared, got %q", f.Message())
	}
}

func TestOnlyLocalOutcomesAreValidationErrors(t *testing.T) {
	tests := []struct {
		outcome *Outcome
		local   bool
	}{
		{FieldMissing("email"), true},
		{PasswordMismatch(), true},
		{ServerConflict(ConflictEmailTaken), false},
		{Unknown(), false},
	}

	for _, tt := range tests {
		if got := errors.Is(tt.outcome, ErrValidation); got != tt.local {
			t.Errorf("kind %d: errors.Is(ErrValidation) = %v, want %v", tt.outcome.Kind, got, tt.local)
		}
	}
}
