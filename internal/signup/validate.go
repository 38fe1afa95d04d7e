package signup

import (
	"strings"

	"github.com/weiawesome/momentroom/internal/domain"
)

// Validate checks the form and builds the request to transmit. Checks stop at
// the first failure: missing fields in declaration order, then the password
// confirmation.
func Validate(form domain.SignupForm) (domain.SignupRequest, error) {
	fields := []struct {
		name  string
		value string
	}{
		{domain.FieldEmail, form.Email},
		{domain.FieldPassword, form.Password},
		{domain.FieldConfirmationPassword, form.ConfirmationPassword},
		{domain.FieldNickname, form.Nickname},
	}

	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return domain.SignupRequest{}, FieldMissing(f.name)
		}
	}

	if form.Password != form.ConfirmationPassword {
		return domain.SignupRequest{}, PasswordMismatch()
	}

	return domain.SignupRequest{
		Email:    form.Email,
		Password: form.Password,
		Nickname: form.Nickname,
	}, nil
}
