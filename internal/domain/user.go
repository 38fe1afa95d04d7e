package domain

// Signup form field names, in declaration order.
const (
	FieldEmail                = "email"
	FieldPassword             = "password"
	FieldConfirmationPassword = "confirmationPassword"
	FieldNickname             = "nickname"
)

// SignupForm is the transient state of the signup form.
type SignupForm struct {
	Email                string `json:"email"`
	Password             string `json:"password"`
	ConfirmationPassword string `json:"confirmationPassword"`
	Nickname             string `json:"nickname"`
}

// SignupRequest is what gets transmitted; the confirmation password is a
// local-only check and has no field here.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}
