package forms

import (
	"net/url"

	"github.com/aussiebroadwan/leadcapture/pkg/leadsdk"
)

// LoginForm is the admin login form. It never talks to the API itself; the
// caller supplies what happens on submit.
type LoginForm struct {
	Email    string
	Password string

	Errors  map[string]string
	General string
}

// LoginFormFromValues reads a posted login form.
func LoginFormFromValues(v url.Values) *LoginForm {
	return &LoginForm{
		Email:    v.Get("email"),
		Password: v.Get("password"),
	}
}

// Validate refreshes f.Errors and reports whether the form is valid.
func (f *LoginForm) Validate() bool {
	f.Errors = leadsdk.LoginRequest{Email: f.Email, Password: f.Password}.Validate()
	return len(f.Errors) == 0
}

// Submit validates and, when valid, calls onSubmit with the credentials.
// A non-empty message returned by onSubmit becomes the form's general error.
func (f *LoginForm) Submit(onSubmit func(email, password string) (errMsg string)) bool {
	f.General = ""
	if !f.Validate() {
		return false
	}
	f.General = onSubmit(f.Email, f.Password)
	return true
}

// Fields returns the render descriptors. The password value is never echoed back.
func (f *LoginForm) Fields() []Field {
	return []Field{
		{Label: "Email", Type: TypeEmail, Name: "email", Value: f.Email, Placeholder: "admin@example.com", Error: f.Errors[leadsdk.FieldEmail], Required: true},
		{Label: "Password", Type: TypePassword, Name: "password", Error: f.Errors[leadsdk.FieldPassword], Required: true},
	}
}
