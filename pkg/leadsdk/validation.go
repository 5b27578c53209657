package leadsdk

import (
	"regexp"
	"strings"
)

// Field validation messages, shown next to the offending input.
const (
	MsgFullNameRequired = "Full Name is required"
	MsgEmailRequired    = "Email is required"
	MsgEmailInvalid     = "Email format is invalid"
	MsgPasswordRequired = "Password is required"
)

// Field keys used in validation maps. They match the JSON names.
const (
	FieldFullName = "fullName"
	FieldEmail    = "email"
	FieldPassword = "password"
)

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// Validate checks the fields a lead must carry before it is submitted.
// Returns a map of field names to error messages, or nil if all fields are valid.
func (l Lead) Validate() map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(l.FullName) == "" {
		errs[FieldFullName] = MsgFullNameRequired
	}
	validateEmail(errs, l.Email)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Validate checks the login form. The password is not trimmed, a password of
// spaces is still a password.
func (r LoginRequest) Validate() map[string]string {
	errs := make(map[string]string)

	validateEmail(errs, r.Email)
	if r.Password == "" {
		errs[FieldPassword] = MsgPasswordRequired
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateEmail(errs map[string]string, email string) {
	switch {
	case strings.TrimSpace(email) == "":
		errs[FieldEmail] = MsgEmailRequired
	case !emailPattern.MatchString(email):
		errs[FieldEmail] = MsgEmailInvalid
	}
}
