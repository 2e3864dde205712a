package validation

import (
	"github.com/go-playground/validator/v10"
)

type login struct {
	Email    string `validate:"email"`
	Password string `validate:"min=6"`
}

// Login validates login credentials for shape only; whether they match
// an account is the service's concern.
func Login(email, password string) []string {
	err := validate.Struct(login{Email: email, Password: password})
	if err == nil {
		return nil
	}

	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		switch fe.StructField() {
		case "Email":
			msgs = append(msgs, "Please provide a valid email address")
		case "Password":
			msgs = append(msgs, "Password must be at least 6 characters long")
		}
	}
	return msgs
}
