// Package validation checks registration input before it reaches
// business logic. The violation messages are part of the external
// contract: clients assert on their exact wording.
package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mesafina/restaurant-backend/internal/core/domain"
	"github.com/mesafina/restaurant-backend/internal/core/ports"
)

var namePattern = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Go's RE2 engine has no lookaheads, so the complexity rule is
	// expressed as explicit character-class membership checks.
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") &&
			strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") &&
			strings.ContainsAny(s, "0123456789") &&
			strings.ContainsAny(s, "@$!%*?&")
	})

	_ = v.RegisterValidation("person_name", func(fl validator.FieldLevel) bool {
		return namePattern.MatchString(fl.Field().String())
	})

	_ = v.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		return domain.Role(fl.Field().String()).Valid()
	})

	return v
}

// rule pairs a validator tag with the contract message reported when
// that tag fails.
type rule struct {
	tag string
	msg string
}

var emailRules = []rule{
	{"email", "Please provide a valid email address"},
}

var passwordRules = []rule{
	{"min=8", "Password must be at least 8 characters long"},
	{"max=128", "Password cannot exceed 128 characters"},
	{"password", "Password must contain at least one uppercase letter, one lowercase letter, one number, and one special character (@$!%*?&)"},
}

var roleRules = []rule{
	{"user_role", "Role must be one of: customer, admin, staff"},
}

func nameRules(field string) []rule {
	return []rule{
		{"min=2", field + " must be at least 2 characters long"},
		{"max=50", field + " cannot exceed 50 characters"},
		{"person_name", field + " can only contain letters, spaces, hyphens, and apostrophes"},
	}
}

// checkField evaluates each rule on its own, so one field can report
// several violations at once.
func checkField(msgs []string, value string, rules []rule) []string {
	for _, r := range rules {
		if validate.Var(value, r.tag) != nil {
			msgs = append(msgs, r.msg)
		}
	}
	return msgs
}

// Registration validates and normalizes a registration request. It
// returns the normalized input and the list of violations, one message
// per failed rule across all fields; an empty list means the input is
// valid. All rules are checked against the normalized (trimmed) values,
// so "  Jo  " passes the length rule and "   " does not.
func Registration(in ports.RegisterInput) (ports.RegisterInput, []string) {
	in.Email = domain.NormalizeEmail(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	var msgs []string
	msgs = checkField(msgs, in.Email, emailRules)
	msgs = checkField(msgs, in.Password, passwordRules)
	msgs = checkField(msgs, in.FirstName, nameRules("First name"))
	msgs = checkField(msgs, in.LastName, nameRules("Last name"))
	if in.Role != "" {
		msgs = checkField(msgs, in.Role, roleRules)
	}
	return in, msgs
}
