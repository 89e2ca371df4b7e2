package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// FieldError is a single field validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// constraint is one declarative check on a trimmed string value.
type constraint struct {
	ok      func(string) bool
	message string
}

// fieldRule declares the constraints for one payload field.
type fieldRule struct {
	field       string
	constraints []constraint
}

// Schema is an ordered set of field rules. Validation walks the rules in
// declaration order, so FieldErrors come back in schema order.
type Schema []fieldRule

// PasswordSymbols is the fixed set of symbols accepted in passwords.
const PasswordSymbols = `!@#$%^&*()-_=+[]{};:'",.<>/?|~`

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// CreateUserSchema declares the constraints for the user-creation payload.
var CreateUserSchema = Schema{
	{
		field: "name",
		constraints: []constraint{
			lengthBetween("name", 3, 50),
		},
	},
	{
		field: "login",
		constraints: []constraint{
			lengthBetween("login", 4, 20),
		},
	},
	{
		field: "email",
		constraints: []constraint{
			{
				ok:      emailPattern.MatchString,
				message: "email must be a valid email address",
			},
		},
	},
	{
		field: "password",
		constraints: []constraint{
			{
				ok:      func(v string) bool { return len(v) >= 6 },
				message: "password must be at least 6 characters",
			},
			{
				ok:      func(v string) bool { return strings.IndexFunc(v, unicode.IsLower) >= 0 },
				message: "password must contain at least one lowercase letter",
			},
			{
				ok:      func(v string) bool { return strings.IndexFunc(v, unicode.IsUpper) >= 0 },
				message: "password must contain at least one uppercase letter",
			},
			{
				ok:      func(v string) bool { return strings.IndexFunc(v, unicode.IsDigit) >= 0 },
				message: "password must contain at least one digit",
			},
			{
				ok:      func(v string) bool { return strings.ContainsAny(v, PasswordSymbols) },
				message: "password must contain at least one symbol",
			},
		},
	},
}

func lengthBetween(field string, min, max int) constraint {
	return constraint{
		ok:      func(v string) bool { return len(v) >= min && len(v) <= max },
		message: fmt.Sprintf("%s must be between %d and %d characters", field, min, max),
	}
}

// Fields returns the schema's field names in declaration order.
func (s Schema) Fields() []string {
	fields := make([]string, 0, len(s))
	for _, rule := range s {
		fields = append(fields, rule.field)
	}
	return fields
}

// Validate checks the raw payload against the schema and returns one FieldError
// per violated field, in schema order. Values are trimmed before checking.
// All fields are checked in one pass; a nil result means the payload is valid.
// Validate never touches the store.
func (s Schema) Validate(payload map[string]any) []FieldError {
	var errs []FieldError
	for _, rule := range s {
		raw := payload[rule.field]
		str, ok := raw.(string)
		if !ok {
			errs = append(errs, FieldError{Field: rule.field, Message: rule.field + " must be a string"})
			continue
		}
		value := strings.TrimSpace(str)
		for _, c := range rule.constraints {
			if !c.ok(value) {
				errs = append(errs, FieldError{Field: rule.field, Message: c.message})
				break
			}
		}
	}
	return errs
}
