package domain

import (
	"reflect"
	"strings"
	"testing"
)

func validPayload() map[string]any {
	return map[string]any{
		"name":     "Alice Doe",
		"login":    "alice1",
		"email":    "a@x.com",
		"password": "Abcdef1!",
	}
}

func TestValidate_ValidPayload(t *testing.T) {
	errs := CreateUserSchema.Validate(validPayload())
	if errs != nil {
		t.Fatalf("Validate = %v, want nil", errs)
	}
}

func TestValidate_TrimsValues(t *testing.T) {
	payload := validPayload()
	payload["name"] = "  Alice Doe  "
	payload["email"] = " a@x.com "

	if errs := CreateUserSchema.Validate(payload); errs != nil {
		t.Fatalf("Validate = %v, want nil", errs)
	}
}

func TestValidate_SingleFieldViolations(t *testing.T) {
	testCases := []struct {
		name    string
		field   string
		value   any
		message string
	}{
		{"name too short", "name", "Al", "name must be between 3 and 50 characters"},
		{"name too long", "name", strings.Repeat("a", 51), "name must be between 3 and 50 characters"},
		{"login too short", "login", "ab", "login must be between 4 and 20 characters"},
		{"login too long", "login", "abcdefghijklmnopqrstu", "login must be between 4 and 20 characters"},
		{"email no at", "email", "not-an-email", "email must be a valid email address"},
		{"email no domain dot", "email", "a@x", "email must be a valid email address"},
		{"email with space", "email", "a b@x.com", "email must be a valid email address"},
		{"password too short", "password", "Ab1!", "password must be at least 6 characters"},
		{"password no lowercase", "password", "ABCDEF1!", "password must contain at least one lowercase letter"},
		{"password no uppercase", "password", "abcdef1!", "password must contain at least one uppercase letter"},
		{"password no digit", "password", "Abcdefg!", "password must contain at least one digit"},
		{"password no symbol", "password", "Abcdefg1", "password must contain at least one symbol"},
		{"non-string value", "name", 42, "name must be a string"},
		{"nil value", "login", nil, "login must be a string"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			payload := validPayload()
			payload[tc.field] = tc.value

			errs := CreateUserSchema.Validate(payload)
			if len(errs) != 1 {
				t.Fatalf("Validate returned %d errors, want 1: %v", len(errs), errs)
			}
			if errs[0].Field != tc.field {
				t.Errorf("field = %q, want %q", errs[0].Field, tc.field)
			}
			if errs[0].Message != tc.message {
				t.Errorf("message = %q, want %q", errs[0].Message, tc.message)
			}
		})
	}
}

func TestValidate_OneErrorPerField(t *testing.T) {
	// Password violates length, uppercase, digit, and symbol at once; only the
	// first violated constraint is reported.
	payload := validPayload()
	payload["password"] = "abc"

	errs := CreateUserSchema.Validate(payload)
	if len(errs) != 1 {
		t.Fatalf("Validate returned %d errors, want 1: %v", len(errs), errs)
	}
	if errs[0].Message != "password must be at least 6 characters" {
		t.Errorf("message = %q, want the length message", errs[0].Message)
	}
}

func TestValidate_CollectsAllFieldsInSchemaOrder(t *testing.T) {
	payload := map[string]any{
		"name":     "Al",
		"login":    "ab",
		"email":    "nope",
		"password": "short",
	}

	errs := CreateUserSchema.Validate(payload)
	if len(errs) != 4 {
		t.Fatalf("Validate returned %d errors, want 4: %v", len(errs), errs)
	}
	gotFields := []string{errs[0].Field, errs[1].Field, errs[2].Field, errs[3].Field}
	wantFields := []string{"name", "login", "email", "password"}
	if !reflect.DeepEqual(gotFields, wantFields) {
		t.Errorf("error fields = %v, want %v (schema order)", gotFields, wantFields)
	}
}

func TestFields(t *testing.T) {
	want := []string{"name", "login", "email", "password"}
	if got := CreateUserSchema.Fields(); !reflect.DeepEqual(got, want) {
		t.Errorf("Fields = %v, want %v", got, want)
	}
}
