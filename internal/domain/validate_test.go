package domain

import (
	"errors"
	"testing"
)

func TestValidatePhone(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"+34612345678", "+34612345678"},
		{"+34 612-345-678", "+34612345678"},
		{"34 (612) 345 678", "+34612345678"},
	}
	for _, tc := range cases {
		got, err := ValidatePhone(tc.in, "phone")
		if err != nil {
			t.Fatalf("phone %q: unexpected error %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("phone %q: want %q, got %q", tc.in, tc.want, got)
		}
	}

	for _, bad := range []string{"+0123456", "abc", "+3", "+123456789012345678"} {
		if _, err := ValidatePhone(bad, "phone"); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("phone %q: expected ErrInvalidInput, got %v", bad, err)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	got, err := ValidateEmail("  ada@example.com ", "email")
	if err != nil || got != "ada@example.com" {
		t.Fatalf("expected trimmed email, got %q %v", got, err)
	}
	if got, err := ValidateEmail("", "email"); err != nil || got != "" {
		t.Fatalf("empty email is allowed, got %q %v", got, err)
	}
	for _, bad := range []string{"ada", "ada@", "@example.com", "ada@example"} {
		if _, err := ValidateEmail(bad, "email"); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("email %q: expected ErrInvalidInput, got %v", bad, err)
		}
	}
}

func TestValidateAPIKey(t *testing.T) {
	t.Parallel()

	for _, good := range []string{
		"pk_test_0123456789abcdef0123456789abcdef",
		"pk_live_abcdefabcdefabcdefabcdefabcdefab",
	} {
		if err := ValidateAPIKey(good); err != nil {
			t.Fatalf("key %q: unexpected error %v", good, err)
		}
	}
	for _, bad := range []string{
		"",
		"sk_test_0123456789abcdef0123456789abcdef",
		"pk_test_short",
		"pk_prod_0123456789abcdef0123456789abcdef",
		"pk_test_0123456789ABCDEF0123456789ABCDEF",
	} {
		if err := ValidateAPIKey(bad); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("key %q: expected ErrInvalidInput, got %v", bad, err)
		}
	}
}
