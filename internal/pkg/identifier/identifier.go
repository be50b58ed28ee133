// Package identifier canonicalizes and classifies login identifiers.
//
// An identifier is whatever the user typed into the login form: an email
// address or a phone number. Every flow normalizes first and uses the
// normalized form as the credential store key, so issue and verify always
// agree on the same key.
package identifier

import (
	"regexp"
	"strings"
)

// Kind classifies a normalized identifier.
type Kind int

const (
	// KindUnknown means the value is neither a valid email nor a valid phone.
	KindUnknown Kind = iota
	// KindEmail means the value looks like local@domain.tld.
	KindEmail
	// KindPhone means the value is an E.164 phone number.
	KindPhone
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindEmail:
		return "email"
	case KindPhone:
		return "phone"
	default:
		return "unknown"
	}
}

var (
	// Permissive on purpose: real deliverability is the mail provider's
	// problem, this only rejects obvious garbage.
	reEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// E.164: leading +, non-zero first digit, at most 15 digits total.
	rePhone = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)
)

// Normalize trims surrounding whitespace and lowercases the identifier.
// It is pure and idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Classify reports the kind of an already-normalized identifier.
func Classify(s string) Kind {
	if reEmail.MatchString(s) {
		return KindEmail
	}
	if rePhone.MatchString(s) {
		return KindPhone
	}
	return KindUnknown
}

// IsEmail reports whether s is a valid email identifier.
func IsEmail(s string) bool {
	return Classify(s) == KindEmail
}

// IsPhone reports whether s is a valid E.164 phone identifier.
func IsPhone(s string) bool {
	return Classify(s) == KindPhone
}
