package entity

// AuthMethod is the login flow that produced a session.
type AuthMethod string

const (
	// AuthMethodSMS is login via a numeric code sent by text message.
	AuthMethodSMS AuthMethod = "sms"

	// AuthMethodTOTP is login via an authenticator app code.
	AuthMethodTOTP AuthMethod = "totp"

	// AuthMethodMagicLink is login via a signed link sent by email.
	AuthMethodMagicLink AuthMethod = "magic-link"
)

func (m AuthMethod) String() string {
	return string(m)
}

// IsValid reports whether m is one of the known methods.
func (m AuthMethod) IsValid() bool {
	switch m {
	case AuthMethodSMS, AuthMethodTOTP, AuthMethodMagicLink:
		return true
	default:
		return false
	}
}

// AuthMethodFromString parses a method name, returning "" for unknown values.
func AuthMethodFromString(s string) AuthMethod {
	m := AuthMethod(s)
	if !m.IsValid() {
		return AuthMethod("")
	}
	return m
}
