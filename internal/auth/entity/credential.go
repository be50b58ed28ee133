package entity

import "time"

// OTPCredential is a short-lived numeric code pending verification for a
// phone number.
type OTPCredential struct {
	// Code is the zero-padded numeric code sent to the user.
	Code string `json:"code"`
	// ExpiresAt is the moment the code stops being accepted.
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the code is past its expiry at the given time. The
// exact expiry instant still verifies; only strictly later is expired.
func (c OTPCredential) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// TOTPCredential is a long-lived authenticator enrollment for an identifier.
//
// The record is never deleted on login. Verified flips to true on the first
// successful code check and stays true.
type TOTPCredential struct {
	// Secret is the base32 shared secret provisioned to the authenticator app.
	Secret string `json:"secret"`
	// Verified reports whether at least one code was validated against Secret.
	Verified bool `json:"verified"`
}
