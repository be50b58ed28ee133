// Package otp provides helpers for one-time passwords.
//
// It covers the two shapes used by passwordless login flows: random numeric
// codes delivered out of band (SMS), and TOTP (time-based OTP) secrets for
// authenticator apps, including the provisioning QR image.
package otp
