package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidSigningMethod is returned when the JWT signing method is not supported.
	ErrInvalidSigningMethod = errors.New("invalid JWT signing method")

	// ErrSigningKeyTooShort is returned when the HS512 signing key is less than 64 bytes.
	ErrSigningKeyTooShort = errors.New("HS512 signing key must be at least 64 bytes (512 bits)")

	// ErrTokenExpired is returned when the JWT token has expired.
	ErrTokenExpired = errors.New("JWT token has expired")

	// ErrInvalidToken is returned when the token is malformed or fails validation.
	ErrInvalidToken = errors.New("invalid token")
)

// Purpose values carried in the purpose claim.
const (
	// PurposeSession marks a token minted after a successful verification.
	PurposeSession = "session"
	// PurposeMagicLink marks a token embedded in a magic-link URL.
	PurposeMagicLink = "magic-link"
)

// JWT defines the token operations needed by the app.
type JWT interface {
	// GenerateSession creates a signed session token for a verified identity.
	GenerateSession(identifier, method string) (string, error)
	// GenerateMagicLink creates a short-lived token for a magic-link URL.
	GenerateMagicLink(email string) (string, error)
	// Verify parses and validates a token and returns its claims.
	Verify(tokenStr string) (Claims, error)
}

type clocker interface {
	Now() time.Time
}

type generator interface {
	Generate() string
}

// Config defines the inputs for building a JWT implementation.
type Config struct {
	// Secret is the HMAC signing key.
	Secret []byte
	// Issuer is the token issuer value.
	Issuer string
	// Audiences are the accepted token audiences.
	Audiences []string
	// SessionTTL is the session token time-to-live.
	SessionTTL time.Duration
	// MagicLinkTTL is the magic-link token time-to-live.
	MagicLinkTTL time.Duration
	// Clock provides the current time source.
	Clock clocker
	// UUID generates token IDs.
	UUID generator
}

// Claims wraps registered claims with the login payload.
type Claims struct {
	// RegisteredClaims holds the standard JWT claims.
	jwt.RegisteredClaims
	// Identifier is the normalized email or phone the token was minted for.
	Identifier string `json:"identifier"`
	// Method records how the identity was proven (sms, totp, magic-link).
	Method string `json:"method,omitempty"`
	// Purpose distinguishes session tokens from magic-link tokens.
	Purpose string `json:"purpose"`
	// LoginTime is the RFC 3339 timestamp of the successful verification.
	LoginTime string `json:"login_time,omitempty"`
}
