package jwt

import (
	"errors"
	"time"

	libJWT "github.com/golang-jwt/jwt/v5"
)

// Symmetric implements JWT signing and verification using an HMAC secret.
type Symmetric struct {
	secret       []byte
	issuer       string
	audiences    []string
	sessionTTL   time.Duration
	magicLinkTTL time.Duration
	clock        clocker
	uuid         generator
}

// NewHS512 constructs a Symmetric JWT implementation using HS512.
func NewHS512(cfg Config) (*Symmetric, error) {
	if len(cfg.Secret) < 64 {
		return nil, ErrSigningKeyTooShort
	}

	sessionTTL := cfg.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}

	magicLinkTTL := cfg.MagicLinkTTL
	if magicLinkTTL <= 0 {
		magicLinkTTL = 15 * time.Minute
	}

	return &Symmetric{
		secret:       cfg.Secret,
		issuer:       cfg.Issuer,
		audiences:    cfg.Audiences,
		sessionTTL:   sessionTTL,
		magicLinkTTL: magicLinkTTL,
		clock:        cfg.Clock,
		uuid:         cfg.UUID,
	}, nil
}

// GenerateSession creates a signed session token for a verified identity.
func (s *Symmetric) GenerateSession(identifier, method string) (string, error) {
	now := s.clock.Now()

	return s.sign(Claims{
		RegisteredClaims: s.registered(identifier, now, s.sessionTTL),
		Identifier:       identifier,
		Method:           method,
		Purpose:          PurposeSession,
		LoginTime:        now.Format(time.RFC3339),
	})
}

// GenerateMagicLink creates a short-lived token for a magic-link URL.
func (s *Symmetric) GenerateMagicLink(email string) (string, error) {
	now := s.clock.Now()

	return s.sign(Claims{
		RegisteredClaims: s.registered(email, now, s.magicLinkTTL),
		Identifier:       email,
		Purpose:          PurposeMagicLink,
	})
}

// Verify parses and validates a JWT string.
func (s *Symmetric) Verify(tokenStr string) (Claims, error) {
	var claims Claims

	token, err := libJWT.ParseWithClaims(tokenStr, &claims,
		func(t *libJWT.Token) (any, error) {
			if t.Method != libJWT.SigningMethodHS512 {
				return nil, ErrInvalidSigningMethod
			}
			return s.secret, nil
		},
		libJWT.WithIssuer(s.issuer),
		libJWT.WithAudience(s.audiences...),
		libJWT.WithValidMethods([]string{libJWT.SigningMethodHS512.Alg()}),
		libJWT.WithIssuedAt(),
		libJWT.WithExpirationRequired(),
		libJWT.WithTimeFunc(s.clock.Now),
	)

	if err != nil {
		if errors.Is(err, libJWT.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, err
	}

	if !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}

func (s *Symmetric) registered(subject string, now time.Time, ttl time.Duration) libJWT.RegisteredClaims {
	return libJWT.RegisteredClaims{
		ID:        s.uuid.Generate(),
		Subject:   subject,
		Issuer:    s.issuer,
		Audience:  s.audiences,
		IssuedAt:  libJWT.NewNumericDate(now),
		NotBefore: libJWT.NewNumericDate(now),
		ExpiresAt: libJWT.NewNumericDate(now.Add(ttl)),
	}
}

func (s *Symmetric) sign(claims Claims) (string, error) {
	return libJWT.
		NewWithClaims(libJWT.SigningMethodHS512, claims).
		SignedString(s.secret)
}
