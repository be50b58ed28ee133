package jwt

import (
	"errors"
	"strings"
	"testing"
	"time"
)

type fixedClock struct{ at time.Time }

func (c *fixedClock) Now() time.Time { return c.at }

type fixedUUID struct{}

func (fixedUUID) Generate() string { return "test-token-id" }

func newTestJWT(t *testing.T, clk clocker) *Symmetric {
	t.Helper()

	j, err := NewHS512(Config{
		Secret:       []byte(strings.Repeat("s", 64)),
		Issuer:       "passless-test",
		Audiences:    []string{"passless"},
		SessionTTL:   24 * time.Hour,
		MagicLinkTTL: 15 * time.Minute,
		Clock:        clk,
		UUID:         fixedUUID{},
	})
	if err != nil {
		t.Fatalf("NewHS512: %v", err)
	}

	return j
}

func TestNewHS512RejectsShortKey(t *testing.T) {
	_, err := NewHS512(Config{Secret: []byte("short")})
	if !errors.Is(err, ErrSigningKeyTooShort) {
		t.Fatalf("expected ErrSigningKeyTooShort, got %v", err)
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	clk := &fixedClock{at: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	j := newTestJWT(t, clk)

	token, err := j.GenerateSession("+15551234567", "sms")
	if err != nil {
		t.Fatalf("GenerateSession: %v", err)
	}

	claims, err := j.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if claims.Identifier != "+15551234567" {
		t.Errorf("identifier = %q, want +15551234567", claims.Identifier)
	}
	if claims.Method != "sms" {
		t.Errorf("method = %q, want sms", claims.Method)
	}
	if claims.Purpose != PurposeSession {
		t.Errorf("purpose = %q, want %q", claims.Purpose, PurposeSession)
	}
	if claims.LoginTime != clk.at.Format(time.RFC3339) {
		t.Errorf("login_time = %q, want %q", claims.LoginTime, clk.at.Format(time.RFC3339))
	}
}

func TestSessionTokenExpires(t *testing.T) {
	clk := &fixedClock{at: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	j := newTestJWT(t, clk)

	token, err := j.GenerateSession("user@example.com", "magic-link")
	if err != nil {
		t.Fatalf("GenerateSession: %v", err)
	}

	clk.at = clk.at.Add(25 * time.Hour)

	if _, err := j.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestMagicLinkTokenPurposeAndTTL(t *testing.T) {
	clk := &fixedClock{at: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	j := newTestJWT(t, clk)

	token, err := j.GenerateMagicLink("user@example.com")
	if err != nil {
		t.Fatalf("GenerateMagicLink: %v", err)
	}

	claims, err := j.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Purpose != PurposeMagicLink {
		t.Errorf("purpose = %q, want %q", claims.Purpose, PurposeMagicLink)
	}

	clk.at = clk.at.Add(16 * time.Minute)

	if _, err := j.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired after 16m, got %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	clk := &fixedClock{at: time.Now()}
	j := newTestJWT(t, clk)

	if _, err := j.Verify("not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	clk := &fixedClock{at: time.Now()}
	j := newTestJWT(t, clk)

	other, err := NewHS512(Config{
		Secret:     []byte(strings.Repeat("x", 64)),
		Issuer:     "passless-test",
		Audiences:  []string{"passless"},
		SessionTTL: time.Hour,
		Clock:      clk,
		UUID:       fixedUUID{},
	})
	if err != nil {
		t.Fatalf("NewHS512: %v", err)
	}

	token, err := other.GenerateSession("user@example.com", "totp")
	if err != nil {
		t.Fatalf("GenerateSession: %v", err)
	}

	if _, err := j.Verify(token); err == nil {
		t.Fatal("expected error for token signed with a different key")
	}
}
