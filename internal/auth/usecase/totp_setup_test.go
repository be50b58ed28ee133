package usecase

import (
	"context"
	"strings"
	"testing"
)

func TestTOTPSetup(t *testing.T) {
	h := newHarness(t)

	out, err := h.uc.TOTPSetup(context.Background(), TOTPSetupInput{Identifier: "  User@Example.COM "})
	if err != nil {
		t.Fatalf("TOTPSetup() error = %v", err)
	}

	if out.Identifier != "user@example.com" {
		t.Errorf("Identifier = %q, want normalized %q", out.Identifier, "user@example.com")
	}
	if out.Secret == "" {
		t.Error("Secret is empty")
	}
	if !strings.HasPrefix(out.URI, "otpauth://totp/") {
		t.Errorf("URI = %q, want otpauth://totp/ prefix", out.URI)
	}
	if !strings.HasPrefix(out.QRCode, "data:image/png;base64,") {
		t.Errorf("QRCode = %.40q, want PNG data URI", out.QRCode)
	}

	cred, ok := h.store.totps["user@example.com"]
	if !ok {
		t.Fatal("enrollment was not stored")
	}
	if cred.Secret != out.Secret || cred.Verified {
		t.Errorf("stored enrollment = %+v, want unverified with returned secret", cred)
	}
}

func TestTOTPSetupPhoneIdentifier(t *testing.T) {
	h := newHarness(t)

	out, err := h.uc.TOTPSetup(context.Background(), TOTPSetupInput{Identifier: "+15551234567"})
	if err != nil {
		t.Fatalf("TOTPSetup() error = %v", err)
	}
	if out.Identifier != "+15551234567" {
		t.Errorf("Identifier = %q, want phone accepted as-is", out.Identifier)
	}
}

func TestTOTPSetupInvalidIdentifier(t *testing.T) {
	h := newHarness(t)

	tests := []string{"", "not-an-identifier", "user@", "@example.com", "12345"}
	for _, id := range tests {
		if _, err := h.uc.TOTPSetup(context.Background(), TOTPSetupInput{Identifier: id}); err == nil {
			t.Errorf("TOTPSetup(%q) error = nil, want validation error", id)
		}
	}
}

func TestTOTPSetupReplacesEnrollment(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	first, err := h.uc.TOTPSetup(ctx, TOTPSetupInput{Identifier: "user@example.com"})
	if err != nil {
		t.Fatalf("TOTPSetup() error = %v", err)
	}

	second, err := h.uc.TOTPSetup(ctx, TOTPSetupInput{Identifier: "user@example.com"})
	if err != nil {
		t.Fatalf("TOTPSetup() again error = %v", err)
	}

	if first.Secret == second.Secret {
		t.Error("second setup reused the old secret, want a fresh one")
	}

	cred := h.store.totps["user@example.com"]
	if cred.Secret != second.Secret {
		t.Errorf("stored secret = %q, want the newest %q", cred.Secret, second.Secret)
	}
}
