package usecase

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/passless/internal/auth/entity"
)

func sendMagicLink(t *testing.T, h *harness, email string) string {
	t.Helper()

	if _, err := h.uc.MagicLinkSend(context.Background(), MagicLinkSendInput{Email: email}); err != nil {
		t.Fatalf("MagicLinkSend() error = %v", err)
	}
	if len(h.mail.sent) == 0 {
		t.Fatal("no mail dispatched")
	}

	body := h.mail.sent[len(h.mail.sent)-1].TextBody
	idx := strings.Index(body, "http://localhost:8080/otp/magic-link/verify?token=")
	if idx < 0 {
		t.Fatalf("mail body %q does not contain a verify link", body)
	}

	link := strings.Fields(body[idx:])[0]
	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse link %q: %v", link, err)
	}
	return u.Query().Get("token")
}

func TestMagicLinkSend(t *testing.T) {
	h := newHarness(t)

	out, err := h.uc.MagicLinkSend(context.Background(), MagicLinkSendInput{Email: "  User@Example.COM "})
	if err != nil {
		t.Fatalf("MagicLinkSend() error = %v", err)
	}

	if out.Email != "user@example.com" {
		t.Errorf("Email = %q, want normalized %q", out.Email, "user@example.com")
	}

	if len(h.mail.sent) != 1 {
		t.Fatalf("mail sent = %d, want 1", len(h.mail.sent))
	}
	msg := h.mail.sent[0]
	if msg.To[0] != "user@example.com" {
		t.Errorf("mail to = %v, want normalized recipient", msg.To)
	}
	if msg.HTMLBody == "" || msg.TextBody == "" {
		t.Error("mail must carry both text and html bodies")
	}
}

func TestMagicLinkSendInvalidEmail(t *testing.T) {
	h := newHarness(t)

	tests := []string{"", "not-an-email", "+15551234567", "user@"}
	for _, email := range tests {
		if _, err := h.uc.MagicLinkSend(context.Background(), MagicLinkSendInput{Email: email}); err == nil {
			t.Errorf("MagicLinkSend(%q) error = nil, want validation error", email)
		}
	}
}

func TestMagicLinkSendDispatchFailure(t *testing.T) {
	h := newHarness(t)
	h.mail.err = errBoom

	_, err := h.uc.MagicLinkSend(context.Background(), MagicLinkSendInput{Email: "user@example.com"})
	if !errors.Is(err, errBoom) {
		t.Errorf("error = %v, want wrapped dispatch failure", err)
	}
}

func TestMagicLinkVerify(t *testing.T) {
	h := newHarness(t)
	token := sendMagicLink(t, h, "user@example.com")

	grant, err := h.uc.MagicLinkVerify(context.Background(), MagicLinkVerifyInput{Token: token})
	if err != nil {
		t.Fatalf("MagicLinkVerify() error = %v", err)
	}

	if grant.Identifier != "user@example.com" || grant.Method != entity.AuthMethodMagicLink {
		t.Errorf("grant = %+v, want magic-link grant for user@example.com", grant)
	}
	if grant.Token == "" {
		t.Error("session token is empty")
	}
}

func TestMagicLinkVerifyExpired(t *testing.T) {
	h := newHarness(t)
	token := sendMagicLink(t, h, "user@example.com")

	h.clock.Advance(16 * time.Minute)

	_, err := h.uc.MagicLinkVerify(context.Background(), MagicLinkVerifyInput{Token: token})
	if !errors.Is(err, ErrLinkExpired) {
		t.Errorf("error = %v, want ErrLinkExpired", err)
	}
}

func TestMagicLinkVerifyGarbage(t *testing.T) {
	h := newHarness(t)

	_, err := h.uc.MagicLinkVerify(context.Background(), MagicLinkVerifyInput{Token: "not-a-jwt"})
	if !errors.Is(err, ErrLinkInvalid) {
		t.Errorf("error = %v, want ErrLinkInvalid", err)
	}
}

func TestMagicLinkVerifyRejectsSessionToken(t *testing.T) {
	h := newHarness(t)
	token := sendMagicLink(t, h, "user@example.com")

	grant, err := h.uc.MagicLinkVerify(context.Background(), MagicLinkVerifyInput{Token: token})
	if err != nil {
		t.Fatalf("MagicLinkVerify() error = %v", err)
	}

	// A session token is a valid JWT from the same signer but must not work
	// as a login link.
	_, err = h.uc.MagicLinkVerify(context.Background(), MagicLinkVerifyInput{Token: grant.Token})
	if !errors.Is(err, ErrLinkWrongPurpose) {
		t.Errorf("error = %v, want ErrLinkWrongPurpose", err)
	}
}

func TestMagicLinkVerifySingleLinkReusable(t *testing.T) {
	h := newHarness(t)
	token := sendMagicLink(t, h, "user@example.com")

	for i := 0; i < 2; i++ {
		if _, err := h.uc.MagicLinkVerify(context.Background(), MagicLinkVerifyInput{Token: token}); err != nil {
			t.Fatalf("MagicLinkVerify() attempt %d error = %v, links are stateless and reusable until expiry", i+1, err)
		}
	}
}
