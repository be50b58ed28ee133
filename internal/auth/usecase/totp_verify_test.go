package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/shandysiswandi/passless/internal/auth/entity"
	"github.com/shandysiswandi/passless/internal/pkg/goerror"
)

func enrollAndCode(t *testing.T, h *harness, id string) string {
	t.Helper()

	out, err := h.uc.TOTPSetup(context.Background(), TOTPSetupInput{Identifier: id})
	if err != nil {
		t.Fatalf("TOTPSetup() error = %v", err)
	}

	code, err := h.totp.GenerateCode(out.Secret, h.clock.Now())
	if err != nil {
		t.Fatalf("GenerateCode() error = %v", err)
	}
	return code
}

func TestTOTPVerify(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	code := enrollAndCode(t, h, "user@example.com")

	grant, err := h.uc.TOTPVerify(ctx, TOTPVerifyInput{Identifier: "user@example.com", Code: code})
	if err != nil {
		t.Fatalf("TOTPVerify() error = %v", err)
	}

	if grant.Method != entity.AuthMethodTOTP || grant.Identifier != "user@example.com" {
		t.Errorf("grant = %+v, want totp grant for user@example.com", grant)
	}

	cred := h.store.totps["user@example.com"]
	if !cred.Verified {
		t.Error("enrollment not marked verified after first success")
	}
}

func TestTOTPVerifyReusable(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	code := enrollAndCode(t, h, "user@example.com")

	if _, err := h.uc.TOTPVerify(ctx, TOTPVerifyInput{Identifier: "user@example.com", Code: code}); err != nil {
		t.Fatalf("first TOTPVerify() error = %v", err)
	}

	// A later login with a fresh code succeeds; the enrollment is not consumed.
	h.clock.Advance(5 * time.Minute)
	cred := h.store.totps["user@example.com"]
	next, err := h.totp.GenerateCode(cred.Secret, h.clock.Now())
	if err != nil {
		t.Fatalf("GenerateCode() error = %v", err)
	}

	if _, err := h.uc.TOTPVerify(ctx, TOTPVerifyInput{Identifier: "user@example.com", Code: next}); err != nil {
		t.Errorf("second TOTPVerify() error = %v", err)
	}
}

func TestTOTPVerifySkewTolerance(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	out, err := h.uc.TOTPSetup(ctx, TOTPSetupInput{Identifier: "user@example.com"})
	if err != nil {
		t.Fatalf("TOTPSetup() error = %v", err)
	}

	// A code from the previous 30-second step is still accepted.
	stale, err := h.totp.GenerateCode(out.Secret, h.clock.Now().Add(-30*time.Second))
	if err != nil {
		t.Fatalf("GenerateCode() error = %v", err)
	}
	if _, err := h.uc.TOTPVerify(ctx, TOTPVerifyInput{Identifier: "user@example.com", Code: stale}); err != nil {
		t.Errorf("TOTPVerify() with previous-step code error = %v", err)
	}

	// Two steps out is rejected.
	older, err := h.totp.GenerateCode(out.Secret, h.clock.Now().Add(-90*time.Second))
	if err != nil {
		t.Fatalf("GenerateCode() error = %v", err)
	}
	if _, err := h.uc.TOTPVerify(ctx, TOTPVerifyInput{Identifier: "user@example.com", Code: older}); err == nil {
		t.Error("TOTPVerify() with two-step-old code error = nil, want rejection")
	}
}

func TestTOTPVerifyWrongCode(t *testing.T) {
	h := newHarness(t)
	code := enrollAndCode(t, h, "user@example.com")

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	_, err := h.uc.TOTPVerify(context.Background(), TOTPVerifyInput{Identifier: "user@example.com", Code: wrong})
	if err == nil {
		t.Fatal("TOTPVerify() error = nil, want invalid code")
	}
	wantBusinessStatus(t, err, http.StatusBadRequest)

	if h.store.totps["user@example.com"].Verified {
		t.Error("enrollment marked verified after failed code")
	}
}

func TestTOTPVerifyNotFoundListsKnownIdentifiers(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	enrollAndCode(t, h, "known@example.com")
	enrollAndCode(t, h, "+15551234567")

	_, err := h.uc.TOTPVerify(ctx, TOTPVerifyInput{Identifier: "other@example.com", Code: "123456"})
	if err == nil {
		t.Fatal("TOTPVerify() error = nil, want not-found")
	}
	wantBusinessStatus(t, err, http.StatusBadRequest)

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("error = %v, want *goerror.Error", err)
	}

	known := gerr.Fields()["known_identifiers"]
	if known != "+15551234567, known@example.com" {
		t.Errorf("known_identifiers = %q, want sorted list of enrolled identifiers", known)
	}
}

func TestTOTPVerifyNotFoundEmptyStore(t *testing.T) {
	h := newHarness(t)

	_, err := h.uc.TOTPVerify(context.Background(), TOTPVerifyInput{Identifier: "user@example.com", Code: "123456"})
	if err == nil {
		t.Fatal("TOTPVerify() error = nil, want not-found")
	}

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("error = %v, want *goerror.Error", err)
	}
	if len(gerr.Fields()) != 0 {
		t.Errorf("Fields() = %v, want no diagnostics when nothing is enrolled", gerr.Fields())
	}
}
