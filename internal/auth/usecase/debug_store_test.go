package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/passless/internal/auth/entity"
)

func TestDebugStore(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	if _, err := h.uc.SMSSend(ctx, SMSSendInput{Phone: "+15551234567"}); err != nil {
		t.Fatalf("SMSSend() error = %v", err)
	}
	setup, err := h.uc.TOTPSetup(ctx, TOTPSetupInput{Identifier: "user@example.com"})
	if err != nil {
		t.Fatalf("TOTPSetup() error = %v", err)
	}

	out, err := h.uc.DebugStore(ctx)
	if err != nil {
		t.Fatalf("DebugStore() error = %v", err)
	}

	otpEntry, ok := out.OTP["+15551234567"]
	if !ok {
		t.Fatal("OTP entry missing")
	}
	if otpEntry.Code != "042719" || otpEntry.Expired {
		t.Errorf("OTP entry = %+v, want live code shown in full", otpEntry)
	}

	totpEntry, ok := out.TOTP["user@example.com"]
	if !ok {
		t.Fatal("TOTP entry missing")
	}
	if !strings.HasSuffix(totpEntry.Secret, "...") {
		t.Errorf("Secret = %q, want truncated with ellipsis", totpEntry.Secret)
	}
	if !strings.HasPrefix(setup.Secret, strings.TrimSuffix(totpEntry.Secret, "...")) {
		t.Errorf("Secret preview %q is not a prefix of the real secret", totpEntry.Secret)
	}
	if totpEntry.Verified {
		t.Error("Verified = true before any successful code check")
	}
}

func TestDebugStoreMarksExpired(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	if _, err := h.uc.SMSSend(ctx, SMSSendInput{Phone: "+15551234567"}); err != nil {
		t.Fatalf("SMSSend() error = %v", err)
	}

	h.clock.Advance(11 * time.Minute)

	out, err := h.uc.DebugStore(ctx)
	if err != nil {
		t.Fatalf("DebugStore() error = %v", err)
	}

	if entry := out.OTP["+15551234567"]; !entry.Expired {
		t.Errorf("entry = %+v, want Expired = true", entry)
	}
}

func TestDebugStoreShortSecretNotTruncated(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.store.totps["short@example.com"] = entity.TOTPCredential{Secret: "ABCD1234"}

	out, err := h.uc.DebugStore(ctx)
	if err != nil {
		t.Fatalf("DebugStore() error = %v", err)
	}

	if got := out.TOTP["short@example.com"].Secret; got != "ABCD1234" {
		t.Errorf("Secret = %q, want %q untouched", got, "ABCD1234")
	}
}
