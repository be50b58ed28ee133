package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/passless/internal/auth/entity"
	"github.com/shandysiswandi/passless/internal/auth/outbound/store"
	"github.com/shandysiswandi/passless/internal/pkg/goerror"
)

const secretPreviewLen = 8

type DebugOTPEntry struct {
	Code      string
	ExpiresAt time.Time
	Expired   bool
}

type DebugTOTPEntry struct {
	Secret   string
	Verified bool
}

type DebugStoreOutput struct {
	OTP   map[string]DebugOTPEntry
	TOTP  map[string]DebugTOTPEntry
	Stats *store.Stats
}

// DebugStore snapshots the credential store for inspection.
//
// Authenticator secrets are truncated to a short prefix: enough to tell
// records apart without the endpoint leaking working credentials.
func (s *Usecase) DebugStore(ctx context.Context) (*DebugStoreOutput, error) {
	ctx, span := s.startSpan(ctx, "DebugStore")
	defer span.End()

	otps, err := s.store.ListOTP(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list login codes", "error", err)
		return nil, goerror.NewServer(err)
	}

	totps, err := s.store.ListTOTP(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list authenticator enrollments", "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	out := &DebugStoreOutput{
		OTP: lo.MapValues(otps, func(cred entity.OTPCredential, _ string) DebugOTPEntry {
			return DebugOTPEntry{
				Code:      cred.Code,
				ExpiresAt: cred.ExpiresAt,
				Expired:   cred.Expired(now),
			}
		}),
		TOTP: lo.MapValues(totps, func(cred entity.TOTPCredential, _ string) DebugTOTPEntry {
			return DebugTOTPEntry{
				Secret:   truncateSecret(cred.Secret),
				Verified: cred.Verified,
			}
		}),
	}

	if reporter, ok := s.store.(store.StatsReporter); ok {
		stats := reporter.Stats()
		out.Stats = &stats
	}

	return out, nil
}

func truncateSecret(secret string) string {
	if len(secret) <= secretPreviewLen {
		return secret
	}
	return secret[:secretPreviewLen] + "..."
}
