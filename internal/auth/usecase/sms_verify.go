package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/passless/internal/auth/entity"
	"github.com/shandysiswandi/passless/internal/pkg/goerror"
	"github.com/shandysiswandi/passless/internal/pkg/identifier"
)

type SMSVerifyInput struct {
	Phone string `validate:"required,phone"`
	Code  string `validate:"required,len=6,numeric"`
}

// SMSVerify checks a numeric code against the stored one and grants a session.
//
// Codes are single use: a successful match removes the record. An expired
// record is also removed, so a later retry with the same code reports
// not-found rather than expired. A mismatch keeps the record, the user may
// simply have mistyped.
func (s *Usecase) SMSVerify(ctx context.Context, in SMSVerifyInput) (*SessionGrant, error) {
	ctx, span := s.startSpan(ctx, "SMSVerify")
	defer span.End()

	in.Phone = identifier.Normalize(in.Phone)
	in.Code = strings.TrimSpace(in.Code)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	cred, err := s.store.GetOTP(ctx, in.Phone)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "no login code found", "phone", in.Phone)
		return nil, goerror.NewBusiness("no login code was requested for this phone number", goerror.CodeInvalidInput)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to load login code", "phone", in.Phone, "error", err)
		return nil, goerror.NewServer(err)
	}

	if cred.Expired(s.clock.Now()) {
		if err := s.store.DeleteOTP(ctx, in.Phone); err != nil {
			slog.ErrorContext(ctx, "failed to remove expired login code", "phone", in.Phone, "error", err)
			return nil, goerror.NewServer(err)
		}

		slog.WarnContext(ctx, "login code expired", "phone", in.Phone, "expired_at", cred.ExpiresAt)
		return nil, goerror.NewBusiness("login code has expired, request a new one", goerror.CodeInvalidInput)
	}

	if subtle.ConstantTimeCompare([]byte(cred.Code), []byte(in.Code)) != 1 {
		slog.WarnContext(ctx, "login code mismatch", "phone", in.Phone)
		return nil, goerror.NewBusiness("invalid login code", goerror.CodeInvalidInput)
	}

	if err := s.store.DeleteOTP(ctx, in.Phone); err != nil {
		slog.ErrorContext(ctx, "failed to consume login code", "phone", in.Phone, "error", err)
		return nil, goerror.NewServer(err)
	}

	return s.issueSession(ctx, in.Phone, entity.AuthMethodSMS)
}
