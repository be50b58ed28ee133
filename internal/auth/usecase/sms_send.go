package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/passless/internal/auth/entity"
	"github.com/shandysiswandi/passless/internal/pkg/goerror"
	"github.com/shandysiswandi/passless/internal/pkg/identifier"
)

type SMSSendInput struct {
	Phone string `validate:"required,phone"`
}

type SMSSendOutput struct {
	Phone     string
	ExpiresAt time.Time
}

// SMSSend generates a numeric code, stores it for the phone number, and
// dispatches it by text message.
//
// The code is stored before dispatch so a verify racing the send still finds
// it. If dispatch fails the stored code is removed again: a code the user
// never received must not remain verifiable.
func (s *Usecase) SMSSend(ctx context.Context, in SMSSendInput) (*SMSSendOutput, error) {
	ctx, span := s.startSpan(ctx, "SMSSend")
	defer span.End()

	in.Phone = identifier.Normalize(in.Phone)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	code, err := s.code.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate login code", "phone", in.Phone, "error", err)
		return nil, goerror.NewServer(err)
	}

	cred := entity.OTPCredential{
		Code:      code,
		ExpiresAt: s.clock.Now().Add(s.cfg.GetMinute("modules.auth.otp_ttl_minutes")),
	}

	if err := s.store.PutOTP(ctx, in.Phone, cred); err != nil {
		slog.ErrorContext(ctx, "failed to store login code", "phone", in.Phone, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.sms.Send(ctx, in.Phone, "Your login code is "+code); err != nil {
		slog.ErrorContext(ctx, "failed to dispatch login code", "phone", in.Phone, "error", err)

		if delErr := s.store.DeleteOTP(ctx, in.Phone); delErr != nil {
			slog.ErrorContext(ctx, "failed to remove undelivered login code", "phone", in.Phone, "error", delErr)
		}

		return nil, goerror.NewDispatch(err, "failed to send login code")
	}

	slog.InfoContext(ctx, "login code dispatched", "phone", in.Phone, "expires_at", cred.ExpiresAt)

	return &SMSSendOutput{
		Phone:     in.Phone,
		ExpiresAt: cred.ExpiresAt,
	}, nil
}
