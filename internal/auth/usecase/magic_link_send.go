package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/shandysiswandi/passless/internal/pkg/goerror"
	"github.com/shandysiswandi/passless/internal/pkg/identifier"
	"github.com/shandysiswandi/passless/internal/pkg/mail"
)

type MagicLinkSendInput struct {
	Email string `validate:"required,email"`
}

type MagicLinkSendOutput struct {
	Email string
}

// MagicLinkSend emails a signed login link.
//
// The link is stateless: everything needed to verify it lives inside the
// token, so nothing is written to the credential store.
func (s *Usecase) MagicLinkSend(ctx context.Context, in MagicLinkSendInput) (*MagicLinkSendOutput, error) {
	ctx, span := s.startSpan(ctx, "MagicLinkSend")
	defer span.End()

	in.Email = identifier.Normalize(in.Email)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	token, err := s.jwt.GenerateMagicLink(in.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate magic link token", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	base := strings.TrimRight(s.cfg.GetString("modules.auth.magic_link.base_url"), "/")
	link := base + "/otp/magic-link/verify?token=" + url.QueryEscape(token)

	msg := mail.Message{
		To:       []string{in.Email},
		Subject:  "Your login link",
		TextBody: "Click the link below to log in. It expires in 15 minutes.\n\n" + link + "\n",
		HTMLBody: fmt.Sprintf(
			`<p>Click the link below to log in. It expires in 15 minutes.</p><p><a href=%q>Log in</a></p>`,
			link,
		),
	}

	if err := s.mail.Send(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "failed to dispatch magic link email", "email", in.Email, "error", err)
		return nil, goerror.NewDispatch(err, "failed to send login link")
	}

	slog.InfoContext(ctx, "magic link dispatched", "email", in.Email)

	return &MagicLinkSendOutput{Email: in.Email}, nil
}
