package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/passless/internal/auth/entity"
	"github.com/shandysiswandi/passless/internal/pkg/goerror"
	"github.com/shandysiswandi/passless/internal/pkg/identifier"
	"github.com/shandysiswandi/passless/internal/pkg/otp"
)

type TOTPSetupInput struct {
	Identifier string `validate:"required,identifier"`
}

type TOTPSetupOutput struct {
	Identifier string
	Secret     string
	URI        string
	QRCode     string
}

// TOTPSetup provisions a fresh authenticator secret for an identifier.
//
// Setting up again replaces any existing enrollment, verified or not. The
// secret is returned together with the provisioning URI and a QR image for
// scanning.
func (s *Usecase) TOTPSetup(ctx context.Context, in TOTPSetupInput) (*TOTPSetupOutput, error) {
	ctx, span := s.startSpan(ctx, "TOTPSetup")
	defer span.End()

	in.Identifier = identifier.Normalize(in.Identifier)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	secret, uri, err := s.totp.Generate(in.Identifier)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate authenticator secret", "identifier", in.Identifier, "error", err)
		return nil, goerror.NewServer(err)
	}

	qr, err := otp.QRDataURI(uri, 200)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render provisioning qr code", "identifier", in.Identifier, "error", err)
		return nil, goerror.NewServer(err)
	}

	cred := entity.TOTPCredential{Secret: secret, Verified: false}
	if err := s.store.PutTOTP(ctx, in.Identifier, cred); err != nil {
		slog.ErrorContext(ctx, "failed to store authenticator enrollment", "identifier", in.Identifier, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "authenticator enrollment created", "identifier", in.Identifier)

	return &TOTPSetupOutput{
		Identifier: in.Identifier,
		Secret:     secret,
		URI:        uri,
		QRCode:     qr,
	}, nil
}
