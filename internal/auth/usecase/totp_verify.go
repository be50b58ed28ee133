package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/shandysiswandi/passless/internal/auth/entity"
	"github.com/shandysiswandi/passless/internal/pkg/goerror"
	"github.com/shandysiswandi/passless/internal/pkg/identifier"
)

type TOTPVerifyInput struct {
	Identifier string `validate:"required,identifier"`
	Code       string `validate:"required,len=6,numeric"`
}

// TOTPVerify checks an authenticator code and grants a session.
//
// Enrollments are reusable: the record survives a successful login, and the
// first success marks it verified. When no enrollment exists, the error lists
// the identifiers that do have one, since the most common cause is setting up
// with one spelling and logging in with another.
func (s *Usecase) TOTPVerify(ctx context.Context, in TOTPVerifyInput) (*SessionGrant, error) {
	ctx, span := s.startSpan(ctx, "TOTPVerify")
	defer span.End()

	in.Identifier = identifier.Normalize(in.Identifier)
	in.Code = strings.TrimSpace(in.Code)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	cred, err := s.store.GetTOTP(ctx, in.Identifier)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, s.totpNotFound(ctx, in.Identifier)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to load authenticator enrollment", "identifier", in.Identifier, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.totp.Validate(in.Code, cred.Secret, s.clock.Now()) {
		slog.WarnContext(ctx, "authenticator code mismatch", "identifier", in.Identifier)
		return nil, goerror.NewBusiness("invalid authenticator code", goerror.CodeInvalidInput)
	}

	if !cred.Verified {
		cred.Verified = true
		if err := s.store.PutTOTP(ctx, in.Identifier, *cred); err != nil {
			slog.ErrorContext(ctx, "failed to mark enrollment verified", "identifier", in.Identifier, "error", err)
			return nil, goerror.NewServer(err)
		}
	}

	return s.issueSession(ctx, in.Identifier, entity.AuthMethodTOTP)
}

func (s *Usecase) totpNotFound(ctx context.Context, id string) error {
	slog.WarnContext(ctx, "authenticator enrollment not found", "identifier", id)

	enrollments, err := s.store.ListTOTP(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list authenticator enrollments", "error", err)
		return goerror.NewBusiness("no authenticator is set up for this identifier", goerror.CodeInvalidInput)
	}

	known := lo.Keys(enrollments)
	sort.Strings(known)

	if len(known) == 0 {
		return goerror.NewBusiness("no authenticator is set up for this identifier", goerror.CodeInvalidInput)
	}

	return goerror.NewBusinessFields(
		"no authenticator is set up for this identifier",
		goerror.CodeInvalidInput,
		"known_identifiers", strings.Join(known, ", "),
	)
}
