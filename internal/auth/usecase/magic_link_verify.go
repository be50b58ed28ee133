package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/passless/internal/auth/entity"
	"github.com/shandysiswandi/passless/internal/pkg/jwt"
)

// Magic-link verification failures. The verify endpoint turns these into
// browser redirects instead of JSON, so they are plain sentinels rather than
// structured errors.
var (
	// ErrLinkExpired means the link was valid once but is past its lifetime.
	ErrLinkExpired = errors.New("magic link has expired")

	// ErrLinkInvalid means the token is malformed or carries a bad signature.
	ErrLinkInvalid = errors.New("magic link token is invalid")

	// ErrLinkWrongPurpose means a structurally valid token that was not minted
	// for a magic link, e.g. a session token pasted into the URL.
	ErrLinkWrongPurpose = errors.New("token was not minted for a magic link")
)

type MagicLinkVerifyInput struct {
	Token string
}

// MagicLinkVerify validates a login link token and grants a session.
func (s *Usecase) MagicLinkVerify(ctx context.Context, in MagicLinkVerifyInput) (*SessionGrant, error) {
	ctx, span := s.startSpan(ctx, "MagicLinkVerify")
	defer span.End()

	claims, err := s.jwt.Verify(in.Token)
	if errors.Is(err, jwt.ErrTokenExpired) {
		slog.WarnContext(ctx, "magic link expired")
		return nil, ErrLinkExpired
	}
	if err != nil {
		slog.WarnContext(ctx, "magic link token rejected", "error", err)
		return nil, ErrLinkInvalid
	}

	if claims.Purpose != jwt.PurposeMagicLink {
		slog.WarnContext(ctx, "magic link token has wrong purpose", "purpose", claims.Purpose)
		return nil, ErrLinkWrongPurpose
	}

	return s.issueSession(ctx, claims.Identifier, entity.AuthMethodMagicLink)
}
