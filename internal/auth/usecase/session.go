package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/passless/internal/auth/entity"
	"github.com/shandysiswandi/passless/internal/pkg/jwt"
)

type SessionInput struct {
	Token string
}

type SessionOutput struct {
	Authenticated bool
	Identifier    string
	Method        entity.AuthMethod
	LoginTime     time.Time
}

// Session inspects a session token and reports who is logged in.
//
// An absent, expired, or otherwise invalid token is not an error: the caller
// simply is not authenticated. The endpoint layer clears the cookie in that
// case.
func (s *Usecase) Session(ctx context.Context, in SessionInput) (*SessionOutput, error) {
	ctx, span := s.startSpan(ctx, "Session")
	defer span.End()

	if in.Token == "" {
		return &SessionOutput{Authenticated: false}, nil
	}

	claims, err := s.jwt.Verify(in.Token)
	if err != nil {
		slog.WarnContext(ctx, "session token rejected", "error", err)
		return &SessionOutput{Authenticated: false}, nil
	}

	if claims.Purpose != jwt.PurposeSession {
		slog.WarnContext(ctx, "session token has wrong purpose", "purpose", claims.Purpose)
		return &SessionOutput{Authenticated: false}, nil
	}

	loginTime, err := time.Parse(time.RFC3339, claims.LoginTime)
	if err != nil {
		loginTime = claims.IssuedAt.Time
	}

	return &SessionOutput{
		Authenticated: true,
		Identifier:    claims.Identifier,
		Method:        entity.AuthMethodFromString(claims.Method),
		LoginTime:     loginTime,
	}, nil
}
