package usecase

import (
	"context"
	"log/slog"
)

// Logout ends the current session.
//
// Sessions are stateless JWTs, so there is nothing to revoke server-side. The
// endpoint layer clears the cookie; this records the event.
func (s *Usecase) Logout(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "Logout")
	defer span.End()

	slog.InfoContext(ctx, "session cleared")
	return nil
}
