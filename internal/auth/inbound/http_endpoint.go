package inbound

import (
	"errors"
	"net/http"
	"time"

	"github.com/shandysiswandi/passless/internal/auth/usecase"
	"github.com/shandysiswandi/passless/internal/pkg/router"
)

// Redirect targets for the magic-link verify endpoint. Its caller is a
// browser, so failures render as query parameters on the landing page rather
// than JSON.
const (
	redirectSuccess      = "/success"
	redirectMissingToken = "/?error=missing-token"
	redirectInvalidToken = "/?error=invalid-token"
	redirectExpiredLink  = "/?error=expired-link"
	redirectInvalidLink  = "/?error=invalid-link"
)

// HTTPEndpoint exposes HTTP handlers for the passwordless login flows.
type HTTPEndpoint struct {
	uc         uc
	sessionTTL time.Duration
}

// SMSSend requests a login code by text message.
// @Summary Send SMS login code
// @Description Generates a short-lived numeric code and sends it to the given phone number.
// @Tags OTP, SMS
// @Accept json
// @Produce json
// @Param request body SMSSendRequest true "Phone payload"
// @Success 200 {object} router.successResponse{data=SMSSendResponse} "Code dispatched"
// @Failure 400 {object} router.errorResponse "Invalid phone number"
// @Failure 500 {object} router.errorResponse "Dispatch failure"
// @Router /otp/sms/send [post]
func (h *HTTPEndpoint) SMSSend(r *router.Request) (any, error) {
	var req SMSSendRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.SMSSend(r.Context(), usecase.SMSSendInput{Phone: req.Phone})
	if err != nil {
		return nil, err
	}

	return SMSSendResponse{
		Phone:     resp.Phone,
		ExpiresAt: resp.ExpiresAt,
	}, nil
}

// SMSVerify checks an SMS login code and starts a session.
// @Summary Verify SMS login code
// @Description Verifies the code sent to the phone number and sets the session cookie.
// @Tags OTP, SMS
// @Accept json
// @Produce json
// @Param request body SMSVerifyRequest true "Phone and code payload"
// @Success 200 {object} router.successResponse{data=LoginResponse} "Login result"
// @Failure 400 {object} router.errorResponse "Unknown, expired, or mismatched code"
// @Router /otp/sms/verify [post]
func (h *HTTPEndpoint) SMSVerify(r *router.Request) (any, error) {
	var req SMSVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	grant, err := h.uc.SMSVerify(r.Context(), usecase.SMSVerifyInput{
		Phone: req.Phone,
		Code:  req.Code,
	})
	if err != nil {
		return nil, err
	}

	return loginResponse(grant, h.sessionTTL), nil
}

// TOTPSetup provisions an authenticator app secret.
// @Summary Set up authenticator
// @Description Creates a fresh TOTP secret for the identifier and returns it with a provisioning QR code.
// @Tags OTP, TOTP
// @Accept json
// @Produce json
// @Param request body TOTPSetupRequest true "Identifier payload"
// @Success 200 {object} router.successResponse{data=TOTPSetupResponse} "Enrollment created"
// @Failure 400 {object} router.errorResponse "Invalid identifier"
// @Router /otp/totp/setup [post]
func (h *HTTPEndpoint) TOTPSetup(r *router.Request) (any, error) {
	var req TOTPSetupRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.TOTPSetup(r.Context(), usecase.TOTPSetupInput{Identifier: req.Identifier})
	if err != nil {
		return nil, err
	}

	return TOTPSetupResponse{
		Identifier: resp.Identifier,
		Secret:     resp.Secret,
		URI:        resp.URI,
		QRCode:     resp.QRCode,
	}, nil
}

// TOTPVerify checks an authenticator code and starts a session.
// @Summary Verify authenticator code
// @Description Verifies a TOTP code for the identifier and sets the session cookie.
// @Tags OTP, TOTP
// @Accept json
// @Produce json
// @Param request body TOTPVerifyRequest true "Identifier and code payload"
// @Success 200 {object} router.successResponse{data=LoginResponse} "Login result"
// @Failure 400 {object} router.errorResponse "Unknown identifier or invalid code"
// @Router /otp/totp/verify [post]
func (h *HTTPEndpoint) TOTPVerify(r *router.Request) (any, error) {
	var req TOTPVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	grant, err := h.uc.TOTPVerify(r.Context(), usecase.TOTPVerifyInput{
		Identifier: req.Identifier,
		Code:       req.Code,
	})
	if err != nil {
		return nil, err
	}

	return loginResponse(grant, h.sessionTTL), nil
}

// MagicLinkSend emails a login link.
// @Summary Send magic link
// @Description Emails a signed one-time login link to the given address.
// @Tags OTP, MagicLink
// @Accept json
// @Produce json
// @Param request body MagicLinkSendRequest true "Email payload"
// @Success 200 {object} router.successResponse{data=MagicLinkSendResponse} "Link dispatched"
// @Failure 400 {object} router.errorResponse "Invalid email"
// @Failure 500 {object} router.errorResponse "Dispatch failure"
// @Router /otp/magic-link/send [post]
func (h *HTTPEndpoint) MagicLinkSend(r *router.Request) (any, error) {
	var req MagicLinkSendRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.MagicLinkSend(r.Context(), usecase.MagicLinkSendInput{Email: req.Email})
	if err != nil {
		return nil, err
	}

	return MagicLinkSendResponse{Email: resp.Email}, nil
}

// MagicLinkVerify completes a magic-link login from the browser.
// @Summary Verify magic link
// @Description Validates the token from the emailed link, sets the session cookie, and redirects to the landing page.
// @Tags OTP, MagicLink
// @Param token query string true "Magic link token"
// @Success 302 "Redirect to /success or /?error=..."
// @Router /otp/magic-link/verify [get]
func (h *HTTPEndpoint) MagicLinkVerify(r *router.Request) (any, error) {
	token := r.GetQuery("token")
	if token == "" {
		return RedirectResponse{location: redirectMissingToken}, nil
	}

	grant, err := h.uc.MagicLinkVerify(r.Context(), usecase.MagicLinkVerifyInput{Token: token})
	switch {
	case errors.Is(err, usecase.ErrLinkExpired):
		return RedirectResponse{location: redirectExpiredLink}, nil
	case errors.Is(err, usecase.ErrLinkWrongPurpose):
		return RedirectResponse{location: redirectInvalidToken}, nil
	case errors.Is(err, usecase.ErrLinkInvalid):
		return RedirectResponse{location: redirectInvalidLink}, nil
	case err != nil:
		return nil, err
	}

	return RedirectResponse{
		location: redirectSuccess,
		cookies:  []*http.Cookie{sessionCookie(grant.Token, h.sessionTTL)},
	}, nil
}

// Session reports the current login state.
// @Summary Inspect session
// @Description Returns the authenticated user from the session cookie, or authenticated=false.
// @Tags Session
// @Produce json
// @Success 200 {object} router.successResponse{data=SessionResponse} "Session state"
// @Router /session [get]
func (h *HTTPEndpoint) Session(r *router.Request) (any, error) {
	out, err := h.uc.Session(r.Context(), usecase.SessionInput{
		Token: r.GetCookie(SessionCookieName),
	})
	if err != nil {
		return nil, err
	}

	if !out.Authenticated {
		// Clear whatever invalid cookie the browser sent.
		return SessionResponse{
			Authenticated: false,
			cookies:       []*http.Cookie{clearSessionCookie()},
		}, nil
	}

	return SessionResponse{
		Authenticated: true,
		User: &SessionUser{
			Identifier: out.Identifier,
			Method:     out.Method.String(),
			LoginTime:  out.LoginTime,
		},
	}, nil
}

// Logout ends the session.
// @Summary Log out
// @Description Clears the session cookie.
// @Tags Session
// @Produce json
// @Success 200 {object} router.successResponse{data=LogoutResponse} "Logged out"
// @Router /logout [post]
func (h *HTTPEndpoint) Logout(r *router.Request) (any, error) {
	if err := h.uc.Logout(r.Context()); err != nil {
		return nil, err
	}

	return LogoutResponse{}, nil
}

// DebugStorage snapshots the credential store.
// @Summary Inspect credential store
// @Description Returns all stored codes and enrollments with secrets truncated.
// @Tags Debug
// @Produce json
// @Success 200 {object} router.successResponse{data=DebugStorageResponse} "Store snapshot"
// @Router /debug/storage [get]
func (h *HTTPEndpoint) DebugStorage(r *router.Request) (any, error) {
	out, err := h.uc.DebugStore(r.Context())
	if err != nil {
		return nil, err
	}

	resp := DebugStorageResponse{
		OTP:   make(map[string]DebugOTPEntry, len(out.OTP)),
		TOTP:  make(map[string]DebugTOTPEntry, len(out.TOTP)),
		Stats: out.Stats,
	}
	for id, entry := range out.OTP {
		resp.OTP[id] = DebugOTPEntry{
			Code:      entry.Code,
			ExpiresAt: entry.ExpiresAt,
			Expired:   entry.Expired,
		}
	}
	for id, entry := range out.TOTP {
		resp.TOTP[id] = DebugTOTPEntry{
			Secret:   entry.Secret,
			Verified: entry.Verified,
		}
	}

	return resp, nil
}
