package inbound

import (
	"net/http"
	"time"

	"github.com/shandysiswandi/passless/internal/auth/usecase"
	"github.com/shandysiswandi/passless/internal/auth/outbound/store"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "session"

func sessionCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func clearSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

type SMSSendRequest struct {
	Phone string `json:"phone"`
}

type SMSSendResponse struct {
	Phone     string    `json:"phone"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (SMSSendResponse) Message() string {
	return "We sent a login code to your phone."
}

type SMSVerifyRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

type MagicLinkSendRequest struct {
	Email string `json:"email"`
}

type MagicLinkSendResponse struct {
	Email string `json:"email"`
}

func (MagicLinkSendResponse) Message() string {
	return "We sent a login link to your email."
}

type TOTPSetupRequest struct {
	Identifier string `json:"identifier"`
}

type TOTPSetupResponse struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
	URI        string `json:"uri"`
	QRCode     string `json:"qr_code"`
}

func (TOTPSetupResponse) Message() string {
	return "Scan the QR code with your authenticator app, then verify a code."
}

type TOTPVerifyRequest struct {
	Identifier string `json:"identifier"`
	Code       string `json:"code"`
}

// LoginResponse is returned by every verify flow that grants a session. The
// session token travels only in the cookie, never in the body.
type LoginResponse struct {
	Identifier string    `json:"identifier"`
	Method     string    `json:"method"`
	LoginTime  time.Time `json:"login_time"`

	cookie *http.Cookie
}

func (LoginResponse) Message() string {
	return "Login successful."
}

func (r LoginResponse) Cookies() []*http.Cookie {
	return []*http.Cookie{r.cookie}
}

func loginResponse(grant *usecase.SessionGrant, ttl time.Duration) LoginResponse {
	return LoginResponse{
		Identifier: grant.Identifier,
		Method:     grant.Method.String(),
		LoginTime:  grant.LoginTime,
		cookie:     sessionCookie(grant.Token, ttl),
	}
}

// RedirectResponse sends the browser elsewhere, optionally setting cookies on
// the way. Used by the magic-link verify endpoint, whose caller is a browser
// following a link rather than a JSON client.
type RedirectResponse struct {
	location string
	cookies  []*http.Cookie
}

func (r RedirectResponse) RedirectURL() string {
	return r.location
}

func (r RedirectResponse) Cookies() []*http.Cookie {
	return r.cookies
}

type SessionUser struct {
	Identifier string    `json:"identifier"`
	Method     string    `json:"method"`
	LoginTime  time.Time `json:"login_time"`
}

type SessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *SessionUser `json:"user,omitempty"`

	cookies []*http.Cookie
}

func (r SessionResponse) Message() string {
	if r.Authenticated {
		return "Session is active."
	}
	return "No active session."
}

func (r SessionResponse) Cookies() []*http.Cookie {
	return r.cookies
}

type LogoutResponse struct{}

func (LogoutResponse) Message() string {
	return "Logged out."
}

func (LogoutResponse) Cookies() []*http.Cookie {
	return []*http.Cookie{clearSessionCookie()}
}

type DebugOTPEntry struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
	Expired   bool      `json:"expired"`
}

type DebugTOTPEntry struct {
	Secret   string `json:"secret"`
	Verified bool   `json:"verified"`
}

type DebugStorageResponse struct {
	OTP   map[string]DebugOTPEntry  `json:"otp"`
	TOTP  map[string]DebugTOTPEntry `json:"totp"`
	Stats *store.Stats              `json:"stats,omitempty"`
}

func (DebugStorageResponse) Message() string {
	return "Credential store snapshot."
}
