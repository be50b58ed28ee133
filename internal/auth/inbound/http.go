package inbound

import (
	"context"

	"github.com/shandysiswandi/passless/internal/auth/usecase"
	"github.com/shandysiswandi/passless/internal/pkg/config"
	"github.com/shandysiswandi/passless/internal/pkg/router"
)

type uc interface {
	SMSSend(ctx context.Context, in usecase.SMSSendInput) (*usecase.SMSSendOutput, error)
	SMSVerify(ctx context.Context, in usecase.SMSVerifyInput) (*usecase.SessionGrant, error)

	TOTPSetup(ctx context.Context, in usecase.TOTPSetupInput) (*usecase.TOTPSetupOutput, error)
	TOTPVerify(ctx context.Context, in usecase.TOTPVerifyInput) (*usecase.SessionGrant, error)

	MagicLinkSend(ctx context.Context, in usecase.MagicLinkSendInput) (*usecase.MagicLinkSendOutput, error)
	MagicLinkVerify(ctx context.Context, in usecase.MagicLinkVerifyInput) (*usecase.SessionGrant, error)

	Session(ctx context.Context, in usecase.SessionInput) (*usecase.SessionOutput, error)
	Logout(ctx context.Context) error

	DebugStore(ctx context.Context) (*usecase.DebugStoreOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc, cfg config.Config) {
	end := &HTTPEndpoint{
		uc:         uc,
		sessionTTL: cfg.GetHour("jwt.session_ttl_hours"),
	}

	// Login flows
	r.POST("/otp/sms/send", end.SMSSend)
	r.POST("/otp/sms/verify", end.SMSVerify)
	//
	r.POST("/otp/totp/setup", end.TOTPSetup)
	r.POST("/otp/totp/verify", end.TOTPVerify)
	//
	r.POST("/otp/magic-link/send", end.MagicLinkSend)
	r.GET("/otp/magic-link/verify", end.MagicLinkVerify) // browser follows the emailed link

	// Session lifecycle
	r.GET("/session", end.Session)
	r.POST("/logout", end.Logout)

	// Inspection
	r.GET("/debug/storage", end.DebugStorage)
}
