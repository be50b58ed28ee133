package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/passless/internal/auth"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.auth.enabled") {
		if err := auth.New(auth.Dependency{
			Store:      a.store,
			SMS:        a.sms,
			Mail:       a.mail,
			Router:     a.router,
			Config:     a.config,
			Instrument: a.ins,
			Totp:       a.totp,
			Code:       a.code,
			Clock:      a.clock,
			Validator:  a.validator,
			JWT:        a.jwt,
		}); err != nil {
			slog.Error("failed to init module auth", "error", err)
			os.Exit(1)
		}
	}
}
