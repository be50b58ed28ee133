// Package auth wires the passwordless login flows: SMS codes, authenticator
// apps, and emailed magic links, all settling into the same cookie session.
package auth

import (
	"github.com/shandysiswandi/passless/internal/auth/inbound"
	"github.com/shandysiswandi/passless/internal/auth/outbound/store"
	"github.com/shandysiswandi/passless/internal/auth/usecase"
	"github.com/shandysiswandi/passless/internal/pkg/clock"
	"github.com/shandysiswandi/passless/internal/pkg/config"
	"github.com/shandysiswandi/passless/internal/pkg/instrument"
	"github.com/shandysiswandi/passless/internal/pkg/jwt"
	"github.com/shandysiswandi/passless/internal/pkg/mail"
	"github.com/shandysiswandi/passless/internal/pkg/otp"
	"github.com/shandysiswandi/passless/internal/pkg/router"
	"github.com/shandysiswandi/passless/internal/pkg/sms"
	"github.com/shandysiswandi/passless/internal/pkg/validator"
)

type Dependency struct {
	Store      store.Store                `validate:"required"`
	SMS        sms.Sender                 `validate:"required"`
	Mail       mail.Mail                  `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	Totp       otp.TOTPProvider           `validate:"required"`
	Code       otp.CodeGenerator          `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		Store:      dep.Store,
		SMS:        dep.SMS,
		Mail:       dep.Mail,
		Totp:       dep.Totp,
		Code:       dep.Code,
		JWT:        dep.JWT,
		Clock:      dep.Clock,
		Validator:  dep.Validator,
		Config:     dep.Config,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, dep.Config)

	return nil
}
