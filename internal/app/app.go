// Package app wires dependencies and manages the service lifecycle.
package app

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/passless/internal/auth/outbound/store"
	"github.com/shandysiswandi/passless/internal/pkg/clock"
	"github.com/shandysiswandi/passless/internal/pkg/config"
	"github.com/shandysiswandi/passless/internal/pkg/instrument"
	"github.com/shandysiswandi/passless/internal/pkg/jwt"
	"github.com/shandysiswandi/passless/internal/pkg/mail"
	"github.com/shandysiswandi/passless/internal/pkg/otp"
	"github.com/shandysiswandi/passless/internal/pkg/router"
	"github.com/shandysiswandi/passless/internal/pkg/sms"
	"github.com/shandysiswandi/passless/internal/pkg/uid"
	"github.com/shandysiswandi/passless/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	validator validator.Validator
	clock     clock.Clocker
	uuid      uid.StringID
	totp      *otp.TOTP
	code      otp.CodeGenerator
	jwt       jwt.JWT

	// resources
	store store.Store
	mail  mail.Mail
	sms   sms.Sender

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initMail()
	app.initSMS()
	app.initStore()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
