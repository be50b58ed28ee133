package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	libOTP "github.com/pquerna/otp"
	"github.com/rs/cors"
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

func (a *App) initConfig() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "/config/config.yaml"
		if os.Getenv("LOCAL") == "true" {
			path = "./config/config.yaml"
		}
	}

	cfg, err := config.NewViper(path)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("app.tz"))

	a.config = cfg
}

func (a *App) initInstrument() {
	ins, err := instrument.New(context.Background(), &instrument.Config{
		Enabled:          a.config.GetBool("instrument.enabled"),
		ServiceName:      a.config.GetString("instrument.service_name"),
		ServiceVersion:   a.config.GetString("instrument.service_version"),
		Environment:      a.config.GetString("instrument.env"),
		OTLPEndpoint:     a.config.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       a.config.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: a.config.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  a.config.GetSecond("instrument.metric_interval_seconds"),
		MaskFields:       a.config.GetArray("instrument.log_mask_fields"),
	})
	if err != nil {
		slog.Error("failed to init instrumentation", "error", err)
		os.Exit(1)
	}
	a.ins = ins
}

func (a *App) initLibraries() {
	a.clock = clock.New()
	a.uuid = uid.NewUUID()

	v10, err := validator.NewV10Validator()
	if err != nil {
		slog.Error("failed to init validation v10 validator", "error", err)
		os.Exit(1)
	}
	a.validator = v10

	a.totp = otp.NewTOTP(
		a.config.GetString("mfa.totp.issuer"),
		a.config.GetUint("mfa.totp.period"),
		a.config.GetUint("mfa.totp.skew"),
		libOTP.DigitsSix,
	)

	a.code = otp.NewNumericCode(a.config.GetInt("mfa.otp.digits"))
}

func (a *App) initJWT() {
	defaultJWT, err := jwt.NewHS512(jwt.Config{
		Secret:       []byte(a.config.GetString("jwt.secret")),
		Issuer:       a.config.GetString("jwt.issuer"),
		Audiences:    a.config.GetArray("jwt.audiences"),
		SessionTTL:   a.config.GetHour("jwt.session_ttl_hours"),
		MagicLinkTTL: a.config.GetMinute("jwt.magic_link_ttl_minutes"),
		Clock:        a.clock,
		UUID:         a.uuid,
	})
	if err != nil {
		slog.Error("failed to init jwt token", "error", err)
		os.Exit(1)
	}
	a.jwt = defaultJWT
}

func (a *App) initMail() {
	smtp, err := mail.NewSMTP(mail.SMTPConfig{
		Host:     a.config.GetString("mail.host"),
		Port:     a.config.GetInt("mail.port"),
		Username: a.config.GetString("mail.username"),
		Password: a.config.GetString("mail.password"),
		From:     a.config.GetString("mail.from"),
	})
	if err != nil {
		slog.Error("failed to init mail", "error", err)
		os.Exit(1)
	}

	a.mail = smtp
}

func (a *App) initSMS() {
	driver := a.config.GetString("sms.driver")
	sender, err := sms.NewFromDriver(driver, sms.FactoryOptions{
		Twilio: sms.TwilioConfig{
			AccountSID: a.config.GetString("sms.twilio.account_sid"),
			AuthToken:  a.config.GetString("sms.twilio.auth_token"),
			From:       a.config.GetString("sms.twilio.from_number"),
			BaseURL:    a.config.GetString("sms.twilio.base_url"),
		},
	})
	if err != nil {
		slog.Error("failed to init sms", "error", err, "driver", driver)
		os.Exit(1)
	}

	a.sms = sender
}

func (a *App) initStore() {
	st, err := store.NewFromDriver(a.ctx, a.config)
	if err != nil {
		slog.Error("failed to init credential store", "error", err, "driver", a.config.GetString("store.driver"))
		os.Exit(1)
	}

	a.store = st
}

func (a *App) initHTTPServer() {
	a.router = router.NewRouter(router.Config{
		Config:     a.config,
		UUID:       a.uuid,
		Instrument: a.ins,
	})

	routerWithCORS := cors.New(cors.Options{
		AllowedOrigins: a.config.GetArray("app.server.cors"),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(a.router)

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("app.server.http.address"),
		Handler:           routerWithCORS,
		ReadTimeout:       a.config.GetSecond("app.server.http.read_timeout_seconds"),
		ReadHeaderTimeout: a.config.GetSecond("app.server.http.read_header_timeout_seconds"),
		WriteTimeout:      a.config.GetSecond("app.server.http.write_timeout_seconds"),
		IdleTimeout:       a.config.GetSecond("app.server.http.idle_timeout_seconds"),
	}
}

func (a *App) initClosers() {
	a.closers = []struct {
		name string
		fn   func(context.Context) error
	}{
		{
			name: "Instrument",
			fn: func(ctx context.Context) error {
				return a.ins.Shutdown(ctx)
			},
		},
		{
			name: "Store",
			fn: func(context.Context) error {
				return a.store.Close()
			},
		},
		{
			name: "SMS",
			fn: func(context.Context) error {
				return a.sms.Close()
			},
		},
		{
			name: "Mail",
			fn: func(context.Context) error {
				return a.mail.Close()
			},
		},
		{
			name: "Config",
			fn: func(context.Context) error {
				return a.config.Close()
			},
		},
	}
}
