package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/passless/internal/auth/entity"
	"github.com/shandysiswandi/passless/internal/pkg/clock"
	"github.com/shandysiswandi/passless/internal/pkg/config"
	"github.com/shandysiswandi/passless/internal/pkg/goerror"
	"github.com/shandysiswandi/passless/internal/pkg/instrument"
	"github.com/shandysiswandi/passless/internal/pkg/jwt"
	"github.com/shandysiswandi/passless/internal/pkg/mail"
	"github.com/shandysiswandi/passless/internal/pkg/otp"
	"github.com/shandysiswandi/passless/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type credentialStore interface {
	GetOTP(ctx context.Context, identifier string) (*entity.OTPCredential, error)
	PutOTP(ctx context.Context, identifier string, cred entity.OTPCredential) error
	DeleteOTP(ctx context.Context, identifier string) error
	ListOTP(ctx context.Context) (map[string]entity.OTPCredential, error)

	GetTOTP(ctx context.Context, identifier string) (*entity.TOTPCredential, error)
	PutTOTP(ctx context.Context, identifier string, cred entity.TOTPCredential) error
	ListTOTP(ctx context.Context) (map[string]entity.TOTPCredential, error)
}

type smsSender interface {
	Send(ctx context.Context, to, body string) error
}

type mailSender interface {
	Send(ctx context.Context, msg mail.Message) error
}

// SessionGrant is the result of any successful login flow.
type SessionGrant struct {
	Token      string
	Identifier string
	Method     entity.AuthMethod
	LoginTime  time.Time
}

type Usecase struct {
	store     credentialStore
	sms       smsSender
	mail      mailSender
	totp      otp.TOTPProvider
	code      otp.CodeGenerator
	jwt       jwt.JWT
	clock     clock.Clocker
	validator validator.Validator
	cfg       config.Config
	ins       instrument.Instrumentation
}

type Dependency struct {
	Store      credentialStore
	SMS        smsSender
	Mail       mailSender
	Totp       otp.TOTPProvider
	Code       otp.CodeGenerator
	JWT        jwt.JWT
	Clock      clock.Clocker
	Validator  validator.Validator
	Config     config.Config
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		store:     dep.Store,
		sms:       dep.SMS,
		mail:      dep.Mail,
		totp:      dep.Totp,
		code:      dep.Code,
		jwt:       dep.JWT,
		clock:     dep.Clock,
		validator: dep.Validator,
		cfg:       dep.Config,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.usecase").Start(ctx, name)
}

func (s *Usecase) issueSession(ctx context.Context, id string, method entity.AuthMethod) (*SessionGrant, error) {
	token, err := s.jwt.GenerateSession(id, method.String())
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate session token", "identifier", id, "method", method, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "login succeeded", "identifier", id, "method", method)

	return &SessionGrant{
		Token:      token,
		Identifier: id,
		Method:     method,
		LoginTime:  s.clock.Now(),
	}, nil
}
