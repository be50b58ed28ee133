package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shandysiswandi/passless/internal/auth/entity"
	"github.com/shandysiswandi/passless/internal/pkg/config"
	"github.com/shandysiswandi/passless/internal/pkg/goerror"
	"github.com/shandysiswandi/passless/internal/pkg/instrument"
	"github.com/shandysiswandi/passless/internal/pkg/jwt"
	"github.com/shandysiswandi/passless/internal/pkg/mail"
	"github.com/shandysiswandi/passless/internal/pkg/otp"
	"github.com/shandysiswandi/passless/internal/pkg/validator"
)

var errBoom = errors.New("boom")

type mutableClock struct{ now time.Time }

func (c *mutableClock) Now() time.Time { return c.now }

func (c *mutableClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fixedUUID struct{}

func (fixedUUID) Generate() string { return "00000000-0000-0000-0000-000000000001" }

type fixedCode struct {
	code string
	err  error
}

func (f fixedCode) Generate() (string, error) { return f.code, f.err }

type fakeStore struct {
	otps  map[string]entity.OTPCredential
	totps map[string]entity.TOTPCredential

	failPutOTP    bool
	failDeleteOTP bool
	failPutTOTP   bool
	failListTOTP  bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		otps:  make(map[string]entity.OTPCredential),
		totps: make(map[string]entity.TOTPCredential),
	}
}

func (f *fakeStore) GetOTP(_ context.Context, id string) (*entity.OTPCredential, error) {
	cred, ok := f.otps[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &cred, nil
}

func (f *fakeStore) PutOTP(_ context.Context, id string, cred entity.OTPCredential) error {
	if f.failPutOTP {
		return errBoom
	}
	f.otps[id] = cred
	return nil
}

func (f *fakeStore) DeleteOTP(_ context.Context, id string) error {
	if f.failDeleteOTP {
		return errBoom
	}
	delete(f.otps, id)
	return nil
}

func (f *fakeStore) ListOTP(_ context.Context) (map[string]entity.OTPCredential, error) {
	out := make(map[string]entity.OTPCredential, len(f.otps))
	for id, cred := range f.otps {
		out[id] = cred
	}
	return out, nil
}

func (f *fakeStore) GetTOTP(_ context.Context, id string) (*entity.TOTPCredential, error) {
	cred, ok := f.totps[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &cred, nil
}

func (f *fakeStore) PutTOTP(_ context.Context, id string, cred entity.TOTPCredential) error {
	if f.failPutTOTP {
		return errBoom
	}
	f.totps[id] = cred
	return nil
}

func (f *fakeStore) ListTOTP(_ context.Context) (map[string]entity.TOTPCredential, error) {
	if f.failListTOTP {
		return nil, errBoom
	}
	out := make(map[string]entity.TOTPCredential, len(f.totps))
	for id, cred := range f.totps {
		out[id] = cred
	}
	return out, nil
}

type fakeSMS struct {
	sent []string
	to   []string
	err  error
}

func (f *fakeSMS) Send(_ context.Context, to, body string) error {
	if f.err != nil {
		return f.err
	}
	f.to = append(f.to, to)
	f.sent = append(f.sent, body)
	return nil
}

type fakeMail struct {
	sent []mail.Message
	err  error
}

func (f *fakeMail) Send(_ context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

const testConfigYAML = `
modules:
  auth:
    otp_ttl_minutes: 10
    magic_link:
      base_url: http://localhost:8080
`

type harness struct {
	uc    *Usecase
	store *fakeStore
	sms   *fakeSMS
	mail  *fakeMail
	clock *mutableClock
	totp  *otp.TOTP
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	clk := &mutableClock{now: time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)}

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfigYAML))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	t.Cleanup(func() { cfg.Close() })

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}

	tokener, err := jwt.NewHS512(jwt.Config{
		Secret:       bytes.Repeat([]byte("k"), 64),
		Issuer:       "passless",
		Audiences:    []string{"passless-web"},
		SessionTTL:   24 * time.Hour,
		MagicLinkTTL: 15 * time.Minute,
		Clock:        clk,
		UUID:         fixedUUID{},
	})
	if err != nil {
		t.Fatalf("jwt: %v", err)
	}

	st := newFakeStore()
	sender := &fakeSMS{}
	mailer := &fakeMail{}
	totp := otp.NewTOTP("Passless", 30, 1, 0)

	uc := New(Dependency{
		Store:      st,
		SMS:        sender,
		Mail:       mailer,
		Totp:       totp,
		Code:       fixedCode{code: "042719"},
		JWT:        tokener,
		Clock:      clk,
		Validator:  v10,
		Config:     cfg,
		Instrument: instrument.NewNoop(),
	})

	return &harness{uc: uc, store: st, sms: sender, mail: mailer, clock: clk, totp: totp}
}

func wantBusinessStatus(t *testing.T, err error, status int) {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("error = %v, want *goerror.Error", err)
	}
	if gerr.StatusCode() != status {
		t.Fatalf("StatusCode() = %d, want %d (msg %q)", gerr.StatusCode(), status, gerr.Msg())
	}
}
