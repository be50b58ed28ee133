package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/shandysiswandi/passless/internal/auth/entity"
	"github.com/shandysiswandi/passless/internal/pkg/goerror"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func startRedis(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()

	ctr, err := tcredis.Run(ctx, "redis:7-alpine")
	testcontainers.CleanupContainer(t, ctr)
	if err != nil {
		t.Fatalf("start redis container: %v", err)
	}

	host, err := ctr.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}

	port, err := ctr.MappedPort(ctx, nat.Port("6379/tcp"))
	if err != nil {
		t.Fatalf("container port: %v", err)
	}

	return fmt.Sprintf("redis://%s:%s", host, port.Port())
}

func TestRedisOTPRoundTrip(t *testing.T) {
	ctx := context.Background()
	url := startRedis(t)

	r, err := NewRedis(ctx, RedisConfig{URL: url, Prefix: "passless-test:"})
	if err != nil {
		t.Fatalf("NewRedis() error = %v", err)
	}
	defer r.Close()

	if _, err := r.GetOTP(ctx, "+15551234567"); !errors.Is(err, goerror.ErrNotFound) {
		t.Fatalf("GetOTP() error = %v, want ErrNotFound", err)
	}

	cred := entity.OTPCredential{Code: "042719", ExpiresAt: time.Now().Add(10 * time.Minute).UTC()}
	if err := r.PutOTP(ctx, "+15551234567", cred); err != nil {
		t.Fatalf("PutOTP() error = %v", err)
	}

	got, err := r.GetOTP(ctx, "+15551234567")
	if err != nil {
		t.Fatalf("GetOTP() error = %v", err)
	}
	if got.Code != "042719" {
		t.Errorf("GetOTP() code = %q, want %q", got.Code, "042719")
	}

	list, err := r.ListOTP(ctx)
	if err != nil {
		t.Fatalf("ListOTP() error = %v", err)
	}
	if _, ok := list["+15551234567"]; !ok || len(list) != 1 {
		t.Errorf("ListOTP() = %v, want single entry keyed by identifier", list)
	}

	if err := r.DeleteOTP(ctx, "+15551234567"); err != nil {
		t.Fatalf("DeleteOTP() error = %v", err)
	}
	if _, err := r.GetOTP(ctx, "+15551234567"); !errors.Is(err, goerror.ErrNotFound) {
		t.Errorf("GetOTP() after delete error = %v, want ErrNotFound", err)
	}
}

func TestRedisExpiredCodeStaysReadable(t *testing.T) {
	ctx := context.Background()
	url := startRedis(t)

	r, err := NewRedis(ctx, RedisConfig{URL: url, Prefix: "passless-test:"})
	if err != nil {
		t.Fatalf("NewRedis() error = %v", err)
	}
	defer r.Close()

	// Already past expiry. The grace TTL keeps it readable so a verify
	// attempt can report expiry instead of not-found.
	cred := entity.OTPCredential{Code: "111111", ExpiresAt: time.Now().Add(-time.Minute).UTC()}
	if err := r.PutOTP(ctx, "+15551111111", cred); err != nil {
		t.Fatalf("PutOTP() error = %v", err)
	}

	got, err := r.GetOTP(ctx, "+15551111111")
	if err != nil {
		t.Fatalf("GetOTP() error = %v, expired record must remain readable", err)
	}
	if !got.Expired(time.Now()) {
		t.Errorf("Expired() = false, want true for past expiry")
	}
}

func TestRedisTOTPRoundTrip(t *testing.T) {
	ctx := context.Background()
	url := startRedis(t)

	r, err := NewRedis(ctx, RedisConfig{URL: url, Prefix: "passless-test:"})
	if err != nil {
		t.Fatalf("NewRedis() error = %v", err)
	}
	defer r.Close()

	cred := entity.TOTPCredential{Secret: "JBSWY3DPEHPK3PXP", Verified: false}
	if err := r.PutTOTP(ctx, "user@example.com", cred); err != nil {
		t.Fatalf("PutTOTP() error = %v", err)
	}

	got, err := r.GetTOTP(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("GetTOTP() error = %v", err)
	}
	if got.Secret != cred.Secret || got.Verified {
		t.Errorf("GetTOTP() = %+v, want %+v", got, cred)
	}

	cred.Verified = true
	if err := r.PutTOTP(ctx, "user@example.com", cred); err != nil {
		t.Fatalf("PutTOTP() overwrite error = %v", err)
	}

	got, err = r.GetTOTP(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("GetTOTP() error = %v", err)
	}
	if !got.Verified {
		t.Errorf("GetTOTP() verified = false, want true after overwrite")
	}

	list, err := r.ListTOTP(ctx)
	if err != nil {
		t.Fatalf("ListTOTP() error = %v", err)
	}
	if _, ok := list["user@example.com"]; !ok {
		t.Errorf("ListTOTP() = %v, want entry for user@example.com", list)
	}
}
