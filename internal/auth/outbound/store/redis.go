package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/passless/internal/auth/entity"
	"github.com/shandysiswandi/passless/internal/pkg/clock"
	"github.com/shandysiswandi/passless/internal/pkg/goerror"
)

// otpTTLGrace keeps an expired code readable for a short window after its
// expiry, so a verify attempt observes the expired state instead of a bare
// not-found before Redis reclaims the key.
const otpTTLGrace = time.Minute

// Redis is a Store backed by a Redis instance.
type Redis struct {
	client *redis.Client
	prefix string
	clock  clock.Clocker
}

// RedisConfig configures the Redis driver.
type RedisConfig struct {
	// URL is a redis:// connection string.
	URL string
	// Prefix namespaces all keys, e.g. "passless:".
	Prefix string
	// Clock supplies the current time for TTL computation. Defaults to the
	// real clock.
	Clock clock.Clocker
}

// NewRedis constructs a Redis store and verifies connectivity.
func NewRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("store: parse redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("store: ping redis: %w", err)
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &Redis{
		client: client,
		prefix: cfg.Prefix,
		clock:  clk,
	}, nil
}

func (r *Redis) otpKey(identifier string) string {
	return r.prefix + "otp:" + identifier
}

func (r *Redis) totpKey(identifier string) string {
	return r.prefix + "totp:" + identifier
}

// GetOTP returns the pending code for an identifier.
func (r *Redis) GetOTP(ctx context.Context, identifier string) (*entity.OTPCredential, error) {
	return getJSON[entity.OTPCredential](ctx, r.client, r.otpKey(identifier))
}

// PutOTP stores a pending code with a TTL slightly past its expiry.
func (r *Redis) PutOTP(ctx context.Context, identifier string, cred entity.OTPCredential) error {
	raw, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("store: marshal otp credential: %w", err)
	}

	ttl := cred.ExpiresAt.Sub(r.clock.Now()) + otpTTLGrace
	if ttl <= 0 {
		ttl = otpTTLGrace
	}

	return r.client.Set(ctx, r.otpKey(identifier), raw, ttl).Err()
}

// DeleteOTP removes the pending code for an identifier.
func (r *Redis) DeleteOTP(ctx context.Context, identifier string) error {
	return r.client.Del(ctx, r.otpKey(identifier)).Err()
}

// ListOTP returns all pending codes.
func (r *Redis) ListOTP(ctx context.Context) (map[string]entity.OTPCredential, error) {
	return listJSON[entity.OTPCredential](ctx, r.client, r.prefix+"otp:")
}

// GetTOTP returns the authenticator enrollment for an identifier.
func (r *Redis) GetTOTP(ctx context.Context, identifier string) (*entity.TOTPCredential, error) {
	return getJSON[entity.TOTPCredential](ctx, r.client, r.totpKey(identifier))
}

// PutTOTP stores an authenticator enrollment without expiry.
func (r *Redis) PutTOTP(ctx context.Context, identifier string, cred entity.TOTPCredential) error {
	raw, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("store: marshal totp credential: %w", err)
	}

	return r.client.Set(ctx, r.totpKey(identifier), raw, 0).Err()
}

// ListTOTP returns all authenticator enrollments.
func (r *Redis) ListTOTP(ctx context.Context) (map[string]entity.TOTPCredential, error) {
	return listJSON[entity.TOTPCredential](ctx, r.client, r.prefix+"totp:")
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}

func getJSON[T any](ctx context.Context, client *redis.Client, key string) (*T, error) {
	raw, err := client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, goerror.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("store: parse credential at %s: %w", key, err)
	}
	return &out, nil
}

func listJSON[T any](ctx context.Context, client *redis.Client, keyPrefix string) (map[string]T, error) {
	out := make(map[string]T)

	iter := client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		raw, err := client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			// Expired between SCAN and GET.
			continue
		}
		if err != nil {
			return nil, err
		}

		var cred T
		if err := json.Unmarshal(raw, &cred); err != nil {
			return nil, fmt.Errorf("store: parse credential at %s: %w", key, err)
		}

		out[strings.TrimPrefix(key, keyPrefix)] = cred
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
