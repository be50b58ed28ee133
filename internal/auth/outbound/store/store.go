// Package store persists login credentials keyed by normalized identifier.
//
// Two drivers are available: a file driver that keeps everything in memory and
// rewrites JSON snapshots on every mutation, and a Redis driver for setups
// where the process is not the only reader.
package store

import (
	"context"
	"errors"
	"io"

	"github.com/shandysiswandi/passless/internal/auth/entity"
	"github.com/shandysiswandi/passless/internal/pkg/config"
)

// Driver names accepted by NewFromDriver.
const (
	DriverFile  = "file"
	DriverRedis = "redis"
)

// ErrUnknownDriver is returned when the configured store driver is not recognized.
var ErrUnknownDriver = errors.New("unknown store driver")

// Store is the credential persistence contract used by the auth use cases.
//
// All identifiers passed in are expected to be normalized already. GetOTP and
// GetTOTP return goerror.ErrNotFound when no record exists.
type Store interface {
	io.Closer

	GetOTP(ctx context.Context, identifier string) (*entity.OTPCredential, error)
	PutOTP(ctx context.Context, identifier string, cred entity.OTPCredential) error
	DeleteOTP(ctx context.Context, identifier string) error
	ListOTP(ctx context.Context) (map[string]entity.OTPCredential, error)

	GetTOTP(ctx context.Context, identifier string) (*entity.TOTPCredential, error)
	PutTOTP(ctx context.Context, identifier string, cred entity.TOTPCredential) error
	ListTOTP(ctx context.Context) (map[string]entity.TOTPCredential, error)
}

// Stats reports persistence activity for drivers that track it.
type Stats struct {
	// Persists is the number of snapshot writes since startup.
	Persists int64 `json:"persists"`
	// PersistFailures is the number of snapshot writes that failed.
	PersistFailures int64 `json:"persist_failures"`
}

// StatsReporter is implemented by drivers that expose persistence counters.
type StatsReporter interface {
	Stats() Stats
}

// NewFromDriver builds a Store for the driver named in configuration.
func NewFromDriver(ctx context.Context, cfg config.Config) (Store, error) {
	switch driver := cfg.GetString("store.driver"); driver {
	case DriverRedis:
		return NewRedis(ctx, RedisConfig{
			URL:    cfg.GetString("store.redis.url"),
			Prefix: cfg.GetString("store.redis.prefix"),
		})
	case DriverFile, "":
		return NewFile(FileConfig{Dir: cfg.GetString("store.file.dir")})
	default:
		return nil, ErrUnknownDriver
	}
}
