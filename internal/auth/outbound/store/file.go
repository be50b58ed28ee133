package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/shandysiswandi/passless/internal/auth/entity"
	"github.com/shandysiswandi/passless/internal/pkg/clock"
	"github.com/shandysiswandi/passless/internal/pkg/goerror"
	"go.uber.org/atomic"
)

const (
	otpSnapshotFile  = "otp-store.json"
	totpSnapshotFile = "totp-store.json"

	snapshotFileMode fs.FileMode = 0o600
	snapshotDirMode  fs.FileMode = 0o750
)

// File is a Store backed by in-memory maps with JSON snapshots on disk.
//
// Every mutation rewrites the full snapshot for the affected credential type,
// so a crash loses at most the mutation in flight. A single mutex serializes
// all access; the data set is a handful of demo logins, not a hot path.
type File struct {
	mu    sync.Mutex
	otps  map[string]entity.OTPCredential
	totps map[string]entity.TOTPCredential

	otpPath  string
	totpPath string
	clock    clock.Clocker

	persists        atomic.Int64
	persistFailures atomic.Int64
}

// FileConfig configures the file driver.
type FileConfig struct {
	// Dir is the directory holding the snapshot files. Created if missing.
	Dir string
	// Clock supplies the current time for load-time expiry filtering.
	// Defaults to the real clock.
	Clock clock.Clocker
}

// NewFile constructs a File store and loads existing snapshots.
//
// Numeric codes already past their expiry are dropped during load; they could
// never verify successfully and would only clutter the snapshot. Authenticator
// enrollments are long-lived and load as-is.
func NewFile(cfg FileConfig) (*File, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "data"
	}

	if err := os.MkdirAll(dir, snapshotDirMode); err != nil {
		return nil, fmt.Errorf("store: create snapshot dir: %w", err)
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	f := &File{
		otps:     make(map[string]entity.OTPCredential),
		totps:    make(map[string]entity.TOTPCredential),
		otpPath:  filepath.Join(dir, otpSnapshotFile),
		totpPath: filepath.Join(dir, totpSnapshotFile),
		clock:    clk,
	}

	if err := loadSnapshot(f.otpPath, &f.otps); err != nil {
		return nil, err
	}
	if err := loadSnapshot(f.totpPath, &f.totps); err != nil {
		return nil, err
	}

	now := clk.Now()
	dropped := 0
	for id, cred := range f.otps {
		if cred.Expired(now) {
			delete(f.otps, id)
			dropped++
		}
	}
	if dropped > 0 {
		slog.Info("store: dropped expired codes during load", "count", dropped)
		if err := f.persistOTP(); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// GetOTP returns the pending code for an identifier.
func (f *File) GetOTP(_ context.Context, identifier string) (*entity.OTPCredential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cred, ok := f.otps[identifier]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &cred, nil
}

// PutOTP stores a pending code, replacing any previous one for the identifier.
func (f *File) PutOTP(_ context.Context, identifier string, cred entity.OTPCredential) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.otps[identifier] = cred
	return f.persistOTP()
}

// DeleteOTP removes the pending code for an identifier. Deleting an absent
// record is not an error.
func (f *File) DeleteOTP(_ context.Context, identifier string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.otps[identifier]; !ok {
		return nil
	}

	delete(f.otps, identifier)
	return f.persistOTP()
}

// ListOTP returns a copy of all pending codes.
func (f *File) ListOTP(_ context.Context) (map[string]entity.OTPCredential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[string]entity.OTPCredential, len(f.otps))
	for id, cred := range f.otps {
		out[id] = cred
	}
	return out, nil
}

// GetTOTP returns the authenticator enrollment for an identifier.
func (f *File) GetTOTP(_ context.Context, identifier string) (*entity.TOTPCredential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cred, ok := f.totps[identifier]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &cred, nil
}

// PutTOTP stores an authenticator enrollment, replacing any previous one.
func (f *File) PutTOTP(_ context.Context, identifier string, cred entity.TOTPCredential) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.totps[identifier] = cred
	return f.persistTOTP()
}

// ListTOTP returns a copy of all authenticator enrollments.
func (f *File) ListTOTP(_ context.Context) (map[string]entity.TOTPCredential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[string]entity.TOTPCredential, len(f.totps))
	for id, cred := range f.totps {
		out[id] = cred
	}
	return out, nil
}

// Stats reports snapshot write counters.
func (f *File) Stats() Stats {
	return Stats{
		Persists:        f.persists.Load(),
		PersistFailures: f.persistFailures.Load(),
	}
}

// Close implements io.Closer. Snapshots are written on every mutation, so
// there is nothing left to flush.
func (f *File) Close() error {
	return nil
}

func (f *File) persistOTP() error {
	return f.persist(f.otpPath, f.otps)
}

func (f *File) persistTOTP() error {
	return f.persist(f.totpPath, f.totps)
}

func (f *File) persist(path string, data any) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		f.persistFailures.Inc()
		return fmt.Errorf("store: marshal snapshot: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, snapshotFileMode); err != nil {
		f.persistFailures.Inc()
		return fmt.Errorf("store: write snapshot: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		f.persistFailures.Inc()
		return fmt.Errorf("store: replace snapshot: %w", err)
	}

	f.persists.Inc()
	return nil
}

func loadSnapshot(path string, dst any) error {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("store: read snapshot: %w", err)
	}

	if len(raw) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("store: parse snapshot %s: %w", filepath.Base(path), err)
	}
	return nil
}
