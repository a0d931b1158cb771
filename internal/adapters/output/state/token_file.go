package state

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"nativebridge/internal/domain"
	"nativebridge/internal/ports/output"

	"github.com/gofrs/flock"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Compile-time check to ensure TokenFile implements TokenSource interface
var _ output.TokenSource = (*TokenFile)(nil)

// DefaultLockTimeout is the default timeout for acquiring the state file lock.
const DefaultLockTimeout = 5 * time.Second

// TokenFile struct - Output adapter persisting the current messaging token as
// YAML so it survives restarts. Access is serialized with a file lock.
type TokenFile struct {
	path        string
	lockTimeout time.Duration
}

type tokenState struct {
	Token     string    `yaml:"token"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

// NewTokenFile func - Creates the token source at path
func NewTokenFile(path string) (*TokenFile, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: state file path is required", domain.ErrInvalidArgument)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}
	return &TokenFile{path: path, lockTimeout: DefaultLockTimeout}, nil
}

// GetToken reads the stored token
func (f *TokenFile) GetToken(ctx context.Context) (string, error) {
	var st tokenState
	err := f.withLock(ctx, true, func() error {
		data, err := os.ReadFile(f.path)
		if err != nil {
			return err
		}
		return yaml.Unmarshal(data, &st)
	})
	if errors.Is(err, os.ErrNotExist) || (err == nil && st.Token == "") {
		return "", domain.ErrTokenUnavailable
	}
	if err != nil {
		return "", fmt.Errorf("reading token state: %w", err)
	}
	return st.Token, nil
}

// SetToken replaces the stored token
func (f *TokenFile) SetToken(ctx context.Context, token string) error {
	data, err := yaml.Marshal(tokenState{Token: token, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("encoding token state: %w", err)
	}
	err = f.withLock(ctx, false, func() error {
		tmp := f.path + ".tmp"
		if err := os.WriteFile(tmp, data, 0o600); err != nil {
			return err
		}
		return os.Rename(tmp, f.path)
	})
	if err != nil {
		return fmt.Errorf("writing token state: %w", err)
	}
	logrus.Debugf("Messaging token stored in %s", f.path)
	return nil
}

// withLock acquires a lock on path.lock, runs fn, then releases
func (f *TokenFile) withLock(ctx context.Context, shared bool, fn func() error) error {
	lockPath := f.path + ".lock"
	fileLock := flock.New(lockPath)

	ctx, cancel := context.WithTimeout(ctx, f.lockTimeout)
	defer cancel()

	var (
		locked bool
		err    error
	)
	if shared {
		locked, err = fileLock.TryRLockContext(ctx, 50*time.Millisecond)
	} else {
		locked, err = fileLock.TryLockContext(ctx, 50*time.Millisecond)
	}
	if err != nil {
		return fmt.Errorf("acquiring lock on %s: %w", lockPath, err)
	}
	if !locked {
		return fmt.Errorf("timed out acquiring lock on %s", lockPath)
	}
	defer fileLock.Unlock()

	return fn()
}
