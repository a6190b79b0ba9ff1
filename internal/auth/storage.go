package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const credentialsFile = "credentials"

// ErrNoCredential is returned when no session is active.
var ErrNoCredential = errors.New("no credential stored; run `trustlens login` first")

// Store persists the bearer credential under the config directory
// (~/.trustlens/credentials, 0600).
type Store struct {
	dir string
}

// NewStore creates a credential store rooted at dir
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir returns the standard TrustLens config directory
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".trustlens"), nil
}

func (s *Store) path() string {
	return filepath.Join(s.dir, credentialsFile)
}

// Save writes the credential to disk
func (s *Store) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("empty credential")
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(s.path(), []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write credential: %w", err)
	}
	return nil
}

// Load reads the stored credential. Returns ErrNoCredential when absent.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoCredential
		}
		return "", fmt.Errorf("read credential: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoCredential
	}
	return token, nil
}

// Delete removes the stored credential. Deleting an absent credential is not
// an error.
func (s *Store) Delete() error {
	if err := os.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credential: %w", err)
	}
	return nil
}

// Source builds a TokenSource over the store. The TRUSTLENS_API_TOKEN
// environment variable, when set, wins over the stored credential.
func (s *Store) Source() TokenSource {
	return &storedSource{store: s}
}

type storedSource struct {
	store *Store
}

func (src *storedSource) Active() bool {
	if os.Getenv(EnvToken) != "" {
		return true
	}
	_, err := src.store.Load()
	return err == nil
}

func (src *storedSource) Token(ctx context.Context) (string, error) {
	if token := os.Getenv(EnvToken); token != "" {
		return token, nil
	}
	return src.store.Load()
}

// StaticSource is a fixed-token source, used in tests and for one-off
// credentials passed on the command line.
type StaticSource string

func (s StaticSource) Active() bool { return s != "" }

func (s StaticSource) Token(ctx context.Context) (string, error) {
	if s == "" {
		return "", ErrNoCredential
	}
	return string(s), nil
}
