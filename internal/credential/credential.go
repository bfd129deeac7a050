// File: internal/credential/credential.go
package credential

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gopkg.in/yaml.v3"
)

// ErrNoCredential means no usable token is held: none saved, empty, or expired
var ErrNoCredential = errors.New("no valid credential, run 'strata auth set-token'")

// Accessor supplies the current bearer token. Implementations are pure reads
type Accessor interface {
	Token() (string, error)
}

// Static serves a fixed token, typically from STRATA_TOKEN
type Static string

func (s Static) Token() (string, error) {
	if s == "" {
		return "", ErrNoCredential
	}
	return string(s), nil
}

// Credential is the on-disk record written by 'auth set-token'
type Credential struct {
	Token     string    `yaml:"token"`
	SavedAt   time.Time `yaml:"saved_at"`
	ExpiresAt time.Time `yaml:"expires_at"`
}

// Expired reports whether the credential is past its expiry at now
func (c Credential) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// FileStore keeps a single credential in a YAML file readable only by its owner
type FileStore struct {
	path   string
	parser *jwt.Parser
	now    func() time.Time
}

func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:   path,
		parser: jwt.NewParser(),
		now:    time.Now,
	}
}

func (s *FileStore) Path() string {
	return s.path
}

// Load reads the stored credential as-is, without checking expiry
func (s *FileStore) Load() (Credential, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Credential{}, ErrNoCredential
		}
		return Credential{}, fmt.Errorf("failed to read credentials file: %w", err)
	}

	var cred Credential
	if err := yaml.Unmarshal(data, &cred); err != nil {
		return Credential{}, fmt.Errorf("failed to parse credentials file: %w", err)
	}
	return cred, nil
}

// Token returns the stored token if it is present and neither the stored expiry nor a JWT exp claim has passed
func (s *FileStore) Token() (string, error) {
	cred, err := s.Load()
	if err != nil {
		return "", err
	}
	if cred.Token == "" {
		return "", ErrNoCredential
	}

	now := s.now()
	if cred.Expired(now) {
		return "", ErrNoCredential
	}
	if exp, ok := s.jwtExpiry(cred.Token); ok && !now.Before(exp) {
		return "", ErrNoCredential
	}
	return cred.Token, nil
}

// Save stores token with an expiry of now+ttl, shortened to the JWT exp claim when that comes first
func (s *FileStore) Save(token string, ttl time.Duration) (Credential, error) {
	if token == "" {
		return Credential{}, errors.New("token cannot be empty")
	}

	now := s.now()
	cred := Credential{Token: token, SavedAt: now.UTC()}
	if ttl > 0 {
		cred.ExpiresAt = now.Add(ttl).UTC()
	}
	if exp, ok := s.jwtExpiry(token); ok && (cred.ExpiresAt.IsZero() || exp.Before(cred.ExpiresAt)) {
		cred.ExpiresAt = exp.UTC()
	}

	data, err := yaml.Marshal(cred)
	if err != nil {
		return Credential{}, fmt.Errorf("failed to marshal credential: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return Credential{}, fmt.Errorf("failed to create credentials directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return Credential{}, fmt.Errorf("failed to write credentials file: %w", err)
	}
	// WriteFile keeps the mode of an existing file
	if err := os.Chmod(s.path, 0o600); err != nil {
		return Credential{}, fmt.Errorf("failed to restrict credentials file: %w", err)
	}
	return cred, nil
}

// Clear removes the stored credential. Clearing an absent credential is not an error
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove credentials file: %w", err)
	}
	return nil
}

// jwtExpiry reads the exp claim without verifying the signature; the server is the verifier
func (s *FileStore) jwtExpiry(token string) (time.Time, bool) {
	parsed, _, err := s.parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
