// File: internal/credential/credential_test.go

package credential

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, now time.Time) *FileStore {
	t.Helper()
	s := NewFileStore(filepath.Join(t.TempDir(), "nested", "credentials.yaml"))
	s.now = func() time.Time { return now }
	return s
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": exp.Unix(),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestMissingFileIsNoCredential(t *testing.T) {
	s := newStore(t, time.Now())
	_, err := s.Token()
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestSaveAndReadBack(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s := newStore(t, now)

	cred, err := s.Save("opaque-token", 2*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, now.Add(2*time.Hour), cred.ExpiresAt)

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	token, err := s.Token()
	require.NoError(t, err)
	assert.Equal(t, "opaque-token", token)
}

func TestStoredExpiryIsEnforced(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s := newStore(t, now)
	_, err := s.Save("opaque-token", 2*time.Hour)
	require.NoError(t, err)

	s.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, err = s.Token()
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestExpiredJWTIsNoCredential(t *testing.T) {
	now := time.Now()
	s := newStore(t, now)
	_, err := s.Save(signedToken(t, now.Add(time.Minute)), 0)
	require.NoError(t, err)

	_, err = s.Token()
	require.NoError(t, err)

	s.now = func() time.Time { return now.Add(2 * time.Minute) }
	_, err = s.Token()
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestSaveUsesEarlierJWTExpiry(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s := newStore(t, now)

	cred, err := s.Save(signedToken(t, now.Add(30*time.Minute)), 2*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, now.Add(30*time.Minute), cred.ExpiresAt)
}

func TestClear(t *testing.T) {
	s := newStore(t, time.Now())
	require.NoError(t, s.Clear())

	_, err := s.Save("tok", time.Hour)
	require.NoError(t, err)
	require.NoError(t, s.Clear())

	_, err = s.Token()
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestStatic(t *testing.T) {
	_, err := Static("").Token()
	assert.ErrorIs(t, err, ErrNoCredential)

	token, err := Static("abc").Token()
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}
