package token_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/project-sync-web/internal/errors"
	"github.com/jrsteele09/project-sync-web/token"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()
	raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return raw
}

func TestFileRepo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "token")
	repo, err := token.NewFileRepo(path, "local-secret")
	require.NoError(t, err)

	_, err = repo.Load()
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, repo.Save("opaque-token-value"))
	got, err := repo.Load()
	require.NoError(t, err)
	require.Equal(t, "opaque-token-value", got)

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(onDisk), "opaque-token-value")

	require.NoError(t, repo.Delete())
	require.NoError(t, repo.Delete())
	_, err = repo.Load()
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFileRepo_WrongSecret(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	writer, err := token.NewFileRepo(path, "secret-a")
	require.NoError(t, err)
	require.NoError(t, writer.Save("value"))

	reader, err := token.NewFileRepo(path, "secret-b")
	require.NoError(t, err)
	_, err = reader.Load()
	require.ErrorIs(t, err, token.ErrCorruptCache)
}

func TestFileRepo_Truncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("short"), 0o600))

	repo, err := token.NewFileRepo(path, "s")
	require.NoError(t, err)
	_, err = repo.Load()
	require.ErrorIs(t, err, token.ErrCorruptCache)
}

func TestNewFileRepo_RequiresArgs(t *testing.T) {
	_, err := token.NewFileRepo("", "s")
	require.Error(t, err)
	_, err = token.NewFileRepo("/tmp/x", "")
	require.Error(t, err)
}

func TestInspect(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	raw := signedToken(t, jwtlib.MapClaims{"sub": "u-1", "role": "manager", "exp": exp.Unix()})

	info := token.Inspect(raw)
	require.True(t, info.JWT)
	require.Equal(t, "u-1", info.Subject)
	require.Equal(t, "manager", info.Role)
	require.True(t, info.ExpiresAt.Equal(exp))
	require.False(t, info.Expired(time.Now()))
	require.True(t, info.Expired(exp.Add(time.Second)))

	t.Run("opaque token never expires locally", func(t *testing.T) {
		info := token.Inspect("not-a-jwt")
		require.False(t, info.JWT)
		require.False(t, info.Expired(time.Now()))
	})

	t.Run("oauth2 token carries expiry", func(t *testing.T) {
		tok := token.OAuth2Token(raw)
		require.Equal(t, "Bearer", tok.TokenType)
		require.True(t, tok.Expiry.Equal(exp))
		require.True(t, tok.Valid())
	})
}
