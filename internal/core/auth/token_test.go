package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestToken_EnvWins(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Save(dir, "from-file"))
	t.Setenv(TokenEnv, "from-env")

	got, err := Token(dir)
	require.NoError(t, err)
	require.Equal(t, "from-env", got)
}

func TestToken_File(t *testing.T) {
	t.Setenv(TokenEnv, "")
	dir := t.TempDir()
	require.NoError(t, Save(dir, "  abc123\n"))

	got, err := Token(dir)
	require.NoError(t, err)
	require.Equal(t, "abc123", got)
}

func TestToken_Missing(t *testing.T) {
	t.Setenv(TokenEnv, "")
	_, err := Token(t.TempDir())
	require.ErrorIs(t, err, ErrNoToken)
}

func TestExpired(t *testing.T) {
	now := time.Now()

	if Expired(signedToken(t, now.Add(time.Hour)), now) {
		t.Error("future exp reported expired")
	}
	if !Expired(signedToken(t, now.Add(-time.Hour)), now) {
		t.Error("past exp not reported expired")
	}
	// Opaque tokens are the backend's problem, not ours.
	if Expired("not-a-jwt", now) {
		t.Error("opaque token reported expired")
	}
}
