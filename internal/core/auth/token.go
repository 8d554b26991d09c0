package auth

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenEnv overrides the token file when set.
const TokenEnv = "CANAV_TOKEN"

const tokenFile = "token"

// ErrNoToken means the user has not logged in; callers render the login
// prompt instead of touching the network.
var ErrNoToken = errors.New("no access token")

// Token returns the bearer credential from the environment or from the
// token file under dir.
func Token(dir string) (string, error) {
	if v := strings.TrimSpace(os.Getenv(TokenEnv)); v != "" {
		return v, nil
	}
	data, err := os.ReadFile(filepath.Join(dir, tokenFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoToken
		}
		return "", err
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// Save writes the token file under dir, creating the directory if needed.
func Save(dir, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrNoToken
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, tokenFile), []byte(token+"\n"), 0o600)
}

// Expired reports whether the token is a JWT whose exp claim has passed.
// The signature is not checked here; the backend does that. Opaque tokens
// (anything that doesn't parse as a JWT, or a JWT without exp) are passed
// through and left to the backend to reject.
func Expired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
