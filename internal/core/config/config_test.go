package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, DefaultAPIURL, cfg.APIURL)
	require.Equal(t, DefaultTimeout, cfg.RequestTimeout)
	require.Empty(t, cfg.VoiceCommand)
	require.NotEmpty(t, cfg.LogFile)
}

func TestLoadFrom_TOML(t *testing.T) {
	dir := t.TempDir()
	content := `
api_url = "https://career.example.com/"
request_timeout_seconds = 5
voice_command = "transcribe --once"
log_file = "/tmp/canav-test.log"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644))

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)
	require.Equal(t, "https://career.example.com", cfg.APIURL)
	require.Equal(t, 5*time.Second, cfg.RequestTimeout)
	require.Equal(t, "transcribe --once", cfg.VoiceCommand)
	require.Equal(t, "/tmp/canav-test.log", cfg.LogFile)
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	content := `api_url = "https://file.example.com"`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644))

	t.Setenv("CANAV_API_URL", "https://env.example.com/")
	t.Setenv("CANAV_TIMEOUT_SECONDS", "7")

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)
	require.Equal(t, "https://env.example.com", cfg.APIURL)
	require.Equal(t, 7*time.Second, cfg.RequestTimeout)
}

func TestLoadFrom_BadTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("api_url = [broken"), 0o644))

	_, err := LoadFrom(dir)
	require.Error(t, err)
}
