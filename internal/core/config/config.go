package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultAPIURL  = "http://127.0.0.1:8000"
	DefaultTimeout = 30 * time.Second
)

type Config struct {
	// APIURL is the base URL of the Career Navigator backend.
	APIURL string

	// RequestTimeout bounds every backend call. Retry is manual: the user
	// triggers the action again after a timeout notice.
	RequestTimeout time.Duration

	// VoiceCommand is an external one-shot transcriber: run, speak, and the
	// transcript arrives on its stdout. Empty means voice input is unavailable.
	VoiceCommand string

	// LogFile receives structured logs; the terminal belongs to the TUI.
	LogFile string
}

type tomlConfig struct {
	APIURL                string `toml:"api_url"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
	VoiceCommand          string `toml:"voice_command"`
	LogFile               string `toml:"log_file"`
}

// Dir returns the canav config directory (~/.config/canav).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "canav"), nil
}

// Load reads config from ~/.config/canav/, falling back to defaults when the
// directory or file is missing.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return LoadFrom("")
	}
	return LoadFrom(dir)
}

// LoadFrom reads config from a specific directory. Tests point this at a
// temp dir instead of the home directory.
func LoadFrom(dir string) (*Config, error) {
	cfg := &Config{
		APIURL:         DefaultAPIURL,
		RequestTimeout: DefaultTimeout,
	}
	if dir != "" {
		cfg.LogFile = filepath.Join(dir, "canav.log")

		tomlPath := filepath.Join(dir, "config.toml")
		if _, err := os.Stat(tomlPath); err == nil {
			var tc tomlConfig
			if _, err := toml.DecodeFile(tomlPath, &tc); err != nil {
				return nil, err
			}
			if tc.APIURL != "" {
				cfg.APIURL = strings.TrimRight(tc.APIURL, "/")
			}
			if tc.RequestTimeoutSeconds > 0 {
				cfg.RequestTimeout = time.Duration(tc.RequestTimeoutSeconds) * time.Second
			}
			cfg.VoiceCommand = tc.VoiceCommand
			if tc.LogFile != "" {
				cfg.LogFile = tc.LogFile
			}
		}
	}

	// Environment overrides win over file values.
	if v := os.Getenv("CANAV_API_URL"); v != "" {
		cfg.APIURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("CANAV_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RequestTimeout = time.Duration(n) * time.Second
		}
	}
	if v := os.Getenv("CANAV_VOICE_COMMAND"); v != "" {
		cfg.VoiceCommand = v
	}

	return cfg, nil
}
