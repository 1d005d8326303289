package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Server contains HTTP listener configuration.
type Server struct {
	Bind string `toml:"bind"`
	// BaseURL is prepended to download links. When empty the request Host
	// header is used instead.
	BaseURL string `toml:"base_url"`
}

// Paths contains directory configuration.
type Paths struct {
	DownloadDir string `toml:"download_dir"`
	LogDir      string `toml:"log_dir"`
}

// Pipeline contains configuration for the conversion pipeline.
type Pipeline struct {
	YtdlpBinary         string `toml:"ytdlp_binary"`
	FetchTimeoutSeconds int    `toml:"fetch_timeout_seconds"`
	MaxConcurrent       int    `toml:"max_concurrent"`
	MinFreeMB           int64  `toml:"min_free_mb"`
}

// Retention contains configuration for the working-directory sweeper.
type Retention struct {
	SweepIntervalHours int `toml:"sweep_interval_hours"`
	MaxAgeHours        int `toml:"max_age_hours"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// History contains configuration for the conversion ledger.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Config is the root configuration document.
type Config struct {
	Server    Server    `toml:"server"`
	Paths     Paths     `toml:"paths"`
	Pipeline  Pipeline  `toml:"pipeline"`
	Retention Retention `toml:"retention"`
	Logging   Logging   `toml:"logging"`
	History   History   `toml:"history"`
}

// DefaultConfigPath returns the canonical location of the config file.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "tubeconv", "config.toml"), nil
}

// Load reads the configuration from path (or the default location when path
// is empty), applies environment overrides, and normalizes the result. A
// missing file is not an error; defaults are used.
func Load(path string) (*Config, string, error) {
	resolved := strings.TrimSpace(path)
	if resolved == "" {
		def, err := DefaultConfigPath()
		if err != nil {
			return nil, "", err
		}
		resolved = def
	}
	resolved = ExpandPath(resolved)

	cfg := Default()
	data, err := os.ReadFile(resolved)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, resolved, fmt.Errorf("parse %s: %w", resolved, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// Defaults apply.
	default:
		return nil, resolved, fmt.Errorf("read %s: %w", resolved, err)
	}

	applyEnvOverrides(&cfg)
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, resolved, err
	}
	return &cfg, resolved, nil
}

// WriteSample writes the embedded sample configuration to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	path = ExpandPath(path)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

// Sample returns the embedded sample configuration document.
func Sample() string {
	return sampleConfig
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	path = strings.TrimSpace(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("TUBECONV_BIND")); v != "" {
		cfg.Server.Bind = v
	} else if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Server.Bind = ":" + strings.TrimPrefix(port, ":")
	}
	if v := strings.TrimSpace(os.Getenv("TUBECONV_BASE_URL")); v != "" {
		cfg.Server.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("TUBECONV_DOWNLOAD_DIR")); v != "" {
		cfg.Paths.DownloadDir = v
	}
	if v := strings.TrimSpace(os.Getenv("TUBECONV_YTDLP")); v != "" {
		cfg.Pipeline.YtdlpBinary = v
	}
	if v := strings.TrimSpace(os.Getenv("TUBECONV_MAX_CONCURRENT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Pipeline.MaxConcurrent = n
		}
	}
}
