// Package config loads gardenview settings from ~/.gardenview/config.yaml,
// a .env file and GARDENVIEW_* environment variables, in that order of
// increasing precedence.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fentz26/gardenview/internal/codec"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DirName is the per-user directory holding config and history.
const DirName = ".gardenview"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "GARDENVIEW_"

// Config holds gardenview configuration.
type Config struct {
	// Listen is the HTTP viewer's listen address.
	Listen string `yaml:"listen"`
	// BaseURL is the viewer address used when building links.
	BaseURL string `yaml:"base_url"`
	// MaxDecodedBytes caps the inflated size of a payload.
	MaxDecodedBytes int64         `yaml:"max_decoded_bytes"`
	History         HistoryConfig `yaml:"history"`
	Log             LogConfig     `yaml:"log"`
	CORS            CORSConfig    `yaml:"cors"`
}

// HistoryConfig controls the local view history.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LogConfig controls logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is text or json.
	Format string `yaml:"format"`
	// File receives log output when set. The TUI always logs to a file.
	File string `yaml:"file"`
}

// CORSConfig lists origins allowed to call the HTTP API.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	dir := defaultDir()
	return &Config{
		Listen:          "127.0.0.1:7467",
		BaseURL:         "http://127.0.0.1:7467/",
		MaxDecodedBytes: codec.DefaultMaxDecodedBytes,
		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join(dir, "history.db"),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
	}
}

func defaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DirName
	}
	return filepath.Join(home, DirName)
}

// DefaultPath returns ~/.gardenview/config.yaml.
func DefaultPath() string {
	return filepath.Join(defaultDir(), "config.yaml")
}

// LoadConfig loads configuration from a YAML file. A missing file yields the
// defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Load reads the YAML file at path (the home config when empty), then
// applies overrides from envFile (skipped when missing) and the process
// environment.
func Load(path, envFile string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	fileEnv := map[string]string{}
	if envFile != "" {
		fileEnv, err = godotenv.Read(envFile)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading env file: %w", err)
			}
			fileEnv = map[string]string{}
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from GARDENVIEW_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		return strings.TrimSpace(v), ok
	}

	if v, ok := get("LISTEN"); ok {
		c.Listen = v
	}
	if v, ok := get("BASE_URL"); ok {
		c.BaseURL = v
	}
	if v, ok := get("MAX_DECODED_BYTES"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sMAX_DECODED_BYTES: %w", EnvPrefix, err)
		}
		c.MaxDecodedBytes = n
	}
	if v, ok := get("HISTORY"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sHISTORY: %w", EnvPrefix, err)
		}
		c.History.Enabled = b
	}
	if v, ok := get("HISTORY_PATH"); ok {
		c.History.Path = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := get("LOG_FORMAT"); ok {
		c.Log.Format = v
	}
	if v, ok := get("LOG_FILE"); ok {
		c.Log.File = v
	}
	if v, ok := get("CORS_ORIGINS"); ok {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.CORS.AllowedOrigins = origins
	}
	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen cannot be empty")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute URL, got %q", c.BaseURL)
	}
	if c.MaxDecodedBytes <= 0 {
		return fmt.Errorf("max_decoded_bytes must be positive, got %d", c.MaxDecodedBytes)
	}
	if c.History.Enabled && c.History.Path == "" {
		return fmt.Errorf("history.path cannot be empty when history is enabled")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// SaveConfig writes configuration to a YAML file, creating parent
// directories if needed.
func SaveConfig(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
