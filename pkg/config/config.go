package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv = "PSGNEWS_CONFIG"
	endpointEnv   = "PSGNEWS_ENDPOINT"
	logLevelEnv   = "LOG_LEVEL"

	DefaultEndpoint         = "http://10.192.14.244:3000/news"
	DefaultPlaceholderImage = "https://via.placeholder.com/400x300"
)

// Config holds every setting the reader needs at start-up.
type Config struct {
	Endpoint         string        `yaml:"endpoint"`
	PlaceholderImage string        `yaml:"placeholderImage"`
	Logging          LoggingConfig `yaml:"logging"`
	WebView          WebViewConfig `yaml:"webview"`
}

// LoggingConfig controls the diagnostic log file.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// WebViewConfig tunes how article pages are fetched for the content view.
type WebViewConfig struct {
	Timeout     time.Duration `yaml:"timeout"`
	MaxBodySize int64         `yaml:"maxBodySize"`
	UserAgent   string        `yaml:"userAgent"`
}

// Load reads the YAML file at path (or $PSGNEWS_CONFIG when path is empty), merges it
// over the defaults and applies environment overrides. An unreadable or invalid file
// is reported through warn and otherwise ignored.
func Load(path string, warn func(msg string, args ...any)) Config {
	if warn == nil {
		warn = slog.Warn
	}
	cfg := Default()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		fileCfg, err := readFile(path)
		if err != nil {
			warn("config: falling back to defaults", "path", path, "error", err)
		} else {
			cfg = merge(cfg, fileCfg)
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Endpoint:         DefaultEndpoint,
		PlaceholderImage: DefaultPlaceholderImage,
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(os.TempDir(), "psgnews.log"),
		},
		WebView: WebViewConfig{
			Timeout:     15 * time.Second,
			MaxBodySize: 5 << 20,
			UserAgent:   "psgnews/1.0",
		},
	}
}

func readFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
		return Config{}, fmt.Errorf("cannot parse %s: %w", path, err)
	}
	return fileCfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(endpointEnv); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func merge(base, override Config) Config {
	if override.Endpoint != "" {
		base.Endpoint = override.Endpoint
	}
	if override.PlaceholderImage != "" {
		base.PlaceholderImage = override.PlaceholderImage
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.File != "" {
		base.Logging.File = override.Logging.File
	}

	if override.WebView.Timeout > 0 {
		base.WebView.Timeout = override.WebView.Timeout
	}
	if override.WebView.MaxBodySize > 0 {
		base.WebView.MaxBodySize = override.WebView.MaxBodySize
	}
	if override.WebView.UserAgent != "" {
		base.WebView.UserAgent = override.WebView.UserAgent
	}

	return base
}
