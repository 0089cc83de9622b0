// Package config handles loading, parsing, and validating application configuration.
// Settings are layered: struct defaults, then an optional YAML file, then environment
// variables. The Sonarr API key may also come from the OS keyring.
// file: internal/config/config.go.
package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dkoosis/sonarr-mcp/internal/logging"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// PathEnvVar names the environment variable that points at an optional YAML config file.
const PathEnvVar = "SONARR_MCP_CONFIG"

// SonarrConfig is the connection descriptor for the upstream Sonarr instance.
// It is immutable once handed to the API client.
type SonarrConfig struct {
	// URL is the Sonarr base URL, without the /api/v3 suffix. Required.
	URL string `koanf:"url" yaml:"url" validate:"required,http_url"`
	// APIKey is forwarded as the X-Api-Key header. Required (env, file or keyring).
	APIKey string `koanf:"api_key" yaml:"api_key" validate:"required"`
	// TimeoutSeconds bounds every HTTP request.
	TimeoutSeconds int `koanf:"timeout_seconds" yaml:"timeout_seconds" validate:"min=1,max=300"`
	// MaxRetries is the number of extra attempts for retryable failures.
	MaxRetries int `koanf:"max_retries" yaml:"max_retries" validate:"min=0,max=10"`
	// VerifyTLS controls certificate validation for this client only.
	VerifyTLS bool `koanf:"verify_tls" yaml:"verify_tls"`
}

// ServerConfig contains settings specific to the MCP server component.
type ServerConfig struct {
	// Name is reported to MCP clients as the implementation name.
	Name string `koanf:"name" yaml:"name" validate:"required"`
	// MetricsAddr enables a Prometheus /metrics listener when non-empty (e.g. "127.0.0.1:9090").
	MetricsAddr string `koanf:"metrics_addr" yaml:"metrics_addr" validate:"omitempty,hostname_port"`
}

// LoggingConfig selects log verbosity and encoding. Logs always go to stderr.
type LoggingConfig struct {
	Level  string `koanf:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" yaml:"format" validate:"oneof=json console"`
}

// FeatureConfig toggles which MCP surfaces are mounted.
type FeatureConfig struct {
	Tools     bool `koanf:"tools" yaml:"tools"`
	Resources bool `koanf:"resources" yaml:"resources"`
}

// Config is the root configuration structure.
type Config struct {
	Sonarr   SonarrConfig  `koanf:"sonarr" yaml:"sonarr"`
	Server   ServerConfig  `koanf:"server" yaml:"server"`
	Logging  LoggingConfig `koanf:"logging" yaml:"logging"`
	Features FeatureConfig `koanf:"features" yaml:"features"`
}

// KeyLookup resolves a stored API key for a Sonarr base URL.
// An empty string with a nil error means no key is stored.
type KeyLookup interface {
	Lookup(baseURL string) (string, error)
}

// DefaultConfig returns a configuration populated with default values.
func DefaultConfig() *Config {
	return &Config{
		Sonarr: SonarrConfig{
			TimeoutSeconds: 30,
			MaxRetries:     3,
			VerifyTLS:      true,
		},
		Server: ServerConfig{
			Name: "sonarr-mcp",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Features: FeatureConfig{
			Tools:     true,
			Resources: true,
		},
	}
}

// envMappings maps recognized environment variables to koanf paths.
var envMappings = map[string]string{
	"SONARR_URL":                  "sonarr.url",
	"SONARR_API_KEY":              "sonarr.api_key",
	"SONARR_TIMEOUT":              "sonarr.timeout_seconds",
	"SONARR_MAX_RETRIES":          "sonarr.max_retries",
	"SONARR_VERIFY_SSL":           "sonarr.verify_tls",
	"LOG_LEVEL":                   "logging.level",
	"LOG_FORMAT":                  "logging.format",
	"SONARR_MCP_SERVER_NAME":      "server.name",
	"SONARR_MCP_METRICS_ADDR":     "server.metrics_addr",
	"SONARR_MCP_ENABLE_TOOLS":     "features.tools",
	"SONARR_MCP_ENABLE_RESOURCES": "features.resources",
}

// envTransform maps an environment variable name to its koanf path.
// Unrecognized variables return "" and are skipped by the provider.
func envTransform(key string) string {
	return envMappings[strings.ToUpper(key)]
}

// envVarFor returns the environment variable that feeds a koanf path, if any.
func envVarFor(path string) string {
	for name, p := range envMappings {
		if p == path {
			return name
		}
	}
	return ""
}

// Load builds the effective configuration. path may be empty, in which case the
// SONARR_MCP_CONFIG environment variable is consulted; a missing file is only an
// error when a path was given explicitly. keys may be nil.
func Load(path string, keys KeyLookup) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load configuration defaults")
	}

	explicit := path != ""
	if !explicit {
		path = os.Getenv(PathEnvVar)
	}
	if path != "" {
		path = expandPath(path)
		if _, statErr := os.Stat(path); statErr == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, errors.Wrapf(err, "failed to parse config file YAML: %s", path)
			}
			logger.Debug("Loaded configuration file.", "path", path)
		} else if explicit {
			return nil, errors.Wrapf(statErr, "failed to read config file: %s", path)
		} else {
			logger.Warn("Config file from environment not found, ignoring.", "envVar", PathEnvVar, "path", path)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load environment variables")
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode configuration")
	}
	cfg.Sonarr.URL = strings.TrimRight(strings.TrimSpace(cfg.Sonarr.URL), "/")

	if cfg.Sonarr.APIKey == "" && keys != nil && cfg.Sonarr.URL != "" {
		key, err := keys.Lookup(cfg.Sonarr.URL)
		switch {
		case err != nil:
			logger.Warn("Could not read API key from keyring.", "error", err)
		case key != "":
			logger.Debug("Using API key from keyring.", "url", cfg.Sonarr.URL)
			cfg.Sonarr.APIKey = key
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Masked returns a copy of the configuration safe to print.
func (c *Config) Masked() *Config {
	clone := *c
	if clone.Sonarr.APIKey != "" {
		clone.Sonarr.APIKey = maskSecret(clone.Sonarr.APIKey)
	}
	return &clone
}

// Host returns the host part of the Sonarr URL, or the raw URL when it cannot be parsed.
func (c SonarrConfig) Host() string {
	u, err := url.Parse(c.URL)
	if err != nil || u.Host == "" {
		return c.URL
	}
	return u.Host
}

func maskSecret(secret string) string {
	if len(secret) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}

// expandPath replaces a leading ~/ with the user's home directory.
func expandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
