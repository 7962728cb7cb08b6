// Package config loads the dashboard configuration: the aggregator
// endpoint the backend collaborator talks to, plus output preferences.
// Configuration is YAML on disk with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variable overrides.
const (
	// EndpointEnvVar overrides the aggregator endpoint.
	EndpointEnvVar = "MCPC_ENDPOINT"
	// OutputEnvVar overrides the default output format.
	OutputEnvVar = "MCPC_OUTPUT"
)

// Default connection settings.
const (
	DefaultEndpoint       = "http://localhost:8090/mcp"
	DefaultTransport      = "streamable_http"
	DefaultOutput         = "table"
	DefaultTimeoutSeconds = 30
)

// Config is the top-level configuration for the dashboard CLI.
type Config struct {
	// Endpoint is the aggregator URL the backend collaborator connects to.
	Endpoint string `yaml:"endpoint,omitempty"`

	// Transport selects how the collaborator reaches the aggregator:
	// sse or streamable_http.
	Transport string `yaml:"transport,omitempty"`

	// Output is the default output format (table, wide, json, yaml).
	Output string `yaml:"output,omitempty"`

	// Color enables colored terminal output.
	Color *bool `yaml:"color,omitempty"`

	// TimeoutSeconds bounds each backend call.
	TimeoutSeconds int `yaml:"timeoutSeconds,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	color := true
	return Config{
		Endpoint:       DefaultEndpoint,
		Transport:      DefaultTransport,
		Output:         DefaultOutput,
		Color:          &color,
		TimeoutSeconds: DefaultTimeoutSeconds,
	}
}

// Timeout returns the per-call timeout as a duration.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ColorEnabled resolves the color preference, defaulting to enabled.
func (c Config) ColorEnabled() bool {
	if c.Color == nil {
		return true
	}
	return *c.Color
}

// DefaultPath returns the default config file location,
// ~/.config/mcp-client/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "mcp-client", "config.yaml"), nil
}

// Load reads the config file at path, layering it over the defaults and
// applying environment overrides last. A missing file is not an error;
// the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults apply.
	case err != nil:
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		var fileCfg Config
		if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		cfg = merge(cfg, fileCfg)
	}

	if endpoint := strings.TrimSpace(os.Getenv(EndpointEnvVar)); endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if output := strings.TrimSpace(os.Getenv(OutputEnvVar)); output != "" {
		cfg.Output = output
	}
	return cfg, nil
}

func merge(base, overlay Config) Config {
	if overlay.Endpoint != "" {
		base.Endpoint = overlay.Endpoint
	}
	if overlay.Transport != "" {
		base.Transport = overlay.Transport
	}
	if overlay.Output != "" {
		base.Output = overlay.Output
	}
	if overlay.Color != nil {
		base.Color = overlay.Color
	}
	if overlay.TimeoutSeconds > 0 {
		base.TimeoutSeconds = overlay.TimeoutSeconds
	}
	return base
}
