// Package config provides configuration loading using koanf.
// Precedence: environment variables → SSM Parameter Store → compiled defaults.
package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/fargate-labs/greeter/internal/domain"
)

// Config holds all service configuration.
type Config struct {
	// Environment identifier: "local", "dev", "prod"
	Environment string `koanf:"environment"`

	// Logging configuration
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	// Greeter holds the responder's own configuration.
	Greeter GreeterConfig `koanf:"greeter"`

	// AWS SDK configuration (used only when the SSM overlay is enabled).
	AWS AWSConfig `koanf:"aws"`

	// SSM Parameter Store overlay configuration.
	SSM SSMConfig `koanf:"ssm"`

	// OpenTelemetry configuration
	OTEL OTELConfig `koanf:"otel"`
}

// GreeterConfig holds the HTTP responder configuration.
type GreeterConfig struct {
	HTTPPort int    `koanf:"http_port"`
	Message  string `koanf:"message"`
}

// AWSConfig holds AWS SDK configuration.
type AWSConfig struct {
	Region string `koanf:"region"`
}

// SSMConfig holds the Parameter Store overlay configuration.
// An empty prefix disables the overlay entirely.
type SSMConfig struct {
	Prefix string `koanf:"prefix"`
}

// OTELConfig holds OpenTelemetry configuration.
type OTELConfig struct {
	Endpoint string `koanf:"endpoint"` // Empty disables OTLP export
}

// defaults returns a Config with compiled default values.
func defaults() *Config {
	return &Config{
		Environment: "local",
		LogLevel:    "info",
		LogFormat:   "json",

		Greeter: GreeterConfig{
			HTTPPort: domain.DefaultHTTPPort,
			Message:  domain.DefaultGreeting,
		},
		AWS: AWSConfig{
			Region: "us-east-1",
		},
	}
}

// Load loads configuration following the precedence:
// 1. Environment variables (highest)
// 2. SSM Parameter Store, when ssm.prefix is set
// 3. Compiled defaults (lowest)
//
// Required keys missing or out of range → startup failure; the caller is
// expected to exit non-zero.
func Load(ctx context.Context) (*Config, error) {
	return LoadWithSSM(ctx, nil)
}

// LoadWithSSM is Load with an injectable Parameter Store client. A nil client
// means "construct the real one if the overlay is enabled"; tests pass stubs.
func LoadWithSSM(ctx context.Context, client SSMClient) (*Config, error) {
	// First pass without the overlay: the overlay's own prefix and region
	// come from env/defaults only.
	cfg, err := loadLayers(nil)
	if err != nil {
		return nil, err
	}

	if cfg.SSM.Prefix != "" {
		if client == nil {
			client, err = newSSMClient(ctx, cfg.AWS.Region)
			if err != nil {
				return nil, fmt.Errorf("create ssm client: %w", err)
			}
		}
		overlay, err := fetchParameters(ctx, client, cfg.SSM.Prefix)
		if err != nil {
			return nil, err
		}
		// Second pass with the overlay between defaults and env.
		cfg, err = loadLayers(overlay)
		if err != nil {
			return nil, err
		}
	}

	if err := validateRequired(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadLayers merges defaults, an optional overlay, and environment variables,
// in that order of increasing precedence.
func loadLayers(overlay map[string]string) (*Config, error) {
	k := koanf.New(".")
	cfg := defaults()

	for key, val := range overlay {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("apply ssm parameter %q: %w", key, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envToKey), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// nestedPrefixes lists the env var prefixes that map onto nested config
// sections. Anything else stays a flat top-level key (LOG_LEVEL → log_level).
var nestedPrefixes = []string{"greeter_", "aws_", "ssm_", "otel_"}

func envToKey(s string) string {
	s = strings.ToLower(s)
	for _, p := range nestedPrefixes {
		if strings.HasPrefix(s, p) {
			return strings.TrimSuffix(p, "_") + "." + strings.TrimPrefix(s, p)
		}
	}
	return s
}

// validateRequired checks that required configuration is present and valid.
func validateRequired(cfg *Config) error {
	if cfg.Greeter.HTTPPort < 0 || cfg.Greeter.HTTPPort > domain.MaxPort {
		return fmt.Errorf("%w: greeter.http_port=%d", domain.ErrInvalidPort, cfg.Greeter.HTTPPort)
	}
	if cfg.IsProd() && cfg.Greeter.Message == "" {
		return fmt.Errorf("%w: greeter.message", domain.ErrConfigRequired)
	}
	return nil
}

// IsLocal returns true if running in local development environment.
func (c *Config) IsLocal() bool {
	return c.Environment == "local"
}

// IsProd returns true if running in production environment.
func (c *Config) IsProd() bool {
	return c.Environment == "prod"
}
