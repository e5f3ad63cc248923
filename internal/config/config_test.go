package config_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fargate-labs/greeter/internal/config"
	"github.com/fargate-labs/greeter/internal/domain"
)

func TestDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "local")

	cfg, err := config.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, domain.DefaultHTTPPort, cfg.Greeter.HTTPPort)
	assert.Equal(t, domain.DefaultGreeting, cfg.Greeter.Message)
	assert.Empty(t, cfg.SSM.Prefix)
	assert.Empty(t, cfg.OTEL.Endpoint)
}

func TestEnvOverridesDefaults(t *testing.T) {
	t.Setenv("GREETER_HTTP_PORT", "8080")
	t.Setenv("GREETER_MESSAGE", "hello from env")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("OTEL_ENDPOINT", "collector:4317")

	cfg, err := config.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Greeter.HTTPPort)
	assert.Equal(t, "hello from env", cfg.Greeter.Message)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "collector:4317", cfg.OTEL.Endpoint)
}

func TestInvalidPortRejected(t *testing.T) {
	tests := []struct {
		name string
		port string
	}{
		{"negative port", "-1"},
		{"port above range", "70000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GREETER_HTTP_PORT", tt.port)

			_, err := config.Load(context.Background())

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidPort)
		})
	}
}

func TestProdRequiresMessage(t *testing.T) {
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("GREETER_MESSAGE", "")

	// Defaults fill the message, so an empty env override is the only way
	// to end up without one.
	_, err := config.Load(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigRequired)
}

func TestIsLocal(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want bool
	}{
		{"local returns true", "local", true},
		{"prod returns false", "prod", false},
		{"dev returns false", "dev", false},
		{"empty returns false", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Environment: tt.env}

			assert.Equal(t, tt.want, cfg.IsLocal())
		})
	}
}

func TestIsProd(t *testing.T) {
	cfg := &config.Config{Environment: "prod"}
	assert.True(t, cfg.IsProd())

	cfg.Environment = "local"
	assert.False(t, cfg.IsProd())
}
