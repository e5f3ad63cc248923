package observability_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fargate-labs/greeter/internal/observability"
)

func TestInitMetrics_NoEndpoint(t *testing.T) {
	mp, err := observability.InitMetrics(context.Background(), observability.MetricsConfig{
		ServiceName:    "greeter",
		ServiceVersion: "0.1.0",
		Environment:    "test",
	})

	require.NoError(t, err)
	require.NotNil(t, mp)
	assert.NoError(t, mp.Shutdown(context.Background()))
}

func TestMetricsProvider_ShutdownNilProvider(t *testing.T) {
	mp := &observability.MetricsProvider{}

	assert.NoError(t, mp.Shutdown(context.Background()))
}

func TestMeterReturnsUsableMeter(t *testing.T) {
	mp, err := observability.InitMetrics(context.Background(), observability.MetricsConfig{
		ServiceName: "greeter",
		Environment: "test",
	})
	require.NoError(t, err)
	defer func() { _ = mp.Shutdown(context.Background()) }()

	meter := observability.Meter("test")
	counter, err := meter.Int64Counter("test_total")

	require.NoError(t, err)
	counter.Add(context.Background(), 1)
}
