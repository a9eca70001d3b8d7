package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"mockui/internal/config"
)

func TestNormalizeOTLPEndpoint(t *testing.T) {
	got, err := normalizeOTLPEndpoint("collector:4317")
	require.NoError(t, err)
	require.Equal(t, "collector:4317", got)

	got, err = normalizeOTLPEndpoint("http://collector:4317/v1/traces")
	require.NoError(t, err)
	require.Equal(t, "collector:4317", got)

	_, err = normalizeOTLPEndpoint("http://")
	require.Error(t, err)
}

func TestInitWithoutEndpoint(t *testing.T) {
	shutdown, err := Init(context.Background(), &config.Config{})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}

func TestSampler(t *testing.T) {
	require.Contains(t, Sampler(1).Description(), "root:AlwaysOnSampler")
	require.Contains(t, Sampler(0).Description(), "root:AlwaysOffSampler")
	require.Contains(t, Sampler(0.5).Description(), "root:TraceIDRatioBased{0.5}")
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()

	m.FetchScheduled(500 * time.Millisecond)
	m.FetchScheduled(time.Second)
	require.Equal(t, 2.0, testutil.ToFloat64(m.InFlight()))

	m.FetchCompleted("success")
	require.Equal(t, 1.0, testutil.ToFloat64(m.InFlight()))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Fetches().WithLabelValues("success")))

	m.BlockRendered("tags")
	m.RenderRejected()
	m.LogAppended()
	require.Equal(t, 1.0, testutil.ToFloat64(m.Renders().WithLabelValues("tags")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.RenderRejects()))
	require.Equal(t, 1.0, testutil.ToFloat64(m.LogLines()))

	families, err := m.Registry.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)
}
