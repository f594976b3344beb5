package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rigma/metadata/pkg/telemetry"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("disabled without endpoint", func(t *testing.T) {
		t.Parallel()

		p, err := telemetry.New(context.Background(), telemetry.Config{})
		require.NoError(t, err)
		require.False(t, p.Enabled())
		require.NotNil(t, p.Meter("test"))
		require.NoError(t, p.Shutdown(context.Background()))
	})

	t.Run("exporter is lazy", func(t *testing.T) {
		t.Parallel()

		p, err := telemetry.New(context.Background(), telemetry.Config{
			OTLPEndpoint:   "http://127.0.0.1:1/",
			OTLPInsecure:   true,
			MetricInterval: time.Hour,
			ServiceVersion: "test",
			Environment:    "CI",
		})
		require.NoError(t, err)
		require.True(t, p.Enabled())

		counter, err := p.Meter("test").Int64Counter("test_total")
		require.NoError(t, err)
		counter.Add(context.Background(), 1)

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		// Flushing to an unreachable collector fails, but shutdown still completes.
		_ = p.Shutdown(ctx)
	})
}
