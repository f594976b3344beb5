package db

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ObservePoolMetrics registers observable gauges reporting pool usage on the
// global meter provider: total, idle, acquired and constructing connections.
// Gauges stop reporting once the state is closed.
func ObservePoolMetrics(state *PoolState, poolName string) error {
	name := strings.TrimSpace(poolName)
	if name == "" {
		name = "primary"
	}
	attrs := metric.WithAttributes(attribute.String("db_pool", name))

	meter := otel.Meter("github.com/rigma/metadata/pkg/db")

	gauges := []struct {
		name  string
		desc  string
		value func(*pgxpool.Stat) int32
	}{
		{"metadata_db_pool_connections_total", "Total connections (idle + acquired + constructing)", (*pgxpool.Stat).TotalConns},
		{"metadata_db_pool_connections_idle", "Idle connections ready for checkout", (*pgxpool.Stat).IdleConns},
		{"metadata_db_pool_connections_acquired", "Connections currently acquired by callers", (*pgxpool.Stat).AcquiredConns},
		{"metadata_db_pool_connections_constructing", "Connections currently being constructed", (*pgxpool.Stat).ConstructingConns},
	}

	var errs []error
	for _, g := range gauges {
		value := g.value
		_, err := meter.Int64ObservableGauge(g.name,
			metric.WithDescription(g.desc),
			metric.WithUnit("{connection}"),
			metric.WithInt64Callback(func(_ context.Context, observer metric.Int64Observer) error {
				if state.Closed() {
					return nil
				}
				observer.Observe(int64(value(state.Stat())), attrs)
				return nil
			}),
		)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
