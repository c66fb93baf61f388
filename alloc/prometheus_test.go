package alloc_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/teenjuna/flat/alloc"
	"github.com/teenjuna/flat/internal/testing/require"
)

func TestInstrumented(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := alloc.Prometheus(registry).Metrics()

	a := alloc.Instrumented(alloc.Budgeted(alloc.Heap[int64]{}, alloc.NewBudget(64)), metrics)

	items, err := a.Reallocate(nil, 4)
	require.Nil(t, err)
	items, err = a.Reallocate(items, 2)
	require.Nil(t, err)
	_, err = a.Reallocate(items, 100)
	require.ErrorIs(t, err, alloc.ErrBudgetExceeded)
	a.Free(items)

	count, err := testutil.GatherAndCount(registry)
	require.Nil(t, err)
	require.Equal(t, count, 6)

	families, err := registry.Gather()
	require.Nil(t, err)

	values := make(map[string]float64)
	for _, family := range families {
		metric := family.GetMetric()[0]
		switch {
		case metric.GetCounter() != nil:
			values[family.GetName()] = metric.GetCounter().GetValue()
		case metric.GetGauge() != nil:
			values[family.GetName()] = metric.GetGauge().GetValue()
		case metric.GetHistogram() != nil:
			values[family.GetName()] = float64(metric.GetHistogram().GetSampleCount())
		}
	}

	require.Equal(t, values, map[string]float64{
		"flat_alloc_allocations":     2,
		"flat_alloc_frees":           1,
		"flat_alloc_failures":        1,
		"flat_alloc_requested_bytes": 32 + 16 + 800,
		"flat_alloc_live_bytes":      0,
		"flat_alloc_request_bytes":   3,
	})
}

func TestPrometheusConfigFuncs(t *testing.T) {
	c := alloc.Prometheus(nil, func(c *alloc.PrometheusConfig) {
		c.LiveBytes.Name = "resident_bytes"
	}, nil)

	require.Equal(t, c.LiveBytes.Name, "resident_bytes")
	require.Equal(t, c.Namespace, "flat")
	require.NotNil(t, c.Metrics())
}
