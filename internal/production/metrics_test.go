package production

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/fsmx/internal/core"
)

func TestMetrics_CountsTransitionsAndRejections(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	m, err := core.New(trafficSpec(), nil, core.WithObserver(metrics))
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		require.NoError(t, m.TransitName("TIMER", nil))
	}
	require.Error(t, m.TransitName("EMERGENCY", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Transitions().WithLabelValues("traffic", "green", "yellow", "TIMER")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Transitions().WithLabelValues("traffic", "red", "green", "TIMER")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.InvalidEvents().WithLabelValues("traffic", "yellow", "EMERGENCY")))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.duration))

	count, err := testutil.GatherAndCount(reg, "fsmx_transitions_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestMetrics_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)
	assert.Panics(t, func() { NewMetrics(reg) })
}
