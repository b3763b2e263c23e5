package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Collector) float64 {
	t.Helper()
	ch := make(chan prometheus.Metric, 1)
	c.Collect(ch)
	m := &dto.Metric{}
	require.NoError(t, (<-ch).Write(m))
	return m.GetCounter().GetValue()
}

func TestMetricsIncrementAndRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.PacketInTotal.WithLabelValues("arp").Inc()
	m.FlowModsInstalledTotal.Inc()
	m.GroupModsInstalledTotal.Inc()
	m.GroupIDAllocationsTotal.Inc()
	m.PathErrorsTotal.Inc()
	m.SwitchesRegistered.Set(3)

	assert.Equal(t, float64(1), counterValue(t, m.FlowModsInstalledTotal))
	assert.Equal(t, float64(1), counterValue(t, m.GroupModsInstalledTotal))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
