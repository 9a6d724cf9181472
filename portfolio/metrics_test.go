// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

package portfolio

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/irifrance/saturn/container"
	"github.com/irifrance/saturn/kernel"
	"github.com/irifrance/saturn/limits"
	"github.com/irifrance/saturn/saturation"
	"github.com/irifrance/saturn/z"
)

func metricValue(t *testing.T, c prometheus.Metric) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	switch {
	case m.Gauge != nil:
		return m.Gauge.GetValue()
	case m.Counter != nil:
		return m.Counter.GetValue()
	default:
		t.Fatalf("metric has neither Gauge nor Counter value")
		return 0
	}
}

func TestMetricsTracksActiveClauseCount(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg, prometheus.Labels{"worker": "0"})

	sig := z.NewSignature()
	a := kernel.NewArena(sig)
	act := container.NewActive(a)
	lim := limits.New()
	m.Subscribe(act, lim)

	p := sig.Intern("p", 0, z.PredicateSymbol)
	lit := a.MkLit(p, true)
	c := a.NewClause([]kernel.LitID{lit}, kernel.Inference{})
	require.NoError(t, a.SetStore(c, kernel.StoreUnprocessed))
	require.NoError(t, a.SetStore(c, kernel.StorePassive))
	require.NoError(t, act.Add(c))

	assert.Equal(t, float64(1), metricValue(t, m.Active))

	require.NoError(t, act.Remove(c))
	assert.Equal(t, float64(0), metricValue(t, m.Active))
}

func TestMetricsTracksLimitChanges(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg, nil)
	assert.Equal(t, float64(-1), metricValue(t, m.AgeLimit))

	sig := z.NewSignature()
	a := kernel.NewArena(sig)
	act := container.NewActive(a)
	lim := limits.New()
	m.Subscribe(act, lim)

	lim.Tighten(10, 20)
	assert.Equal(t, float64(10), metricValue(t, m.AgeLimit))
	assert.Equal(t, float64(20), metricValue(t, m.WeightLimit))

	lim.Loosen()
	assert.Equal(t, float64(-1), metricValue(t, m.AgeLimit))
}

func TestMetricsRecordTerminationIncrementsLabeledCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg, nil)
	m.RecordTermination(&saturation.Statistics{TerminationReason: saturation.SATISFIABLE})

	metric, err := m.Termination.GetMetricWithLabelValues("SATISFIABLE")
	require.NoError(t, err)
	assert.Equal(t, float64(1), metricValue(t, metric))
}
