// Copyright 2026 The Saturn Authors. All rights reserved.  Use of this
// source code is governed by a license that can be found in the License
// file.

package portfolio

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/irifrance/saturn/container"
	"github.com/irifrance/saturn/kernel"
	"github.com/irifrance/saturn/limits"
	"github.com/irifrance/saturn/saturation"
)

// Metrics exports one Loop's public event surface (§6) as Prometheus
// instruments: clauses added to and removed from the Active set as
// they happen (Generated counts Active additions, not every clause an
// inference produces), the current Active count, the current
// age/weight limits as they move, and the eventual termination
// reason. It is a struct of instruments rather than package-level
// metric variables, so that a portfolio running several Loops
// concurrently can label each Metrics instance distinctly instead of
// sharing one global counter across all of them.
type Metrics struct {
	Generated   prometheus.Counter
	Active      prometheus.Gauge
	Discarded   prometheus.Counter
	AgeLimit    prometheus.Gauge
	WeightLimit prometheus.Gauge
	Termination *prometheus.CounterVec
}

// NewMetrics builds a Metrics instance with constLabels applied to
// every instrument (e.g. {"worker": "0"} to distinguish portfolio
// workers) and registers them all on reg.
func NewMetrics(reg prometheus.Registerer, constLabels prometheus.Labels) *Metrics {
	m := &Metrics{
		Generated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "saturn",
			Name:        "clauses_generated_total",
			Help:        "Clauses added to the Active set.",
			ConstLabels: constLabels,
		}),
		Active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "saturn",
			Name:        "clauses_active",
			Help:        "Clauses currently in the Active set.",
			ConstLabels: constLabels,
		}),
		Discarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "saturn",
			Name:        "clauses_discarded_total",
			Help:        "Clauses removed from the Active set by simplification or LRS discard.",
			ConstLabels: constLabels,
		}),
		AgeLimit: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "saturn",
			Name:        "lrs_age_limit",
			Help:        "Current LRS age limit, or -1 if unbounded.",
			ConstLabels: constLabels,
		}),
		WeightLimit: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "saturn",
			Name:        "lrs_weight_limit",
			Help:        "Current LRS weight limit, or -1 if unbounded.",
			ConstLabels: constLabels,
		}),
		Termination: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "saturn",
			Name:        "runs_total",
			Help:        "Loop runs completed, labeled by termination reason.",
			ConstLabels: constLabels,
		}, []string{"reason"}),
	}
	reg.MustRegister(m.Generated, m.Active, m.Discarded, m.AgeLimit, m.WeightLimit, m.Termination)
	m.AgeLimit.Set(-1)
	m.WeightLimit.Set(-1)
	return m
}

// Subscribe wires m to active's event stream, and to lim's if lim is
// non-nil, so every Active addition/removal and every LRS
// tighten/loosen is reflected the moment it happens rather than only when
// RecordTermination is called. lim is nil whenever the caller has no
// handle on the Loop's internal limits.Limits (Loop keeps it
// unexported), in which case only the clause-count gauges are wired.
func (m *Metrics) Subscribe(active *container.Active, lim *limits.Limits) {
	active.Events.Added.Subscribe(func(kernel.ClauseID) {
		m.Generated.Inc()
		m.Active.Set(float64(active.Size()))
	})
	active.Events.Removed.Subscribe(func(kernel.ClauseID) {
		m.Discarded.Inc()
		m.Active.Set(float64(active.Size()))
	})
	if lim == nil {
		return
	}
	lim.Changed.Subscribe(func(limits.ChangeKind) {
		if age, ok := lim.AgeLimit(); ok {
			m.AgeLimit.Set(float64(age))
		} else {
			m.AgeLimit.Set(-1)
		}
		if weight, ok := lim.WeightLimit(); ok {
			m.WeightLimit.Set(float64(weight))
		} else {
			m.WeightLimit.Set(-1)
		}
	})
}

// RecordTermination increments the run counter for stats' termination
// reason, once a Loop.Run has returned.
func (m *Metrics) RecordTermination(stats *saturation.Statistics) {
	m.Termination.WithLabelValues(stats.TerminationReason.String()).Inc()
}
