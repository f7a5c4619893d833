// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assets

import (
	"time"

	"cogentcore.org/tailor/base/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Load results, used as the "result" label of [Metrics.Loads].
const (
	ResultHit   = "hit"
	ResultMiss  = "miss"
	ResultError = "error"
)

// Metrics are the Prometheus metrics of a [Cache].
// A nil *Metrics records nothing.
type Metrics struct {
	// Loads counts calls to [Cache.Load] by result.
	Loads *prometheus.CounterVec

	// Decodes counts decodes, which is the number of misses
	// after coalescing.
	Decodes prometheus.Counter

	// DecodeDuration is the time taken by each decode.
	DecodeDuration prometheus.Histogram

	// Entries is the number of decoded assets held by the cache.
	Entries prometheus.Gauge
}

// NewMetrics returns new, unregistered cache metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		Loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "tailor",
				Subsystem: "assets",
				Name:      "loads_total",
				Help:      "Total number of asset loads by result",
			},
			[]string{"result"},
		),
		Decodes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tailor",
			Subsystem: "assets",
			Name:      "decodes_total",
			Help:      "Total number of asset decodes",
		}),
		DecodeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tailor",
			Subsystem: "assets",
			Name:      "decode_duration_seconds",
			Help:      "Time taken to fetch and decode an asset",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		Entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tailor",
			Subsystem: "assets",
			Name:      "entries",
			Help:      "Number of decoded assets held in the cache",
		}),
	}
}

// Register registers all of the metrics with reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	var errs []error
	for _, c := range []prometheus.Collector{m.Loads, m.Decodes, m.DecodeDuration, m.Entries} {
		errs = append(errs, reg.Register(c))
	}
	return errors.Join(errs...)
}

func (m *Metrics) load(result string) {
	if m != nil {
		m.Loads.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) decoded(start time.Time) {
	if m != nil {
		m.Decodes.Inc()
		m.DecodeDuration.Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) entries(n int) {
	if m != nil {
		m.Entries.Set(float64(n))
	}
}
