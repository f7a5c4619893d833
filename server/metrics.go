// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"cogentcore.org/tailor/base/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the Prometheus metrics of a [Server].
type Metrics struct {
	Connections prometheus.Gauge
	Updates     *prometheus.CounterVec
}

// NewMetrics returns new, unregistered server metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		Connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tailor",
			Subsystem: "server",
			Name:      "connections",
			Help:      "Number of open viewer connections",
		}),
		Updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tailor",
			Subsystem: "server",
			Name:      "updates_total",
			Help:      "Total number of viewer updates by result",
		}, []string{"result"}),
	}
}

// Register registers all of the metrics with reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	return errors.Join(reg.Register(m.Connections), reg.Register(m.Updates))
}
