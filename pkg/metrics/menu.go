// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MenuMetricsRecorder records route compilation and lookup metrics.
type MenuMetricsRecorder struct {
	buildsTotal   *prometheus.CounterVec
	buildDuration *prometheus.HistogramVec
	routes        *prometheus.GaugeVec
	warnings      *prometheus.CounterVec
	resolves      *prometheus.CounterVec
	snapshots     prometheus.Gauge
}

// NewMenuMetricsRecorder creates the menu collectors and registers them on registry.
func NewMenuMetricsRecorder(registry prometheus.Registerer) *MenuMetricsRecorder {
	r := &MenuMetricsRecorder{
		buildsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "menuroute_builds_total",
				Help: "Total number of route tree builds",
			},
			[]string{"source"},
		),
		buildDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "menuroute_build_duration_seconds",
				Help:    "Duration of route tree builds in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 2, 15), // 0.1ms to ~1.6s
			},
			[]string{"source"},
		),
		routes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "menuroute_routes",
				Help: "Number of routes in the current snapshot",
			},
			[]string{"key"},
		),
		warnings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "menuroute_build_warnings_total",
				Help: "Total number of build warnings by kind",
			},
			[]string{"kind"},
		),
		resolves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "menuroute_resolves_total",
				Help: "Total number of path resolutions by result",
			},
			[]string{"result"},
		),
		snapshots: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "menuroute_snapshots",
				Help: "Number of menu snapshots held in memory",
			},
		),
	}

	if registry != nil {
		registry.MustRegister(
			r.buildsTotal,
			r.buildDuration,
			r.routes,
			r.warnings,
			r.resolves,
			r.snapshots,
		)
	}
	return r
}

// RecordBuild records one build of snapshot key from source.
func (r *MenuMetricsRecorder) RecordBuild(key, source string, duration time.Duration, routes int) {
	if r == nil {
		return
	}
	r.buildsTotal.WithLabelValues(source).Inc()
	r.buildDuration.WithLabelValues(source).Observe(duration.Seconds())
	r.routes.WithLabelValues(key).Set(float64(routes))
}

func (r *MenuMetricsRecorder) RecordWarning(kind string) {
	if r == nil {
		return
	}
	r.warnings.WithLabelValues(kind).Inc()
}

func (r *MenuMetricsRecorder) RecordResolve(hit bool) {
	if r == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	r.resolves.WithLabelValues(result).Inc()
}

// RecordReset drops the per-key gauge of a removed snapshot.
func (r *MenuMetricsRecorder) RecordReset(key string) {
	if r == nil {
		return
	}
	r.routes.DeleteLabelValues(key)
}

func (r *MenuMetricsRecorder) SetSnapshots(n int) {
	if r == nil {
		return
	}
	r.snapshots.Set(float64(n))
}
