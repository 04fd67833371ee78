// SPDX-License-Identifier: EPL-2.0

// Package metrics collects export statistics for the node exporter textfile
// collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "soundobjects"

// Export results.
const (
	ResultOK     = "ok"
	ResultEmpty  = "empty"
	ResultFailed = "failed"
)

// Export holds the export metrics. A nil *Export records nothing.
type Export struct {
	reg *prometheus.Registry

	exports  *prometheus.CounterVec
	duration prometheus.Histogram
	objects  prometheus.Gauge
	overflow prometheus.Counter
	skipped  prometheus.Counter
	renders  prometheus.Counter
	blocks   prometheus.Histogram
	samples  prometheus.Counter
}

func New() *Export {
	e := &Export{
		reg: prometheus.NewRegistry(),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Exports run, by result.",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "export_duration_seconds",
			Help:      "Wall time of one export.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
		}),
		objects: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "objects",
			Help:      "Objects written by the last export.",
		}),
		overflow: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "overflow_groups_total",
			Help:      "Object groups dropped over the object limit.",
		}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_sources_total",
			Help:      "Sources left out for lack of an activation schedule.",
		}),
		renders: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mixdowns_total",
			Help:      "Object mixdowns rendered.",
		}),
		blocks: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "object_blocks",
			Help:      "Position blocks per object.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "samples_written_total",
			Help:      "Sample frames muxed into export files.",
		}),
	}

	e.reg.MustRegister(e.exports, e.duration, e.objects, e.overflow, e.skipped, e.renders, e.blocks, e.samples)

	return e
}

// Registry exposes the collectors, for tests and custom gatherers.
func (e *Export) Registry() *prometheus.Registry { return e.reg }

// Finished records one export run.
func (e *Export) Finished(result string, took time.Duration, objects, overflow, skipped int) {
	if e == nil {
		return
	}
	e.exports.WithLabelValues(result).Inc()
	e.duration.Observe(took.Seconds())
	e.objects.Set(float64(objects))
	e.overflow.Add(float64(overflow))
	e.skipped.Add(float64(skipped))
}

// Object records the mixdown and motion of one written object.
func (e *Export) Object(blocks int) {
	if e == nil {
		return
	}
	e.renders.Inc()
	e.blocks.Observe(float64(blocks))
}

func (e *Export) Samples(frames int) {
	if e == nil {
		return
	}
	e.samples.Add(float64(frames))
}

// WriteTextfile writes every metric to path in the text exposition format.
func (e *Export) WriteTextfile(path string) error {
	if e == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, e.reg); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
