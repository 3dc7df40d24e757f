// Chronoline - Session Replay Timeline and Playback Engine
// Copyright 2026 Chronoline Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/chronoline/chronoline

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for the timeline engine:
// - window/bucket recompute cost (resize storms are the hot path)
// - playback clock activity (ticks, seeks, state transitions)
// - hover resolution volume
// - debounce coalescing effectiveness

var (
	// Window / bucket recompute metrics
	WindowRecomputeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chronoline_window_recompute_total",
			Help: "Total number of timeline window recomputations",
		},
		[]string{"trigger"}, // "resize", "data", "init"
	)

	WindowRecomputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chronoline_window_recompute_duration_seconds",
			Help:    "Duration of window+bucket recomputation in seconds",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05},
		},
	)

	AggregatedFrames = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chronoline_aggregated_frames_total",
			Help: "Total number of frames/check-ins assigned to buckets",
		},
	)

	// Playback clock metrics
	PlaybackTicks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chronoline_playback_ticks_total",
			Help: "Total number of natural playback clock advances",
		},
	)

	PlaybackSeeks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chronoline_playback_seeks_total",
			Help: "Total number of explicit seek operations",
		},
	)

	PlaybackTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chronoline_playback_transitions_total",
			Help: "Total number of playback state transitions",
		},
		[]string{"from", "to"},
	)

	// Hover resolution metrics
	HoverResolutions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chronoline_hover_resolutions_total",
			Help: "Total number of hover/scrub preview resolutions",
		},
	)

	// Debounce metrics
	DebounceTriggers = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chronoline_debounce_triggers_total",
			Help: "Total number of debounce trigger calls",
		},
	)

	DebounceFires = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chronoline_debounce_fires_total",
			Help: "Total number of debounced callback executions (triggers minus coalesced)",
		},
	)

	// Session metrics
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chronoline_active_sessions",
			Help: "Current number of live viewer sessions",
		},
	)
)

// ObserveRecompute records one window+bucket recomputation. Frame counts
// are tracked by the aggregator itself via AggregatedFrames.
func ObserveRecompute(trigger string, duration time.Duration) {
	WindowRecomputeTotal.WithLabelValues(trigger).Inc()
	WindowRecomputeDuration.Observe(duration.Seconds())
}

// RecordTransition records a playback state transition.
func RecordTransition(from, to string) {
	PlaybackTransitions.WithLabelValues(from, to).Inc()
}
