// Chronoline - Session Replay Timeline and Playback Engine
// Copyright 2026 Chronoline Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/chronoline/chronoline

package debounce

import (
	"sync"
	"time"

	"github.com/chronoline/chronoline/internal/metrics"
)

// Debouncer coalesces bursts of triggers into a single callback run.
// Each Trigger cancels any pending run and re-arms the quiet window; the
// callback fires once the triggers go quiet for the full window. A resize
// storm therefore costs one recompute, not one per event.
//
// The callback runs on a timer goroutine. It must not call back into the
// Debouncer's Trigger from the same goroutine while holding locks the
// trigger path needs.
type Debouncer struct {
	window time.Duration
	fn     func()

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// New creates a Debouncer with the given quiet window. The window is a
// tunable duration (tens of milliseconds for UI-driven recomputes), not
// an architectural constant; see config.Engine.DebounceWindow.
func New(window time.Duration, fn func()) *Debouncer {
	return &Debouncer{window: window, fn: fn}
}

// Trigger schedules a callback run after the quiet window, replacing any
// pending run. Safe for concurrent use. No-op after Stop.
func (d *Debouncer) Trigger() {
	metrics.DebounceTriggers.Inc()

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// fire runs the callback unless the debouncer was stopped or re-armed in
// the meantime.
func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	metrics.DebounceFires.Inc()
	d.fn()
}

// Flush runs the callback immediately if a run is pending. Used on
// teardown so the last geometry change is not lost.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	pending := d.timer != nil && d.timer.Stop()
	d.timer = nil
	stopped := d.stopped
	d.mu.Unlock()

	if pending && !stopped {
		metrics.DebounceFires.Inc()
		d.fn()
	}
}

// Stop cancels any pending run and rejects future triggers.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.stopped = true
}
