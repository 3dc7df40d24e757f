// Chronoline - Session Replay Timeline and Playback Engine
// Copyright 2026 Chronoline Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/chronoline/chronoline

package session

import (
	"github.com/goccy/go-json"

	"github.com/chronoline/chronoline/internal/buckets"
	"github.com/chronoline/chronoline/internal/playback"
	"github.com/chronoline/chronoline/internal/timeline"
)

// Snapshot is the read-only view the rendering layer consumes: window
// descriptor for gridlines, bucket row for ticks, playback state for the
// scrubber and play/pause chrome. Snapshots are plain copies; mutating
// one never affects the session.
type Snapshot struct {
	SessionID string                 `json:"session_id"`
	Loading   bool                   `json:"loading"`
	Window    timeline.WindowConfig  `json:"window"`
	Buckets   []buckets.Bucket       `json:"buckets,omitempty"`
	Scale     timeline.ScaleContext  `json:"scale"`
	Playback  playback.PlaybackState `json:"playback"`
}

// MarshalJSON renders the snapshot with goccy/go-json for hosts that
// forward it over their own transport.
func (sn Snapshot) MarshalJSON() ([]byte, error) {
	type alias Snapshot
	return json.Marshal(alias(sn))
}

// Snapshot returns the current state as an independent copy.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	sn := Snapshot{
		SessionID: s.id.String(),
		Loading:   s.rec == nil,
		Window:    s.window,
		Buckets:   copyBuckets(s.rows),
		Scale:     s.scale,
	}
	clock := s.clock
	s.mu.RUnlock()

	sn.Playback = clock.Snapshot()
	return sn
}

// Subscribe registers an observer invoked with a fresh snapshot after
// every state change (playback ticks, recomputes, zoom). The returned
// function unsubscribes; it is idempotent.
func (s *Session) Subscribe(fn func(Snapshot)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// publish fans the current snapshot out to subscribers. Called outside
// the session and clock locks.
func (s *Session) publish() {
	s.subMu.Lock()
	if len(s.subs) == 0 {
		s.subMu.Unlock()
		return
	}
	observers := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		observers = append(observers, fn)
	}
	s.subMu.Unlock()

	sn := s.Snapshot()
	for _, fn := range observers {
		fn(sn)
	}
}

// copyBuckets deep-copies the bucket row so snapshot consumers cannot
// reach the session's internal state through the counts maps.
func copyBuckets(rows []buckets.Bucket) []buckets.Bucket {
	if rows == nil {
		return nil
	}
	out := make([]buckets.Bucket, len(rows))
	copy(out, rows)
	for i := range out {
		if out[i].Counts == nil {
			continue
		}
		counts := make(map[buckets.Status]int, len(out[i].Counts))
		for k, v := range out[i].Counts {
			counts[k] = v
		}
		out[i].Counts = counts
	}
	return out
}
