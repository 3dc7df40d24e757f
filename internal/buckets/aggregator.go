// Chronoline - Session Replay Timeline and Playback Engine
// Copyright 2026 Chronoline Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/chronoline/chronoline

package buckets

import (
	"time"

	"github.com/chronoline/chronoline/internal/metrics"
	"github.com/chronoline/chronoline/internal/replay"
	"github.com/chronoline/chronoline/internal/timeline"
)

// Item is one aggregatable source event: a frame or a check-in reduced to
// an offset within the window and an outcome status.
type Item struct {
	OffsetMs int64
	Status   Status
}

// Bucket is one fixed-width time slice of the rendered timeline row.
type Bucket struct {
	Index    int            `json:"index"`
	StartMs  int64          `json:"start_ms"`
	EndMs    int64          `json:"end_ms"`
	Dominant Status         `json:"dominant"`
	Counts   map[Status]int `json:"counts,omitempty"`
}

// Aggregate groups items into the window's buckets. The output always has
// exactly cfg.BucketCount buckets in order; buckets with no items carry
// StatusEmpty. Each item lands in offset/bucketSize, except items exactly
// at the window end, which clamp into the last bucket instead of a
// phantom one past it. Items outside [0, window] are dropped: offsets are
// clamped by callers, and stragglers from a stale recompute are not worth
// failing a render over.
//
// Pure function of its inputs; recomputing any number of times from the
// same recording and window is side-effect free.
func Aggregate(items []Item, cfg timeline.WindowConfig, prec Precedence) []Bucket {
	windowMs := cfg.DurationMs()

	out := make([]Bucket, cfg.BucketCount)
	for i := range out {
		endMs := cfg.BucketStartMs(i) + cfg.BucketSizeMs
		if endMs > windowMs {
			endMs = windowMs
		}
		out[i] = Bucket{
			Index:    i,
			StartMs:  cfg.BucketStartMs(i),
			EndMs:    endMs,
			Dominant: StatusEmpty,
		}
	}
	if len(out) == 0 {
		return out
	}

	assigned := 0
	for _, item := range items {
		if item.OffsetMs < 0 || item.OffsetMs > windowMs {
			continue
		}
		i := int(item.OffsetMs / cfg.BucketSizeMs)
		if i >= len(out) {
			i = len(out) - 1
		}
		b := &out[i]
		if b.Counts == nil {
			b.Counts = make(map[Status]int)
		}
		b.Counts[item.Status]++
		b.Dominant = prec.Dominant(b.Dominant, item.Status)
		assigned++
	}
	metrics.AggregatedFrames.Add(float64(assigned))

	return out
}

// FramesToItems adapts recording frames for aggregation using a
// consumer-supplied classifier (e.g. breadcrumb category to severity).
func FramesToItems(frames []replay.Frame, classify func(replay.Frame) Status) []Item {
	items := make([]Item, 0, len(frames))
	for _, f := range frames {
		items = append(items, Item{OffsetMs: f.OffsetMs, Status: classify(f)})
	}
	return items
}

// CheckIn is one cron-monitor check-in record.
type CheckIn struct {
	Timestamp time.Time `json:"timestamp"`
	Status    Status    `json:"status"`
}

// CheckInsToItems adapts check-ins for aggregation by converting their
// wall-clock timestamps to offsets from the window start.
func CheckInsToItems(checkins []CheckIn, windowStart time.Time) []Item {
	items := make([]Item, 0, len(checkins))
	for _, c := range checkins {
		items = append(items, Item{
			OffsetMs: c.Timestamp.Sub(windowStart).Milliseconds(),
			Status:   c.Status,
		})
	}
	return items
}
