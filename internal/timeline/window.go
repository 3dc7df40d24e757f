// Chronoline - Session Replay Timeline and Playback Engine
// Copyright 2026 Chronoline Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/chronoline/chronoline

package timeline

import (
	"time"
)

// TimeRange is a closed wall-clock interval with positive length.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewTimeRange validates and builds a TimeRange. Zero or negative length
// is ErrInvalidRange.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !end.After(start) {
		return TimeRange{}, ErrInvalidRange
	}
	return TimeRange{Start: start, End: end}, nil
}

// DurationMs returns the range length in milliseconds.
func (r TimeRange) DurationMs() int64 {
	return r.End.Sub(r.Start).Milliseconds()
}

// WindowConfig is the derived, zoom-friendly descriptor of a rendered
// timeline: how wide each bucket is, how many there are, and the
// pixel-per-millisecond ratio at the current width. It is recomputed
// whenever the pixel width or time range changes.
type WindowConfig struct {
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	ElapsedMinutes float64   `json:"elapsed_minutes"`
	BucketSizeMs   int64     `json:"bucket_size_ms"`
	BucketCount    int       `json:"bucket_count"`
	PixelsPerMs    float64   `json:"pixels_per_ms"`
}

// DurationMs returns the window length in milliseconds.
func (w WindowConfig) DurationMs() int64 {
	return w.End.Sub(w.Start).Milliseconds()
}

// BucketStartMs returns the inclusive lower bound of bucket i, in
// milliseconds from window start.
func (w WindowConfig) BucketStartMs(i int) int64 {
	return int64(i) * w.BucketSizeMs
}

// niceBucketSizes is the ladder of human-legible bucket widths, in
// milliseconds: sub-second steps, then second, minute and hour multiples.
var niceBucketSizes = []int64{
	100,
	250,
	500,
	1000,       // 1s
	5000,       // 5s
	10000,      // 10s
	30000,      // 30s
	60000,      // 1m
	300000,     // 5m
	600000,     // 10m
	1800000,    // 30m
	3600000,    // 1h
	7200000,    // 2h
	21600000,   // 6h
	43200000,   // 12h
	86400000,   // 24h
}

// DensityBand bounds how many horizontal pixels one bucket may occupy.
// Too few pixels per bucket and ticks smear together; too many and the
// row looks sparse.
type DensityBand struct {
	MinPixelsPerBucket int
	MaxPixelsPerBucket int
}

// DefaultDensityBand is roughly one bucket per 8-20 pixels.
var DefaultDensityBand = DensityBand{MinPixelsPerBucket: 8, MaxPixelsPerBucket: 20}

// BuildWindow computes the bucketed window descriptor for a time range
// rendered at pixelWidth. The bucket size is the smallest ladder value
// whose on-screen width meets the band's minimum, which keeps bucket
// counts stable across small resizes. Pure and deterministic: identical
// inputs always produce identical output, so resize storms re-render
// stably.
func BuildWindow(rng TimeRange, pixelWidth int, band DensityBand) (WindowConfig, error) {
	if pixelWidth <= 0 {
		return WindowConfig{}, ErrInvalidGeometry
	}
	durMs := rng.DurationMs()
	if durMs <= 0 {
		return WindowConfig{}, ErrInvalidRange
	}
	if band.MinPixelsPerBucket <= 0 || band.MaxPixelsPerBucket <= band.MinPixelsPerBucket {
		band = DefaultDensityBand
	}

	width := float64(pixelWidth)
	bucketSize := int64(0)
	for _, size := range niceBucketSizes {
		pxPerBucket := width * float64(size) / float64(durMs)
		if pxPerBucket >= float64(band.MinPixelsPerBucket) {
			bucketSize = size
			break
		}
	}
	if bucketSize == 0 {
		// Range too long for the ladder at this width: fall back to an
		// off-ladder size that honors the minimum density.
		maxBuckets := pixelWidth / band.MinPixelsPerBucket
		if maxBuckets < 1 {
			maxBuckets = 1
		}
		bucketSize = ceilDiv(durMs, int64(maxBuckets))
	}

	return WindowConfig{
		Start:          rng.Start,
		End:            rng.End,
		ElapsedMinutes: float64(durMs) / 60000.0,
		BucketSizeMs:   bucketSize,
		BucketCount:    int(ceilDiv(durMs, bucketSize)),
		PixelsPerMs:    width / float64(durMs),
	}, nil
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}
