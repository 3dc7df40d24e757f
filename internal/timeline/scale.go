// Chronoline - Session Replay Timeline and Playback Engine
// Copyright 2026 Chronoline Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/chronoline/chronoline

package timeline

import (
	"fmt"
	"math"
)

// ScaleContext describes the zoomed viewport: a zoom multiplier >= 1 and
// the timeline's on-screen width. Zoom 1 shows the whole timeline.
type ScaleContext struct {
	Zoom            float64 `json:"zoom"`
	TimelineWidthPx int     `json:"timeline_width_px"`
}

// Validate rejects geometry the mapping formulas are undefined for.
func (sc ScaleContext) Validate() error {
	if sc.Zoom < 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidZoom, sc.Zoom)
	}
	if sc.TimelineWidthPx <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidGeometry, sc.TimelineWidthPx)
	}
	return nil
}

// PixelToTime converts an on-screen x coordinate to a timeline time in
// milliseconds, given the current playhead position.
//
// The visible window covers durationMs/zoom of timeline time. It is
// centered on the playhead, except near the edges where it pins to the
// start or end so the viewport never shows time outside [0, durationMs].
// initialTranslate = 0.5/zoom is half a viewport of lookahead/lookbehind:
// once the playhead is more than half a viewport from both edges the
// centered branch applies. The three-branch clamp must match TimeToPixel's
// branch selection exactly or scrubber and hover positions desync at the
// edges.
func PixelToTime(pixelX float64, sc ScaleContext, currentTimeMs, durationMs int64) (int64, error) {
	if err := sc.Validate(); err != nil {
		return 0, err
	}
	if durationMs <= 0 {
		return 0, ErrInvalidRange
	}

	width := float64(sc.TimelineWidthPx)
	dur := float64(durationMs)
	initialTranslate := 0.5 / sc.Zoom
	percentComplete := float64(currentTimeMs) / dur

	var timeMs float64
	switch {
	case percentComplete < initialTranslate:
		// Playhead near the start: window pinned to 0.
		timeMs = (pixelX / width) * dur / sc.Zoom
	case percentComplete+initialTranslate > 1:
		// Playhead near the end: window pinned to durationMs.
		timeMs = (pixelX/width)*dur/sc.Zoom + (1-1/sc.Zoom)*dur
	default:
		// Mid-timeline: window centered on the playhead.
		timeMs = float64(currentTimeMs) + ((pixelX-width/2)/width)*dur/sc.Zoom
	}

	return clampInt64(int64(math.Round(timeMs)), 0, durationMs), nil
}

// TimeToPixel is the algebraic inverse of PixelToTime's active branch,
// used to place the scrubber handle. Branch selection depends on the
// playhead position, not on timeMs, mirroring PixelToTime.
func TimeToPixel(timeMs int64, sc ScaleContext, currentTimeMs, durationMs int64) (float64, error) {
	if err := sc.Validate(); err != nil {
		return 0, err
	}
	if durationMs <= 0 {
		return 0, ErrInvalidRange
	}

	width := float64(sc.TimelineWidthPx)
	dur := float64(durationMs)
	t := float64(timeMs)
	initialTranslate := 0.5 / sc.Zoom
	percentComplete := float64(currentTimeMs) / dur

	var pixelX float64
	switch {
	case percentComplete < initialTranslate:
		pixelX = t * sc.Zoom / dur * width
	case percentComplete+initialTranslate > 1:
		pixelX = (t - (1-1/sc.Zoom)*dur) * sc.Zoom / dur * width
	default:
		pixelX = ((t-float64(currentTimeMs))*sc.Zoom/dur + 0.5) * width
	}

	return clampFloat(pixelX, 0, width), nil
}

func clampInt64(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
