// Chronoline - Session Replay Timeline and Playback Engine
// Copyright 2026 Chronoline Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/chronoline/chronoline

package timeline

import (
	"github.com/chronoline/chronoline/internal/metrics"
)

// ResolveHover converts a pointer x coordinate into a preview timestamp
// for tooltips and scrub targets. The preview is independent of the
// clock's own position: hovering never moves the playhead, it only asks
// "what time is under the pointer right now".
//
// Pointer coordinates arrive from outside the timeline element during
// drags, so pixelX is clamped into [0, width] before mapping rather than
// rejected.
func ResolveHover(pixelX float64, sc ScaleContext, currentTimeMs, durationMs int64) (int64, error) {
	if err := sc.Validate(); err != nil {
		return 0, err
	}
	pixelX = clampFloat(pixelX, 0, float64(sc.TimelineWidthPx))

	previewMs, err := PixelToTime(pixelX, sc, currentTimeMs, durationMs)
	if err != nil {
		return 0, err
	}
	metrics.HoverResolutions.Inc()
	return previewMs, nil
}
