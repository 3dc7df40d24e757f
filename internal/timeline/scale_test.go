// Chronoline - Session Replay Timeline and Playback Engine
// Copyright 2026 Chronoline Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/chronoline/chronoline

package timeline

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestScaleContextValidate(t *testing.T) {
	tests := []struct {
		name string
		sc   ScaleContext
		want error
	}{
		{"zoom below one", ScaleContext{Zoom: 0.5, TimelineWidthPx: 1000}, ErrInvalidZoom},
		{"zero zoom", ScaleContext{Zoom: 0, TimelineWidthPx: 1000}, ErrInvalidZoom},
		{"zero width", ScaleContext{Zoom: 2, TimelineWidthPx: 0}, ErrInvalidGeometry},
		{"negative width", ScaleContext{Zoom: 2, TimelineWidthPx: -10}, ErrInvalidGeometry},
		{"valid", ScaleContext{Zoom: 1, TimelineWidthPx: 1}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sc.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := PixelToTime(0, ScaleContext{Zoom: 0.9, TimelineWidthPx: 100}, 0, 1000); !errors.Is(err, ErrInvalidZoom) {
		t.Errorf("PixelToTime with zoom<1 error = %v, want ErrInvalidZoom", err)
	}
	if _, err := TimeToPixel(0, ScaleContext{Zoom: 2, TimelineWidthPx: 100}, 0, 0); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("TimeToPixel with zero duration error = %v, want ErrInvalidRange", err)
	}
}

// At zoom 1 with the playhead mid-recording, mapping uses the centered
// branch: time = current + ((x - w/2)/w) * duration.
func TestPixelToTimeCenteredAtZoomOne(t *testing.T) {
	sc := ScaleContext{Zoom: 1, TimelineWidthPx: 1000}
	const durationMs, currentMs = 60000, 30000

	tests := []struct {
		pixelX float64
		wantMs int64
	}{
		{0, 0},
		{250, 15000},
		{500, 30000},
		{750, 45000},
		{1000, 60000},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("x=%v", tt.pixelX), func(t *testing.T) {
			got, err := PixelToTime(tt.pixelX, sc, currentMs, durationMs)
			if err != nil {
				t.Fatalf("PixelToTime: %v", err)
			}
			if got != tt.wantMs {
				t.Errorf("PixelToTime(%v) = %d, want %d", tt.pixelX, got, tt.wantMs)
			}
		})
	}
}

func TestPixelToTimeBranches(t *testing.T) {
	// zoom 4 over a 80s recording, 800px wide: the viewport covers 20s.
	sc := ScaleContext{Zoom: 4, TimelineWidthPx: 800}
	const durationMs = 80000

	tests := []struct {
		name      string
		currentMs int64
		pixelX    float64
		wantMs    int64
	}{
		// percentComplete 0.05 < 0.125: pinned to start, window is [0s, 20s].
		{"start pin left edge", 4000, 0, 0},
		{"start pin right edge", 4000, 800, 20000},
		{"start pin middle", 4000, 400, 10000},
		// percentComplete 0.95 > 0.875: pinned to end, window is [60s, 80s].
		{"end pin left edge", 76000, 0, 60000},
		{"end pin right edge", 76000, 800, 80000},
		// percentComplete 0.5: centered, window is [30s, 50s].
		{"centered left edge", 40000, 0, 30000},
		{"centered playhead", 40000, 400, 40000},
		{"centered right edge", 40000, 800, 50000},
		// Exactly half a viewport from the start: centered branch.
		{"boundary at initialTranslate", 10000, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PixelToTime(tt.pixelX, sc, tt.currentMs, durationMs)
			if err != nil {
				t.Fatalf("PixelToTime: %v", err)
			}
			if got != tt.wantMs {
				t.Errorf("PixelToTime(x=%v, current=%d) = %d, want %d", tt.pixelX, tt.currentMs, got, tt.wantMs)
			}
		})
	}
}

// Both screen edges always land inside [0, durationMs], for any zoom and
// playhead position.
func TestEdgeClampAcrossZooms(t *testing.T) {
	const durationMs = 3600000
	const width = 1200
	zooms := []float64{1, 1.5, 2, 4, 8, 16, 32}

	for _, zoom := range zooms {
		sc := ScaleContext{Zoom: zoom, TimelineWidthPx: width}
		for pct := 0.0; pct <= 1.0; pct += 0.05 {
			currentMs := int64(pct * durationMs)
			for _, pixelX := range []float64{0, width} {
				got, err := PixelToTime(pixelX, sc, currentMs, durationMs)
				if err != nil {
					t.Fatalf("PixelToTime(zoom=%v, pct=%v): %v", zoom, pct, err)
				}
				if got < 0 || got > durationMs {
					t.Errorf("PixelToTime(x=%v, zoom=%v, current=%d) = %d, outside [0, %d]",
						pixelX, zoom, currentMs, got, durationMs)
				}
			}
		}
	}
}

// TimeToPixel must invert PixelToTime through the same branch selection;
// a naive linear inverse desyncs the scrubber handle at the edges.
func TestPixelTimeRoundTrip(t *testing.T) {
	const durationMs = 600000
	const width = 1000

	for _, zoom := range []float64{1, 2, 5, 10} {
		sc := ScaleContext{Zoom: zoom, TimelineWidthPx: width}
		pxPerMs := width * zoom / float64(durationMs)
		pixelTol := math.Max(1, pxPerMs)
		timeTol := int64(math.Max(1, 1/pxPerMs))

		for pct := 0.0; pct <= 1.0; pct += 0.1 {
			currentMs := int64(pct * durationMs)
			for px := 0.0; px <= width; px += 40 {
				timeMs, err := PixelToTime(px, sc, currentMs, durationMs)
				if err != nil {
					t.Fatalf("PixelToTime: %v", err)
				}

				backPx, err := TimeToPixel(timeMs, sc, currentMs, durationMs)
				if err != nil {
					t.Fatalf("TimeToPixel: %v", err)
				}
				if math.Abs(backPx-px) > pixelTol {
					t.Errorf("zoom=%v current=%d: px %v -> %dms -> px %v, drift beyond %v",
						zoom, currentMs, px, timeMs, backPx, pixelTol)
				}

				backMs, err := PixelToTime(backPx, sc, currentMs, durationMs)
				if err != nil {
					t.Fatalf("PixelToTime (return): %v", err)
				}
				if diff := backMs - timeMs; diff < -timeTol || diff > timeTol {
					t.Errorf("zoom=%v current=%d: %dms -> px %v -> %dms, drift beyond %dms",
						zoom, currentMs, timeMs, backPx, backMs, timeTol)
				}
			}
		}
	}
}
