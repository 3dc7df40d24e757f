// Chronoline - Session Replay Timeline and Playback Engine
// Copyright 2026 Chronoline Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/chronoline/chronoline

package timeline

import (
	"errors"
	"testing"
)

func TestResolveHover(t *testing.T) {
	sc := ScaleContext{Zoom: 1, TimelineWidthPx: 1000}
	const durationMs = 60000

	// Hover is a pure preview: the same pointer position resolves to the
	// same time regardless of where the playhead is at zoom 1 mid-branch
	// equivalents, and it never moves the playhead.
	got, err := ResolveHover(500, sc, 30000, durationMs)
	if err != nil {
		t.Fatalf("ResolveHover: %v", err)
	}
	if got != 30000 {
		t.Errorf("ResolveHover(500) = %d, want 30000", got)
	}
}

// Pointer coordinates from drags can leave the timeline element; they
// clamp instead of erroring.
func TestResolveHoverClampsPointer(t *testing.T) {
	sc := ScaleContext{Zoom: 1, TimelineWidthPx: 1000}
	const durationMs = 60000

	tests := []struct {
		name   string
		pixelX float64
		wantMs int64
	}{
		{"left of element", -250, 0},
		{"right of element", 1800, 60000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveHover(tt.pixelX, sc, 30000, durationMs)
			if err != nil {
				t.Fatalf("ResolveHover: %v", err)
			}
			if got != tt.wantMs {
				t.Errorf("ResolveHover(%v) = %d, want %d", tt.pixelX, got, tt.wantMs)
			}
		})
	}
}

func TestResolveHoverInvalidScale(t *testing.T) {
	if _, err := ResolveHover(10, ScaleContext{Zoom: 0.25, TimelineWidthPx: 100}, 0, 1000); !errors.Is(err, ErrInvalidZoom) {
		t.Errorf("error = %v, want ErrInvalidZoom", err)
	}
}
