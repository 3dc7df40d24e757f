// Chronoline - Session Replay Timeline and Playback Engine
// Copyright 2026 Chronoline Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/chronoline/chronoline

package replay

import (
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// FrameKind classifies a recorded event.
type FrameKind string

// Frame kinds recognized by the engine. Anything else decodes to
// FrameKindUnknown rather than failing the whole recording.
const (
	FrameKindBreadcrumb FrameKind = "breadcrumb"
	FrameKindNetwork    FrameKind = "network"
	FrameKindConsole    FrameKind = "console"
	FrameKindDOM        FrameKind = "dom"
	FrameKindCanvas     FrameKind = "canvas"
	FrameKindMemory     FrameKind = "memory"
	FrameKindUnknown    FrameKind = "unknown"
)

// ParseFrameKind maps a wire kind string to a FrameKind, degrading
// unrecognized values to FrameKindUnknown.
func ParseFrameKind(s string) FrameKind {
	switch FrameKind(strings.ToLower(strings.TrimSpace(s))) {
	case FrameKindBreadcrumb:
		return FrameKindBreadcrumb
	case FrameKindNetwork:
		return FrameKindNetwork
	case FrameKindConsole:
		return FrameKindConsole
	case FrameKindDOM:
		return FrameKindDOM
	case FrameKindCanvas:
		return FrameKindCanvas
	case FrameKindMemory:
		return FrameKindMemory
	default:
		return FrameKindUnknown
	}
}

// Frame is one discrete recorded event, offset in milliseconds from the
// start of its recording. The payload is opaque to the engine.
type Frame struct {
	OffsetMs int64           `json:"offset_ms"`
	Kind     FrameKind       `json:"kind"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

// Recording is an immutable, chronologically ordered event stream. The
// engine borrows it read-only for the lifetime of a viewing session; the
// fetch layer that produced it owns it.
type Recording struct {
	DurationMs     int64
	Frames         []Frame
	HasCanvasFrame bool
}

// NewRecording builds a Recording from a frame slice, stable-sorting by
// offset (ties keep stream order) and computing the canvas flag. Returns
// ErrInvalidRecording for a non-positive duration.
func NewRecording(durationMs int64, frames []Frame) (*Recording, error) {
	if durationMs <= 0 {
		return nil, ErrInvalidRecording
	}

	sorted := make([]Frame, len(frames))
	copy(sorted, frames)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OffsetMs < sorted[j].OffsetMs
	})

	hasCanvas := false
	for _, f := range sorted {
		if f.Kind == FrameKindCanvas {
			hasCanvas = true
			break
		}
	}

	return &Recording{
		DurationMs:     durationMs,
		Frames:         sorted,
		HasCanvasFrame: hasCanvas,
	}, nil
}
