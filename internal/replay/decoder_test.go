// Chronoline - Session Replay Timeline and Playback Engine
// Copyright 2026 Chronoline Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/chronoline/chronoline

package replay

import (
	"errors"
	"strings"
	"testing"
)

func TestParseFrameKind(t *testing.T) {
	tests := []struct {
		in   string
		want FrameKind
	}{
		{"breadcrumb", FrameKindBreadcrumb},
		{"network", FrameKindNetwork},
		{"console", FrameKindConsole},
		{"dom", FrameKindDOM},
		{"canvas", FrameKindCanvas},
		{"memory", FrameKindMemory},
		{"DOM", FrameKindDOM},
		{" canvas ", FrameKindCanvas},
		{"", FrameKindUnknown},
		{"websocket", FrameKindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseFrameKind(tt.in); got != tt.want {
				t.Errorf("ParseFrameKind(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewRecordingSortsStable(t *testing.T) {
	frames := []Frame{
		{OffsetMs: 300, Kind: FrameKindNetwork},
		{OffsetMs: 100, Kind: FrameKindBreadcrumb},
		{OffsetMs: 300, Kind: FrameKindConsole}, // tie with the network frame
		{OffsetMs: 200, Kind: FrameKindDOM},
	}
	rec, err := NewRecording(1000, frames)
	if err != nil {
		t.Fatalf("NewRecording: %v", err)
	}

	wantKinds := []FrameKind{FrameKindBreadcrumb, FrameKindDOM, FrameKindNetwork, FrameKindConsole}
	for i, f := range rec.Frames {
		if f.Kind != wantKinds[i] {
			t.Errorf("frame %d kind = %q, want %q (ties must keep stream order)", i, f.Kind, wantKinds[i])
		}
	}
	if rec.HasCanvasFrame {
		t.Error("HasCanvasFrame = true without canvas frames")
	}
}

func TestNewRecordingCanvasFlag(t *testing.T) {
	rec, err := NewRecording(1000, []Frame{{OffsetMs: 10, Kind: FrameKindCanvas}})
	if err != nil {
		t.Fatalf("NewRecording: %v", err)
	}
	if !rec.HasCanvasFrame {
		t.Error("HasCanvasFrame = false, want true")
	}
}

func TestNewRecordingInvalidDuration(t *testing.T) {
	for _, durationMs := range []int64{0, -5} {
		if _, err := NewRecording(durationMs, nil); !errors.Is(err, ErrInvalidRecording) {
			t.Errorf("NewRecording(%d) error = %v, want ErrInvalidRecording", durationMs, err)
		}
	}
}

func TestDecodeRecording(t *testing.T) {
	input := `{
		"duration_ms": 60000,
		"events": [
			{"offset_ms": 3400, "kind": "network", "data": {"url": "/api/issues"}},
			{"offset_ms": 1200, "kind": "breadcrumb"},
			{"offset_ms": 2000, "kind": "rage-click"},
			{"offset_ms": 70000, "kind": "console"},
			{"offset_ms": -10, "kind": "dom"}
		]
	}`

	rec, err := DecodeRecording(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeRecording: %v", err)
	}
	if rec.DurationMs != 60000 {
		t.Errorf("DurationMs = %d, want 60000", rec.DurationMs)
	}
	// Out-of-range events dropped, remainder sorted, unknown kind degraded.
	if len(rec.Frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(rec.Frames))
	}
	wantOffsets := []int64{1200, 2000, 3400}
	for i, f := range rec.Frames {
		if f.OffsetMs != wantOffsets[i] {
			t.Errorf("frame %d offset = %d, want %d", i, f.OffsetMs, wantOffsets[i])
		}
	}
	if rec.Frames[1].Kind != FrameKindUnknown {
		t.Errorf("unrecognized kind = %q, want %q", rec.Frames[1].Kind, FrameKindUnknown)
	}
	if len(rec.Frames[2].Payload) == 0 {
		t.Error("payload was not preserved")
	}
}

func TestDecodeRecordingStructuralErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"zero duration", `{"duration_ms": 0, "events": []}`, ErrInvalidRecording},
		{"negative duration", `{"duration_ms": -1}`, ErrInvalidRecording},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeRecording(strings.NewReader(tt.input)); !errors.Is(err, tt.want) {
				t.Errorf("DecodeRecording error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := DecodeRecording(strings.NewReader("{not json")); err == nil {
		t.Error("DecodeRecording accepted malformed JSON")
	}
}
