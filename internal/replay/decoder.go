// Chronoline - Session Replay Timeline and Playback Engine
// Copyright 2026 Chronoline Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/chronoline/chronoline

package replay

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/chronoline/chronoline/internal/logging"
)

// wireRecording is the JSON attachment format produced by the fetch
// layer. Offsets are milliseconds from recording start.
type wireRecording struct {
	DurationMs int64       `json:"duration_ms"`
	Events     []wireEvent `json:"events"`
}

type wireEvent struct {
	OffsetMs int64           `json:"offset_ms"`
	Kind     string          `json:"kind"`
	Data     json.RawMessage `json:"data,omitempty"`
}

// DecodeRecording parses a recording attachment into an immutable
// Recording. Malformed individual events degrade (unknown kinds become
// FrameKindUnknown, events outside [0, duration] are dropped with a
// warning); only structural failures such as unparseable JSON or a
// non-positive duration return an error.
func DecodeRecording(r io.Reader) (*Recording, error) {
	var wire wireRecording
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return nil, fmt.Errorf("failed to decode recording: %w", err)
	}
	if wire.DurationMs <= 0 {
		return nil, ErrInvalidRecording
	}

	frames := make([]Frame, 0, len(wire.Events))
	dropped := 0
	for _, ev := range wire.Events {
		if ev.OffsetMs < 0 || ev.OffsetMs > wire.DurationMs {
			dropped++
			continue
		}
		frames = append(frames, Frame{
			OffsetMs: ev.OffsetMs,
			Kind:     ParseFrameKind(ev.Kind),
			Payload:  ev.Data,
		})
	}
	if dropped > 0 {
		logging.Warn().
			Int("dropped", dropped).
			Int64("duration_ms", wire.DurationMs).
			Msg("dropped out-of-range recording events")
	}

	return NewRecording(wire.DurationMs, frames)
}
