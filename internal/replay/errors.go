// Chronoline - Session Replay Timeline and Playback Engine
// Copyright 2026 Chronoline Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/chronoline/chronoline

// Package replay provides common error definitions.
package replay

import "errors"

// ErrOutOfRange is returned when an index query falls outside the
// recording's [0, durationMs] span. The index never clamps; clamping is
// the caller's job.
var ErrOutOfRange = errors.New("offset out of range")

// ErrInvalidRecording is returned when a recording has a non-positive
// duration. Callers treat this as "still loading" rather than fatal.
var ErrInvalidRecording = errors.New("invalid recording: duration must be positive")
