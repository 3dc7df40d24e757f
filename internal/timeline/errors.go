// Chronoline - Session Replay Timeline and Playback Engine
// Copyright 2026 Chronoline Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/chronoline/chronoline

// Package timeline provides common error definitions.
package timeline

import "errors"

// ErrInvalidGeometry is returned when a non-positive pixel width reaches
// the window builder or scale mapper.
var ErrInvalidGeometry = errors.New("invalid geometry: pixel width must be positive")

// ErrInvalidZoom is returned when a zoom factor below 1 reaches the scale
// mapper. Zoom of 1 means the whole timeline is visible.
var ErrInvalidZoom = errors.New("invalid zoom: factor must be >= 1")

// ErrInvalidRange is returned for a zero or negative-length time range.
var ErrInvalidRange = errors.New("invalid time range: end must be after start")
