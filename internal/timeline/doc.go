// Chronoline - Session Replay Timeline and Playback Engine
// Copyright 2026 Chronoline Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/chronoline/chronoline

/*
Package timeline converts time ranges into zoomable pixel-space timelines.

Three concerns live here, all pure functions:

  - BuildWindow derives a bucketed WindowConfig (bucket size from a ladder
    of "nice" durations, bucket count, pixels-per-millisecond) from a
    TimeRange and a pixel width.
  - PixelToTime / TimeToPixel map between on-screen coordinates and
    timeline time under a zoom factor, with deterministic edge clamping
    that keeps the zoomed viewport inside [0, durationMs] while centering
    the playhead whenever possible.
  - ResolveHover produces the tooltip preview time under the pointer,
    independent of the playback position.

# Invariants

BucketCount * BucketSizeMs covers the window within one bucket's rounding
error. For all zoom >= 1 and playhead positions, pixel 0 and pixel width
both map into [0, durationMs]. PixelToTime(TimeToPixel(t)) == t within one
pixel's time resolution.

Misuse (non-positive width, zoom below 1, empty range) fails fast with
ErrInvalidGeometry, ErrInvalidZoom or ErrInvalidRange; nothing here
degrades silently, because these are caller bugs rather than external
input.
*/
package timeline
