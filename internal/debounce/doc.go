// Chronoline - Session Replay Timeline and Playback Engine
// Copyright 2026 Chronoline Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/chronoline/chronoline

// Package debounce provides a coalescing timer: schedule, cancel and
// reschedule on repeated triggers within a quiet window, fire once
// quiescent. The session uses it to fold resize storms and frame-data
// arrival into single window/bucket recomputations.
package debounce
