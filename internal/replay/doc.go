// Chronoline - Session Replay Timeline and Playback Engine
// Copyright 2026 Chronoline Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/chronoline/chronoline

/*
Package replay models recorded event streams and indexes them for
chronological lookup.

A Recording is a read-only sequence of Frames sorted ascending by
millisecond offset; offsets are not unique and ties keep their original
stream order. Index wraps a Recording with binary-searched queries:

	idx := replay.NewIndex(rec)
	next, ok, err := idx.NextFrame(currentTimeMs)
	window, err := idx.FramesInRange(0, 5000)

The index performs no clamping. Queries outside [0, durationMs] return
ErrOutOfRange so caller bugs surface early; an empty recording instead
answers every query with not-found, because a missing or empty recording
is an expected transient state while data loads.

DecodeRecording is the narrow inbound boundary for the external fetch
layer: it parses a JSON attachment of events into a Recording, degrading
malformed individual events rather than failing the stream.
*/
package replay
