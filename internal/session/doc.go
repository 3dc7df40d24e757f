// Chronoline - Session Replay Timeline and Playback Engine
// Copyright 2026 Chronoline Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/chronoline/chronoline

/*
Package session composes the timeline engine into one viewer session.

A Session owns exactly one PlaybackState and ScaleContext; nothing
outside this package mutates them directly. Inbound it takes the discrete
user commands (play, pause, seek, speed, rewind, next-frame, zoom) plus
the two external events that invalidate derived state: container resize
and recording-data arrival. Both route through a single debouncer so a
burst produces one window+bucket recomputation.

Outbound it exposes read-only Snapshots on demand and through an
observer interface:

	sess, _ := session.New(rng, 1200, session.WithRecording(rec))
	defer sess.Close()
	unsubscribe := sess.Subscribe(func(sn session.Snapshot) { render(sn) })
	defer unsubscribe()
	sess.Play()

A session created without a recording is the "still loading" state:
placeholder window, empty buckets, hover disabled, playback inert. That
state is expected, not an error.
*/
package session
