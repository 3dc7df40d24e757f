// Chronoline - Session Replay Timeline and Playback Engine
// Copyright 2026 Chronoline Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/chronoline/chronoline

/*
Package playback implements the virtual playback clock.

The clock is a three-state machine (Paused, Playing, Ended) owning the
playhead position and speed. While playing, a single periodically
re-armed timer folds elapsed wall time into playback time at the current
speed multiplier; reaching the recording's duration transitions to Ended
and stops scheduling.

The concurrency contract is narrow: at most one scheduled advance is
outstanding at any time, and every mutation invalidates the pending one
before applying new state. Rapid seeks therefore never make the playhead
regress or skip.

Time is read through a Scheduler interface so tests advance a fake clock
instead of sleeping.
*/
package playback
