// Chronoline - Session Replay Timeline and Playback Engine
// Copyright 2026 Chronoline Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/chronoline/chronoline

/*
Package buckets aggregates frames and check-ins into renderable timeline
ticks.

Many events collapse into one tick per fixed-width time slice. Each
bucket carries the full status multiset plus a single dominant status
chosen by a caller-supplied Precedence, because replay chapters and cron
check-ins rank severities differently.

	prec := buckets.NewPrecedence("error", "missed", "ok")
	rows := buckets.Aggregate(items, window, prec)

Aggregate output is complete: exactly BucketCount buckets, empty ones
included with StatusEmpty.
*/
package buckets
