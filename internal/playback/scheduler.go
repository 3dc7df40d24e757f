// Chronoline - Session Replay Timeline and Playback Engine
// Copyright 2026 Chronoline Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/chronoline/chronoline

package playback

import "time"

// Timer is a cancelable scheduled callback.
type Timer interface {
	// Stop prevents the callback from firing if it has not fired yet.
	Stop() bool
}

// Scheduler abstracts wall-clock reads and timer arming so tests can
// drive the clock deterministically instead of sleeping.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// realScheduler delegates to the time package.
type realScheduler struct{}

func (realScheduler) Now() time.Time { return time.Now() }

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealScheduler returns the production scheduler backed by the time
// package.
func RealScheduler() Scheduler { return realScheduler{} }
