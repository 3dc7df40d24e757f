// Chronoline - Session Replay Timeline and Playback Engine
// Copyright 2026 Chronoline Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/chronoline/chronoline

package buckets

// Status is an event outcome rendered on a timeline tick. The vocabulary
// is consumer-defined: replay chapters and cron check-ins use different
// severity sets, so the aggregator never hardcodes one.
type Status string

// StatusEmpty marks a bucket that received no source items. Empty buckets
// are always present in aggregator output so renderers never have to
// infer missing buckets from gaps.
const StatusEmpty Status = "empty"

// Precedence ranks statuses most-severe-first and picks the dominant one
// when a bucket holds conflicting severities.
type Precedence struct {
	rank map[Status]int
}

// NewPrecedence builds a precedence from an ordered most-severe-first
// list, e.g. NewPrecedence("error", "warning", "ok"). Statuses not in the
// list rank below every listed one; StatusEmpty ranks below everything.
func NewPrecedence(mostSevereFirst ...Status) Precedence {
	rank := make(map[Status]int, len(mostSevereFirst))
	for i, s := range mostSevereFirst {
		if _, seen := rank[s]; !seen {
			rank[s] = i
		}
	}
	return Precedence{rank: rank}
}

// severity returns a sortable rank; lower is more severe.
func (p Precedence) severity(s Status) int {
	if s == StatusEmpty {
		return len(p.rank) + 1
	}
	if r, ok := p.rank[s]; ok {
		return r
	}
	return len(p.rank)
}

// Dominant returns the more severe of two statuses; on equal rank the
// first argument wins, which keeps the earliest-seen status stable.
func (p Precedence) Dominant(a, b Status) Status {
	if p.severity(b) < p.severity(a) {
		return b
	}
	return a
}
