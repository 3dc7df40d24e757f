// Chronoline - Session Replay Timeline and Playback Engine
// Copyright 2026 Chronoline Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/chronoline/chronoline

package replay

import (
	"fmt"
	"sort"
)

// Index is an ordered, immutable view over a recording's frames with
// O(log n) chronological lookups. Recordings can hold thousands of
// frames, so every query binary-searches the sorted offset sequence.
//
// The zero value is an empty index; all queries on it report not-found.
type Index struct {
	frames     []Frame
	durationMs int64
}

// NewIndex builds an index over a recording's frames. A nil recording
// yields an empty index, which is valid and returns no frames.
func NewIndex(rec *Recording) *Index {
	if rec == nil {
		return &Index{}
	}
	return &Index{frames: rec.Frames, durationMs: rec.DurationMs}
}

// Len returns the number of indexed frames.
func (ix *Index) Len() int { return len(ix.frames) }

// checkOffset rejects queries outside [0, durationMs]. Empty indexes are
// exempt: an empty recording answers every query with not-found.
func (ix *Index) checkOffset(ms int64) error {
	if len(ix.frames) == 0 {
		return nil
	}
	if ms < 0 || ms > ix.durationMs {
		return fmt.Errorf("%w: offset %d outside [0, %d]", ErrOutOfRange, ms, ix.durationMs)
	}
	return nil
}

// NextFrame returns the smallest-offset frame with OffsetMs strictly
// greater than afterMs. The boolean reports whether such a frame exists.
// At a tie run of identical offsets the first frame in stream order wins.
func (ix *Index) NextFrame(afterMs int64) (Frame, bool, error) {
	if err := ix.checkOffset(afterMs); err != nil {
		return Frame{}, false, err
	}
	i := sort.Search(len(ix.frames), func(i int) bool {
		return ix.frames[i].OffsetMs > afterMs
	})
	if i == len(ix.frames) {
		return Frame{}, false, nil
	}
	return ix.frames[i], true, nil
}

// PrevFrame returns the largest-offset frame with OffsetMs strictly
// smaller than beforeMs. At a tie run the last frame in stream order wins,
// so Next/Prev stepping traverses ties in opposite directions
// consistently.
func (ix *Index) PrevFrame(beforeMs int64) (Frame, bool, error) {
	if err := ix.checkOffset(beforeMs); err != nil {
		return Frame{}, false, err
	}
	i := sort.Search(len(ix.frames), func(i int) bool {
		return ix.frames[i].OffsetMs >= beforeMs
	})
	if i == 0 {
		return Frame{}, false, nil
	}
	return ix.frames[i-1], true, nil
}

// FrameAtOrBefore returns the largest-offset frame with OffsetMs at or
// before ms. Hover tooltips use it to show the event under the pointer.
func (ix *Index) FrameAtOrBefore(ms int64) (Frame, bool, error) {
	if err := ix.checkOffset(ms); err != nil {
		return Frame{}, false, err
	}
	i := sort.Search(len(ix.frames), func(i int) bool {
		return ix.frames[i].OffsetMs > ms
	})
	if i == 0 {
		return Frame{}, false, nil
	}
	return ix.frames[i-1], true, nil
}

// FramesInRange returns the frames in the half-open interval
// [startMs, endMs), ascending. The result is a view into the index's
// backing array: finite, restartable, and not to be mutated.
func (ix *Index) FramesInRange(startMs, endMs int64) ([]Frame, error) {
	if startMs > endMs {
		return nil, fmt.Errorf("%w: inverted range [%d, %d)", ErrOutOfRange, startMs, endMs)
	}
	if err := ix.checkOffset(startMs); err != nil {
		return nil, err
	}
	if err := ix.checkOffset(endMs); err != nil {
		return nil, err
	}
	lo := sort.Search(len(ix.frames), func(i int) bool {
		return ix.frames[i].OffsetMs >= startMs
	})
	hi := sort.Search(len(ix.frames), func(i int) bool {
		return ix.frames[i].OffsetMs >= endMs
	})
	return ix.frames[lo:hi], nil
}
