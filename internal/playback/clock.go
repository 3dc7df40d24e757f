// Chronoline - Session Replay Timeline and Playback Engine
// Copyright 2026 Chronoline Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/chronoline/chronoline

package playback

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/chronoline/chronoline/internal/logging"
	"github.com/chronoline/chronoline/internal/metrics"
	"github.com/chronoline/chronoline/internal/replay"
)

// ErrInvalidSpeed is returned when SetSpeed receives a non-positive
// multiplier.
var ErrInvalidSpeed = errors.New("invalid speed: multiplier must be positive")

// State is the playback state machine's current phase.
type State string

// Playback states. A new clock starts Paused at time 0; reaching the
// recording's end transitions to Ended, and Play from Ended restarts at 0.
const (
	StatePaused  State = "paused"
	StatePlaying State = "playing"
	StateEnded   State = "ended"
)

// PlaybackState is the read-only snapshot consumers render from.
type PlaybackState struct {
	CurrentTimeMs int64   `json:"current_time_ms"`
	State         State   `json:"state"`
	Speed         float64 `json:"speed"`
}

func (s State) String() string { return string(s) }

// IsPlaying reports whether the clock is advancing.
func (s PlaybackState) IsPlaying() bool { return s.State == StatePlaying }

// defaultTickInterval is how often a playing clock folds wall time into
// playback time. 50ms keeps scrubber motion smooth without burning CPU.
const defaultTickInterval = 50 * time.Millisecond

// Clock is the virtual playback clock: a small state machine holding the
// current position, play/pause state and speed, advancing over wall time
// while playing.
//
// At most one scheduled advance is outstanding at any moment. Every
// mutation (Play, Pause, Seek, SetSpeed) first invalidates any pending
// tick via a generation counter, then re-arms if still playing. This is
// the engine's only ordering hazard: without it a stale tick racing a
// user seek could drag CurrentTimeMs backwards.
type Clock struct {
	mu    sync.Mutex
	sched Scheduler
	tick  time.Duration

	durationMs int64
	idx        *replay.Index

	cur         int64
	speed       float64
	state       State
	lastAdvance time.Time

	pending Timer
	gen     uint64

	onChange func(PlaybackState)
	log      zerolog.Logger
}

// Option configures a Clock.
type Option func(*Clock)

// WithScheduler replaces the wall-clock scheduler (tests inject a fake).
func WithScheduler(s Scheduler) Option {
	return func(c *Clock) { c.sched = s }
}

// WithTickInterval overrides the natural-advance interval.
func WithTickInterval(d time.Duration) Option {
	return func(c *Clock) {
		if d > 0 {
			c.tick = d
		}
	}
}

// WithIndex attaches a frame index for StepToNextFrame.
func WithIndex(idx *replay.Index) Option {
	return func(c *Clock) { c.idx = idx }
}

// WithSpeed sets the initial speed multiplier; non-positive values are
// ignored and the default of 1 kept.
func WithSpeed(speed float64) Option {
	return func(c *Clock) {
		if speed > 0 {
			c.speed = speed
		}
	}
}

// OnChange registers a callback invoked after every state change, outside
// the clock's lock. The session layer uses it to fan out snapshots.
func OnChange(fn func(PlaybackState)) Option {
	return func(c *Clock) { c.onChange = fn }
}

// NewClock creates a paused clock at time 0 over a recording of the given
// duration. A non-positive duration produces an inert clock whose
// operations are no-ops, matching the graceful handling of recordings
// that have not finished loading.
func NewClock(durationMs int64, opts ...Option) *Clock {
	c := &Clock{
		sched:      realScheduler{},
		tick:       defaultTickInterval,
		durationMs: durationMs,
		speed:      1,
		state:      StatePaused,
		log:        logging.With().Str("component", "playback").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns the current playback state.
func (c *Clock) Snapshot() PlaybackState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// CurrentTimeMs returns the playhead position.
func (c *Clock) CurrentTimeMs() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur
}

func (c *Clock) snapshotLocked() PlaybackState {
	return PlaybackState{CurrentTimeMs: c.cur, State: c.state, Speed: c.speed}
}

// Play starts or resumes playback. From Ended the position resets to 0
// first. No-op when already playing or when the clock is inert.
func (c *Clock) Play() {
	c.mu.Lock()
	if c.state == StatePlaying || c.durationMs <= 0 {
		c.mu.Unlock()
		return
	}
	from := c.state
	c.invalidateLocked()
	if c.state == StateEnded {
		c.cur = 0
	}
	c.state = StatePlaying
	c.lastAdvance = c.sched.Now()
	c.armLocked()
	st := c.snapshotLocked()
	c.mu.Unlock()

	metrics.RecordTransition(string(from), string(StatePlaying))
	c.log.Debug().Int64("at_ms", st.CurrentTimeMs).Msg("play")
	c.emit(st)
}

// Pause suspends playback, folding in the wall time elapsed since the
// last tick so the position is exact at the pause point. No-op unless
// playing.
func (c *Clock) Pause() {
	c.mu.Lock()
	if c.state != StatePlaying {
		c.mu.Unlock()
		return
	}
	c.invalidateLocked()
	c.foldElapsedLocked()
	c.state = StatePaused
	st := c.snapshotLocked()
	c.mu.Unlock()

	metrics.RecordTransition(string(StatePlaying), string(StatePaused))
	c.log.Debug().Int64("at_ms", st.CurrentTimeMs).Msg("pause")
	c.emit(st)
}

// Seek moves the playhead to ms, clamped into [0, durationMs]. The
// play/pause state is unchanged; a playing clock resumes advancing from
// the new position. Any outstanding scheduled advance is invalidated so
// it cannot race the new position.
func (c *Clock) Seek(ms int64) {
	c.mu.Lock()
	if c.durationMs <= 0 {
		c.mu.Unlock()
		return
	}
	c.invalidateLocked()
	if ms < 0 {
		ms = 0
	}
	if ms > c.durationMs {
		ms = c.durationMs
	}
	c.cur = ms
	c.lastAdvance = c.sched.Now()
	if c.state == StatePlaying {
		c.armLocked()
	}
	st := c.snapshotLocked()
	c.mu.Unlock()

	metrics.PlaybackSeeks.Inc()
	c.emit(st)
}

// Rewind seeks backwards by deltaMs, clamping at 0.
func (c *Clock) Rewind(deltaMs int64) {
	c.mu.Lock()
	cur := c.cur
	c.mu.Unlock()
	c.Seek(cur - deltaMs)
}

// SetSpeed changes the playback rate, effective immediately: elapsed wall
// time is folded in at the old speed before the new one applies to the
// next scheduled advance.
func (c *Clock) SetSpeed(multiplier float64) error {
	if multiplier <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidSpeed, multiplier)
	}

	c.mu.Lock()
	c.invalidateLocked()
	if c.state == StatePlaying {
		// Fold wall time at the old rate before the new one applies.
		c.foldElapsedLocked()
	}
	c.speed = multiplier
	if c.state == StatePlaying {
		c.armLocked()
	}
	st := c.snapshotLocked()
	c.mu.Unlock()

	c.log.Debug().Float64("speed", multiplier).Msg("speed changed")
	c.emit(st)
	return nil
}

// StepToNextFrame seeks to the next frame after the current position, the
// "next chapter" operation. Without an index, or with no frame remaining,
// it is a no-op; running off the end of the frame list does not end
// playback.
func (c *Clock) StepToNextFrame() error {
	c.mu.Lock()
	idx := c.idx
	cur := c.cur
	c.mu.Unlock()

	if idx == nil {
		return nil
	}
	f, ok, err := idx.NextFrame(cur)
	if err != nil {
		return fmt.Errorf("step to next frame: %w", err)
	}
	if !ok {
		return nil
	}
	c.Seek(f.OffsetMs)
	return nil
}

// invalidateLocked cancels any pending scheduled advance. Bumping the
// generation makes a tick that already fired but not yet locked a no-op.
func (c *Clock) invalidateLocked() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	c.gen++
}

// armLocked schedules the next natural advance for the current
// generation. Callers must hold the lock and have no pending timer.
func (c *Clock) armLocked() {
	gen := c.gen
	c.pending = c.sched.AfterFunc(c.tick, func() { c.advance(gen) })
}

// foldElapsedLocked converts wall time since lastAdvance into playback
// time at the current speed, transitioning to Ended at the duration.
func (c *Clock) foldElapsedLocked() {
	now := c.sched.Now()
	elapsed := now.Sub(c.lastAdvance)
	c.lastAdvance = now
	if elapsed <= 0 {
		return
	}
	c.cur += int64(float64(elapsed.Milliseconds()) * c.speed)
	if c.cur >= c.durationMs {
		c.cur = c.durationMs
		c.state = StateEnded
	}
}

// advance is the natural playback tick.
func (c *Clock) advance(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || c.state != StatePlaying {
		// A mutation invalidated this tick after it was scheduled.
		c.mu.Unlock()
		return
	}
	c.pending = nil
	c.foldElapsedLocked()
	ended := c.state == StateEnded
	if !ended {
		c.armLocked()
	}
	st := c.snapshotLocked()
	c.mu.Unlock()

	metrics.PlaybackTicks.Inc()
	if ended {
		metrics.RecordTransition(string(StatePlaying), string(StateEnded))
		c.log.Debug().Msg("playback ended")
	}
	c.emit(st)
}

func (c *Clock) emit(st PlaybackState) {
	if c.onChange != nil {
		c.onChange(st)
	}
}
