// Chronoline - Session Replay Timeline and Playback Engine
// Copyright 2026 Chronoline Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/chronoline/chronoline

package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/chronoline/chronoline/internal/buckets"
	"github.com/chronoline/chronoline/internal/config"
	"github.com/chronoline/chronoline/internal/debounce"
	"github.com/chronoline/chronoline/internal/logging"
	"github.com/chronoline/chronoline/internal/metrics"
	"github.com/chronoline/chronoline/internal/playback"
	"github.com/chronoline/chronoline/internal/replay"
	"github.com/chronoline/chronoline/internal/timeline"
)

// Classifier maps a frame to the status its timeline tick renders with.
type Classifier func(replay.Frame) buckets.Status

// DefaultClassifier uses the frame kind itself as the status. Consumers
// with a real severity vocabulary (replay chapters, cron check-ins)
// supply their own classifier and precedence.
func DefaultClassifier(f replay.Frame) buckets.Status {
	return buckets.Status(f.Kind)
}

// Session is the composition root for one viewing session. It owns the
// playback clock, scale context and derived window/bucket state, consumes
// user commands, and publishes read-only snapshots to subscribers.
//
// The recording itself is borrowed read-only from the fetch layer. A
// session created before the recording has loaded renders a placeholder
// window with hover and playback disabled until SetRecording delivers the
// data.
type Session struct {
	id  uuid.UUID
	cfg config.Engine

	mu         sync.RWMutex
	rec        *replay.Recording
	idx        *replay.Index
	rng        timeline.TimeRange
	pixelWidth int
	scale      timeline.ScaleContext
	window     timeline.WindowConfig
	rows       []buckets.Bucket
	trigger    string
	closed     bool

	clock    *playback.Clock
	sched    playback.Scheduler
	classify Classifier
	prec     buckets.Precedence
	deb      *debounce.Debouncer

	subMu   sync.Mutex
	subs    map[uint64]func(Snapshot)
	nextSub uint64

	log zerolog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithRecording supplies the recording at construction instead of a later
// SetRecording call.
func WithRecording(rec *replay.Recording) Option {
	return func(s *Session) { s.rec = rec }
}

// WithEngine overrides the engine tunables (defaults: config.Default()).
func WithEngine(cfg config.Engine) Option {
	return func(s *Session) { s.cfg = cfg }
}

// WithClassifier sets the frame-to-status classifier.
func WithClassifier(fn Classifier) Option {
	return func(s *Session) {
		if fn != nil {
			s.classify = fn
		}
	}
}

// WithPrecedence sets the status precedence used for bucket dominance.
func WithPrecedence(p buckets.Precedence) Option {
	return func(s *Session) { s.prec = p }
}

// WithScheduler injects the timer scheduler used by the playback clock
// (tests drive a fake instead of sleeping).
func WithScheduler(sched playback.Scheduler) Option {
	return func(s *Session) { s.sched = sched }
}

// New creates a viewer session over a time range rendered at pixelWidth.
func New(rng timeline.TimeRange, pixelWidth int, opts ...Option) (*Session, error) {
	if rng.DurationMs() <= 0 {
		return nil, timeline.ErrInvalidRange
	}
	if pixelWidth <= 0 {
		return nil, fmt.Errorf("%w: got %d", timeline.ErrInvalidGeometry, pixelWidth)
	}

	s := &Session{
		id:         uuid.New(),
		cfg:        config.Default().Engine,
		rng:        rng,
		pixelWidth: pixelWidth,
		scale:      timeline.ScaleContext{Zoom: 1, TimelineWidthPx: pixelWidth},
		classify:   DefaultClassifier,
		prec:       buckets.NewPrecedence(),
		sched:      playback.RealScheduler(),
		subs:       make(map[uint64]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logging.With().Str("component", "session").Str("session", s.id.String()).Logger()

	s.attachRecording(s.rec)
	s.deb = debounce.New(s.cfg.DebounceWindow, s.recompute)

	// Initial state is computed synchronously so the first Snapshot is
	// complete without waiting out a debounce window.
	s.trigger = "init"
	s.recompute()

	metrics.ActiveSessions.Inc()
	s.log.Info().
		Int("pixel_width", pixelWidth).
		Int64("range_ms", rng.DurationMs()).
		Bool("loading", s.rec == nil).
		Msg("session created")
	return s, nil
}

// ID returns the session's identity.
func (s *Session) ID() string { return s.id.String() }

// attachRecording builds the index and clock for a recording (which may
// be nil, leaving an inert clock until data arrives).
func (s *Session) attachRecording(rec *replay.Recording) {
	s.rec = rec
	s.idx = replay.NewIndex(rec)

	var durationMs int64
	if rec != nil {
		durationMs = rec.DurationMs
	}
	s.clock = playback.NewClock(durationMs,
		playback.WithIndex(s.idx),
		playback.WithScheduler(s.sched),
		playback.WithSpeed(s.cfg.DefaultSpeed),
		playback.OnChange(func(playback.PlaybackState) { s.publish() }),
	)
}

// SetRecording delivers (or replaces) the recording, e.g. when the fetch
// layer finishes loading. Playback restarts paused at 0; the window and
// buckets recompute after the debounce window, coalescing with any
// concurrent resize burst.
func (s *Session) SetRecording(rec *replay.Recording) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	old := s.clock
	s.attachRecording(rec)
	s.trigger = "data"
	s.mu.Unlock()

	old.Pause()
	s.deb.Trigger()
}

// Resize reports a new timeline width from the host's resize observer.
// Bursts coalesce into one recomputation. Non-positive widths are caller
// misuse and fail with ErrInvalidGeometry.
func (s *Session) Resize(pixelWidth int) error {
	if pixelWidth <= 0 {
		return fmt.Errorf("%w: got %d", timeline.ErrInvalidGeometry, pixelWidth)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.pixelWidth = pixelWidth
	s.scale.TimelineWidthPx = pixelWidth
	s.trigger = "resize"
	s.mu.Unlock()

	s.deb.Trigger()
	return nil
}

// SetZoom changes the zoom multiplier. Below 1 is ErrInvalidZoom; above
// the configured maximum clamps.
func (s *Session) SetZoom(zoom float64) error {
	if zoom < 1 {
		return fmt.Errorf("%w: got %v", timeline.ErrInvalidZoom, zoom)
	}
	if zoom > s.cfg.MaxZoom {
		zoom = s.cfg.MaxZoom
	}

	s.mu.Lock()
	s.scale.Zoom = zoom
	s.mu.Unlock()

	s.publish()
	return nil
}

// Play starts or resumes playback.
func (s *Session) Play() { s.currentClock().Play() }

// Pause suspends playback.
func (s *Session) Pause() { s.currentClock().Pause() }

// Seek moves the playhead, clamped into the recording.
func (s *Session) Seek(ms int64) { s.currentClock().Seek(ms) }

// Rewind seeks backwards by deltaMs, clamping at 0.
func (s *Session) Rewind(deltaMs int64) { s.currentClock().Rewind(deltaMs) }

// StepToNextFrame jumps to the next chapter frame, if any.
func (s *Session) StepToNextFrame() error { return s.currentClock().StepToNextFrame() }

// SetSpeed changes the playback rate. Non-positive multipliers fail with
// playback.ErrInvalidSpeed; values outside the configured bounds clamp.
func (s *Session) SetSpeed(multiplier float64) error {
	if multiplier <= 0 {
		return fmt.Errorf("%w: got %v", playback.ErrInvalidSpeed, multiplier)
	}
	if multiplier < s.cfg.MinSpeed {
		multiplier = s.cfg.MinSpeed
	}
	if multiplier > s.cfg.MaxSpeed {
		multiplier = s.cfg.MaxSpeed
	}
	return s.currentClock().SetSpeed(multiplier)
}

// Hover resolves the preview timestamp under the pointer. The second
// return is false while the recording has not loaded: tooltips are
// disabled rather than showing times into a placeholder.
func (s *Session) Hover(pixelX float64) (int64, bool, error) {
	s.mu.RLock()
	rec := s.rec
	scale := s.scale
	s.mu.RUnlock()

	if rec == nil {
		return 0, false, nil
	}
	previewMs, err := timeline.ResolveHover(pixelX, scale, s.clockTimeMs(), rec.DurationMs)
	if err != nil {
		return 0, false, err
	}
	return previewMs, true, nil
}

// HoverFrame resolves the frame the hover tooltip describes: the last
// frame at or before the preview timestamp under the pointer. False when
// the recording has not loaded or no frame precedes the pointer.
func (s *Session) HoverFrame(pixelX float64) (replay.Frame, bool, error) {
	previewMs, ok, err := s.Hover(pixelX)
	if err != nil || !ok {
		return replay.Frame{}, false, err
	}

	s.mu.RLock()
	idx := s.idx
	s.mu.RUnlock()
	return idx.FrameAtOrBefore(previewMs)
}

// ScrubberPixel returns the scrubber handle's x position for the current
// playhead, using the same branch selection as hover mapping so handle
// and tooltip never desync at the zoomed edges.
func (s *Session) ScrubberPixel() (float64, error) {
	s.mu.RLock()
	rec := s.rec
	scale := s.scale
	s.mu.RUnlock()

	if rec == nil {
		return 0, nil
	}
	cur := s.clockTimeMs()
	return timeline.TimeToPixel(cur, scale, cur, rec.DurationMs)
}

// Close tears the session down: pending recomputes flush, the clock
// pauses, future commands become no-ops.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.deb.Flush()
	s.deb.Stop()
	s.currentClock().Pause()
	metrics.ActiveSessions.Dec()
	s.log.Info().Msg("session closed")
}

func (s *Session) currentClock() *playback.Clock {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clock
}

func (s *Session) clockTimeMs() int64 {
	return s.currentClock().CurrentTimeMs()
}

// recompute rebuilds the window descriptor and bucket rows. Runs on the
// debounce goroutine (or synchronously at construction).
func (s *Session) recompute() {
	start := time.Now()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	trigger := s.trigger
	if trigger == "" {
		trigger = "data"
	}
	s.trigger = ""

	window, err := timeline.BuildWindow(s.rng, s.pixelWidth, timeline.DensityBand{
		MinPixelsPerBucket: s.cfg.MinPixelsPerBucket,
		MaxPixelsPerBucket: s.cfg.MaxPixelsPerBucket,
	})
	if err != nil {
		// Range and width are validated on the way in, so this is a bug.
		s.mu.Unlock()
		s.log.Error().Err(err).Msg("window recompute failed")
		return
	}
	s.window = window

	if s.rec != nil {
		items := buckets.FramesToItems(s.rec.Frames, s.classify)
		s.rows = buckets.Aggregate(items, window, s.prec)
	} else {
		s.rows = buckets.Aggregate(nil, window, s.prec)
	}
	s.mu.Unlock()

	metrics.ObserveRecompute(trigger, time.Since(start))
	s.log.Debug().
		Str("trigger", trigger).
		Int("buckets", window.BucketCount).
		Int64("bucket_size_ms", window.BucketSizeMs).
		Msg("window recomputed")
	s.publish()
}
