// Chronoline - Session Replay Timeline and Playback Engine
// Copyright 2026 Chronoline Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/chronoline/chronoline

// Package main is the headless Chronoline player.
//
// It exercises the whole engine without any rendering layer: decode a
// recording attachment, build a viewer session, play it to the end at the
// requested speed, and print the resulting timeline row and playback
// progress as structured logs. Useful for eyeballing bucket layouts and
// for profiling recompute cost on large recordings.
//
// # Usage
//
//	chronoline -recording session.json -width 1200 -speed 8 -zoom 4
//
// The recording file is a JSON attachment in the engine's wire format:
//
//	{
//	  "duration_ms": 60000,
//	  "events": [
//	    {"offset_ms": 1200, "kind": "breadcrumb", "data": {...}},
//	    {"offset_ms": 3400, "kind": "network"}
//	  ]
//	}
//
// # Configuration
//
// Engine tunables load via Koanf v2 with layered sources (highest
// priority wins): environment variables prefixed CHRONOLINE_, an
// optional chronoline.yaml, then built-in defaults.
package main

import (
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/chronoline/chronoline/internal/buckets"
	"github.com/chronoline/chronoline/internal/config"
	"github.com/chronoline/chronoline/internal/logging"
	"github.com/chronoline/chronoline/internal/playback"
	"github.com/chronoline/chronoline/internal/replay"
	"github.com/chronoline/chronoline/internal/session"
	"github.com/chronoline/chronoline/internal/timeline"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		recordingPath = flag.String("recording", "", "path to a recording JSON attachment (required)")
		width         = flag.Int("width", 1200, "timeline width in pixels")
		speed         = flag.Float64("speed", 1, "playback speed multiplier")
		zoom          = flag.Float64("zoom", 1, "zoom factor (>= 1)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		return 1
	}
	logging.Init(cfg.Logging)

	if *recordingPath == "" {
		fmt.Fprintln(os.Stderr, "usage: chronoline -recording session.json [-width N] [-speed X] [-zoom Z]")
		return 2
	}

	f, err := os.Open(*recordingPath)
	if err != nil {
		logging.Error().Err(err).Str("path", *recordingPath).Msg("cannot open recording")
		return 1
	}
	rec, err := replay.DecodeRecording(f)
	f.Close()
	if err != nil {
		logging.Error().Err(err).Str("path", *recordingPath).Msg("cannot decode recording")
		return 1
	}
	logging.Info().
		Int64("duration_ms", rec.DurationMs).
		Int("frames", len(rec.Frames)).
		Bool("has_canvas", rec.HasCanvasFrame).
		Msg("recording loaded")

	now := time.Now()
	rng, err := timeline.NewTimeRange(now.Add(-time.Duration(rec.DurationMs)*time.Millisecond), now)
	if err != nil {
		logging.Error().Err(err).Msg("cannot derive time range")
		return 1
	}

	sess, err := session.New(rng, *width,
		session.WithRecording(rec),
		session.WithEngine(cfg.Engine),
		session.WithPrecedence(buckets.NewPrecedence(
			buckets.Status(replay.FrameKindConsole),
			buckets.Status(replay.FrameKindNetwork),
			buckets.Status(replay.FrameKindDOM),
			buckets.Status(replay.FrameKindBreadcrumb),
		)),
	)
	if err != nil {
		logging.Error().Err(err).Msg("cannot create session")
		return 1
	}
	defer sess.Close()

	if err := sess.SetZoom(*zoom); err != nil {
		logging.Error().Err(err).Msg("invalid zoom")
		return 1
	}
	if err := sess.SetSpeed(*speed); err != nil {
		logging.Error().Err(err).Msg("invalid speed")
		return 1
	}

	done := make(chan struct{})
	var once sync.Once
	unsubscribe := sess.Subscribe(func(sn session.Snapshot) {
		if sn.Playback.State == playback.StateEnded {
			once.Do(func() { close(done) })
		}
	})
	defer unsubscribe()

	logging.Info().Float64("speed", *speed).Float64("zoom", *zoom).Msg("playing")
	start := time.Now()
	sess.Play()
	<-done

	sn := sess.Snapshot()
	logging.Info().
		Dur("wall", time.Since(start)).
		Int64("final_ms", sn.Playback.CurrentTimeMs).
		Int("buckets", len(sn.Buckets)).
		Msg("playback finished")

	out, err := json.MarshalIndent(sn, "", "  ")
	if err != nil {
		logging.Error().Err(err).Msg("cannot marshal snapshot")
		return 1
	}
	fmt.Println(string(out))
	return 0
}
