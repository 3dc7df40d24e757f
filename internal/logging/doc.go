// Chronoline - Session Replay Timeline and Playback Engine
// Copyright 2026 Chronoline Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/chronoline/chronoline

// Package logging provides centralized zerolog-based structured logging.
//
// Chronoline is a library, so logging defaults to quiet JSON output on
// stderr and is reconfigured once by the host (or cmd/chronoline) via Init:
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "console",
//	})
//
//	logging.Info().Str("session", id).Msg("playback started")
//
// # Configuration
//
// Programmatic via Init, or through the engine config file/env layer in
// internal/config (logging.level, logging.format, LOG_LEVEL, LOG_FORMAT).
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
//
// Use structured fields instead of string formatting.
package logging
