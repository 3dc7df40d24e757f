// Chronoline - Session Replay Timeline and Playback Engine
// Copyright 2026 Chronoline Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/chronoline/chronoline

// Package config loads engine configuration from layered sources.
//
// Configuration is resolved in three layers, later layers winning:
//
//  1. Struct defaults (Default / defaultConfig)
//  2. An optional YAML file (chronoline.yaml, or CHRONOLINE_CONFIG)
//  3. Environment variables prefixed CHRONOLINE_
//
// All tunables have working defaults, so Load succeeds on a machine with
// no config file and no environment set. Library consumers that want no
// filesystem/env coupling call Default() and override fields directly.
package config
