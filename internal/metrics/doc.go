// Chronoline - Session Replay Timeline and Playback Engine
// Copyright 2026 Chronoline Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/chronoline/chronoline

// Package metrics exposes Prometheus collectors for the timeline engine.
//
// Collectors are registered with the default registry via promauto at
// package load; the host decides whether and where to serve them. The
// engine never serves /metrics itself.
package metrics
