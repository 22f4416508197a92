// Package observe provides optional resolution metrics for the sdi engine.
//
// The engine reports two kinds of events: a build (a producer invocation,
// attributed to the source that won resolution) and a memoization lookup
// (hit or miss on a memoized builder's cache).
//
// Metrics are implemented with OpenTelemetry and are opt-in; the engine
// defaults to the no-op recorder so unconfigured programs pay nothing.
package observe

import (
	"context"
	"time"
)

// Source identifies which layer satisfied a resolution.
type Source string

const (
	// SourceOverride means an active Scope supplied the builder.
	SourceOverride Source = "override"

	// SourceRoot means the root registry supplied the builder.
	SourceRoot Source = "root"
)

// Recorder receives resolution events from the engine.
//
// Implementations must be safe for concurrent use; the engine calls them
// from whatever goroutine invoked Build.
type Recorder interface {
	// RecordBuild records one producer invocation for a key: which layer
	// resolved it, how long the producer ran, and whether it failed.
	RecordBuild(ctx context.Context, key string, source Source, duration time.Duration, err error)

	// RecordMemo records one memoized-cache lookup for a key.
	RecordMemo(ctx context.Context, key string, hit bool)
}

// Noop is a Recorder that does nothing.
// Use when metrics are disabled to avoid overhead.
type Noop struct{}

// Compile-time interface check.
var _ Recorder = Noop{}

// RecordBuild does nothing.
func (Noop) RecordBuild(_ context.Context, _ string, _ Source, _ time.Duration, _ error) {}

// RecordMemo does nothing.
func (Noop) RecordMemo(_ context.Context, _ string, _ bool) {}
