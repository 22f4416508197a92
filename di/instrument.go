package di

import (
	"log/slog"
	"sync/atomic"

	"github.com/sghaida/sdi/observe"
)

// Package-level instrumentation hooks. Both default to off (nil logger,
// no-op recorder) so unconfigured programs pay nothing on the build path.

var (
	pkgLogger   atomic.Pointer[slog.Logger]
	pkgRecorder atomic.Value // recorderBox
)

// recorderBox keeps the stored concrete type of pkgRecorder constant, which
// atomic.Value requires across Stores.
type recorderBox struct{ r observe.Recorder }

// SetLogger installs a logger for debug-level resolution events
// (default registrations, override hits). A nil logger disables logging.
//
// Safe to call concurrently with Build.
func SetLogger(l *slog.Logger) {
	pkgLogger.Store(l)
}

// activeLogger returns the installed logger, or nil when logging is off.
func activeLogger() *slog.Logger {
	return pkgLogger.Load()
}

// SetRecorder installs a metrics recorder for build and memoization events.
// A nil recorder resets to the no-op recorder.
//
// Safe to call concurrently with Build.
//
//	di.SetRecorder(observe.NewRecorder()) // OpenTelemetry metrics
func SetRecorder(r observe.Recorder) {
	if r == nil {
		r = observe.Noop{}
	}
	pkgRecorder.Store(recorderBox{r: r})
}

// activeRecorder returns the installed recorder, defaulting to no-op.
func activeRecorder() observe.Recorder {
	if b, ok := pkgRecorder.Load().(recorderBox); ok {
		return b.r
	}
	return observe.Noop{}
}
