// Package sdi provides a scoped dependency-resolution engine for Go.
//
// Where the author's earlier odi experiments kept wiring fully explicit in the
// composition root, this repository solves the complementary problem: swapping
// a dependency for a delimited extent of execution (a test body, a request,
// a worker branch) without touching the call sites that consume it.
//
// The model is small:
//
//   - Builder: a stable string Key plus a producer closure. Calling Build does
//     not run the local producer directly; it resolves "a builder for this key"
//     through the active Scope first, then falls back to a process-wide root
//     registry of first-registered defaults.
//   - Scope: an immutable set of key-to-builder overrides. Overriding never
//     mutates a scope; it derives a new value, so scopes are safely shared by
//     reference across goroutines.
//   - Propagation: the active Scope travels in a context.Context. Sibling
//     goroutines holding the same parent context see independent views;
//     an override activated in one branch can never leak into another.
//
// See subpackages:
//   - di: the engine (builders, scopes, root registry, memoization)
//   - observe: optional OpenTelemetry metrics for resolution and memoization
//   - examples/*: runnable end-to-end wiring examples
package sdi
