// Package di implements the scoped dependency-resolution engine.
//
// A Builder bundles a stable Key with a producer closure. Resolution is
// indirect on purpose: Build never runs the local producer directly, it asks
// the active Scope for "a builder for this key, defaulting to me" and runs
// whatever comes back. That indirection is what makes overriding work: an
// override substitutes a different producer under the same key without
// touching the call site.
//
// Precedence at resolution time:
//
//  1. the active Scope's override map (last override for a key wins)
//  2. the process-wide root registry (first registration for a key wins)
//
// Scopes are immutable values. Deriving one from another copies the override
// map, so activated scopes can be shared by reference across goroutines with
// no locking. The active scope travels in a context.Context (WithScope /
// FromContext); sibling goroutines are isolated because contexts are values.
//
// Failures in this package are programming errors, not runtime conditions:
// a nil producer or a key reused across two different value types panics with
// a typed error. Producer errors pass through Build unchanged; the engine
// never catches, retries, or substitutes.
//
// Import
//
//	"github.com/sghaida/sdi/di"
package di
