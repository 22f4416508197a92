package di

import (
	"context"
	"time"
)

// ProduceFunc produces a value of type T.
//
// Producers must be safe to call from any goroutine. They may block, resolve
// other builders through the same ctx, or fail; the engine holds no lock of
// its own while a producer runs (a memoized builder holds only its own cache
// lock, see Memoized).
type ProduceFunc[T any] func(ctx context.Context) (T, error)

// Builder bundles a stable Key with a producer for T.
//
// Builders are immutable values: copying one copies its identity and its
// producer by reference. A Builder has no registration side effect on its
// own; it becomes the process-wide default for its key lazily, on the first
// Build that falls through to the root registry.
type Builder[T any] struct {
	key     Key
	produce ProduceFunc[T]
}

// New constructs a Builder from a key and a producer.
//
// A nil producer panics with NilProducerError: there is no meaningful way to
// resolve a builder that cannot produce.
func New[T any](key Key, produce ProduceFunc[T]) Builder[T] {
	if produce == nil {
		panic(NilProducerError{Key: key})
	}
	return Builder[T]{key: key, produce: produce}
}

// Computed constructs a per-call builder: the producer runs on every Build.
//
// It is New under a name that states the caching behavior, paired with
// Constant.
func Computed[T any](key Key, produce ProduceFunc[T]) Builder[T] {
	return New(key, produce)
}

// Constant constructs a memoized builder: the producer runs once on first
// Build and the value is cached for the lifetime of the returned builder.
//
// Equivalent to Computed(key, produce).Memoized(); T must be safe to share
// across goroutines.
func Constant[T any](key Key, produce ProduceFunc[T]) Builder[T] {
	return Computed(key, produce).Memoized()
}

// Key returns the builder's dependency key.
func (b Builder[T]) Key() Key { return b.key }

// Build resolves the builder through the active scope and invokes the
// resolved producer.
//
// Resolution order: the ctx's active Scope first (if it overrides this key),
// then the root registry, which registers this builder as the process-wide
// default on first fall-through. Note that an override fully replaces the
// producer; the local closure is not consulted when an override is active.
//
// A producer error (or panic) propagates unchanged. The engine does not
// catch, retry, or substitute a fallback value.
func (b Builder[T]) Build(ctx context.Context) (T, error) {
	resolved, source := resolveBuilder(ctx, b)

	start := time.Now()
	v, err := resolved.produce(ctx)
	activeRecorder().RecordBuild(ctx, string(b.key), source, time.Since(start), err)
	return v, err
}

// MustBuild is Build that panics on producer error.
//
// Useful in composition roots and tests where a failed producer should fail
// fast.
func (b Builder[T]) MustBuild(ctx context.Context) T {
	v, err := b.Build(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Wrap derives a Builder[U] with the same key, whose producer is transform
// applied to b's own raw producer.
//
// Wrap closes over the local producer, not the resolved one; Build on the
// result still defers to the active scope first. This asymmetry lets a
// decorator (logging, memoization) be constructed statically from a known
// default while an override can still replace behavior wholesale.
//
// Wrap is a free function because Go methods cannot introduce type
// parameters.
func Wrap[T, U any](b Builder[T], transform func(ProduceFunc[T]) ProduceFunc[U]) Builder[U] {
	if transform == nil {
		panic(NilTransformError{Key: b.key})
	}
	produce := transform(b.produce)
	if produce == nil {
		panic(NilTransformError{Key: b.key})
	}
	return Builder[U]{key: b.key, produce: produce}
}
