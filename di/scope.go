package di

import (
	"context"
	"log/slog"
	"reflect"
	"sort"

	"github.com/google/uuid"

	"github.com/sghaida/sdi/observe"
)

// Scope is an immutable set of key-to-builder overrides, consulted before
// the root registry.
//
// A Scope is never mutated after construction: Override and Overriding copy
// the override map into a new value. That makes scopes safe to share by
// reference across goroutines without synchronization, and it is what keeps
// concurrent branches isolated (a branch derives new scopes, it cannot edit
// the one its siblings see).
//
// The zero Scope is valid and empty; it resolves everything through the root
// registry.
type Scope struct {
	id        string
	overrides map[Key]any
}

// ID returns the scope's diagnostic identity, or "" for the zero scope.
// IDs appear in debug logs to correlate resolutions with the scope that
// served them.
func (s Scope) ID() string { return s.id }

// Len returns the number of overridden keys.
func (s Scope) Len() int { return len(s.overrides) }

// Has reports whether the scope overrides key.
func (s Scope) Has(key Key) bool {
	_, ok := s.overrides[key]
	return ok
}

// Keys returns the overridden keys in lexicographic order.
func (s Scope) Keys() []Key {
	keys := make([]Key, 0, len(s.overrides))
	for k := range s.overrides {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Override derives a new Scope equal to s except that def's key now maps to
// a fresh builder around produce. s itself is not modified.
//
// A nil producer panics with NilProducerError.
func Override[T any](s Scope, def Builder[T], produce ProduceFunc[T]) Scope {
	return derive(s, With(def, produce))
}

// ScopeOption records one override for Overriding.
type ScopeOption func(map[Key]any)

// With binds produce as the override for def's key.
//
// Targeting overrides by the default builder value (rather than by a bare
// string) ties the key and the value type together statically: overriding an
// absent or wrongly-typed identifier does not compile.
func With[T any](def Builder[T], produce ProduceFunc[T]) ScopeOption {
	if produce == nil {
		panic(NilProducerError{Key: def.key})
	}
	ov := Builder[T]{key: def.key, produce: produce}
	return func(m map[Key]any) { m[def.key] = ov }
}

// WithBuilder binds an existing builder as the override for def's key.
//
// Use this when the override should carry state of its own, typically an
// independent memoization cache:
//
//	di.WithBuilder(dbBuilder, di.Constant(dbBuilder.Key(), openTestDB))
//
// The override is stored under def's key regardless of override's own key.
func WithBuilder[T any](def Builder[T], override Builder[T]) ScopeOption {
	if override.produce == nil {
		panic(NilProducerError{Key: def.key})
	}
	ov := Builder[T]{key: def.key, produce: override.produce}
	return func(m map[Key]any) { m[def.key] = ov }
}

// Overriding builds a new Scope from the currently active one plus the given
// overrides. It does not activate the result; pass it to WithScope.
//
// Because the base is the *active* scope, nesting is additive: keys the new
// scope does not override keep resolving exactly as they did in the outer
// scope. When several options target the same key, the last one wins.
func Overriding(ctx context.Context, opts ...ScopeOption) Scope {
	return derive(FromContext(ctx), opts...)
}

// derive copies base's override map, applies opts in order, and stamps a
// fresh scope identity.
func derive(base Scope, opts ...ScopeOption) Scope {
	m := make(map[Key]any, len(base.overrides)+len(opts))
	for k, v := range base.overrides {
		m[k] = v
	}
	for _, opt := range opts {
		opt(m)
	}
	return Scope{id: uuid.NewString(), overrides: m}
}

// resolveBuilder resolves def's key with scope-over-root precedence.
func resolveBuilder[T any](ctx context.Context, def Builder[T]) (Builder[T], observe.Source) {
	scope := FromContext(ctx)
	if raw, ok := scope.overrides[def.key]; ok {
		b, ok := raw.(Builder[T])
		if !ok {
			panic(TypeMismatchError{
				Key:      def.key,
				GotType:  reflect.TypeOf(raw).String(),
				WantType: reflect.TypeOf(def).String(),
			})
		}
		if l := activeLogger(); l != nil {
			l.Debug("resolved from scope override",
				slog.String("key", string(def.key)),
				slog.String("scope_id", scope.id),
			)
		}
		return b, observe.SourceOverride
	}
	return resolveDefault(root, def), observe.SourceRoot
}
