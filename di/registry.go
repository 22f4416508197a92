package di

import (
	"log/slog"
	"reflect"
	"sort"
	"sync"
)

// rootRegistry is the process-wide store of default builders.
//
// It is the single source of truth for every key that no active scope
// overrides. Registration is lazy (first Build that falls through lands
// here), first-writer-wins, and monotonic: entries are never removed for the
// lifetime of the process.
type rootRegistry struct {
	mu      sync.Mutex
	entries map[Key]any
}

func newRootRegistry() *rootRegistry {
	return &rootRegistry{entries: make(map[Key]any)}
}

// root is the single module-scope instance. Its lifetime is the process
// lifetime; there is deliberately no reset or teardown.
var root = newRootRegistry()

// resolveDefault returns the registered default builder for def's key,
// registering def itself when the key is seen for the first time.
//
// The check-or-insert is one critical section, so no two callers can ever
// observe two different "first" builders for one key. A stored builder of a
// different value type panics with TypeMismatchError.
func resolveDefault[T any](r *rootRegistry, def Builder[T]) Builder[T] {
	r.mu.Lock()
	defer r.mu.Unlock()

	if raw, ok := r.entries[def.key]; ok {
		b, ok := raw.(Builder[T])
		if !ok {
			panic(TypeMismatchError{
				Key:      def.key,
				GotType:  reflect.TypeOf(raw).String(),
				WantType: reflect.TypeOf(def).String(),
			})
		}
		return b
	}

	r.entries[def.key] = def
	if l := activeLogger(); l != nil {
		l.Debug("registered default builder",
			slog.String("key", string(def.key)),
		)
	}
	return def
}

// RegisteredKeys returns the keys currently registered as process-wide
// defaults, in lexicographic order. Intended for diagnostics.
func RegisteredKeys() []Key {
	root.mu.Lock()
	keys := make([]Key, 0, len(root.entries))
	for k := range root.entries {
		keys = append(keys, k)
	}
	root.mu.Unlock()

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
