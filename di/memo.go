package di

import (
	"context"
	"sync"
)

// memoCell is the shared cache behind one Memoized builder.
//
// Copies of the same memoized builder share the cell by reference; two
// independently constructed memoized builders for the same key do not.
type memoCell[T any] struct {
	mu   sync.Mutex
	done bool
	val  T
}

// Memoized returns a builder with the same key whose producer runs at most
// once successfully; the produced value is cached in the returned builder
// and served on every later call.
//
// T must be safe to share across goroutines. The cache lock is held across
// the inner producer, so concurrent first callers serialize and observe a
// strict at-most-one invocation; a producer that resolves *other* builders
// while running cannot deadlock on this lock because every memoized builder
// owns an independent cell. A failed or panicking producer is not cached and
// the next caller retries.
func (b Builder[T]) Memoized() Builder[T] {
	cell := &memoCell[T]{}
	return Wrap(b, func(produce ProduceFunc[T]) ProduceFunc[T] {
		return func(ctx context.Context) (T, error) {
			cell.mu.Lock()
			defer cell.mu.Unlock()

			if cell.done {
				activeRecorder().RecordMemo(ctx, string(b.key), true)
				return cell.val, nil
			}

			v, err := produce(ctx)
			if err != nil {
				var zero T
				return zero, err
			}
			cell.val, cell.done = v, true
			activeRecorder().RecordMemo(ctx, string(b.key), false)
			return v, nil
		}
	})
}
