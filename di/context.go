package di

import "context"

// scopeCtxKey is the context key under which the active Scope travels.
type scopeCtxKey struct{}

// WithScope returns a context with s installed as the active scope.
//
// The returned context delimits the activation: code reached through it
// (including goroutines it is handed to) resolves against s, while the
// parent ctx is untouched, so "restoring" the previous scope on exit is
// simply a matter of not using the derived context anymore. This holds on
// every exit path, early returns and panics included.
func WithScope(ctx context.Context, s Scope) context.Context {
	return context.WithValue(ctx, scopeCtxKey{}, s)
}

// FromContext returns the innermost active Scope, or the zero (empty) Scope
// when none has been activated.
func FromContext(ctx context.Context) Scope {
	if s, ok := ctx.Value(scopeCtxKey{}).(Scope); ok {
		return s
	}
	return Scope{}
}

// InScope activates s for the duration of op and returns op's result.
//
// Convenience over WithScope for the common "run this block under these
// overrides" shape:
//
//	v, err := di.InScope(ctx, scope, func(ctx context.Context) (int, error) {
//	    return counter.Build(ctx)
//	})
func InScope[R any](ctx context.Context, s Scope, op func(context.Context) (R, error)) (R, error) {
	return op(WithScope(ctx, s))
}
