package arena

import "context"

// The active allocation policy is carried in a context.Context, so an
// override is visible exactly within its dynamic extent: callees see it,
// siblings and callers never do, and there is nothing to restore on exit
// because the caller's own context is never mutated.

type ctxKey struct{}

// NewContext returns a context carrying a as the active allocation policy.
func NewContext(ctx context.Context, a Allocator) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// FromContext returns the active allocation policy, or Heap when no
// override is in scope.
func FromContext(ctx context.Context) Allocator {
	if a, ok := ctx.Value(ctxKey{}).(Allocator); ok {
		return a
	}
	return Heap
}

// With runs body with a as the active policy for body's dynamic extent,
// nesting to any depth. The previous policy is back in force as soon as
// With returns, on every exit path including an error from body.
func With(ctx context.Context, a Allocator, body func(context.Context) error) error {
	return body(NewContext(ctx, a))
}
