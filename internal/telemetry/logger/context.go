package logger

import "context"

type ctxKey struct{}

// WithLogger returns a copy of ctx carrying l. Components started from ctx
// pick it up with L.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger carried by ctx, or Default.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(ctxKey{}).(Logger); ok && l != nil {
		return l
	}
	return Default()
}

// L returns the logger carried by ctx, bound to ctx so that its records are
// emitted with it.
func L(ctx context.Context) Logger {
	return FromContext(ctx).WithContext(ctx)
}
