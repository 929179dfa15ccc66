package metrics

import "context"

// contextKey is a type for context keys to avoid collisions.
type contextKey struct{}

// WithRegistry returns a copy of ctx carrying r.
func WithRegistry(ctx context.Context, r *Registry) context.Context {
	return context.WithValue(ctx, contextKey{}, r)
}

// FromContext returns the registry carried by ctx, or Default if none is set.
func FromContext(ctx context.Context) *Registry {
	if r, ok := ctx.Value(contextKey{}).(*Registry); ok && r != nil {
		return r
	}
	return Default()
}
