package trace

import "context"

type contextKey uint8

const tracerKey contextKey = iota

// WithTracer returns a copy of ctx carrying t; nil is stored as Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	return context.WithValue(ctx, tracerKey, orNop(t))
}

// FromContext returns the tracer a command attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	t, _ := ctx.Value(tracerKey).(Tracer)
	return orNop(t)
}

func orNop(t Tracer) Tracer {
	if t == nil {
		return Nop
	}
	return t
}
