package mocks

import (
	"context"
	"tonsor/infras/otel"
)

type otelImpl struct{}

// NewScope implements otel.Otel without touching any tracer provider.
func (o *otelImpl) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, NewScope()
}

// NewOtel returns a no-op tracer for tests.
func NewOtel() otel.Otel {
	return &otelImpl{}
}
