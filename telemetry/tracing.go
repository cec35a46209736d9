// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package telemetry

import (
	"context"

	"github.com/petenewcomb/vschain-go"
	"go.opentelemetry.io/otel"
)

// TracedChain wraps a [vschain.Chain] and opens an OpenTelemetry span,
// parented on ctx, around every operation.
type TracedChain[T any] struct {
	spanPrefix string
	c          *vschain.Chain[T]
}

// NewTracedChain wraps c; spans are named spanPrefix plus the operation,
// e.g. "<spanPrefix>.append".
func NewTracedChain[T any](spanPrefix string, c *vschain.Chain[T]) *TracedChain[T] {
	return &TracedChain[T]{spanPrefix: spanPrefix, c: c}
}

func (t *TracedChain[T]) traced(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	tracer := otel.Tracer("telemetry")
	ctx, span := tracer.Start(ctx, t.spanPrefix+"."+op)
	defer span.End()
	return fn(ctx)
}

// Len delegates to the wrapped Chain's Len inside a span.
func (t *TracedChain[T]) Len(ctx context.Context) (n uint64, err error) {
	err = t.traced(ctx, "len", func(context.Context) error {
		var lenErr error
		n, lenErr = t.c.Len()
		return lenErr
	})
	return n, err
}

// Append delegates to the wrapped Chain's Append inside a span.
func (t *TracedChain[T]) Append(ctx context.Context, payload T) error {
	return t.traced(ctx, "append", func(context.Context) error { return t.c.Append(payload) })
}

// Clear delegates to the wrapped Chain's Clear inside a span.
func (t *TracedChain[T]) Clear(ctx context.Context) error {
	return t.traced(ctx, "clear", func(context.Context) error { return t.c.Clear() })
}

// Iter delegates to the wrapped Chain's Iter inside a span.
func (t *TracedChain[T]) Iter(ctx context.Context) (*vschain.Iterator[T], error) {
	var it *vschain.Iterator[T]
	err := t.traced(ctx, "iter", func(context.Context) error {
		var iterErr error
		it, iterErr = t.c.Iter()
		return iterErr
	})
	return it, err
}

// Destroy delegates to the wrapped Chain's Destroy inside a span.
func (t *TracedChain[T]) Destroy(ctx context.Context) error {
	return t.traced(ctx, "destroy", func(context.Context) error { return t.c.Destroy() })
}
