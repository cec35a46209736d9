// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package telemetry

import (
	"context"

	"github.com/petenewcomb/vschain-go"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// InstrumentedChain combines tracing, metrics, and logging for a
// [vschain.Chain] into a single wrapper, applied inside-out the same way
// this package's ancestor combined task instrumentation: logging innermost,
// then metrics, then tracing outermost so the span covers the full recorded
// and logged operation.
type InstrumentedChain[T any] struct {
	name string
	c    *vschain.Chain[T]
}

// NewInstrumentedChain wraps c under name, used as both the log field value
// and the metric/span name prefix.
func NewInstrumentedChain[T any](name string, c *vschain.Chain[T]) *InstrumentedChain[T] {
	return &InstrumentedChain[T]{name: name, c: c}
}

func (i *InstrumentedChain[T]) instrumented(ctx context.Context, op string, fn func() error) error {
	tracer := otel.Tracer("telemetry")
	ctx, span := tracer.Start(ctx, i.name+"."+op)
	defer span.End()

	meter := otel.GetMeterProvider().Meter("telemetry")
	counter, _ := meter.Int64Counter(i.name + "." + op + ".count")
	counter.Add(ctx, 1)

	logger := zap.L()
	logger.Debug("chain operation starting",
		zap.String("chain", i.name),
		zap.String("component", "telemetry"),
		zap.String("op", op))

	err := fn()

	if err != nil {
		errorCounter, _ := meter.Int64Counter(i.name + "." + op + ".errors")
		errorCounter.Add(ctx, 1)
		logger.Error("chain operation failed",
			zap.String("chain", i.name),
			zap.String("component", "telemetry"),
			zap.String("op", op),
			zap.Error(err))
	} else {
		logger.Debug("chain operation completed",
			zap.String("chain", i.name),
			zap.String("component", "telemetry"),
			zap.String("op", op))
	}
	return err
}

// Len delegates to the wrapped Chain's Len with tracing, metrics, and logging.
func (i *InstrumentedChain[T]) Len(ctx context.Context) (n uint64, err error) {
	err = i.instrumented(ctx, "len", func() error {
		var lenErr error
		n, lenErr = i.c.Len()
		return lenErr
	})
	return n, err
}

// Append delegates to the wrapped Chain's Append with tracing, metrics, and logging.
func (i *InstrumentedChain[T]) Append(ctx context.Context, payload T) error {
	return i.instrumented(ctx, "append", func() error { return i.c.Append(payload) })
}

// Clear delegates to the wrapped Chain's Clear with tracing, metrics, and logging.
func (i *InstrumentedChain[T]) Clear(ctx context.Context) error {
	return i.instrumented(ctx, "clear", func() error { return i.c.Clear() })
}

// Iter delegates to the wrapped Chain's Iter with tracing, metrics, and
// logging, and wraps the result in a [LoggedIterator] so traversal keeps
// logging under the same chain name.
func (i *InstrumentedChain[T]) Iter(ctx context.Context) (*LoggedIterator[T], error) {
	var it *vschain.Iterator[T]
	err := i.instrumented(ctx, "iter", func() error {
		var iterErr error
		it, iterErr = i.c.Iter()
		return iterErr
	})
	if err != nil {
		return nil, err
	}
	return NewLoggedIterator(i.name, it), nil
}

// Destroy delegates to the wrapped Chain's Destroy with tracing, metrics,
// and logging.
func (i *InstrumentedChain[T]) Destroy(ctx context.Context) error {
	return i.instrumented(ctx, "destroy", func() error { return i.c.Destroy() })
}
