// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package telemetry

import (
	"context"
	"time"

	"github.com/petenewcomb/vschain-go"
	"go.opentelemetry.io/otel"
)

// MetricsChain wraps a [vschain.Chain] and records append/clear/iter/destroy
// counts, durations, and error counts to the global OpenTelemetry meter
// provider under metricName-prefixed instrument names.
type MetricsChain[T any] struct {
	metricName string
	c          *vschain.Chain[T]
}

// NewMetricsChain wraps c, recording instruments under metricName.
func NewMetricsChain[T any](metricName string, c *vschain.Chain[T]) *MetricsChain[T] {
	return &MetricsChain[T]{metricName: metricName, c: c}
}

func (m *MetricsChain[T]) recorded(op string, fn func() error) error {
	meter := otel.GetMeterProvider().Meter("telemetry")

	counter, _ := meter.Int64Counter(m.metricName + "." + op + ".count")
	duration, _ := meter.Float64Histogram(m.metricName + "." + op + ".duration")

	ctx := context.Background()
	counter.Add(ctx, 1)

	start := time.Now()
	err := fn()
	duration.Record(ctx, time.Since(start).Seconds())

	if err != nil {
		errorCounter, _ := meter.Int64Counter(m.metricName + "." + op + ".errors")
		errorCounter.Add(ctx, 1)
	}
	return err
}

// Len delegates to the wrapped Chain's Len.
func (m *MetricsChain[T]) Len() (n uint64, err error) {
	err = m.recorded("len", func() error {
		var lenErr error
		n, lenErr = m.c.Len()
		return lenErr
	})
	return n, err
}

// Append delegates to the wrapped Chain's Append.
func (m *MetricsChain[T]) Append(payload T) error {
	return m.recorded("append", func() error { return m.c.Append(payload) })
}

// Clear delegates to the wrapped Chain's Clear.
func (m *MetricsChain[T]) Clear() error {
	return m.recorded("clear", func() error { return m.c.Clear() })
}

// Iter delegates to the wrapped Chain's Iter, additionally recording a
// histogram of the returned snapshot's length so callers can see how much
// work each Iter call committed its consumer to.
func (m *MetricsChain[T]) Iter() (*vschain.Iterator[T], error) {
	var it *vschain.Iterator[T]
	err := m.recorded("iter", func() error {
		var iterErr error
		it, iterErr = m.c.Iter()
		return iterErr
	})
	if err == nil {
		if n, lenErr := it.Len(); lenErr == nil {
			meter := otel.GetMeterProvider().Meter("telemetry")
			snapshotLength, _ := meter.Int64Histogram(m.metricName + ".iter.snapshot_length")
			snapshotLength.Record(context.Background(), int64(n))
		}
	}
	return it, err
}

// Destroy delegates to the wrapped Chain's Destroy.
func (m *MetricsChain[T]) Destroy() error {
	return m.recorded("destroy", func() error { return m.c.Destroy() })
}
