// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package telemetry

import (
	"time"

	"github.com/petenewcomb/vschain-go"
	"go.uber.org/zap"
)

// LoggedChain wraps a [vschain.Chain] and logs each operation at debug
// level, and at error level when it returns an error, via zap's global
// logger.
type LoggedChain[T any] struct {
	name string
	c    *vschain.Chain[T]
}

// NewLoggedChain wraps c. name identifies the chain in log fields; it has
// no effect on c's behavior.
func NewLoggedChain[T any](name string, c *vschain.Chain[T]) *LoggedChain[T] {
	return &LoggedChain[T]{name: name, c: c}
}

func (l *LoggedChain[T]) logged(op string, fn func() error) error {
	logger := zap.L()
	logger.Debug("chain operation starting",
		zap.String("chain", l.name),
		zap.String("component", "telemetry"),
		zap.String("op", op))

	start := time.Now()
	err := fn()
	duration := time.Since(start)

	if err != nil {
		logger.Error("chain operation failed",
			zap.String("chain", l.name),
			zap.String("component", "telemetry"),
			zap.String("op", op),
			zap.Duration("duration", duration),
			zap.Error(err))
	} else {
		logger.Debug("chain operation completed",
			zap.String("chain", l.name),
			zap.String("component", "telemetry"),
			zap.String("op", op),
			zap.Duration("duration", duration))
	}
	return err
}

// Len delegates to the wrapped Chain's Len.
func (l *LoggedChain[T]) Len() (n uint64, err error) {
	err = l.logged("len", func() error {
		var lenErr error
		n, lenErr = l.c.Len()
		return lenErr
	})
	return n, err
}

// Append delegates to the wrapped Chain's Append.
func (l *LoggedChain[T]) Append(payload T) error {
	return l.logged("append", func() error { return l.c.Append(payload) })
}

// Clear delegates to the wrapped Chain's Clear.
func (l *LoggedChain[T]) Clear() error {
	return l.logged("clear", func() error { return l.c.Clear() })
}

// Iter delegates to the wrapped Chain's Iter and wraps the result in a
// [LoggedIterator] that logs under the same chain name.
func (l *LoggedChain[T]) Iter() (*LoggedIterator[T], error) {
	var it *vschain.Iterator[T]
	err := l.logged("iter", func() error {
		var iterErr error
		it, iterErr = l.c.Iter()
		return iterErr
	})
	if err != nil {
		return nil, err
	}
	return NewLoggedIterator(l.name, it), nil
}

// Destroy delegates to the wrapped Chain's Destroy.
func (l *LoggedChain[T]) Destroy() error {
	return l.logged("destroy", func() error { return l.c.Destroy() })
}

// LoggedIterator wraps a [vschain.Iterator] and logs its Next and Destroy
// calls at debug level, or at error level when they return an error. Len and
// Index delegate without logging.
type LoggedIterator[T any] struct {
	chainName string
	it        *vschain.Iterator[T]
}

// NewLoggedIterator wraps it, logging under chainName, the name of the
// chain it was obtained from.
func NewLoggedIterator[T any](chainName string, it *vschain.Iterator[T]) *LoggedIterator[T] {
	return &LoggedIterator[T]{chainName: chainName, it: it}
}

// Next delegates to the wrapped Iterator's Next. Exhaustion (ok == false,
// err == nil) is logged at debug level, not error level: it is a normal
// terminal state, not a failure.
func (l *LoggedIterator[T]) Next() (payload T, ok bool, err error) {
	logger := zap.L()
	start := time.Now()
	payload, ok, err = l.it.Next()
	duration := time.Since(start)

	fields := []zap.Field{
		zap.String("chain", l.chainName),
		zap.String("component", "telemetry"),
		zap.String("op", "next"),
		zap.Duration("duration", duration),
		zap.Bool("ok", ok),
	}
	if err != nil {
		logger.Error("iterator operation failed", append(fields, zap.Error(err))...)
	} else {
		logger.Debug("iterator operation completed", fields...)
	}
	return payload, ok, err
}

// Len delegates to the wrapped Iterator's Len.
func (l *LoggedIterator[T]) Len() (uint64, error) { return l.it.Len() }

// Index delegates to the wrapped Iterator's Index.
func (l *LoggedIterator[T]) Index() (uint64, error) { return l.it.Index() }

// Destroy delegates to the wrapped Iterator's Destroy.
func (l *LoggedIterator[T]) Destroy() error {
	logger := zap.L()
	err := l.it.Destroy()
	if err != nil {
		logger.Error("iterator operation failed",
			zap.String("chain", l.chainName),
			zap.String("component", "telemetry"),
			zap.String("op", "destroy"),
			zap.Error(err))
	} else {
		logger.Debug("iterator operation completed",
			zap.String("chain", l.chainName),
			zap.String("component", "telemetry"),
			zap.String("op", "destroy"))
	}
	return err
}
