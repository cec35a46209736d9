// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package vschain

// Option configures a Chain at construction time. See [New].
type Option[T any] func(*config[T])

type config[T any] struct {
	free func(T)
}

// WithFree configures a free function that is invoked exactly once on the
// payload of every node reclaimed by [Chain.Clear] or [Chain.Destroy]. It is
// never invoked on a payload still held by an outstanding [Iterator], and
// never invoked more than once for the same payload. The Chain itself never
// calls free on payloads the caller appended but that remain live.
func WithFree[T any](free func(T)) Option[T] {
	return func(c *config[T]) {
		c.free = free
	}
}
