// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package vschain

import (
	"sync/atomic"

	"github.com/petenewcomb/vschain-go/internal/chain"
)

// A Chain is a concurrent, append-only sequence of payloads of type T. The
// zero value is not usable; construct one with [New].
//
// All methods are safe to call from any number of goroutines concurrently,
// with the exception noted on [Chain.Destroy].
type Chain[T any] struct {
	eng       chain.Engine[T]
	destroyed atomic.Bool
}

// New creates an empty Chain. Construction cannot fail short of allocation
// exhaustion.
func New[T any](opts ...Option[T]) *Chain[T] {
	var c config[T]
	for _, opt := range opts {
		opt(&c)
	}
	ch := &Chain[T]{}
	ch.eng.Init(c.free)
	return ch
}

// Len returns a recent observation of the element count. The result is an
// atomic load and is advisory only: concurrent Append or Clear calls may
// change it before the caller can act on it.
func (c *Chain[T]) Len() (uint64, error) {
	if c == nil {
		return 0, ErrNilChain
	}
	if c.destroyed.Load() {
		return 0, ErrChainDestroyed
	}
	return c.eng.Len(), nil
}

// Append publishes payload as a new element at the tail of the chain. It is
// thread-safe against any concurrent mix of Append, Clear, Iter, and
// Iterator traversal, and is non-blocking: a contending Append may retry
// internally but never waits on another Append's non-trivial work.
//
// Append is linearized at the instant the new node becomes reachable from
// the chain's head; either the payload is fully published and counted, or
// neither, with no partial state observable by any other caller.
func (c *Chain[T]) Append(payload T) error {
	if c == nil {
		return ErrNilChain
	}
	if c.destroyed.Load() {
		return ErrChainDestroyed
	}
	c.eng.Append(payload)
	return nil
}

// Clear atomically empties the chain for every future Append, Iter, and Len
// observer. It does not affect any [Iterator] obtained before the call: such
// an iterator's frozen length, head, and cursor remain exactly as they were,
// and it can still be driven to completion. Nodes no longer reachable from
// any live Chain or Iterator become eligible for reclamation (and, if
// [WithFree] was supplied, have their free function invoked) as part of this
// call or a later [Iterator.Destroy]; nodes an outstanding iterator still
// needs are left untouched.
func (c *Chain[T]) Clear() error {
	if c == nil {
		return ErrNilChain
	}
	if c.destroyed.Load() {
		return ErrChainDestroyed
	}
	c.eng.Clear()
	return nil
}

// Iter takes an atomic, consistent snapshot of the chain and returns an
// [Iterator] over it. The iterator is independent of the Chain from this
// point on: it survives a later Clear or Destroy of c.
func (c *Chain[T]) Iter() (*Iterator[T], error) {
	if c == nil {
		return nil, ErrNilChain
	}
	if c.destroyed.Load() {
		return nil, ErrChainDestroyed
	}
	return newIterator(c.eng.Iter()), nil
}

// Destroy drops the Chain's own references to its head and tail nodes. Nodes
// referenced only by the Chain become reclaimable; nodes also held by an
// outstanding [Iterator] survive until that iterator is destroyed. After
// Destroy, every other method on c returns [ErrChainDestroyed].
//
// Calling Destroy while an Append on the same Chain is still in flight on
// another goroutine is undefined; the caller is responsible for quiescing
// writers first.
func (c *Chain[T]) Destroy() error {
	if c == nil {
		return ErrNilChain
	}
	if !c.destroyed.CompareAndSwap(false, true) {
		return ErrChainDestroyed
	}
	c.eng.Destroy()
	return nil
}
