// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package vschain

import (
	"sync/atomic"

	"github.com/petenewcomb/vschain-go/internal/chain"
)

// iterState encodes the Fresh/InProgress/Exhausted/Destroyed state machine.
// A fresh iterator has never had Next called; it moves to in-progress on its
// first Next and to exhausted once Next returns false. Destroy is reachable
// from any state and is terminal.
type iterState int32

const (
	iterFresh iterState = iota
	iterInProgress
	iterExhausted
	iterDestroyed
)

// An Iterator is a one-shot, forward-only cursor over the snapshot a
// [Chain.Iter] call froze at creation time. It is not safe for concurrent
// use by multiple goroutines: a single Iterator is meant to be driven by one
// consumer at a time, though distinct Iterators over the same or different
// Chains may be used concurrently without coordination.
type Iterator[T any] struct {
	snap  *chain.Snapshot[T]
	state atomic.Int32
}

func newIterator[T any](snap *chain.Snapshot[T]) *Iterator[T] {
	return &Iterator[T]{snap: snap}
}

// Len returns the number of elements captured in the snapshot this Iterator
// walks. It is fixed at creation time and never changes, regardless of how
// many elements have already been consumed via Next or what happens to the
// originating Chain afterward.
func (it *Iterator[T]) Len() (uint64, error) {
	if it == nil {
		return 0, ErrNilIterator
	}
	if iterState(it.state.Load()) == iterDestroyed {
		return 0, ErrIteratorDestroyed
	}
	return it.snap.Len(), nil
}

// Index returns the number of elements already yielded by Next.
func (it *Iterator[T]) Index() (uint64, error) {
	if it == nil {
		return 0, ErrNilIterator
	}
	if iterState(it.state.Load()) == iterDestroyed {
		return 0, ErrIteratorDestroyed
	}
	return it.snap.Index(), nil
}

// Next advances the Iterator and returns the next payload in the snapshot.
// ok is false once the snapshot is exhausted, and stays false on every
// subsequent call: an Iterator never yields an element twice and never
// revisits one already returned.
func (it *Iterator[T]) Next() (payload T, ok bool, err error) {
	if it == nil {
		var zero T
		return zero, false, ErrNilIterator
	}
	if iterState(it.state.Load()) == iterDestroyed {
		var zero T
		return zero, false, ErrIteratorDestroyed
	}
	it.state.CompareAndSwap(int32(iterFresh), int32(iterInProgress))
	payload, ok = it.snap.Next()
	if !ok {
		it.state.CompareAndSwap(int32(iterInProgress), int32(iterExhausted))
	}
	return payload, ok, nil
}

// Destroy releases the Iterator's reference to the nodes it captured. Nodes
// not otherwise reachable from a live Chain or another Iterator become
// eligible for reclamation (and have their free function invoked, if the
// originating Chain was built with [WithFree]) as part of this call.
//
// Destroy is idempotent: calling it again returns [ErrIteratorDestroyed] and
// does nothing further.
func (it *Iterator[T]) Destroy() error {
	if it == nil {
		return ErrNilIterator
	}
	if !it.state.CompareAndSwap(int32(iterFresh), int32(iterDestroyed)) &&
		!it.state.CompareAndSwap(int32(iterInProgress), int32(iterDestroyed)) &&
		!it.state.CompareAndSwap(int32(iterExhausted), int32(iterDestroyed)) {
		return ErrIteratorDestroyed
	}
	it.snap.Close()
	return nil
}
