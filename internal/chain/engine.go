// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package chain implements the lock-free append-only engine that backs
// vschain.Chain and vschain.Iterator.
//
// The append/tail-advance loop follows the non-blocking queue algorithm from
// "Simple, Fast, and Practical Non-Blocking and Blocking Concurrent Queue
// Algorithms" by Maged M. Michael and Michael L. Scott (PODC96, corrected in
// JPDC 1998), the same pseudocode this corpus's internal/nbcq package
// implements. Two things are layered on top of that algorithm to satisfy the
// container contract:
//
//   - Clear, which the Michael-Scott queue does not have: it is implemented
//     by swapping in a brand-new sentinel/dummy node. An append racing with
//     it can still land a node on the dying generation before Clear's
//     cascade frees it; Append tells that case apart from an ordinary
//     helped tail-CAS and retries against the fresh generation rather than
//     losing the payload (see Engine.Clear).
//   - Reference-counted nodes, so a Snapshot taken before a Clear keeps its
//     view alive independently of the live chain (see node.go).
package chain

import "sync/atomic"

// Engine is the shared, lock-free structure. The zero value is not usable;
// call Init first.
type Engine[T any] struct {
	head atomic.Pointer[node[T]]
	tail atomic.Pointer[node[T]]
	free func(T)
}

// Init prepares an empty Engine. free, if non-nil, is invoked on the payload
// of every node reclaimed by Clear or Destroy, exactly once, from whichever
// goroutine happens to drop the last reference.
func (e *Engine[T]) Init(free func(T)) {
	e.free = free
	s := newSentinel[T]()
	e.head.Store(s)
	e.tail.Store(s)
}

// Len returns a recent, advisory observation of the element count. It reads
// the length counter belonging to whichever generation head currently names,
// so a Len racing with a concurrent Clear sees either the old generation's
// final count or the new generation's (initially zero) count — never a
// mixture of the two.
func (e *Engine[T]) Len() uint64 {
	return e.head.Load().length.Load()
}

// Append publishes payload as a new tail element. It is non-blocking: a
// contending appender retries on CAS failure but never waits on another
// appender's non-trivial work.
func (e *Engine[T]) Append(payload T) {
	for {
		tail := e.tail.Load()
		next := tail.next.Load()
		if tail != e.tail.Load() {
			continue
		}
		if next == nil {
			n := newNode[T](payload, tail.length)
			if tail.next.CompareAndSwap(nil, n) {
				// Publication point: n is now reachable from head via tail's
				// successor link, but only as long as tail's generation is
				// still the live one. Count it before trying to help the
				// tail pointer catch up, matching the Michael-Scott
				// algorithm's "enqueue is done" step.
				tail.length.Add(1)
				retain(n)
				if e.tail.CompareAndSwap(tail, n) {
					release(e.free, tail)
					return
				}
				// The CAS lost the tail pointer. Two races look identical
				// from here and must be told apart: another appender may
				// have already helped n become the tail (fine, we're done),
				// or a concurrent Clear may have swapped head/tail to a
				// fresh sentinel first, orphaning n in the generation that
				// Clear already walked and freed. Reload tail to find out.
				if cur := e.tail.Load(); cur != nil && cur.length == tail.length {
					// Helped: the tail is still on n's generation (at n or
					// already past it), so n is published; the speculative
					// reference is redundant.
					release(e.free, n)
					return
				}
				// Orphaned by Clear: n is stranded on a dead generation and
				// will never be observed or freed. Undo the speculative
				// reference and retry the publish from scratch against the
				// new generation rather than silently dropping payload.
				release(e.free, n)
				continue
			}
		} else {
			// Tail is lagging behind the real end of the chain; help it
			// catch up and retry rather than spinning on our own CAS.
			retain(next)
			if e.tail.CompareAndSwap(tail, next) {
				release(e.free, tail)
			} else {
				release(e.free, next)
			}
		}
	}
}

// Clear atomically resets the chain to empty for future Append, Iter, and Len
// observers. Outstanding snapshots are untouched: they already hold their own
// reference to the generation they captured.
func (e *Engine[T]) Clear() {
	s := newSentinel[T]()
	oldTail := e.tail.Swap(s)
	oldHead := e.head.Swap(s)
	release(e.free, oldTail)
	release(e.free, oldHead)
}

// Iter takes a consistent, retained snapshot of the chain: the current head
// node plus the element count as of that same node's generation counter. The
// two reads are self-consistent by construction (both come from the same
// head node), though the length may still understate the chain's true
// reachable size if appends are landing concurrently — that is allowed, and
// Snapshot.Next caps its yields at the frozen length regardless.
//
// The returned Snapshot must be closed exactly once, via Snapshot.Close.
func (e *Engine[T]) Iter() *Snapshot[T] {
	h := e.head.Load()
	retain(h)
	return newSnapshot(e.free, h, h.length.Load())
}

// Destroy drops the Engine's own head and tail references. Nodes reachable
// only through them become reclaimable; nodes also reachable through an
// outstanding Snapshot survive until that snapshot is released.
//
// Calling Destroy while an Append is in flight is undefined: the caller must
// quiesce writers first.
func (e *Engine[T]) Destroy() {
	h := e.head.Swap(nil)
	t := e.tail.Swap(nil)
	release(e.free, h)
	release(e.free, t)
}
