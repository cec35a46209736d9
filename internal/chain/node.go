// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package chain

import "sync/atomic"

// node is one link in the chain. Its forward pointer transitions exactly
// once, from nil to a non-nil successor, via CompareAndSwap in Engine.Append.
// It is never otherwise mutated in place.
//
// Reclamation is reference counted rather than left to the garbage collector
// because the optional free callback (see Engine.free) must fire
// deterministically at the moment the last owner drops a node, not whenever
// the collector gets around to it. Every owning slot — the Engine's head
// field, its tail field, a predecessor's next field, and a Snapshot's root
// field — holds exactly one reference. Dropping the last reference to a node
// releases its successor in turn, cascading a whole orphaned suffix down to
// zero without recursion.
type node[T any] struct {
	payload   T
	sentinel  bool
	next      atomic.Pointer[node[T]]
	refs      atomic.Int32
	// length is the element count for the generation this node's sentinel
	// started. Every node created while that sentinel is current carries the
	// same shared counter, so Engine.Len can read it off of whichever node
	// happens to be head without racing against a separate, independently
	// updated field.
	length *atomic.Uint64
}

// newSentinel allocates a fresh, empty generation marker with two owning
// references: one for the Engine's head field and one for its tail field.
func newSentinel[T any]() *node[T] {
	n := &node[T]{sentinel: true, length: new(atomic.Uint64)}
	n.refs.Store(2)
	return n
}

// newNode allocates a payload-bearing node with a single reference, owned by
// whichever slot links it in (a predecessor's next field, on success).
func newNode[T any](payload T, length *atomic.Uint64) *node[T] {
	n := &node[T]{payload: payload, length: length}
	n.refs.Store(1)
	return n
}

// retain adds an owning reference to n. Called whenever a new slot (head,
// tail, or a Snapshot root) is made to point at n.
func retain[T any](n *node[T]) {
	n.refs.Add(1)
}

// release drops one owning reference from n. If that was the last
// reference, n's payload is handed to free (unless n is a sentinel, which
// never carries a caller payload) and the reference n held on its own
// successor is released in turn, iteratively, so a long cleared chain is
// torn down in a loop rather than recursively.
func release[T any](free func(T), n *node[T]) {
	for n != nil {
		if n.refs.Add(-1) != 0 {
			return
		}
		if !n.sentinel && free != nil {
			free(n.payload)
		}
		n = n.next.Load()
	}
}
