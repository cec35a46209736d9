// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package ffi is the narrow, handle-based external interface described by
// the compatibility table in this project's design documentation: opaque
// uint64 handles for chain and iterator, payloads themselves passed as
// opaque uintptr handles the package never dereferences, and every
// operation returning a status code rather than a Go error. It exists for
// callers that can only cross a boundary with integers — a cgo shim, an
// RPC surface, a scripting-language binding — and is a thin adapter over
// the ordinary [vschain.Chain] and [vschain.Iterator] API; idiomatic Go
// callers should use that package directly instead.
package ffi

import (
	"sync"
	"sync/atomic"

	"github.com/petenewcomb/vschain-go"
)

// Status is the result code every ffi operation returns in place of a Go
// error, per the external-interface contract: zero on success, nonzero on
// failure.
type Status int32

const (
	// StatusOK indicates success.
	StatusOK Status = 0
	// StatusInvalidHandle indicates the supplied handle is zero or is not
	// live in the registry for the kind the operation expects (never
	// issued, or already destroyed). Chain and iterator handles are
	// numbered independently, so a handle of the wrong kind is reported
	// only when no live handle of the expected kind has the same number.
	StatusInvalidHandle Status = 1
	// StatusExhausted is returned by IterNext once an iterator's snapshot
	// has been fully consumed. It is not an error at the [vschain] layer —
	// Next there returns ok=false — but the handle surface has no
	// out-of-band way to signal "no more values" other than a status, so
	// it is promoted to one here.
	StatusExhausted Status = 2
)

// NullHandle is the reserved handle value that never names a live chain or
// iterator; it is both the zero value of the handle type and the value
// every registration function returns alongside a non-OK status.
const NullHandle uint64 = 0

// registry maps handles to their live Go objects. One registry instance
// backs chains, a second backs iterators; both share this type. Modeled
// after the atomic-counter, map-backed id registry pattern used for
// promise handles elsewhere in this codebase's ancestry, simplified here
// because ffi handles are explicitly released by the caller rather than
// garbage collected.
type registry[T any] struct {
	nextID atomic.Uint64
	data   sync.Map // uint64 -> *T
}

func (r *registry[T]) register(v *T) uint64 {
	id := r.nextID.Add(1)
	r.data.Store(id, v)
	return id
}

func (r *registry[T]) lookup(handle uint64) (*T, bool) {
	if handle == NullHandle {
		return nil, false
	}
	v, ok := r.data.Load(handle)
	if !ok {
		return nil, false
	}
	return v.(*T), true
}

func (r *registry[T]) release(handle uint64) {
	r.data.Delete(handle)
}

var (
	chains    registry[vschain.Chain[uintptr]]
	iterators registry[vschain.Iterator[uintptr]]
)

// ChainNew creates an empty chain and returns its handle. free, if non-nil,
// is invoked with the payload handle of every node reclaimed by ChainClear
// or ChainDestroy; it is never invoked while any outstanding iterator still
// holds that node.
func ChainNew(free func(uintptr)) uint64 {
	var opts []vschain.Option[uintptr]
	if free != nil {
		opts = append(opts, vschain.WithFree(free))
	}
	c := vschain.New[uintptr](opts...)
	return chains.register(c)
}

// ChainLen returns an advisory, atomically-observed element count.
func ChainLen(handle uint64) (uint64, Status) {
	c, ok := chains.lookup(handle)
	if !ok {
		return 0, StatusInvalidHandle
	}
	n, err := c.Len()
	if err != nil {
		return 0, StatusInvalidHandle
	}
	return n, StatusOK
}

// ChainAppend publishes payload as a new tail element.
func ChainAppend(handle uint64, payload uintptr) Status {
	c, ok := chains.lookup(handle)
	if !ok {
		return StatusInvalidHandle
	}
	if err := c.Append(payload); err != nil {
		return StatusInvalidHandle
	}
	return StatusOK
}

// ChainClear empties the chain for all future observers without disturbing
// any iterator already obtained from it.
func ChainClear(handle uint64) Status {
	c, ok := chains.lookup(handle)
	if !ok {
		return StatusInvalidHandle
	}
	if err := c.Clear(); err != nil {
		return StatusInvalidHandle
	}
	return StatusOK
}

// ChainIter takes a consistent snapshot of the chain and returns a new
// iterator handle over it.
func ChainIter(handle uint64) (uint64, Status) {
	c, ok := chains.lookup(handle)
	if !ok {
		return NullHandle, StatusInvalidHandle
	}
	it, err := c.Iter()
	if err != nil {
		return NullHandle, StatusInvalidHandle
	}
	return iterators.register(it), StatusOK
}

// ChainDestroy releases the chain's own reference to its nodes and retires
// the handle. The caller must ensure concurrent ChainAppend calls on the
// same handle have quiesced first; every other operation on handle returns
// StatusInvalidHandle afterward.
func ChainDestroy(handle uint64) Status {
	c, ok := chains.lookup(handle)
	if !ok {
		return StatusInvalidHandle
	}
	err := c.Destroy()
	chains.release(handle)
	if err != nil {
		return StatusInvalidHandle
	}
	return StatusOK
}

// IterNext advances the iterator and returns its next payload handle.
// StatusExhausted is returned, with payload NullHandle, once and for every
// call after the snapshot has been fully consumed.
func IterNext(handle uint64) (uintptr, Status) {
	it, ok := iterators.lookup(handle)
	if !ok {
		return 0, StatusInvalidHandle
	}
	payload, ok, err := it.Next()
	if err != nil {
		return 0, StatusInvalidHandle
	}
	if !ok {
		return 0, StatusExhausted
	}
	return payload, StatusOK
}

// IterLen returns the length frozen into the iterator's snapshot at
// creation time; it never changes over the iterator's lifetime.
func IterLen(handle uint64) (uint64, Status) {
	it, ok := iterators.lookup(handle)
	if !ok {
		return 0, StatusInvalidHandle
	}
	n, err := it.Len()
	if err != nil {
		return 0, StatusInvalidHandle
	}
	return n, StatusOK
}

// IterIndex returns the number of elements already yielded by IterNext, 0
// <= index <= IterLen(handle).
func IterIndex(handle uint64) (uint64, Status) {
	it, ok := iterators.lookup(handle)
	if !ok {
		return 0, StatusInvalidHandle
	}
	idx, err := it.Index()
	if err != nil {
		return 0, StatusInvalidHandle
	}
	return idx, StatusOK
}

// IterDestroy releases the iterator's references and retires the handle.
// Using handle again after this call is undefined at the contract level,
// mirroring the external-interface specification, though this
// implementation happens to report StatusInvalidHandle rather than
// crashing.
func IterDestroy(handle uint64) Status {
	it, ok := iterators.lookup(handle)
	if !ok {
		return StatusInvalidHandle
	}
	err := it.Destroy()
	iterators.release(handle)
	if err != nil {
		return StatusInvalidHandle
	}
	return StatusOK
}
