// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package ffi_test

import (
	"testing"

	"github.com/petenewcomb/vschain-go/ffi"
	"github.com/stretchr/testify/require"
)

func TestInvalidAndNullHandles(t *testing.T) {
	_, status := ffi.ChainLen(ffi.NullHandle)
	require.Equal(t, ffi.StatusInvalidHandle, status)
	require.Equal(t, ffi.StatusInvalidHandle, ffi.ChainAppend(ffi.NullHandle, 1))
	require.Equal(t, ffi.StatusInvalidHandle, ffi.ChainClear(ffi.NullHandle))
	_, status = ffi.ChainIter(ffi.NullHandle)
	require.Equal(t, ffi.StatusInvalidHandle, status)
	require.Equal(t, ffi.StatusInvalidHandle, ffi.ChainDestroy(ffi.NullHandle))

	_, status = ffi.IterNext(ffi.NullHandle)
	require.Equal(t, ffi.StatusInvalidHandle, status)
	_, status = ffi.IterLen(ffi.NullHandle)
	require.Equal(t, ffi.StatusInvalidHandle, status)
	_, status = ffi.IterIndex(ffi.NullHandle)
	require.Equal(t, ffi.StatusInvalidHandle, status)
	require.Equal(t, ffi.StatusInvalidHandle, ffi.IterDestroy(ffi.NullHandle))

	// An unknown (never issued) handle behaves the same as null.
	_, status = ffi.ChainLen(987654321)
	require.Equal(t, ffi.StatusInvalidHandle, status)
}

func TestChainLifecycle(t *testing.T) {
	h := ffi.ChainNew(nil)
	require.NotEqual(t, ffi.NullHandle, h)

	n, status := ffi.ChainLen(h)
	require.Equal(t, ffi.StatusOK, status)
	require.EqualValues(t, 0, n)

	require.Equal(t, ffi.StatusOK, ffi.ChainAppend(h, 10))
	require.Equal(t, ffi.StatusOK, ffi.ChainAppend(h, 20))
	require.Equal(t, ffi.StatusOK, ffi.ChainAppend(h, 30))

	n, status = ffi.ChainLen(h)
	require.Equal(t, ffi.StatusOK, status)
	require.EqualValues(t, 3, n)

	it, status := ffi.ChainIter(h)
	require.Equal(t, ffi.StatusOK, status)

	var got []uintptr
	for {
		v, status := ffi.IterNext(it)
		if status == ffi.StatusExhausted {
			break
		}
		require.Equal(t, ffi.StatusOK, status)
		got = append(got, v)
	}
	require.Equal(t, []uintptr{10, 20, 30}, got)

	require.Equal(t, ffi.StatusOK, ffi.IterDestroy(it))
	require.Equal(t, ffi.StatusOK, ffi.ChainDestroy(h))

	require.Equal(t, ffi.StatusInvalidHandle, ffi.ChainAppend(h, 1))
	require.Equal(t, ffi.StatusInvalidHandle, ffi.IterDestroy(it))
}

// TestSnapshotSurvivesClearAndDestroy reproduces
// original_source/examples/ffi.c's assertion sequence at the handle layer.
func TestSnapshotSurvivesClearAndDestroy(t *testing.T) {
	h := ffi.ChainNew(nil)
	require.Equal(t, ffi.StatusOK, ffi.ChainAppend(h, 12))
	require.Equal(t, ffi.StatusOK, ffi.ChainAppend(h, 25))

	it, status := ffi.ChainIter(h)
	require.Equal(t, ffi.StatusOK, status)

	require.Equal(t, ffi.StatusOK, ffi.ChainClear(h))
	n, _ := ffi.ChainLen(h)
	require.EqualValues(t, 0, n)

	require.Equal(t, ffi.StatusOK, ffi.ChainDestroy(h))

	l, status := ffi.IterLen(it)
	require.Equal(t, ffi.StatusOK, status)
	require.EqualValues(t, 2, l)

	v, status := ffi.IterNext(it)
	require.Equal(t, ffi.StatusOK, status)
	require.EqualValues(t, 12, v)

	v, status = ffi.IterNext(it)
	require.Equal(t, ffi.StatusOK, status)
	require.EqualValues(t, 25, v)

	_, status = ffi.IterNext(it)
	require.Equal(t, ffi.StatusExhausted, status)
	_, status = ffi.IterNext(it)
	require.Equal(t, ffi.StatusExhausted, status)

	idx, status := ffi.IterIndex(it)
	require.Equal(t, ffi.StatusOK, status)
	require.EqualValues(t, 2, idx)

	require.Equal(t, ffi.StatusOK, ffi.IterDestroy(it))
}

func TestChainNewFreeCallback(t *testing.T) {
	var freed []uintptr
	h := ffi.ChainNew(func(p uintptr) {
		freed = append(freed, p)
	})
	require.Equal(t, ffi.StatusOK, ffi.ChainAppend(h, 1))
	require.Equal(t, ffi.StatusOK, ffi.ChainAppend(h, 2))
	require.Equal(t, ffi.StatusOK, ffi.ChainClear(h))
	require.ElementsMatch(t, []uintptr{1, 2}, freed)
	require.Equal(t, ffi.StatusOK, ffi.ChainDestroy(h))
}
