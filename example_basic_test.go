// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package vschain_test

import (
	"fmt"

	"github.com/petenewcomb/vschain-go"
)

// A Chain starts empty and grows only through Append. Iter freezes a view
// of it that a caller can walk to completion with Next.
func Example_basic() {
	c := vschain.New[string]()
	defer c.Destroy()

	c.Append("eins")
	c.Append("zwei")
	c.Append("drei")

	it, _ := c.Iter()
	defer it.Destroy()
	for {
		v, ok, _ := it.Next()
		if !ok {
			break
		}
		fmt.Println(v)
	}
	// Output:
	// eins
	// zwei
	// drei
}

// Example_snapshotSurvivesClearAndDestroy reproduces the assertion sequence
// in original_source/examples/ffi.c: a snapshot taken before Clear (and, in
// this variant, before Destroy as well) still yields the elements it
// captured, unaffected by either.
func Example_snapshotSurvivesClearAndDestroy() {
	c := vschain.New[int]()

	c.Append(12)
	c.Append(25)

	it, _ := c.Iter()

	c.Clear()
	n, _ := c.Len()
	fmt.Println("chain len after clear:", n)

	c.Destroy()

	l, _ := it.Len()
	fmt.Println("snapshot len:", l)
	for {
		v, ok, _ := it.Next()
		if !ok {
			break
		}
		fmt.Println(v)
	}
	it.Destroy()
	// Output:
	// chain len after clear: 0
	// snapshot len: 2
	// 12
	// 25
}

// Clear only affects what future Iter calls and Len see; it never touches
// an Iterator handed out before the call.
func Example_clear() {
	c := vschain.New[int]()
	defer c.Destroy()

	c.Append(1)
	c.Append(2)
	old, _ := c.Iter()
	defer old.Destroy()

	c.Clear()
	c.Append(99)

	fresh, _ := c.Iter()
	defer fresh.Destroy()

	freshLen, _ := fresh.Len()
	oldLen, _ := old.Len()
	fmt.Println("fresh snapshot len:", freshLen)
	fmt.Println("old snapshot len:", oldLen)
	// Output:
	// fresh snapshot len: 1
	// old snapshot len: 2
}
