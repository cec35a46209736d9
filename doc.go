// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package vschain provides a concurrent, append-only sequence container with
// snapshot iterators: a building block for producer/consumer pipelines where
// many writers append values while many readers scan what has been appended
// so far, without any reader blocking any writer and without any writer
// blocking any reader.
//
// [Chain] is the shared structure. [Chain.Append] publishes values from any
// number of goroutines without locking; [Chain.Iter] hands back an
// [Iterator], a one-shot forward cursor over a frozen view of the chain taken
// at the instant of the call. [Chain.Clear] empties the chain for future
// observers without disturbing iterators that already exist, and destroying
// or clearing a Chain never invalidates an Iterator that was already handed
// out — it keeps its own reference to the nodes it captured for as long as it
// is alive.
//
// # Ordering
//
// A single goroutine's own appends land in the order it made them. Across
// goroutines, the only guarantee is that an Iterator sees some prefix of the
// chain as of a linearization point at or before its creation: it never sees
// an element appended after that point, and never misses one appended
// strictly before it.
//
// # Payloads
//
// Chain is generic over its payload type and never inspects, copies, or
// dereferences it. An optional free function, supplied via [WithFree], runs
// exactly once per payload whose owning node is reclaimed by Clear or
// Destroy — not before, and not if an outstanding Iterator still holds that
// node.
//
// # Non-goals
//
// Chain supports neither random access nor removal or update of individual
// elements; it only grows, in full, between clears. It makes no persistence
// guarantee and no ordering guarantee across concurrent appenders beyond what
// is stated above.
package vschain
