// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package vschain

import "github.com/petenewcomb/vschain-go/internal/cerr"

// ErrNilChain is returned when an operation is attempted on a nil *Chain.
const ErrNilChain = cerr.Error("vschain: nil chain")

// ErrChainDestroyed is returned when an operation is attempted on a Chain
// after Destroy has already been called on it.
const ErrChainDestroyed = cerr.Error("vschain: chain already destroyed")

// ErrNilIterator is returned when an operation is attempted on a nil
// *Iterator.
const ErrNilIterator = cerr.Error("vschain: nil iterator")

// ErrIteratorDestroyed is returned when an operation is attempted on an
// Iterator after Destroy has already been called on it.
const ErrIteratorDestroyed = cerr.Error("vschain: iterator already destroyed")
