// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package telemetry wraps vschain's [vschain.Chain] and [vschain.Iterator]
// with OpenTelemetry tracing ([TracedChain]), OpenTelemetry metrics
// ([MetricsChain]), or zap structured logging ([LoggedChain]), or with all
// three at once ([InstrumentedChain]). Each wrapper takes a plain
// *vschain.Chain, so the single-purpose wrappers do not stack on one
// another. None of it changes Chain or Iterator
// semantics: a wrapped value still obeys every ordering, reclamation, and
// state-machine guarantee of the value it wraps, since every method does
// nothing but observe and then delegate.
package telemetry
