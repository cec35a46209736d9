// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package telemetry_test

import (
	"context"
	"fmt"

	"github.com/petenewcomb/vschain-go"
	"github.com/petenewcomb/vschain-go/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/trace"
)

// Example demonstrating how to use the telemetry package's tracing
// integration with a Chain.
func Example_tracing() {
	exporter, _ := stdouttrace.New(stdouttrace.WithPrettyPrint())
	tp := trace.NewTracerProvider(
		trace.WithSampler(trace.AlwaysSample()),
		trace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(tp)
	defer tp.Shutdown(context.Background())

	ctx, rootSpan := otel.Tracer("example").Start(context.Background(), "process-batch")
	defer rootSpan.End()

	c := vschain.New[string]()
	defer c.Destroy()

	tc := telemetry.NewTracedChain("batch", c)
	tc.Append(ctx, "alpha")
	tc.Append(ctx, "beta")

	it, _ := tc.Iter(ctx)
	defer it.Destroy()
	for {
		v, ok, _ := it.Next()
		if !ok {
			break
		}
		fmt.Println(v)
	}
	// Output:
	// alpha
	// beta
}

// Example demonstrating a fully instrumented chain.
func Example_instrumentedChain() {
	exporter, _ := stdouttrace.New(stdouttrace.WithPrettyPrint())
	tp := trace.NewTracerProvider(
		trace.WithSampler(trace.AlwaysSample()),
		trace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(tp)
	defer tp.Shutdown(context.Background())

	ctx := context.Background()
	c := vschain.New[int]()

	ic := telemetry.NewInstrumentedChain("counters", c)
	ic.Append(ctx, 1)
	ic.Append(ctx, 2)
	ic.Append(ctx, 3)

	n, _ := ic.Len(ctx)
	fmt.Println("len:", n)

	it, _ := ic.Iter(ctx)
	sum := 0
	for {
		v, ok, _ := it.Next()
		if !ok {
			break
		}
		sum += v
	}
	it.Destroy()
	fmt.Println("sum:", sum)

	ic.Destroy(ctx)
	// Output:
	// len: 3
	// sum: 6
}
