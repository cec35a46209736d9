// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Command vschaindemo runs a small producer/consumer workload against a
// [vschain.Chain], generalizing original_source/examples/multithread.c:
// a configurable number of producer goroutines append values while a
// configurable number of consumer goroutines repeatedly snapshot and drain
// the chain until every value produced has been observed.
package main

import (
	"flag"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/petenewcomb/vschain-go"
	"github.com/petenewcomb/vschain-go/telemetry"
	"go.uber.org/zap"
)

func main() {
	numProducers := flag.Int("producers", 4, "number of producer goroutines")
	numConsumers := flag.Int("consumers", 8, "number of consumer goroutines")
	perProducer := flag.Int("per-producer", 1000, "values appended by each producer")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	c := vschain.New[int]()
	chain := telemetry.NewLoggedChain("vschaindemo", c)

	total := *numProducers * *perProducer
	var produced atomic.Int64

	var producers sync.WaitGroup
	producers.Add(*numProducers)
	for p := 0; p < *numProducers; p++ {
		p := p
		go func() {
			defer producers.Done()
			base := p * *perProducer
			for i := 0; i < *perProducer; i++ {
				if err := chain.Append(base + i); err != nil {
					logger.Error("append failed", zap.Error(err))
					return
				}
				produced.Add(1)
			}
		}()
	}

	var producersDone atomic.Bool
	var consumers sync.WaitGroup
	consumers.Add(*numConsumers)
	for cn := 0; cn < *numConsumers; cn++ {
		cn := cn
		go func() {
			defer consumers.Done()
			for {
				done := producersDone.Load()
				it, err := chain.Iter()
				if err != nil {
					logger.Error("iter failed", zap.Error(err))
					return
				}
				var n, sum int
				for {
					v, ok, err := it.Next()
					if err != nil {
						logger.Error("next failed", zap.Error(err))
						return
					}
					if !ok {
						break
					}
					n++
					sum += v
				}
				it.Destroy()
				fmt.Printf("consumer %d counts %d elements summing %d\n", cn, n, sum)

				if done {
					return
				}
				time.Sleep(time.Millisecond)
			}
		}()
	}

	producers.Wait()
	produced.Store(int64(total))
	producersDone.Store(true)
	consumers.Wait()

	n, _ := chain.Len()
	fmt.Printf("final length: %d\n", n)

	if err := chain.Destroy(); err != nil {
		logger.Error("destroy failed", zap.Error(err))
	}
}
