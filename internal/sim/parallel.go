package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/san-kum/dropsim/internal/dynamo"
)

// Factory builds an independent simulator for one ensemble member.
type Factory func(seed int64) (*Simulator, error)

// Ensemble runs independent worlds over consecutive seeds in parallel. Each
// world is still stepped by a single goroutine.
type Ensemble struct {
	factory   Factory
	numRuns   int
	seedStart int64
}

func NewEnsemble(factory Factory, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{factory: factory, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, newInput func() dynamo.InputSource, cfg Config) ([]*dynamo.Result, error) {
	if e.numRuns < 1 {
		return nil, fmt.Errorf("ensemble needs at least 1 run, got %d", e.numRuns)
	}
	results := make([]*dynamo.Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			s, err := e.factory(e.seedStart + int64(idx))
			if err != nil {
				errs[idx] = err
				return
			}
			var input dynamo.InputSource
			if newInput != nil {
				input = newInput()
			}
			results[idx], errs[idx] = s.Run(ctx, input, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
