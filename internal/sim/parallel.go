package sim

import (
	"context"
	"sync"

	"github.com/san-kum/orbsim/internal/orb"
)

// Ensemble runs the same script under consecutive seeds in parallel. Each
// run owns its own controller, so nothing is shared between goroutines.
type Ensemble struct {
	settings  orb.Settings
	script    func(seed int64) Script
	numRuns   int
	seedStart int64
}

func NewEnsemble(settings orb.Settings, script func(seed int64) Script, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{settings: settings, script: script, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			runner := NewRunner(e.settings, e.script(cfgCopy.Seed))
			results[idx], errs[idx] = runner.Run(ctx, cfgCopy)
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
