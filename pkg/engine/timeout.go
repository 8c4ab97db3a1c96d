package engine

import (
	"fmt"
	"sync"
	"time"
)

// DefaultTimeout is the limit for a single evaluation unless WithTimeout
// says otherwise.
const DefaultTimeout = 5 * time.Second

type evalResult struct {
	res EvalResult
	err error
}

// waitWithTimeout waits for a result from ch, failing once timeout elapses.
// A result whose generation is no longer current is discarded.
//
// On timeout the evaluating goroutine may still be running; its result is
// dropped into the buffered channel and never read.
func waitWithTimeout(
	ch <-chan evalResult,
	gen uint64,
	mu *sync.Mutex,
	currentGen *uint64,
	timeout time.Duration,
) (EvalResult, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case r := <-ch:
		mu.Lock()
		current := *currentGen
		mu.Unlock()

		if gen != current {
			return EvalResult{}, fmt.Errorf("evaluation superseded by newer request")
		}
		return r.res, r.err

	case <-timer.C:
		return EvalResult{}, fmt.Errorf("evaluation timed out after %s", timeout)
	}
}
