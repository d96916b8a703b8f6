// window.go implements the MR-mode window worker (C7): parallel
// per-even witness search over a sparse high window, with an atomic
// Covered counter and a mutex-guarded bounded miss buffer, per
// spec.md §4.7/§5.
package worker

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/joshkartz/Fixed-Gear-Goldbach-Engine/internal/audit"
	"github.com/joshkartz/Fixed-Gear-Goldbach-Engine/internal/gear"
)

// WindowParams collects RunWindow's fixed inputs.
type WindowParams struct {
	Gear          *gear.Gear
	ThreadsInside int
	MissSample    int
}

// RunWindow evaluates HasWitnessMR for every even in
// [nStart, nStart+2*(windowEvens-1)], splitting the index range across
// ThreadsInside goroutines with a static partition, mirroring the
// segment worker's fan-out shape but operating directly on MR64
// (spec.md §4.7).
func RunWindow(nStart, windowEvens int64, p WindowParams) *WindowResult {
	start := time.Now()
	nEnd := nStart + 2*(windowEvens-1)

	threads := p.ThreadsInside
	if threads < 1 {
		threads = 1
	}

	var covered int64
	var missMu sync.Mutex
	var misses []int64

	var wg sync.WaitGroup
	for t := 0; t < threads; t++ {
		lo := int64(t) * windowEvens / int64(threads)
		hi := int64(t+1) * windowEvens / int64(threads)
		wg.Add(1)
		go func(lo, hi int64) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				n := nStart + 2*i
				if HasWitness(n, p.Gear) {
					atomic.AddInt64(&covered, 1)
				} else if p.MissSample > 0 {
					missMu.Lock()
					if len(misses) < p.MissSample {
						misses = append(misses, n)
					}
					missMu.Unlock()
				}
			}
		}(lo, hi)
	}
	wg.Wait()

	pct := 100.0
	if windowEvens > 0 {
		pct = 100.0 * float64(covered) / float64(windowEvens)
	}

	return &WindowResult{
		Report: audit.Report{
			Index:      0,
			NStart:     nStart,
			NEnd:       nEnd,
			Covered:    covered,
			TotalEvens: windowEvens,
			Pct:        pct,
			Seconds:    time.Since(start).Seconds(),
		},
		Misses: misses,
	}
}

// WindowResult is RunWindow's output: the window's report plus its
// bounded miss sample.
type WindowResult struct {
	Report audit.Report
	Misses []int64
}
