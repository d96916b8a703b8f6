// segment.go implements the sieve-mode segment worker (C6): window
// expansion, parallel prime-indexed fan-out into thread-local words,
// barrier-merge, seam verification, and tally — spec.md §4.6, the
// hardest single component in the spec.
//
// Grounded on Ribengame-hunter's Worker/WorkerPool shape (NewWorker,
// processBatch's per-item loop plus atomic stat bump,
// WorkerStatsInternal's mutex-guarded counters), generalized from
// "batch of floats through one calculator" to "static partition of a
// prime list, each writing into its own word buffer".
package worker

import (
	"time"

	"github.com/joshkartz/Fixed-Gear-Goldbach-Engine/internal/coverage"
	"github.com/joshkartz/Fixed-Gear-Goldbach-Engine/internal/engineerr"
	"github.com/joshkartz/Fixed-Gear-Goldbach-Engine/internal/gear"
	"github.com/joshkartz/Fixed-Gear-Goldbach-Engine/internal/sieve"

	"sync"

	"github.com/joshkartz/Fixed-Gear-Goldbach-Engine/internal/audit"
)

// SegmentParams collects the fixed inputs to RunSegment that do not
// vary per call from the orchestrator's perspective.
type SegmentParams struct {
	Gear          *gear.Gear
	Limit         int64 // L, spec.md §4.6's global LIMIT
	Block         int64 // inner sieve block B
	ThreadsInside int   // T
	MissSample    int   // M
	VerifySeams   bool
	SeamBand      int64 // default 200, spec.md §9's Open Question knob
	OverlapFloor  int64 // default 1024
}

// SegmentResult is what RunSegment hands back to the orchestrator: the
// durable report, an optional bounded miss sample, and any seam
// anomalies found (diagnostic only — never alters Covered).
type SegmentResult struct {
	Report  audit.Report
	Misses  []int64
	Seams   []*engineerr.SeamAnomaly
	Trivial bool
}

// RunSegment computes and merges segment segIndex of bs, per spec.md §4.6.
func RunSegment(bs *coverage.Bitset, segIndex int, p SegmentParams) (*SegmentResult, error) {
	start := time.Now()

	idxStart, evensHere := bs.SegmentBounds(segIndex)
	if evensHere <= 0 {
		return &SegmentResult{Trivial: true, Report: audit.Report{
			Index: segIndex, Pct: 100, Seconds: time.Since(start).Seconds(),
		}}, nil
	}
	idxEnd := idxStart + evensHere - 1

	nStart := coverage.NFromIdx(idxStart)
	nEnd := coverage.NFromIdx(idxEnd)
	if segIndex == 0 && nStart < 2 {
		nStart = 2
	}

	totalSlots := bs.TotalSlots()
	overlap := p.OverlapFloor
	if 2*p.Gear.QMax > overlap {
		overlap = 2 * p.Gear.QMax
	}
	idxStartX := idxStart - overlap
	if idxStartX < 0 {
		idxStartX = 0
	}
	idxEndX := idxEnd + overlap
	if idxEndX > totalSlots-1 {
		idxEndX = totalSlots - 1
	}
	nStartX := coverage.NFromIdx(idxStartX)
	nEndX := coverage.NFromIdx(idxEndX)

	pLo := nStartX - p.Gear.QMax
	if pLo < 2 {
		pLo = 2
	}
	pHi := nEndX - p.Gear.QMin
	if pHi < 2 {
		pHi = 2
	}

	basePrimes := sieve.Base(sieve.IsqrtCeil(pHi) + 1)
	segPrimes := sieve.Collect(pLo, pHi, basePrimes, p.Block)

	wordCount := bs.SegmentWordCount(segIndex)
	threads := p.ThreadsInside
	if threads < 1 {
		threads = 1
	}

	localWords := make([][]uint64, threads)
	for t := range localWords {
		localWords[t] = make([]uint64, wordCount)
	}

	n := len(segPrimes)
	var wg sync.WaitGroup
	for t := 0; t < threads; t++ {
		lo := t * n / threads
		hi := (t + 1) * n / threads
		words := localWords[t]
		wg.Add(1)
		go func(lo, hi int, words []uint64) {
			defer wg.Done()
			fanOut(segPrimes[lo:hi], p.Gear.Odd, idxStart, evensHere, words)
		}(lo, hi, words)
	}
	wg.Wait()

	for t := 0; t < threads; t++ {
		if err := bs.MergeSegment(segIndex, localWords[t]); err != nil {
			return nil, err
		}
	}

	result := &SegmentResult{}

	if p.VerifySeams {
		band := p.SeamBand
		if band <= 0 {
			band = 200
		}
		result.Seams = append(result.Seams, seamCheck(bs, max64(nStart, 6), min64(nStart+band, nEnd), p.Gear)...)
		result.Seams = append(result.Seams, seamCheck(bs, max64(nStart, nEnd-(band-2)), nEnd, p.Gear)...)
	}

	effectiveNStart := nStart
	if segIndex == 0 {
		effectiveNStart = max64(nStart, 6)
	}
	totalEvens := int64(0)
	covered := int64(0)
	var misses []int64
	if nEnd >= effectiveNStart {
		totalEvens = (nEnd-effectiveNStart)/2 + 1
		for v := effectiveNStart; v <= nEnd; v += 2 {
			if bs.Get(v) {
				covered++
			} else if p.MissSample > 0 && len(misses) < p.MissSample {
				misses = append(misses, v)
			}
		}
	}

	pct := 100.0
	if totalEvens > 0 {
		pct = 100.0 * float64(covered) / float64(totalEvens)
	}

	result.Report = audit.Report{
		Index:      segIndex,
		NStart:     nStart,
		NEnd:       nEnd,
		Covered:    covered,
		TotalEvens: totalEvens,
		Pct:        pct,
		Seconds:    time.Since(start).Seconds(),
	}
	result.Misses = misses
	return result, nil
}

// fanOut writes, for each prime p in segPrimes and each odd gear
// element q, the bit for n=p+q into words if n's slot falls within
// [idxStart, idxStart+evensHere). Writes outside that local window
// (an artifact of the overlap padding) are dropped, per spec.md §4.6,
// so the padding bits past evensHere in the final word stay zero.
func fanOut(segPrimes, oddGear []int64, idxStart, evensHere int64, words []uint64) {
	limit := evensHere
	for _, pr := range segPrimes {
		for _, q := range oddGear {
			n := pr + q
			if n&1 != 0 {
				continue
			}
			idx := n/2 - 1
			local := idx - idxStart
			if local < 0 || local >= limit {
				continue
			}
			words[local/64] |= 1 << uint(local%64)
		}
	}
}

// seamCheck cross-checks every even in [lo, hi] whose coverage bit is
// unset against HasWitnessMR, reporting a SeamAnomaly for each
// inconsistency found. Diagnostic only — never mutates bs.
func seamCheck(bs *coverage.Bitset, lo, hi int64, g *gear.Gear) []*engineerr.SeamAnomaly {
	var anomalies []*engineerr.SeamAnomaly
	for n := lo; n <= hi; n += 2 {
		if bs.Get(n) {
			continue
		}
		if p, q, ok := FindWitness(n, g); ok {
			anomalies = append(anomalies, &engineerr.SeamAnomaly{N: n, P: p, Q: q})
		}
	}
	return anomalies
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
