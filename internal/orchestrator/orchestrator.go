// Package orchestrator implements the segment/window partition,
// bounded parallel dispatch, checkpoint/resume, and aggregation (C8).
//
// Grounded on Ribengame-hunter's RiemannHunter.Run: errgroup-based
// background processors (there: result/stats/checkpoint/status groups;
// here: one group entry per segment or a single window call) and its
// printStartupBanner/printFinalStatistics bracket. Outer concurrency is
// bounded with golang.org/x/sync/semaphore, the errgroup package's
// sibling in the same module the teacher already depends on, generalizing
// the teacher's ad hoc RAM-based worker count heuristic
// (NewWorkerPool's maxWorkersByRAM) into the spec's explicit
// MaxConcurrentSegments cap.
package orchestrator

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/joshkartz/Fixed-Gear-Goldbach-Engine/internal/audit"
	"github.com/joshkartz/Fixed-Gear-Goldbach-Engine/internal/coverage"
	"github.com/joshkartz/Fixed-Gear-Goldbach-Engine/internal/gear"
	"github.com/joshkartz/Fixed-Gear-Goldbach-Engine/internal/worker"
)

// SieveOptions are the parameters of a full sieve-mode run (spec.md
// §4.8's "Sieve flow").
type SieveOptions struct {
	Limit                 int64
	Gear                  *gear.Gear
	SegmentEvens          int64
	MaxConcurrentSegments int
	ThreadsInside         int
	Block                 int64
	MissSample            int
	VerifySeams           bool
	SeamBand              int64
	OverlapFloor          int64
	Resume                bool
	OutputDir             string
}

// SieveSummary is the orchestrator's aggregate result across every
// completed segment — ignoring any segment whose result is unavailable
// is not possible here since a run only completes after every segment
// either computes or is loaded from a checkpoint, but a segment whose
// audit write failed still contributes its in-memory stats.
type SieveSummary struct {
	SegmentCount int
	Covered      int64
	TotalEvens   int64
	Pct          float64
}

// RunSieve partitions [2, Limit]'s evens into fixed-size segments and
// dispatches up to MaxConcurrentSegments of them in parallel, resuming
// from any existing audit file when opts.Resume is set.
func RunSieve(ctx context.Context, opts SieveOptions, logger *logrus.Logger) (*SieveSummary, error) {
	totalSlots := opts.Limit / 2

	bs, err := coverage.New(totalSlots, opts.SegmentEvens)
	if err != nil {
		return nil, err
	}
	segCount := bs.SegmentCount()
	logger.Infof("[Bitset] totalSlots=%d segmentEvens=%d segments=%d", bs.TotalSlots(), bs.SegmentEvens(), segCount)

	maxConcurrent := opts.MaxConcurrentSegments
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	sem := semaphore.NewWeighted(int64(maxConcurrent))

	g, gctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	var totalCovered, totalEvens int64

	segParams := worker.SegmentParams{
		Gear:          opts.Gear,
		Limit:         opts.Limit,
		Block:         opts.Block,
		ThreadsInside: opts.ThreadsInside,
		MissSample:    opts.MissSample,
		VerifySeams:   opts.VerifySeams,
		SeamBand:      opts.SeamBand,
		OverlapFloor:  opts.OverlapFloor,
	}

	for s := 0; s < segCount; s++ {
		segIndex := s
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			reportPath := audit.SegmentPath(opts.OutputDir, segIndex)
			if opts.Resume && audit.Exists(reportPath) {
				if rep, err := audit.ReadReport(reportPath); err == nil {
					logger.Infof("[seg %05d] resumed from checkpoint", segIndex)
					mu.Lock()
					totalCovered += rep.Covered
					totalEvens += rep.TotalEvens
					mu.Unlock()
					return nil
				}
				logger.Warnf("[seg %05d] checkpoint unreadable, recomputing", segIndex)
			}

			result, err := worker.RunSegment(bs, segIndex, segParams)
			if err != nil {
				return err
			}

			for _, sa := range result.Seams {
				logger.Warnf("[seg %05d] %v", segIndex, sa)
			}

			if err := audit.WriteReport(reportPath, &result.Report); err != nil {
				logger.Errorf("[seg %05d] %v", segIndex, err)
			}
			if len(result.Misses) > 0 {
				if err := audit.WriteMisses(audit.SegmentMissesPath(opts.OutputDir, segIndex), result.Misses); err != nil {
					logger.Errorf("[seg %05d] %v", segIndex, err)
				}
			}

			logger.Infof("[seg %05d] covered=%d/%d (%.6f%%) in %.2fs",
				segIndex, result.Report.Covered, result.Report.TotalEvens, result.Report.Pct, result.Report.Seconds)

			mu.Lock()
			totalCovered += result.Report.Covered
			totalEvens += result.Report.TotalEvens
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	pct := 100.0
	if totalEvens > 0 {
		pct = 100.0 * float64(totalCovered) / float64(totalEvens)
	}
	logger.Infof("[TOTAL] covered=%d/%d (%.6f%%) across %d segments", totalCovered, totalEvens, pct, segCount)

	return &SieveSummary{
		SegmentCount: segCount,
		Covered:      totalCovered,
		TotalEvens:   totalEvens,
		Pct:          pct,
	}, nil
}

// MROptions are the parameters of an mr-mode run (spec.md §4.8's "MR flow").
type MROptions struct {
	StartN        int64
	WindowEvens   int64
	Gear          *gear.Gear
	ThreadsInside int
	MissSample    int
	OutputDir     string
}

// RunMR evaluates one window and writes its audit report.
func RunMR(_ context.Context, opts MROptions, logger *logrus.Logger) (*audit.Report, error) {
	result := worker.RunWindow(opts.StartN, opts.WindowEvens, worker.WindowParams{
		Gear:          opts.Gear,
		ThreadsInside: opts.ThreadsInside,
		MissSample:    opts.MissSample,
	})

	reportPath := audit.WindowPath(opts.OutputDir, opts.StartN, opts.WindowEvens)
	if err := audit.WriteReport(reportPath, &result.Report); err != nil {
		logger.Errorf("[window] %v", err)
	}
	if len(result.Misses) > 0 {
		if err := audit.WriteMisses(audit.WindowMissesPath(opts.OutputDir, opts.StartN, opts.WindowEvens), result.Misses); err != nil {
			logger.Errorf("[window] %v", err)
		}
	}

	logger.Infof("[window] covered=%d/%d (%.6f%%) in %.2fs",
		result.Report.Covered, result.Report.TotalEvens, result.Report.Pct, result.Report.Seconds)

	return &result.Report, nil
}
