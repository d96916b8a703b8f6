package orchestrator

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshkartz/Fixed-Gear-Goldbach-Engine/internal/audit"
	"github.com/joshkartz/Fixed-Gear-Goldbach-Engine/internal/gear"
	"github.com/joshkartz/Fixed-Gear-Goldbach-Engine/internal/logging"
)

func quietLogger() *logrus.Logger { return logging.New("error", false) }

func TestRunSieveSmallLimitFullCoverage(t *testing.T) {
	dir := t.TempDir()
	g := gear.Build(310, 6300)

	summary, err := RunSieve(context.Background(), SieveOptions{
		Limit:                 200,
		Gear:                  g,
		SegmentEvens:          32,
		MaxConcurrentSegments: 2,
		ThreadsInside:         2,
		Block:                 0,
		MissSample:            5,
		VerifySeams:           true,
		SeamBand:              20,
		OverlapFloor:          64,
		OutputDir:             dir,
	}, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, summary.TotalEvens, summary.Covered)

	require.True(t, audit.Exists(audit.SegmentPath(dir, 0)))
}

func TestRunSieveResumeSkipsCompletedSegments(t *testing.T) {
	dir := t.TempDir()
	g := gear.Build(310, 6300)
	opts := SieveOptions{
		Limit: 200, Gear: g, SegmentEvens: 32, MaxConcurrentSegments: 2,
		ThreadsInside: 2, MissSample: 0, OutputDir: dir,
	}

	first, err := RunSieve(context.Background(), opts, quietLogger())
	require.NoError(t, err)

	opts.Resume = true
	second, err := RunSieve(context.Background(), opts, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, first.Covered, second.Covered)
	assert.Equal(t, first.TotalEvens, second.TotalEvens)
}

func TestRunMRSmallWindow(t *testing.T) {
	dir := t.TempDir()
	g := gear.Build(310, 6300)
	report, err := RunMR(context.Background(), MROptions{
		StartN: 6, WindowEvens: 20, Gear: g, ThreadsInside: 2, OutputDir: dir,
	}, quietLogger())
	require.NoError(t, err)
	assert.EqualValues(t, 20, report.Covered)
	assert.True(t, audit.Exists(audit.WindowPath(dir, 6, 20)))
}
