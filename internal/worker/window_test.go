package worker

import (
	"testing"

	"github.com/joshkartz/Fixed-Gear-Goldbach-Engine/internal/gear"
	"github.com/stretchr/testify/assert"
)

func TestRunWindowFullCoverageSmallWindow(t *testing.T) {
	g := gear.Build(310, 6300)
	result := RunWindow(6, 20, WindowParams{Gear: g, ThreadsInside: 3, MissSample: 5})
	assert.EqualValues(t, 20, result.Report.Covered)
	assert.EqualValues(t, 20, result.Report.TotalEvens)
	assert.EqualValues(t, 44, result.Report.NEnd)
	assert.Empty(t, result.Misses)
}

func TestRunWindowUndersizedGearRecordsMisses(t *testing.T) {
	g := &gear.Gear{All: []int64{2, 3}, Odd: []int64{3}, QMin: 3, QMax: 3}
	result := RunWindow(6, 50, WindowParams{Gear: g, ThreadsInside: 4, MissSample: 5})
	assert.Less(t, result.Report.Covered, result.Report.TotalEvens)
	assert.NotEmpty(t, result.Misses)
	assert.LessOrEqual(t, len(result.Misses), 5)
}

func TestRunWindowSingleThread(t *testing.T) {
	g := gear.Build(50, 500)
	result := RunWindow(1000, 10, WindowParams{Gear: g, ThreadsInside: 1})
	assert.EqualValues(t, 1018, result.Report.NEnd)
}
