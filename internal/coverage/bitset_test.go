package coverage

import (
	"testing"

	"github.com/joshkartz/Fixed-Gear-Goldbach-Engine/internal/engineerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdxNFromIdxRoundTrip(t *testing.T) {
	for _, n := range []int64{2, 4, 6, 100, 1_000_000_000_000} {
		assert.Equal(t, n, NFromIdx(Idx(n)))
	}
}

func TestNewSegmentCount(t *testing.T) {
	bs, err := New(51, 32)
	require.NoError(t, err)
	assert.Equal(t, 2, bs.SegmentCount())
	assert.EqualValues(t, 32, bs.SegmentEvens())

	start0, here0 := bs.SegmentBounds(0)
	assert.EqualValues(t, 0, start0)
	assert.EqualValues(t, 32, here0)

	start1, here1 := bs.SegmentBounds(1)
	assert.EqualValues(t, 32, start1)
	assert.EqualValues(t, 19, here1)
}

func TestSetGetRoundTrip(t *testing.T) {
	bs, err := New(100, 32)
	require.NoError(t, err)
	bs.Set(6)
	bs.Set(100)
	assert.True(t, bs.Get(6))
	assert.True(t, bs.Get(100))
	assert.False(t, bs.Get(8))
}

func TestGetOutOfRangeReturnsFalse(t *testing.T) {
	bs, err := New(10, 10)
	require.NoError(t, err)
	assert.False(t, bs.Get(-2))
	assert.False(t, bs.Get(1_000_000))
}

func TestMergeSegmentORsBits(t *testing.T) {
	bs, err := New(128, 128)
	require.NoError(t, err)
	words := make([]uint64, bs.SegmentWordCount(0))
	words[0] = 1 // idx 0 -> n=2
	require.NoError(t, bs.MergeSegment(0, words))
	assert.True(t, bs.Get(2))

	words2 := make([]uint64, bs.SegmentWordCount(0))
	words2[0] = 1 << 1 // idx 1 -> n=4
	require.NoError(t, bs.MergeSegment(0, words2))
	assert.True(t, bs.Get(2))
	assert.True(t, bs.Get(4))
}

func TestMergeSegmentWrongLengthErrors(t *testing.T) {
	bs, err := New(128, 128)
	require.NoError(t, err)
	err = bs.MergeSegment(0, make([]uint64, bs.SegmentWordCount(0)+1))
	require.Error(t, err)
	var mismatch *engineerr.WordCountMismatch
	assert.ErrorAs(t, err, &mismatch)
}

func TestNewClampsSegmentEvens(t *testing.T) {
	bs, err := New(10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, bs.SegmentEvens())

	bs2, err := New(10, MaxSegmentEvens*2)
	require.NoError(t, err)
	assert.EqualValues(t, MaxSegmentEvens, bs2.SegmentEvens())
}

func TestNewZeroTotalSlots(t *testing.T) {
	bs, err := New(0, 32)
	require.NoError(t, err)
	assert.Equal(t, 0, bs.SegmentCount())
}
