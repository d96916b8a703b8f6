// Package coverage implements the segmented even-coverage bitset (C5):
// a finite ordered sequence of Segments, each a []uint64 word array
// addressed by the slot index idx(n) = (n/2) - 1 (spec.md §3, fixed
// uniformly per spec.md §9's resolved slot-indexing ambiguity).
//
// The word-indexed Set/Get/word-count shape is grounded on
// other_examples/bpowers-bit__bitset.go's []uint64 bitset and
// other_examples/anisomorphic-Parallel-Prime-Sieve__main.go's
// segment-local OddBits addressing, generalized to multiple independent
// segments with an explicit per-segment word count and a sanctioned
// multi-writer merge path (MergeSegment). A compressed bitmap
// (RoaringBitmap, bits-and-blooms/bitset — both present in the example
// pack's hupe1980-vecgo/go.mod) was considered and rejected for this
// component: see DESIGN.md for why the exact, caller-visible word count
// per segment this protocol requires rules them out.
package coverage

import (
	"github.com/joshkartz/Fixed-Gear-Goldbach-Engine/internal/engineerr"
)

// MaxSegmentEvens and the 2^31-word (2^31*64-even) platform bound from spec.md §4.5.
const (
	MaxSegmentEvens   = 2_000_000_000
	maxWordsPerSeg     = 1 << 31
	maxSegmentEvensAbs = maxWordsPerSeg * 64
)

// Segment owns the evens it represents and their backing words. Bits
// outside [0, EvensHere) in the final word are always zero.
type Segment struct {
	EvensHere int64
	Words     []uint64
}

// Bitset is the segmented, slot-indexed coverage array. It is
// exclusively owned by the orchestrator; segment workers receive only a
// logical capability to write into one segment's thread-local buffers
// during that segment's parallel-then-merge phase.
type Bitset struct {
	segmentEvens int64
	segments     []Segment
	totalSlots   int64
}

// Idx returns the slot index for even n: (n/2) - 1.
func Idx(n int64) int64 { return n/2 - 1 }

// NFromIdx returns the even n represented by slot index idx: (idx+1)*2.
func NFromIdx(idx int64) int64 { return (idx + 1) * 2 }

// WordsForEvens returns ceil(evens/64).
func WordsForEvens(evens int64) int64 { return (evens + 63) / 64 }

// New constructs a Bitset covering totalSlots slots, picking
// SegmentEvens E = min(requestedSegmentEvens, MaxSegmentEvens,
// maxSegmentEvensAbs), clamped to >= 1, per spec.md §4.5's Construct.
func New(totalSlots, requestedSegmentEvens int64) (*Bitset, error) {
	if requestedSegmentEvens < 1 {
		requestedSegmentEvens = 1
	}
	e := requestedSegmentEvens
	if e > MaxSegmentEvens {
		e = MaxSegmentEvens
	}
	if e > maxSegmentEvensAbs {
		e = maxSegmentEvensAbs
	}
	if totalSlots < 0 {
		totalSlots = 0
	}

	segCount := int64(0)
	if totalSlots > 0 {
		segCount = (totalSlots + e - 1) / e
	}
	if segCount > maxWordsPerSeg {
		return nil, engineerr.NewCapacityExceeded("segmentCount", segCount, maxWordsPerSeg)
	}

	b := &Bitset{segmentEvens: e, totalSlots: totalSlots}
	b.segments = make([]Segment, segCount)
	remaining := totalSlots
	for i := int64(0); i < segCount; i++ {
		here := e
		if remaining < here {
			here = remaining
		}
		remaining -= here
		words := WordsForEvens(here)
		if words > maxWordsPerSeg {
			return nil, engineerr.NewCapacityExceeded("segmentWordCount", words, maxWordsPerSeg)
		}
		b.segments[i] = Segment{EvensHere: here, Words: make([]uint64, words)}
	}
	return b, nil
}

// SegmentEvens returns the fixed segment size E this Bitset was built with.
func (b *Bitset) SegmentEvens() int64 { return b.segmentEvens }

// SegmentCount returns the number of segments.
func (b *Bitset) SegmentCount() int { return len(b.segments) }

// TotalSlots returns the total addressable slot count.
func (b *Bitset) TotalSlots() int64 { return b.totalSlots }

// SegmentBounds returns the global slot range [start, start+EvensHere)
// covered by segment s.
func (b *Bitset) SegmentBounds(s int) (start, evensHere int64) {
	return int64(s) * b.segmentEvens, b.segments[s].EvensHere
}

// SegmentWordCount returns the number of words owned by segment s.
func (b *Bitset) SegmentWordCount(s int) int {
	return len(b.segments[s].Words)
}

// Set marks even n as covered. It is a no-op if n's slot falls outside
// the Bitset's range. Not required to be thread-safe — hot-path writes
// go through thread-local buffers merged via MergeSegment.
func (b *Bitset) Set(n int64) {
	idx := Idx(n)
	if idx < 0 || idx >= b.totalSlots {
		return
	}
	s := idx / b.segmentEvens
	local := idx % b.segmentEvens
	word := local / 64
	bit := uint(local % 64)
	b.segments[s].Words[word] |= 1 << bit
}

// Get reports whether even n's bit is set. Returns false if out of range.
func (b *Bitset) Get(n int64) bool {
	idx := Idx(n)
	if idx < 0 || idx >= b.totalSlots {
		return false
	}
	s := idx / b.segmentEvens
	local := idx % b.segmentEvens
	word := local / 64
	bit := uint(local % 64)
	return b.segments[s].Words[word]&(1<<bit) != 0
}

// MergeSegment ORs every word of localWords into segment s's words. It
// is the only sanctioned multi-writer path and must be invoked strictly
// after a barrier that ordered all thread-local writes before it
// (spec.md §4.5/§5). Applying the same localWords twice is idempotent —
// OR is idempotent per payload.
func (b *Bitset) MergeSegment(s int, localWords []uint64) error {
	want := len(b.segments[s].Words)
	if len(localWords) != want {
		return &engineerr.WordCountMismatch{Segment: s, Expected: want, Got: len(localWords)}
	}
	dst := b.segments[s].Words
	for i, w := range localWords {
		dst[i] |= w
	}
	return nil
}
