package seedextend

import (
	"github.com/biogo/store/llrb"
)

// Range is a half-open range of sequence numbers, [Start, End).
type Range struct {
	Start, End int
}

// Len reports the number of sequences in r.
func (r Range) Len() int { return r.End - r.Start }

// cutPoint is an llrb.Comparable wrapping a candidate partition boundary,
// keyed by cumulative base count. Using an ordered tree to collect and
// then walk the boundaries in sorted order mirrors
// cmd/bio-bam-sort/sorter/sort.go's llrb.Tree-of-Comparable technique for
// keeping shard bookkeeping ordered as it's built incrementally, here
// applied to partition cut points instead of merge-leaf records.
type cutPoint struct {
	cumulative uint64
	seqNum     int
}

func (c *cutPoint) Compare(o llrb.Comparable) int {
	other := o.(*cutPoint)
	switch {
	case c.cumulative < other.cumulative:
		return -1
	case c.cumulative > other.cumulative:
		return 1
	default:
		return c.seqNum - other.seqNum
	}
}

// Partition splits [0,numSeq) into n near-equal-length ranges, per
// spec.md §4.6's "partitions each input set into ranges of sequences
// (for memory/threading)". seqLength(i) returns the base length of
// sequence i; ranges are cut so that each partition's total base count
// is as close to totalLen/n as the sequence boundaries allow.
func Partition(numSeq, n int, seqLength func(i int) uint64) []Range {
	if n <= 1 || numSeq <= 1 {
		return []Range{{0, numSeq}}
	}
	if n > numSeq {
		n = numSeq
	}

	var total uint64
	for i := 0; i < numSeq; i++ {
		total += seqLength(i)
	}
	target := total / uint64(n)
	if target == 0 {
		target = 1
	}

	tree := llrb.Tree{}
	var cum uint64
	for i := 0; i < numSeq; i++ {
		cum += seqLength(i)
		tree.Insert(&cutPoint{cumulative: cum, seqNum: i})
	}

	var cuts []int
	var nextBoundary = target
	tree.Do(func(item llrb.Comparable) bool {
		cp := item.(*cutPoint)
		if cp.cumulative >= nextBoundary && len(cuts) < n-1 {
			cuts = append(cuts, cp.seqNum+1)
			nextBoundary += target
		}
		return false
	})

	ranges := make([]Range, 0, len(cuts)+1)
	start := 0
	for _, c := range cuts {
		if c <= start || c >= numSeq {
			continue
		}
		ranges = append(ranges, Range{start, c})
		start = c
	}
	ranges = append(ranges, Range{start, numSeq})
	return ranges
}

// UpperTriangle reports whether the (aRange,bRange) pair should be
// processed for a self-comparison run (spec.md §4.6: "for self-comparison
// only the upper triangle (a-range <= b-range) is processed").
func UpperTriangle(aIdx, bIdx int) bool {
	return aIdx <= bIdx
}
