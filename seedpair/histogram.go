package seedpair

import (
	"github.com/jianlian92/genometools/kmerlist"
	"github.com/pkg/errors"
)

// sizeOfSeedPair matches unsafe.Sizeof(SeedPair{}): four uint32 fields.
const sizeOfSeedPair = 16

// ErrMemlimitTooStrict is returned by EstimateMaxFreq when even the
// smallest possible cap would exceed memlimit.
var ErrMemlimitTooStrict = errors.New("seedpair: memlimit too strict")

// Histogram runs the same merge loop as Build, but in "histogram mode"
// (spec.md §4.3): for every matching pair of segments, it increments
// histogram[min(frequency,MaxGram)-1] by the number of SeedPairs that
// combination would actually produce -- alen*blen for a non-self
// comparison, or the self-comparison-filtered count otherwise.
func Histogram(aIt, bIt *kmerlist.Iterator, selfCompare bool, overlappingSeeds bool, seedlength int) []uint64 {
	delta := Delta(seedlength, overlappingSeeds)
	histogram := make([]uint64, MaxGram)

	aIt.Reset()
	bIt.Reset()
	aSeg, aOK := aIt.Next()
	bSeg, bOK := bIt.Next()

	for aOK && bOK {
		switch {
		case aSeg.Code < bSeg.Code:
			aSeg, aOK = aIt.Next()
		case aSeg.Code > bSeg.Code:
			bSeg, bOK = bIt.Next()
		default:
			alen, blen := len(aSeg.Entries), len(bSeg.Entries)
			frequency := alen
			if blen > frequency {
				frequency = blen
			}
			var count uint64
			if !selfCompare {
				count = uint64(alen) * uint64(blen)
			} else {
				for _, a := range aSeg.Entries {
					for _, b := range bSeg.Entries {
						if keep(true, a.SeqNum, b.SeqNum, a.EndPos, b.EndPos, delta) {
							count++
						}
					}
				}
			}
			bin := frequency
			if bin > MaxGram {
				bin = MaxGram
			}
			histogram[bin-1] += count
			aSeg, aOK = aIt.Next()
			bSeg, bOK = bIt.Next()
		}
	}
	return histogram
}

// EstimateMaxFreq implements spec.md §4.3's derived cap: the largest
// maxfreq such that the cumulative SeedPair count for frequencies
// <= maxfreq fits in 0.98*memlimit/sizeof(SeedPair) - kmerSpaceUsed
// (expressed here directly in SeedPair units, not bytes, via
// kmerSpaceUsedPairs). If userCap > 0, the returned value is additionally
// capped at userCap. Returns ErrMemlimitTooStrict (wrapping the minimum MB
// actually required) if even maxfreq=0 (or 1 for self-comparisons, since a
// self-comparing run always has some frequency-1 pairs from a sequence
// matching itself) would overflow the budget.
func EstimateMaxFreq(histogram []uint64, memlimit uint64, kmerSpaceUsedPairs uint64, userCap int, selfCompare bool) (int, error) {
	budget := uint64(float64(memlimit)*0.98) / sizeOfSeedPair
	if budget <= kmerSpaceUsedPairs {
		return 0, errorTooStrict(histogram, memlimit, selfCompare)
	}
	budget -= kmerSpaceUsedPairs

	var cum uint64
	maxfreq := 0
	for f := 1; f <= len(histogram); f++ {
		next := cum + histogram[f-1]
		if next > budget {
			break
		}
		cum = next
		maxfreq = f
	}

	minRequired := 0
	if selfCompare {
		minRequired = 1
	}
	if maxfreq <= minRequired {
		return 0, errorTooStrict(histogram, memlimit, selfCompare)
	}
	if userCap > 0 && userCap < maxfreq {
		maxfreq = userCap
	}
	return maxfreq, nil
}

func errorTooStrict(histogram []uint64, memlimit uint64, selfCompare bool) error {
	// Minimum MB needed is whatever it'd take to admit bin 0 alone (bins 0
	// and 1 for self-comparisons, per spec.md §7).
	need := histogram[0]
	if selfCompare && len(histogram) > 1 {
		need += histogram[1]
	}
	minBytes := float64(need+1) * sizeOfSeedPair / 0.98
	minMB := minBytes / (1024 * 1024)
	return errors.Wrapf(ErrMemlimitTooStrict, "need at least %.1f MB (have %.1f MB)", minMB, float64(memlimit)/(1024*1024))
}
