// Package seedpair implements spec.md §4.3: merging two k-mer segment
// streams into SeedPairs, a histogram-based frequency-cap estimator, and an
// optional verify mode that round-trips each pair back through the encoded
// sequences.
package seedpair

import (
	"github.com/jianlian92/genometools/kmerlist"
)

// SeedPair is one shared k-mer occurrence between the A and B sequence
// sets, per spec.md §3.
type SeedPair struct {
	ASeqNum, BSeqNum uint32
	APos, BPos       uint32
}

// MaxGram bounds the histogram mode's frequency bins (spec.md §4.3's
// MAXGRAM): frequencies above this are all folded into the last bin, since
// the estimator only needs an accurate cumulative sum up to the derived
// cap, not an exact count of pathologically common k-mers.
const MaxGram = 1 << 16

// Delta returns the self-comparison dedup offset from spec.md §3's rule:
// k-mer length when seeds must not overlap, 1 when they may.
func Delta(seedlength int, overlappingSeeds bool) uint32 {
	if overlappingSeeds {
		return 1
	}
	return uint32(seedlength)
}

// keep applies spec.md §3's self-comparison rule: when selfCompare is true,
// a pair survives only if aseqnum < bseqnum, or aseqnum == bseqnum and
// apos+delta <= bpos.
func keep(selfCompare bool, aseqnum, bseqnum, apos, bpos, delta uint32) bool {
	if !selfCompare {
		return true
	}
	if aseqnum < bseqnum {
		return true
	}
	if aseqnum == bseqnum && apos+delta <= bpos {
		return true
	}
	return false
}

// Build runs the merge loop described in spec.md §4.3: advance aIt/bIt in
// lockstep on Code, and for every matching pair of segments whose combined
// frequency doesn't exceed maxfreq, emit every (a,b) KmerPos combination
// that survives the self-comparison rule.
//
// out is reused/grown the same way kmerenum.Extract reuses its output
// slice.
func Build(aIt, bIt *kmerlist.Iterator, selfCompare bool, overlappingSeeds bool, seedlength int, maxfreq int, out []SeedPair) []SeedPair {
	out = out[:0]
	delta := Delta(seedlength, overlappingSeeds)

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
			frequency := len(aSeg.Entries)
			if len(bSeg.Entries) > frequency {
				frequency = len(bSeg.Entries)
			}
			if frequency <= maxfreq {
				out = emitPairs(out, aSeg, bSeg, selfCompare, delta)
			}
			aSeg, aOK = aIt.Next()
			bSeg, bOK = bIt.Next()
		}
	}
	return out
}

func emitPairs(out []SeedPair, aSeg, bSeg kmerlist.Segment, selfCompare bool, delta uint32) []SeedPair {
	for _, a := range aSeg.Entries {
		for _, b := range bSeg.Entries {
			if !keep(selfCompare, a.SeqNum, b.SeqNum, a.EndPos, b.EndPos, delta) {
				continue
			}
			out = append(out, SeedPair{
				ASeqNum: a.SeqNum, BSeqNum: b.SeqNum,
				APos: a.EndPos, BPos: b.EndPos,
			})
		}
	}
	return out
}
