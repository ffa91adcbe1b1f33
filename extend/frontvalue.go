package extend

// Backref bit flags recording which predecessor(s) produced a FrontValue's
// row during a transition, per spec.md §3/§9 ("bit set of {DEL, INS,
// MISMATCH} choices").
const (
	BackrefDel = 1 << iota
	BackrefIns
	BackrefMismatch
)

// FrontValue is one live diagonal's state at the current edit distance,
// per spec.md §3.
type FrontValue struct {
	Row               uint32
	LocalMatchCount   uint8
	MatchHistoryBits  uint64
	MatchHistorySize  uint8 // <= H
	MatchHistoryCount uint8 // popcount over the filled window
	Backref           uint8
	MaxMismatches     uint32
	Score             int32 // alignment score, consulted only by the x-drop variant
}

// pushMatchBit shifts in a match (bit=1) or mismatch (bit=0) at the low
// end of the H-bit sliding window, maintaining Size/Count per spec.md §9's
// required discipline: inspect the top bit of the *pre-shift* window
// before shifting, and only decrement Count for the bit that falls off
// once the window is actually full (Size==H). Checking this before the
// shift -- not after -- is spec.md's Open Question and is covered
// explicitly by TestMatchHistoryDropOrdering.
func pushMatchBit(fv *FrontValue, h uint8, match bool) {
	if fv.MatchHistorySize == h {
		topBit := (fv.MatchHistoryBits >> (h - 1)) & 1
		if topBit == 1 {
			fv.MatchHistoryCount--
		}
	} else {
		fv.MatchHistorySize++
	}
	fv.MatchHistoryBits <<= 1
	if match {
		fv.MatchHistoryBits |= 1
		fv.MatchHistoryCount++
	}
}

// seedFrontValue builds the d=0 FrontValue per spec.md §4.5: the low k
// bits of the match-history window are preloaded to 1 (the seed's k
// guaranteed matches), Size=Count=min(H,k). Since the U/V windows handed
// to the extender start at the seed's own first base (spec.md §4.4's
// "apos+1-k"/"bpos+1-k"), Row starts at k: the seed itself doesn't need
// re-walking, only crediting to the history window, so the greedy-extend
// phase that follows continues from the first base past the seed.
func seedFrontValue(h uint8, k int) FrontValue {
	size := uint8(k)
	if h < size {
		size = h
	}
	var bits uint64
	if size > 0 {
		bits = (uint64(1) << size) - 1
	}
	return FrontValue{
		Row:               uint32(k),
		MatchHistoryBits:  bits,
		MatchHistorySize:  size,
		MatchHistoryCount: size,
	}
}
