package extend

import "math/bits"

// PolishedPoint is the farthest "polished" endpoint found so far during an
// extension, per spec.md §3/§4.5.
type PolishedPoint struct {
	AlignedLen    uint32
	Row           uint32
	Distance      uint32
	TrimLeft      int
	MaxMismatches uint32
}

// update applies spec.md §8's polished-point monotonicity property: the
// recorded point's AlignedLen never decreases.
func (p *PolishedPoint) update(candidate PolishedPoint) {
	if candidate.AlignedLen > p.AlignedLen {
		*p = candidate
	}
}

// PolishTemplate holds the parameters of the "acceptable recent-match
// pattern" bit template spec.md §4.5 describes only abstractly
// ("a fixed mask derived from cut_depth"): the number of most-recent
// history bits considered, and the fraction of them that must be matches.
type PolishTemplate struct {
	CutDepth         uint8
	MinMatchFraction float64 // e.g. perc_mat_history/100, adjusted by matchscore_bias
}

// matches reports whether fv's match-history window satisfies t. Per
// spec.md §4.5, bits beyond MatchHistorySize are treated as non-matches
// ("zero-extended if too short"); while the window is still filling,
// pushMatchBit's shift-from-zero discipline leaves those bits at 0, so no
// extra masking is done beyond limiting to CutDepth bits. Once the window
// is full, bits above H are not cleared and still count when CutDepth
// exceeds H.
func (t PolishTemplate) matches(fv FrontValue) bool {
	depth := t.CutDepth
	if depth == 0 {
		return true
	}
	var mask uint64
	if depth >= 64 {
		mask = ^uint64(0)
	} else {
		mask = (uint64(1) << depth) - 1
	}
	count := bits.OnesCount64(fv.MatchHistoryBits & mask)
	need := t.MinMatchFraction * float64(depth)
	return float64(count) >= need
}
