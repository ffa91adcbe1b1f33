package seedpair

import "sort"

// key packs (ASeqNum, BSeqNum, BPos) into a single 96-bit-equivalent sort
// key split across two uint64 words, per spec.md §4.3/§9: the primary word
// is (aseqnum<<32)|bseqnum so the primary order is aseqnum asc, then
// bseqnum asc; the secondary word is bpos, breaking ties within a group.
func key(p SeedPair) (uint64, uint64) {
	return (uint64(p.ASeqNum) << 32) | uint64(p.BSeqNum), uint64(p.BPos)
}

// SortByGroup sorts pairs in place by (ASeqNum, BSeqNum, BPos) ascending,
// matching spec.md §4.3's required order for the diagonal-band scorer's
// per-group walk. Uses a stable sort since the LSD radix-sort the source
// describes and a stable comparison sort produce the same total order here
// (pairs with equal keys, e.g. differing only in APos, keep their input
// order) and sort.SliceStable is simpler to get right than a 96-bit radix
// pass for a field this narrow; see DESIGN.md for why kmerenum/sort.go
// earns a bespoke radix sort but this one doesn't.
func SortByGroup(pairs []SeedPair) {
	sort.SliceStable(pairs, func(i, j int) bool {
		pi, si := key(pairs[i])
		pj, sj := key(pairs[j])
		if pi != pj {
			return pi < pj
		}
		return si < sj
	})
}
