package kmerenum

// SortByCode sorts kp in place by Code ascending, using an LSD radix sort
// over 8-bit digits. spec.md §4.1 calls for radix sort keyed by code with
// "lower bits = sort key"; none of the example repos import a third-party
// radix-sort package (the closest analog, fusion's kmer table, uses a hash
// table rather than a sorted array), so this is a direct, dependency-free
// implementation — see DESIGN.md for that justification.
func SortByCode(kp []KmerPos) {
	if len(kp) < 2 {
		return
	}
	maxCode := kp[0].Code
	for _, e := range kp[1:] {
		if e.Code > maxCode {
			maxCode = e.Code
		}
	}

	buf := make([]KmerPos, len(kp))
	src, dst := kp, buf
	var count [257]int
	for shift := uint(0); maxCode>>shift != 0; shift += 8 {
		for i := range count {
			count[i] = 0
		}
		for _, e := range src {
			digit := (e.Code >> shift) & 0xff
			count[digit+1]++
		}
		for i := 1; i < len(count); i++ {
			count[i] += count[i-1]
		}
		for _, e := range src {
			digit := (e.Code >> shift) & 0xff
			dst[count[digit]] = e
			count[digit]++
		}
		src, dst = dst, src
	}
	if &src[0] != &kp[0] {
		copy(kp, src)
	}
}
