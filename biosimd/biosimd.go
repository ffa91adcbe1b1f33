// Package biosimd holds the two byte-table transforms the seed-and-extend
// pipeline needs on raw ASCII base buffers: folding ambiguity codes to 'N'
// before two-bit packing, and reverse-complementing a decoded extension
// window.
//
// Adapted from grailbio/bio's biosimd, which backs a much wider surface
// (.bam 4-bit seq-field pack/unpack, 2-bit ACGT pack/unpack, SSE4.2/SSSE3
// assembly fast paths for all of it) with SIMD-optimized implementations of
// each. None of that surface has a caller here: seq/twobit.go packs directly
// with its own per-base lookup tables rather than a bulk pack/unpack pass,
// and nothing in this module ever holds sequence data in .bam's 4-bit
// encoding. What's kept is the two operations seq/fasta.go and
// seedextend/driver.go actually call, reduced to plain table-lookup loops --
// at the single-extension-window sizes this pipeline decodes, an assembly
// fast path buys nothing a bounds-checked Go loop doesn't already give for
// free.
package biosimd

var cleanASCIISeqTable = [256]byte{
	'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N',
	'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N',
	'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N',
	'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N',
	'N', 'A', 'N', 'C', 'N', 'N', 'N', 'G', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N',
	'N', 'N', 'N', 'N', 'T', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N',
	'N', 'A', 'N', 'C', 'N', 'N', 'N', 'G', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N',
	'N', 'N', 'N', 'N', 'T', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N',
	'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N',
	'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N',
	'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N',
	'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N',
	'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N',
	'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N',
	'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N',
	'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N',
}

// CleanASCIISeqInplace capitalizes 'a'/'c'/'g'/'t' and replaces every other
// byte with 'N', matching GenomeTools' treatment of IUPAC ambiguity codes as
// wildcard positions that never seed.
func CleanASCIISeqInplace(ascii8 []byte) {
	for i, b := range ascii8 {
		ascii8[i] = cleanASCIISeqTable[b]
	}
}
