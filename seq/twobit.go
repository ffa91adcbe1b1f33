package seq

import (
	"github.com/grailbio/base/log"
	"golang.org/x/sys/unix"
)

// hugePageSize mirrors fusion/kmer_index.go's rounding: mmap requests are
// padded to a huge page boundary so the kernel can back them with 2MB pages
// when MADV_HUGEPAGE is honored.
const hugePageSize = 2 << 20

// asciiToCode and asciiToComplementCode translate an ACGT (upper or lower
// case) byte to its two-bit code, or to invalidCode for anything else.
// These tables are the same shape as fusion/kmer.go's asciiToKmerMap /
// asciiToReverseComplementKmerMap; the seed-and-extend pipeline needs the
// per-base tables directly (rather than only a whole-kmer helper) because
// TwoBit packs every base of every loaded sequence, not just the bases
// inside one k-mer window.
var (
	asciiToCode           [256]uint8
	asciiToComplementCode [256]uint8
	codeToASCII           = [4]byte{'A', 'C', 'G', 'T'}
)

const invalidCode = uint8(255)

func init() {
	for i := range asciiToCode {
		asciiToCode[i] = invalidCode
		asciiToComplementCode[i] = invalidCode
	}
	set := func(ch byte, code, comp uint8) {
		asciiToCode[ch] = code
		asciiToComplementCode[ch] = comp
	}
	set('A', 0, 3)
	set('a', 0, 3)
	set('C', 1, 2)
	set('c', 1, 2)
	set('G', 2, 1)
	set('g', 2, 1)
	set('T', 3, 0)
	set('t', 3, 0)
}

// TwoBit is an in-memory Sequence built from one or more linear sequences
// concatenated with one separator position between each pair of neighbors.
// Every non-separator position is packed two bits per base in an
// mmap-backed arena, following fusion/kmer_index.go's pattern of using
// unix.Mmap + unix.Madvise(MADV_HUGEPAGE) for large flat tables that
// shouldn't pressure the Go garbage collector.
type TwoBit struct {
	starts   []uint64 // starts[i]: absolute start of sequence i. len == numSeq.
	lengths  []uint64 // lengths[i]: length of sequence i, excluding separators.
	totalLen uint64

	packed  []byte // mmap-backed, 4 two-bit codes per byte; separators hold 0.
	special []byte // mmap-backed bitmap: 1 bit per position, 1 == separator.

	totalSpecial uint64
	minLen       uint64
	maxLen       uint64
}

// NewTwoBit allocates a TwoBit store sized to hold a concatenation of
// totalLen positions across the given per-sequence lengths, with
// interleaved single-position separators. Callers (fasta.go, or tests)
// fill it in with SetSeq before use.
func NewTwoBit(seqLengths []uint64) *TwoBit {
	numSeq := len(seqLengths)
	starts := make([]uint64, numSeq)
	var pos uint64
	var minLen, maxLen uint64
	for i, l := range seqLengths {
		if i > 0 {
			pos++ // separator between sequences
		}
		starts[i] = pos
		pos += l
		if i == 0 || l < minLen {
			minLen = l
		}
		if l > maxLen {
			maxLen = l
		}
	}
	totalLen := pos

	packedLen := (totalLen + 3) / 4
	specialLen := (totalLen + 7) / 8
	tb := &TwoBit{
		starts:   starts,
		lengths:  append([]uint64(nil), seqLengths...),
		totalLen: totalLen,
		packed:   mmapArena(packedLen),
		special:  mmapArena(specialLen),
		minLen:   minLen,
		maxLen:   maxLen,
	}
	// Every inter-sequence gap is marked special here; SetSeq only writes
	// positions inside a sequence, so the separators stay special.
	for i := 1; i < numSeq; i++ {
		tb.markSeparator(starts[i] - 1)
	}
	if numSeq == 0 {
		tb.totalSpecial = 0
	} else {
		tb.totalSpecial = uint64(numSeq - 1)
	}
	return tb
}

func mmapArena(n uint64) []byte {
	if n == 0 {
		n = 1
	}
	size := int(n) + hugePageSize
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		log.Panicf("seq: mmap %d bytes: %v", size, err)
	}
	if err := unix.Madvise(data, unix.MADV_HUGEPAGE); err != nil {
		// Not fatal: huge pages are an optimization, not a correctness
		// requirement.
		log.Printf("seq: madvise hugepage: %v (continuing without it)", err)
	}
	return data[:n]
}

// SetSeq packs raw ASCII bases for sequence seqnum into the backing arena,
// starting at TwoBit's absolute SeqStart(seqnum). Bytes that don't decode to
// ACGT are recorded as special positions rather than rejected, matching
// GenomeTools' treatment of ambiguity codes (N, IUPAC codes, ...) as
// "wildcard" positions: no k-mer window containing one is extracted, so
// they never seed.
func (tb *TwoBit) SetSeq(seqnum int, ascii []byte) {
	start := tb.starts[seqnum]
	for i, ch := range ascii {
		pos := start + uint64(i)
		code := asciiToCode[ch]
		if code == invalidCode {
			tb.markSeparator(pos)
			tb.totalSpecial++
			continue
		}
		tb.setCode(pos, code)
	}
}

func (tb *TwoBit) setCode(pos uint64, code uint8) {
	byteIdx := pos / 4
	shift := uint(pos%4) * 2
	tb.packed[byteIdx] = (tb.packed[byteIdx] &^ (0x3 << shift)) | (code << shift)
}

func (tb *TwoBit) codeAt(pos uint64) uint8 {
	byteIdx := pos / 4
	shift := uint(pos%4) * 2
	return (tb.packed[byteIdx] >> shift) & 0x3
}

func (tb *TwoBit) markSeparator(pos uint64) {
	tb.special[pos/8] |= 1 << (pos % 8)
}

func (tb *TwoBit) isSpecialBit(pos uint64) bool {
	return tb.special[pos/8]&(1<<(pos%8)) != 0
}

func (tb *TwoBit) TotalLength() uint64    { return tb.totalLen }
func (tb *TwoBit) NumSequences() int      { return len(tb.starts) }
func (tb *TwoBit) SeqStart(i int) uint64  { return tb.starts[i] }
func (tb *TwoBit) SeqLength(i int) uint64 { return tb.lengths[i] }
func (tb *TwoBit) MinLength() uint64      { return tb.minLen }
func (tb *TwoBit) MaxLength() uint64      { return tb.maxLen }
func (tb *TwoBit) TotalSpecial() uint64   { return tb.totalSpecial }

func (tb *TwoBit) IsSeparator(pos uint64) bool {
	if pos >= tb.totalLen {
		return true
	}
	return tb.isSpecialBit(pos)
}

// SeqNumAt binary-searches starts for the sequence containing pos.
func (tb *TwoBit) SeqNumAt(pos uint64) int {
	lo, hi := 0, len(tb.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if tb.starts[mid] <= pos {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

func (tb *TwoBit) NextSeparator(pos uint64) uint64 {
	for p := pos; p < tb.totalLen; p++ {
		if tb.isSpecialBit(p) {
			return p
		}
	}
	return tb.totalLen
}

func (tb *TwoBit) PrevSeparator(pos uint64) uint64 {
	if pos >= tb.totalLen {
		pos = tb.totalLen - 1
	}
	for p := pos; ; p-- {
		if tb.isSpecialBit(p) {
			return p
		}
		if p == 0 {
			break
		}
	}
	return tb.totalLen
}

func (tb *TwoBit) CharAt(pos uint64, mode Mode) (byte, bool) {
	if tb.IsSeparator(pos) {
		return 0, false
	}
	code := tb.codeAt(pos)
	if mode == Complement {
		code = 3 - code
	}
	return codeToASCII[code], true
}

// FastKmerCode implements the two-bit fast path documented on the Sequence
// interface: it requires every position in [start,start+k) to be
// non-special, then builds the 2k-bit code by walking the packed array.
// There's no SIMD shortcut here (unlike fusion/kmer.go's incremental
// shift-in-one-base Scan loop; this module's kmerenum.Extract instead calls
// FastKmerCode once per window start) because FastKmerCode is called from
// arbitrary offsets, not just incrementally.
func (tb *TwoBit) FastKmerCode(start uint64, k int, mode Mode) (uint64, bool) {
	end := start + uint64(k)
	if end > tb.totalLen {
		return 0, false
	}
	for p := start; p < end; p++ {
		if tb.isSpecialBit(p) {
			return 0, false
		}
	}
	var code uint64
	if mode == Forward {
		for p := start; p < end; p++ {
			code = (code << 2) | uint64(tb.codeAt(p))
		}
	} else {
		for p := end; p > start; p-- {
			code = (code << 2) | uint64(3-tb.codeAt(p-1))
		}
	}
	return code, true
}
