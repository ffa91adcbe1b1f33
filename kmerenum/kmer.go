// Package kmerenum implements spec.md §4.1: walking a range of sequences in
// an encoded sequence collection and emitting every valid (special-free)
// k-mer as a KmerPos triple, then radix-sorting the result by code.
//
// The walk logic is grounded on fusion/kmer.go's kmerizer (the
// fast-path-then-fallback shape of Scan/nextAmbiguousPosition), generalized
// from "one read, one strand" to "a range of sequences, either strand,
// against a seq.Sequence rather than a raw string".
package kmerenum

import (
	"github.com/jianlian92/genometools/seq"
)

// KmerPos is one emitted k-mer: its code, the sequence it was found in, and
// the position (relative to that sequence's own start) of the k-mer's last
// base.
type KmerPos struct {
	Code   uint64
	SeqNum uint32
	EndPos uint32
}

// Extract walks the absolute-position window covering sequences [s0,s1]
// (inclusive) of seqs under the given mode, emitting one KmerPos per valid
// (special-free) length-k window. The returned slice is unsorted; callers
// typically pass it to SortByCode.
//
// out, if non-nil, is reused (and grown as needed) to avoid reallocating on
// repeated calls against same-sized ranges, mirroring simd.ResizeUnsafe's
// role in fusion/kmer.go's kmerizer.
func Extract(seqs seq.Sequence, s0, s1 int, mode seq.Mode, k int, out []KmerPos) []KmerPos {
	out = out[:0]
	if cap(out) == 0 {
		out = make([]KmerPos, 0, estimateCount(seqs, s0, s1, k))
	}

	start := seqs.SeqStart(s0)
	var end uint64
	if s1 == seqs.NumSequences()-1 {
		end = seqs.TotalLength()
	} else {
		end = seqs.SeqStart(s1 + 1)
	}

	seqnum := s0
	seqStart := seqs.SeqStart(seqnum)
	seqEnd := seqStart + seqs.SeqLength(seqnum) // position of the separator following this sequence

	pos := start
	for pos+uint64(k) <= end {
		windowEnd := pos + uint64(k)

		// Advance seqnum to stay in sync with pos. Cheap because pos only
		// moves forward and each sequence is crossed at most once.
		for windowEnd > seqEnd && seqnum+1 < seqs.NumSequences() {
			seqnum++
			seqStart = seqs.SeqStart(seqnum)
			seqEnd = seqStart + seqs.SeqLength(seqnum)
		}

		if code, ok := seqs.FastKmerCode(pos, k, mode); ok {
			endpos := kmerEndPos(mode, pos, windowEnd, seqStart, seqEnd)
			out = append(out, KmerPos{Code: code, SeqNum: uint32(seqnum), EndPos: uint32(endpos)})
			pos++
			continue
		}

		// Fall back to a per-position scan: find out how far the special
		// character that broke the fast path pushes us forward.
		advance := firstValidStart(seqs, pos, windowEnd)
		if advance == pos {
			// [pos, windowEnd) has no special char, yet FastKmerCode still
			// declined (e.g. the backing store doesn't support the fast
			// path): decode one position at a time to build the code.
			code, ok := slowKmerCode(seqs, pos, k, mode)
			if ok {
				endpos := kmerEndPos(mode, pos, windowEnd, seqStart, seqEnd)
				out = append(out, KmerPos{Code: code, SeqNum: uint32(seqnum), EndPos: uint32(endpos)})
				pos++
				continue
			}
		}
		pos = advance + 1
	}
	return out
}

// firstValidStart returns the last special position inside
// [pos, windowEnd), or pos if there is none; the caller resumes the scan
// one past it, the smallest start a special-free run of length k could
// have.
func firstValidStart(seqs seq.Sequence, pos, windowEnd uint64) uint64 {
	last := pos
	for p := pos; p < windowEnd; p++ {
		if seqs.IsSeparator(p) {
			last = p
		}
	}
	return last
}

func slowKmerCode(seqs seq.Sequence, pos uint64, k int, mode seq.Mode) (uint64, bool) {
	var code uint64
	if mode == seq.Forward {
		for p := pos; p < pos+uint64(k); p++ {
			ch, ok := seqs.CharAt(p, seq.Forward)
			if !ok {
				return 0, false
			}
			code = (code << 2) | baseCode(ch)
		}
	} else {
		for p := pos + uint64(k); p > pos; p-- {
			ch, ok := seqs.CharAt(p-1, seq.Complement)
			if !ok {
				return 0, false
			}
			code = (code << 2) | baseCode(ch)
		}
	}
	return code, true
}

func baseCode(ch byte) uint64 {
	switch ch {
	case 'A':
		return 0
	case 'C':
		return 1
	case 'G':
		return 2
	default: // 'T'
		return 3
	}
}

// kmerEndPos computes the sequence-relative, 0-indexed position of the
// k-mer [pos,windowEnd)'s last base, per spec.md §4.1: forward mode measures
// from the sequence's own start; complement mode measures from its end,
// since the "end" of the k-mer on the complement strand is its leftmost
// absolute base.
func kmerEndPos(mode seq.Mode, pos, windowEnd, seqStart, seqEnd uint64) uint64 {
	if mode == seq.Forward {
		return windowEnd - 1 - seqStart
	}
	return seqEnd - 1 - pos
}

// estimateCount implements spec.md §4.1's preallocation estimate:
// numofpos - max(numofseq*(k-1+1), totalspecial*numofpos/totalpos).
func estimateCount(seqs seq.Sequence, s0, s1, k int) int {
	numofseq := s1 - s0 + 1
	var numofpos uint64
	for i := s0; i <= s1; i++ {
		l := seqs.SeqLength(i)
		if l >= uint64(k) {
			numofpos += l - uint64(k) + 1
		}
	}
	totalpos := seqs.TotalLength()
	if totalpos == 0 {
		return 0
	}
	bySpecial := seqs.TotalSpecial() * numofpos / totalpos
	byCount := uint64(numofseq) * uint64(k)
	sub := bySpecial
	if byCount > sub {
		sub = byCount
	}
	if sub > numofpos {
		return 256
	}
	est := int(numofpos-sub) + 256
	return est
}
