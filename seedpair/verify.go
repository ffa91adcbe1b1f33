package seedpair

import (
	"encoding/binary"

	"github.com/grailbio/base/log"
	"github.com/jianlian92/genometools/seq"
	"github.com/minio/highwayhash"
	"github.com/pkg/errors"
)

var verifyKey [highwayhash.Size]byte

// kmerBytes decodes the seedlength bases ending at endpos (inclusive) in
// sequence seqnum of seqs under mode, matching the window a SeedPair's
// EndPos was computed from in kmerenum.Extract.
func kmerBytes(seqs seq.Sequence, seqnum int, endpos uint32, seedlength int, mode seq.Mode) ([]byte, error) {
	seqStart := seqs.SeqStart(seqnum)
	out := make([]byte, seedlength)
	if mode == seq.Forward {
		abs := seqStart + uint64(endpos) - uint64(seedlength) + 1
		for i := 0; i < seedlength; i++ {
			ch, ok := seqs.CharAt(abs+uint64(i), seq.Forward)
			if !ok {
				return nil, errors.Errorf("seedpair: verify: special base inside seed window at seq %d pos %d", seqnum, abs+uint64(i))
			}
			out[i] = ch
		}
		return out, nil
	}
	seqEnd := seqStart + seqs.SeqLength(seqnum)
	abs := seqEnd - 1 - uint64(endpos)
	for i := 0; i < seedlength; i++ {
		ch, ok := seqs.CharAt(abs+uint64(i), seq.Complement)
		if !ok {
			return nil, errors.Errorf("seedpair: verify: special base inside seed window at seq %d pos %d", seqnum, abs+uint64(i))
		}
		out[seedlength-1-i] = ch
	}
	return out, nil
}

// fingerprint64 gives a highwayhash fingerprint of a decoded seed window,
// computed only after a mismatch is found; it is logged alongside the
// mismatch to help diagnose corruption patterns,
// never used as a substitute for the byte-exact comparison Verify performs.
func fingerprint64(b []byte) uint64 {
	var buf [8]byte
	sum := highwayhash.Sum(b, verifyKey[:])
	copy(buf[:], sum[:8])
	return binary.LittleEndian.Uint64(buf[:])
}

// MismatchError reports a SeedPair that failed to round-trip through the
// encoded sequences, per spec.md §7's verification error kind.
type MismatchError struct {
	Pair               SeedPair
	ADecoded, BDecoded string
}

func (e *MismatchError) Error() string {
	return "seedpair: verify: mismatch for (aseqnum=" + itoa(e.Pair.ASeqNum) + ", bseqnum=" + itoa(e.Pair.BSeqNum) +
		", apos=" + itoa(e.Pair.APos) + ", bpos=" + itoa(e.Pair.BPos) + "): A=" + e.ADecoded + " B=" + e.BDecoded
}

func itoa(v uint32) string {
	if v == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

// Verify implements spec.md §4.3's optional verify mode: re-decode each
// pair's two k-mer substrings from aSeqs/bSeqs and assert byte equality
// (reverse-complementing the B side when mode is Complement). Returns the
// first mismatch found, wrapped as a *MismatchError, or nil if every pair
// round-trips.
func Verify(pairs []SeedPair, aSeqs, bSeqs seq.Sequence, seedlength int, mode seq.Mode) error {
	for _, p := range pairs {
		aBases, err := kmerBytes(aSeqs, int(p.ASeqNum), p.APos, seedlength, seq.Forward)
		if err != nil {
			return err
		}
		bBases, err := kmerBytes(bSeqs, int(p.BSeqNum), p.BPos, seedlength, mode)
		if err != nil {
			return err
		}
		if string(aBases) != string(bBases) {
			log.Printf("seedpair: verify mismatch fingerprints: a=%x b=%x", fingerprint64(aBases), fingerprint64(bBases))
			return &MismatchError{Pair: p, ADecoded: string(aBases), BDecoded: string(bBases)}
		}
	}
	return nil
}
