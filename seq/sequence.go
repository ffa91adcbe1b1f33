// Package seq provides the "Encoded Sequence Access" collaborator that
// spec.md §2 and §6 treat as an external, already-built component: a handle
// onto the concatenation of many genomic sequences, addressable by absolute
// position, that can report separators and special characters and can decode
// a single base forward or reverse-complemented.
//
// The rest of the seed-and-extend pipeline (kmerenum, kmerlist, seedpair,
// diagband, extend, seedextend) only depends on the Sequence interface below;
// TwoBit is one concrete, in-memory implementation of it, built either
// directly or from a FASTA file (see fasta.go).
package seq

// Mode selects which strand Sequence.CharAt decodes.
type Mode uint8

const (
	// Forward decodes bases as stored.
	Forward Mode = iota
	// Complement decodes the reverse-complement strand: CharAt(pos) returns
	// the complement of the base that would be read going backward from pos.
	Complement
)

// Range is a half-open absolute-position interval [Start, End).
type Range struct {
	Start, End uint64
}

// Sequence is the read-only view the pipeline needs of an encoded collection
// of sequences concatenated end to end, each pair of neighbors separated by
// at least one special (non-ACGT) position. All positions are absolute,
// i.e. relative to the start of the whole concatenation, not to any one
// sequence.
type Sequence interface {
	// TotalLength returns the length, in positions, of the whole
	// concatenation, including separators.
	TotalLength() uint64

	// NumSequences returns the number of individual sequences.
	NumSequences() int

	// SeqStart returns the absolute start position of sequence seqnum.
	SeqStart(seqnum int) uint64

	// SeqLength returns the length of sequence seqnum, excluding any
	// separator.
	SeqLength(seqnum int) uint64

	// MinLength and MaxLength return the shortest/longest sequence length,
	// used to size the k-mer extractor's expected-output estimate.
	MinLength() uint64
	MaxLength() uint64

	// TotalSpecial returns the total number of special (non-ACGT) positions
	// across the whole concatenation, including inter-sequence separators.
	TotalSpecial() uint64

	// IsSeparator reports whether pos holds a separator character.
	IsSeparator(pos uint64) bool

	// SeqNumAt returns the index of the sequence containing pos. pos must not
	// be a separator position.
	SeqNumAt(pos uint64) int

	// NextSeparator returns the smallest separator position >= pos, or
	// TotalLength() if there is none.
	NextSeparator(pos uint64) uint64

	// PrevSeparator returns the largest separator position <= pos, or
	// TotalLength() (a value that can never be a valid prior separator) if
	// there is none.
	PrevSeparator(pos uint64) uint64

	// CharAt decodes the base at absolute position pos under the given mode.
	// ok is false iff pos is a separator (or out of range), in which case the
	// byte result is meaningless.
	CharAt(pos uint64, mode Mode) (base byte, ok bool)

	// FastKmerCode attempts the two-bit-encoded fast path described in
	// spec.md §4.1: if [start,start+k) contains no special position, it
	// returns the 2k-bit code for that window (reverse-complemented and
	// bit-reversed when mode==Complement) and true. It returns false when
	// the fast path isn't available (a special character is present, or the
	// backing store isn't two-bit encoded), in which case the caller must
	// fall back to a per-position scan using CharAt.
	FastKmerCode(start uint64, k int, mode Mode) (code uint64, ok bool)
}
