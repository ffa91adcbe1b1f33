package kmerlist

import "github.com/jianlian92/genometools/kmerenum"

// Segment is a maximal run of KmerPos entries sharing the same Code.
type Segment struct {
	Code    uint64
	Entries []kmerenum.KmerPos
}

// Iterator presents an entrySource (in this module, a *List) as a lazy
// sequence of Segments, per spec.md §4.2. Reset rewinds to the beginning;
// Next returns the next segment or ok=false at end of input.
//
// Next copies one record at a time into scratch, matching spec.md §4.2's
// "accumulates into a reusable scratch slice until code changes"
// description.
type Iterator struct {
	src     entrySource
	pos     int
	scratch []kmerenum.KmerPos
}

// entrySource is the indexed view Iterator reads from; *List implements
// it, and it is the only implementation in this module.
type entrySource interface {
	Len() int
	At(i int) kmerenum.KmerPos
}

// NewIterator builds a Segment Iterator over src (a *List).
func NewIterator(src entrySource) *Iterator {
	it := &Iterator{src: src}
	it.Reset()
	return it
}

// Reset rewinds the iterator to the start of src.
func (it *Iterator) Reset() {
	it.pos = 0
	it.scratch = it.scratch[:0]
}

// Next returns the next maximal run of equal-Code entries, or ok=false once
// the source is exhausted. The returned Segment.Entries slice is only valid
// until the next call to Next.
func (it *Iterator) Next() (Segment, bool) {
	n := it.src.Len()
	if it.pos >= n {
		return Segment{}, false
	}
	it.scratch = it.scratch[:0]
	first := it.src.At(it.pos)
	code := first.Code
	it.scratch = append(it.scratch, first)
	it.pos++
	for it.pos < n {
		e := it.src.At(it.pos)
		if e.Code != code {
			break
		}
		it.scratch = append(it.scratch, e)
		it.pos++
	}
	return Segment{Code: code, Entries: it.scratch}, true
}
