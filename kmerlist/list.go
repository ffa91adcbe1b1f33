// Package kmerlist implements spec.md §4.2 (and the cache format in §6): a
// sorted KmerList plus a lazy Segment Iterator over it. A List lives in
// memory; one loaded from an on-disk cache file written by a previous run
// (ReadCache) is read into memory whole, not streamed from the file.
package kmerlist

import "github.com/jianlian92/genometools/kmerenum"

// List is a KmerPos array already sorted by Code (ascending), the
// "one per (sequence set, read-direction, partition)" object spec.md §3
// describes. It owns its backing slice once built.
type List struct {
	entries []kmerenum.KmerPos
}

// NewList wraps an already-sorted slice. Callers that build one via
// kmerenum.Extract + kmerenum.SortByCode pass the result here directly.
func NewList(sorted []kmerenum.KmerPos) *List {
	return &List{entries: sorted}
}

// Len returns the number of KmerPos entries.
func (l *List) Len() int { return len(l.entries) }

// At returns the i'th entry in sorted order.
func (l *List) At(i int) kmerenum.KmerPos { return l.entries[i] }

// Entries exposes the whole backing slice read-only; used by cache.go to
// dump the raw records and by spill.go.
func (l *List) Entries() []kmerenum.KmerPos { return l.entries }
