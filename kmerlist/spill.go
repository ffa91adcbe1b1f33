package kmerlist

import (
	"encoding/binary"

	"github.com/golang/snappy"
	"github.com/jianlian92/genometools/kmerenum"
	"github.com/pkg/errors"
)

// Spill compresses a List's raw records with snappy and returns the
// compressed bytes, for the case spec.md §4.2 alludes to where a KmerList
// segment iterator's backing list is too large to keep resident
// uncompressed but still fits in memory compressed (as opposed to the
// disk-backed cache in cache.go, which is for lists too large to keep
// resident at all). Mirrors encoding/bgzf's block-compression idea, scaled
// down to a single flat buffer instead of framed blocks.
func Spill(list *List) []byte {
	entries := list.Entries()
	raw := make([]byte, len(entries)*recordSize)
	for i, e := range entries {
		r := raw[i*recordSize : (i+1)*recordSize]
		binary.LittleEndian.PutUint64(r[0:8], e.Code)
		binary.LittleEndian.PutUint32(r[8:12], e.EndPos)
		binary.LittleEndian.PutUint32(r[12:16], e.SeqNum)
	}
	return snappy.Encode(nil, raw)
}

// Unspill reverses Spill.
func Unspill(compressed []byte) (*List, error) {
	raw, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, errors.Wrap(err, "kmerlist: snappy decode")
	}
	if len(raw)%recordSize != 0 {
		return nil, errors.Errorf("kmerlist: decompressed spill size %d not a multiple of record size", len(raw))
	}
	n := len(raw) / recordSize
	entries := make([]kmerenum.KmerPos, n)
	for i := 0; i < n; i++ {
		r := raw[i*recordSize : (i+1)*recordSize]
		entries[i] = kmerenum.KmerPos{
			Code:   binary.LittleEndian.Uint64(r[0:8]),
			EndPos: binary.LittleEndian.Uint32(r[8:12]),
			SeqNum: binary.LittleEndian.Uint32(r[12:16]),
		}
	}
	return NewList(entries), nil
}
