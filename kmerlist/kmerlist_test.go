package kmerlist

import (
	"path/filepath"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/expect"
	"github.com/jianlian92/genometools/kmerenum"
)

func fixtureList() *List {
	return NewList([]kmerenum.KmerPos{
		{Code: 1, SeqNum: 0, EndPos: 3},
		{Code: 1, SeqNum: 0, EndPos: 9},
		{Code: 5, SeqNum: 1, EndPos: 4},
		{Code: 9, SeqNum: 0, EndPos: 12},
		{Code: 9, SeqNum: 2, EndPos: 13},
		{Code: 9, SeqNum: 3, EndPos: 14},
	})
}

func TestIteratorSegments(t *testing.T) {
	it := NewIterator(fixtureList())
	var codes []uint64
	var lens []int
	for {
		seg, ok := it.Next()
		if !ok {
			break
		}
		codes = append(codes, seg.Code)
		lens = append(lens, len(seg.Entries))
	}
	expect.EQ(t, codes, []uint64{1, 5, 9})
	expect.EQ(t, lens, []int{2, 1, 3})
}

func TestIteratorReset(t *testing.T) {
	it := NewIterator(fixtureList())
	seg1, _ := it.Next()
	it.Reset()
	seg2, _ := it.Next()
	expect.EQ(t, seg1.Code, seg2.Code)
}

func TestCacheRoundTrip(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "kmerlist")
	defer cleanup()
	path := filepath.Join(dir, CacheName("reads", 12, false, 4, 2))

	list := fixtureList()
	expect.Nil(t, WriteCache(path, "reads", 12, false, 4, 2, list))

	got, err := ReadCache(path, "reads", 12, false, 4, 2)
	expect.Nil(t, err)
	expect.EQ(t, got.Len(), list.Len())
	for i := 0; i < list.Len(); i++ {
		expect.EQ(t, got.At(i), list.At(i))
	}
}

func TestCacheFingerprintMismatch(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "kmerlist")
	defer cleanup()
	path := filepath.Join(dir, CacheName("reads", 12, false, 4, 2))

	expect.Nil(t, WriteCache(path, "reads", 12, false, 4, 2, fixtureList()))
	_, err := ReadCache(path, "reads", 13, false, 4, 2) // different k
	expect.NotNil(t, err)
}

func TestSpillRoundTrip(t *testing.T) {
	list := fixtureList()
	compressed := Spill(list)
	got, err := Unspill(compressed)
	expect.Nil(t, err)
	expect.EQ(t, got.Len(), list.Len())
	for i := 0; i < list.Len(); i++ {
		expect.EQ(t, got.At(i), list.At(i))
	}
}
