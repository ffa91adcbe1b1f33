package seedpair

import (
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/jianlian92/genometools/kmerenum"
	"github.com/jianlian92/genometools/kmerlist"
	"github.com/jianlian92/genometools/seq"
)

func listFromKmers(kp []kmerenum.KmerPos) *kmerlist.List {
	sorted := append([]kmerenum.KmerPos(nil), kp...)
	kmerenum.SortByCode(sorted)
	return kmerlist.NewList(sorted)
}

func TestBuildNonSelf(t *testing.T) {
	a := listFromKmers([]kmerenum.KmerPos{
		{Code: 1, SeqNum: 0, EndPos: 3},
		{Code: 2, SeqNum: 0, EndPos: 7},
	})
	b := listFromKmers([]kmerenum.KmerPos{
		{Code: 1, SeqNum: 0, EndPos: 5},
		{Code: 3, SeqNum: 0, EndPos: 9},
	})
	pairs := Build(kmerlist.NewIterator(a), kmerlist.NewIterator(b), false, false, 4, 1000, nil)
	expect.EQ(t, len(pairs), 1)
	expect.EQ(t, pairs[0], SeedPair{ASeqNum: 0, BSeqNum: 0, APos: 3, BPos: 5})
}

func TestBuildSelfCompareDedup(t *testing.T) {
	// "ACACACACAC", k=2: code for "AC" occurs at several EndPos values.
	a := listFromKmers([]kmerenum.KmerPos{
		{Code: 7, SeqNum: 0, EndPos: 1},
		{Code: 7, SeqNum: 0, EndPos: 3},
		{Code: 7, SeqNum: 0, EndPos: 5},
	})
	pairs := Build(kmerlist.NewIterator(a), kmerlist.NewIterator(a), true, false, 2, 1000, nil)
	for _, p := range pairs {
		if p.ASeqNum == p.BSeqNum && p.APos == p.BPos {
			t.Fatalf("self pair with apos==bpos leaked through: %+v", p)
		}
	}
	foundOneThree := false
	for _, p := range pairs {
		if p.APos == 1 && p.BPos == 3 {
			foundOneThree = true
		}
	}
	expect.True(t, foundOneThree)
}

func TestFrequencyCap(t *testing.T) {
	var aKmers, bKmers []kmerenum.KmerPos
	for i := 0; i < 200; i++ {
		aKmers = append(aKmers, kmerenum.KmerPos{Code: 4, SeqNum: 0, EndPos: uint32(i)})
		bKmers = append(bKmers, kmerenum.KmerPos{Code: 4, SeqNum: 0, EndPos: uint32(i)})
	}
	a, b := listFromKmers(aKmers), listFromKmers(bKmers)
	pairs := Build(kmerlist.NewIterator(a), kmerlist.NewIterator(b), false, false, 4, 100, nil)
	expect.EQ(t, len(pairs), 0)
}

func TestEstimateMaxFreqTooStrict(t *testing.T) {
	histogram := make([]uint64, MaxGram)
	histogram[0] = 1_000_000
	_, err := EstimateMaxFreq(histogram, 1024, 0, 0, false)
	expect.NotNil(t, err)
}

func TestVerifyRoundTrip(t *testing.T) {
	tb := seq.NewTwoBit([]uint64{8})
	tb.SetSeq(0, []byte("ACGTACGT"))
	pairs := []SeedPair{{ASeqNum: 0, BSeqNum: 0, APos: 3, BPos: 3}}
	expect.Nil(t, Verify(pairs, tb, tb, 4, seq.Forward))
}

func TestVerifyMismatch(t *testing.T) {
	tb := seq.NewTwoBit([]uint64{8})
	tb.SetSeq(0, []byte("ACGTACGT"))
	pairs := []SeedPair{{ASeqNum: 0, BSeqNum: 0, APos: 3, BPos: 5}}
	err := Verify(pairs, tb, tb, 4, seq.Forward)
	expect.NotNil(t, err)
}
