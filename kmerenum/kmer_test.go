package kmerenum

import (
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/jianlian92/genometools/seq"
)

func twoSeqFixture() *seq.TwoBit {
	tb := seq.NewTwoBit([]uint64{8, 8})
	tb.SetSeq(0, []byte("ACGTACGT"))
	tb.SetSeq(1, []byte("ACGTACGT"))
	return tb
}

func TestExtractForward(t *testing.T) {
	tb := twoSeqFixture()
	kp := Extract(tb, 0, 1, seq.Forward, 4, nil)
	// 5 positions per 8-base sequence, two sequences, no specials.
	expect.EQ(t, len(kp), 10)
	for _, e := range kp[:5] {
		expect.EQ(t, int(e.SeqNum), 0)
	}
	for _, e := range kp[5:] {
		expect.EQ(t, int(e.SeqNum), 1)
	}
}

func TestExtractSkipsSpecialRun(t *testing.T) {
	tb := seq.NewTwoBit([]uint64{9})
	tb.SetSeq(0, []byte("ACGTNACGT"))
	kp := Extract(tb, 0, 0, seq.Forward, 4, nil)
	// k-mers overlapping position 4 (N) are skipped: only windows entirely
	// inside [0,4) or [5,9) survive: "ACGT" at 0..3 and "ACGT" at 5..8.
	expect.EQ(t, len(kp), 2)
	expect.EQ(t, int(kp[0].EndPos), 3)
	expect.EQ(t, int(kp[1].EndPos), 8)
}

func TestExtractTooShortSequence(t *testing.T) {
	tb := seq.NewTwoBit([]uint64{3})
	tb.SetSeq(0, []byte("ACG"))
	kp := Extract(tb, 0, 0, seq.Forward, 4, nil)
	expect.EQ(t, len(kp), 0)
}

func TestSortByCode(t *testing.T) {
	kp := []KmerPos{
		{Code: 300, SeqNum: 0, EndPos: 0},
		{Code: 1, SeqNum: 0, EndPos: 1},
		{Code: 42, SeqNum: 0, EndPos: 2},
		{Code: 42, SeqNum: 0, EndPos: 3},
	}
	SortByCode(kp)
	for i := 1; i < len(kp); i++ {
		if kp[i].Code < kp[i-1].Code {
			t.Fatalf("not sorted at %d: %+v", i, kp)
		}
	}
	expect.EQ(t, kp[0].Code, uint64(1))
	expect.EQ(t, kp[len(kp)-1].Code, uint64(300))
}
