package seq

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestTwoBitPackAndDecode(t *testing.T) {
	tb := NewTwoBit([]uint64{8})
	tb.SetSeq(0, []byte("ACGTacgt"))

	expect.EQ(t, tb.NumSequences(), 1)
	expect.EQ(t, tb.TotalLength(), uint64(8))
	expect.EQ(t, tb.SeqStart(0), uint64(0))
	expect.EQ(t, tb.SeqLength(0), uint64(8))

	want := "ACGTACGT"
	for i := 0; i < len(want); i++ {
		ch, ok := tb.CharAt(uint64(i), Forward)
		expect.True(t, ok)
		expect.EQ(t, ch, want[i])
	}
}

func TestTwoBitComplementMode(t *testing.T) {
	tb := NewTwoBit([]uint64{4})
	tb.SetSeq(0, []byte("ACGT"))

	wantComp := "TGCA"
	for i := 0; i < 4; i++ {
		ch, ok := tb.CharAt(uint64(i), Complement)
		expect.True(t, ok)
		expect.EQ(t, ch, wantComp[i])
	}
}

func TestTwoBitAmbiguityCodeIsSpecial(t *testing.T) {
	tb := NewTwoBit([]uint64{5})
	tb.SetSeq(0, []byte("ACNGT"))

	expect.True(t, tb.IsSeparator(2))
	_, ok := tb.CharAt(2, Forward)
	expect.False(t, ok)
	expect.EQ(t, tb.TotalSpecial(), uint64(1))
}

func TestTwoBitSeparatorBetweenSequences(t *testing.T) {
	tb := NewTwoBit([]uint64{4, 3})
	tb.SetSeq(0, []byte("ACGT"))
	tb.SetSeq(1, []byte("TGC"))

	expect.EQ(t, tb.SeqStart(0), uint64(0))
	expect.EQ(t, tb.SeqStart(1), uint64(5))
	expect.True(t, tb.IsSeparator(4))
	expect.EQ(t, tb.SeqNumAt(0), 0)
	expect.EQ(t, tb.SeqNumAt(4), 0)
	expect.EQ(t, tb.SeqNumAt(5), 1)
	expect.EQ(t, tb.SeqNumAt(7), 1)
}

func TestTwoBitNextPrevSeparator(t *testing.T) {
	tb := NewTwoBit([]uint64{3, 3, 3})
	tb.SetSeq(0, []byte("ACG"))
	tb.SetSeq(1, []byte("TGC"))
	tb.SetSeq(2, []byte("ATG"))

	expect.EQ(t, tb.NextSeparator(0), uint64(3))
	expect.EQ(t, tb.NextSeparator(4), uint64(7))
	expect.EQ(t, tb.PrevSeparator(5), uint64(3))
	expect.EQ(t, tb.PrevSeparator(2), tb.TotalLength())
}

func TestFastKmerCodeStopsAtSpecial(t *testing.T) {
	tb := NewTwoBit([]uint64{6})
	tb.SetSeq(0, []byte("ACGTNG"))

	_, ok := tb.FastKmerCode(0, 4, Forward)
	expect.True(t, ok)

	_, ok = tb.FastKmerCode(2, 4, Forward)
	expect.False(t, ok)
}
