package extend

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

// TestMatchHistoryDropOrdering directly exercises spec.md §9's Open
// Question: whether the top bit is inspected before or after the shift
// when it falls out of an H-bit window. Using H=3 and pushing
// [1,1,1,0], the third push fills the window (Size==H) without yet
// dropping anything (Count=3); the fourth push must inspect bit index
// H-1=2 of the *pre-shift* window (which is 1, the first push) and drop
// it, landing on Count=2 (bits 1,1,0 from the last three pushes).
func TestMatchHistoryDropOrdering(t *testing.T) {
	var fv FrontValue
	pushMatchBit(&fv, 3, true)
	pushMatchBit(&fv, 3, true)
	pushMatchBit(&fv, 3, true)
	expect.EQ(t, fv.MatchHistorySize, uint8(3))
	expect.EQ(t, fv.MatchHistoryCount, uint8(3))

	pushMatchBit(&fv, 3, false)
	expect.EQ(t, fv.MatchHistorySize, uint8(3))
	expect.EQ(t, fv.MatchHistoryCount, uint8(2))
	expect.EQ(t, fv.MatchHistoryBits&0x7, uint64(0x6)) // 110
}

func TestSeedFrontValue(t *testing.T) {
	fv := seedFrontValue(4, 6)
	expect.EQ(t, fv.Row, uint32(6))
	expect.EQ(t, fv.MatchHistorySize, uint8(4))
	expect.EQ(t, fv.MatchHistoryCount, uint8(4))
	expect.EQ(t, fv.MatchHistoryBits, uint64(0xf))

	fv2 := seedFrontValue(10, 3)
	expect.EQ(t, fv2.Row, uint32(3))
	expect.EQ(t, fv2.MatchHistorySize, uint8(3))
	expect.EQ(t, fv2.MatchHistoryCount, uint8(3))
}
