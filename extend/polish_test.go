package extend

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestPolishedPointMonotone(t *testing.T) {
	var p PolishedPoint
	p.update(PolishedPoint{AlignedLen: 10, Row: 5})
	expect.EQ(t, p.AlignedLen, uint32(10))

	p.update(PolishedPoint{AlignedLen: 4, Row: 2})
	expect.EQ(t, p.AlignedLen, uint32(10)) // worse candidate ignored

	p.update(PolishedPoint{AlignedLen: 20, Row: 11})
	expect.EQ(t, p.AlignedLen, uint32(20))
	expect.EQ(t, p.Row, uint32(11))
}

func TestPolishTemplateMatches(t *testing.T) {
	tmpl := PolishTemplate{CutDepth: 8, MinMatchFraction: 0.75}

	allMatch := FrontValue{MatchHistoryBits: 0xff, MatchHistorySize: 8, MatchHistoryCount: 8}
	expect.True(t, tmpl.matches(allMatch))

	borderline := FrontValue{MatchHistoryBits: 0x3f, MatchHistorySize: 8, MatchHistoryCount: 6} // 6/8 = 0.75
	expect.True(t, tmpl.matches(borderline))

	tooFew := FrontValue{MatchHistoryBits: 0x0f, MatchHistorySize: 8, MatchHistoryCount: 4} // 4/8 = 0.5
	expect.False(t, tmpl.matches(tooFew))
}

func TestPolishTemplateZeroDepth(t *testing.T) {
	tmpl := PolishTemplate{CutDepth: 0}
	expect.True(t, tmpl.matches(FrontValue{}))
}
