package diagband

import (
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/jianlian92/genometools/seedpair"
)

// acceptAll is an ExtendFunc that treats every trigger as a kept
// extension whose aligned A-interval ends one base past its own seed,
// recording each Trigger it's called with.
func acceptAll(tried *[]Trigger) ExtendFunc {
	return func(tr Trigger) (uint32, bool) {
		*tried = append(*tried, tr)
		return tr.AStart + 1, true
	}
}

func TestGroupTriggersOnMainDiagonal(t *testing.T) {
	cfg := Config{
		AMaxLen: 64, BMaxLen: 64, LogDiagBandWidth: 2,
		SeedLength: 4, MinCoverage: 8,
	}
	s := NewScorer(cfg)
	pairs := []seedpair.SeedPair{
		{APos: 3, BPos: 3},
		{APos: 7, BPos: 7},
		{APos: 11, BPos: 11},
	}
	var tried []Trigger
	n := s.Group(0, 0, pairs, acceptAll(&tried))
	expect.True(t, n > 0)
	expect.EQ(t, n, len(tried))
	for _, tr := range tried {
		expect.EQ(t, tr.ASeqNum, uint32(0))
		expect.EQ(t, tr.BSeqNum, uint32(0))
	}
}

func TestGroupSkipsShortGroup(t *testing.T) {
	cfg := Config{AMaxLen: 64, BMaxLen: 64, LogDiagBandWidth: 2, SeedLength: 4, MinCoverage: 8}
	s := NewScorer(cfg)
	n := s.Group(0, 0, []seedpair.SeedPair{{APos: 3, BPos: 3}}, func(Trigger) (uint32, bool) {
		t.Fatal("extend must not be invoked for a group shorter than MinSegmentLen")
		return 0, false
	})
	expect.EQ(t, n, 0)
}

func TestGroupClearsStateBetweenGroups(t *testing.T) {
	cfg := Config{AMaxLen: 64, BMaxLen: 64, LogDiagBandWidth: 2, SeedLength: 4, MinCoverage: 8}
	s := NewScorer(cfg)
	pairs := []seedpair.SeedPair{
		{APos: 3, BPos: 3},
		{APos: 7, BPos: 7},
		{APos: 11, BPos: 11},
	}
	var firstTried, secondTried []Trigger
	first := s.Group(0, 0, pairs, acceptAll(&firstTried))
	second := s.Group(0, 1, pairs, acceptAll(&secondTried))
	expect.EQ(t, first, second)
	for _, d := range s.score {
		expect.EQ(t, d, uint32(0))
	}
}

// TestGroupSuppressionTracksExtensionOutcome confirms cfg.UseAPos only
// suppresses overlapping triggers following a successful extension, and
// uses the real aligned interval the callback reports rather than the
// raw seed position.
func TestGroupSuppressionTracksExtensionOutcome(t *testing.T) {
	cfg := Config{
		AMaxLen: 64, BMaxLen: 64, LogDiagBandWidth: 2,
		SeedLength: 4, MinCoverage: 8, UseAPos: true,
	}
	pairs := []seedpair.SeedPair{
		{APos: 3, BPos: 3},
		{APos: 7, BPos: 7},
		{APos: 11, BPos: 11},
	}

	// Every extension dies out (kept=false): none should suppress the
	// next, so every qualifying seed is still attempted.
	s := NewScorer(cfg)
	var diedOutTried []Trigger
	n := s.Group(0, 0, pairs, func(tr Trigger) (uint32, bool) {
		diedOutTried = append(diedOutTried, tr)
		return 0, false
	})
	expect.EQ(t, n, len(pairs))
	expect.EQ(t, len(diedOutTried), len(pairs))

	// The first extension succeeds and reports an aligned interval that
	// reaches well past the next seed's AStart: that next, overlapping
	// trigger must be suppressed.
	s = NewScorer(cfg)
	var keptTried []Trigger
	first := true
	n = s.Group(0, 0, pairs, func(tr Trigger) (uint32, bool) {
		keptTried = append(keptTried, tr)
		if first {
			first = false
			return tr.AStart + 100, true
		}
		return 0, false
	})
	expect.EQ(t, n, 1)
	expect.EQ(t, len(keptTried), 1)
}
