// Package diagband implements spec.md §4.4: walking SeedPairs grouped by
// (aseqnum,bseqnum), accumulating weighted coverage per diagonal, and
// deciding where to trigger extension.
//
// There's no direct teacher analog for this algorithm (fusion/fusion.go
// clusters gene-pair candidates, not alignment diagonals); its shape
// follows circular.Bitmap's idiom of a reused, cleared-per-group scratch
// array addressed by an integer offset rather than a map, which is the
// closest stylistic precedent in the corpus for a dense, per-group,
// manually zeroed accumulator.
package diagband

import "github.com/jianlian92/genometools/seedpair"

// Config holds the scorer's run parameters (spec.md §4.4, §6).
type Config struct {
	AMaxLen, BMaxLen uint32
	LogDiagBandWidth uint32 // L
	SeedLength       int
	MinCoverage      uint32
	UseAPos          bool // suppress a trigger overlapping the last successful extension's A interval
}

// NDiags returns ndiags = (amaxlen>>L) + (bmaxlen>>L) + 2.
func (c Config) NDiags() int {
	return int(c.AMaxLen>>c.LogDiagBandWidth) + int(c.BMaxLen>>c.LogDiagBandWidth) + 2
}

// MinSegmentLen returns ceil((mincoverage-1)/k) + 1.
func (c Config) MinSegmentLen() int {
	if c.SeedLength == 0 {
		return 1
	}
	num := int(c.MinCoverage) - 1
	if num < 0 {
		num = 0
	}
	return (num+c.SeedLength-1)/c.SeedLength + 1
}

// Trigger is an extension candidate the scorer selected: the
// sequence-relative A/B start positions (apos+1-k, bpos+1-k per spec.md
// §4.4) to hand to the extender.
type Trigger struct {
	ASeqNum, BSeqNum uint32
	AStart, BStart   uint32
}

// Scorer is the reusable per-(aseqnum,bseqnum)-group accumulator. Callers
// create one per run and reuse it across groups, matching spec.md §4.4's
// "re-used across groups, zeroed after each group" lifetime for DiagScore.
type Scorer struct {
	cfg   Config
	score []uint32 // length ndiags+2, sentinels at [0] and [ndiags+1]
	lastp []uint32 // length ndiags
}

// NewScorer allocates a Scorer sized for cfg.
func NewScorer(cfg Config) *Scorer {
	n := cfg.NDiags()
	return &Scorer{
		cfg:   cfg,
		score: make([]uint32, n+2),
		lastp: make([]uint32, n),
	}
}

// diag computes the diagonal number for a pair, per spec.md §3.
func (s *Scorer) diag(apos, bpos uint32) int {
	return int((s.cfg.AMaxLen + bpos - apos) >> s.cfg.LogDiagBandWidth)
}

// ExtendFunc is invoked inline by Group for each candidate Trigger it
// selects, in BPos-ascending order. It must attempt the extension and
// report the real aligned A-interval end (the sequence-relative A position
// one past the last base the extension actually consumed) together with
// whether the result was worth keeping. Group only trusts aEnd as the
// new suppression boundary when kept is true: a trigger whose extension
// dies out or fails the caller's own acceptance criteria must not block
// the next overlapping candidate on the same group.
type ExtendFunc func(tr Trigger) (aEnd uint32, kept bool)

// Group processes one maximal run of pairs sharing (aseqnum,bseqnum) —
// already-sorted by BPos ascending, per spec.md §4.4's precondition —
// and invokes extend inline for each selected Trigger, returning how many
// fired. Pairs with fewer than cfg.MinSegmentLen() entries are skipped
// entirely without touching the score arrays or calling extend.
//
// Extension is deliberately invoked from inside the Pass 2 scan, rather
// than collected into a slice for the caller to extend afterward: per
// spec.md §4.4's "triggers extension only where coverage crosses a
// threshold, without double-reporting overlapping hits", cfg.UseAPos's
// overlap suppression must key off whether a trigger's extension actually
// succeeded, not merely whether one was attempted. Returning a pre-built
// list and extending it later (the driver's old shape) loses exactly that
// information, so a seed that triggers and dies out would wrongly
// suppress the next overlapping candidate.
func (s *Scorer) Group(aseqnum, bseqnum uint32, pairs []seedpair.SeedPair, extend ExtendFunc) int {
	if len(pairs) < s.cfg.MinSegmentLen() {
		return 0
	}

	touched := make([]int, 0, len(pairs))
	k := uint32(s.cfg.SeedLength)

	// Pass 1: accumulate.
	for _, p := range pairs {
		d := s.diag(p.APos, p.BPos)
		touched = append(touched, d)
		if p.BPos >= s.lastp[d]+k {
			s.score[d+1] += k
		} else if p.BPos > s.lastp[d] {
			s.score[d+1] += p.BPos - s.lastp[d]
		}
		s.lastp[d] = p.BPos
	}

	// Pass 2: trigger & extend inline.
	var triggered int
	var lastTriggerAEnd uint32
	haveLastTrigger := false
	for _, p := range pairs {
		d := s.diag(p.APos, p.BPos)
		total := maxU32(s.score[d], s.score[d+2]) + s.score[d+1]
		if total < s.cfg.MinCoverage {
			continue
		}
		aStart := p.APos + 1 - k
		if s.cfg.UseAPos && haveLastTrigger && aStart < lastTriggerAEnd {
			continue
		}
		tr := Trigger{
			ASeqNum: aseqnum, BSeqNum: bseqnum,
			AStart: aStart,
			BStart: p.BPos + 1 - k,
		}
		triggered++
		if aEnd, kept := extend(tr); kept {
			lastTriggerAEnd = aEnd
			haveLastTrigger = true
		}
	}

	// Pass 3: clear every diagonal touched by this group.
	for _, d := range touched {
		s.score[d+1] = 0
		s.lastp[d] = 0
	}
	return triggered
}

func maxU32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}
