// Package extend implements the diagonal-band front-prune extender
// (spec.md §4.5): starting from a seed on a single diagonal, it walks
// outward by increasing edit distance, greedily consuming matching
// bases on each live diagonal and tracking the best "polished" endpoint
// seen, until every diagonal dies out or the band is fully traversed.
package extend

// Result is what Run reports back about one extension.
type Result struct {
	Point     PolishedPoint
	Completed bool // true if some diagonal reached (ulen,vlen) exactly
	Distance  uint32
	DiedOut   bool
}

// entry is one candidate diagonal's state while building distance d+1
// from distance d.
type entry struct {
	fv         FrontValue
	alignedLen uint32
}

// Run extends the alignment implied by u/v (already windowed to start at
// the seed's own first base, per spec.md §4.4) outward from the seed on
// diagonal 0, returning the best polished endpoint found.
func Run(cfg Config, mode Mode, u, v []byte) Result {
	ulen, vlen := len(u), len(v)
	bias := ulen + vlen + 2
	toIndex := func(diag int) int { return diag + bias }

	maxD := cfg.MaxMismatches()
	if bound := ulen + vlen; maxD > bound {
		maxD = bound
	}

	cur := NewArena(8)
	seed := seedFrontValue(cfg.HistorySize, cfg.SeedLength)
	extendMatches(u, v, cfg.HistorySize, 0, &seed)
	cur.Reset(toIndex(0), seed)

	var best PolishedPoint
	considerPolish(&best, cfg, 0, 0, seed)

	if completedRow(seed, ulen, vlen, 0) {
		return Result{Point: best, Completed: true, Distance: 0}
	}

	dropThresh, useDrop := dropScore(mode)
	sensScale := float64(sensitivity(mode)) / 100.0
	diedOut := false

	for d := 1; d <= maxD; d++ {
		prevLo := cur.TrimLeft() - bias
		prevHi := prevLo + cur.Valid()
		newLo := prevLo - 1
		newHi := prevHi + 1
		if lo := -ulen; newLo < lo {
			newLo = lo
		}
		if hi := vlen + 1; newHi > hi {
			newHi = hi
		}
		if newHi <= newLo {
			diedOut = true
			break
		}

		width := newHi - newLo
		built := make([]*entry, width)
		var bestAligned uint32
		var bestScore int32 = -1 << 30
		anchor := -1

		for diag := newLo; diag < newHi; diag++ {
			i := diag - newLo
			ent := stepDiagonal(cfg, u, v, cur, bias, prevLo, prevHi, diag)
			if ent == nil {
				continue
			}
			built[i] = ent
			if useDrop && ent.fv.Score > bestScore {
				bestScore = ent.fv.Score
			}
			if ent.alignedLen > bestAligned || anchor == -1 {
				bestAligned = ent.alignedLen
				anchor = i
			}
		}
		if anchor == -1 {
			diedOut = true
			break // every diagonal died
		}

		polishNear := best.AlignedLen > 0 && d-int(best.Distance) <= 30
		lo, hi := trimWindow(cfg, built, anchor, bestAligned, bestScore, dropThresh, useDrop, sensScale, ulen, vlen, newLo, polishNear)
		if hi <= lo {
			diedOut = true
			break
		}

		cur.SetWindow(toIndex(newLo+lo), hi-lo)
		cur.MaybeShift(ulen, vlen)
		for i := lo; i < hi; i++ {
			diag := newLo + i
			e := built[i]
			*cur.At(toIndex(diag)) = e.fv
			considerPolish(&best, cfg, uint32(d), diag, e.fv)
			if completedRow(e.fv, ulen, vlen, diag) {
				return Result{Point: best, Completed: true, Distance: uint32(d)}
			}
		}
	}

	return Result{Point: best, DiedOut: diedOut, Distance: uint32(maxD)}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func completedRow(fv FrontValue, ulen, vlen, diag int) bool {
	return int(fv.Row) == ulen && int(fv.Row)+diag == vlen
}

// stepDiagonal computes the best of the Deletion/Insertion/Mismatch
// predecessors for diag, per spec.md §4.5/§9, then greedily extends
// matches from the resulting position.
func stepDiagonal(cfg Config, u, v []byte, prev *Arena, bias, prevLo, prevHi, diag int) *entry {
	ulen, vlen := len(u), len(v)

	type cand struct {
		row  int
		src  *FrontValue
		flag uint8
	}
	var cands []cand

	if diag-1 >= prevLo && diag-1 < prevHi {
		p := prev.At(diag - 1 + bias)
		row := int(p.Row) + 1
		if row <= ulen && row+diag >= 0 && row+diag <= vlen {
			cands = append(cands, cand{row, p, BackrefDel})
		}
	}
	if diag+1 >= prevLo && diag+1 < prevHi {
		p := prev.At(diag + 1 + bias)
		row := int(p.Row)
		if row <= ulen && row+diag >= 0 && row+diag <= vlen {
			cands = append(cands, cand{row, p, BackrefIns})
		}
	}
	if diag >= prevLo && diag < prevHi {
		p := prev.At(diag + bias)
		row := int(p.Row) + 1
		if row <= ulen && row+diag >= 0 && row+diag <= vlen {
			cands = append(cands, cand{row, p, BackrefMismatch})
		}
	}
	if len(cands) == 0 {
		return nil
	}

	bestRow := -1
	for _, c := range cands {
		if c.row > bestRow {
			bestRow = c.row
		}
	}
	var flags uint8
	var chosen *FrontValue
	for _, c := range cands {
		if c.row != bestRow {
			continue
		}
		flags |= c.flag
		if chosen == nil || c.src.MatchHistoryCount > chosen.MatchHistoryCount {
			chosen = c.src
		}
	}

	fv := *chosen
	fv.Row = uint32(bestRow)
	fv.Backref = flags
	fv.Score--
	pushMatchBit(&fv, cfg.HistorySize, false)

	extendMatches(u, v, cfg.HistorySize, diag, &fv)

	col := int(fv.Row) + diag
	return &entry{fv: fv, alignedLen: uint32(int(fv.Row) + col)}
}

// extendMatches greedily advances fv.Row (and implicitly col=row+diag)
// while u and v agree, per spec.md §4.5's snake step, pushing a match bit
// for each base consumed. The seed's own k matches are preloaded directly
// by seedFrontValue rather than re-walked here (see its comment), so this
// only pushes bits for bases genuinely consumed by this call.
func extendMatches(u, v []byte, h uint8, diag int, fv *FrontValue) {
	row := int(fv.Row)
	col := row + diag
	for row < len(u) && col < len(v) && u[row] == v[col] {
		fv.LocalMatchCount++
		fv.Score++
		pushMatchBit(fv, h, true)
		row++
		col++
	}
	fv.Row = uint32(row)
}

// trimWindow applies the match-quality gate and the MaxAlignedLenDifference
// bound, per cfg.TrimPolicy, expanding outward from anchor while neighbors
// stay contiguous and pass the active tests. sensScale (1.0 at sensitivity
// 100, smaller for a less sensitive/more permissive greedy run) scales how
// strict the quality gate is -- a lower sensitivity keeps more marginal
// diagonals alive, trading accuracy for speed, mirroring the sensitivity
// knob's effect in original_source's greedy extender. ulen/vlen/newLo let
// each candidate's distance from every band margin be computed, so
// weakends (effectiveMinMatchPercentage) relaxes the gate near the end of
// the alignment the same way it does near the start. polishNear tells
// TrimOnNewPolish whether the last polished point is within 30 edits.
func trimWindow(cfg Config, built []*entry, anchor int, bestAligned uint32, bestScore int32, dropThresh int32, useDrop bool, sensScale float64, ulen, vlen, newLo int, polishNear bool) (int, int) {
	passes := func(i int) bool {
		e := built[i]
		if e == nil {
			return false
		}
		if cfg.TrimPolicy == TrimNever {
			return true
		}
		if cfg.TrimPolicy == TrimOnNewPolish && !polishNear {
			return true
		}
		if useDrop && bestScore-e.fv.Score > dropThresh {
			return false
		}
		if e.fv.MatchHistorySize == cfg.HistorySize {
			row := int(e.fv.Row)
			col := row + newLo + i
			distanceFromEdge := minInt(minInt(row, ulen-row), minInt(col, vlen-col))
			need := cfg.effectiveMinMatchPercentage(distanceFromEdge) * sensScale
			got := 100 * float64(e.fv.MatchHistoryCount) / float64(cfg.HistorySize)
			if got < need {
				return false
			}
		}
		if cfg.MaxAlignedLenDifference > 0 && bestAligned > e.alignedLen {
			if bestAligned-e.alignedLen > cfg.MaxAlignedLenDifference {
				return false
			}
		}
		return true
	}

	lo, hi := anchor, anchor+1
	for lo > 0 && passes(lo-1) {
		lo--
	}
	for hi < len(built) && passes(hi) {
		hi++
	}
	return lo, hi
}

// considerPolish updates best when fv's endpoint both extends AlignedLen
// and satisfies cfg.Template's match-quality bar, per spec.md §4.5/§8.
func considerPolish(best *PolishedPoint, cfg Config, d uint32, diag int, fv FrontValue) {
	if !cfg.Template.matches(fv) {
		return
	}
	col := int(fv.Row) + diag
	best.update(PolishedPoint{
		AlignedLen:    uint32(int(fv.Row) + col),
		Row:           fv.Row,
		Distance:      d,
		TrimLeft:      diag,
		MaxMismatches: fv.MaxMismatches,
	})
}
