package extend

// TrimPolicy selects when trimming (spec.md §4.5) is applied after a
// distance step.
type TrimPolicy int

const (
	// TrimAlways applies the three trim tests every step.
	TrimAlways TrimPolicy = iota
	// TrimNever never drops a diagonal (other than falling off the arena
	// bounds entirely at termination); useful for tests that want to see
	// the full wavefront.
	TrimNever
	// TrimOnNewPolish only trims once the last recorded polished point is
	// within 30 edits of the current distance.
	TrimOnNewPolish
)

// Config holds the extender's run parameters, derived from spec.md §6's
// option surface by seedextend.Config.
type Config struct {
	SeedLength              int
	ErrorPercentage         float64
	UserDefinedLeastLength  int
	HistorySize             uint8   // H, <= 64
	MinMatchPercentage      float64 // perc_mat_history
	MaxAlignedLenDifference uint32
	WeakEnds                bool
	TrimPolicy              TrimPolicy
	Template                PolishTemplate
}

// MaxMismatches derives the per-run ceiling on mismatches from
// ErrorPercentage and UserDefinedLeastLength, restoring the derivation
// original_source's gt_seed_extend driver performs before calling the
// greedy extender rather than requiring the caller to precompute it
// (SPEC_FULL.md's supplemented feature 4).
func (c Config) MaxMismatches() int {
	return int(c.ErrorPercentage * float64(c.UserDefinedLeastLength) / 100.0)
}

// effectiveMinMatchPercentage implements the weakends supplemented feature:
// within the outermost SeedLength rows/cols of the band, the quality gate
// is relaxed. distanceFromEdge is the caller's precomputed distance to the
// nearest of all four band margins (row from 0, row from ulen, col from 0,
// col from vlen) -- not just distance from the seed -- so the relaxation
// applies as the alignment approaches either end, not only its start.
func (c Config) effectiveMinMatchPercentage(distanceFromEdge int) float64 {
	if c.WeakEnds && distanceFromEdge < c.SeedLength {
		return c.MinMatchPercentage * 0.5
	}
	return c.MinMatchPercentage
}
