// Package seedextend orchestrates the k-mer seeding, diagonal-band
// scoring, and front-prune extension stages into the end-to-end
// diagonal-band seed-and-extend pipeline (spec.md §4.6, §5, §6).
package seedextend

import (
	"github.com/jianlian92/genometools/diagband"
	"github.com/jianlian92/genometools/extend"
)

// Config is the full recognized option surface (spec.md §6's table),
// modeled on fusion.Opts/fusion.DefaultOpts: one flat struct of
// independently-documented knobs rather than nested per-stage configs,
// since that's how the teacher exposes an equivalently wide pipeline's
// options to its CLI layer.
type Config struct {
	// SeedLength is k, the k-mer length used for seeding; typically 8-30.
	SeedLength int
	// MaxFreq caps how many times a k-mer code may occur before its
	// occurrences are skipped as uninformative; 0 derives a cap from
	// MemLimit via seedpair.EstimateMaxFreq.
	MaxFreq int
	// MemLimit bounds the byte budget for SeedPair storage when MaxFreq
	// is derived rather than set explicitly.
	MemLimit uint64

	ErrorPercentage        float64
	UserDefinedLeastLength int

	// LogDiagBandWidth is L, the log2 diagonal-band width; 4-8 typical.
	LogDiagBandWidth uint32
	// MinCoverage is the diagonal-band trigger threshold.
	MinCoverage uint32
	// UseAPos suppresses a trigger whose A-start falls inside the A
	// interval of the last successfully extended trigger in the same
	// group, so a dense/repetitive region reports one alignment per
	// cluster instead of one per qualifying seed.
	UseAPos bool

	// HistorySize is H, the front-prune match-history window; <=64.
	HistorySize uint8
	// PercMatHistory is the minimum match fraction required in the
	// H-window, 0-100.
	PercMatHistory float64
	// MaxAlignedLenDifference bounds front-prune trimming slack.
	MaxAlignedLenDifference uint32
	// Sensitivity is the greedy extender's backoff factor, 0-100.
	Sensitivity int
	// MatchscoreBias biases the polishing template's required match
	// fraction away from PercMatHistory.
	MatchscoreBias float64
	// WeakEnds permits a higher error rate near the band's edges.
	WeakEnds bool

	// ExtendGreedy and ExtendXdrop select the extender variant; exactly
	// one must be set.
	ExtendGreedy bool
	ExtendXdrop  bool
	// XdropScore is the x-drop threshold, consulted only when ExtendXdrop.
	XdropScore int32

	// OverlappingSeeds uses delta=1 instead of delta=k in self-comparison
	// dedup (seedpair.Delta).
	OverlappingSeeds bool
	// NoRev and NoFwd suppress the reverse-complement or forward pass.
	NoRev bool
	NoFwd bool
	// ExtendLast is not read by Run: the forward and reverse passes are
	// built and extended the same way whether or not it is set.
	ExtendLast bool

	// UseKmerFile is not read by Run: no k-mer cache files are written or
	// read (kmerlist.WriteCache/ReadCache implement the file format).
	UseKmerFile bool
	// KmerFileBasename is not read by Run either; see UseKmerFile.
	KmerFileBasename string

	// Verify re-checks every emitted SeedPair against the encoded
	// sequences after the fact (seedpair.Verify).
	Verify bool

	// Parallelism caps the number of worker goroutines in the B-range
	// worker pool; 0 uses runtime.NumCPU().
	Parallelism int
	// NumPartitions splits each input set into this many near-equal
	// ranges for threading; 0 means "one partition" (no splitting).
	NumPartitions int

	// SelfCompare runs the pipeline over a single sequence set, A==B,
	// restricted to the upper triangle of (a-range,b-range) pairs.
	SelfCompare bool
}

// DefaultConfig mirrors the defaults original_source's gt_seed_extend
// tool documents, per fusion.DefaultOpts's pattern of naming one
// package-level instance callers start from and override.
var DefaultConfig = Config{
	SeedLength:              14,
	MaxFreq:                 0,
	MemLimit:                1 << 30,
	ErrorPercentage:         10,
	UserDefinedLeastLength:  40,
	LogDiagBandWidth:        6,
	MinCoverage:             28,
	HistorySize:             31,
	PercMatHistory:          65,
	MaxAlignedLenDifference: 0,
	Sensitivity:             97,
	MatchscoreBias:          0,
	WeakEnds:                false,
	UseAPos:                 true,
	ExtendGreedy:            true,
	NumPartitions:           1,
}

// extendConfig derives the front-prune extender's Config from the
// top-level option surface.
func (c Config) extendConfig() extend.Config {
	return extend.Config{
		SeedLength:              c.SeedLength,
		ErrorPercentage:         c.ErrorPercentage,
		UserDefinedLeastLength:  c.UserDefinedLeastLength,
		HistorySize:             c.HistorySize,
		MinMatchPercentage:      c.PercMatHistory,
		MaxAlignedLenDifference: c.MaxAlignedLenDifference,
		WeakEnds:                c.WeakEnds,
		TrimPolicy:              extend.TrimAlways,
		Template: extend.PolishTemplate{
			CutDepth:         c.HistorySize,
			MinMatchFraction: (c.PercMatHistory + c.MatchscoreBias) / 100.0,
		},
	}
}

// extendMode resolves the tagged extend.Mode the driver should run with.
// Per SPEC_FULL.md's supplemented feature 2, Sensitivity additionally
// sets x-drop's drop threshold when the caller hasn't set an explicit
// XdropScore: the threshold is Sensitivity/2, so a higher sensitivity
// derives a looser drop threshold.
func (c Config) extendMode() extend.Mode {
	if c.ExtendXdrop {
		drop := c.XdropScore
		if drop == 0 {
			drop = int32(c.Sensitivity) / 2
		}
		return extend.XdropInfo{DropScore: drop}
	}
	return extend.GreedyInfo{Sensitivity: c.Sensitivity}
}

// diagbandConfig derives the diagonal-band scorer's Config, given the
// per-pass maximum sequence lengths.
func (c Config) diagbandConfig(aMaxLen, bMaxLen uint32) diagband.Config {
	return diagband.Config{
		AMaxLen:          aMaxLen,
		BMaxLen:          bMaxLen,
		LogDiagBandWidth: c.LogDiagBandWidth,
		SeedLength:       c.SeedLength,
		MinCoverage:      c.MinCoverage,
		UseAPos:          c.UseAPos,
	}
}
