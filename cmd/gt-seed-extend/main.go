// gt-seed-extend runs the diagonal-band seed-and-extend pipeline over one
// or two FASTA files, writing a compressed alignment report.
//
// Usage:
//
//	gt-seed-extend -output=out.gz a.fasta [b.fasta]
//
// With a single FASTA argument the run is a self-comparison (-self is
// implied); with two, the first is the A set and the second the B set.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"

	"github.com/jianlian92/genometools/seedextend"
	"github.com/jianlian92/genometools/seq"
)

func usage() {
	fmt.Fprintln(os.Stderr, `
gt-seed-extend finds local alignments between two (or one, self-compared)
sets of DNA sequences using k-mer seeding, diagonal-band scoring, and a
banded greedy or x-drop extension.

Usage:
  gt-seed-extend [flags] a.fasta [b.fasta]
`)
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	flag.Usage = usage

	opts := seedextend.DefaultConfig
	outputPath := flag.String("output", "./alignments.gz", "Path to write the compressed alignment report to.")
	extendMode := flag.String("extend", "greedy", `Extension algorithm: "greedy" or "xdrop".`)

	flag.IntVar(&opts.SeedLength, "seedlength", opts.SeedLength, "K-mer seed length.")
	flag.IntVar(&opts.MaxFreq, "maxfreq", opts.MaxFreq, "Max k-mer occurrence count before a seed is skipped as uninformative (0 derives a cap from -memlimit).")
	flag.Uint64Var(&opts.MemLimit, "memlimit", opts.MemLimit, "Byte budget for seed-pair storage when -maxfreq is derived.")
	flag.Float64Var(&opts.ErrorPercentage, "err", opts.ErrorPercentage, "Maximum tolerated error rate, percent.")
	flag.IntVar(&opts.UserDefinedLeastLength, "minidentity", opts.UserDefinedLeastLength, "Minimum reported alignment length.")
	logDiagBandWidth := flag.Uint("l", uint(opts.LogDiagBandWidth), "Log2 diagonal-band width.")
	minCoverage := flag.Uint("mincoverage", uint(opts.MinCoverage), "Minimum accumulated diagonal-band coverage to trigger extension.")
	flag.BoolVar(&opts.UseAPos, "useapos", opts.UseAPos, "Suppress a trigger overlapping the last successful extension's A interval.")
	historySize := flag.Uint("historysize", uint(opts.HistorySize), "Front-prune match-history window size, <=64.")
	flag.Float64Var(&opts.PercMatHistory, "percmathistory", opts.PercMatHistory, "Minimum match percentage required in the history window.")
	maxAlignedLenDifference := flag.Uint("maxalignedlendifference", uint(opts.MaxAlignedLenDifference), "Bound on aligned-length drift allowed while trimming diagonals.")
	flag.IntVar(&opts.Sensitivity, "sensitivity", opts.Sensitivity, "Greedy extender backoff factor, 0-100.")
	flag.Float64Var(&opts.MatchscoreBias, "matchscorebias", opts.MatchscoreBias, "Bias applied to the polishing template's required match fraction.")
	flag.BoolVar(&opts.WeakEnds, "weakends", opts.WeakEnds, "Permit a higher error rate near the band's edges.")
	xdropScore := flag.Int("xdropscore", int(opts.XdropScore), "X-drop score threshold (only used with -extend=xdrop).")
	flag.BoolVar(&opts.OverlappingSeeds, "overlappingseeds", opts.OverlappingSeeds, "Use delta=1 instead of delta=k when deduping self-comparison seeds.")
	flag.BoolVar(&opts.NoRev, "norev", opts.NoRev, "Suppress the reverse-complement pass.")
	flag.BoolVar(&opts.NoFwd, "nofwd", opts.NoFwd, "Suppress the forward pass.")
	flag.BoolVar(&opts.ExtendLast, "extendlast", opts.ExtendLast, "Accepted but has no effect: both passes run the same way.")
	flag.BoolVar(&opts.UseKmerFile, "usekmerfile", opts.UseKmerFile, "Accepted but has no effect: no k-mer cache files are written or read.")
	flag.StringVar(&opts.KmerFileBasename, "kmerfilebasename", opts.KmerFileBasename, "Basename for k-mer cache files (has no effect; see -usekmerfile).")
	flag.BoolVar(&opts.Verify, "verify", opts.Verify, "Re-check every emitted seed pair against the encoded sequences.")
	flag.IntVar(&opts.Parallelism, "parallelism", opts.Parallelism, "Worker goroutines in the B-range pool (0 uses runtime.NumCPU()).")
	flag.IntVar(&opts.NumPartitions, "numpartitions", opts.NumPartitions, "Number of near-equal partitions to split each input set into.")
	selfCompare := flag.Bool("self", false, "Force self-comparison even when two FASTA files are given (restricts to the upper triangle).")

	flag.Parse()
	if flag.NArg() < 1 || flag.NArg() > 2 {
		usage()
	}
	opts.LogDiagBandWidth = uint32(*logDiagBandWidth)
	opts.MinCoverage = uint32(*minCoverage)
	opts.HistorySize = uint8(*historySize)
	opts.MaxAlignedLenDifference = uint32(*maxAlignedLenDifference)
	opts.XdropScore = int32(*xdropScore)
	switch *extendMode {
	case "greedy":
		opts.ExtendGreedy, opts.ExtendXdrop = true, false
	case "xdrop":
		opts.ExtendGreedy, opts.ExtendXdrop = false, true
	default:
		log.Fatalf("gt-seed-extend: -extend must be \"greedy\" or \"xdrop\", got %q", *extendMode)
	}

	cleanup := grail.Init()
	defer cleanup()
	ctx := vcontext.Background()

	aPath := flag.Arg(0)
	bPath := aPath
	opts.SelfCompare = *selfCompare
	if flag.NArg() == 2 {
		bPath = flag.Arg(1)
	} else {
		opts.SelfCompare = true
	}

	start := time.Now()
	stats, err := Run(ctx, opts, aPath, bPath, *outputPath)
	if err != nil {
		log.Panicf("gt-seed-extend: run: %v", err)
	}
	log.Printf("gt-seed-extend: done in %s, %d CPUs: %+v", time.Since(start), runtime.NumCPU(), stats)
}

// Run loads aPath (and bPath, if it differs from aPath) as FASTA, runs the
// seed-and-extend pipeline, and writes the compressed alignment report to
// outputPath. Factored out of main so an end-to-end test can drive it
// directly against local temp files instead of through the flag parser,
// the way bio-fusion's main.go exposes DetectFusion.
func Run(ctx context.Context, opts seedextend.Config, aPath, bPath, outputPath string) (seedextend.Stats, error) {
	log.Printf("gt-seed-extend: loading %s", aPath)
	aTwoBit, _, err := seq.LoadFasta(ctx, aPath)
	if err != nil {
		return seedextend.Stats{}, err
	}
	var aSeqs, bSeqs seq.Sequence = aTwoBit, aTwoBit
	if bPath != aPath {
		log.Printf("gt-seed-extend: loading %s", bPath)
		bTwoBit, _, err := seq.LoadFasta(ctx, bPath)
		if err != nil {
			return seedextend.Stats{}, err
		}
		bSeqs = bTwoBit
	}

	out, err := file.Create(ctx, outputPath)
	if err != nil {
		return seedextend.Stats{}, err
	}

	stats, runErr := seedextend.Run(ctx, opts, aSeqs, bSeqs, out.Writer(ctx))
	if closeErr := out.Close(ctx); runErr == nil {
		runErr = closeErr
	}
	return stats, runErr
}
