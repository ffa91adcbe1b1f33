package seedextend

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"

	baseerrors "github.com/grailbio/base/errors"
	"github.com/pkg/errors"

	"github.com/jianlian92/genometools/biosimd"
	"github.com/jianlian92/genometools/diagband"
	"github.com/jianlian92/genometools/extend"
	"github.com/jianlian92/genometools/kmerenum"
	"github.com/jianlian92/genometools/kmerlist"
	"github.com/jianlian92/genometools/seedpair"
	"github.com/jianlian92/genometools/seq"
)

// Run executes the full diagonal-band seed-and-extend pipeline over
// aSeqs/bSeqs per cfg (spec.md §4.6), writing one alignment line per
// accepted extension to out, and returns accumulated Stats.
//
// The worker-pool shape -- a channel of (a-range,b-range) jobs drained by
// a fixed pool of goroutines, one *kmerlist.List per a-range built once
// and shared read-only across every worker that touches it, results
// folded via a mutex-guarded accumulator -- is grounded on
// fusion/gene_db.go's ReadTranscriptome producer/consumer pools.
func Run(ctx context.Context, cfg Config, aSeqs, bSeqs seq.Sequence, out io.Writer) (Stats, error) {
	modes := passModes(cfg)
	if len(modes) == 0 {
		return Stats{}, errors.New("seedextend: both norev and nofwd set, nothing to do")
	}

	numPart := cfg.NumPartitions
	if numPart <= 0 {
		numPart = 1
	}
	aParts := Partition(aSeqs.NumSequences(), numPart, aSeqs.SeqLength)
	bParts := Partition(bSeqs.NumSequences(), numPart, bSeqs.SeqLength)

	type job struct{ aIdx, bIdx int }
	var jobs []job
	for ai := range aParts {
		for bi := range bParts {
			if cfg.SelfCompare && !UpperTriangle(ai, bi) {
				continue
			}
			jobs = append(jobs, job{ai, bi})
		}
	}
	if len(jobs) == 0 {
		return Stats{}, nil
	}

	parallelism := cfg.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	if parallelism > len(jobs) {
		parallelism = len(jobs)
	}

	aCacheMu := sync.Mutex{}
	aCache := make(map[int]*kmerlist.List, len(aParts))
	buildAList := func(ai int) *kmerlist.List {
		aCacheMu.Lock()
		defer aCacheMu.Unlock()
		if l, ok := aCache[ai]; ok {
			return l
		}
		r := aParts[ai]
		raw := kmerenum.Extract(aSeqs, r.Start, r.End-1, seq.Forward, cfg.SeedLength, nil)
		kmerenum.SortByCode(raw)
		l := kmerlist.NewList(raw)
		aCache[ai] = l
		return l
	}

	jobCh := make(chan job, len(jobs))
	for _, j := range jobs {
		jobCh <- j
	}
	close(jobCh)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		agg     Stats
		errOnce baseerrors.Once
		streams []*outputStream
	)

	for wi := 0; wi < parallelism; wi++ {
		threadIndex := wi
		wg.Add(1)
		go func() {
			defer wg.Done()
			stream, err := newOutputStream(threadIndex)
			if err != nil {
				errOnce.Set(err)
				return
			}
			var local Stats
			for j := range jobCh {
				select {
				case <-ctx.Done():
					errOnce.Set(ctx.Err())
					continue
				default:
				}
				aList := buildAList(j.aIdx)
				for _, mode := range modes {
					s, err := runJob(cfg, aSeqs, bSeqs, aParts[j.aIdx], bParts[j.bIdx], aList, mode, stream)
					if err != nil {
						errOnce.Set(err)
						continue
					}
					local = local.Merge(s)
				}
			}
			if err := stream.close(); err != nil {
				errOnce.Set(err)
			}
			mu.Lock()
			agg = agg.Merge(local)
			streams = append(streams, stream)
			mu.Unlock()
		}()
	}
	wg.Wait()

	if err := errOnce.Err(); err != nil {
		return agg, err
	}
	if err := mergeOutputStreams(out, streams); err != nil {
		return agg, err
	}
	return agg, nil
}

func passModes(cfg Config) []seq.Mode {
	var modes []seq.Mode
	if !cfg.NoFwd {
		modes = append(modes, seq.Forward)
	}
	if !cfg.NoRev {
		modes = append(modes, seq.Complement)
	}
	return modes
}

// runJob builds the B-side kmerlist for (bRange,mode), derives maxfreq,
// builds SeedPairs against aList, groups and scores them into Triggers via
// diagband, and extends each Trigger, writing accepted alignments to
// stream.
func runJob(cfg Config, aSeqs, bSeqs seq.Sequence, aRange, bRange Range, aList *kmerlist.List, mode seq.Mode, stream *outputStream) (Stats, error) {
	var stats Stats

	bRaw := kmerenum.Extract(bSeqs, bRange.Start, bRange.End-1, mode, cfg.SeedLength, nil)
	kmerenum.SortByCode(bRaw)
	bList := kmerlist.NewList(bRaw)
	// aList is shared and rebuilt at most once per a-range (see buildAList),
	// so only the B-side extraction is counted per job here.
	stats.KmersExtracted = bList.Len()

	aIt := kmerlist.NewIterator(aList)
	bIt := kmerlist.NewIterator(bList)

	maxfreq := cfg.MaxFreq
	if maxfreq <= 0 {
		histogram := seedpair.Histogram(aIt, bIt, cfg.SelfCompare, cfg.OverlappingSeeds, cfg.SeedLength)
		est, err := seedpair.EstimateMaxFreq(histogram, cfg.MemLimit, 0, cfg.MaxFreq, cfg.SelfCompare)
		if err != nil {
			return stats, err
		}
		maxfreq = est
	}

	pairs := seedpair.Build(aIt, bIt, cfg.SelfCompare, cfg.OverlappingSeeds, cfg.SeedLength, maxfreq, nil)
	stats.SeedPairsBuilt = len(pairs)
	if len(pairs) == 0 {
		return stats, nil
	}

	if cfg.Verify {
		if err := seedpair.Verify(pairs, aSeqs, bSeqs, cfg.SeedLength, mode); err != nil {
			return stats, err
		}
	}

	seedpair.SortByGroup(pairs)

	aMaxLen := maxSeqLenIn(aSeqs, aRange)
	bMaxLen := maxSeqLenIn(bSeqs, bRange)
	scorer := diagband.NewScorer(cfg.diagbandConfig(aMaxLen, bMaxLen))

	extCfg := cfg.extendConfig()
	extMode := cfg.extendMode()
	minLen := uint32(cfg.UserDefinedLeastLength)

	for i := 0; i < len(pairs); {
		j := i + 1
		for j < len(pairs) && pairs[j].ASeqNum == pairs[i].ASeqNum && pairs[j].BSeqNum == pairs[i].BSeqNum {
			j++
		}
		group := pairs[i:j]

		var writeErr error
		n := scorer.Group(group[0].ASeqNum, group[0].BSeqNum, group, func(tr diagband.Trigger) (uint32, bool) {
			u := decodeWindow(aSeqs, int(tr.ASeqNum), uint64(tr.AStart), seq.Forward)
			v := decodeWindow(bSeqs, int(tr.BSeqNum), uint64(tr.BStart), mode)
			res := extend.Run(extCfg, extMode, u, v)

			if res.Completed {
				stats.ExtensionsCompleted++
			}
			if res.DiedOut {
				stats.ExtensionsDiedOut++
			}
			if res.Point.AlignedLen == 0 || res.Point.AlignedLen < minLen {
				return 0, false
			}

			a := alignmentFromResult(tr, mode, res)
			if err := stream.write(a); err != nil {
				writeErr = err
				return 0, false
			}
			stats.AlignmentsEmitted++
			// The real aligned A-interval this trigger covered, so the next
			// overlapping candidate in the group is suppressed only because
			// this one actually produced output.
			return tr.AStart + res.Point.Row, true
		})
		stats.Triggers += n
		if writeErr != nil {
			return stats, writeErr
		}

		i = j
	}

	return stats, nil
}

// decodeWindow decodes the run of bases starting at the sequence-relative
// position relStart, in the "virtual forward" direction for mode, through
// to the end of the sequence. Under Complement, virtual index 0 is the
// sequence's rightmost base (per kmerenum's endpos convention): rather
// than walking CharAt backward one base at a time, this decodes the
// physical forward run [seqStart,abs] and reverse-complements the whole
// buffer in bulk with biosimd.ReverseComp8Inplace (seq/twobit.go's CharAt
// instead complements one two-bit code at a time, as 3-code).
func decodeWindow(seqs seq.Sequence, seqnum int, relStart uint64, mode seq.Mode) []byte {
	seqStart := seqs.SeqStart(seqnum)
	seqLen := seqs.SeqLength(seqnum)
	seqEnd := seqStart + seqLen

	if mode == seq.Forward {
		return decodeRun(seqs, seqStart+relStart, seqEnd)
	}

	if relStart >= seqLen {
		return nil
	}
	abs := seqEnd - 1 - relStart
	// Clip the decoded run to the nearest special/separator position at or
	// before abs, so an internal ambiguity code elsewhere in the sequence
	// (outside the window being reverse-complemented) can't truncate it.
	from := seqStart
	if p := seqs.PrevSeparator(abs); p+1 > from && p < abs {
		from = p + 1
	}
	out := decodeRun(seqs, from, abs+1)
	biosimd.ReverseComp8Inplace(out)
	return out
}

// decodeRun decodes CharAt(p, Forward) for p in [from,to), stopping early
// at the first separator/special position.
func decodeRun(seqs seq.Sequence, from, to uint64) []byte {
	if from >= to {
		return nil
	}
	out := make([]byte, 0, to-from)
	for p := from; p < to; p++ {
		ch, ok := seqs.CharAt(p, seq.Forward)
		if !ok {
			break
		}
		out = append(out, ch)
	}
	return out
}

func maxSeqLenIn(seqs seq.Sequence, r Range) uint32 {
	var max uint64
	for i := r.Start; i < r.End; i++ {
		if l := seqs.SeqLength(i); l > max {
			max = l
		}
	}
	return uint32(max)
}

func alignmentFromResult(tr diagband.Trigger, mode seq.Mode, res extend.Result) Alignment {
	// col = row + diag is the B-side length consumed at the polished point.
	blen := uint32(int(res.Point.Row) + res.Point.TrimLeft)

	strand := byte('F')
	if mode == seq.Complement {
		strand = 'R'
	}

	var identity float64
	if res.Point.AlignedLen > 0 {
		correct := float64(res.Point.AlignedLen) - float64(res.Point.Distance)
		identity = 100 * correct / float64(res.Point.AlignedLen)
	}

	return Alignment{
		ALen:      res.Point.Row,
		ASeq:      fmt.Sprintf("%d", tr.ASeqNum),
		AStartPos: tr.AStart,
		Strand:    strand,
		BLen:      blen,
		BSeq:      fmt.Sprintf("%d", tr.BSeqNum),
		BStartPos: tr.BStart,
		Score:     int32(res.Point.AlignedLen) - 2*int32(res.Point.Distance),
		EditDist:  res.Point.Distance,
		Identity:  identity,
	}
}
