package seedextend

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jianlian92/genometools/seq"
)

func buildTwoBit(t *testing.T, seqs ...string) *seq.TwoBit {
	t.Helper()
	lengths := make([]uint64, len(seqs))
	for i, s := range seqs {
		lengths[i] = uint64(len(s))
	}
	tb := seq.NewTwoBit(lengths)
	for i, s := range seqs {
		tb.SetSeq(i, []byte(s))
	}
	return tb
}

// testConfig relaxes the thresholds DefaultConfig sets for whole-genome
// runs down to values a 60-base synthetic test fixture can actually clear.
func testConfig() Config {
	c := DefaultConfig
	c.SeedLength = 8
	c.MinCoverage = 8
	c.UserDefinedLeastLength = 10
	c.MaxFreq = 50
	return c
}

func TestRunFindsExactMatch(t *testing.T) {
	shared := "ACGTACGTACGTTGCATGCATGCATGCATGCATGC"
	a := buildTwoBit(t, shared)
	b := buildTwoBit(t, "NNNN"+shared)

	var out strings.Builder
	stats, err := Run(context.Background(), testConfig(), a, b, &out)
	require.NoError(t, err)
	assert.Greater(t, stats.SeedPairsBuilt, 0)
	assert.Greater(t, stats.AlignmentsEmitted, 0)
	assert.NotEmpty(t, out.String())
}

func TestRunSelfCompareSkipsLowerTriangle(t *testing.T) {
	seqs := buildTwoBit(t, "ACGTACGTACGTTGCATGCATGCATGCATGCATGC", "TTTTTTTTTTTTTTTTTTTTTTTTTTTTTTTTTTTT")

	cfg := testConfig()
	cfg.SelfCompare = true
	cfg.NumPartitions = 2

	var out strings.Builder
	_, err := Run(context.Background(), cfg, seqs, seqs, &out)
	require.NoError(t, err)
}

func TestRunNoFwdNoRevErrors(t *testing.T) {
	a := buildTwoBit(t, "ACGTACGTACGTACGT")
	cfg := testConfig()
	cfg.NoFwd = true
	cfg.NoRev = true

	var out strings.Builder
	_, err := Run(context.Background(), cfg, a, a, &out)
	assert.Error(t, err)
}

func TestRunReverseComplementPass(t *testing.T) {
	shared := "ACGTACGTACGTTGCATGCATGCATGCATGCATGC"
	rc := reverseComplement(shared)

	a := buildTwoBit(t, shared)
	b := buildTwoBit(t, rc)

	cfg := testConfig()
	cfg.NoFwd = true

	var out strings.Builder
	stats, err := Run(context.Background(), cfg, a, b, &out)
	require.NoError(t, err)
	assert.Greater(t, stats.AlignmentsEmitted, 0)
}

func reverseComplement(s string) string {
	comp := map[byte]byte{'A': 'T', 'C': 'G', 'G': 'C', 'T': 'A'}
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[len(s)-1-i] = comp[s[i]]
	}
	return string(out)
}
