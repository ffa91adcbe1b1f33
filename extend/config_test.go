package extend

import (
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestMaxMismatches(t *testing.T) {
	cfg := Config{ErrorPercentage: 10, UserDefinedLeastLength: 100}
	expect.EQ(t, cfg.MaxMismatches(), 10)
}

func TestEffectiveMinMatchPercentageWeakEnds(t *testing.T) {
	cfg := Config{SeedLength: 14, MinMatchPercentage: 80, WeakEnds: true}
	expect.EQ(t, cfg.effectiveMinMatchPercentage(5), 40.0)
	expect.EQ(t, cfg.effectiveMinMatchPercentage(20), 80.0)

	cfg.WeakEnds = false
	expect.EQ(t, cfg.effectiveMinMatchPercentage(5), 80.0)
}
