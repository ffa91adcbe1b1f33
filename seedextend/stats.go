package seedextend

// Stats accumulates run-wide counters, modeled on fusion.Stats/
// fusion.Stats.Merge: one flat struct of counters a worker fills in
// locally and the driver folds together at join time.
type Stats struct {
	// KmersExtracted is the number of k-mer occurrences extracted from the
	// B side of each job (kmerenum.Extract's output length); the shared
	// A-side list is not counted.
	KmersExtracted int
	// SeedPairsBuilt is the number of SeedPairs seedpair.Build emitted
	// before diagonal scoring.
	SeedPairsBuilt int
	// SeedPairsSkippedFrequency is reserved for k-mer codes skipped for
	// exceeding the per-code frequency cap; Run does not set it, so it
	// stays zero.
	SeedPairsSkippedFrequency int
	// Triggers is the number of diagband.Trigger groups that passed
	// MinCoverage and were handed to the extender.
	Triggers int
	// ExtensionsCompleted counts extensions that reached (ulen,vlen).
	ExtensionsCompleted int
	// ExtensionsDiedOut counts extensions whose wavefront emptied before
	// completion.
	ExtensionsDiedOut int
	// AlignmentsEmitted is the number of alignment records written to the
	// output stream.
	AlignmentsEmitted int
	// VerifyMismatches is reserved for SeedPair verification failures;
	// Run does not set it, so it stays zero. A verification failure
	// surfaces as the error seedpair.Verify returns on the first
	// mismatch, not as a count.
	VerifyMismatches int
}

// Merge adds the field values of two Stats and returns the sum, per
// fusion.Stats.Merge's pattern for combining per-worker tallies.
func (s Stats) Merge(o Stats) Stats {
	s.KmersExtracted += o.KmersExtracted
	s.SeedPairsBuilt += o.SeedPairsBuilt
	s.SeedPairsSkippedFrequency += o.SeedPairsSkippedFrequency
	s.Triggers += o.Triggers
	s.ExtensionsCompleted += o.ExtensionsCompleted
	s.ExtensionsDiedOut += o.ExtensionsDiedOut
	s.AlignmentsEmitted += o.AlignmentsEmitted
	s.VerifyMismatches += o.VerifyMismatches
	return s
}
