package mismatches

// ByMismatches is the output prefilter shared by ROI and site rows: accept
// iff coverage clears MinCoverage, mismatches clear MinMismatches, and the
// mismatch frequency clears MinFreq. Zero coverage always rejects.
type ByMismatches struct {
	MinCoverage   uint32
	MinMismatches uint32
	MinFreq       float64
}

// Accept applies the prefilter to a (coverage, mismatches) summary.
func (f ByMismatches) Accept(coverage, mismatches uint32) bool {
	if coverage == 0 {
		return false
	}
	if coverage < f.MinCoverage || mismatches < f.MinMismatches {
		return false
	}
	return float64(mismatches)/float64(coverage) >= f.MinFreq
}
