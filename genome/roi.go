package genome

// ROI is a named region of interest: a premasked interval partitioned into
// disjoint sub-intervals after excluded-region subtraction.
//
// Invariant: Subintervals is ordered, non-overlapping, and every element
// lies within Premasked.
type ROI struct {
	Premasked       Interval
	Subintervals    []Interval
	Name            string
	AnnotatedStrand Strand
}

// Postmasked returns [first.Start, last.End) over Subintervals. It panics if
// Subintervals is empty; callers are expected to have already dropped ROIs
// whose subintervals became empty after masking (see NewROI).
func (r ROI) Postmasked() Interval {
	first := r.Subintervals[0]
	last := r.Subintervals[len(r.Subintervals)-1]
	return Interval{Contig: first.Contig, Start: first.Start, End: last.End}
}

// MaskedLen is the number of bases excluded-region subtraction removed from
// Premasked, i.e. len(Premasked) - sum(len(Subintervals)).
func (r ROI) MaskedLen() PosType {
	total := r.Premasked.Len()
	for _, s := range r.Subintervals {
		total -= s.Len()
	}
	return total
}

// NewROI subtracts excluded from premasked to build the ROI's subintervals.
// It returns ok=false if no subinterval survives, per the "drop ROIs whose
// subintervals are empty" rule in the workload partitioner.
func NewROI(premasked Interval, name string, strand Strand, excluded []Interval) (ROI, bool) {
	subs := Subtract(premasked, excluded)
	if len(subs) == 0 {
		return ROI{}, false
	}
	return ROI{Premasked: premasked, Subintervals: subs, Name: name, AnnotatedStrand: strand}, true
}

// Workload is the unit of parallelism: a bin and the (possibly empty, in
// site mode) ROIs it must account for.
//
// Invariant: every ROI's Postmasked() range lies within Bin, and
// Bin.Len() <= maxbinsize unless a single ROI on its own is wider.
type Workload struct {
	Bin  Interval
	ROIs []ROI
}
