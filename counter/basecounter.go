// Package counter implements the base nucleotide counter and its ROI and
// strand compositions (spec components C4 and C5).
package counter

import (
	"github.com/ssomyk/rnaedit/genome"
	"github.com/ssomyk/rnaedit/nuc"
)

// BaseCounter accumulates per-position nucleotide counts across a single
// contiguous genomic interval. It is the unit the pileup engine drains reads
// into.
type BaseCounter struct {
	span   genome.Interval
	counts []nuc.Counts
}

// NewBaseCounter allocates a counter covering span.
func NewBaseCounter(span genome.Interval) *BaseCounter {
	return &BaseCounter{span: span, counts: make([]nuc.Counts, span.Len())}
}

// Span returns the interval this counter covers.
func (c *BaseCounter) Span() genome.Interval {
	return c.span
}

// Add records one observed base at the given reference position. Positions
// outside the counter's span are silently ignored: callers clip to the bin
// (or route by an ROI's postmasked range), and a read may still overhang
// this counter's span.
func (c *BaseCounter) Add(pos genome.PosType, observed nuc.ReqNucleotide) {
	i := pos - c.span.Start
	if i < 0 || i >= genome.PosType(len(c.counts)) {
		return
	}
	c.counts[i].Inc(observed)
}

// At returns the accumulated counts at pos. Returns the zero value for
// positions outside the span.
func (c *BaseCounter) At(pos genome.PosType) nuc.Counts {
	i := pos - c.span.Start
	if i < 0 || i >= genome.PosType(len(c.counts)) {
		return nuc.Counts{}
	}
	return c.counts[i]
}

// Counts returns the raw backing slice, indexed from span.Start.
func (c *BaseCounter) Counts() []nuc.Counts {
	return c.counts
}
