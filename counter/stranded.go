package counter

import (
	"github.com/ssomyk/rnaedit/genome"
	"github.com/ssomyk/rnaedit/nuc"
)

// StrandedCounter composes three BaseCounters, one per transcribed strand,
// all covering the same span. Reads whose strand could not be deduced
// accumulate into Unknown, to be resolved later by the stranding engine.
type StrandedCounter struct {
	span genome.Interval
	data genome.StrandedData[*BaseCounter]
}

// NewStrandedCounter allocates a stranded counter covering span.
func NewStrandedCounter(span genome.Interval) *StrandedCounter {
	c := &StrandedCounter{span: span}
	c.data.Forward = NewBaseCounter(span)
	c.data.Reverse = NewBaseCounter(span)
	c.data.Unknown = NewBaseCounter(span)
	return c
}

// Span returns the interval this counter covers.
func (c *StrandedCounter) Span() genome.Interval {
	return c.span
}

// At returns the per-strand BaseCounter, keyed by transcribed strand.
func (c *StrandedCounter) At(strand genome.Strand) *BaseCounter {
	return *c.data.At(strand)
}

// Add records one observed base at pos on the given transcribed strand.
func (c *StrandedCounter) Add(strand genome.Strand, pos genome.PosType, observed nuc.ReqNucleotide) {
	c.At(strand).Add(pos, observed)
}

// Each invokes fn once per strand counter, in canonical strand order.
func (c *StrandedCounter) Each(fn func(genome.Strand, *BaseCounter)) {
	c.data.Each(func(s genome.Strand, bc **BaseCounter) {
		fn(s, *bc)
	})
}
