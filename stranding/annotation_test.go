package stranding

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ssomyk/rnaedit/genome"
)

func TestSegmentIndexSingleStrandWins(t *testing.T) {
	idx := NewSegmentIndex()
	idx.Add("1", genome.Interval{Contig: "1", Start: 200, End: 300}, genome.Forward)
	idx.Finalize()

	assert.Equal(t, genome.Forward, idx.Lookup("1", genome.Interval{Contig: "1", Start: 250, End: 251}))
	assert.Equal(t, genome.UnknownStrand, idx.Lookup("1", genome.Interval{Contig: "1", Start: 400, End: 401}))
	assert.Equal(t, genome.UnknownStrand, idx.Lookup("2", genome.Interval{Contig: "2", Start: 0, End: 10}))
}

func TestSegmentIndexConflictingStrandsIsUnknown(t *testing.T) {
	idx := NewSegmentIndex()
	idx.Add("1", genome.Interval{Contig: "1", Start: 0, End: 100}, genome.Forward)
	idx.Add("1", genome.Interval{Contig: "1", Start: 50, End: 150}, genome.Reverse)
	idx.Finalize()

	assert.Equal(t, genome.UnknownStrand, idx.Lookup("1", genome.Interval{Contig: "1", Start: 60, End: 61}))
}

func TestByAnnotationFallsBackToGene(t *testing.T) {
	exon := NewSegmentIndex()
	exon.Finalize()
	gene := NewSegmentIndex()
	gene.Add("1", genome.Interval{Contig: "1", Start: 0, End: 1000}, genome.Reverse)
	gene.Finalize()

	a := ByAnnotation{Exon: exon, Gene: gene}
	assert.Equal(t, genome.Reverse, a.StrandFor("1", genome.Interval{Contig: "1", Start: 500, End: 501}))
}
