package counter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssomyk/rnaedit/genome"
	"github.com/ssomyk/rnaedit/nuc"
)

func roi(t *testing.T, contig string, start, end genome.PosType, name string) genome.ROI {
	t.Helper()
	r, ok := genome.NewROI(genome.Interval{Contig: contig, Start: start, End: end}, name, genome.UnknownStrand, nil)
	require.True(t, ok)
	return r
}

func TestROICounterLooksUpContainingROIs(t *testing.T) {
	rois := []genome.ROI{
		roi(t, "1", 0, 10, "a"),
		roi(t, "1", 20, 30, "b"),
	}
	rc := NewROICounter(rois)

	assert.Equal(t, []int{0}, rc.At(5))
	assert.Equal(t, []int{1}, rc.At(25))
	assert.Empty(t, rc.At(15))
}

func TestROICounterAddAccumulatesPerROI(t *testing.T) {
	rois := []genome.ROI{roi(t, "1", 0, 10, "a")}
	rc := NewROICounter(rois)

	rc.Add(genome.Forward, 3, nuc.ReqA)
	rc.Add(genome.Forward, 30, nuc.ReqA) // outside every ROI: dropped

	assert.Equal(t, uint32(1), rc.Counters()[0].At(genome.Forward).At(3).A)
}

func TestROICounterOverlappingROIsBothUpdated(t *testing.T) {
	rois := []genome.ROI{
		roi(t, "1", 0, 10, "a"),
		roi(t, "1", 5, 15, "b"),
	}
	rc := NewROICounter(rois)
	rc.Add(genome.Reverse, 7, nuc.ReqC)

	assert.Equal(t, uint32(1), rc.Counters()[0].At(genome.Reverse).At(7).C)
	assert.Equal(t, uint32(1), rc.Counters()[1].At(genome.Reverse).At(7).C)
}
