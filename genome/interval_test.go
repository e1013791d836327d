package genome

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubtractNoOverlap(t *testing.T) {
	iv := Interval{Contig: "1", Start: 100, End: 200}
	got := Subtract(iv, []Interval{{Contig: "1", Start: 300, End: 400}})
	assert.Equal(t, []Interval{iv}, got)
}

func TestSubtractMiddle(t *testing.T) {
	iv := Interval{Contig: "1", Start: 100, End: 200}
	got := Subtract(iv, []Interval{{Contig: "1", Start: 140, End: 160}})
	assert.Equal(t, []Interval{
		{Contig: "1", Start: 100, End: 140},
		{Contig: "1", Start: 160, End: 200},
	}, got)
}

func TestSubtractWholeInterval(t *testing.T) {
	iv := Interval{Contig: "1", Start: 100, End: 200}
	got := Subtract(iv, []Interval{{Contig: "1", Start: 0, End: 300}})
	assert.Empty(t, got)
}

func TestSubtractDifferentContigIgnored(t *testing.T) {
	iv := Interval{Contig: "1", Start: 100, End: 200}
	got := Subtract(iv, []Interval{{Contig: "2", Start: 100, End: 200}})
	assert.Equal(t, []Interval{iv}, got)
}

func TestROIMaskedLenAndPostmasked(t *testing.T) {
	roi, ok := NewROI(Interval{Contig: "1", Start: 100, End: 200}, "R1", UnknownStrand,
		[]Interval{{Contig: "1", Start: 140, End: 160}})
	assert.True(t, ok)
	assert.EqualValues(t, 20, roi.MaskedLen())
	assert.Equal(t, Interval{Contig: "1", Start: 100, End: 200}, roi.Postmasked())
}

func TestROIFullyMaskedDropped(t *testing.T) {
	_, ok := NewROI(Interval{Contig: "1", Start: 100, End: 200}, "R1", UnknownStrand,
		[]Interval{{Contig: "1", Start: 0, End: 300}})
	assert.False(t, ok)
}
