package counter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ssomyk/rnaedit/genome"
	"github.com/ssomyk/rnaedit/nuc"
)

func TestBaseCounterAddAndAt(t *testing.T) {
	c := NewBaseCounter(genome.Interval{Contig: "1", Start: 100, End: 110})
	c.Add(100, nuc.ReqA)
	c.Add(100, nuc.ReqA)
	c.Add(100, nuc.ReqG)
	c.Add(109, nuc.ReqT)

	assert.Equal(t, uint32(2), c.At(100).A)
	assert.Equal(t, uint32(1), c.At(100).G)
	assert.Equal(t, uint32(1), c.At(109).T)
	assert.Equal(t, nuc.Counts{}, c.At(105))
}

func TestBaseCounterAddOutOfSpanIgnored(t *testing.T) {
	c := NewBaseCounter(genome.Interval{Contig: "1", Start: 100, End: 110})
	c.Add(99, nuc.ReqA)
	c.Add(110, nuc.ReqA)
	assert.Equal(t, nuc.Counts{}, c.At(99))
	assert.Equal(t, nuc.Counts{}, c.At(110))
}
