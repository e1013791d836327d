package stranding

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ssomyk/rnaedit/genome"
)

type row struct {
	strand genome.Strand
	fixed  genome.Strand // what a fakeAlgo should resolve this row to
}

type fakeAlgo struct{}

func (fakeAlgo) Predict(r *row) genome.Strand { return r.fixed }

var acc = Accessor[row]{
	Get: func(r *row) genome.Strand { return r.strand },
	Set: func(r *row, s genome.Strand) { r.strand = s },
}

func TestEngineApplyResolvesUnknownOnly(t *testing.T) {
	rows := []row{
		{strand: genome.UnknownStrand, fixed: genome.Forward},
		{strand: genome.Reverse, fixed: genome.Forward}, // already stranded: untouched
	}
	e := Engine[row]{Algorithms: []Algorithm[row]{fakeAlgo{}}}
	e.Apply(rows, acc)

	assert.Equal(t, genome.Forward, rows[0].strand)
	assert.Equal(t, genome.Reverse, rows[1].strand)
}

type sequenceAlgo struct {
	results []genome.Strand
	i       int
}

func (s *sequenceAlgo) Predict(r *row) genome.Strand {
	v := s.results[s.i]
	s.i++
	return v
}

func TestEngineApplyStopsAtFirstResolvingAlgorithm(t *testing.T) {
	rows := []row{{strand: genome.UnknownStrand}}
	first := &sequenceAlgo{results: []genome.Strand{genome.UnknownStrand}}
	second := &sequenceAlgo{results: []genome.Strand{genome.Reverse}}
	e := Engine[row]{Algorithms: []Algorithm[row]{first, second}}
	e.Apply(rows, acc)

	assert.Equal(t, genome.Reverse, rows[0].strand)
}
