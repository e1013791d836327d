package refengine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssomyk/rnaedit/genome"
	"github.com/ssomyk/rnaedit/nuc"
)

func TestVCFCorrectedReferenceOverridesKnownSites(t *testing.T) {
	span := genome.Interval{Contig: "chr1", Start: 100, End: 105}
	reader := fakeFasta{bases: []nuc.Nucleotide{nuc.A, nuc.A, nuc.A, nuc.A, nuc.A}}
	v := NewVCFCorrectedReference(reader, map[string][]Variant{
		"chr1": {
			{Pos: 101, Homozygous: true, Alt: nuc.ReqG},
			{Pos: 103, Homozygous: false, Het: [2]nuc.ReqNucleotide{nuc.ReqA, nuc.ReqC}},
		},
	})

	sequenced := make([]nuc.Counts, 5)
	out, err := v.Predict(context.Background(), "chr1", span, sequenced)
	require.NoError(t, err)
	require.Len(t, out, 5)

	assert.Equal(t, HomozygousCall(nuc.A), out[0])
	assert.Equal(t, HomozygousCall(nuc.G), out[1])
	assert.Equal(t, HomozygousCall(nuc.A), out[2])
	assert.Equal(t, HeterozygousCall(nuc.ReqA, nuc.ReqC), out[3])
	assert.Equal(t, HomozygousCall(nuc.A), out[4])
}

func TestVCFCorrectedReferenceUnknownContigIsPlainAssembly(t *testing.T) {
	span := genome.Interval{Contig: "chr2", Start: 0, End: 2}
	reader := fakeFasta{bases: []nuc.Nucleotide{nuc.C, nuc.T}}
	v := NewVCFCorrectedReference(reader, nil)

	out, err := v.Predict(context.Background(), "chr2", span, make([]nuc.Counts, 2))
	require.NoError(t, err)
	assert.Equal(t, []PredNucleotide{HomozygousCall(nuc.C), HomozygousCall(nuc.T)}, out)
}

func TestPredNucleotideIsMismatch(t *testing.T) {
	homo := HomozygousCall(nuc.G)
	assert.False(t, homo.IsMismatch(nuc.ReqG))
	assert.True(t, homo.IsMismatch(nuc.ReqA))

	het := HeterozygousCall(nuc.ReqA, nuc.ReqG)
	assert.False(t, het.IsMismatch(nuc.ReqA))
	assert.False(t, het.IsMismatch(nuc.ReqG))
	assert.True(t, het.IsMismatch(nuc.ReqC))
}
