package refengine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssomyk/rnaedit/genome"
	"github.com/ssomyk/rnaedit/nuc"
)

func TestAutoRefInfer(t *testing.T) {
	sequenced := nuc.Counts{A: 1, C: 2, G: 3, T: 4}
	assembly := nuc.A

	cases := []struct {
		mincoverage uint32
		minfreq     float32
		want        nuc.Nucleotide
	}{
		{100, 0.0, assembly},
		{0, 1.0, assembly},
		{0, 0.41, assembly},
		{0, 0.0, nuc.T},
		{0, 0.4, nuc.T},
		{4, 0.4, nuc.T},
	}
	for _, c := range cases {
		a := AutoRef{MinCoverage: c.mincoverage, MinFreq: c.minfreq}
		assert.Equal(t, c.want, a.Infer(assembly, sequenced))
	}
}

func TestAutoRefSkipHyperediting(t *testing.T) {
	a2g := nuc.Counts{A: 1, C: 0, G: 99, T: 0}
	for _, c := range []struct {
		skip bool
		want nuc.Nucleotide
	}{{true, nuc.A}, {false, nuc.G}} {
		a := AutoRef{MinCoverage: 0, MinFreq: 0, SkipHyperediting: c.skip}
		assert.Equal(t, c.want, a.Infer(nuc.A, a2g))
	}

	t2c := nuc.Counts{A: 0, C: 3, G: 0, T: 1}
	for _, c := range []struct {
		skip bool
		want nuc.Nucleotide
	}{{true, nuc.T}, {false, nuc.C}} {
		a := AutoRef{MinCoverage: 0, MinFreq: 0, SkipHyperediting: c.skip}
		assert.Equal(t, c.want, a.Infer(nuc.T, t2c))
	}
}

type fakeFasta struct {
	bases []nuc.Nucleotide
}

func (f fakeFasta) Fetch(ctx context.Context, contig string, span genome.Interval) ([]nuc.Nucleotide, error) {
	return f.bases, nil
}

func TestAutoRefPredict(t *testing.T) {
	a := AutoRef{MinCoverage: 10, MinFreq: 1, Reader: fakeFasta{bases: []nuc.Nucleotide{nuc.G, nuc.G, nuc.A}}}
	sequenced := []nuc.Counts{{A: 1000}, {G: 30}, {}}
	span := genome.Interval{Contig: "chr1", Start: 100, End: 103}
	out, err := a.Predict(context.Background(), "chr1", span, sequenced)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, HomozygousCall(nuc.A), out[0])
	assert.Equal(t, HomozygousCall(nuc.G), out[1])
	assert.Equal(t, HomozygousCall(nuc.A), out[2])
}
