package refengine

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/ssomyk/rnaedit/genome"
	"github.com/ssomyk/rnaedit/nuc"
)

// Variant is one known germline site: either homozygous-alt or heterozygous
// across the two called alleles.
type Variant struct {
	Pos        genome.PosType
	Homozygous bool
	Alt        nuc.ReqNucleotide    // valid when Homozygous
	Het        [2]nuc.ReqNucleotide // valid when !Homozygous
}

// VCFCorrectedReference predicts the assembly base everywhere, except at
// known variant sites where it substitutes the called genotype. Sequenced
// coverage is ignored entirely, unlike AutoRef.
type VCFCorrectedReference struct {
	Reader   FastaReader
	variants map[string][]Variant // sorted by Pos per contig
}

// NewVCFCorrectedReference indexes variants by contig, sorting each
// contig's sites by position for binary search in Predict.
func NewVCFCorrectedReference(reader FastaReader, byContig map[string][]Variant) *VCFCorrectedReference {
	v := &VCFCorrectedReference{Reader: reader, variants: make(map[string][]Variant, len(byContig))}
	for contig, sites := range byContig {
		cp := append([]Variant(nil), sites...)
		sort.Slice(cp, func(i, j int) bool { return cp[i].Pos < cp[j].Pos })
		v.variants[contig] = cp
	}
	return v
}

// Reference returns the raw assembly bases, unaffected by known variants.
func (v *VCFCorrectedReference) Reference(ctx context.Context, contig string, span genome.Interval) ([]nuc.Nucleotide, error) {
	assembly, err := v.Reader.Fetch(ctx, contig, span)
	if err != nil {
		return nil, errors.Wrapf(err, "refengine: fetching assembly over %s", span)
	}
	return assembly, nil
}

// Predict fetches the assembly over span and overrides it with any known
// variant genotype found within the span.
func (v *VCFCorrectedReference) Predict(ctx context.Context, contig string, span genome.Interval, sequenced []nuc.Counts) ([]PredNucleotide, error) {
	assembly, err := v.Reader.Fetch(ctx, contig, span)
	if err != nil {
		return nil, errors.Wrapf(err, "refengine: fetching assembly over %s", span)
	}
	out := make([]PredNucleotide, len(assembly))
	for i, n := range assembly {
		out[i] = HomozygousCall(n)
	}

	sites := v.variants[contig]
	lo := sort.Search(len(sites), func(i int) bool { return sites[i].Pos >= span.Start })
	for _, s := range sites[lo:] {
		if s.Pos >= span.End {
			break
		}
		idx := s.Pos - span.Start
		if s.Homozygous {
			out[idx] = HomozygousCall(s.Alt.Nuc())
		} else {
			out[idx] = HeterozygousCall(s.Het[0], s.Het[1])
		}
	}
	return out, nil
}
