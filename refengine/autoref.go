package refengine

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ssomyk/rnaedit/genome"
	"github.com/ssomyk/rnaedit/nuc"
)

// AutoRef infers the reference call from the sequenced coverage itself: when
// the most frequent observed base clears MinCoverage and MinFreq, it
// replaces the assembly base, unless SkipHyperediting suppresses exactly the
// A->G / T->C substitutions this pipeline exists to detect.
type AutoRef struct {
	MinCoverage      uint32
	MinFreq          float32
	SkipHyperediting bool
	Reader           FastaReader
}

// Infer is the per-position decision rule, exposed separately from Predict
// for unit testing.
func (a AutoRef) Infer(assembly nuc.Nucleotide, sequenced nuc.Counts) nuc.Nucleotide {
	coverage := sequenced.Coverage()
	if coverage < a.MinCoverage {
		return assembly
	}
	observed, count := sequenced.MostFreq()
	if float32(count)/float32(coverage) < a.MinFreq {
		return assembly
	}
	if a.SkipHyperediting && isHyperediting(assembly, observed) {
		return assembly
	}
	return observed.Nuc()
}

// isHyperediting reports whether calling observed in place of assembly would
// be exactly the A->G or T->C substitution this pipeline is built to find.
func isHyperediting(assembly nuc.Nucleotide, observed nuc.ReqNucleotide) bool {
	return (assembly == nuc.A && observed == nuc.ReqG) || (assembly == nuc.T && observed == nuc.ReqC)
}

// Reference returns the raw assembly bases, with no heuristic applied.
func (a AutoRef) Reference(ctx context.Context, contig string, span genome.Interval) ([]nuc.Nucleotide, error) {
	assembly, err := a.Reader.Fetch(ctx, contig, span)
	if err != nil {
		return nil, errors.Wrapf(err, "refengine: fetching assembly over %s", span)
	}
	return assembly, nil
}

// Predict fetches the assembly bases over span and infers a call at each
// position from the paired sequenced counts.
func (a AutoRef) Predict(ctx context.Context, contig string, span genome.Interval, sequenced []nuc.Counts) ([]PredNucleotide, error) {
	assembly, err := a.Reader.Fetch(ctx, contig, span)
	if err != nil {
		return nil, errors.Wrapf(err, "refengine: fetching assembly over %s", span)
	}
	if len(assembly) != len(sequenced) {
		return nil, errors.Errorf("refengine: assembly length %d != sequenced length %d", len(assembly), len(sequenced))
	}
	out := make([]PredNucleotide, len(assembly))
	for i, a2 := range assembly {
		out[i] = HomozygousCall(a.Infer(a2, sequenced[i]))
	}
	return out, nil
}
