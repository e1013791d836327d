// Package refengine implements the reference engine (spec component C7): it
// predicts, per position, the nucleotide the assembly reference should be
// treated as having, either straight from a FASTA or corrected by known
// germline variants.
package refengine

import (
	"context"

	"github.com/ssomyk/rnaedit/genome"
	"github.com/ssomyk/rnaedit/nuc"
)

// PredNucleotide is a predicted reference call: either homozygous (a single
// nucleotide) or heterozygous (an unordered pair of called alleles).
type PredNucleotide struct {
	Homozygous bool
	Nuc        nuc.Nucleotide       // valid when Homozygous
	Het        [2]nuc.ReqNucleotide // valid when !Homozygous
}

// HomozygousCall builds a homozygous prediction.
func HomozygousCall(n nuc.Nucleotide) PredNucleotide {
	return PredNucleotide{Homozygous: true, Nuc: n}
}

// HeterozygousCall builds a heterozygous prediction.
func HeterozygousCall(a, b nuc.ReqNucleotide) PredNucleotide {
	return PredNucleotide{Homozygous: false, Het: [2]nuc.ReqNucleotide{a, b}}
}

// IsMismatch reports whether observed disagrees with every allele the
// prediction calls at this position (always true when a homozygous
// prediction is Unknown).
func (p PredNucleotide) IsMismatch(observed nuc.ReqNucleotide) bool {
	if p.Homozygous {
		return p.Nuc == nuc.Unknown || p.Nuc.Req() != observed
	}
	return p.Het[0] != observed && p.Het[1] != observed
}

// EffectiveRef collapses a prediction to the single Nucleotide the mismatch
// builder pairs against observed counts. Heterozygous calls collapse to
// Unknown, which nuc.Mismatches treats as "count against every reference
// row": a heterozygous site is a mismatch against whichever allele wasn't
// observed, and this pipeline has no ref/row slot for a called pair.
func (p PredNucleotide) EffectiveRef() nuc.Nucleotide {
	if p.Homozygous {
		return p.Nuc
	}
	return nuc.Unknown
}

// FastaReader supplies raw reference bases for a span. Implementations may
// cache or memory-map the underlying file; Fetch must be safe to call
// repeatedly with adjacent, non-overlapping spans from a single worker.
type FastaReader interface {
	Fetch(ctx context.Context, contig string, span genome.Interval) ([]nuc.Nucleotide, error)
}

// Engine predicts reference calls for a contiguous span, given the observed
// per-position nucleotide counts over that same span.
type Engine interface {
	Predict(ctx context.Context, contig string, span genome.Interval, sequenced []nuc.Counts) ([]PredNucleotide, error)
	// Reference returns the raw assembly bases over span, unmodified by any
	// correction. The mismatch builder reports this as refnuc, distinct
	// from the (possibly corrected) prednuc Predict returns.
	Reference(ctx context.Context, contig string, span genome.Interval) ([]nuc.Nucleotide, error)
}
