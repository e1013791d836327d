package mismatches

import (
	"context"

	"github.com/ssomyk/rnaedit/counter"
	"github.com/ssomyk/rnaedit/genome"
	"github.com/ssomyk/rnaedit/nuc"
	"github.com/ssomyk/rnaedit/refengine"
)

// SiteRow is one genomic position's mismatch summary on one transcribed
// strand.
type SiteRow struct {
	Contig  string
	Pos     genome.PosType
	Strand  genome.Strand
	RefNuc  nuc.Nucleotide
	PredNuc nuc.Nucleotide
	Seq     nuc.Counts
}

// Coverage is the total observed depth at this site.
func (r SiteRow) Coverage() uint32 {
	return r.Seq.Coverage()
}

// MismatchCount is the number of observed bases disagreeing with PredNuc.
func (r SiteRow) MismatchCount() uint32 {
	return r.Seq.Mismatches(r.PredNuc)
}

// SiteRetainer reports whether a position must bypass every filter.
type SiteRetainer interface {
	Retain(contig string, pos genome.PosType) bool
}

// BuildSiteRows predicts the reference across the whole bin and pairs it
// position-by-position against every strand's counted bases.
func BuildSiteRows(ctx context.Context, contig string, sc *counter.StrandedCounter, refEngine refengine.Engine, retainer SiteRetainer, prefilter *ByMismatches) (*Context[SiteRow], error) {
	out := &Context[SiteRow]{}
	span := sc.Span()

	assembly, predictedByStrand, err := predictPerStrand(ctx, contig, span, sc, refEngine)
	if err != nil {
		return nil, err
	}

	sc.Each(func(strand genome.Strand, bc *counter.BaseCounter) {
		predicted := predictedByStrand[strand]
		counts := bc.Counts()
		for j, c := range counts {
			if c.Coverage() == 0 {
				continue
			}
			pos := span.Start + genome.PosType(j)
			pred := predicted[j].EffectiveRef()
			row := SiteRow{Contig: contig, Pos: pos, Strand: strand, RefNuc: assembly[j], PredNuc: pred, Seq: c}
			retained := retainer != nil && retainer.Retain(contig, pos)
			accept := prefilter == nil || prefilter.Accept(row.Coverage(), row.MismatchCount())
			place(out, row, retained, accept)
		}
	})
	return out, nil
}

// predictPerStrand fetches the raw assembly once and runs the reference
// engine once per strand, since autoref's correction depends on that
// strand's own sequenced counts.
func predictPerStrand(ctx context.Context, contig string, span genome.Interval, sc *counter.StrandedCounter, refEngine refengine.Engine) ([]nuc.Nucleotide, map[genome.Strand][]refengine.PredNucleotide, error) {
	assembly, err := refEngine.Reference(ctx, contig, span)
	if err != nil {
		return nil, nil, err
	}

	out := make(map[genome.Strand][]refengine.PredNucleotide, 3)
	var firstErr error
	sc.Each(func(strand genome.Strand, bc *counter.BaseCounter) {
		if firstErr != nil {
			return
		}
		predicted, err := refEngine.Predict(ctx, contig, span, bc.Counts())
		if err != nil {
			firstErr = err
			return
		}
		out[strand] = predicted
	})
	if firstErr != nil {
		return nil, nil, firstErr
	}
	return assembly, out, nil
}
