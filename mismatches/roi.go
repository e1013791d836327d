package mismatches

import (
	"context"

	"github.com/ssomyk/rnaedit/counter"
	"github.com/ssomyk/rnaedit/genome"
	"github.com/ssomyk/rnaedit/nuc"
	"github.com/ssomyk/rnaedit/refengine"
)

// ROIRow is one ROI's mismatch summary on one transcribed strand.
type ROIRow struct {
	ROI        genome.ROI
	Strand     genome.Strand
	PredHist   nuc.Counts
	Mismatches nuc.Mismatches
}

// ROIRetainer reports whether an ROI row must bypass every filter, keyed by
// (contig, range, annotated-strand, name) per the spec's retain contract.
type ROIRetainer interface {
	Retain(contig string, roi genome.ROI, strand genome.Strand) bool
}

// NoRetainer retains nothing; it implements ROIRetainer.
type NoRetainer struct{}

// Retain implements ROIRetainer.
func (NoRetainer) Retain(string, genome.ROI, genome.Strand) bool { return false }

// NoSiteRetainer retains nothing; it implements SiteRetainer.
type NoSiteRetainer struct{}

// Retain implements SiteRetainer.
func (NoSiteRetainer) Retain(string, genome.PosType) bool { return false }

// BuildROIRows predicts the reference over each ROI's postmasked span, pairs
// it position-by-position against the counted bases in every non-empty
// strand slot, and partitions the resulting rows via retainer/prefilter.
func BuildROIRows(ctx context.Context, contig string, rc *counter.ROICounter, refEngine refengine.Engine, retainer ROIRetainer, prefilter *ByMismatches) (*Context[ROIRow], error) {
	out := &Context[ROIRow]{}
	for i, roi := range rc.ROIs() {
		sc := rc.Counters()[i]
		span := roi.Postmasked()

		var buildErr error
		sc.Each(func(strand genome.Strand, bc *counter.BaseCounter) {
			if buildErr != nil {
				return
			}
			counts := bc.Counts()
			if !anyCoverage(counts) {
				return
			}
			predicted, err := refEngine.Predict(ctx, contig, span, counts)
			if err != nil {
				buildErr = err
				return
			}
			row := ROIRow{ROI: roi, Strand: strand}
			for _, sub := range roi.Subintervals {
				for pos := sub.Start; pos < sub.End; pos++ {
					j := pos - span.Start
					ref := predicted[j].EffectiveRef()
					row.PredHist = incPredHist(row.PredHist, ref)
					row.Mismatches.AddCounts(ref, counts[j])
				}
			}
			coverage := row.Mismatches.Coverage()
			total := row.Mismatches.TotalMismatches()
			place(out, row, retainer.Retain(contig, roi, roi.AnnotatedStrand),
				prefilter == nil || prefilter.Accept(coverage, total))
		})
		if buildErr != nil {
			return nil, buildErr
		}
	}
	return out, nil
}

func anyCoverage(counts []nuc.Counts) bool {
	for _, c := range counts {
		if c.Coverage() > 0 {
			return true
		}
	}
	return false
}

// incPredHist increments the position counter for a homozygous predicted
// base; Unknown predictions (including collapsed heterozygous calls) don't
// contribute to the #A/#T/#G/#C histogram.
func incPredHist(hist nuc.Counts, ref nuc.Nucleotide) nuc.Counts {
	if ref == nuc.Unknown {
		return hist
	}
	hist.Inc(ref.Req())
	return hist
}
