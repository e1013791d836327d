package stranding

import (
	"github.com/ssomyk/rnaedit/genome"
	"github.com/ssomyk/rnaedit/mismatches"
)

// ROIAccessor is the strand Accessor for mismatches.ROIRow.
var ROIAccessor = Accessor[mismatches.ROIRow]{
	Get: func(r *mismatches.ROIRow) genome.Strand { return r.Strand },
	Set: func(r *mismatches.ROIRow, s genome.Strand) { r.Strand = s },
}

// SiteAccessor is the strand Accessor for mismatches.SiteRow.
var SiteAccessor = Accessor[mismatches.SiteRow]{
	Get: func(r *mismatches.SiteRow) genome.Strand { return r.Strand },
	Set: func(r *mismatches.SiteRow, s genome.Strand) { r.Strand = s },
}

// ROIByAnnotation adapts ByAnnotation to Algorithm[ROIRow], querying over
// the ROI's postmasked range.
type ROIByAnnotation struct {
	ByAnnotation
}

func (a ROIByAnnotation) Predict(row *mismatches.ROIRow) genome.Strand {
	return a.StrandFor(row.ROI.Premasked.Contig, row.ROI.Postmasked())
}

// SiteByAnnotation adapts ByAnnotation to Algorithm[SiteRow], querying the
// single-base interval at the site's position.
type SiteByAnnotation struct {
	ByAnnotation
}

func (a SiteByAnnotation) Predict(row *mismatches.SiteRow) genome.Strand {
	span := genome.Interval{Contig: row.Contig, Start: row.Pos, End: row.Pos + 1}
	return a.StrandFor(row.Contig, span)
}
