package hooks

import (
	"math"

	"github.com/ssomyk/rnaedit/genome"
	"github.com/ssomyk/rnaedit/mismatches"
	"github.com/ssomyk/rnaedit/nuc"
)

// column names one X->Y ratio; the fixed reporting order matches the
// canonical editing-index table: the four diagonals first, then the
// remaining twelve off-diagonal pairs grouped by complementary pair.
type column struct {
	ref, obs nuc.ReqNucleotide
}

var editingIndexColumns = [16]column{
	{nuc.ReqA, nuc.ReqA}, {nuc.ReqT, nuc.ReqT}, {nuc.ReqG, nuc.ReqG}, {nuc.ReqC, nuc.ReqC},
	{nuc.ReqA, nuc.ReqT}, {nuc.ReqT, nuc.ReqA}, {nuc.ReqA, nuc.ReqG}, {nuc.ReqT, nuc.ReqC},
	{nuc.ReqA, nuc.ReqC}, {nuc.ReqT, nuc.ReqG}, {nuc.ReqG, nuc.ReqC}, {nuc.ReqC, nuc.ReqG},
	{nuc.ReqG, nuc.ReqA}, {nuc.ReqC, nuc.ReqT}, {nuc.ReqG, nuc.ReqT}, {nuc.ReqC, nuc.ReqA},
}

// ColumnNames reports the header for Ratios, in the same fixed order.
func ColumnNames() [16]string {
	return [16]string{
		"A->A", "T->T", "G->G", "C->C",
		"A->T", "T->A", "A->G", "T->C",
		"A->C", "T->G", "G->C", "C->G",
		"G->A", "C->T", "G->T", "C->A",
	}
}

// editingAccumulator folds a stream of (strand, Mismatches) observations
// into a single 4x4 table: Forward rows add directly, Reverse rows add
// their Complementary (so both strands' A->G / T->C signal lands in the
// same cells), Unknown rows are dropped.
type editingAccumulator struct {
	table nuc.Mismatches
}

func (e *editingAccumulator) add(strand genome.Strand, m nuc.Mismatches) {
	switch strand {
	case genome.Forward:
		e.table.AddFrom(m)
	case genome.Reverse:
		e.table.AddFrom(m.Complementary())
	}
}

func (e *editingAccumulator) combine(other *editingAccumulator) {
	e.table.AddFrom(other.table)
}

func rowFor(m nuc.Mismatches, ref nuc.ReqNucleotide) nuc.Counts {
	switch ref {
	case nuc.ReqA:
		return m.A
	case nuc.ReqC:
		return m.C
	case nuc.ReqG:
		return m.G
	default:
		return m.T
	}
}

func (e *editingAccumulator) ratios() [16]float64 {
	var out [16]float64
	for i, col := range editingIndexColumns {
		row := rowFor(e.table, col.ref)
		denom := row.Coverage()
		if denom == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = float64(row.At(col.obs)) / float64(denom)
	}
	return out
}

// ROIEditingIndex is the canonical editing-index statistic over ROI rows.
type ROIEditingIndex struct {
	acc editingAccumulator
}

func (e *ROIEditingIndex) Observe(row *mismatches.ROIRow) {
	e.acc.add(row.Strand, row.Mismatches)
}

// Combine merges another worker's partial index into e, for end-of-run
// statistic reduction across the runner's worker pool.
func (e *ROIEditingIndex) Combine(other *ROIEditingIndex) { e.acc.combine(&other.acc) }

// Ratios reports the 16 X->Y ratio columns, NaN where sum(X->*) is zero.
func (e *ROIEditingIndex) Ratios() [16]float64 { return e.acc.ratios() }

// SiteEditingIndex is the canonical editing-index statistic over site rows.
type SiteEditingIndex struct {
	acc editingAccumulator
}

func (e *SiteEditingIndex) Observe(row *mismatches.SiteRow) {
	var m nuc.Mismatches
	m.AddCounts(row.RefNuc, row.Seq)
	e.acc.add(row.Strand, m)
}

// Combine merges another worker's partial index into e.
func (e *SiteEditingIndex) Combine(other *SiteEditingIndex) { e.acc.combine(&other.acc) }

// Ratios reports the 16 X->Y ratio columns, NaN where sum(X->*) is zero.
func (e *SiteEditingIndex) Ratios() [16]float64 { return e.acc.ratios() }
