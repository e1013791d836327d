package output

import (
	"github.com/biogo/store/interval"

	"github.com/ssomyk/rnaedit/genome"
	"github.com/ssomyk/rnaedit/ioformats/bed"
)

// retainNode adapts one force-retain BED record into the interval.IntTree
// node interface, the same adapter shape as counter.roiNode.
type retainNode struct {
	id  uintptr
	rng interval.IntRange
}

func (n retainNode) ID() uintptr                      { return n.id }
func (n retainNode) Range() interval.IntRange         { return n.rng }
func (n retainNode) Overlap(b interval.IntRange) bool { return n.rng.Start < b.End && b.Start < n.rng.End }

type retainRecord struct {
	span   genome.Interval
	name   string
	strand genome.Strand
}

// BEDRetainer implements both mismatches.ROIRetainer and
// mismatches.SiteRetainer over a force-retain BED file: every row whose
// range intersects a loaded record bypasses the coverage/mismatch
// prefilter regardless of its own depth, per spec §4.8's retain contract.
type BEDRetainer struct {
	byContig map[string]*contigTree
}

type contigTree struct {
	records []retainRecord
	tree    interval.IntTree
}

// NewBEDRetainer indexes recs (as loaded by ioformats/bed) for point and
// range containment lookup, one interval tree per contig.
func NewBEDRetainer(recs []bed.Record) *BEDRetainer {
	r := &BEDRetainer{byContig: make(map[string]*contigTree)}
	for _, rec := range recs {
		ct, ok := r.byContig[rec.Interval.Contig]
		if !ok {
			ct = &contigTree{}
			r.byContig[rec.Interval.Contig] = ct
		}
		id := uintptr(len(ct.records))
		ct.records = append(ct.records, retainRecord{span: rec.Interval, name: rec.Name, strand: rec.Strand})
		node := retainNode{id: id, rng: interval.IntRange{Start: int(rec.Interval.Start), End: int(rec.Interval.End)}}
		if err := ct.tree.Insert(node, true); err != nil {
			panic("output: duplicate retain interval: " + err.Error())
		}
	}
	for _, ct := range r.byContig {
		ct.tree.AdjustRanges()
	}
	return r
}

// Retain implements mismatches.ROIRetainer: an ROI is retained if any
// loaded record shares its contig, overlaps its premasked range, and
// (when the record carries a strand) agrees with the given strand, which
// the mismatch builder passes as the ROI's annotated strand. Name is
// matched when the record supplies one.
func (r *BEDRetainer) Retain(contig string, roi genome.ROI, strand genome.Strand) bool {
	ct, ok := r.byContig[contig]
	if !ok {
		return false
	}
	span := roi.Premasked
	hits := ct.matches(span.Start, span.End)
	for _, rec := range hits {
		if rec.strand != genome.UnknownStrand && rec.strand != strand {
			continue
		}
		if rec.name != "" && rec.name != "NA" && rec.name != roi.Name {
			continue
		}
		return true
	}
	return false
}

// RetainSite implements mismatches.SiteRetainer: a position is retained if
// it falls within any loaded record's range on the matching contig.
func (r *BEDRetainer) RetainSite(contig string, pos genome.PosType) bool {
	ct, ok := r.byContig[contig]
	if !ok {
		return false
	}
	return len(ct.matches(pos, pos+1)) > 0
}

func (ct *contigTree) matches(start, end genome.PosType) []retainRecord {
	hit := retainNode{rng: interval.IntRange{Start: int(start), End: int(end)}}
	raw := ct.tree.Get(hit)
	if len(raw) == 0 {
		return nil
	}
	out := make([]retainRecord, len(raw))
	for i, m := range raw {
		out[i] = ct.records[m.(retainNode).ID()]
	}
	return out
}

// SiteRetainerAdapter adapts BEDRetainer's RetainSite method to the
// mismatches.SiteRetainer interface, since BEDRetainer.Retain already
// serves mismatches.ROIRetainer with a different signature.
type SiteRetainerAdapter struct {
	*BEDRetainer
}

// Retain implements mismatches.SiteRetainer.
func (a SiteRetainerAdapter) Retain(contig string, pos genome.PosType) bool {
	return a.RetainSite(contig, pos)
}
