package counter

import (
	"github.com/biogo/store/interval"

	"github.com/ssomyk/rnaedit/genome"
	"github.com/ssomyk/rnaedit/nuc"
)

// roiNode adapts a genome.ROI into the interval.IntTree node interface. The
// tree is built once per workload bin, so all nodes share a contig and only
// the offset range matters.
type roiNode struct {
	id  uintptr
	rng interval.IntRange
}

func (n roiNode) ID() uintptr                      { return n.id }
func (n roiNode) Range() interval.IntRange         { return n.rng }
func (n roiNode) Overlap(b interval.IntRange) bool { return n.rng.Start < b.End && b.Start < n.rng.End }

// ROICounter indexes a bin's ROIs by an interval tree over their postmasked
// ranges and gives each its own StrandedCounter, so the pileup engine can
// locate and update every ROI a read position falls within in O(log n + k).
type ROICounter struct {
	rois     []genome.ROI
	counters []*StrandedCounter
	tree     interval.IntTree
}

// NewROICounter builds one StrandedCounter per ROI, sized to its postmasked
// range, and indexes them for point lookup.
func NewROICounter(rois []genome.ROI) *ROICounter {
	rc := &ROICounter{
		rois:     rois,
		counters: make([]*StrandedCounter, len(rois)),
	}
	for i, r := range rois {
		span := r.Postmasked()
		rc.counters[i] = NewStrandedCounter(span)
		node := roiNode{
			id:  uintptr(i),
			rng: interval.IntRange{Start: int(span.Start), End: int(span.End)},
		}
		if err := rc.tree.Insert(node, true); err != nil {
			panic("counter: duplicate ROI interval: " + err.Error())
		}
	}
	rc.tree.AdjustRanges()
	return rc
}

// ROIs returns the backing ROI slice, in the same order as Counters.
func (rc *ROICounter) ROIs() []genome.ROI {
	return rc.rois
}

// Counters returns the per-ROI StrandedCounters, in ROI order.
func (rc *ROICounter) Counters() []*StrandedCounter {
	return rc.counters
}

// At returns the indices into ROIs/Counters of every ROI whose postmasked
// range contains pos.
func (rc *ROICounter) At(pos genome.PosType) []int {
	hit := roiNode{rng: interval.IntRange{Start: int(pos), End: int(pos) + 1}}
	matches := rc.tree.Get(hit)
	if len(matches) == 0 {
		return nil
	}
	idx := make([]int, len(matches))
	for i, m := range matches {
		idx[i] = int(m.(roiNode).ID())
	}
	return idx
}

// Add records one observed base at pos on the given strand in every ROI
// that covers it.
func (rc *ROICounter) Add(strand genome.Strand, pos genome.PosType, observed nuc.ReqNucleotide) {
	for _, i := range rc.At(pos) {
		rc.counters[i].Add(strand, pos, observed)
	}
}
