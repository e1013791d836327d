// Package partition implements the workload partitioner (spec component
// C1): splitting either a set of regions of interest, or a whole genome
// binned by a fixed size, into the contiguous Workloads that the runner
// hands out to worker threads one at a time.
package partition

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/ssomyk/rnaedit/genome"
)

// RawROI is an unmasked region of interest as read from a BED file, before
// excluded-region subtraction.
type RawROI struct {
	Interval genome.Interval
	Name     string
	Strand   genome.Strand
}

// ROIs partitions rois into Workloads bounded by maxBinSize, after
// subtracting excluded from every ROI's range (§4.1, ROI mode).
//
// Algorithm: subtract excluded regions per ROI, dropping ROIs left empty;
// sort by (contig, start, descending width) so the widest ROI at a given
// start seeds its bin; then greedily absorb subsequent ROIs whose end falls
// within the seeded bin, shrinking the bin back down to the widest observed
// ROI end before moving on to the next bin.
func ROIs(rois []RawROI, excluded []genome.Interval, maxBinSize genome.PosType) ([]genome.Workload, error) {
	if maxBinSize <= 0 {
		return nil, errors.New("partition: maxBinSize must be > 0")
	}

	built := make([]genome.ROI, 0, len(rois))
	for _, raw := range rois {
		if raw.Interval.End <= raw.Interval.Start {
			return nil, errors.Errorf("partition: malformed ROI %s:%d-%d (end <= start)",
				raw.Interval.Contig, raw.Interval.Start, raw.Interval.End)
		}
		roi, ok := genome.NewROI(raw.Interval, raw.Name, raw.Strand, excluded)
		if !ok {
			continue
		}
		built = append(built, roi)
	}
	if len(built) == 0 {
		return nil, nil
	}

	sort.SliceStable(built, func(i, j int) bool {
		a, b := built[i].Premasked, built[j].Premasked
		if a.Contig != b.Contig {
			return a.Contig < b.Contig
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		// Widest ROI at a given start wins the bin seed.
		return a.Len() > b.Len()
	})

	var workloads []genome.Workload
	bin := seedBin(built[0].Premasked, maxBinSize)
	buffer := []genome.ROI{built[0]}
	maxEnd := built[0].Premasked.End

	flush := func() {
		if maxEnd < bin.End {
			bin.End = maxEnd
		}
		workloads = append(workloads, genome.Workload{Bin: bin, ROIs: buffer})
	}

	for _, roi := range built[1:] {
		if roi.Premasked.Contig != bin.Contig || roi.Premasked.End > bin.End {
			flush()
			bin = seedBin(roi.Premasked, maxBinSize)
			buffer = []genome.ROI{roi}
			maxEnd = roi.Premasked.End
			continue
		}
		if roi.Premasked.End > maxEnd {
			maxEnd = roi.Premasked.End
		}
		buffer = append(buffer, roi)
	}
	flush()

	return workloads, nil
}

func seedBin(iv genome.Interval, maxBinSize genome.PosType) genome.Interval {
	end := iv.End
	if grown := iv.Start + maxBinSize; grown > end {
		end = grown
	}
	return genome.Interval{Contig: iv.Contig, Start: iv.Start, End: end}
}

// ContigLen names a contig and its length, as read from an aligned-reads
// file's header.
type ContigLen struct {
	Contig string
	Length genome.PosType
}

// Sites partitions the genome described by contigs into consecutive,
// binsize-wide Workloads (§4.1, site mode). If excluded is non-empty, each
// bin is additionally subtracted against it, which may fragment a bin into
// several narrower Workloads (or drop it entirely).
func Sites(contigs []ContigLen, excluded []genome.Interval, binSize genome.PosType) ([]genome.Workload, error) {
	if binSize <= 0 {
		return nil, errors.New("partition: binSize must be > 0")
	}

	var workloads []genome.Workload
	for _, c := range contigs {
		if c.Length < 0 {
			return nil, errors.Errorf("partition: negative length for contig %s", c.Contig)
		}
		for start := genome.PosType(0); start < c.Length; start += binSize {
			end := start + binSize
			if end > c.Length {
				end = c.Length
			}
			bin := genome.Interval{Contig: c.Contig, Start: start, End: end}
			if len(excluded) == 0 {
				workloads = append(workloads, genome.Workload{Bin: bin})
				continue
			}
			for _, sub := range genome.Subtract(bin, excluded) {
				workloads = append(workloads, genome.Workload{Bin: sub})
			}
		}
	}
	return workloads, nil
}

// ValidateIdenticalHeaders checks that every file in headers lists the same
// (contig, length) set, regardless of order, as required before binning in
// site mode. It returns an error naming the first mismatch found.
func ValidateIdenticalHeaders(headers [][]ContigLen) error {
	if len(headers) < 2 {
		return nil
	}
	reference := toLenMap(headers[0])
	for i, h := range headers[1:] {
		other := toLenMap(h)
		if len(other) != len(reference) {
			return errors.Errorf("partition: input file %d has %d contigs, input file 0 has %d", i+1, len(other), len(reference))
		}
		for contig, length := range reference {
			otherLength, ok := other[contig]
			if !ok {
				return errors.Errorf("partition: input file %d is missing contig %s present in input file 0", i+1, contig)
			}
			if otherLength != length {
				return errors.Errorf("partition: input file %d has contig %s with length %d, input file 0 has length %d",
					i+1, contig, otherLength, length)
			}
		}
	}
	return nil
}

func toLenMap(cls []ContigLen) map[string]genome.PosType {
	m := make(map[string]genome.PosType, len(cls))
	for _, c := range cls {
		m[c.Contig] = c.Length
	}
	return m
}
