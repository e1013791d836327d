// Package pileup implements the pileup engine (spec component C6): it reads
// every record overlapping a workload's bin, applies the read/base filters
// and strand deduction, and accumulates observed bases into per-ROI (or,
// in site mode, whole-bin) nucleotide counters.
package pileup

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ssomyk/rnaedit/counter"
	"github.com/ssomyk/rnaedit/genome"
	"github.com/ssomyk/rnaedit/nuc"
	"github.com/ssomyk/rnaedit/read"
	"github.com/ssomyk/rnaedit/readfilter"
	"github.com/ssomyk/rnaedit/stranddeduce"
)

// ReadIterator yields Records overlapping a queried region. Implementations
// (BAM today) own their own file handles and must be Closed by the caller.
type ReadIterator interface {
	Next() bool
	Record() *read.Record
	Err() error
	Close() error
}

// Source produces a ReadIterator over a genomic region. bamsrc.File and
// bamsrc.MultiFile are the production implementations; tests supply fakes.
type Source interface {
	Reads(ctx context.Context, region genome.Interval) (ReadIterator, error)
}

// Result is the output of running a single workload through the engine. In
// ROI mode Counter is nil and ROICounter holds one StrandedCounter per ROI;
// in site mode (workload.ROIs empty) ROICounter is nil and Counter covers
// the whole bin.
type Result struct {
	Bin        genome.Interval
	ROICounter *counter.ROICounter
	Counter    *counter.StrandedCounter
	// Empty reports that no read overlapping the bin passed the read
	// filter: the runner may skip downstream stages for it without further
	// work.
	Empty bool
}

// Engine holds the (thread-shareable) predicates every worker applies.
type Engine struct {
	Filter  readfilter.Filter
	Deducer *stranddeduce.Deducer // nil means the library is unstranded
	Trim5   int
	Trim3   int
}

// Run drains every read overlapping workload.Bin from src and returns the
// accumulated counts.
func (e Engine) Run(ctx context.Context, workload genome.Workload, src Source) (*Result, error) {
	res := &Result{Bin: workload.Bin}
	if len(workload.ROIs) > 0 {
		res.ROICounter = counter.NewROICounter(workload.ROIs)
	} else {
		res.Counter = counter.NewStrandedCounter(workload.Bin)
	}

	it, err := src.Reads(ctx, workload.Bin)
	if err != nil {
		return nil, errors.Wrapf(err, "pileup: opening reads over %s", workload.Bin)
	}
	defer it.Close()

	seen := false
	for it.Next() {
		rec := it.Record()
		if !e.Filter.AcceptRead(rec) {
			continue
		}
		seen = true
		e.drain(rec, workload.Bin, res)
	}
	if err := it.Err(); err != nil {
		return nil, errors.Wrapf(err, "pileup: reading over %s", workload.Bin)
	}
	res.Empty = !seen
	return res, nil
}

// strandOf returns the transcribed strand to attribute rec's bases to.
func (e Engine) strandOf(rec *read.Record) genome.Strand {
	if e.Deducer == nil {
		return genome.UnknownStrand
	}
	return e.Deducer.Deduce(rec)
}

// seqWindow returns the admissible read-position window [min, max) after
// applying 5'/3' trims. A 3' trim on a reverse-strand read trims from the
// low end of the read coordinate, since the read's 5'/3' ends are swapped
// relative to its own coordinate system.
func (e Engine) seqWindow(rec *read.Record) (int, int) {
	n := len(rec.Seq)
	if rec.AlignedStrand == read.AlignedReverse {
		return e.Trim3, n - e.Trim5
	}
	return e.Trim5, n - e.Trim3
}

// drain walks rec's CIGAR, adding every accepted aligned base within bin to
// res's counter(s).
func (e Engine) drain(rec *read.Record, bin genome.Interval, res *Result) {
	strand := e.strandOf(rec)
	minSeq, maxSeq := e.seqWindow(rec)
	refPos := rec.Pos
	readPos := 0
	for _, el := range rec.Cigar {
		switch {
		case el.Op.ConsumesRef() && el.Op.ConsumesRead():
			for k := 0; k < el.Len; k++ {
				pos := refPos + genome.PosType(k)
				i := readPos + k
				if pos >= bin.Start && pos < bin.End && i >= minSeq && i < maxSeq && e.Filter.AcceptBase(rec, i) {
					n := nuc.FromByte(rec.Seq[i])
					if n != nuc.Unknown {
						e.add(res, strand, pos, n.Req())
					}
				}
			}
			refPos += genome.PosType(el.Len)
			readPos += el.Len
		case el.Op.ConsumesRef():
			refPos += genome.PosType(el.Len)
		case el.Op.ConsumesRead():
			readPos += el.Len
		}
	}
}

func (e Engine) add(res *Result, strand genome.Strand, pos genome.PosType, observed nuc.ReqNucleotide) {
	if res.ROICounter != nil {
		res.ROICounter.Add(strand, pos, observed)
		return
	}
	res.Counter.Add(strand, pos, observed)
}
