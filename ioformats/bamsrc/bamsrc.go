// Package bamsrc adapts indexed BAM files to the pileup.Source contract:
// it owns one *os.File/*bam.Reader/*bam.Index triple per input, seeks to a
// queried region via the BAI index, and converts biogo/hts sam.Records to
// the pipeline's own read.Record vocabulary.
package bamsrc

import (
	"context"
	"os"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
	"github.com/pkg/errors"

	"github.com/ssomyk/rnaedit/genome"
	"github.com/ssomyk/rnaedit/partition"
	"github.com/ssomyk/rnaedit/pileup"
	"github.com/ssomyk/rnaedit/read"
)

// File is one opened, indexed BAM input. One File is built per (worker,
// input path) pair; it is never shared across worker goroutines.
type File struct {
	path   string
	f      *os.File
	reader *bam.Reader
	index  *bam.Index
}

// Open opens path and path+".bai" (or the explicit indexPath if non-empty).
func Open(path, indexPath string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "bamsrc: opening %s", path)
	}
	reader, err := bam.NewReader(f, 0)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "bamsrc: reading BAM header of %s", path)
	}
	if indexPath == "" {
		indexPath = path + ".bai"
	}
	ir, err := os.Open(indexPath)
	if err != nil {
		reader.Close()
		f.Close()
		return nil, errors.Wrapf(err, "bamsrc: opening index %s", indexPath)
	}
	index, err := bam.ReadIndex(ir)
	ir.Close()
	if err != nil {
		reader.Close()
		f.Close()
		return nil, errors.Wrapf(err, "bamsrc: reading index %s", indexPath)
	}
	return &File{path: path, f: f, reader: reader, index: index}, nil
}

// Close releases the BAM reader and its file handle.
func (bf *File) Close() error {
	if err := bf.reader.Close(); err != nil {
		bf.f.Close()
		return errors.Wrapf(err, "bamsrc: closing %s", bf.path)
	}
	return bf.f.Close()
}

// HasContig reports whether the BAM header lists contig.
func (bf *File) HasContig(contig string) bool {
	_, ok := findRef(bf.reader.Header().Refs(), contig)
	return ok
}

// ContigLens returns every (contig, length) pair in the BAM header, for
// site-mode header validation and whole-genome partitioning.
func (bf *File) ContigLens() []partition.ContigLen {
	refs := bf.reader.Header().Refs()
	out := make([]partition.ContigLen, len(refs))
	for i, r := range refs {
		out[i] = partition.ContigLen{Contig: r.Name(), Length: genome.PosType(r.Len())}
	}
	return out
}

func findRef(refs []*sam.Reference, name string) (*sam.Reference, bool) {
	for _, r := range refs {
		if r.Name() == name {
			return r, true
		}
	}
	return nil, false
}

// iterator adapts bam.Iterator to pileup.ReadIterator, converting records
// lazily as the pipeline pulls them.
type iterator struct {
	it  *bam.Iterator
	cur read.Record
	err error
}

// Reads implements pileup.Source: seeks the BAM to region via its BAI index
// and returns an iterator over every overlapping record. If the contig
// isn't in this file's header, it returns an iterator that immediately
// reports no records (callers skip this file for the bin, per §4.6/§7).
func (bf *File) Reads(ctx context.Context, region genome.Interval) (pileup.ReadIterator, error) {
	ref, ok := findRef(bf.reader.Header().Refs(), region.Contig)
	if !ok {
		return &emptyIterator{}, nil
	}
	chunks, err := bf.index.Chunks(ref, int(region.Start), int(region.End))
	if err != nil {
		return nil, errors.Wrapf(err, "bamsrc: indexing chunks for %s", region)
	}
	if len(chunks) == 0 {
		return &emptyIterator{}, nil
	}
	it, err := bam.NewIterator(bf.reader, chunks)
	if err != nil {
		return nil, errors.Wrapf(err, "bamsrc: seeking to %s", region)
	}
	return &iterator{it: it}, nil
}

func (i *iterator) Next() bool {
	if !i.it.Next() {
		return false
	}
	rec := i.it.Record()
	conv, err := convert(rec)
	if err != nil {
		i.err = err
		return false
	}
	i.cur = conv
	return true
}

func (i *iterator) Record() *read.Record { return &i.cur }

func (i *iterator) Err() error {
	if i.err != nil {
		return i.err
	}
	return i.it.Error()
}

func (i *iterator) Close() error { return i.it.Close() }

// emptyIterator is returned when a bin's contig isn't present in this
// file's header: the pileup engine treats it exactly like an exhausted
// iterator that never yielded a record.
type emptyIterator struct{}

func (emptyIterator) Next() bool           { return false }
func (emptyIterator) Record() *read.Record { return nil }
func (emptyIterator) Err() error           { return nil }
func (emptyIterator) Close() error         { return nil }

// convert maps a biogo/hts sam.Record onto the pipeline's read.Record,
// translating CIGAR ops and expanding the packed sequence.
func convert(rec *sam.Record) (read.Record, error) {
	cigar, err := convertCigar(rec.Cigar)
	if err != nil {
		return read.Record{}, err
	}
	strand := read.AlignedForward
	if rec.Flags&sam.Reverse != 0 {
		strand = read.AlignedReverse
	}
	return read.Record{
		Name:          rec.Name,
		Contig:        rec.Ref.Name(),
		Pos:           genome.PosType(rec.Pos),
		Cigar:         cigar,
		Seq:           rec.Seq.Expand(),
		Qual:          rec.Qual,
		MapQ:          rec.MapQ,
		Flags:         uint16(rec.Flags),
		IsFirstInPair: rec.Flags&sam.Read1 != 0,
		AlignedStrand: strand,
	}, nil
}

func convertCigar(cigar sam.Cigar) ([]read.CigarElem, error) {
	out := make([]read.CigarElem, len(cigar))
	for i, op := range cigar {
		converted, err := convertOp(op.Type())
		if err != nil {
			return nil, err
		}
		out[i] = read.CigarElem{Op: converted, Len: op.Len()}
	}
	return out, nil
}

func convertOp(t sam.CigarOpType) (read.CigarOp, error) {
	switch t {
	case sam.CigarMatch:
		return read.CigarMatch, nil
	case sam.CigarEqual:
		return read.CigarEqual, nil
	case sam.CigarMismatch:
		return read.CigarDiff, nil
	case sam.CigarInsertion:
		return read.CigarIns, nil
	case sam.CigarDeletion:
		return read.CigarDel, nil
	case sam.CigarSkipped:
		return read.CigarRefSkip, nil
	case sam.CigarSoftClipped:
		return read.CigarSoftClip, nil
	case sam.CigarHardClipped:
		return read.CigarHardClip, nil
	case sam.CigarPadded:
		return read.CigarPad, nil
	default:
		return 0, errors.Errorf("bamsrc: unsupported CIGAR operation %v", t)
	}
}
