package bamsrc

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ssomyk/rnaedit/genome"
	"github.com/ssomyk/rnaedit/partition"
	"github.com/ssomyk/rnaedit/pileup"
	"github.com/ssomyk/rnaedit/read"
)

// MultiFile pools several indexed BAM inputs as a single pileup.Source, per
// spec §4.6: for each bin, every input file whose header contains the
// bin's contig contributes its overlapping records, in an unspecified
// cross-file interleaving (each file's own records stay in file order).
// Files missing the contig are silently skipped for that bin (§7, Contig
// mismatch).
type MultiFile struct {
	files []*File
}

// NewMultiFile pools files, which the caller continues to own (Close each
// individually when the run finishes).
func NewMultiFile(files []*File) *MultiFile {
	return &MultiFile{files: files}
}

// ContigLens returns the first file's (contig, length) pairs; callers
// should have already validated every input shares identical headers via
// partition.ValidateIdenticalHeaders.
func (m *MultiFile) ContigLens() []partition.ContigLen {
	if len(m.files) == 0 {
		return nil
	}
	return m.files[0].ContigLens()
}

// Reads implements pileup.Source, concatenating every file's overlapping
// records into one iterator.
func (m *MultiFile) Reads(ctx context.Context, region genome.Interval) (pileup.ReadIterator, error) {
	its := make([]pileup.ReadIterator, 0, len(m.files))
	for _, f := range m.files {
		if !f.HasContig(region.Contig) {
			continue
		}
		it, err := f.Reads(ctx, region)
		if err != nil {
			for _, opened := range its {
				opened.Close()
			}
			return nil, errors.Wrapf(err, "bamsrc: opening %s", region)
		}
		its = append(its, it)
	}
	return &multiIterator{its: its}, nil
}

// multiIterator drains each pooled iterator to exhaustion before moving to
// the next, so a single file's records never interleave with another's.
type multiIterator struct {
	its []pileup.ReadIterator
	idx int
	err error
}

func (m *multiIterator) Next() bool {
	for m.idx < len(m.its) {
		if m.its[m.idx].Next() {
			return true
		}
		if err := m.its[m.idx].Err(); err != nil {
			m.err = err
			return false
		}
		m.idx++
	}
	return false
}

func (m *multiIterator) Record() *read.Record { return m.its[m.idx].Record() }

func (m *multiIterator) Err() error { return m.err }

func (m *multiIterator) Close() error {
	var first error
	for _, it := range m.its {
		if err := it.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
