package stranding

import (
	"github.com/biogo/store/interval"

	"github.com/ssomyk/rnaedit/genome"
)

type annotFeature struct {
	id     uintptr
	rng    interval.IntRange
	strand genome.Strand
}

func (f annotFeature) ID() uintptr                      { return f.id }
func (f annotFeature) Range() interval.IntRange         { return f.rng }
func (f annotFeature) Overlap(b interval.IntRange) bool { return f.rng.Start < b.End && b.Start < f.rng.End }

// SegmentIndex indexes one GFF3 feature kind (exon, or gene) by contig,
// answering "what single strand, if any, is seen across every feature
// overlapping this range".
type SegmentIndex struct {
	trees map[string]*interval.IntTree
	n     map[string]int
}

// NewSegmentIndex builds an empty index; call Add for every feature, then
// Finalize once before any Lookup.
func NewSegmentIndex() *SegmentIndex {
	return &SegmentIndex{trees: make(map[string]*interval.IntTree), n: make(map[string]int)}
}

// Add indexes one feature's span and strand under its contig.
func (s *SegmentIndex) Add(contig string, span genome.Interval, strand genome.Strand) {
	t, ok := s.trees[contig]
	if !ok {
		t = &interval.IntTree{}
		s.trees[contig] = t
	}
	id := s.n[contig]
	s.n[contig] = id + 1
	f := annotFeature{id: uintptr(id), rng: interval.IntRange{Start: int(span.Start), End: int(span.End)}, strand: strand}
	if err := t.Insert(f, true); err != nil {
		panic("stranding: duplicate annotation interval: " + err.Error())
	}
}

// Finalize must run after every Add and before any Lookup.
func (s *SegmentIndex) Finalize() {
	for _, t := range s.trees {
		t.AdjustRanges()
	}
}

// Lookup returns the single strand seen (after deduplication) across every
// feature overlapping span, or UnknownStrand if none overlap or more than
// one distinct strand is seen.
func (s *SegmentIndex) Lookup(contig string, span genome.Interval) genome.Strand {
	t, ok := s.trees[contig]
	if !ok {
		return genome.UnknownStrand
	}
	hits := t.Get(annotFeature{rng: interval.IntRange{Start: int(span.Start), End: int(span.End)}})
	found := false
	var seen genome.Strand
	for _, h := range hits {
		st := h.(annotFeature).strand
		if !found {
			seen, found = st, true
		} else if seen != st {
			return genome.UnknownStrand
		}
	}
	if !found {
		return genome.UnknownStrand
	}
	return seen
}

// ByAnnotation looks up the exon index first, falling back to the gene
// index, per the stranding-by-annotation rule.
type ByAnnotation struct {
	Exon *SegmentIndex
	Gene *SegmentIndex
}

// StrandFor applies the exon-then-gene fallback for one contig/span query.
func (a ByAnnotation) StrandFor(contig string, span genome.Interval) genome.Strand {
	if a.Exon != nil {
		if s := a.Exon.Lookup(contig, span); s != genome.UnknownStrand {
			return s
		}
	}
	if a.Gene != nil {
		if s := a.Gene.Lookup(contig, span); s != genome.UnknownStrand {
			return s
		}
	}
	return genome.UnknownStrand
}
