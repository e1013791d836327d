// Package gff3 loads exon/gene features from a GFF3 file into the
// stranding package's SegmentIndex, feeding the by-annotation stranding
// algorithm (spec §4.9). Parsing itself is the teacher's own gff reader;
// see kortschak-ins/cmd/cull and kortschak-loopy/cmd/broadside for the
// gff.NewReader + featio.NewScanner idiom this follows.
package gff3

import (
	"io"
	"os"
	"strings"

	"github.com/biogo/biogo/io/featio"
	"github.com/biogo/biogo/io/featio/gff"
	"github.com/biogo/biogo/seq"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"

	"github.com/ssomyk/rnaedit/genome"
	"github.com/ssomyk/rnaedit/stranding"
)

// Indices is the pair of SegmentIndex built from a GFF3's exon and gene
// features, ready to drive stranding.ByAnnotation.
type Indices struct {
	Exon *stranding.SegmentIndex
	Gene *stranding.SegmentIndex
}

// Load reads every exon and gene feature from a .gff3 or .gff3.gz file and
// indexes them by contig and strand.
func Load(path string) (Indices, error) {
	f, err := os.Open(path)
	if err != nil {
		return Indices{}, errors.Wrapf(err, "gff3: opening %s", path)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return Indices{}, errors.Wrapf(err, "gff3: opening gzip stream %s", path)
		}
		defer gz.Close()
		r = gz
	}

	idx := Indices{Exon: stranding.NewSegmentIndex(), Gene: stranding.NewSegmentIndex()}
	sc := featio.NewScanner(gff.NewReader(r))
	for sc.Next() {
		feat, ok := sc.Feat().(*gff.Feature)
		if !ok {
			continue
		}
		var target *stranding.SegmentIndex
		switch feat.Feature {
		case "exon":
			target = idx.Exon
		case "gene":
			target = idx.Gene
		default:
			continue
		}
		strand := genome.UnknownStrand
		switch feat.FeatStrand {
		case seq.Plus:
			strand = genome.Forward
		case seq.Minus:
			strand = genome.Reverse
		}
		span := genome.Interval{Contig: feat.SeqName, Start: genome.PosType(feat.FeatStart), End: genome.PosType(feat.FeatEnd)}
		target.Add(span.Contig, span, strand)
	}
	if err := sc.Error(); err != nil {
		return Indices{}, errors.Wrapf(err, "gff3: reading %s", path)
	}
	idx.Exon.Finalize()
	idx.Gene.Finalize()
	return idx, nil
}

// ByAnnotation builds the stranding algorithm from the loaded indices.
func (idx Indices) ByAnnotation() stranding.ByAnnotation {
	return stranding.ByAnnotation{Exon: idx.Exon, Gene: idx.Gene}
}
