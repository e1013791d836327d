package gff3

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssomyk/rnaedit/genome"
)

const sampleGFF3 = "##gff-version 3\n" +
	"1\tAnnot\texon\t201\t300\t.\t+\t.\tID=exon1\n" +
	"1\tAnnot\tgene\t1\t1000\t.\t-\t.\tID=gene1\n" +
	"1\tAnnot\tCDS\t1002\t1100\t.\t+\t.\tID=cds1\n"

func TestLoadIndexesExonAndGeneByStrand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "annot.gff3")
	require.NoError(t, os.WriteFile(path, []byte(sampleGFF3), 0644))

	idx, err := Load(path)
	require.NoError(t, err)

	// The exon overlapping 201-300 is forward-stranded and should win over
	// the gene fallback within that range.
	ba := idx.ByAnnotation()
	assert.Equal(t, genome.Forward, ba.StrandFor("1", genome.Interval{Contig: "1", Start: 250, End: 251}))

	// Outside any exon but inside the gene span, the gene strand applies.
	assert.Equal(t, genome.Reverse, ba.StrandFor("1", genome.Interval{Contig: "1", Start: 500, End: 501}))

	// A forward CDS feature was loaded past the gene's end, where no gene or
	// exon covers 1001 onward; CDS is neither kind, so it must not have been
	// indexed as either: the lookup inside the CDS span stays Unknown.
	assert.Equal(t, genome.UnknownStrand, ba.StrandFor("1", genome.Interval{Contig: "1", Start: 1001, End: 1002}))
}
