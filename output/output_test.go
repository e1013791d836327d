package output

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssomyk/rnaedit/genome"
	"github.com/ssomyk/rnaedit/ioformats/bed"
	"github.com/ssomyk/rnaedit/mismatches"
	"github.com/ssomyk/rnaedit/nuc"
)

func TestSiteWriterHeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewSiteWriter(&buf)
	require.NoError(t, err)

	rows := []mismatches.SiteRow{
		{Contig: "1", Pos: 100, Strand: genome.Reverse, RefNuc: nuc.A, PredNuc: nuc.A, Seq: nuc.Counts{A: 5}},
		{Contig: "1", Pos: 99, Strand: genome.Forward, RefNuc: nuc.A, PredNuc: nuc.A, Seq: nuc.Counts{A: 3}},
	}
	SortSiteRows(rows)
	require.NoError(t, w.WriteRows(rows))
	require.NoError(t, w.Close())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, SiteHeader, lines[0])
	// Forward sorts before Reverse regardless of position.
	assert.Equal(t, "1\t99\t+\tA\tA\t3\t0\t0\t0", lines[1])
	assert.Equal(t, "1\t100\t-\tA\tA\t5\t0\t0\t0", lines[2])
}

func TestROIWriterHeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewROIWriter(&buf)
	require.NoError(t, err)

	roi, ok := genome.NewROI(genome.Interval{Contig: "1", Start: 100, End: 200}, "R1", genome.UnknownStrand, nil)
	require.True(t, ok)

	var mm nuc.Mismatches
	mm.Add(nuc.A, nuc.A)
	mm.Add(nuc.A, nuc.G)

	row := mismatches.ROIRow{ROI: roi, Strand: genome.Forward, PredHist: nuc.Counts{A: 2}, Mismatches: mm}
	require.NoError(t, w.WriteRows([]mismatches.ROIRow{row}))
	require.NoError(t, w.Close())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, ROIHeader, lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1\t100\t200\t+\tR1\t"))
}

func TestSortROIRowsOrdersByStrandThenStart(t *testing.T) {
	mkROI := func(start genome.PosType) genome.ROI {
		roi, ok := genome.NewROI(genome.Interval{Contig: "1", Start: start, End: start + 10}, "R", genome.UnknownStrand, nil)
		require.True(t, ok)
		return roi
	}
	rows := []mismatches.ROIRow{
		{ROI: mkROI(300), Strand: genome.Reverse},
		{ROI: mkROI(100), Strand: genome.Forward},
		{ROI: mkROI(200), Strand: genome.UnknownStrand},
		{ROI: mkROI(50), Strand: genome.Forward},
	}
	SortROIRows(rows)
	assert.Equal(t, genome.PosType(50), rows[0].ROI.Premasked.Start)
	assert.Equal(t, genome.PosType(100), rows[1].ROI.Premasked.Start)
	assert.Equal(t, genome.Reverse, rows[2].Strand)
	assert.Equal(t, genome.UnknownStrand, rows[3].Strand)
}

func TestWriteEditingIndexCreatesThenAppends(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ei.tsv")

	var ratiosA [16]float64
	ratiosA[0] = 0.5
	ratiosA[1] = math.NaN()
	require.NoError(t, WriteEditingIndex(path, "A", ratiosA))

	var ratiosB [16]float64
	ratiosB[2] = 0.25
	require.NoError(t, WriteEditingIndex(path, "B", ratiosB))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	require.Len(t, lines, 3, "one header row plus one row per run")
	assert.True(t, strings.HasPrefix(lines[0], "Run name\t"))
	assert.True(t, strings.HasPrefix(lines[1], "A\t0.500000\tNaN\t"))
	assert.True(t, strings.HasPrefix(lines[2], "B\t0.000000\t0.000000\t0.250000\t"))
}

func TestBEDRetainerROIAndSite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "retain.bed")
	require.NoError(t, os.WriteFile(path, []byte("1\t100\t200\tR1\t0\t+\n"), 0644))

	recs, err := bed.Load(path)
	require.NoError(t, err)
	retainer := NewBEDRetainer(recs)

	roi, ok := genome.NewROI(genome.Interval{Contig: "1", Start: 100, End: 200}, "R1", genome.UnknownStrand, nil)
	require.True(t, ok)

	assert.True(t, retainer.Retain("1", roi, genome.Forward))
	assert.False(t, retainer.Retain("1", roi, genome.Reverse), "strand must match when the BED record carries one")

	otherROI, ok := genome.NewROI(genome.Interval{Contig: "2", Start: 100, End: 200}, "R1", genome.UnknownStrand, nil)
	require.True(t, ok)
	assert.False(t, retainer.Retain("2", otherROI, genome.Forward))

	assert.True(t, retainer.RetainSite("1", 150))
	assert.False(t, retainer.RetainSite("1", 250))

	adapter := SiteRetainerAdapter{BEDRetainer: retainer}
	assert.True(t, adapter.Retain("1", 150))
}
