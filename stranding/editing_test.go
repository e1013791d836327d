package stranding

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ssomyk/rnaedit/genome"
	"github.com/ssomyk/rnaedit/mismatches"
	"github.com/ssomyk/rnaedit/nuc"
)

func TestROIByEditingOnlyForward(t *testing.T) {
	algo := ROIByEditing{ByEditing{MinMismatches: 1, MinFreq: 0.1}}
	row := &mismatches.ROIRow{}
	row.Mismatches.A = nuc.Counts{A: 5, G: 5} // A->G edited
	row.Mismatches.T = nuc.Counts{T: 100}     // no T->C

	assert.Equal(t, genome.Forward, algo.Predict(row))
}

func TestROIByEditingBothPicksHigherFreq(t *testing.T) {
	algo := ROIByEditing{ByEditing{MinMismatches: 1, MinFreq: 0.01}}
	row := &mismatches.ROIRow{}
	row.Mismatches.A = nuc.Counts{A: 90, G: 10} // freq 0.1
	row.Mismatches.T = nuc.Counts{T: 50, C: 50} // freq 0.5

	assert.Equal(t, genome.Reverse, algo.Predict(row))
}

func TestROIByEditingTieIsUnknown(t *testing.T) {
	algo := ROIByEditing{ByEditing{MinMismatches: 1, MinFreq: 0.01}}
	row := &mismatches.ROIRow{}
	row.Mismatches.A = nuc.Counts{A: 50, G: 50}
	row.Mismatches.T = nuc.Counts{T: 50, C: 50}

	assert.Equal(t, genome.UnknownStrand, algo.Predict(row))
}

func TestSiteByEditingUsesRefNucDirection(t *testing.T) {
	algo := SiteByEditing{ByEditing{MinMismatches: 1, MinFreq: 0.1}}

	fwd := &mismatches.SiteRow{RefNuc: nuc.A, Seq: nuc.Counts{A: 5, G: 5}}
	assert.Equal(t, genome.Forward, algo.Predict(fwd))

	rev := &mismatches.SiteRow{RefNuc: nuc.T, Seq: nuc.Counts{T: 5, C: 5}}
	assert.Equal(t, genome.Reverse, algo.Predict(rev))

	other := &mismatches.SiteRow{RefNuc: nuc.C, Seq: nuc.Counts{C: 10}}
	assert.Equal(t, genome.UnknownStrand, algo.Predict(other))
}
