package stranding

import (
	"github.com/ssomyk/rnaedit/genome"
	"github.com/ssomyk/rnaedit/mismatches"
	"github.com/ssomyk/rnaedit/nuc"
)

// ByEditing infers strand from the A->I (A->G) / complementary (T->C)
// editing signal itself: a row with significant A->G editing sits on the
// transcript's forward strand, one with significant T->C editing (the
// reverse-complement signature) sits on the reverse strand.
type ByEditing struct {
	MinMismatches uint32
	MinFreq       float64
}

// edited reports whether the matched+edited coverage for one direction
// (e.g. A->A plus A->G) shows significant editing. coverage here is only
// the two cells that matter for this direction, not the full row/site.
func (a ByEditing) edited(matches, mismatches uint32) bool {
	coverage := matches + mismatches
	if coverage == 0 {
		return false
	}
	return mismatches >= a.MinMismatches && float64(mismatches)/float64(coverage) >= a.MinFreq
}

// decide applies the shared "only A->G / only T->C / both, break by
// frequency / neither" rule given each direction's matched and edited
// counts.
func (a ByEditing) decide(aMatches, aMM, tMatches, tMM uint32) genome.Strand {
	fwdEdited := a.edited(aMatches, aMM)
	revEdited := a.edited(tMatches, tMM)
	switch {
	case fwdEdited && !revEdited:
		return genome.Forward
	case revEdited && !fwdEdited:
		return genome.Reverse
	case fwdEdited && revEdited:
		fwdFreq := float64(aMM) / float64(aMatches+aMM)
		revFreq := float64(tMM) / float64(tMatches+tMM)
		switch {
		case fwdFreq > revFreq:
			return genome.Forward
		case revFreq > fwdFreq:
			return genome.Reverse
		default:
			return genome.UnknownStrand
		}
	default:
		return genome.UnknownStrand
	}
}

// ROIByEditing adapts ByEditing to Algorithm[ROIRow].
type ROIByEditing struct {
	ByEditing
}

func (a ROIByEditing) Predict(row *mismatches.ROIRow) genome.Strand {
	aRow := row.Mismatches.A
	tRow := row.Mismatches.T
	return a.decide(aRow.A, aRow.G, tRow.T, tRow.C)
}

// SiteByEditing adapts ByEditing to Algorithm[SiteRow]: a site only carries
// one reference base, so only the direction matching refnuc applies.
type SiteByEditing struct {
	ByEditing
}

func (a SiteByEditing) Predict(row *mismatches.SiteRow) genome.Strand {
	switch row.RefNuc {
	case nuc.A:
		return a.decide(row.Seq.A, row.Seq.G, 0, 0)
	case nuc.T:
		return a.decide(0, 0, row.Seq.T, row.Seq.C)
	default:
		return genome.UnknownStrand
	}
}
