package read

import (
	"testing"

	"github.com/ssomyk/rnaedit/genome"
)

func TestCigarOpConsumes(t *testing.T) {
	cases := []struct {
		op           CigarOp
		ref, readOp bool
	}{
		{CigarMatch, true, true},
		{CigarEqual, true, true},
		{CigarDiff, true, true},
		{CigarIns, false, true},
		{CigarDel, true, false},
		{CigarRefSkip, true, false},
		{CigarSoftClip, false, true},
		{CigarHardClip, false, false},
		{CigarPad, false, false},
	}
	for _, c := range cases {
		if got := c.op.ConsumesRef(); got != c.ref {
			t.Errorf("%v.ConsumesRef() = %v, want %v", c.op, got, c.ref)
		}
		if got := c.op.ConsumesRead(); got != c.readOp {
			t.Errorf("%v.ConsumesRead() = %v, want %v", c.op, got, c.readOp)
		}
	}
}

func TestRefSpan(t *testing.T) {
	r := &Record{
		Cigar: []CigarElem{
			{Op: CigarSoftClip, Len: 3},
			{Op: CigarMatch, Len: 10},
			{Op: CigarDel, Len: 2},
			{Op: CigarMatch, Len: 5},
			{Op: CigarIns, Len: 4},
		},
	}
	if got, want := r.RefSpan(), genome.PosType(17); got != want {
		t.Errorf("RefSpan() = %d, want %d", got, want)
	}
}
