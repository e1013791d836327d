// Package stranddeduce implements the strand deducer (spec component C3):
// mapping a read's alignment orientation and mate role to its parent
// transcript's strand, for a fixed experiment design.
package stranddeduce

import (
	"github.com/ssomyk/rnaedit/genome"
	"github.com/ssomyk/rnaedit/read"
)

// Design names a strand-specific library preparation protocol. Notation:
// read strand / transcript strand.
type Design uint8

const (
	// Same: read strand == transcript strand (++, --).
	Same Design = iota
	// Flip: read strand == reverse of transcript strand (+-, -+).
	Flip
	// Same1Flip2: read1 follows Same, read2 follows Flip.
	Same1Flip2
	// Flip1Same2: read1 follows Flip, read2 follows Same.
	Flip1Same2
)

func alignedStrand(s read.AlignedStrand) genome.Strand {
	if s == read.AlignedReverse {
		return genome.Reverse
	}
	return genome.Forward
}

// Deducer maps a read to the transcribed strand of its parent molecule.
// Deducers are stateless and safe to share across worker threads.
type Deducer struct {
	design Design
}

// New builds a Deducer for the given experiment design.
func New(design Design) Deducer {
	return Deducer{design: design}
}

// Deduce returns the transcribed strand of r.
func (d Deducer) Deduce(r *read.Record) genome.Strand {
	strand := alignedStrand(r.AlignedStrand)
	switch d.design {
	case Same:
		return strand
	case Flip:
		return strand.Complement()
	case Same1Flip2:
		if r.IsFirstInPair {
			return strand
		}
		return strand.Complement()
	default: // Flip1Same2
		if r.IsFirstInPair {
			return strand.Complement()
		}
		return strand
	}
}
