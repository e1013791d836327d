// Package read defines the read-record vocabulary the counting pipeline
// consumes. It has no dependence on BAM framing: anything that can produce
// Records (BAM today, conceivably CRAM or an in-memory fixture tomorrow)
// can drive the counter.
package read

import "github.com/ssomyk/rnaedit/genome"

// CigarOp is a CIGAR operation code.
type CigarOp uint8

const (
	CigarMatch CigarOp = iota // M: alignment match (sequence match or mismatch)
	CigarEqual                // =: sequence match
	CigarDiff                 // X: sequence mismatch
	CigarIns                  // I: insertion to the reference
	CigarDel                  // D: deletion from the reference
	CigarRefSkip              // N: skipped region (intron)
	CigarSoftClip             // S: soft clip
	CigarHardClip             // H: hard clip
	CigarPad                  // P: padding
)

// ConsumesRef reports whether op advances the reference-coordinate cursor.
func (op CigarOp) ConsumesRef() bool {
	switch op {
	case CigarMatch, CigarEqual, CigarDiff, CigarDel, CigarRefSkip:
		return true
	default:
		return false
	}
}

// ConsumesRead reports whether op advances the read-coordinate cursor.
func (op CigarOp) ConsumesRead() bool {
	switch op {
	case CigarMatch, CigarEqual, CigarDiff, CigarIns, CigarSoftClip:
		return true
	default:
		return false
	}
}

// CigarElem is one run-length-encoded CIGAR operation.
type CigarElem struct {
	Op  CigarOp
	Len int
}

// AlignedStrand is a read's own alignment orientation, as opposed to the
// (possibly deduced) transcribed strand of its parent molecule.
type AlignedStrand uint8

const (
	AlignedForward AlignedStrand = iota
	AlignedReverse
)

// Record is the subset of a BAM alignment record the pipeline needs.
// Implementations own no pipeline state; they are read-only views into
// whatever the source file format actually stores.
type Record struct {
	Name          string
	Contig        string
	Pos           genome.PosType // 0-based leftmost aligned reference position
	Cigar         []CigarElem
	Seq           []byte // uppercase/lowercase ASCII bases, one byte per read position
	Qual          []byte // Phred quality, one byte per read position, same indexing as Seq
	MapQ          uint8
	Flags         uint16
	IsFirstInPair bool
	AlignedStrand AlignedStrand
}

// RefSpan returns the number of reference bases the record's CIGAR
// consumes, i.e. the width of [Pos, Pos+RefSpan()) that it overlaps.
func (r *Record) RefSpan() genome.PosType {
	var span genome.PosType
	for _, e := range r.Cigar {
		if e.Op.ConsumesRef() {
			span += genome.PosType(e.Len)
		}
	}
	return span
}
