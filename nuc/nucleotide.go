// Package nuc defines the nucleotide alphabet and the counting types built
// on top of it: NucCounts (per-position A/C/G/T tallies) and NucMismatches
// (predicted-reference x observed contingency table).
package nuc

// Nucleotide is a single base call, including the Unknown sentinel used for
// anything that isn't A/C/G/T.
type Nucleotide uint8

const (
	A Nucleotide = iota
	C
	G
	T
	Unknown
)

// ReqNucleotide is Nucleotide restricted to the four real bases. Values
// outside A/C/G/T never occur; callers obtain one from a Nucleotide via
// Req, which panics on Unknown.
type ReqNucleotide uint8

const (
	ReqA ReqNucleotide = iota
	ReqC
	ReqG
	ReqT
)

// NBase is the number of real bases.
const NBase = 4

func (n Nucleotide) String() string {
	switch n {
	case A:
		return "A"
	case C:
		return "C"
	case G:
		return "G"
	case T:
		return "T"
	default:
		return "N"
	}
}

// FromByte classifies an ASCII base letter, case-insensitively. Anything
// else (including 'N') maps to Unknown.
func FromByte(b byte) Nucleotide {
	switch b {
	case 'A', 'a':
		return A
	case 'C', 'c':
		return C
	case 'G', 'g':
		return G
	case 'T', 't':
		return T
	default:
		return Unknown
	}
}

// Req narrows a Nucleotide to ReqNucleotide. It panics if n is Unknown;
// callers must only call it on positions already known to carry a real base.
func (n Nucleotide) Req() ReqNucleotide {
	if n == Unknown {
		panic("nuc: cannot narrow Unknown to ReqNucleotide")
	}
	return ReqNucleotide(n)
}

// Nuc widens a ReqNucleotide back to a Nucleotide.
func (r ReqNucleotide) Nuc() Nucleotide {
	return Nucleotide(r)
}

func (r ReqNucleotide) String() string {
	return r.Nuc().String()
}

// Complement returns the base-pairing complement (A<->T, C<->G).
func (r ReqNucleotide) Complement() ReqNucleotide {
	switch r {
	case ReqA:
		return ReqT
	case ReqT:
		return ReqA
	case ReqC:
		return ReqG
	default:
		return ReqC
	}
}

// Complement mirrors ReqNucleotide.Complement for Nucleotide, leaving
// Unknown fixed.
func (n Nucleotide) Complement() Nucleotide {
	if n == Unknown {
		return Unknown
	}
	return n.Req().Complement().Nuc()
}
