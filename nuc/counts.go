package nuc

// Counts holds per-position A/C/G/T tallies. The zero value is all-zero
// counts.
type Counts struct {
	A, C, G, T uint32
}

// Add returns the elementwise sum of c and other.
func (c Counts) Add(other Counts) Counts {
	return Counts{
		A: c.A + other.A,
		C: c.C + other.C,
		G: c.G + other.G,
		T: c.T + other.T,
	}
}

// AddFrom accumulates other into c in place.
func (c *Counts) AddFrom(other Counts) {
	c.A += other.A
	c.C += other.C
	c.G += other.G
	c.T += other.T
}

// At indexes c by base, for code that wants to iterate ReqNucleotide values.
func (c Counts) At(r ReqNucleotide) uint32 {
	switch r {
	case ReqA:
		return c.A
	case ReqC:
		return c.C
	case ReqG:
		return c.G
	default:
		return c.T
	}
}

// Inc increments the counter for r by one.
func (c *Counts) Inc(r ReqNucleotide) {
	switch r {
	case ReqA:
		c.A++
	case ReqC:
		c.C++
	case ReqG:
		c.G++
	default:
		c.T++
	}
}

// Coverage is the total number of observations.
func (c Counts) Coverage() uint32 {
	return c.A + c.C + c.G + c.T
}

// Mismatches sums every base that disagrees with the given reference. An
// Unknown reference counts all four bases as mismatching (there is no
// correct call to compare against).
func (c Counts) Mismatches(reference Nucleotide) uint32 {
	switch reference {
	case A:
		return c.C + c.G + c.T
	case C:
		return c.A + c.G + c.T
	case G:
		return c.A + c.C + c.T
	case T:
		return c.A + c.C + c.G
	default:
		return c.A + c.C + c.G + c.T
	}
}

// MostFreq returns the dominant base and its count, breaking ties in fixed
// order A, C, G, T (i.e. A wins ties with C, and the A-or-C winner wins ties
// with the G-or-T winner).
func (c Counts) MostFreq() (ReqNucleotide, uint32) {
	ac, acCount := ReqA, c.A
	if c.C > c.A {
		ac, acCount = ReqC, c.C
	}
	gt, gtCount := ReqG, c.G
	if c.T > c.G {
		gt, gtCount = ReqT, c.T
	}
	if acCount >= gtCount {
		return ac, acCount
	}
	return gt, gtCount
}

// Complementary swaps A<->T and C<->G, mirroring the counts observed on the
// opposite strand of the same molecule. It is its own inverse.
func (c Counts) Complementary() Counts {
	return Counts{A: c.T, C: c.G, G: c.C, T: c.A}
}
