package nuc

// Mismatches is the 4x4 contingency table of predicted-reference base versus
// observed base, aggregated over some set of positions. Table[ref][obs].
type Mismatches struct {
	A, C, G, T Counts
}

// row returns a pointer to the row addressed by ref, so that both readers
// and writers can share the same switch.
func (m *Mismatches) row(ref ReqNucleotide) *Counts {
	switch ref {
	case ReqA:
		return &m.A
	case ReqC:
		return &m.C
	case ReqG:
		return &m.G
	default:
		return &m.T
	}
}

func (m Mismatches) rowValue(ref ReqNucleotide) Counts {
	switch ref {
	case ReqA:
		return m.A
	case ReqC:
		return m.C
	case ReqG:
		return m.G
	default:
		return m.T
	}
}

// Add increments Table[ref][obs] by one. obs == Unknown is ignored: an
// unreadable observed base contributes nothing to the table.
func (m *Mismatches) Add(ref, obs Nucleotide) {
	if ref == Unknown || obs == Unknown {
		return
	}
	m.row(ref.Req()).Inc(obs.Req())
}

// AddCounts pairs a predicted reference with an already-aggregated Counts
// (e.g. one genomic position's sequenced counts) and folds it into the
// table's ref row.
func (m *Mismatches) AddCounts(ref Nucleotide, observed Counts) {
	if ref == Unknown {
		m.A.AddFrom(observed)
		m.C.AddFrom(observed)
		m.G.AddFrom(observed)
		m.T.AddFrom(observed)
		return
	}
	m.row(ref.Req()).AddFrom(observed)
}

// AddFrom merges another table into m, cell by cell.
func (m *Mismatches) AddFrom(other Mismatches) {
	m.A.AddFrom(other.A)
	m.C.AddFrom(other.C)
	m.G.AddFrom(other.G)
	m.T.AddFrom(other.T)
}

// Coverage is the sum of every cell in the table: every observed base over
// every row, not just where the predicted reference was actually observed.
func (m Mismatches) Coverage() uint32 {
	return m.A.Coverage() + m.C.Coverage() + m.G.Coverage() + m.T.Coverage()
}

// TotalMismatches is the sum of every off-diagonal cell.
func (m Mismatches) TotalMismatches() uint32 {
	total := uint32(0)
	for _, ref := range []ReqNucleotide{ReqA, ReqC, ReqG, ReqT} {
		row := m.rowValue(ref)
		total += row.Coverage() - row.At(ref)
	}
	return total
}

// Complementary maps the table onto the opposite strand: every (ref, obs)
// pair becomes (complement(ref), complement(obs)). It is its own inverse.
func (m Mismatches) Complementary() Mismatches {
	var out Mismatches
	for _, ref := range []ReqNucleotide{ReqA, ReqC, ReqG, ReqT} {
		out.row(ref.Complement()).AddFrom(m.rowValue(ref).Complementary())
	}
	return out
}
