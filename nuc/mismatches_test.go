package nuc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMismatchesAddAndCoverage(t *testing.T) {
	var m Mismatches
	m.Add(A, A)
	m.Add(A, A)
	m.Add(A, G)
	m.Add(C, C)
	m.Add(T, Unknown) // unreadable observation contributes nothing

	assert.EqualValues(t, 2, m.A.A)
	assert.EqualValues(t, 1, m.A.G)
	assert.EqualValues(t, 1, m.C.C)
	assert.EqualValues(t, 4, m.Coverage())
	assert.EqualValues(t, 1, m.TotalMismatches())
}

func TestMismatchesAddCountsUnknownRef(t *testing.T) {
	var m Mismatches
	m.AddCounts(Unknown, Counts{A: 1, C: 2, G: 3, T: 4})
	assert.EqualValues(t, 70, m.TotalMismatches()+m.Coverage())
	assert.Equal(t, Counts{A: 1, C: 2, G: 3, T: 4}, m.A)
	assert.Equal(t, Counts{A: 1, C: 2, G: 3, T: 4}, m.T)
}

func TestMismatchesComplementaryInvolution(t *testing.T) {
	var m Mismatches
	m.Add(A, G)
	m.Add(A, A)
	m.Add(T, C)
	assert.Equal(t, m, m.Complementary().Complementary())

	comp := m.Complementary()
	assert.EqualValues(t, 1, comp.T.C) // complement(A->G) == T->C
	assert.EqualValues(t, 1, comp.T.T) // complement(A->A) == T->T
	assert.EqualValues(t, 1, comp.A.G) // complement(T->C) == A->G
}
