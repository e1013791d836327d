package hooks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ssomyk/rnaedit/mismatches"
)

type row struct {
	val int
}

type dropOdd struct{}

func (dropOdd) Keep(r *row) bool { return r.val%2 == 0 }

type sum struct {
	total int
}

func (s *sum) Observe(r *row) { s.total += r.val }

func TestEngineRunCreatedAppliesFilterToOtherOnly(t *testing.T) {
	ctx := &mismatches.Context[row]{
		Retained: []row{{val: 1}, {val: 3}},
		Other:    []row{{val: 2}, {val: 3}, {val: 4}},
	}
	e := Engine[row]{OnCreated: []Hook[row]{{Filter: dropOdd{}}}}
	e.RunCreated(ctx)

	assert.Equal(t, []row{{val: 1}, {val: 3}}, ctx.Retained)
	assert.Equal(t, []row{{val: 2}, {val: 4}}, ctx.Other)
}

func TestEngineRunFinishObservesEveryRow(t *testing.T) {
	ctx := &mismatches.Context[row]{
		Retained: []row{{val: 1}},
		Other:    []row{{val: 2}, {val: 3}},
	}
	s := &sum{}
	e := Engine[row]{OnFinish: []Hook[row]{{Statistic: s}}}
	e.RunFinish(ctx)

	assert.Equal(t, 6, s.total)
}

func TestEngineRunStrandedAppliesHooksInOrder(t *testing.T) {
	ctx := &mismatches.Context[row]{Other: []row{{val: 1}, {val: 2}, {val: 3}, {val: 4}}}
	s := &sum{}
	e := Engine[row]{OnStranded: []Hook[row]{{Filter: dropOdd{}}, {Statistic: s}}}
	e.RunStranded(ctx)

	assert.Equal(t, []row{{val: 2}, {val: 4}}, ctx.Other)
	assert.Equal(t, 6, s.total)
}
