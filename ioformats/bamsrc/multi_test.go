package bamsrc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssomyk/rnaedit/pileup"
	"github.com/ssomyk/rnaedit/read"
)

// fakeIterator is a minimal pileup.ReadIterator over a fixed slice of
// names, used to exercise multiIterator's concatenation logic without
// needing a real BAM file. err, if set, surfaces only once names is
// exhausted, matching how a real iterator reports a read error after its
// final successful Next returns false.
type fakeIterator struct {
	names []string
	i     int
	cur   read.Record
	err   error
}

func (f *fakeIterator) Next() bool {
	if f.i >= len(f.names) {
		return false
	}
	f.cur = read.Record{Name: f.names[f.i]}
	f.i++
	return true
}

func (f *fakeIterator) Record() *read.Record { return &f.cur }
func (f *fakeIterator) Err() error           { return f.err }
func (f *fakeIterator) Close() error         { return nil }

func TestMultiIteratorConcatenatesInFileOrder(t *testing.T) {
	a := &fakeIterator{names: []string{"r1", "r2"}}
	b := &fakeIterator{names: []string{"r3"}}
	c := &fakeIterator{names: nil}

	m := &multiIterator{its: []pileup.ReadIterator{a, b, c}}

	var got []string
	for m.Next() {
		got = append(got, m.Record().Name)
	}
	require.NoError(t, m.Err())
	assert.Equal(t, []string{"r1", "r2", "r3"}, got)
}

func TestMultiIteratorStopsOnError(t *testing.T) {
	boom := errTest("boom")
	a := &fakeIterator{names: []string{"r1"}, err: boom}

	m := &multiIterator{its: []pileup.ReadIterator{a}}

	var got []string
	for m.Next() {
		got = append(got, m.Record().Name)
	}
	assert.Equal(t, []string{"r1"}, got)
	assert.Equal(t, boom, m.Err())
}

type errTest string

func (e errTest) Error() string { return string(e) }
