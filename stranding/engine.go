// Package stranding implements the stranding engine (spec component C9): an
// ordered pipeline of algorithms that refines rows whose transcribed strand
// is still Unknown, stopping at the first algorithm in the pipeline that
// resolves each row.
package stranding

import "github.com/ssomyk/rnaedit/genome"

// Algorithm assigns a strand to a single Unknown-strand row, or returns
// UnknownStrand to leave it for the next algorithm in the pipeline.
type Algorithm[T any] interface {
	Predict(row *T) genome.Strand
}

// Accessor lets the engine read and stamp a row's strand without the engine
// needing to know the row's concrete shape.
type Accessor[T any] struct {
	Get func(*T) genome.Strand
	Set func(*T, genome.Strand)
}

// Engine runs an ordered list of algorithms over a row set, refining
// whichever rows are still Unknown after each pass.
type Engine[T any] struct {
	Algorithms []Algorithm[T]
}

// Apply refines every row in rows whose strand is Unknown, in place.
// Resolved rows are skipped by subsequent algorithms; the ordering mirrors
// the configured pipeline, so an earlier algorithm always gets first say.
func (e Engine[T]) Apply(rows []T, acc Accessor[T]) {
	for _, algo := range e.Algorithms {
		for i := range rows {
			if acc.Get(&rows[i]) != genome.UnknownStrand {
				continue
			}
			if s := algo.Predict(&rows[i]); s != genome.UnknownStrand {
				acc.Set(&rows[i], s)
			}
		}
	}
}
