// Package runner implements the runner and thread coordination component
// (spec C11): it hands a sorted workload list out to a fixed pool of
// worker goroutines, each of which drives its own, independently built
// pipeline (pileup, reference, stranding, hooks, output) over a contiguous
// slice of that list.
//
// The split-a-contiguous-range-per-worker shape, and driving it with
// grailbio/base/traverse.Each, follows pileupSNPMain in
// pileup/snp/pileup.go: that function computes startIdx/endIdx from
// jobIdx*nShard/parallelism and builds its own job-local mutable state
// (a fresh pileupMutable) once per worker rather than sharing it. This
// package generalizes that shape into a reusable entry point instead of
// inlining it in main, since this pipeline's per-worker state (BAM/FASTA
// handles, stranding/hooks engines, a partial editing-index accumulator)
// is assembled by the caller, not by the runner itself.
package runner

import (
	"context"

	"github.com/grailbio/base/traverse"
	"github.com/pkg/errors"

	"github.com/ssomyk/rnaedit/genome"
)

// Job processes a single workload end to end: pileup, reference
// prediction, mismatch building, stranding, hooks, and writing rows to
// whatever sink the caller's closure captured. It is called once per
// workload assigned to its worker, always from the same goroutine, so it
// may hold onto non-thread-safe per-worker state (a BAM file handle, a
// FASTA reader, a partial statistics accumulator) across calls.
type Job func(ctx context.Context, workload genome.Workload) error

// Worker is one pool slot's lazily-built cache (spec §4.11): Run builds it
// once per worker via NewWorker, calls Do once per assigned workload, and
// calls Close exactly once after that worker's last workload, whether or
// not an error occurred, so per-worker file handles are always released.
type Worker struct {
	Do    Job
	Close func() error
}

// NewWorker builds one worker's cache, given its 0-based index among the
// pool. Implementations typically open per-worker BAM/FASTA file handles
// here; Worker.Close releases them.
type NewWorker func(workerID int) (Worker, error)

// Run partitions workloads into parallelism contiguous slices (one per
// worker) and drives each slice through a Worker built by newWorker, using
// traverse.Each to run one goroutine per worker. Assignment is static: a
// worker that finishes its slice early does not take workloads from
// another worker's slice. Run returns the
// first error any worker reports; other in-flight workers are allowed to
// finish before Run returns, matching traverse.Each's own semantics.
//
// workloads must already be sorted the way the caller wants bins to be
// assigned out — contiguous slicing means workers earlier in the pool
// get contiguous, typically lower-coordinate, ranges.
func Run(ctx context.Context, workloads []genome.Workload, parallelism int, newWorker NewWorker) error {
	if len(workloads) == 0 {
		return nil
	}
	if parallelism <= 0 {
		parallelism = 1
	}
	if parallelism > len(workloads) {
		parallelism = len(workloads)
	}

	return traverse.Each(parallelism, func(workerID int) (err error) {
		w, err := newWorker(workerID)
		if err != nil {
			return errors.Wrapf(err, "runner: building worker %d", workerID)
		}
		if w.Close != nil {
			defer func() {
				if cerr := w.Close(); cerr != nil && err == nil {
					err = errors.Wrapf(cerr, "runner: closing worker %d", workerID)
				}
			}()
		}
		start := (workerID * len(workloads)) / parallelism
		end := ((workerID + 1) * len(workloads)) / parallelism
		for _, wl := range workloads[start:end] {
			if err := w.Do(ctx, wl); err != nil {
				return errors.Wrapf(err, "runner: worker %d processing %s", workerID, wl.Bin)
			}
		}
		return nil
	})
}
