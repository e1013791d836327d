// Package output implements the sinks spec §1 calls an external
// collaborator: TSV serialization of site/ROI mismatch rows and the
// editing-index statistic (§6.3), plus the BED-backed retainers feeding
// the mismatch builder's retain/other split (§4.8). Nothing here is part
// of the counting-and-mismatch core (C1-C11); it is the minimal concrete
// implementation the runner needs to produce a file on disk.
package output

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/ssomyk/rnaedit/genome"
	"github.com/ssomyk/rnaedit/mismatches"
)

// SiteHeader is the fixed header row for the site TSV (§6.3).
const SiteHeader = "contig\tpos\ttrstrand\trefnuc\tprednuc\tA\tC\tG\tT"

// SiteWriter is the single-writer synchronized sink every worker's site
// rows flow through; the runner gives each worker a pointer to the same
// instance.
type SiteWriter struct {
	mu sync.Mutex
	w  *bufio.Writer
}

// NewSiteWriter wraps w and writes the header row immediately.
func NewSiteWriter(w io.Writer) (*SiteWriter, error) {
	sw := &SiteWriter{w: bufio.NewWriter(w)}
	if _, err := fmt.Fprintln(sw.w, SiteHeader); err != nil {
		return nil, errors.Wrap(err, "output: writing site TSV header")
	}
	return sw, nil
}

// WriteRows appends rows in deterministic (Forward, Reverse, Unknown then
// position) order, as produced by the runner's flattening step.
func (sw *SiteWriter) WriteRows(rows []mismatches.SiteRow) error {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	for _, r := range rows {
		_, err := fmt.Fprintf(sw.w, "%s\t%d\t%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			r.Contig, r.Pos, r.Strand, r.RefNuc, r.PredNuc, r.Seq.A, r.Seq.C, r.Seq.G, r.Seq.T)
		if err != nil {
			return errors.Wrap(err, "output: writing site row")
		}
	}
	return nil
}

// Close flushes buffered output. It does not close the underlying writer
// (the runner owns that lifecycle, e.g. stdout must not be closed).
func (sw *SiteWriter) Close() error {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return errors.Wrap(sw.w.Flush(), "output: flushing site TSV")
}

// strandRank orders output rows Forward, Reverse, Unknown per spec §4.11.
func strandRank(s genome.Strand) int {
	switch s {
	case genome.Forward:
		return 0
	case genome.Reverse:
		return 1
	default:
		return 2
	}
}

// SortSiteRows orders rows by (strand slot, position) for deterministic
// within-bin emission; cross-bin order is intentionally left unspecified
// (§4.11).
func SortSiteRows(rows []mismatches.SiteRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if strandRank(rows[i].Strand) != strandRank(rows[j].Strand) {
			return strandRank(rows[i].Strand) < strandRank(rows[j].Strand)
		}
		return rows[i].Pos < rows[j].Pos
	})
}
