package output

import (
	"bufio"
	"fmt"
	"math"
	"os"

	"github.com/pkg/errors"

	"github.com/ssomyk/rnaedit/hooks"
)

// WriteEditingIndex appends a single "runName <16 ratios>" row to path, per
// spec §6.3: if path does not yet exist, the header row is written first;
// if it does, the row is appended below the existing table so a directory
// of runs accumulates one shared file. NaN ratios (zero-coverage row) print
// as the literal "NaN", matched by most downstream TSV readers.
func WriteEditingIndex(path, runName string, ratios [16]float64) error {
	_, statErr := os.Stat(path)
	needsHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, "output: opening editing index file %s", path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if needsHeader {
		if _, err := fmt.Fprint(w, "Run name"); err != nil {
			return errors.Wrap(err, "output: writing editing index header")
		}
		for _, name := range hooks.ColumnNames() {
			if _, err := fmt.Fprintf(w, "\t%s", name); err != nil {
				return errors.Wrap(err, "output: writing editing index header")
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return errors.Wrap(err, "output: writing editing index header")
		}
	}

	if _, err := fmt.Fprint(w, runName); err != nil {
		return errors.Wrap(err, "output: writing editing index row")
	}
	for _, ratio := range ratios {
		if math.IsNaN(ratio) {
			if _, err := fmt.Fprint(w, "\tNaN"); err != nil {
				return errors.Wrap(err, "output: writing editing index row")
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "\t%.6f", ratio); err != nil {
			return errors.Wrap(err, "output: writing editing index row")
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return errors.Wrap(err, "output: writing editing index row")
	}
	return errors.Wrapf(w.Flush(), "output: flushing editing index file %s", path)
}
