package main

import (
	"context"
	"flag"

	"github.com/grailbio/base/log"
	"github.com/pkg/errors"

	"github.com/ssomyk/rnaedit/genome"
	"github.com/ssomyk/rnaedit/hooks"
	"github.com/ssomyk/rnaedit/ioformats/bamsrc"
	"github.com/ssomyk/rnaedit/mismatches"
	"github.com/ssomyk/rnaedit/output"
	"github.com/ssomyk/rnaedit/partition"
	"github.com/ssomyk/rnaedit/runner"
	"github.com/ssomyk/rnaedit/stranding"
)

// outMinMismatchesDefaultSite is spec §6.1's sites-mode default for
// --out-min-mismatches (3, vs. 5 for rois).
const outMinMismatchesDefaultSite = 3

func runSites(args []string) error {
	fs := flag.NewFlagSet("sites", flag.ExitOnError)
	c := registerCommon(fs, outMinMismatchesDefaultSite)
	roisPath := fs.String("rois", "", "")
	eiPath := fs.String("ei", "", "")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.validate(); err != nil {
		return err
	}
	if *roisPath != "" {
		return errors.New("sites: --rois is rois-only")
	}
	if *eiPath != "" {
		return errors.New("sites: --ei is rois-only (spec §9: no site-level statistic sink is defined)")
	}

	t, err := buildTemplate(c)
	if err != nil {
		return err
	}

	contigs, err := contigLensFromInputs(t.inputs)
	if err != nil {
		return err
	}
	excluded, err := loadExcluded(c.exclude)
	if err != nil {
		return err
	}
	workloads, err := partition.Sites(contigs, excluded, c.binSize)
	if err != nil {
		return errors.Wrap(err, "sites: partitioning the genome")
	}
	if len(workloads) == 0 {
		log.Printf("rnaedit sites: no workloads after exclusion; nothing to do")
		return nil
	}

	out, err := openOutput(c.saveto)
	if err != nil {
		return err
	}
	defer out.Close()
	writer, err := output.NewSiteWriter(out)
	if err != nil {
		return err
	}
	defer writer.Close()

	pileupEng := t.pileupEngine()
	strandEng := t.siteStrandingEngine()
	retainer := t.siteRetainer()

	newWorker := func(workerID int) (runner.Worker, error) {
		files, source, fastaRdr, refEng, err := t.openWorker()
		if err != nil {
			return runner.Worker{}, err
		}

		hooksEng := hooks.Engine[mismatches.SiteRow]{}

		do := func(ctx context.Context, workload genome.Workload) error {
			res, err := pileupEng.Run(ctx, workload, source)
			if err != nil {
				return err
			}
			if res.Empty {
				return nil
			}

			rows, err := mismatches.BuildSiteRows(ctx, workload.Bin.Contig, res.Counter, refEng, retainer, t.prefilter)
			if err != nil {
				return err
			}
			hooksEng.RunCreated(rows)
			strandEng.Apply(rows.Retained, stranding.SiteAccessor)
			strandEng.Apply(rows.Other, stranding.SiteAccessor)
			hooksEng.RunStranded(rows)
			hooksEng.RunFinish(rows)

			flat := make([]mismatches.SiteRow, 0, rows.Len())
			flat = append(flat, rows.Retained...)
			flat = append(flat, rows.Other...)
			output.SortSiteRows(flat)
			return writer.WriteRows(flat)
		}

		return runner.Worker{
			Do:    do,
			Close: func() error { closeWorker(files, fastaRdr); return nil },
		}, nil
	}

	return runner.Run(context.Background(), workloads, c.threads, newWorker)
}

// contigLensFromInputs opens every input BAM just long enough to read its
// header, validates all inputs agree on (contig, length), and returns the
// shared set (spec §6.2/§4.1: site-mode partitioning requires identical
// headers across pooled inputs).
func contigLensFromInputs(inputs []string) ([]partition.ContigLen, error) {
	files := make([]*bamsrc.File, 0, len(inputs))
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()
	for _, path := range inputs {
		f, err := bamsrc.Open(path, "")
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return validateHeaders(files)
}
