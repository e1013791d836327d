package main

import (
	"context"
	"flag"
	"sync"

	"github.com/grailbio/base/log"
	"github.com/pkg/errors"

	"github.com/ssomyk/rnaedit/genome"
	"github.com/ssomyk/rnaedit/hooks"
	"github.com/ssomyk/rnaedit/ioformats/bed"
	"github.com/ssomyk/rnaedit/mismatches"
	"github.com/ssomyk/rnaedit/output"
	"github.com/ssomyk/rnaedit/partition"
	"github.com/ssomyk/rnaedit/runner"
	"github.com/ssomyk/rnaedit/stranding"
)

// outMinMismatchesDefaultROI is spec §6.1's rois-mode default for
// --out-min-mismatches (5, vs. 3 for sites).
const outMinMismatchesDefaultROI = 5

func runROIs(args []string) error {
	fs := flag.NewFlagSet("rois", flag.ExitOnError)
	c := registerCommon(fs, outMinMismatchesDefaultROI)
	roisPath := fs.String("rois", "", "BED of regions of interest (required)")
	eiPath := fs.String("ei", "", "editing-index TSV sink path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.validate(); err != nil {
		return err
	}
	if *roisPath == "" {
		return errors.New("rois: --rois is required")
	}

	t, err := buildTemplate(c)
	if err != nil {
		return err
	}

	recs, err := bed.Load(*roisPath)
	if err != nil {
		return errors.Wrapf(err, "rois: loading --rois %s", *roisPath)
	}
	excluded, err := loadExcluded(c.exclude)
	if err != nil {
		return err
	}
	workloads, err := partition.ROIs(bed.RawROIs(recs), excluded, c.binSize)
	if err != nil {
		return errors.Wrap(err, "rois: partitioning regions of interest")
	}
	if len(workloads) == 0 {
		log.Printf("rnaedit rois: no regions of interest survived exclusion; nothing to do")
		return nil
	}

	out, err := openOutput(c.saveto)
	if err != nil {
		return err
	}
	defer out.Close()
	writer, err := output.NewROIWriter(out)
	if err != nil {
		return err
	}
	defer writer.Close()

	pileupEng := t.pileupEngine()
	strandEng := t.roiStrandingEngine()
	retainer := t.roiRetainer()

	var eiMu sync.Mutex
	var eiTotal *hooks.ROIEditingIndex
	if *eiPath != "" {
		eiTotal = &hooks.ROIEditingIndex{}
	}

	newWorker := func(workerID int) (runner.Worker, error) {
		files, source, fastaRdr, refEng, err := t.openWorker()
		if err != nil {
			return runner.Worker{}, err
		}

		hooksEng := hooks.Engine[mismatches.ROIRow]{}
		var workerEI *hooks.ROIEditingIndex
		if eiTotal != nil {
			workerEI = &hooks.ROIEditingIndex{}
			hooksEng.OnFinish = append(hooksEng.OnFinish, hooks.Hook[mismatches.ROIRow]{Statistic: workerEI})
		}

		do := func(ctx context.Context, workload genome.Workload) error {
			res, err := pileupEng.Run(ctx, workload, source)
			if err != nil {
				return err
			}
			if res.Empty {
				return nil
			}

			rows, err := mismatches.BuildROIRows(ctx, workload.Bin.Contig, res.ROICounter, refEng, retainer, t.prefilter)
			if err != nil {
				return err
			}
			hooksEng.RunCreated(rows)
			strandEng.Apply(rows.Retained, stranding.ROIAccessor)
			strandEng.Apply(rows.Other, stranding.ROIAccessor)
			hooksEng.RunStranded(rows)
			hooksEng.RunFinish(rows)

			flat := make([]mismatches.ROIRow, 0, rows.Len())
			flat = append(flat, rows.Retained...)
			flat = append(flat, rows.Other...)
			output.SortROIRows(flat)
			return writer.WriteRows(flat)
		}

		return runner.Worker{
			Do: do,
			Close: func() error {
				closeWorker(files, fastaRdr)
				if workerEI != nil {
					eiMu.Lock()
					eiTotal.Combine(workerEI)
					eiMu.Unlock()
				}
				return nil
			},
		}, nil
	}

	if err := runner.Run(context.Background(), workloads, c.threads, newWorker); err != nil {
		return err
	}

	if eiTotal != nil {
		if err := output.WriteEditingIndex(*eiPath, c.name, eiTotal.Ratios()); err != nil {
			return err
		}
	}
	return nil
}
