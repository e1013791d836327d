package main

import (
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"

	"github.com/ssomyk/rnaedit/genome"
	"github.com/ssomyk/rnaedit/ioformats/bamsrc"
	"github.com/ssomyk/rnaedit/ioformats/bed"
	"github.com/ssomyk/rnaedit/ioformats/fasta"
	"github.com/ssomyk/rnaedit/ioformats/gff3"
	"github.com/ssomyk/rnaedit/ioformats/vcf"
	"github.com/ssomyk/rnaedit/mismatches"
	"github.com/ssomyk/rnaedit/output"
	"github.com/ssomyk/rnaedit/partition"
	"github.com/ssomyk/rnaedit/pileup"
	"github.com/ssomyk/rnaedit/readfilter"
	"github.com/ssomyk/rnaedit/refengine"
	"github.com/ssomyk/rnaedit/stranddeduce"
	"github.com/ssomyk/rnaedit/stranding"
)

// template holds everything a worker clones from, per the runner's
// per-worker cache contract (spec §4.11): a fresh bamsrc.MultiFile and
// fasta.Reader are opened per worker (their own file handles), while the
// filters, deducer, and stranding settings below are immutable and shared
// read-only (each worker builds its own hooks engine).
type template struct {
	inputs     []string
	indexPaths []string
	fastaPath  string
	faiPath    string

	filter  readfilter.Filter
	deducer *stranddeduce.Deducer
	trim5   int
	trim3   int

	refMinCov        int
	refMinFreq       float32
	hyperedit        bool
	vcfVariants      map[string][]refengine.Variant
	annotationIdx    gff3.Indices
	hasAnnotation    bool
	strMinMismatches int
	strMinFreq       float64

	prefilter *mismatches.ByMismatches
	retainer  *output.BEDRetainer // nil means nothing is force-retained
}

func buildTemplate(c *commonConfig) (*template, error) {
	t := &template{
		inputs:    []string(c.inputs),
		fastaPath: c.reference,
		filter: readfilter.Filter{
			Quality: readfilter.ByQuality{MinMapQ: uint8(c.mapq), RejectQ255: c.noMapQ255, MinPhred: byte(c.phred)},
			Flags:   readfilter.ByFlags{Include: uint16(c.inFlags), Exclude: uint16(c.exFlags)},
		},
		trim5:            c.trim5,
		trim3:            c.trim3,
		refMinCov:        c.refMinCov,
		refMinFreq:       float32(c.refMinFreq),
		hyperedit:        c.hyperedit,
		strMinMismatches: c.strMinMismatches,
		strMinFreq:       c.strMinFreq,
		prefilter: &mismatches.ByMismatches{
			MinCoverage:   uint32(c.outMinCov),
			MinMismatches: uint32(c.outMinMismatches),
			MinFreq:       c.outMinFreq,
		},
	}

	deducer, err := deducerFor(c.stranding)
	if err != nil {
		return nil, err
	}
	t.deducer = deducer

	if c.vcf != "" {
		variants, err := vcf.Load(c.vcf)
		if err != nil {
			return nil, err
		}
		t.vcfVariants = variants
	}

	if c.annotation != "" {
		idx, err := gff3.Load(c.annotation)
		if err != nil {
			return nil, err
		}
		t.annotationIdx = idx
		t.hasAnnotation = true
	}

	if c.retain != "" {
		recs, err := bed.Load(c.retain)
		if err != nil {
			return nil, errors.Wrapf(err, "rnaedit: loading --retain %s", c.retain)
		}
		t.retainer = output.NewBEDRetainer(recs)
	}

	return t, nil
}

// roiRetainer returns the ROIRetainer to consult, defaulting to
// mismatches.NoRetainer when --retain was not supplied.
func (t *template) roiRetainer() mismatches.ROIRetainer {
	if t.retainer == nil {
		return mismatches.NoRetainer{}
	}
	return t.retainer
}

// siteRetainer returns the SiteRetainer to consult, defaulting to
// mismatches.NoSiteRetainer when --retain was not supplied.
func (t *template) siteRetainer() mismatches.SiteRetainer {
	if t.retainer == nil {
		return mismatches.NoSiteRetainer{}
	}
	return output.SiteRetainerAdapter{BEDRetainer: t.retainer}
}

// openWorker opens this worker's own BAM and FASTA handles and assembles
// its reference engine. Called once per worker inside the runner.NewWorker
// callback passed to runner.Run.
func (t *template) openWorker() ([]*bamsrc.File, *bamsrc.MultiFile, *fasta.Reader, refengine.Engine, error) {
	files := make([]*bamsrc.File, 0, len(t.inputs))
	for i, path := range t.inputs {
		idxPath := ""
		if i < len(t.indexPaths) {
			idxPath = t.indexPaths[i]
		}
		f, err := bamsrc.Open(path, idxPath)
		if err != nil {
			for _, opened := range files {
				opened.Close()
			}
			return nil, nil, nil, nil, err
		}
		files = append(files, f)
	}
	source := bamsrc.NewMultiFile(files)

	fastaRdr, err := fasta.Open(t.fastaPath, t.faiPath)
	if err != nil {
		for _, f := range files {
			f.Close()
		}
		return nil, nil, nil, nil, err
	}

	var refEng refengine.Engine
	if t.vcfVariants != nil {
		refEng = refengine.NewVCFCorrectedReference(fastaRdr, t.vcfVariants)
	} else {
		refEng = refengine.AutoRef{
			MinCoverage:      uint32(t.refMinCov),
			MinFreq:          t.refMinFreq,
			SkipHyperediting: t.hyperedit,
			Reader:           fastaRdr,
		}
	}

	return files, source, fastaRdr, refEng, nil
}

func closeWorker(files []*bamsrc.File, fastaRdr *fasta.Reader) {
	for _, f := range files {
		if err := f.Close(); err != nil {
			log.Error.Printf("rnaedit: closing BAM file: %v", err)
		}
	}
	if fastaRdr != nil {
		if err := fastaRdr.Close(); err != nil {
			log.Error.Printf("rnaedit: closing FASTA reader: %v", err)
		}
	}
}

// pileupEngine builds the shared pileup engine from the template's
// filter/deducer/trim configuration.
func (t *template) pileupEngine() pileup.Engine {
	return pileup.Engine{Filter: t.filter, Deducer: t.deducer, Trim5: t.trim5, Trim3: t.trim3}
}

// roiStrandingEngine assembles the stranding pipeline for ROI rows: by
// annotation (if a GFF3 was supplied), then by editing signal, per spec
// §4.9's ordering (annotation is the stronger signal and runs first).
func (t *template) roiStrandingEngine() stranding.Engine[mismatches.ROIRow] {
	var algos []stranding.Algorithm[mismatches.ROIRow]
	if t.hasAnnotation {
		algos = append(algos, stranding.ROIByAnnotation{ByAnnotation: t.annotationIdx.ByAnnotation()})
	}
	algos = append(algos, stranding.ROIByEditing{ByEditing: stranding.ByEditing{
		MinMismatches: uint32(t.strMinMismatches), MinFreq: t.strMinFreq,
	}})
	return stranding.Engine[mismatches.ROIRow]{Algorithms: algos}
}

// siteStrandingEngine is the site-row equivalent of roiStrandingEngine.
func (t *template) siteStrandingEngine() stranding.Engine[mismatches.SiteRow] {
	var algos []stranding.Algorithm[mismatches.SiteRow]
	if t.hasAnnotation {
		algos = append(algos, stranding.SiteByAnnotation{ByAnnotation: t.annotationIdx.ByAnnotation()})
	}
	algos = append(algos, stranding.SiteByEditing{ByEditing: stranding.ByEditing{
		MinMismatches: uint32(t.strMinMismatches), MinFreq: t.strMinFreq,
	}})
	return stranding.Engine[mismatches.SiteRow]{Algorithms: algos}
}

// loadExcluded loads the --exclude BED, if any, as a plain interval list.
func loadExcluded(path string) ([]genome.Interval, error) {
	if path == "" {
		return nil, nil
	}
	recs, err := bed.Load(path)
	if err != nil {
		return nil, errors.Wrapf(err, "rnaedit: loading --exclude %s", path)
	}
	return bed.Intervals(recs), nil
}

// validateHeaders ensures every input BAM's header reports an identical
// (contig, length) set before whole-genome (site-mode) partitioning.
func validateHeaders(files []*bamsrc.File) ([]partition.ContigLen, error) {
	headers := make([][]partition.ContigLen, len(files))
	for i, f := range files {
		headers[i] = f.ContigLens()
	}
	if err := partition.ValidateIdenticalHeaders(headers); err != nil {
		return nil, err
	}
	return headers[0], nil
}
