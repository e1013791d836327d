// Command rnaedit quantifies RNA editing from aligned RNA-seq reads,
// either over a BED file of regions of interest (the "rois" subcommand)
// or over the whole genome binned into fixed-width windows (the "sites"
// subcommand). Flag and subcommand shape follows
// grailbio-bio/cmd/bio-pileup/main.go, split into two flag.FlagSets
// instead of one since this tool has two genuinely different modes.
package main

import (
	"flag"
	"strings"

	"github.com/pkg/errors"

	"github.com/ssomyk/rnaedit/stranddeduce"
)

// stringSlice implements flag.Value for a flag repeatable across the
// command line, used for -i/--input.
type stringSlice []string

func (s *stringSlice) String() string { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// commonConfig holds every flag shared between the rois and sites
// subcommands (spec §6.1's common flag table).
type commonConfig struct {
	inputs       stringSlice
	reference    string
	stranding    string
	binSize      int64
	threads      int
	name         string
	saveto       string
	exclude      string
	mapq         int
	noMapQ255    bool
	inFlags      int
	exFlags      int
	phred        int
	trim5, trim3 int

	refMinCov  int
	refMinFreq float64
	hyperedit  bool
	vcf        string

	annotation       string
	strMinMismatches int
	strMinFreq       float64

	outMinCov        int
	outMinMismatches int
	outMinFreq       float64

	retain string
}

// registerCommon wires every common flag, under both its short and long
// spelling where the spec gives one, onto fs. outMinMismatchesDefault lets
// each subcommand supply its own --out-min-mismatches default (5 for
// rois, 3 for sites, per spec §6.1).
func registerCommon(fs *flag.FlagSet, outMinMismatchesDefault int) *commonConfig {
	c := &commonConfig{}

	fs.Var(&c.inputs, "i", "aligned-reads input file (repeatable)")
	fs.Var(&c.inputs, "input", "aligned-reads input file (repeatable)")

	for _, name := range []string{"r", "reference"} {
		fs.StringVar(&c.reference, name, "", "indexed reference assembly FASTA")
	}
	for _, name := range []string{"s", "stranding"} {
		fs.StringVar(&c.stranding, name, "", "experiment design: u, s, f, s/f, or f/s")
	}
	fs.Int64Var(&c.binSize, "binsize", 64000, "max workload bin width")
	for _, name := range []string{"t", "threads"} {
		fs.IntVar(&c.threads, name, 1, "worker count")
	}
	for _, name := range []string{"n", "name"} {
		fs.StringVar(&c.name, name, "NA", "run label written into stats")
	}
	for _, name := range []string{"o", "saveto"} {
		fs.StringVar(&c.saveto, name, "/dev/stdout", "main output path")
	}
	fs.StringVar(&c.exclude, "exclude", "", "BED of regions to subtract from every workload")
	fs.IntVar(&c.mapq, "mapq", 1, "minimum mapping quality")
	fs.BoolVar(&c.noMapQ255, "no-mapq-255", false, "reject reads with mapq == 255")
	fs.IntVar(&c.inFlags, "in-flags", 0, "required-set SAM flag mask")
	fs.IntVar(&c.exFlags, "ex-flags", 2820, "excluded SAM flag mask")
	fs.IntVar(&c.phred, "phread", 20, "minimum base quality")
	for _, name := range []string{"5", "trim5"} {
		fs.IntVar(&c.trim5, name, 0, "bases trimmed from the read's 5' end")
	}
	for _, name := range []string{"3", "trim3"} {
		fs.IntVar(&c.trim3, name, 0, "bases trimmed from the read's 3' end")
	}
	fs.IntVar(&c.refMinCov, "ref-min-cov", 20, "autoref coverage floor")
	fs.Float64Var(&c.refMinFreq, "ref-min-freq", 0.95, "autoref frequency floor")
	fs.BoolVar(&c.hyperedit, "hyperedit", false, "disable A->G, T->C autoref corrections")
	fs.StringVar(&c.vcf, "vcf", "", "single-sample VCF of known variants; selects the VCF-corrected reference engine over autoref")
	fs.StringVar(&c.annotation, "annotation", "", "GFF3 file enabling by-annotation stranding")
	fs.IntVar(&c.strMinMismatches, "str-min-mismatches", 50, "editing-based stranding mismatch floor")
	fs.Float64Var(&c.strMinFreq, "str-min-freq", 0.05, "editing-based stranding frequency floor")
	fs.IntVar(&c.outMinCov, "out-min-cov", 10, "output prefilter coverage floor")
	fs.IntVar(&c.outMinMismatches, "out-min-mismatches", outMinMismatchesDefault, "output prefilter mismatch floor")
	fs.Float64Var(&c.outMinFreq, "out-min-freq", 0.01, "output prefilter frequency floor")
	fs.StringVar(&c.retain, "retain", "", "BED of rows/positions that bypass the output prefilter entirely")

	return c
}

// validate checks the common flags that every mode requires, independent
// of rois/sites-specific flags.
func (c *commonConfig) validate() error {
	if len(c.inputs) == 0 {
		return errors.New("at least one -i/--input is required")
	}
	if c.reference == "" {
		return errors.New("-r/--reference is required")
	}
	if c.stranding == "" {
		return errors.New("-s/--stranding is required")
	}
	if _, err := deducerFor(c.stranding); err != nil {
		return err
	}
	if c.binSize <= 0 || c.binSize > 1_000_000 {
		return errors.Errorf("--binsize must be in 1..1000000, got %d", c.binSize)
	}
	if c.threads < 1 {
		return errors.Errorf("-t/--threads must be >= 1, got %d", c.threads)
	}
	if c.mapq < 0 || c.mapq > 254 {
		return errors.Errorf("--mapq must be in 0..254, got %d", c.mapq)
	}
	if c.inFlags < 0 || c.inFlags > 4095 {
		return errors.Errorf("--in-flags must be in 0..4095, got %d", c.inFlags)
	}
	if c.exFlags < 0 || c.exFlags > 4095 {
		return errors.Errorf("--ex-flags must be in 0..4095, got %d", c.exFlags)
	}
	if c.phred < 0 || c.phred > 255 {
		return errors.Errorf("--phread must be in 0..255, got %d", c.phred)
	}
	return nil
}

// deducerFor maps the -s/--stranding flag value to an optional Deducer; a
// nil Deducer means the library is unstranded.
func deducerFor(s string) (*stranddeduce.Deducer, error) {
	switch s {
	case "u":
		return nil, nil
	case "s":
		d := stranddeduce.New(stranddeduce.Same)
		return &d, nil
	case "f":
		d := stranddeduce.New(stranddeduce.Flip)
		return &d, nil
	case "s/f":
		d := stranddeduce.New(stranddeduce.Same1Flip2)
		return &d, nil
	case "f/s":
		d := stranddeduce.New(stranddeduce.Flip1Same2)
		return &d, nil
	default:
		return nil, errors.Errorf("unrecognized -s/--stranding value %q (want u, s, f, s/f, or f/s)", s)
	}
}
