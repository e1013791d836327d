// Package vcf parses single-sample VCF files into refengine.Variants. No
// library in the retrieval pack reads VCF; this hand-rolled bufio.Scanner
// reader follows the same line-tokenizing idiom the teacher uses for BED
// in interval/bedunion.go (see DESIGN.md).
package vcf

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ssomyk/rnaedit/genome"
	"github.com/ssomyk/rnaedit/nuc"
	"github.com/ssomyk/rnaedit/refengine"
)

// Load reads a single-sample VCF, keeping only biallelic single-base
// substitutions, and returns the per-contig Variant list refengine.
// NewVCFCorrectedReference expects. Genotype (0,0) is skipped; (0,1)/(1,0)
// becomes heterozygous; (1,1) becomes homozygous, per spec §6.2.
func Load(path string) (map[string][]refengine.Variant, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "vcf: opening %s", path)
	}
	defer f.Close()

	out := make(map[string][]refengine.Variant)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 10 {
			return nil, errors.Errorf("vcf: %s line %d: fewer than 10 columns (expected single-sample VCF)", path, lineNo)
		}
		contig := fields[0]
		pos, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "vcf: %s line %d: malformed POS", path, lineNo)
		}
		if pos < 1 {
			return nil, errors.Errorf("vcf: %s line %d: non-positive POS %d", path, lineNo, pos)
		}
		ref := fields[3]
		altField := fields[4]
		if len(ref) != 1 || altField == "." {
			continue
		}
		alts := strings.Split(altField, ",")
		if len(alts) != 1 || len(alts[0]) != 1 {
			// Multiallelic or indel: spec §6.2 restricts to biallelic SNVs.
			continue
		}
		refBase := nuc.FromByte(ref[0])
		altBase := nuc.FromByte(alts[0][0])
		if refBase == nuc.Unknown || altBase == nuc.Unknown {
			continue
		}

		gt, err := genotype(fields[8], fields[9])
		if err != nil {
			return nil, errors.Wrapf(err, "vcf: %s line %d", path, lineNo)
		}
		switch gt {
		case gtHomRef:
			continue
		case gtHet:
			out[contig] = append(out[contig], refengine.Variant{
				Pos: genome.PosType(pos - 1), Homozygous: false,
				Het: [2]nuc.ReqNucleotide{refBase.Req(), altBase.Req()},
			})
		case gtHomAlt:
			out[contig] = append(out[contig], refengine.Variant{
				Pos: genome.PosType(pos - 1), Homozygous: true, Alt: altBase.Req(),
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "vcf: reading %s", path)
	}
	return out, nil
}

type genotypeCall int

const (
	gtHomRef genotypeCall = iota
	gtHet
	gtHomAlt
)

// genotype extracts the GT subfield from the sample column, using the
// FORMAT column to find its index.
func genotype(format, sample string) (genotypeCall, error) {
	formatFields := strings.Split(format, ":")
	gtIdx := -1
	for i, f := range formatFields {
		if f == "GT" {
			gtIdx = i
			break
		}
	}
	if gtIdx == -1 {
		return 0, errors.New("no GT subfield in FORMAT column")
	}
	sampleFields := strings.Split(sample, ":")
	if gtIdx >= len(sampleFields) {
		return 0, errors.New("sample column shorter than FORMAT column")
	}
	gt := sampleFields[gtIdx]
	gt = strings.NewReplacer("|", "/").Replace(gt)
	alleles := strings.Split(gt, "/")
	if len(alleles) != 2 {
		return 0, errors.Errorf("unsupported (non-diploid) genotype %q", gt)
	}
	a, aErr := strconv.Atoi(alleles[0])
	b, bErr := strconv.Atoi(alleles[1])
	if aErr != nil || bErr != nil {
		return 0, errors.Errorf("unparseable genotype %q", gt)
	}
	switch {
	case a == 0 && b == 0:
		return gtHomRef, nil
	case a == 1 && b == 1:
		return gtHomAlt, nil
	case (a == 0 && b == 1) || (a == 1 && b == 0):
		return gtHet, nil
	default:
		return 0, errors.Errorf("unsupported multiallelic genotype %q", gt)
	}
}
