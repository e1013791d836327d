// Package fasta implements indexed (.fai) random-access FASTA reading,
// satisfying refengine.FastaReader. The index-driven seek-and-buffer
// strategy is adapted from the teacher's own hand-rolled indexed FASTA
// reader; no third-party library anywhere in the retrieval pack reads
// .fai-indexed FASTA.
package fasta

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"sync"

	"github.com/pkg/errors"

	"github.com/ssomyk/rnaedit/genome"
	"github.com/ssomyk/rnaedit/nuc"
)

var indexLineRE = regexp.MustCompile(`^(\S+)\t(\d+)\t(\d+)\t(\d+)\t(\d+)`)

type indexEntry struct {
	length    int64
	offset    int64
	lineBase  int64
	lineWidth int64
}

// Reader is a thread-unsafe(ish, guarded by a mutex) indexed FASTA reader.
// One Reader is built per worker in the runner's per-worker cache.
type Reader struct {
	seqs   map[string]indexEntry
	file   *os.File
	mu     sync.Mutex
	bufOff int64
	buf    []byte
}

// Open opens fastaPath and fastaPath+".fai" and builds the index in memory.
func Open(fastaPath, faiPath string) (*Reader, error) {
	if faiPath == "" {
		faiPath = fastaPath + ".fai"
	}
	f, err := os.Open(fastaPath)
	if err != nil {
		return nil, errors.Wrapf(err, "fasta: opening %s", fastaPath)
	}
	fai, err := os.Open(faiPath)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "fasta: opening index %s", faiPath)
	}
	defer fai.Close()

	r := &Reader{file: f, seqs: make(map[string]indexEntry)}
	scanner := bufio.NewScanner(fai)
	for scanner.Scan() {
		m := indexLineRE.FindStringSubmatch(scanner.Text())
		if m == nil {
			f.Close()
			return nil, errors.Errorf("fasta: malformed .fai line: %q", scanner.Text())
		}
		length, _ := strconv.ParseInt(m[2], 10, 64)
		offset, _ := strconv.ParseInt(m[3], 10, 64)
		lineBase, _ := strconv.ParseInt(m[4], 10, 64)
		lineWidth, _ := strconv.ParseInt(m[5], 10, 64)
		r.seqs[m[1]] = indexEntry{length: length, offset: offset, lineBase: lineBase, lineWidth: lineWidth}
	}
	if err := scanner.Err(); err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "fasta: reading index %s", faiPath)
	}
	return r, nil
}

// ContigLen returns the indexed length of contig.
func (r *Reader) ContigLen(contig string) (genome.PosType, bool) {
	e, ok := r.seqs[contig]
	if !ok {
		return 0, false
	}
	return genome.PosType(e.length), true
}

// Close releases the underlying file handle.
func (r *Reader) Close() error { return r.file.Close() }

// fetchBytes reads raw, newline-stripped ASCII bases over [start, end).
func (r *Reader) fetchBytes(contig string, start, end int64) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.seqs[contig]
	if !ok {
		return nil, errors.Errorf("fasta: unknown contig %q", contig)
	}
	if end > e.length {
		return nil, errors.Errorf("fasta: range end %d past contig %q length %d", end, contig, e.length)
	}
	if end <= start {
		return nil, fmt.Errorf("fasta: empty or inverted range [%d,%d)", start, end)
	}

	charsPerLine := e.lineWidth - e.lineBase
	byteOffset := e.offset + start + charsPerLine*(start/e.lineBase)
	firstLineBases := e.lineBase - (start % e.lineBase)
	var newlines int64
	if end-start > firstLineBases {
		newlines = 1 + (end-start-firstLineBases)/e.lineBase
	}
	toRead := end - start + newlines*charsPerLine

	raw, err := r.readAt(byteOffset, toRead)
	if err != nil {
		return nil, errors.Wrapf(err, "fasta: reading %s:%d-%d", contig, start, end)
	}

	out := make([]byte, 0, end-start)
	linePos := (byteOffset - e.offset) % e.lineWidth
	for _, b := range raw {
		if linePos < e.lineBase {
			out = append(out, b)
		}
		linePos++
		if linePos == e.lineWidth {
			linePos = 0
		}
	}
	return out, nil
}

func (r *Reader) readAt(offset, n int64) ([]byte, error) {
	limit := offset + n
	if offset < r.bufOff || limit > r.bufOff+int64(len(r.buf)) {
		if _, err := r.file.Seek(offset, io.SeekStart); err != nil {
			return nil, err
		}
		size := n
		if size < 8192 {
			size = 8192
		}
		buf := make([]byte, size)
		read, err := io.ReadFull(r.file, buf)
		if err != nil && err != io.ErrUnexpectedEOF {
			return nil, err
		}
		r.bufOff = offset
		r.buf = buf[:read]
	}
	return r.buf[offset-r.bufOff : limit-r.bufOff], nil
}

// Fetch implements refengine.FastaReader: returns the assembly bases over
// span as Nucleotides, classifying anything outside A/C/G/T as Unknown.
func (r *Reader) Fetch(_ context.Context, contig string, span genome.Interval) ([]nuc.Nucleotide, error) {
	raw, err := r.fetchBytes(contig, span.Start, span.End)
	if err != nil {
		return nil, err
	}
	out := make([]nuc.Nucleotide, len(raw))
	for i, b := range raw {
		out[i] = nuc.FromByte(b)
	}
	return out, nil
}
