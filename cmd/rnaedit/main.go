package main

import (
	"fmt"
	"io"
	"os"

	"github.com/grailbio/base/log"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s {rois|sites} [flags]\n", os.Args[0])
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "rois":
		err = runROIs(os.Args[2:])
	case "sites":
		err = runSites(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("rnaedit: %v", err)
	}
}

// nopCloser wraps a writer that must not be closed by its consumer, such
// as os.Stdout.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput opens path for writing, special-casing /dev/stdout (spec
// §6.1's default -o/--saveto) so the process's real stdout is never
// closed out from under it.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "/dev/stdout" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}
