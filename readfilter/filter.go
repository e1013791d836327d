// Package readfilter implements the read and per-base admission predicates
// (spec component C2): two independent, cheaply-clonable predicates shared
// read-only across worker threads.
package readfilter

import "github.com/ssomyk/rnaedit/read"

// ByQuality accepts reads by MAPQ and bases by Phred score.
type ByQuality struct {
	MinMapQ    uint8
	RejectQ255 bool
	MinPhred   byte
}

// AcceptRead reports whether r passes the MAPQ gate.
func (f ByQuality) AcceptRead(r *read.Record) bool {
	if r.MapQ < f.MinMapQ {
		return false
	}
	if f.RejectQ255 && r.MapQ == 255 {
		return false
	}
	return true
}

// AcceptBase reports whether the base quality at read-position i clears the
// configured floor.
func (f ByQuality) AcceptBase(r *read.Record, i int) bool {
	return r.Qual[i] >= f.MinPhred
}

// ByFlags accepts reads whose SAM flags satisfy an include/exclude mask
// pair: every bit in Include must be set, and no bit in Exclude may be set.
type ByFlags struct {
	Include uint16
	Exclude uint16
}

// Accept reports whether r's flags satisfy the mask pair.
func (f ByFlags) Accept(r *read.Record) bool {
	return (r.Flags&f.Include) == f.Include && (r.Flags&f.Exclude) == 0
}

// Filter composes ByQuality and ByFlags into the single predicate the
// counter applies per read and per base.
type Filter struct {
	Quality ByQuality
	Flags   ByFlags
}

// AcceptRead reports whether r should be counted at all.
func (f Filter) AcceptRead(r *read.Record) bool {
	return f.Quality.AcceptRead(r) && f.Flags.Accept(r)
}

// AcceptBase reports whether the base at read-position i should be counted.
func (f Filter) AcceptBase(r *read.Record, i int) bool {
	return f.Quality.AcceptBase(r, i)
}
