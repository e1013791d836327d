// Package mismatches implements the mismatch builder (spec component C8):
// it pairs accumulated nucleotide counts with the predicted reference to
// build per-row mismatch summaries, and partitions rows into a retained set
// (bypasses every downstream filter) and an other set (subject to hooks and
// output prefiltering).
package mismatches

// Context holds one bin's emitted rows, split into rows that must survive
// regardless of filtering (Retained) and rows still subject to it (Other).
// Filters may only prune Other; Retained is never touched downstream.
type Context[T any] struct {
	Retained []T
	Other    []T
}

// Each visits every row in the context, Retained first, then Other.
func (c *Context[T]) Each(fn func(*T)) {
	for i := range c.Retained {
		fn(&c.Retained[i])
	}
	for i := range c.Other {
		fn(&c.Other[i])
	}
}

// Len returns the total row count across both partitions.
func (c *Context[T]) Len() int {
	return len(c.Retained) + len(c.Other)
}

// FilterOther replaces Other with the subset keep accepts. Retained is
// untouched, per the filter contract.
func (c *Context[T]) FilterOther(keep func(*T) bool) {
	kept := c.Other[:0]
	for i := range c.Other {
		if keep(&c.Other[i]) {
			kept = append(kept, c.Other[i])
		}
	}
	c.Other = kept
}

func place[T any](ctx *Context[T], row T, retained bool, accept bool) {
	switch {
	case retained:
		ctx.Retained = append(ctx.Retained, row)
	case accept:
		ctx.Other = append(ctx.Other, row)
	}
}
