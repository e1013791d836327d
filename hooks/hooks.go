// Package hooks implements the hooks engine (spec component C10): three
// ordered lifecycle slots — on_created, on_stranded, on_finish — each a list
// of hooks run in registration order over a bin's Context.
//
// A hook is one of two flavors. A Filter may drop rows from the Context's
// Other partition (Retained rows bypass every filter by contract). A
// Statistic only observes rows and accumulates its own state; it never
// mutates the Context.
package hooks

import "github.com/ssomyk/rnaedit/mismatches"

// Filter decides whether a row survives. It is applied only to a Context's
// Other partition.
type Filter[T any] interface {
	Keep(row *T) bool
}

// Statistic observes every row of a Context and updates its own internal
// state. It must not mutate the row.
type Statistic[T any] interface {
	Observe(row *T)
}

// Hook wraps exactly one of Filter or Statistic. Engine runs whichever is
// set, in slice order.
type Hook[T any] struct {
	Filter    Filter[T]
	Statistic Statistic[T]
}

// Engine holds the three ordered lifecycle slots rows pass through: once
// right after being built (OnCreated), once after stranding has resolved
// every row it can (OnStranded), and once just before output (OnFinish).
type Engine[T any] struct {
	OnCreated  []Hook[T]
	OnStranded []Hook[T]
	OnFinish   []Hook[T]
}

func run[T any](ctx *mismatches.Context[T], hooks []Hook[T]) {
	for _, h := range hooks {
		switch {
		case h.Filter != nil:
			ctx.FilterOther(h.Filter.Keep)
		case h.Statistic != nil:
			ctx.Each(h.Statistic.Observe)
		}
	}
}

// RunCreated runs the on_created slot.
func (e Engine[T]) RunCreated(ctx *mismatches.Context[T]) { run(ctx, e.OnCreated) }

// RunStranded runs the on_stranded slot.
func (e Engine[T]) RunStranded(ctx *mismatches.Context[T]) { run(ctx, e.OnStranded) }

// RunFinish runs the on_finish slot.
func (e Engine[T]) RunFinish(ctx *mismatches.Context[T]) { run(ctx, e.OnFinish) }
