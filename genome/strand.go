package genome

// Strand is the transcribed (parent-transcript) strand of a row, distinct
// from a read's own aligned strand.
type Strand uint8

const (
	Forward Strand = iota
	Reverse
	UnknownStrand
)

func (s Strand) String() string {
	switch s {
	case Forward:
		return "+"
	case Reverse:
		return "-"
	default:
		return "."
	}
}

// Complement flips Forward<->Reverse and leaves UnknownStrand fixed.
func (s Strand) Complement() Strand {
	switch s {
	case Forward:
		return Reverse
	case Reverse:
		return Forward
	default:
		return UnknownStrand
	}
}

// StrandedData holds one value per transcribed strand.
type StrandedData[T any] struct {
	Forward T
	Reverse T
	Unknown T
}

// At indexes a StrandedData by strand.
func (s *StrandedData[T]) At(strand Strand) *T {
	switch strand {
	case Forward:
		return &s.Forward
	case Reverse:
		return &s.Reverse
	default:
		return &s.Unknown
	}
}

// Each invokes fn once per strand, in the canonical Forward, Reverse,
// Unknown order used for output emission.
func (s *StrandedData[T]) Each(fn func(Strand, *T)) {
	fn(Forward, &s.Forward)
	fn(Reverse, &s.Reverse)
	fn(UnknownStrand, &s.Unknown)
}
