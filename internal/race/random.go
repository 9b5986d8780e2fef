package race

import (
	"math/rand"
	"sync/atomic"
)

// RandomSource returns values drawn uniformly from [0,1). The engine maps them onto the speed
// variation band; a value outside [0,1) fails the tick it was drawn for.
type RandomSource func() float64

// DefaultSource draws from the process wide generator.
func DefaultSource() RandomSource {
	return rand.Float64
}

// SeededSource returns a reproducible source; two sources with the same seed produce the same
// sequence.
func SeededSource(seed int64) RandomSource {
	return rand.New(rand.NewSource(seed)).Float64
}

// SequenceSource cycles through the given values forever. With no values it always returns 0.5,
// which maps onto no variation at all.
func SequenceSource(values ...float64) RandomSource {
	if len(values) == 0 {
		return func() float64 { return 0.5 }
	}
	var i atomic.Uint64
	return func() float64 {
		n := i.Add(1) - 1
		return values[n%uint64(len(values))]
	}
}
