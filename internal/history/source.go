package history

import "math/rand"

// Source is the random source used by the generator. Injecting it keeps the
// generator seedable, so tests can fix the seed and replay identical output.
type Source interface {
	// IntBetween returns a uniform integer in [min, max], both inclusive.
	IntBetween(min, max int) int
	// Coin returns a fair boolean.
	Coin() bool
}

type randSource struct {
	r *rand.Rand
}

// NewSource returns a Source backed by math/rand with the given seed.
func NewSource(seed int64) Source {
	return &randSource{r: rand.New(rand.NewSource(seed))}
}

func (s *randSource) IntBetween(min, max int) int {
	return min + s.r.Intn(max-min+1)
}

func (s *randSource) Coin() bool {
	return s.r.Intn(2) == 0
}

// pick returns a uniformly chosen element of items.
func pick[T any](src Source, items []T) T {
	return items[src.IntBetween(0, len(items)-1)]
}
