package permute

// Finite permutes [0, size) for any positive size by cycle walking the keyed
// rounds over the smallest enclosing power-of-two block.
//
// Construction is O(rounds); each call costs O(rounds) with fewer than two
// walks on average.
type Finite[T Int] struct {
	cycle[T]
}

// NewFinite creates a Finite permutation over [0, size).
//
// Returns an error if:
//   - size is not positive
//   - WithRounds was given a value below 1
//   - WithMultiplier was given an even constant
func NewFinite[T Int](size T, opts ...Option) (*Finite[T], error) {
	cfg := newConfig(opts)
	if err := cfg.validate(true); err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, paramError("size", size, "must be positive")
	}
	return newFinite(size, cfg), nil
}

func newFinite[T Int](size T, cfg *config) *Finite[T] {
	return &Finite[T]{cycle: newCycle[T](uint64(size), cfg)}
}
