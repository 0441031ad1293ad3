package permute

// Unsigned permutes [0, size) where size and every value are read as the
// unsigned interpretation of their bit pattern. It reaches domains larger
// than the signed maximum of T: an int64 Unsigned of size -2 covers
// 2^64 - 2 values, half of which are negative as int64.
//
// It runs the same cycle-walking engine as Finite; only the ordering differs.
type Unsigned[T Int] struct {
	cycle[T]
}

// NewUnsigned creates an Unsigned permutation over [0, size) in unsigned order.
//
// Returns an error if:
//   - size is zero
//   - WithRounds was given a value below 1
//   - WithMultiplier was given an even constant
func NewUnsigned[T Int](size T, opts ...Option) (*Unsigned[T], error) {
	cfg := newConfig(opts)
	if err := cfg.validate(true); err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, paramError("size", size, "must be non-zero")
	}
	return newUnsigned(size, cfg), nil
}

func newUnsigned[T Int](size T, cfg *config) *Unsigned[T] {
	return &Unsigned[T]{cycle: newCycle[T](word(size), cfg)}
}
