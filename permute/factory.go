package permute

// New selects and constructs the permutation best suited to size:
//   - Full: a Wide permutation over every value of T
//   - any other negative size: an Unsigned permutation over the unsigned
//     reading of size
//   - 1 to SmallThreshold: a Table
//   - anything larger: a Finite permutation
//
// Options supply the random source (a fresh non-deterministic one by
// default), the round count (0 selects a default suited to the size) and the
// mixing constants.
//
// Returns an error if size is zero or an option is invalid.
//
// Example:
//
//	p, err := permute.New(int64(1000000), permute.WithSeed(1))
//	if err != nil {
//	    return err
//	}
//	y, _ := p.Encode(42)
func New[T Int](size T, opts ...Option) (Permutation[T], error) {
	cfg := newConfig(opts)
	if err := cfg.validate(false); err != nil {
		return nil, err
	}
	return build(size, cfg)
}

func build[T Int](size T, cfg *config) (Permutation[T], error) {
	switch {
	case size == Full:
		return newWide[T](cfg), nil
	case size < 0:
		return newUnsigned(size, cfg), nil
	case size == 0:
		return nil, paramError("size", size, "must be non-zero")
	case size <= SmallThreshold:
		return newTable(size, cfg), nil
	default:
		return newFinite(size, cfg), nil
	}
}

// NewRange constructs a permutation over the inclusive interval [first, last].
// The interval may be as large as the whole range of T, in which case the
// underlying permutation is Wide; lengths above the signed maximum use an
// Unsigned permutation.
//
// Example:
//
//	// Shuffle ticket numbers 1000 through 9999
//	p, err := permute.NewRange(int64(1000), int64(9999), permute.WithKey([]byte("raffle")))
func NewRange[T Int](first, last T, opts ...Option) (*Ranged[T], error) {
	if last < first {
		return nil, paramError("interval", [2]T{first, last}, "last is below first")
	}
	cfg := newConfig(opts)
	if err := cfg.validate(false); err != nil {
		return nil, err
	}

	// The length as T: 0 when it wraps to 2^width, negative above the signed
	// maximum, and Full when it is exactly one short of 2^width.
	var p Permutation[T]
	switch size := last - first + 1; size {
	case 0:
		p = newWide[T](cfg)
	case Full:
		p = newUnsigned(size, cfg)
	default:
		var err error
		if p, err = build(size, cfg); err != nil {
			return nil, err
		}
	}
	return NewRanged(p, first, last)
}
