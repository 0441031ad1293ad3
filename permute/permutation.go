package permute

// Permutation is a bijection over a Domain. A constructed Permutation is
// immutable and safe for concurrent use.
//
// Encode and Decode reject values outside the domain with an error wrapping
// ErrOutOfDomain. The Unchecked variants skip that test and are meant for
// callers that already know the value is in range, such as Iterator; given an
// out-of-domain value they return an unspecified in-domain result.
type Permutation[T Int] interface {
	// Domain describes the accepted values.
	Domain() Domain[T]

	// Encode returns the image of x.
	Encode(x T) (T, error)

	// Decode returns the value whose image is y.
	Decode(y T) (T, error)

	EncodeUnchecked(x T) T
	DecodeUnchecked(y T) T
}

// cycle is the cycle-walking engine shared by Finite and Unsigned. Domain
// membership is tested on the unsigned reading of a value, which is what lets
// the same code serve domains above the signed maximum.
type cycle[T Int] struct {
	domain Domain[T]
	r      rounds
}

func newCycle[T Int](n uint64, cfg *config) cycle[T] {
	bp := blockFor(n)
	return cycle[T]{
		domain: finiteDomain(T(0), n),
		r:      newRounds(bp, cfg.multiplier(), cfg.blockRounds(bp.bits), cfg.source()),
	}
}

// Domain returns [0, size).
func (c *cycle[T]) Domain() Domain[T] {
	return c.domain
}

// Encode returns the image of x, or an error if x is outside [0, size).
func (c *cycle[T]) Encode(x T) (T, error) {
	if err := c.domain.check(x); err != nil {
		return 0, err
	}
	return c.EncodeUnchecked(x), nil
}

// Decode returns the preimage of y, or an error if y is outside [0, size).
func (c *cycle[T]) Decode(y T) (T, error) {
	if err := c.domain.check(y); err != nil {
		return 0, err
	}
	return c.DecodeUnchecked(y), nil
}

func (c *cycle[T]) EncodeUnchecked(x T) T {
	return T(c.r.walk(c.clamp(x), c.domain.n))
}

func (c *cycle[T]) DecodeUnchecked(y T) T {
	return T(c.r.unwalk(c.clamp(y), c.domain.n))
}

// clamp folds any value into [0, size) so that a misused unchecked call
// still terminates. Values already in the domain are returned unchanged.
func (c *cycle[T]) clamp(x T) uint64 {
	w := word(x) & c.r.mask
	if w >= c.domain.n {
		w -= c.domain.n
	}
	return w
}
