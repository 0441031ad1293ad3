package permute

// Ranged presents a permutation over an arbitrary interval [first, last] by
// shifting values into and out of the wrapped permutation's domain:
// Encode(v) = first + P.Encode(v - first), relative to P's own first value.
//
// Ranged holds a reference to the wrapped permutation and only borrows its
// unchecked calls; membership is checked against the interval.
type Ranged[T Int] struct {
	p      Permutation[T]
	base   T
	domain Domain[T]
}

// NewRanged wraps p so that it operates on [first, last]. The interval length
// must equal p's domain length; an interval spanning every value of T
// requires a full-width p.
func NewRanged[T Int](p Permutation[T], first, last T) (*Ranged[T], error) {
	if last < first {
		return nil, paramError("interval", [2]T{first, last}, "last is below first")
	}
	inner := p.Domain()
	n := (word(last-first) + 1) & wordMask(widthOf[T]())
	var d Domain[T]
	if n == 0 {
		if !inner.Full() {
			return nil, paramError("interval", [2]T{first, last}, "spans the full range but the permutation does not")
		}
		d = fullDomain(first)
	} else {
		if in, full := inner.Len(); full || in != n {
			return nil, paramError("interval", [2]T{first, last}, "length does not match permutation size")
		}
		d = finiteDomain(first, n)
	}
	return &Ranged[T]{p: p, base: inner.First(), domain: d}, nil
}

// Domain returns [first, last].
func (r *Ranged[T]) Domain() Domain[T] {
	return r.domain
}

// Encode returns the image of v, or an error if v is outside [first, last].
func (r *Ranged[T]) Encode(v T) (T, error) {
	if err := r.domain.check(v); err != nil {
		return 0, err
	}
	return r.EncodeUnchecked(v), nil
}

// Decode returns the preimage of v, or an error if v is outside [first, last].
func (r *Ranged[T]) Decode(v T) (T, error) {
	if err := r.domain.check(v); err != nil {
		return 0, err
	}
	return r.DecodeUnchecked(v), nil
}

func (r *Ranged[T]) EncodeUnchecked(v T) T {
	first := r.domain.First()
	return first + r.p.EncodeUnchecked(r.base+v-first) - r.base
}

func (r *Ranged[T]) DecodeUnchecked(v T) T {
	first := r.domain.First()
	return first + r.p.DecodeUnchecked(r.base+v-first) - r.base
}

// Unwrap returns the wrapped permutation.
func (r *Ranged[T]) Unwrap() Permutation[T] {
	return r.p
}
