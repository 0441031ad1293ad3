package permute

import "math"

// Int is the set of signed integer types a permutation can be built over.
// The engine computes on 64-bit words masked to the width of T, so an int32
// and an int64 permutation built from the same source agree bit for bit on
// every block narrower than 32 bits.
type Int interface {
	~int | ~int32 | ~int64
}

// Full is the size sentinel selecting the entire range of the integer type.
const Full = -1

// widthOf returns the number of bits in T.
func widthOf[T Int]() uint {
	x := T(math.MaxInt32)
	if x+1 < 0 {
		return 32
	}
	return 64
}

// wordMask returns the mask covering a w-bit word.
func wordMask(w uint) uint64 {
	return ^uint64(0) >> (64 - w)
}

// word returns the unsigned reading of x's bit pattern.
func word[T Int](x T) uint64 {
	return uint64(x) & wordMask(widthOf[T]())
}

// Domain describes the set of values a permutation accepts and produces:
// either the full range of T, or n consecutive values starting at First
// (consecutive in wrapping order, so an unsigned-interpreted domain may run
// through the negative numbers).
type Domain[T Int] struct {
	first T
	n     uint64
	full  bool
}

func finiteDomain[T Int](first T, n uint64) Domain[T] {
	return Domain[T]{first: first, n: n}
}

func fullDomain[T Int](first T) Domain[T] {
	return Domain[T]{first: first, full: true}
}

// First returns the first value of the domain.
func (d Domain[T]) First() T {
	return d.first
}

// Last returns the last value of the domain.
func (d Domain[T]) Last() T {
	if d.full {
		return T(Full) + d.first
	}
	return d.first + T(d.n-1)
}

// Full reports whether the domain covers every value of T.
func (d Domain[T]) Full() bool {
	return d.full
}

// Len returns the number of values in the domain. A full domain of 64 bits
// does not fit in a uint64, so Len reports (0, true) for every full domain.
func (d Domain[T]) Len() (uint64, bool) {
	if d.full {
		return 0, true
	}
	return d.n, false
}

// Size returns the domain size in the constructor convention: Full for the
// full range, otherwise the count as T, which is negative when the count only
// fits the unsigned reading of T.
func (d Domain[T]) Size() T {
	if d.full {
		return Full
	}
	return T(d.n)
}

// Contains reports whether x lies inside the domain.
func (d Domain[T]) Contains(x T) bool {
	if d.full {
		return true
	}
	return word(x-d.first) < d.n
}

// offset returns the position of x counted from First.
func (d Domain[T]) offset(x T) uint64 {
	return word(x - d.first)
}

func (d Domain[T]) check(x T) error {
	if d.Contains(x) {
		return nil
	}
	return &DomainError{Value: x, First: d.First(), Last: d.Last()}
}
