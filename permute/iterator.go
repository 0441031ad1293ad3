package permute

import "iter"

// Iterator produces the permuted sequence Encode(i) for consecutive
// positions i of a permutation's domain, starting at an offset and ending at
// the end of the domain. It is lazy, forward-only and not restartable; use
// one Iterator per consumer.
//
// For a full-width domain the positions run in unsigned order through the
// top of the index space: the last element produced is the image of the
// all-ones pattern (-1), after which the Iterator is exhausted.
//
// Example usage:
//
//	it, err := permute.Iterate(p, 0)
//	if err != nil {
//	    return err
//	}
//	for {
//	    v, err := it.Next()
//	    if errors.Is(err, permute.ErrExhausted) {
//	        break
//	    }
//	    // Process v
//	}
type Iterator[T Int] struct {
	p     Permutation[T]
	first T
	pos   uint64
	end   uint64
	full  bool
	done  bool
}

// Iterate returns an Iterator over p starting at position offset, counted from
// the first value of p's domain. For finite domains offset must lie in
// [0, size]; offset == size yields an empty sequence. Offsets are read as
// unsigned, like Unsigned domains. Every offset is valid for a full domain.
func Iterate[T Int](p Permutation[T], offset T) (*Iterator[T], error) {
	d := p.Domain()
	it := &Iterator[T]{
		p:     p,
		first: d.First(),
		pos:   word(offset),
	}
	n, full := d.Len()
	if full {
		it.full = true
		return it, nil
	}
	if it.pos > n {
		return nil, &DomainError{Value: offset, First: T(0), Last: T(n)}
	}
	it.end = n
	it.done = it.pos == n
	return it, nil
}

// Next returns the next element, or ErrExhausted once the sequence has ended.
func (it *Iterator[T]) Next() (T, error) {
	if it.done {
		return 0, ErrExhausted
	}
	v := it.p.EncodeUnchecked(it.first + T(it.pos))
	switch {
	case it.full:
		if it.pos == wordMask(widthOf[T]()) {
			it.done = true
		}
		it.pos++
	default:
		it.pos++
		it.done = it.pos == it.end
	}
	return v, nil
}

// Done reports whether the sequence is exhausted.
func (it *Iterator[T]) Done() bool {
	return it.done
}

// All returns the remaining elements as a single-use sequence.
func (it *Iterator[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, err := it.Next()
			if err != nil || !yield(v) {
				return
			}
		}
	}
}
