package permute

import "math/rand/v2"

// SmallThreshold is the largest size New serves with a Table.
const SmallThreshold = 16

// maxTableSize bounds the memory a Table may allocate.
const maxTableSize = 1 << 20

// Table permutes a tiny domain [0, size) with an explicit uniform shuffle and
// its inverse. Construction is O(size); each call is a single lookup.
//
// Rounds and multipliers are irrelevant to a Table and are only validated.
type Table[T Int] struct {
	domain Domain[T]
	fwd    []T
	inv    []T
}

// NewTable creates a Table permutation over [0, size).
//
// Returns an error if size is not positive or larger than 2^20, or if any
// option is invalid.
func NewTable[T Int](size T, opts ...Option) (*Table[T], error) {
	cfg := newConfig(opts)
	if err := cfg.validate(true); err != nil {
		return nil, err
	}
	if size <= 0 || size > maxTableSize {
		return nil, paramError("size", size, "must be in [1, 2^20]")
	}
	return newTable(size, cfg), nil
}

func newTable[T Int](size T, cfg *config) *Table[T] {
	n := int(size)
	t := &Table[T]{
		domain: finiteDomain(T(0), uint64(n)),
		fwd:    make([]T, n),
		inv:    make([]T, n),
	}
	for i := range t.fwd {
		t.fwd[i] = T(i)
	}
	rand.New(cfg.source()).Shuffle(n, func(i, j int) {
		t.fwd[i], t.fwd[j] = t.fwd[j], t.fwd[i]
	})
	for i, v := range t.fwd {
		t.inv[v] = T(i)
	}
	return t
}

// Domain returns [0, size).
func (t *Table[T]) Domain() Domain[T] {
	return t.domain
}

// Encode returns the image of x, or an error if x is outside [0, size).
func (t *Table[T]) Encode(x T) (T, error) {
	if err := t.domain.check(x); err != nil {
		return 0, err
	}
	return t.fwd[x], nil
}

// Decode returns the preimage of y, or an error if y is outside [0, size).
func (t *Table[T]) Decode(y T) (T, error) {
	if err := t.domain.check(y); err != nil {
		return 0, err
	}
	return t.inv[y], nil
}

func (t *Table[T]) EncodeUnchecked(x T) T {
	return t.fwd[word(x)%t.domain.n]
}

func (t *Table[T]) DecodeUnchecked(y T) T {
	return t.inv[word(y)%t.domain.n]
}
