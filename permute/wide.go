package permute

// mixer is a three-step multiply/xor-shift finalizer over a w-bit word.
type mixer struct {
	c1, c2     uint64
	s1, s2, s3 uint
}

// The MurmurHash3 finalizers for each width.
var (
	mixer32 = mixer{c1: 0x85ebca6b, c2: 0xc2b2ae35, s1: 16, s2: 13, s3: 16}
	mixer64 = mixer{c1: 0xff51afd7ed558ccd, c2: 0xc4ceb9fe1a85ec53, s1: 33, s2: 33, s3: 33}
)

// Wide permutes every value of T. The domain is already a power of two, so
// there is no cycle walking; instead each round is an Even-Mansour style
// wrap of a stronger mixer: xor a pre-whitening key, run the finalizer with
// two odd constants, xor a post-whitening key.
type Wide[T Int] struct {
	width  uint
	mask   uint64
	mix    mixer
	i1, i2 uint64
	keys   [][2]uint64
}

// NewWide creates a permutation over the full range of T.
//
// Returns an error if WithRounds was given a value below 1 or WithMixers was
// given an even constant.
func NewWide[T Int](opts ...Option) (*Wide[T], error) {
	cfg := newConfig(opts)
	if err := cfg.validate(true); err != nil {
		return nil, err
	}
	return newWide[T](cfg), nil
}

func newWide[T Int](cfg *config) *Wide[T] {
	w := widthOf[T]()
	mask := wordMask(w)
	m := mixer64
	if w == 32 {
		m = mixer32
	}
	if cfg.mixSet {
		m.c1, m.c2 = cfg.mix[0]&mask, cfg.mix[1]&mask
	}
	p := &Wide[T]{
		width: w,
		mask:  mask,
		mix:   m,
		i1:    multiplicativeInverse(m.c1, mask),
		i2:    multiplicativeInverse(m.c2, mask),
		keys:  make([][2]uint64, cfg.wideRounds()),
	}
	src := cfg.source()
	for i := range p.keys {
		p.keys[i][0] = src.Uint64() & mask
		p.keys[i][1] = src.Uint64() & mask
	}
	return p
}

// Domain returns the full range of T.
func (p *Wide[T]) Domain() Domain[T] {
	return fullDomain[T](0)
}

// Encode returns the image of x. It never fails.
func (p *Wide[T]) Encode(x T) (T, error) {
	return p.EncodeUnchecked(x), nil
}

// Decode returns the preimage of y. It never fails.
func (p *Wide[T]) Decode(y T) (T, error) {
	return p.DecodeUnchecked(y), nil
}

func (p *Wide[T]) EncodeUnchecked(x T) T {
	v := word(x)
	for _, k := range p.keys {
		v = p.forward(v^k[0]) ^ k[1]
	}
	return T(v)
}

func (p *Wide[T]) DecodeUnchecked(y T) T {
	v := word(y)
	for i := len(p.keys) - 1; i >= 0; i-- {
		k := p.keys[i]
		v = p.backward(v^k[1]) ^ k[0]
	}
	return T(v)
}

func (p *Wide[T]) forward(x uint64) uint64 {
	x = xorShift(x, p.mix.s1)
	x = (x * p.mix.c1) & p.mask
	x = xorShift(x, p.mix.s2)
	x = (x * p.mix.c2) & p.mask
	return xorShift(x, p.mix.s3)
}

func (p *Wide[T]) backward(y uint64) uint64 {
	y = unXorShift(y, p.mix.s3, p.width)
	y = (y * p.i2) & p.mask
	y = unXorShift(y, p.mix.s2, p.width)
	y = (y * p.i1) & p.mask
	return unXorShift(y, p.mix.s1, p.width)
}
