package permute

// xorShift applies the diffusion step x ^= x >> s.
func xorShift(x uint64, s uint) uint64 {
	return x ^ (x >> s)
}

// unXorShift inverts xorShift on a w-bit word. Applying the same step with
// shifts s, 2s, 4s, ... cancels one more layer of the cascade each time.
func unXorShift(y uint64, s, w uint) uint64 {
	for ; s > 0 && s < w; s <<= 1 {
		y ^= y >> s
	}
	return y
}

// rounds is the keyed affine/xor-shift round sequence over one block.
// It is a bijection on [0, 2^bits) for any odd multiplier.
type rounds struct {
	blockParams
	mul  uint64
	inv  uint64
	keys []uint64
}

func newRounds(bp blockParams, mul uint64, n int, src Source) rounds {
	r := rounds{
		blockParams: bp,
		mul:         mul & bp.mask,
		keys:        make([]uint64, n),
	}
	r.inv = multiplicativeInverse(r.mul, bp.mask)
	for i := range r.keys {
		r.keys[i] = src.Uint64() & bp.mask
	}
	return r
}

// round applies one forward round: affine step then diffusion.
func (r *rounds) round(x, key uint64) uint64 {
	x = (x*r.mul + key) & r.mask
	if r.shift > 0 {
		x = xorShift(x, r.shift)
	}
	return x
}

// unround inverts round: diffusion first, then the affine step.
func (r *rounds) unround(y, key uint64) uint64 {
	y = unXorShift(y, r.shift, r.bits)
	return ((y - key) * r.inv) & r.mask
}

// forward applies every round in key order.
func (r *rounds) forward(x uint64) uint64 {
	for _, k := range r.keys {
		x = r.round(x, k)
	}
	return x
}

// backward applies every inverse round in reverse key order.
func (r *rounds) backward(y uint64) uint64 {
	for i := len(r.keys) - 1; i >= 0; i-- {
		y = r.unround(y, r.keys[i])
	}
	return y
}
