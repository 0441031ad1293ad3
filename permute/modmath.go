package permute

import "math/bits"

// newtonSteps is enough Newton-Raphson lifts to go from 1 correct bit to 64.
const newtonSteps = 6

// multiplicativeInverse returns a⁻¹ mod 2^k where mask = 2^k - 1.
// a must be odd. Each step doubles the number of correct low bits, starting
// from inv = 1 which is correct mod 2 for any odd a. All arithmetic wraps.
func multiplicativeInverse(a, mask uint64) uint64 {
	inv := uint64(1)
	for range newtonSteps {
		inv *= 2 - a*inv
	}
	return inv & mask
}

// blockParams describes the power-of-two block [0, 2^bits) enclosing a domain.
type blockParams struct {
	mask  uint64
	bits  uint
	shift uint
}

// blockFor returns the smallest block covering n values. Sizes 0 and 1 get a
// one-bit block. The diffusion shift is floor(3k/7); it is zero for blocks
// under three bits, where the xor-shift step is skipped.
func blockFor(n uint64) blockParams {
	k := uint(1)
	if n > 1 {
		k = uint(bits.Len64(n - 1))
	}
	return blockParams{
		mask:  wordMask(k),
		bits:  k,
		shift: 3 * k / 7,
	}
}
