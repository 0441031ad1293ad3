// Package permute builds deterministic, invertible permutations over integer
// domains without storing lookup tables.
//
// A permutation maps every value of its domain to exactly one other value of
// the same domain, and can map it back. It is fully described by a handful of
// round keys drawn from a random source at construction, so a domain of 2^63
// values costs the same few bytes as a domain of 100.
//
// Four strategies share one engine:
//   - Table: an explicit shuffle for tiny domains (at most SmallThreshold values)
//   - Finite: affine/xor-shift rounds over the enclosing power-of-two block,
//     cycle walking until the result lands inside [0, size)
//   - Wide: the entire signed range of the integer type, no cycle walking,
//     whitened multiply/xor-shift rounds
//   - Unsigned: the Finite engine over [0, size) where size is read as an
//     unsigned quantity, for domains larger than the signed maximum
//
// Ranged shifts any of them onto an arbitrary interval [first, last], and
// Iterate walks the permuted sequence lazily from any offset.
//
// Use cases include repeatable shuffling, identifier obfuscation and masking.
//
// Note: This package does not provide cryptographic security. The mapping can be
// recovered by anyone observing enough input/output pairs.
//
// Example usage:
//
//	// Permute [0, 1000000) with a reproducible seed
//	p, _ := permute.New(int64(1000000), permute.WithSeed(42))
//
//	y, _ := p.Encode(1234)
//	x, _ := p.Decode(y) // x == 1234
//
//	// Walk the whole domain in permuted order
//	it, _ := permute.Iterate(p, 0)
//	for v := range it.All() {
//	    // Process v
//	}
package permute
