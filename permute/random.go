package permute

import (
	"encoding/binary"
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
)

// Source supplies the random words a permutation draws its keys from.
// Every *rand.PCG, *rand.ChaCha8 and other math/rand/v2 source satisfies it.
//
// Sources are typically not safe for concurrent use: give each constructor
// its own, or serialize construction.
type Source interface {
	Uint64() uint64
}

// NewSource returns a deterministic source for seed. Two permutations built
// with the same parameters from NewSource(seed) are identical.
func NewSource(seed uint64) Source {
	return rand.NewPCG(seed, 0)
}

// KeySource returns a deterministic source derived from an arbitrary key,
// such as a tenant name or a passphrase. Distinct keys give unrelated sources.
func KeySource(key []byte) Source {
	hi := xxhash.Sum64(key)

	d := xxhash.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(len(key)))
	_, _ = d.Write(buf[:])
	_, _ = d.Write(key)
	return rand.NewPCG(hi, d.Sum64())
}

// defaultSource returns a fresh, non-deterministic source. It is only used
// when the caller supplies none.
func defaultSource() Source {
	return rand.NewPCG(rand.Uint64(), rand.Uint64())
}
