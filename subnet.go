package shuffle

import (
	"fmt"
	"net/netip"

	"github.com/lanrat/shuffle/permute"
)

// maxSubnetBits limits a SubnetSpace to 2^64 subnets, the size of the
// largest permutation domain.
const maxSubnetBits = 64

// SubnetSpace numbers the subnets of a given prefix length inside a network:
// index 0 is the first subnet, index Len()-1 the last.
type SubnetSpace struct {
	network netip.Prefix
	bits    int
	extra   uint
	base    u128
}

// NewSubnetSpace returns the space of /bits subnets inside network.
//
// Returns an error if:
//   - network is not a valid prefix
//   - bits is shorter than the network prefix or longer than an address
//   - the space would hold more than 2^64 subnets
func NewSubnetSpace(network netip.Prefix, bits int) (*SubnetSpace, error) {
	if !network.IsValid() {
		return nil, fmt.Errorf("invalid network prefix %s", network)
	}
	network = network.Masked()
	if bits < network.Bits() || bits > network.Addr().BitLen() {
		return nil, fmt.Errorf("subnet size /%d must be between /%d and /%d", bits, network.Bits(), network.Addr().BitLen())
	}
	extra := uint(bits - network.Bits())
	if extra > maxSubnetBits {
		return nil, fmt.Errorf("subnet space too large: can't index over 2^%d subnets, got 2^%d", maxSubnetBits, extra)
	}
	return &SubnetSpace{
		network: network,
		bits:    bits,
		extra:   extra,
		base:    addrToU128(network.Addr()),
	}, nil
}

// Network returns the enclosing network.
func (s *SubnetSpace) Network() netip.Prefix {
	return s.network
}

// Bits returns the prefix length of each subnet.
func (s *SubnetSpace) Bits() int {
	return s.bits
}

// Len returns the number of subnets. A space of exactly 2^64 subnets reports (0, true).
func (s *SubnetSpace) Len() (uint64, bool) {
	if s.extra == 64 {
		return 0, true
	}
	return uint64(1) << s.extra, false
}

// hostShift is the number of host bits inside each subnet.
func (s *SubnetSpace) hostShift() uint {
	return uint(s.network.Addr().BitLen() - s.bits)
}

// Nth returns the subnet at index i. Indices are taken modulo Len().
func (s *SubnetSpace) Nth(i uint64) netip.Prefix {
	off := u128{lo: i}.and(lowMask(s.extra)).shl(s.hostShift())
	return netip.PrefixFrom(s.base.add(off).addr(s.network.Addr()), s.bits)
}

// Index returns the index of the subnet containing addr.
// It returns false if addr lies outside the network.
func (s *SubnetSpace) Index(addr netip.Addr) (uint64, bool) {
	if s.network.Addr().Is4() {
		addr = addr.Unmap()
	}
	if !s.network.Contains(addr) {
		return 0, false
	}
	return addrToU128(addr).sub(s.base).shr(s.hostShift()).lo, true
}

// Permutation builds a permutation over the subnet indices. Indices are
// carried in int64 bit patterns, so spaces beyond 2^63 subnets use the
// unsigned reading and a space of 2^64 uses the full width.
func (s *SubnetSpace) Permutation(opts ...permute.Option) (permute.Permutation[int64], error) {
	size := int64(permute.Full)
	if n, full := s.Len(); !full {
		size = int64(n)
	}
	return permute.New(size, opts...)
}
