package shuffle

import (
	"fmt"
	"net/netip"

	"github.com/lanrat/shuffle/permute"
)

// AddrMasker replaces host addresses inside a network with other addresses
// of the same network, bijectively. Masking is keyed: the same key always
// masks an address the same way, and Unmask recovers the original.
//
// It is meant for pseudonymizing logs and datasets, not for secrecy.
type AddrMasker struct {
	hosts *SubnetSpace
	p     permute.Permutation[int64]
}

// NewAddrMasker returns a masker over the addresses of network, which may
// have at most 64 host bits. The options select the key, as for permute.New.
func NewAddrMasker(network netip.Prefix, opts ...permute.Option) (*AddrMasker, error) {
	if !network.IsValid() {
		return nil, fmt.Errorf("invalid network prefix %s", network)
	}
	hosts, err := NewSubnetSpace(network, network.Addr().BitLen())
	if err != nil {
		return nil, err
	}
	p, err := hosts.Permutation(opts...)
	if err != nil {
		return nil, err
	}
	v("masking %s with %T", hosts.Network(), p)
	return &AddrMasker{hosts: hosts, p: p}, nil
}

// Network returns the masked network.
func (m *AddrMasker) Network() netip.Prefix {
	return m.hosts.Network()
}

// Mask returns the masked form of addr.
func (m *AddrMasker) Mask(addr netip.Addr) (netip.Addr, error) {
	return m.apply(addr, m.p.EncodeUnchecked)
}

// Unmask returns the address that masks to addr.
func (m *AddrMasker) Unmask(addr netip.Addr) (netip.Addr, error) {
	return m.apply(addr, m.p.DecodeUnchecked)
}

func (m *AddrMasker) apply(addr netip.Addr, f func(int64) int64) (netip.Addr, error) {
	i, ok := m.hosts.Index(addr)
	if !ok {
		return netip.Addr{}, fmt.Errorf("%w: %s is not in %s", permute.ErrOutOfDomain, addr, m.hosts.Network())
	}
	return m.hosts.Nth(uint64(f(int64(i)))).Addr(), nil
}
