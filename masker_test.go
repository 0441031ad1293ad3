package shuffle

import (
	"errors"
	"net/netip"
	"testing"

	"github.com/lanrat/shuffle/permute"
)

func TestAddrMaskerRoundTrip(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		network string
		addrs   []string
	}{
		{"192.0.2.0/24", []string{"192.0.2.0", "192.0.2.1", "192.0.2.128", "192.0.2.255"}},
		{"10.0.0.0/8", []string{"10.0.0.1", "10.20.30.40", "10.255.255.255"}},
		{"198.51.100.7/32", []string{"198.51.100.7"}},
		{"2001:db8::/64", []string{"2001:db8::1", "2001:db8::ffff:ffff:ffff:ffff", "2001:db8::8000:0:0:0"}},
		{"2001:db8::/80", []string{"2001:db8::1", "2001:db8::ffff:ffff:ffff"}},
	}

	for _, tc := range testCases {
		t.Run(tc.network, func(t *testing.T) {
			t.Parallel()

			network := netip.MustParsePrefix(tc.network)
			m, err := NewAddrMasker(network, permute.WithKey([]byte("test")))
			if err != nil {
				t.Fatal(err)
			}
			for _, s := range tc.addrs {
				addr := netip.MustParseAddr(s)
				masked, err := m.Mask(addr)
				if err != nil {
					t.Fatalf("Mask(%s) error = %v", addr, err)
				}
				if !network.Contains(masked) {
					t.Errorf("Mask(%s) = %s, outside %s", addr, masked, network)
				}
				back, err := m.Unmask(masked)
				if err != nil {
					t.Fatalf("Unmask(%s) error = %v", masked, err)
				}
				if back != addr {
					t.Errorf("Unmask(Mask(%s)) = %s", addr, back)
				}
			}
		})
	}
}

func TestAddrMaskerBijective(t *testing.T) {
	t.Parallel()

	network := netip.MustParsePrefix("192.0.2.0/24")
	m, err := NewAddrMasker(network, permute.WithSeed(99))
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[netip.Addr]netip.Addr)
	for addr := network.Addr(); network.Contains(addr); addr = addr.Next() {
		masked, err := m.Mask(addr)
		if err != nil {
			t.Fatal(err)
		}
		if prev, ok := seen[masked]; ok {
			t.Fatalf("%s and %s both mask to %s", prev, addr, masked)
		}
		seen[masked] = addr
	}
	if len(seen) != 256 {
		t.Errorf("masked %d distinct addresses, want 256", len(seen))
	}
}

func TestAddrMaskerKeyed(t *testing.T) {
	t.Parallel()

	network := netip.MustParsePrefix("10.0.0.0/8")
	a, err := NewAddrMasker(network, permute.WithKey([]byte("alpha")))
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewAddrMasker(network, permute.WithKey([]byte("alpha")))
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewAddrMasker(network, permute.WithKey([]byte("beta")))
	if err != nil {
		t.Fatal(err)
	}

	differs := false
	for i := range 20 {
		addr := netip.AddrFrom4([4]byte{10, byte(i), byte(i * 7), byte(i * 13)})
		ma, _ := a.Mask(addr)
		mb, _ := b.Mask(addr)
		mc, _ := c.Mask(addr)
		if ma != mb {
			t.Errorf("same key masked %s to %s and %s", addr, ma, mb)
		}
		if ma != mc {
			differs = true
		}
	}
	if !differs {
		t.Error("different keys masked 20 addresses identically")
	}
}

func TestAddrMaskerOutOfNetwork(t *testing.T) {
	t.Parallel()

	m, err := NewAddrMasker(netip.MustParsePrefix("192.0.2.0/24"), permute.WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"192.0.3.1", "2001:db8::1"} {
		_, err := m.Mask(netip.MustParseAddr(s))
		if !errors.Is(err, permute.ErrOutOfDomain) {
			t.Errorf("Mask(%s) error = %v, want ErrOutOfDomain", s, err)
		}
		_, err = m.Unmask(netip.MustParseAddr(s))
		if !errors.Is(err, permute.ErrOutOfDomain) {
			t.Errorf("Unmask(%s) error = %v, want ErrOutOfDomain", s, err)
		}
	}
}

func TestNewAddrMaskerErrors(t *testing.T) {
	t.Parallel()

	if _, err := NewAddrMasker(netip.Prefix{}); err == nil {
		t.Error("NewAddrMasker(invalid) succeeded")
	}
	if _, err := NewAddrMasker(netip.MustParsePrefix("2001:db8::/48")); err == nil {
		t.Error("NewAddrMasker(/48) succeeded with 80 host bits")
	}
	if _, err := NewAddrMasker(netip.MustParsePrefix("192.0.2.0/24"), permute.WithRounds(-1)); !errors.Is(err, permute.ErrInvalidParameter) {
		t.Errorf("NewAddrMasker(rounds -1) error = %v, want ErrInvalidParameter", err)
	}
}
