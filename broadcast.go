package shuffle

import (
	"net"
	"net/netip"
)

// BroadcastConflicts returns the broadcast addresses of local IPv4 interfaces
// that fall inside network. Binding to one of them fails or, worse, sends
// traffic to the whole segment, so callers pass them to EgressDialer.Exclude.
func BroadcastConflicts(network netip.Prefix) ([]netip.Addr, error) {
	interfaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	var conflicts []netip.Addr
	for _, i := range interfaces {
		addrs, err := i.Addrs()
		if err != nil {
			return nil, err
		}
		for _, a := range addrs {
			ipnet, ok := a.(*net.IPNet)
			if !ok {
				continue
			}
			brd, ok := broadcastOf(ipnet)
			if !ok {
				continue
			}
			if network.Contains(brd) {
				v("WARNING: interface %s broadcast address %s is within provided prefix %s", i.Name, brd, network)
				conflicts = append(conflicts, brd)
			}
		}
	}
	return conflicts, nil
}

// broadcastOf returns the broadcast address of an IPv4 interface network.
// It returns false for IPv6, which has no broadcast.
func broadcastOf(ipnet *net.IPNet) (netip.Addr, bool) {
	ip4 := ipnet.IP.To4()
	if ip4 == nil {
		return netip.Addr{}, false
	}
	ones, bits := ipnet.Mask.Size()
	switch bits {
	case 32:
	case 128:
		ones -= 96
	default:
		return netip.Addr{}, false
	}
	if ones < 0 {
		return netip.Addr{}, false
	}
	addr := netip.AddrFrom4([4]byte(ip4))
	hostBits := uint(32 - ones)
	return addrToU128(addr).or(lowMask(hostBits)).addr(addr), true
}
