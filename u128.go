package shuffle

import (
	"encoding/binary"
	"math/bits"
	"net/netip"
)

// u128 is an IPv6-sized unsigned integer used for address arithmetic.
type u128 struct {
	hi, lo uint64
}

func addrToU128(a netip.Addr) u128 {
	b := a.As16()
	return u128{
		hi: binary.BigEndian.Uint64(b[:8]),
		lo: binary.BigEndian.Uint64(b[8:]),
	}
}

// addr converts u back to an address of the same family as like.
func (u u128) addr(like netip.Addr) netip.Addr {
	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], u.hi)
	binary.BigEndian.PutUint64(b[8:], u.lo)
	a := netip.AddrFrom16(b)
	if like.Is4() {
		return a.Unmap()
	}
	return a
}

func (u u128) add(v u128) u128 {
	lo, c := bits.Add64(u.lo, v.lo, 0)
	hi, _ := bits.Add64(u.hi, v.hi, c)
	return u128{hi: hi, lo: lo}
}

func (u u128) sub(v u128) u128 {
	lo, b := bits.Sub64(u.lo, v.lo, 0)
	hi, _ := bits.Sub64(u.hi, v.hi, b)
	return u128{hi: hi, lo: lo}
}

func (u u128) and(v u128) u128 {
	return u128{hi: u.hi & v.hi, lo: u.lo & v.lo}
}

func (u u128) or(v u128) u128 {
	return u128{hi: u.hi | v.hi, lo: u.lo | v.lo}
}

func (u u128) shl(n uint) u128 {
	switch {
	case n == 0:
		return u
	case n >= 128:
		return u128{}
	case n >= 64:
		return u128{hi: u.lo << (n - 64)}
	default:
		return u128{hi: u.hi<<n | u.lo>>(64-n), lo: u.lo << n}
	}
}

func (u u128) shr(n uint) u128 {
	switch {
	case n == 0:
		return u
	case n >= 128:
		return u128{}
	case n >= 64:
		return u128{lo: u.hi >> (n - 64)}
	default:
		return u128{hi: u.hi >> n, lo: u.lo>>n | u.hi<<(64-n)}
	}
}

// lowMask returns a mask of the n least significant bits.
func lowMask(n uint) u128 {
	return u128{hi: ^uint64(0), lo: ^uint64(0)}.shr(128 - n)
}
