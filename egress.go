package shuffle

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"net/netip"
	"sync"

	"github.com/lanrat/shuffle/permute"
)

// maxExcludedDraws bounds how often NextAddr redraws after hitting an
// excluded address before giving up on a subnet.
const maxExcludedDraws = 16

// BindError represents a critical error where a connection could not be
// bound to the intended source address.
type BindError struct {
	Addr netip.Addr
	Err  error
}

// Error returns a formatted error message for the bind error.
func (e *BindError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("CRITICAL: connection bind error on %s: %v", e.Addr, e.Err)
	}
	return fmt.Sprintf("CRITICAL: connection bind error on %s", e.Addr)
}

// Unwrap returns the underlying dial error, if any.
func (e *BindError) Unwrap() error {
	return e.Err
}

// BindLeakError reports a connection that was bound to an address other than
// the intended one. The connection is closed before the error is returned.
type BindLeakError struct {
	BindError
	Actual netip.Addr
}

// Error returns a formatted error message for the leak error.
func (e *BindLeakError) Error() string {
	return fmt.Sprintf("CRITICAL: connection bound to %s instead of intended %s - aborting to prevent IP leak", e.Actual, e.Addr)
}

// Unwrap returns the embedded BindError to support errors.As.
func (e *BindLeakError) Unwrap() error {
	return &e.BindError
}

// BindBroadcastError reports an attempt to bind to a broadcast address.
type BindBroadcastError struct {
	BindError
}

// Error returns a formatted error message for the broadcast error.
func (e *BindBroadcastError) Error() string {
	return fmt.Sprintf("CRITICAL: can't bind to broadcast address: %s", e.Addr)
}

// Unwrap returns the embedded BindError to support errors.As.
func (e *BindBroadcastError) Unwrap() error {
	return &e.BindError
}

// DialFunc has the signature of net.Dialer.DialContext.
type DialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// EgressDialer dials out from source addresses spread over the subnets of a
// network. Subnets are taken in the order of a keyed permutation, so every
// subnet is used exactly once before any is used again; after a full pass
// the permutation is re-keyed from the same source and a new pass begins.
// Within a subnet the host part is random.
//
// EgressDialer is safe for concurrent use.
type EgressDialer struct {
	space *SubnetSpace

	mu      sync.Mutex
	src     permute.Source
	rng     *rand.Rand
	it      *permute.Iterator[int64]
	pass    uint64
	exclude map[netip.Addr]bool
}

// NewEgressDialer creates a dialer over the /subnetBits subnets of network.
// Keys and host parts are drawn from src; a nil src selects a fresh
// non-deterministic one.
func NewEgressDialer(network netip.Prefix, subnetBits int, src permute.Source) (*EgressDialer, error) {
	space, err := NewSubnetSpace(network, subnetBits)
	if err != nil {
		return nil, err
	}
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	d := &EgressDialer{
		space:   space,
		src:     src,
		rng:     rand.New(src),
		exclude: make(map[netip.Addr]bool),
	}
	n, full := space.Len()
	v("creating egress dialer over %s with /%d subnets, pool size %d (full: %v)", space.Network(), subnetBits, n, full)
	if err := d.rekey(); err != nil {
		return nil, err
	}
	return d, nil
}

// rekey starts a new pass with a fresh permutation. d.mu must be held.
func (d *EgressDialer) rekey() error {
	p, err := d.space.Permutation(permute.WithSource(d.src))
	if err != nil {
		return err
	}
	d.it, err = permute.Iterate(p, 0)
	if err != nil {
		return err
	}
	d.pass++
	return nil
}

// Space returns the subnet space the dialer draws from.
func (d *EgressDialer) Space() *SubnetSpace {
	return d.space
}

// Exclude prevents addrs from ever being used as a source address.
func (d *EgressDialer) Exclude(addrs ...netip.Addr) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, a := range addrs {
		d.exclude[a.Unmap()] = true
	}
}

// NextSubnet returns the next subnet of the current pass, starting a new
// pass once every subnet has been returned.
func (d *EgressDialer) NextSubnet() (netip.Prefix, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.nextSubnet()
}

func (d *EgressDialer) nextSubnet() (netip.Prefix, error) {
	i, err := d.it.Next()
	if errors.Is(err, permute.ErrExhausted) {
		v("used all the subnets in our pool, looping back around...")
		if err = d.rekey(); err != nil {
			return netip.Prefix{}, err
		}
		i, err = d.it.Next()
	}
	if err != nil {
		return netip.Prefix{}, err
	}
	return d.space.Nth(uint64(i)), nil
}

// NextAddr returns a random, non-excluded address inside the next subnet.
func (d *EgressDialer) NextAddr() (netip.Addr, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	subnet, err := d.nextSubnet()
	if err != nil {
		return netip.Addr{}, err
	}
	hostBits := uint(subnet.Addr().BitLen() - subnet.Bits())
	base := addrToU128(subnet.Addr())
	for range maxExcludedDraws {
		host := u128{hi: d.rng.Uint64(), lo: d.rng.Uint64()}.and(lowMask(hostBits))
		addr := base.or(host).addr(subnet.Addr())
		if !d.exclude[addr] {
			return addr, nil
		}
		v("skipping excluded address %s", addr)
	}
	return netip.Addr{}, fmt.Errorf("no usable address found in %s after %d draws", subnet, maxExcludedDraws)
}

// Pass returns the number of passes started so far, starting at 1.
func (d *EgressDialer) Pass() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pass
}

// Dial implements DialFunc, connecting from the next source address.
func (d *EgressDialer) Dial(ctx context.Context, network, addr string) (net.Conn, error) {
	src, err := d.NextAddr()
	if err != nil {
		return nil, err
	}
	return d.DialFrom(ctx, network, addr, src)
}

// DialFrom connects to addr from the source address src and verifies that
// the connection is bound to it.
func (d *EgressDialer) DialFrom(ctx context.Context, network, addr string, src netip.Addr) (net.Conn, error) {
	v("dial %s from: %s to: %s", network, src, addr)
	d.mu.Lock()
	excluded := d.exclude[src.Unmap()]
	d.mu.Unlock()
	if excluded {
		return nil, &BindBroadcastError{BindError: BindError{Addr: src}}
	}

	var local net.Addr
	switch network {
	case "tcp", "tcp4", "tcp6":
		local = net.TCPAddrFromAddrPort(netip.AddrPortFrom(src, 0))
	case "udp", "udp4", "udp6":
		local = net.UDPAddrFromAddrPort(netip.AddrPortFrom(src, 0))
	default:
		return nil, fmt.Errorf("unknown network type %s", network)
	}

	dialer := net.Dialer{
		LocalAddr: local,
		Control:   controlFreebind,
	}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	// FAIL-SAFE: verify the connection is using the intended address
	actual, err := netip.ParseAddrPort(conn.LocalAddr().String())
	if err != nil {
		conn.Close()
		return nil, &BindError{Addr: src, Err: err}
	}
	if actual.Addr().Unmap() != src.Unmap() {
		conn.Close()
		return nil, &BindLeakError{BindError: BindError{Addr: src}, Actual: actual.Addr()}
	}
	v("verified connection bound to intended IP: %s", actual.Addr())
	return conn, nil
}
