package main

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"strconv"
	"strings"

	"github.com/haxii/socks5"
	"github.com/lanrat/shuffle"
	"github.com/lanrat/shuffle/permute"
	"golang.org/x/sync/errgroup"
)

// runProxy starts a SOCKS5 proxy server listening on -listen that egresses
// every connection from the next subnet of the CIDR argument, in permuted
// order. All subnets are used once before any is used again.
// Supports both TCP and UDP protocols simultaneously.
func runProxy(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("proxy takes exactly one CIDR, got %d arguments", len(args))
	}
	network, err := netip.ParsePrefix(args[0])
	if err != nil {
		return err
	}
	bits := network.Addr().BitLen()
	if *subnetBits != 0 {
		bits = int(*subnetBits)
	}

	// keys come from -seed/-key when given so a restarted proxy replays the same order
	var src permute.Source
	switch {
	case isSet("key"):
		src = permute.KeySource([]byte(*key))
	case isSet("seed"):
		src = permute.NewSource(*seed)
	}
	dialer, err := shuffle.NewEgressDialer(network, bits, src)
	if err != nil {
		return err
	}

	// check for IP conflicts
	conflicts, err := shuffle.BroadcastConflicts(network)
	if err != nil {
		return err
	}
	for _, ip := range conflicts {
		l.Printf("Warning: excluding broadcast address %s", ip)
	}
	dialer.Exclude(conflicts...)

	n, full := dialer.Space().Len()
	hostBits := network.Addr().BitLen() - bits
	if full {
		l.Printf("Running with subnet size /%d and /%d prefix resulting in 2^64 egress networks and 2^%d options per network", bits, network.Bits(), hostBits)
	} else {
		l.Printf("Running with subnet size /%d and /%d prefix resulting in %d egress networks and 2^%d options per network", bits, network.Bits(), n, hostBits)
	}

	listen := *listenAddr
	if !strings.Contains(listen, ":") {
		// Just port, bind to all interfaces
		listen = ":" + listen
	}
	return serveSOCKS(listen, network, dialer.Dial)
}

// serveSOCKS runs TCP and UDP SOCKS5 listeners on listenAddr until one fails.
func serveSOCKS(listenAddr string, network netip.Prefix, dial shuffle.DialFunc) error {
	host, portStr, err := net.SplitHostPort(listenAddr)
	if err != nil {
		return err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	conf := &socks5.Config{
		Logger:   l,
		Resolver: NewDNSResolver(cidrNetwork(network)),
		Dial:     dial,
		BindIP:   net.ParseIP(host),
		BindPort: port,
	}
	server, err := socks5.New(conf)
	if err != nil {
		return err
	}

	var g errgroup.Group
	g.Go(func() error {
		l.Printf("Starting TCP SOCKS5 proxy on %s", listenAddr)
		return server.ListenAndServe("tcp", listenAddr)
	})
	g.Go(func() error {
		l.Printf("Starting UDP SOCKS5 proxy on %s", listenAddr)
		return server.ListenAndServe("udp", listenAddr)
	})
	return g.Wait()
}

// DNSResolver implements socks5.NameResolver using the system DNS resolver.
// It only returns addresses of the egress network's family, since a
// connection can't be made from an IPv6 source to an IPv4 destination.
type DNSResolver struct {
	network  string
	resolver net.Resolver
}

// NewDNSResolver returns a resolver for the "ip4" or "ip6" network.
func NewDNSResolver(network string) *DNSResolver {
	return &DNSResolver{network: network}
}

// Resolve returns the first address of name in the resolver's family.
func (d *DNSResolver) Resolve(ctx context.Context, name string) (context.Context, net.IP, error) {
	addrs, err := d.resolver.LookupIPAddr(ctx, name)
	if err != nil {
		return ctx, nil, err
	}
	if ip, ok := pickFamily(d.network, addrs); ok {
		v("resolved %q to %q", name, ip.String())
		return ctx, ip, nil
	}
	return ctx, nil, &net.AddrError{Err: "no suitable address found", Addr: name}
}

func pickFamily(network string, addrs []net.IPAddr) (net.IP, bool) {
	for _, addr := range addrs {
		is4 := addr.IP.To4() != nil
		if network == "ip4" && is4 || network == "ip6" && !is4 && addr.IP.To16() != nil {
			return addr.IP, true
		}
	}
	return nil, false
}

// cidrNetwork returns "ip4" for IPv4 prefixes or "ip6" for IPv6 prefixes.
func cidrNetwork(prefix netip.Prefix) string {
	if prefix.Addr().Is4() {
		return "ip4"
	}
	return "ip6"
}
