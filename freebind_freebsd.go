//go:build freebsd

package shuffle

import (
	"fmt"
	"syscall"
)

// controlFreebind lets sockets bind to addresses not assigned to any local interface.
//
// from https://github.com/zrepl/zrepl/blob/master/util/tcpsock/tcpsock_freebind_freebsd.go
func controlFreebind(network, _ string, c syscall.RawConn) error {
	var sockErr error
	err := c.Control(func(fd uintptr) {
		switch network {
		case "tcp6", "udp6":
			sockErr = syscall.SetsockoptInt(int(fd), syscall.IPPROTO_IPV6, syscall.IPV6_BINDANY, 1)
		case "tcp4", "udp4":
			sockErr = syscall.SetsockoptInt(int(fd), syscall.IPPROTO_IP, syscall.IP_BINDANY, 1)
		default:
			sockErr = fmt.Errorf("expecting a tcp4/tcp6/udp4/udp6 socket, got %q", network)
		}
	})
	if err != nil {
		return err
	}
	return sockErr
}
