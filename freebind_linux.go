package shuffle

import "syscall"

// controlFreebind lets sockets bind to addresses not assigned to any local
// interface, so a routed prefix can be used without configuring every address.
//
// from https://github.com/zrepl/zrepl/blob/master/util/tcpsock/tcpsock_freebind_linux.go
func controlFreebind(network, address string, c syscall.RawConn) error {
	var sockErr error
	err := c.Control(func(fd uintptr) {
		// works for both IPv4 and IPv6
		sockErr = syscall.SetsockoptInt(int(fd), syscall.SOL_IP, syscall.IP_FREEBIND, 1)
	})
	if err != nil {
		return err
	}
	return sockErr
}
