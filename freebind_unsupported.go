//go:build !linux && !freebsd

package shuffle

import "syscall"

// controlFreebind is nil where binding to non-local addresses is unsupported.
var controlFreebind func(network, address string, c syscall.RawConn) error
