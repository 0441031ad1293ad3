// Package shuffle applies keyed integer permutations to IP address space.
//
// It maps indices onto the subnets of a prefix (SubnetSpace), masks host
// addresses bijectively inside a prefix (AddrMasker), and dials out from
// subnets taken in permuted order so that every subnet is used once before
// any is reused (EgressDialer).
package shuffle

// Logger receives verbose diagnostics. It discards them unless replaced.
var Logger = func(format string, a ...any) {}

func v(format string, a ...any) {
	Logger(format, a...)
}
