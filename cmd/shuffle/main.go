// Package main implements shuffle, a command line front end to keyed integer
// permutations: encode and decode values, print permuted sequences, reorder
// lines, mask IP addresses and run a SOCKS5 proxy that egresses from subnets
// in permuted order.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/netip"
	"os"
	"os/signal"
	"runtime"

	"github.com/lanrat/shuffle"
	"github.com/lanrat/shuffle/permute"
)

// Command-line flags
var (
	configFile   = flag.String("config", "", "read flag defaults from an INI file with [permutation] and [proxy] sections")
	width        = flag.Int("width", 64, "integer width in bits, 32 or 64")
	size         = flag.Int64("size", 0, "domain size; -1 selects the full signed range, other negative sizes read as unsigned")
	first        = flag.Int64("first", 0, "first value of an inclusive range (instead of -size)")
	last         = flag.Int64("last", 0, "last value of an inclusive range (instead of -size)")
	seed         = flag.Uint64("seed", 0, "seed for the permutation keys")
	key          = flag.String("key", "", "string key for the permutation keys (overrides -seed)")
	rounds       = flag.Int("rounds", 0, "number of mixing rounds, 0 for the default")
	multiplier   = flag.Uint64("multiplier", 0, "odd affine multiplier, 0 for the default")
	workers      = flag.Int("workers", runtime.NumCPU(), "number of workers for verify")
	inverse      = flag.Bool("inverse", false, "lines: restore the original order instead of shuffling")
	count        = flag.Uint64("count", 0, "seq: number of values to print, 0 for all")
	cidr         = flag.String("cidr", "", "mask/unmask: network whose host addresses are masked (e.g., '10.0.0.0/8')")
	listenAddr   = flag.String("listen", "127.0.0.1:1080", "proxy: listen on specified IP:port (e.g., '127.0.0.1:1337', '[::1]:1080').")
	subnetBits   = flag.Uint("subnet-size", 0, "proxy: CIDR prefix length of each egress subnet (e.g., 64 for /64 IPv6 subnets)")
	verbose      = flag.Bool("verbose", false, "enable verbose logging")
	printVersion = flag.Bool("version", false, "print version and exit")
)

// Global variables
var (
	// l is the logger instance used throughout the application
	l = log.New(os.Stderr, "", log.LstdFlags)
	// version is the application version string, set at build time
	version = "dev"
)

const usage = `Usage of %s: [OPTION]... COMMAND [ARG]...
COMMANDS:
  encode N...      permute each N
  decode N...      invert the permutation of each N
  seq [OFFSET]     print the permuted sequence starting at position OFFSET
  lines            shuffle the lines of stdin (-inverse restores them)
  verify           check that the permutation is a bijection
  mask ADDR...     mask addresses inside -cidr
  unmask ADDR...   recover addresses masked inside -cidr
  proxy CIDR       run a SOCKS5 proxy egressing from subnets of CIDR
OPTIONS:
`

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, usage, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if *printVersion {
		fmt.Println(showVersion())
		return
	}
	if *configFile != "" {
		if err := applyConfig(flag.CommandLine, *configFile); err != nil {
			l.Fatal(err)
		}
	}
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	// set shuffle Logger
	shuffle.Logger = v

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	name, args := flag.Arg(0), flag.Args()[1:]
	var err error
	switch name {
	case "mask", "unmask":
		err = runMask(name, args)
	case "proxy":
		err = runProxy(args)
	default:
		switch *width {
		case 32:
			err = run[int32](ctx, name, args, 32)
		case 64:
			err = run[int64](ctx, name, args, 64)
		default:
			err = fmt.Errorf("unsupported width %d, must be 32 or 64", *width)
		}
	}
	if err != nil {
		l.Fatal(err)
	}
}

// isSet reports whether the named flag was given on the command line or in the config file.
func isSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// permutationOptions turns the key flags into permute options.
func permutationOptions() []permute.Option {
	var opts []permute.Option
	switch {
	case isSet("key"):
		opts = append(opts, permute.WithKey([]byte(*key)))
	case isSet("seed"):
		opts = append(opts, permute.WithSeed(*seed))
	default:
		l.Printf("Warning: no -seed or -key given, output will not be reproducible")
	}
	if *rounds != 0 {
		opts = append(opts, permute.WithRounds(*rounds))
	}
	if isSet("multiplier") {
		opts = append(opts, permute.WithMultiplier(*multiplier))
	}
	return opts
}

func runMask(name string, args []string) error {
	if *cidr == "" {
		return fmt.Errorf("%s requires -cidr", name)
	}
	network, err := netip.ParsePrefix(*cidr)
	if err != nil {
		return err
	}
	m, err := shuffle.NewAddrMasker(network, permutationOptions()...)
	if err != nil {
		return err
	}
	f := m.Mask
	if name == "unmask" {
		f = m.Unmask
	}
	return maskAddrs(os.Stdout, f, args)
}

// v logs a message if verbose logging is enabled.
func v(format string, a ...any) {
	if *verbose {
		l.Printf(format, a...)
	}
}

// showVersion returns a formatted version string for display.
func showVersion() string {
	return fmt.Sprintf("Version: %s", version)
}
