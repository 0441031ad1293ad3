package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/netip"
	"os"
	"strconv"

	"github.com/lanrat/shuffle/permute"
)

// command runs the integer subcommands for one width.
type command[T permute.Int] struct {
	bits  int
	opts  []permute.Option
	build func() (permute.Permutation[T], error)
	in    io.Reader
	out   io.Writer
}

func run[T permute.Int](ctx context.Context, name string, args []string, bits int) error {
	c := &command[T]{
		bits: bits,
		opts: permutationOptions(),
		in:   os.Stdin,
		out:  os.Stdout,
	}
	c.build = func() (permute.Permutation[T], error) {
		if isSet("first") || isSet("last") {
			lo, err := c.narrow(*first)
			if err != nil {
				return nil, err
			}
			hi, err := c.narrow(*last)
			if err != nil {
				return nil, err
			}
			r, err := permute.NewRange(lo, hi, c.opts...)
			if err != nil {
				return nil, err
			}
			return r, nil
		}
		n, err := c.narrow(*size)
		if err != nil {
			return nil, err
		}
		return permute.New(n, c.opts...)
	}
	return c.run(ctx, name, args)
}

func (c *command[T]) run(ctx context.Context, name string, args []string) error {
	switch name {
	case "encode":
		return c.convert(args, true)
	case "decode":
		return c.convert(args, false)
	case "seq":
		return c.seq(args, *count)
	case "lines":
		return c.lines(*inverse)
	case "verify":
		return c.verify(ctx, *workers)
	default:
		return fmt.Errorf("unknown command %q", name)
	}
}

// narrow converts a flag value to T, failing if it does not fit.
func (c *command[T]) narrow(x int64) (T, error) {
	if int64(T(x)) != x {
		return 0, fmt.Errorf("%d does not fit in %d bits", x, c.bits)
	}
	return T(x), nil
}

func (c *command[T]) parse(s string) (T, error) {
	x, err := strconv.ParseInt(s, 0, c.bits)
	if err != nil {
		return 0, err
	}
	return T(x), nil
}

func (c *command[T]) permutation() (permute.Permutation[T], error) {
	p, err := c.build()
	if err != nil {
		return nil, err
	}
	d := p.Domain()
	v("permutation %T over [%d, %d]", p, d.First(), d.Last())
	return p, nil
}

func (c *command[T]) convert(args []string, encode bool) error {
	p, err := c.permutation()
	if err != nil {
		return err
	}
	f := p.Decode
	if encode {
		f = p.Encode
	}
	for _, arg := range args {
		x, err := c.parse(arg)
		if err != nil {
			return err
		}
		y, err := f(x)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, y)
	}
	return nil
}

// seq prints the permuted sequence from the position in args, stopping after
// limit values when limit is not zero.
func (c *command[T]) seq(args []string, limit uint64) error {
	if len(args) > 1 {
		return fmt.Errorf("seq takes at most one offset, got %d arguments", len(args))
	}
	var offset T
	if len(args) == 1 {
		var err error
		if offset, err = c.parse(args[0]); err != nil {
			return err
		}
	}
	p, err := c.permutation()
	if err != nil {
		return err
	}
	it, err := permute.Iterate(p, offset)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(c.out)
	var printed uint64
	for x := range it.All() {
		if limit != 0 && printed == limit {
			break
		}
		if _, err := fmt.Fprintln(w, x); err != nil {
			return err
		}
		printed++
	}
	return w.Flush()
}

// lines shuffles (or restores) the lines of the input. The permutation is
// sized by the number of lines, so -size and -first/-last are ignored.
func (c *command[T]) lines(restore bool) error {
	var items []string
	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		items = append(items, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	n, err := c.narrow(int64(len(items)))
	if err != nil {
		return err
	}
	p, err := permute.New(n, c.opts...)
	if err != nil {
		return err
	}
	reorder := permute.Apply[T, string]
	if restore {
		reorder = permute.Restore[T, string]
	}
	out, err := reorder(p, items)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(c.out)
	for _, line := range out {
		fmt.Fprintln(w, line)
	}
	return w.Flush()
}

func (c *command[T]) verify(ctx context.Context, workers int) error {
	p, err := c.permutation()
	if err != nil {
		return err
	}
	n, _ := p.Domain().Len()
	if err := permute.Verify(ctx, p, workers); err != nil {
		if errors.Is(err, permute.ErrNotBijective) {
			return fmt.Errorf("verification failed: %w", err)
		}
		return err
	}
	fmt.Fprintf(c.out, "ok: %d values verified\n", n)
	return nil
}

// maskAddrs applies f to every address in args.
func maskAddrs(out io.Writer, f func(netip.Addr) (netip.Addr, error), args []string) error {
	for _, arg := range args {
		addr, err := netip.ParseAddr(arg)
		if err != nil {
			return err
		}
		masked, err := f(addr)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, masked)
	}
	return nil
}
