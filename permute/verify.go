package permute

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// MaxVerifySize is the largest domain Verify will check exhaustively.
const MaxVerifySize = 1 << 32

// verifyChunk is the number of positions between cancellation checks.
const verifyChunk = 1 << 12

// Verify exhaustively checks that p is a bijection on its finite domain:
// every image lies inside the domain, no image repeats, and Decode undoes
// Encode. The domain is split across workers goroutines (GOMAXPROCS when
// workers < 1) sharing one bitmap of seen images.
//
// Returns an error wrapping ErrNotBijective on the first violation found,
// ErrInvalidParameter if the domain is full or larger than MaxVerifySize, or
// the context's error if it is cancelled first.
func Verify[T Int](ctx context.Context, p Permutation[T], workers int) error {
	d := p.Domain()
	n, full := d.Len()
	if full || n > MaxVerifySize {
		return paramError("domain", d.Size(), "too large to verify exhaustively")
	}
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	seen := make([]atomic.Uint64, (n+63)/64)
	per := (n + uint64(workers) - 1) / uint64(workers)

	g, ctx := errgroup.WithContext(ctx)
	for start := uint64(0); start < n; start += per {
		end := min(start+per, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				if (i-start)%verifyChunk == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				x := d.First() + T(i)
				y := p.EncodeUnchecked(x)
				if !d.Contains(y) {
					return fmt.Errorf("%w: %v maps to %v outside the domain", ErrNotBijective, x, y)
				}
				idx := d.offset(y)
				bit := uint64(1) << (idx % 64)
				if seen[idx/64].Or(bit)&bit != 0 {
					return fmt.Errorf("%w: %v maps to %v, which is already taken", ErrNotBijective, x, y)
				}
				if back := p.DecodeUnchecked(y); back != x {
					return fmt.Errorf("%w: %v maps to %v but decodes to %v", ErrNotBijective, x, y, back)
				}
			}
			return nil
		})
	}
	return g.Wait()
}
