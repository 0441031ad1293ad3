package permute

import (
	"context"
	"errors"
	"testing"
)

// brokenPermutation maps two inputs onto the same output.
type brokenPermutation struct {
	n int64
}

func (b brokenPermutation) Domain() Domain[int64] { return finiteDomain(int64(0), uint64(b.n)) }

func (b brokenPermutation) Encode(x int64) (int64, error) { return b.EncodeUnchecked(x), nil }

func (b brokenPermutation) Decode(y int64) (int64, error) { return b.DecodeUnchecked(y), nil }

func (b brokenPermutation) EncodeUnchecked(x int64) int64 {
	if x == b.n-1 {
		return 0
	}
	return x
}

func (b brokenPermutation) DecodeUnchecked(y int64) int64 { return y }

func TestVerify(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		size int64
	}{
		{"table", 16},
		{"finite", 100000},
		{"unaligned", 65537},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p, err := New(tc.size, WithSeed(25))
			if err != nil {
				t.Fatal(err)
			}
			for _, workers := range []int{0, 1, 3, 64} {
				if err := Verify(context.Background(), p, workers); err != nil {
					t.Errorf("Verify with %d workers: %v", workers, err)
				}
			}
		})
	}
}

func TestVerifyRanged(t *testing.T) {
	t.Parallel()

	r, err := NewRange(int32(-30000), int32(30000), WithSeed(26))
	if err != nil {
		t.Fatal(err)
	}
	if err := Verify[int32](context.Background(), r, 4); err != nil {
		t.Fatal(err)
	}
}

func TestVerifyDetectsDuplicates(t *testing.T) {
	t.Parallel()

	err := Verify[int64](context.Background(), brokenPermutation{n: 1000}, 2)
	if !errors.Is(err, ErrNotBijective) {
		t.Fatalf("Verify error = %v, want ErrNotBijective", err)
	}
}

func TestVerifyRejectsFull(t *testing.T) {
	t.Parallel()

	p, err := NewWide[int32](WithSeed(27))
	if err != nil {
		t.Fatal(err)
	}
	if err := Verify[int32](context.Background(), p, 1); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("Verify error = %v, want ErrInvalidParameter", err)
	}
}

func TestVerifyCancelled(t *testing.T) {
	t.Parallel()

	p, err := New(int64(1<<20), WithSeed(28))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Verify(ctx, p, 2); !errors.Is(err, context.Canceled) {
		t.Fatalf("Verify error = %v, want context.Canceled", err)
	}
}
