package permute

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestNewRange(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		first, last int64
		inner       string
	}{
		{"small range 10-20", 10, 20, "*permute.Table[int64]"},
		{"negative range", -500, -1, "*permute.Finite[int64]"},
		{"crossing zero", -100, 100, "*permute.Finite[int64]"},
		{"single element", 42, 42, "*permute.Table[int64]"},
		{"near max", math.MaxInt64 - 999, math.MaxInt64, "*permute.Finite[int64]"},
		{"above signed max", -10, math.MaxInt64, "*permute.Unsigned[int64]"},
		{"one short of full", math.MinInt64, math.MaxInt64 - 1, "*permute.Unsigned[int64]"},
		{"full range", math.MinInt64, math.MaxInt64, "*permute.Wide[int64]"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r, err := NewRange(tc.first, tc.last, WithSeed(6))
			if err != nil {
				t.Fatalf("NewRange(%d, %d): %v", tc.first, tc.last, err)
			}
			if got := typeName(r.Unwrap()); got != tc.inner {
				t.Errorf("wrapped permutation is %s, want %s", got, tc.inner)
			}
			d := r.Domain()
			if d.First() != tc.first || d.Last() != tc.last {
				t.Errorf("Domain() = [%d, %d], want [%d, %d]", d.First(), d.Last(), tc.first, tc.last)
			}

			// Sample from both ends of the interval.
			for i := int64(0); i < 300; i++ {
				for _, x := range []int64{tc.first + i, tc.last - i} {
					if !d.Contains(x) {
						continue
					}
					y, err := r.Encode(x)
					if err != nil {
						t.Fatalf("Encode(%d): %v", x, err)
					}
					if !d.Contains(y) {
						t.Fatalf("Encode(%d) = %d is outside [%d, %d]", x, y, tc.first, tc.last)
					}
					if back, _ := r.Decode(y); back != x {
						t.Fatalf("Decode(Encode(%d)) = %d", x, back)
					}
				}
			}

			if !d.Full() {
				for _, x := range []int64{tc.first - 1, tc.last + 1} {
					if _, err := r.Encode(x); !errors.Is(err, ErrOutOfDomain) {
						t.Errorf("Encode(%d) error = %v, want ErrOutOfDomain", x, err)
					}
					if _, err := r.Decode(x); !errors.Is(err, ErrOutOfDomain) {
						t.Errorf("Decode(%d) error = %v, want ErrOutOfDomain", x, err)
					}
				}
			}
		})
	}
}

func TestRangedBijection(t *testing.T) {
	t.Parallel()

	for _, n := range []int32{1, 9, 16, 17, 300} {
		r, err := NewRange(int32(-1000), int32(-1000)+n-1, WithSeed(uint64(n)))
		if err != nil {
			t.Fatal(err)
		}
		checkBijection[int32](t, r, int(n))
	}
}

func TestRangedMatchesInner(t *testing.T) {
	t.Parallel()

	p, err := NewFinite(int64(1000), WithSeed(13))
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewRanged[int64](p, 5000, 5999)
	if err != nil {
		t.Fatal(err)
	}
	for x := int64(0); x < 1000; x++ {
		want, _ := p.Encode(x)
		got, err := r.Encode(5000 + x)
		if err != nil {
			t.Fatal(err)
		}
		if got != 5000+want {
			t.Fatalf("Encode(%d) = %d, want %d", 5000+x, got, 5000+want)
		}
	}
}

func TestRangedOverRanged(t *testing.T) {
	t.Parallel()

	inner, err := NewRange(int64(100), int64(199), WithSeed(14))
	if err != nil {
		t.Fatal(err)
	}
	outer, err := NewRanged[int64](inner, -50, 49)
	if err != nil {
		t.Fatal(err)
	}
	checkBijection[int64](t, outer, 100)
	for x := int64(-50); x < 50; x++ {
		want, _ := inner.Encode(x + 150)
		if got, _ := outer.Encode(x); got != want-150 {
			t.Fatalf("Encode(%d) = %d, want %d", x, got, want-150)
		}
	}
}

func TestNewRangedMismatch(t *testing.T) {
	t.Parallel()

	p, err := NewFinite(int64(100), WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	w, err := NewWide[int64](WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		name        string
		p           Permutation[int64]
		first, last int64
	}{
		{"too short", p, 0, 98},
		{"too long", p, 0, 100},
		{"inverted", p, 10, 9},
		{"full interval over finite", p, math.MinInt64, math.MaxInt64},
		{"finite interval over full", w, 0, 99},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, err := NewRanged(tc.p, tc.first, tc.last); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("NewRanged error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
