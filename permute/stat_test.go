package permute

import (
	"math"
	"testing"
)

// TestDispersion compares the mean of many outputs, across many keyings, with
// the mean of the uniform distribution over the domain. Tables are left out:
// at sizes of one or two their outputs are skewed by construction.
func TestDispersion(t *testing.T) {
	t.Parallel()

	const (
		seeds  = 500
		inputs = 10
		// Two-sided p of about 6e-5.
		maxZ = 4.0
	)

	testCases := []struct {
		name string
		size int64
	}{
		{"finite 17", 17},
		{"finite 100", 100},
		{"finite 1000", 1000},
		{"finite 2^20+1", 1<<20 + 1},
		{"finite 2^50", 1 << 50},
		{"unsigned", -2},
		{"wide", Full},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			n := math.Exp2(64)
			if tc.size > 0 {
				n = float64(tc.size)
			} else if tc.size != Full {
				n = float64(word(tc.size))
			}

			var sum float64
			for seed := uint64(0); seed < seeds; seed++ {
				p, err := New(tc.size, WithSeed(seed))
				if err != nil {
					t.Fatal(err)
				}
				for x := int64(0); x < inputs; x++ {
					sum += float64(word(p.EncodeUnchecked(x)))
				}
			}

			samples := float64(seeds * inputs)
			mean := sum / samples
			mu := (n - 1) / 2
			sigma := math.Sqrt((n*n - 1) / 12)
			z := (mean - mu) / (sigma / math.Sqrt(samples))
			t.Logf("mean %g, expected %g, z = %.3f", mean, mu, z)
			if math.Abs(z) > maxZ {
				t.Errorf("sample mean %g is %.2f standard errors from %g", mean, z, mu)
			}
		})
	}
}
