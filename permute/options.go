package permute

// Option configures permutation construction.
type Option func(*config)

type config struct {
	src Source

	rounds    int
	roundsSet bool

	mul    uint64
	mulSet bool

	mix    [2]uint64
	mixSet bool
}

// defaultMultiplier is the affine constant for block rounds, 2^64/phi rounded
// to odd. Blocks use its low bits, so int32 and int64 blocks share it.
const defaultMultiplier uint64 = 0x9E3779B97F4A7C15

// defaultWideRounds is the round count of full-width permutations.
const defaultWideRounds = 3

// WithSource draws keys from src instead of a fresh non-deterministic source.
func WithSource(src Source) Option {
	return func(c *config) {
		c.src = src
	}
}

// WithSeed is shorthand for WithSource(NewSource(seed)).
func WithSeed(seed uint64) Option {
	return WithSource(NewSource(seed))
}

// WithKey is shorthand for WithSource(KeySource(key)).
func WithKey(key []byte) Option {
	return WithSource(KeySource(key))
}

// WithRounds sets the number of mixing rounds. More rounds disperse better
// and cost proportionally more per call. Zero selects a default suited to
// the domain size.
func WithRounds(n int) Option {
	return func(c *config) {
		c.rounds = n
		c.roundsSet = true
	}
}

// WithMultiplier overrides the affine constant of Finite and Unsigned
// permutations. It must be odd; only its low block bits are used.
func WithMultiplier(m uint64) Option {
	return func(c *config) {
		c.mul = m
		c.mulSet = true
	}
}

// WithMixers overrides the two multiply constants of Wide permutations.
// Both must be odd; only their low width bits are used.
func WithMixers(c1, c2 uint64) Option {
	return func(c *config) {
		c.mix = [2]uint64{c1, c2}
		c.mixSet = true
	}
}

func newConfig(opts []Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// validate rejects parameters no variant can honor. With strict set, an
// explicit round count of zero is rejected instead of selecting the default.
func (c *config) validate(strict bool) error {
	if c.roundsSet && (c.rounds < 0 || strict && c.rounds == 0) {
		return paramError("round count", c.rounds, "must be positive")
	}
	if c.mulSet && c.mul&1 == 0 {
		return paramError("multiplier", c.mul, "must be odd")
	}
	if c.mixSet {
		for _, m := range c.mix {
			if m&1 == 0 {
				return paramError("mixer", m, "must be odd")
			}
		}
	}
	return nil
}

func (c *config) source() Source {
	if c.src == nil {
		c.src = defaultSource()
	}
	return c.src
}

func (c *config) multiplier() uint64 {
	if c.mulSet {
		return c.mul
	}
	return defaultMultiplier
}

// blockRounds returns the round count for a block of the given width.
// Narrow blocks mix poorly per round, so they get more of them.
func (c *config) blockRounds(bits uint) int {
	if c.rounds > 0 {
		return c.rounds
	}
	switch {
	case bits <= 8:
		return 8
	case bits <= 16:
		return 6
	default:
		return 4
	}
}

func (c *config) wideRounds() int {
	if c.rounds > 0 {
		return c.rounds
	}
	return defaultWideRounds
}
