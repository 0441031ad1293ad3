package permute

// walk maps x in [0, n) to its image in [0, n) by cycle walking: the round
// sequence is a bijection on the block, so iterating it from x must come back
// into [0, n) before it comes back to x. Since n covers at least half of the
// block, fewer than two passes are needed on average.
func (r *rounds) walk(x, n uint64) uint64 {
	for {
		x = r.forward(x)
		if x < n {
			return x
		}
	}
}

// unwalk is the inverse of walk.
func (r *rounds) unwalk(y, n uint64) uint64 {
	for {
		y = r.backward(y)
		if y < n {
			return y
		}
	}
}
