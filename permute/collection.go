package permute

// Apply reorders items by p: the result holds items[i] at position Encode(i),
// positions being counted from the first value of p's domain. len(items) must
// equal the domain length.
func Apply[T Int, E any](p Permutation[T], items []E) ([]E, error) {
	d, err := collectionDomain(p, len(items))
	if err != nil {
		return nil, err
	}
	out := make([]E, len(items))
	for i, item := range items {
		out[d.offset(p.EncodeUnchecked(d.First()+T(i)))] = item
	}
	return out, nil
}

// Restore undoes Apply: Restore(p, Apply(p, items)) equals items.
func Restore[T Int, E any](p Permutation[T], items []E) ([]E, error) {
	d, err := collectionDomain(p, len(items))
	if err != nil {
		return nil, err
	}
	out := make([]E, len(items))
	for i := range out {
		out[i] = items[d.offset(p.EncodeUnchecked(d.First()+T(i)))]
	}
	return out, nil
}

func collectionDomain[T Int](p Permutation[T], length int) (Domain[T], error) {
	d := p.Domain()
	if n, full := d.Len(); full || n != uint64(length) {
		return d, paramError("collection length", length, "does not match permutation size")
	}
	return d, nil
}
