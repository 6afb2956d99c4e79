package edwards25519

// varTimeMultiScalarMultPippenger implements Pippenger's bucket method.
//
// Scalars are expanded in signed radix 2^w with the window width picked by
// input size. Each digit column is accumulated into 2^(w-1) buckets indexed
// by digit magnitude, the buckets are collapsed with a running sum, and the
// columns are combined Horner-style with w doublings between them.
func (v *Point) varTimeMultiScalarMultPippenger(scalars []*Scalar, points []*Point) *Point {
	checkInitialized(points...)

	var w uint
	switch {
	case len(scalars) < 500:
		w = 6
	case len(scalars) < 800:
		w = 7
	default:
		w = 8
	}

	digits := make([][43]int8, len(scalars))
	digitsCount := 0
	for i := range digits {
		digits[i], digitsCount = scalars[i].toRadix2w(w)
	}

	cached := make([]projCached, len(points))
	for i := range cached {
		cached[i].FromP3(points[i])
	}

	// Digit magnitudes run up to 2^(w-1), with bucket b collecting the
	// points whose digit is ±(b+1). Zero digits touch no bucket.
	bucketsCount := 1 << (w - 1)
	buckets := make([]Point, bucketsCount)

	tmp1 := &projP1xP1{}
	v.Set(NewIdentityPoint())
	for digitIndex := digitsCount - 1; digitIndex >= 0; digitIndex-- {
		if digitIndex != digitsCount-1 {
			for k := uint(0); k < w; k++ {
				v.Double(v)
			}
		}

		for b := range buckets {
			buckets[b].Set(NewIdentityPoint())
		}
		for j := range digits {
			d := int(digits[j][digitIndex])
			if d > 0 {
				tmp1.Add(&buckets[d-1], &cached[j])
				buckets[d-1].fromP1xP1(tmp1)
			} else if d < 0 {
				tmp1.Sub(&buckets[-d-1], &cached[j])
				buckets[-d-1].fromP1xP1(tmp1)
			}
		}

		// Sum the buckets weighted by their index using a running sum:
		// adding the partial sums of buckets [b, max] for every b yields
		// sum((b+1) * buckets[b]).
		intermediate := NewIdentityPoint()
		columnSum := NewIdentityPoint()
		for b := bucketsCount - 1; b >= 0; b-- {
			intermediate.Add(intermediate, &buckets[b])
			columnSum.Add(columnSum, intermediate)
		}

		v.Add(v, columnSum)
	}
	return v
}
