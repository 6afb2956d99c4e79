package field

// BatchInvert sets each nonzero input element to its inverse, using a single
// field inversion for the whole batch. Zero elements are left unchanged.
//
// Montgomery's Trick and Fast Implementation of Masked AES
// Genelle, Prouff and Quisquater
// Section 3.2
//
// Constant time proportional to the number of inputs.
func BatchInvert(inputs ...*Element) {
	var acc, product, tmp, zero Element
	zero.Zero()

	scratch := make([]Element, 0, len(inputs))

	// Keep an accumulator of all of the previous products
	acc.One()

	// Pass through the input vector, recording the previous
	// products in the scratch space
	for _, p := range inputs {
		scratch = append(scratch, acc)
		// acc <- acc * input, but skipping zeros (constant-time)
		acc.Select(&acc, product.Multiply(&acc, p), p.Equal(&zero))
	}

	// acc is nonzero because we skipped zeros in inputs
	acc.Invert(&acc)

	// Pass through the vector backwards to compute the inverses in place
	for i := len(inputs) - 1; i >= 0; i-- {
		p := inputs[i]

		tmp.Multiply(&scratch[i], &acc)

		// Again, we skip zeros in a constant-time way
		skip := p.Equal(&zero)

		acc.Select(&acc, product.Multiply(&acc, p), skip)
		p.Select(p, &tmp, skip)
	}
}
