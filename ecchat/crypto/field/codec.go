package field

// SetBytes sets d to the little-endian value of b. Bit 255 is ignored, as
// RFC 7748 requires for u-coordinates; values in [p, 2^255) are accepted and
// reduced lazily.
func (d *Element) SetBytes(b *[32]byte) *Element {
	for i := 0; i < 16; i++ {
		d[i] = int64(b[2*i]) | int64(b[2*i+1])<<8
	}
	d[15] &= 0x7fff
	return d
}

// Bytes returns the canonical little-endian encoding of d mod p.
func (d *Element) Bytes() [32]byte {
	t := *d
	t.carry()
	t.carry()
	t.carry()

	// After three carries t < 2^256; subtracting p at most twice reaches the
	// canonical representative. m = t - p keeps the borrow in bit 16 of each limb.
	var m Element
	for j := 0; j < 2; j++ {
		m[0] = t[0] - 0xffed
		for i := 1; i < 15; i++ {
			m[i] = t[i] - 0xffff - ((m[i-1] >> 16) & 1)
			m[i-1] &= 0xffff
		}
		m[15] = t[15] - 0x7fff - ((m[14] >> 16) & 1)
		borrow := (m[15] >> 16) & 1
		m[14] &= 0xffff
		Swap(&t, &m, 1-borrow)
	}

	var out [32]byte
	for i := 0; i < 16; i++ {
		out[2*i] = byte(t[i])
		out[2*i+1] = byte(t[i] >> 8)
	}
	return out
}
