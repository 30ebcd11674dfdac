package field

// Element is an integer modulo p = 2^255 - 19, least significant limb first.
// Each limb nominally holds 16 bits; limbs may hold more (or be negative)
// between a non-carrying operation and the next carry.
type Element [16]int64

// Field element of value 0.
var Zero = Element{}

// Field element of value 1.
var One = Element{1}

// Field element of value 9, the u-coordinate of the Curve25519 base point.
var Nine = Element{9}

// d <- a
func (d *Element) Set(a *Element) *Element {
	*d = *a
	return d
}

// d <- a + b
func (d *Element) Add(a, b *Element) *Element {
	for i := range d {
		d[i] = a[i] + b[i]
	}
	return d
}

// d <- a - b
func (d *Element) Sub(a, b *Element) *Element {
	for i := range d {
		d[i] = a[i] - b[i]
	}
	return d
}

// d <- a*b
//
// The 31-limb product is folded with 2^256 = 38 mod p and carried twice.
func (d *Element) Mul(a, b *Element) *Element {
	var t [31]int64
	for i := 0; i < 16; i++ {
		for j := 0; j < 16; j++ {
			t[i+j] += a[i] * b[j]
		}
	}
	for i := 0; i < 15; i++ {
		t[i] += 38 * t[i+16]
	}
	copy(d[:], t[:16])
	d.carry()
	d.carry()
	return d
}

// d <- a^2
func (d *Element) Square(a *Element) *Element {
	return d.Mul(a, a)
}

// d <- 1/a
//
// Computed as a^(p-2): the exponent is 2^255 - 21, whose bits 253..0 are all
// set except bits 4 and 2. Inverting zero yields zero.
func (d *Element) Invert(a *Element) *Element {
	c := *a
	for i := 253; i >= 0; i-- {
		c.Square(&c)
		if i != 2 && i != 4 {
			c.Mul(&c, a)
		}
	}
	*d = c
	return d
}

// carry runs one carry-propagation pass. Each limb keeps its low 16 bits and
// hands the rest to the next limb; the overflow of the top limb re-enters at
// limb 0 multiplied by 38.
func (d *Element) carry() {
	for i := 0; i < 16; i++ {
		d[i] += 1 << 16
		c := d[i] >> 16
		if i < 15 {
			d[i+1] += c - 1
		} else {
			d[0] += 38 * (c - 1)
		}
		d[i] -= c << 16
	}
}

// Swap exchanges p and q if b == 1 and leaves them alone if b == 0.
// b MUST be 0 or 1.
func Swap(p, q *Element, b int64) {
	mask := ^(b - 1)
	for i := range p {
		t := mask & (p[i] ^ q[i])
		p[i] ^= t
		q[i] ^= t
	}
}

// Equal reports whether d and b encode the same value mod p. Returns 1 when
// they do, 0 otherwise.
func (d *Element) Equal(b *Element) int {
	x, y := d.Bytes(), b.Bytes()
	var v byte
	for i := range x {
		v |= x[i] ^ y[i]
	}
	return int((uint32(v) - 1) >> 31)
}
