package field

import (
	"bytes"
	"math/big"
	"math/rand/v2"
	"testing"
)

var modulus = func() *big.Int {
	p := new(big.Int).Lsh(big.NewInt(1), 255)
	return p.Sub(p, big.NewInt(19))
}()

func randomBytes(rng *rand.Rand) [32]byte {
	var b [32]byte
	for i := 0; i < 32; i += 8 {
		v := rng.Uint64()
		for j := 0; j < 8; j++ {
			b[i+j] = byte(v >> (8 * j))
		}
	}
	return b
}

// toBig interprets b as little-endian with bit 255 cleared, reduced mod p.
func toBig(b [32]byte) *big.Int {
	b[31] &= 0x7f
	be := make([]byte, 32)
	for i := range b {
		be[31-i] = b[i]
	}
	z := new(big.Int).SetBytes(be)
	return z.Mod(z, modulus)
}

func fromBig(z *big.Int) [32]byte {
	var out [32]byte
	be := z.Bytes()
	for i := range be {
		out[i] = be[len(be)-1-i]
	}
	return out
}

func TestAddSubMul(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 2000; i++ {
		ab, bb := randomBytes(rng), randomBytes(rng)
		var a, b, c Element
		a.SetBytes(&ab)
		b.SetBytes(&bb)
		za, zb := toBig(ab), toBig(bb)

		c.Add(&a, &b)
		want := new(big.Int).Add(za, zb)
		if got := c.Bytes(); got != fromBig(want.Mod(want, modulus)) {
			t.Fatalf("Add mismatch at %d: %x", i, got)
		}

		c.Sub(&a, &b)
		want = new(big.Int).Sub(za, zb)
		if got := c.Bytes(); got != fromBig(want.Mod(want, modulus)) {
			t.Fatalf("Sub mismatch at %d: %x", i, got)
		}

		c.Mul(&a, &b)
		want = new(big.Int).Mul(za, zb)
		if got := c.Bytes(); got != fromBig(want.Mod(want, modulus)) {
			t.Fatalf("Mul mismatch at %d: %x", i, got)
		}

		c.Square(&a)
		want = new(big.Int).Mul(za, za)
		if got := c.Bytes(); got != fromBig(want.Mod(want, modulus)) {
			t.Fatalf("Square mismatch at %d: %x", i, got)
		}
	}
}

func TestMulAfterUncarriedSums(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 500; i++ {
		ab, bb := randomBytes(rng), randomBytes(rng)
		var a, b, s, d, c Element
		a.SetBytes(&ab)
		b.SetBytes(&bb)
		s.Add(&a, &b)
		d.Sub(&a, &b)
		c.Mul(&s, &d)

		za, zb := toBig(ab), toBig(bb)
		want := new(big.Int).Sub(new(big.Int).Mul(za, za), new(big.Int).Mul(zb, zb))
		if got := c.Bytes(); got != fromBig(want.Mod(want, modulus)) {
			t.Fatalf("(a+b)(a-b) mismatch at %d", i)
		}
	}
}

func TestInvert(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	for i := 0; i < 50; i++ {
		ab := randomBytes(rng)
		var a, inv, prod Element
		a.SetBytes(&ab)
		if a.Equal(&Zero) == 1 {
			continue
		}
		inv.Invert(&a)
		prod.Mul(&a, &inv)
		if prod.Equal(&One) != 1 {
			t.Fatalf("a * 1/a != 1 for %x", ab)
		}
	}

	var z Element
	z.Invert(&Zero)
	if z.Equal(&Zero) != 1 {
		t.Fatalf("1/0 should be 0")
	}
}

func TestInvertAliasing(t *testing.T) {
	b := [32]byte{7}
	var a, want Element
	a.SetBytes(&b)
	want.Invert(&a)
	a.Invert(&a)
	if a.Equal(&want) != 1 {
		t.Fatalf("in-place Invert differs")
	}
}

func TestBytesCanonical(t *testing.T) {
	p := fromBig(modulus)
	pPlusOne := p
	pPlusOne[0]++
	allOnes := [32]byte{}
	for i := range allOnes {
		allOnes[i] = 0xff
	}

	tests := []struct {
		name string
		in   [32]byte
		want [32]byte
	}{
		{"zero", [32]byte{}, [32]byte{}},
		{"p", p, [32]byte{}},
		{"p+1", pPlusOne, [32]byte{1}},
		{"2^256-1", allOnes, [32]byte{18}},
		{"nine", [32]byte{9}, [32]byte{9}},
	}
	for _, tt := range tests {
		var e Element
		e.SetBytes(&tt.in)
		if got := e.Bytes(); got != tt.want {
			t.Fatalf("%s: got %x want %x", tt.name, got, tt.want)
		}
	}
}

func TestCanonicalizationIdempotent(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))
	for i := 0; i < 1000; i++ {
		x := randomBytes(rng)
		var a, b Element
		a.SetBytes(&x)
		once := a.Bytes()
		b.SetBytes(&once)
		twice := b.Bytes()
		if once != twice {
			t.Fatalf("pack(unpack(pack(x))) != pack(x) for %x", x)
		}
		if once[31]&0x80 != 0 {
			t.Fatalf("canonical encoding has bit 255 set")
		}
	}
}

func TestSwap(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 10))
	for i := 0; i < 100; i++ {
		pb, qb := randomBytes(rng), randomBytes(rng)
		var p, q Element
		p.SetBytes(&pb)
		q.SetBytes(&qb)
		p0, q0 := p, q

		Swap(&p, &q, 0)
		if p != p0 || q != q0 {
			t.Fatalf("Swap with 0 changed operands")
		}
		Swap(&p, &q, 1)
		if p != q0 || q != p0 {
			t.Fatalf("Swap with 1 did not exchange operands")
		}
	}
}

func TestSetBytesIgnoresTopBit(t *testing.T) {
	a := [32]byte{1, 2, 3}
	b := a
	b[31] |= 0x80
	var x, y Element
	x.SetBytes(&a)
	y.SetBytes(&b)
	if x != y {
		t.Fatalf("bit 255 should be masked")
	}
	out := y.Bytes()
	if !bytes.Equal(out[:], a[:]) {
		t.Fatalf("unexpected encoding %x", out)
	}
}

func BenchmarkMul(b *testing.B) {
	x := [32]byte{1, 2, 3, 4, 5}
	var e Element
	e.SetBytes(&x)
	for i := 0; i < b.N; i++ {
		e.Mul(&e, &e)
	}
}

func BenchmarkInvert(b *testing.B) {
	x := [32]byte{1, 2, 3, 4, 5}
	var e Element
	e.SetBytes(&x)
	for i := 0; i < b.N; i++ {
		e.Invert(&e)
	}
}
