package crypto

import (
	"bytes"
	"encoding/hex"
	"errors"
	"math/rand/v2"
	"testing"

	"golang.org/x/crypto/curve25519"
)

func mustHex32(t testing.TB, s string) [KeySize]byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != KeySize {
		t.Fatalf("bad hex %q", s)
	}
	var out [KeySize]byte
	copy(out[:], b)
	return out
}

// RFC 7748, section 5.2.
func TestScalarMultVectors(t *testing.T) {
	tests := []struct {
		scalar, point, want string
	}{
		{
			"a546e36bf0527c9d3b16154b82465edd62144c0ac1fc5a18506a2244ba449ac4",
			"e6db6867583030db3594c1a424b15f7c726624ec26b3353b10a903a6d0ab1c4c",
			"c3da55379de9c6908e94ea4df28d084f32eccf03491c71f754b4075577a28552",
		},
		{
			"4b66e9d4d1b4673c5ad22691957d6af5c11b6421e0ea01d42ca4169e7918ba0d",
			"e5210f12786811d3f4b7959d0538ae2c31dbe7106fc03c3efc4cd549c715a493",
			"95cbde9476e8907d7aade45cb4b873f88b595a68799fa152e6f8f7647aac7957",
		},
	}
	for i, tt := range tests {
		scalar, point, want := mustHex32(t, tt.scalar), mustHex32(t, tt.point), mustHex32(t, tt.want)
		var got [KeySize]byte
		ScalarMult(&got, &scalar, &point)
		if got != want {
			t.Fatalf("vector %d: got %x want %x", i, got, want)
		}
	}
}

func TestScalarMultIterated(t *testing.T) {
	iterations := 1000
	if testing.Short() {
		iterations = 1
	}
	k, u := Basepoint, Basepoint
	for i := 0; i < iterations; i++ {
		var next [KeySize]byte
		ScalarMult(&next, &k, &u)
		u = k
		k = next
		if i == 0 && k != mustHex32(t, "422c8e7a6227d7bca1350b3e2bb7279f7897b87bb6854b783c60e80311ae3079") {
			t.Fatalf("after 1 iteration: %x", k)
		}
	}
	if iterations == 1000 && k != mustHex32(t, "684cf59ba83309552800ef566f2f4d3c1c3887c49360e3875f2eb94d99532c51") {
		t.Fatalf("after 1000 iterations: %x", k)
	}
}

// RFC 7748, section 6.1.
func TestECDHVector(t *testing.T) {
	alicePriv := mustHex32(t, "77076d0a7318a57d3c16c17251b26645df4c2f87ebc0992ab177fba51db92c2a")
	bobPriv := mustHex32(t, "5dab087e624a8a4b79e17f8b83800ee66f3bb1292618b6fd1c2f8b27ff88e0eb")

	var alicePub, bobPub [KeySize]byte
	ScalarBaseMult(&alicePub, &alicePriv)
	ScalarBaseMult(&bobPub, &bobPriv)
	if alicePub != mustHex32(t, "8520f0098930a754748b7ddcb43ef75a0dbf3a0d26381af4eba4a98eaa9b4e6a") {
		t.Fatalf("alice public: %x", alicePub)
	}
	if bobPub != mustHex32(t, "de9edb7d7b7dc1b4d35b61c2ece435373f8343c85b78674dadfc7e146f882b4f") {
		t.Fatalf("bob public: %x", bobPub)
	}

	want := mustHex32(t, "4a5d9d5ba4ce2de1728e3bf480350f25e07e21c947d19e3376f09b3c1e161742")
	sharedAlice, err := ECDH(alicePriv, bobPub)
	if err != nil {
		t.Fatalf("ECDH alice: %v", err)
	}
	sharedBob, err := ECDH(bobPriv, alicePub)
	if err != nil {
		t.Fatalf("ECDH bob: %v", err)
	}
	if sharedAlice != want || sharedBob != want {
		t.Fatalf("shared secrets: %x / %x", sharedAlice, sharedBob)
	}
}

func TestX25519ECDH(t *testing.T) {
	alice, err := GenerateX25519(nil)
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}
	bob, err := GenerateX25519(nil)
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}

	sharedAlice, err := ECDH(alice.PrivateKey, bob.PublicKey)
	if err != nil {
		t.Fatalf("ECDH alice: %v", err)
	}
	sharedBob, err := ECDH(bob.PrivateKey, alice.PublicKey)
	if err != nil {
		t.Fatalf("ECDH bob: %v", err)
	}

	if sharedAlice != sharedBob {
		t.Fatalf("shared secrets do not match")
	}
}

func TestScalarBaseMultMatchesScalarMult(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))
	for i := 0; i < 20; i++ {
		var n [KeySize]byte
		for j := range n {
			n[j] = byte(rng.Uint32())
		}
		var viaBase, viaMult [KeySize]byte
		ScalarBaseMult(&viaBase, &n)
		nine := [KeySize]byte{9}
		ScalarMult(&viaMult, &n, &nine)
		if viaBase != viaMult {
			t.Fatalf("ScalarBaseMult != ScalarMult(n, 9) for %x", n)
		}
	}
}

func TestScalarMultMatchesXCrypto(t *testing.T) {
	rng := rand.New(rand.NewPCG(13, 14))
	for i := 0; i < 50; i++ {
		var scalar, point [KeySize]byte
		for j := range scalar {
			scalar[j] = byte(rng.Uint32())
			point[j] = byte(rng.Uint32())
		}
		var got [KeySize]byte
		ScalarMult(&got, &scalar, &point)

		want, err := curve25519.X25519(scalar[:], point[:])
		if err != nil {
			// x/crypto rejects low-order inputs that produce zero.
			continue
		}
		if !bytes.Equal(got[:], want) {
			t.Fatalf("mismatch for scalar %x point %x: got %x want %x", scalar, point, got, want)
		}
	}
}

func TestClampIdempotent(t *testing.T) {
	k := [KeySize]byte{0xff, 1, 2, 3, 31: 0xff}
	Clamp(&k)
	if k[0]&7 != 0 || k[31]&0x80 != 0 || k[31]&0x40 == 0 {
		t.Fatalf("clamp bits wrong: %x", k)
	}
	once := k
	Clamp(&k)
	if k != once {
		t.Fatalf("clamp changed an already clamped scalar")
	}

	// ScalarMult clamps internally, so raw and pre-clamped scalars agree.
	raw := [KeySize]byte{0xff, 1, 2, 3, 31: 0xff}
	var a, b [KeySize]byte
	ScalarBaseMult(&a, &raw)
	ScalarBaseMult(&b, &once)
	if a != b {
		t.Fatalf("raw and clamped scalars disagree")
	}
	if raw[0] != 0xff {
		t.Fatalf("ScalarMult modified the caller's scalar")
	}
}

type shortReader struct{ n int }

func (r *shortReader) Read(p []byte) (int, error) {
	if r.n == 0 {
		return 0, errors.New("entropy pool drained")
	}
	n := copy(p, make([]byte, r.n))
	r.n -= n
	return n, nil
}

func TestGenerateX25519ShortEntropy(t *testing.T) {
	_, err := GenerateX25519(&shortReader{n: 16})
	if !errors.Is(err, ErrInsufficientEntropy) {
		t.Fatalf("expected ErrInsufficientEntropy, got %v", err)
	}
}

func TestGenerateX25519Deterministic(t *testing.T) {
	seed := bytes.Repeat([]byte{0x42}, KeySize)
	kp, err := GenerateX25519(bytes.NewReader(seed))
	if err != nil {
		t.Fatalf("GenerateX25519: %v", err)
	}
	if !bytes.Equal(kp.PrivateKey[:], seed) {
		t.Fatalf("private key should be the raw entropy")
	}
	var want [KeySize]byte
	ScalarBaseMult(&want, &kp.PrivateKey)
	if kp.PublicKey != want {
		t.Fatalf("public key mismatch")
	}
}

func TestECDHRejectsZeroKey(t *testing.T) {
	kp, _ := GenerateX25519(nil)
	if _, err := ECDH(kp.PrivateKey, [KeySize]byte{}); err != ErrInvalidPublicKey {
		t.Fatalf("expected ErrInvalidPublicKey, got %v", err)
	}
}

func BenchmarkScalarBaseMult(b *testing.B) {
	kp, _ := GenerateX25519(nil)
	var out [KeySize]byte
	for i := 0; i < b.N; i++ {
		ScalarBaseMult(&out, &kp.PrivateKey)
	}
}
