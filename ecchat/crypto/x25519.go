package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/TheusHen/ecchat/ecchat/crypto/field"
)

// KeySize is the size of X25519 scalars, public keys and shared secrets.
const KeySize = 32

var (
	ErrInvalidPublicKey    = errors.New("crypto: invalid X25519 public key")
	ErrInsufficientEntropy = errors.New("crypto: entropy source returned too few bytes")
)

// a24 = (486662 - 2) / 4
var a24 = field.Element{0xdb41, 1}

// Basepoint is the encoding of u = 9.
var Basepoint = [KeySize]byte{9}

// X25519KeyPair is a session key pair. PrivateKey holds the raw entropy;
// clamping is applied by ScalarMult on every use.
type X25519KeyPair struct {
	PublicKey  [KeySize]byte
	PrivateKey [KeySize]byte
}

// GenerateX25519 reads a private scalar from entropy (crypto/rand when nil)
// and derives its public key. A short read is reported as
// ErrInsufficientEntropy and no key pair is returned.
func GenerateX25519(entropy io.Reader) (X25519KeyPair, error) {
	if entropy == nil {
		entropy = rand.Reader
	}
	var kp X25519KeyPair
	n, err := io.ReadFull(entropy, kp.PrivateKey[:])
	if err != nil {
		return X25519KeyPair{}, fmt.Errorf("%w: got %d of %d: %w", ErrInsufficientEntropy, n, KeySize, err)
	}
	ScalarBaseMult(&kp.PublicKey, &kp.PrivateKey)
	return kp, nil
}

// ECDH computes the raw X25519 shared secret. The all-zero public key is
// rejected; other low-order points are not checked.
func ECDH(privateKey, peerPublicKey [KeySize]byte) ([KeySize]byte, error) {
	var zero, shared [KeySize]byte
	if peerPublicKey == zero {
		return zero, ErrInvalidPublicKey
	}
	ScalarMult(&shared, &privateKey, &peerPublicKey)
	return shared, nil
}

// Clamp clears bits 0-2 and 255 of k and sets bit 254.
func Clamp(k *[KeySize]byte) {
	k[0] &= 248
	k[31] &= 127
	k[31] |= 64
}

// ScalarBaseMult sets dst to scalar * 9.
func ScalarBaseMult(dst, scalar *[KeySize]byte) {
	ScalarMult(dst, scalar, &Basepoint)
}

// ScalarMult sets dst to scalar * point, where point is a Montgomery
// u-coordinate. The scalar is clamped on a private copy, so callers pass the
// raw key. The ladder always runs 255 steps and selects operands with
// field.Swap, independent of the scalar bits.
func ScalarMult(dst, scalar, point *[KeySize]byte) {
	k := *scalar
	Clamp(&k)

	var x, x2, z2, x3, z3, e, f field.Element
	x.SetBytes(point)
	x2.Set(&field.One)
	x3.Set(&x)
	z3.Set(&field.One)

	for i := 254; i >= 0; i-- {
		bit := int64(k[i>>3]>>(uint(i)&7)) & 1
		field.Swap(&x2, &x3, bit)
		field.Swap(&z2, &z3, bit)

		e.Add(&x2, &z2)   // A
		x2.Sub(&x2, &z2)  // B
		z2.Add(&x3, &z3)  // C
		x3.Sub(&x3, &z3)  // D
		z3.Square(&e)     // AA
		f.Square(&x2)     // BB
		x2.Mul(&z2, &x2)  // CB
		z2.Mul(&x3, &e)   // DA
		e.Add(&x2, &z2)   // DA + CB
		x2.Sub(&x2, &z2)  // CB - DA
		x3.Square(&x2)    // (DA - CB)^2
		z2.Sub(&z3, &f)   // E = AA - BB
		x2.Mul(&z2, &a24) // a24 * E
		x2.Add(&x2, &z3)  // AA + a24 * E
		z2.Mul(&z2, &x2)  // z2 = E * (AA + a24 * E)
		x2.Mul(&z3, &f)   // x2 = AA * BB
		z3.Mul(&x3, &x)   // z3 = x1 * (DA - CB)^2
		x3.Square(&e)     // x3 = (DA + CB)^2

		field.Swap(&x2, &x3, bit)
		field.Swap(&z2, &z3, bit)
	}

	z2.Invert(&z2)
	x2.Mul(&x2, &z2)
	*dst = x2.Bytes()
}
