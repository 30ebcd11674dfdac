package ascon

import (
	"crypto/subtle"
	"encoding/binary"
)

// SecretSize is the size of the X25519 shared secret an Engine is keyed with.
const SecretSize = 32

// DefaultNonce is the static nonce both peers use for every message.
var DefaultNonce = Nonce{
	0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
	0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f,
}

// Key is a shared secret split into four big-endian 64-bit words.
type Key [4]uint64

// KeyFromSecret splits a 32-byte shared secret into words.
func KeyFromSecret(secret *[SecretSize]byte) Key {
	var k Key
	for i := range k {
		k[i] = binary.BigEndian.Uint64(secret[8*i:])
	}
	return k
}

// Cipher folds the four secret words into the 128-bit cipher key so that all
// 256 bits of the secret contribute.
func (k Key) Cipher() CipherKey {
	return CipherKey{k[0] ^ k[2], k[1] ^ k[3]}
}

// Engine is the unauthenticated session cipher. Each call starts from a fresh
// State, so an Engine holds only key material and is safe to share between
// goroutines.
type Engine struct {
	key   CipherKey
	nonce Nonce
}

// NewEngine keys an Engine with a shared secret and nonce.
func NewEngine(secret *[SecretSize]byte, nonce Nonce) *Engine {
	return &Engine{key: KeyFromSecret(secret).Cipher(), nonce: nonce}
}

// Encrypt returns a ciphertext of the same length as plaintext.
func (e *Engine) Encrypt(plaintext []byte) []byte {
	out := make([]byte, len(plaintext))
	e.XORKeyStream(out, plaintext)
	return out
}

// Decrypt is Encrypt: the keystream does not depend on the data.
func (e *Engine) Decrypt(ciphertext []byte) []byte {
	return e.Encrypt(ciphertext)
}

// XORKeyStream initializes the sponge and XORs src with its keystream into
// dst: word 0 after initialization for the first block, word 0 after each
// further 6-round permutation for the next. dst must be at least as long as
// src and may alias it.
func (e *Engine) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("ascon: output smaller than input")
	}
	var s State
	s.Initialize(&e.key, &e.nonce)

	var ks [blockSize]byte
	for off := 0; off < len(src); off += blockSize {
		if off > 0 {
			s.Permute(6)
		}
		binary.BigEndian.PutUint64(ks[:], s[0])
		subtle.XORBytes(dst[off:], src[off:], ks[:])
	}
}
