package ascon

import (
	"crypto/cipher"
	"crypto/subtle"
	"encoding/binary"
	"errors"
)

var (
	ErrInvalidKeySize = errors.New("ascon: invalid key size")
	ErrOpen           = errors.New("ascon: message authentication failed")
)

type aead struct {
	key CipherKey
}

// NewAEAD returns Ascon-128 as a cipher.AEAD: 16-byte key, 16-byte nonce,
// 16-byte tag appended to the ciphertext.
func NewAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeySize
	}
	return &aead{key: CipherKeyFromBytes(key)}, nil
}

// NewSessionAEAD keys Ascon-128 with the folded shared secret, the same key
// an Engine derives.
func NewSessionAEAD(secret *[SecretSize]byte) cipher.AEAD {
	return &aead{key: KeyFromSecret(secret).Cipher()}
}

func (a *aead) NonceSize() int { return NonceSize }

func (a *aead) Overhead() int { return TagSize }

func (a *aead) Seal(dst, nonce, plaintext, additionalData []byte) []byte {
	if len(nonce) != NonceSize {
		panic("ascon: incorrect nonce length given to Ascon-128")
	}
	var n Nonce
	copy(n[:], nonce)

	var s State
	s.Initialize(&a.key, &n)
	s.AbsorbADBytes(additionalData)

	ret, out := sliceForAppend(dst, len(plaintext)+TagSize)
	s.duplexEncrypt(out[:len(plaintext)], plaintext)
	tag := s.Finalize(&a.key)
	copy(out[len(plaintext):], tag[:])
	return ret
}

func (a *aead) Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error) {
	if len(nonce) != NonceSize {
		panic("ascon: incorrect nonce length given to Ascon-128")
	}
	if len(ciphertext) < TagSize {
		return nil, ErrOpen
	}
	var n Nonce
	copy(n[:], nonce)
	tag := ciphertext[len(ciphertext)-TagSize:]
	ciphertext = ciphertext[:len(ciphertext)-TagSize]

	var s State
	s.Initialize(&a.key, &n)
	s.AbsorbADBytes(additionalData)

	ret, out := sliceForAppend(dst, len(ciphertext))
	s.duplexDecrypt(out, ciphertext)
	expected := s.Finalize(&a.key)
	if subtle.ConstantTimeCompare(expected[:], tag) != 1 {
		clear(out)
		return nil, ErrOpen
	}
	return ret, nil
}

// duplexEncrypt absorbs each plaintext block into word 0 and emits the
// result. The last block is padded; its ciphertext is truncated.
func (s *State) duplexEncrypt(dst, src []byte) {
	for len(src) >= blockSize {
		s[0] ^= binary.BigEndian.Uint64(src)
		binary.BigEndian.PutUint64(dst, s[0])
		s.Permute(6)
		src, dst = src[blockSize:], dst[blockSize:]
	}
	s[0] ^= pad(src)
	var last [blockSize]byte
	binary.BigEndian.PutUint64(last[:], s[0])
	copy(dst, last[:len(src)])
}

func (s *State) duplexDecrypt(dst, src []byte) {
	for len(src) >= blockSize {
		c := binary.BigEndian.Uint64(src)
		binary.BigEndian.PutUint64(dst, s[0]^c)
		s[0] = c
		s.Permute(6)
		src, dst = src[blockSize:], dst[blockSize:]
	}
	var ks [blockSize]byte
	binary.BigEndian.PutUint64(ks[:], s[0])
	for i := range src {
		dst[i] = src[i] ^ ks[i]
	}
	s[0] ^= pad(dst[:len(src)])
}

// sliceForAppend extends in by n bytes, reusing its capacity when possible,
// and returns the whole slice and the new tail.
func sliceForAppend(in []byte, n int) (head, tail []byte) {
	if total := len(in) + n; cap(in) >= total {
		head = in[:total]
	} else {
		head = make([]byte, total)
		copy(head, in)
	}
	tail = head[len(in):]
	return
}
