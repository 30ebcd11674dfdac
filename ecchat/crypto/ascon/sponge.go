package ascon

import "encoding/binary"

const (
	// IV encodes key size 128, rate 64, 12 initialization rounds and 6
	// data rounds (Ascon-128).
	IV uint64 = 0x80400c0600000000

	KeySize   = 16
	NonceSize = 16
	TagSize   = 16

	blockSize = 8
)

// Nonce is the 128-bit initialization nonce.
type Nonce [NonceSize]byte

// CipherKey is the 128-bit Ascon key as two big-endian words.
type CipherKey [2]uint64

// CipherKeyFromBytes reads a 16-byte key. It panics if k is shorter.
func CipherKeyFromBytes(k []byte) CipherKey {
	return CipherKey{binary.BigEndian.Uint64(k[0:8]), binary.BigEndian.Uint64(k[8:16])}
}

// Initialize loads IV, key and nonce, runs the 12-round permutation and adds
// the key into words 3 and 4.
func (s *State) Initialize(k *CipherKey, n *Nonce) {
	s[0] = IV
	s[1] = k[0]
	s[2] = k[1]
	s[3] = binary.BigEndian.Uint64(n[0:8])
	s[4] = binary.BigEndian.Uint64(n[8:16])
	s.Permute(MaxRounds)
	s[3] ^= k[0]
	s[4] ^= k[1]
}

// AbsorbAD absorbs already padded associated-data blocks, one 6-round
// permutation per block, then flips the domain-separation bit in word 4.
// The bit is flipped even when blocks is empty.
func (s *State) AbsorbAD(blocks []uint64) {
	for _, b := range blocks {
		s[0] ^= b
		s.Permute(6)
	}
	s[4] ^= 1
}

// AbsorbADBytes pads ad with 0x80 0x00* to whole blocks and absorbs it.
// Empty associated data contributes no blocks.
func (s *State) AbsorbADBytes(ad []byte) {
	if len(ad) == 0 {
		s.AbsorbAD(nil)
		return
	}
	s.AbsorbAD(padBlocks(ad))
}

// Finalize adds the key into words 1 and 2, runs the 12-round permutation,
// adds the key into words 3 and 4 and returns those words as the tag.
func (s *State) Finalize(k *CipherKey) [TagSize]byte {
	s[1] ^= k[0]
	s[2] ^= k[1]
	s.Permute(MaxRounds)
	s[3] ^= k[0]
	s[4] ^= k[1]

	var tag [TagSize]byte
	binary.BigEndian.PutUint64(tag[0:8], s[3])
	binary.BigEndian.PutUint64(tag[8:16], s[4])
	return tag
}

func padBlocks(b []byte) []uint64 {
	blocks := make([]uint64, 0, len(b)/blockSize+1)
	for len(b) >= blockSize {
		blocks = append(blocks, binary.BigEndian.Uint64(b))
		b = b[blockSize:]
	}
	return append(blocks, pad(b))
}

// pad returns the final partial block b (len(b) < 8) followed by 0x80 and
// zeros, as a big-endian word.
func pad(b []byte) uint64 {
	var last [blockSize]byte
	copy(last[:], b)
	last[len(b)] = 0x80
	return binary.BigEndian.Uint64(last[:])
}
