package ascon

import "math/bits"

// State is the 320-bit sponge state.
type State [5]uint64

// MaxRounds is the round count of the initialization and finalization
// permutation. Shorter permutations use the tail of the constant schedule.
const MaxRounds = 12

// Indexed by MaxRounds - rounds + i. The last four entries belong to the
// 16-round schedule and are never reached with rounds <= MaxRounds.
var roundConstants = [16]uint64{
	0xf0, 0xe1, 0xd2, 0xc3, 0xb4, 0xa5, 0x96, 0x87,
	0x78, 0x69, 0x5a, 0x4b, 0x3c, 0x2d, 0x1e, 0x0f,
}

// Permute applies rounds rounds of the permutation to s. rounds must be in
// [1, MaxRounds]; 6, 8 and 12 are the counts Ascon uses.
func (s *State) Permute(rounds int) {
	if rounds < 1 || rounds > MaxRounds {
		panic("ascon: invalid round count")
	}
	for i := 0; i < rounds; i++ {
		s.round(roundConstants[MaxRounds-rounds+i])
	}
}

func (s *State) round(c uint64) {
	// constant addition
	s[2] ^= c

	// substitution layer: the 5-bit S-box on all 64 bit lanes at once
	s[0] ^= s[4]
	s[4] ^= s[3]
	s[2] ^= s[1]
	var t [5]uint64
	for i := range t {
		t[i] = ^s[i] & s[(i+1)%5]
	}
	for i := range s {
		s[i] ^= t[(i+1)%5]
	}
	s[1] ^= s[0]
	s[0] ^= s[4]
	s[3] ^= s[2]
	s[2] = ^s[2]

	// linear diffusion layer
	s[0] ^= bits.RotateLeft64(s[0], -19) ^ bits.RotateLeft64(s[0], -28)
	s[1] ^= bits.RotateLeft64(s[1], -61) ^ bits.RotateLeft64(s[1], -39)
	s[2] ^= bits.RotateLeft64(s[2], -1) ^ bits.RotateLeft64(s[2], -6)
	s[3] ^= bits.RotateLeft64(s[3], -10) ^ bits.RotateLeft64(s[3], -17)
	s[4] ^= bits.RotateLeft64(s[4], -7) ^ bits.RotateLeft64(s[4], -41)
}
