// Package ascon implements the Ascon sponge permutation and the two ciphers
// chat sessions build on it.
//
// Engine is the session cipher: it initializes the sponge from the shared
// secret and a static nonce, then squeezes one 64-bit word of keystream per
// 8-byte block. It absorbs no associated data, runs no finalization and emits
// no tag. Ciphertexts are malleable and, because the nonce never changes,
// every message under a key reuses the same keystream. Sessions opt into
// NewAEAD, the full Ascon-128 construction with a 16-byte tag, when that
// matters more than wire compatibility.
package ascon
