// Package ecchat provides the building blocks of a two-party encrypted chat.
//
// Each session generates a fresh X25519 key, swaps raw public keys with the
// peer and encrypts every turn with an Ascon-based cipher keyed by the shared
// secret. The default cipher has no tag and a static nonce, so it hides
// content but neither detects tampering nor avoids keystream reuse; enable
// session.Options.Authenticated for Ascon-128 with a tag. Transports are
// interchangeable: TCP, QUIC or WebSocket.
package ecchat
