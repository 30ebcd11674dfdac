package protocol

import (
	"errors"
	"fmt"
	"io"
)

const (
	// PublicKeySize is the size of a public key on the wire.
	PublicKeySize = 32

	// MaxMessageSize bounds a single chat message, plaintext or ciphertext.
	MaxMessageSize = 256
)

var (
	ErrMessageTooLarge = errors.New("protocol: message too large")
	ErrEmptyMessage    = errors.New("protocol: empty message")
)

// There is no framing. A public key is exactly 32 raw bytes, little-endian
// as produced by the scalar multiplier. A message is whatever one write
// carries; the receiver takes whatever one read returns.

func WritePublicKey(w io.Writer, pub [PublicKeySize]byte) error {
	_, err := w.Write(pub[:])
	return err
}

// ReadPublicKey blocks until all 32 bytes of the peer's key have arrived.
func ReadPublicKey(r io.Reader) ([PublicKeySize]byte, error) {
	var pub [PublicKeySize]byte
	if _, err := io.ReadFull(r, pub[:]); err != nil {
		return [PublicKeySize]byte{}, err
	}
	return pub, nil
}

// WriteMessage sends b in a single write.
func WriteMessage(w io.Writer, b []byte, limit int) error {
	if len(b) > limit {
		return fmt.Errorf("%w: %d > %d", ErrMessageTooLarge, len(b), limit)
	}
	if len(b) == 0 {
		return ErrEmptyMessage
	}
	_, err := w.Write(b)
	return err
}

// ReadMessage performs one read of at most limit bytes. A short read is the
// message; there is no way to tell it from a truncated one.
func ReadMessage(r io.Reader, limit int) ([]byte, error) {
	buf := make([]byte, limit)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			return buf[:n], nil
		}
		if err != nil {
			return nil, err
		}
	}
}
