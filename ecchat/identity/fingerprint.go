package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

var ErrInvalidFingerprint = errors.New("identity: invalid fingerprint length")

// Fingerprint identifies a session public key for out-of-band comparison.
// It is defined as: Fingerprint = SHA-256(PublicKey).
type Fingerprint [32]byte

func FingerprintOf(publicKey [32]byte) Fingerprint {
	return Fingerprint(sha256.Sum256(publicKey[:]))
}

func ParseFingerprintHex(s string) (Fingerprint, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Fingerprint{}, err
	}
	if len(b) != 32 {
		return Fingerprint{}, ErrInvalidFingerprint
	}
	var fp Fingerprint
	copy(fp[:], b)
	return fp, nil
}

func (fp Fingerprint) String() string {
	return hex.EncodeToString(fp[:])
}

// Short returns the first 8 bytes as colon-separated hex pairs, the form
// shown to users when a session starts.
func (fp Fingerprint) Short() string {
	const n = 8
	out := make([]byte, 0, n*3-1)
	for i := 0; i < n; i++ {
		if i > 0 {
			out = append(out, ':')
		}
		out = append(out, hex.EncodeToString(fp[i:i+1])...)
	}
	return string(out)
}
