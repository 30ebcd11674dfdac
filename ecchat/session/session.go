package session

import (
	"crypto/cipher"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/TheusHen/ecchat/ecchat/crypto"
	"github.com/TheusHen/ecchat/ecchat/crypto/ascon"
	"github.com/TheusHen/ecchat/ecchat/identity"
	"github.com/TheusHen/ecchat/ecchat/protocol"
	"github.com/TheusHen/ecchat/ecchat/transcript"
)

// MaxMessageSize bounds a plaintext turn. Longer input is truncated.
const MaxMessageSize = protocol.MaxMessageSize

var (
	ErrInvalidState = errors.New("session: operation not allowed in current state")
	ErrTransport    = errors.New("session: transport failure")
	ErrDesync       = errors.New("session: peer out of sync")
)

// Recorder receives every plaintext turn, sent or received.
type Recorder interface {
	Append(e transcript.Entry) error
}

type Options struct {
	Role Role

	// Nonce replaces ascon.DefaultNonce. Both peers must agree on it.
	Nonce *ascon.Nonce

	// Authenticated switches from the tagless stream cipher to Ascon-128
	// with a 16-byte tag per message. Both peers must agree on it.
	Authenticated bool

	Logger     *log.Logger
	Transcript Recorder
}

// Session is one two-party conversation: key generation, public-key exchange
// and encrypted turns until the sentinel. A Session is owned by a single
// goroutine.
type Session struct {
	opts   Options
	logger *log.Logger
	state  State
	alive  bool

	keys    crypto.X25519KeyPair
	peerPub [crypto.KeySize]byte
	shared  [crypto.KeySize]byte

	conn   io.ReadWriter
	nonce  ascon.Nonce
	engine *ascon.Engine
	aead   cipher.AEAD
}

func New(opts Options) *Session {
	if opts.Role == 0 {
		opts.Role = Initiator
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	nonce := ascon.DefaultNonce
	if opts.Nonce != nil {
		nonce = *opts.Nonce
	}
	return &Session{opts: opts, logger: logger, nonce: nonce, alive: true}
}

func (s *Session) State() State { return s.state }

func (s *Session) Role() Role { return s.opts.Role }

// Alive is false once the session has terminated, cleanly or not.
func (s *Session) Alive() bool { return s.alive }

func (s *Session) LocalPublicKey() [crypto.KeySize]byte { return s.keys.PublicKey }

func (s *Session) PeerPublicKey() [crypto.KeySize]byte { return s.peerPub }

func (s *Session) LocalFingerprint() identity.Fingerprint {
	return identity.FingerprintOf(s.keys.PublicKey)
}

func (s *Session) PeerFingerprint() identity.Fingerprint {
	return identity.FingerprintOf(s.peerPub)
}

// SharedSecret returns the raw X25519 output.
// WARNING: this is the message key; handle with care.
func (s *Session) SharedSecret() [crypto.KeySize]byte { return s.shared }

// GenerateKey draws the private scalar from entropy (crypto/rand when nil).
// A short read terminates the session before any network activity.
func (s *Session) GenerateKey(entropy io.Reader) error {
	if err := s.expect(Idle); err != nil {
		return err
	}
	kp, err := crypto.GenerateX25519(entropy)
	if err != nil {
		return s.fail(fmt.Errorf("session: key generation: %w", err))
	}
	s.keys = kp
	s.state = KeyGenerated
	s.logger.Printf("session: key generated, fingerprint %s", s.LocalFingerprint().Short())
	return nil
}

// Attach binds the byte channel the transport established.
func (s *Session) Attach(conn io.ReadWriter) error {
	if err := s.expect(KeyGenerated); err != nil {
		return err
	}
	s.conn = conn
	s.state = Connected
	return nil
}

// ExchangeKeys swaps raw 32-byte public keys and derives the shared secret.
// The initiator writes first; the responder reads first, so the exchange also
// works over unbuffered channels.
func (s *Session) ExchangeKeys() error {
	if err := s.expect(Connected); err != nil {
		return err
	}

	var (
		peer [crypto.KeySize]byte
		err  error
	)
	if s.opts.Role == Initiator {
		if err = protocol.WritePublicKey(s.conn, s.keys.PublicKey); err == nil {
			peer, err = protocol.ReadPublicKey(s.conn)
		}
	} else {
		if peer, err = protocol.ReadPublicKey(s.conn); err == nil {
			err = protocol.WritePublicKey(s.conn, s.keys.PublicKey)
		}
	}
	if err != nil {
		return s.fail(fmt.Errorf("%w: key exchange: %w", ErrTransport, err))
	}

	shared, err := crypto.ECDH(s.keys.PrivateKey, peer)
	if err != nil {
		return s.fail(fmt.Errorf("session: key exchange: %w", err))
	}
	s.peerPub = peer
	s.shared = shared
	if s.opts.Authenticated {
		s.aead = ascon.NewSessionAEAD(&s.shared)
	} else {
		s.engine = ascon.NewEngine(&s.shared, s.nonce)
	}
	s.state = KeysExchanged
	s.logger.Printf("session: keys exchanged as %s, peer fingerprint %s", s.opts.Role, s.PeerFingerprint().Short())
	return nil
}

// Send encrypts and writes one turn. Input beyond MaxMessageSize is dropped.
// done reports that plaintext was the sentinel and the session is over.
// Empty input is rejected with protocol.ErrEmptyMessage without touching
// the session; every other error terminates it.
func (s *Session) Send(plaintext []byte) (done bool, err error) {
	if err := s.expect(KeysExchanged, Communicating); err != nil {
		return false, err
	}
	if len(plaintext) == 0 {
		return false, protocol.ErrEmptyMessage
	}
	if len(plaintext) > MaxMessageSize {
		s.logger.Printf("session: truncating %d byte message to %d", len(plaintext), MaxMessageSize)
		plaintext = plaintext[:MaxMessageSize]
	}
	s.state = Communicating

	var ciphertext []byte
	if s.aead != nil {
		ciphertext = s.aead.Seal(nil, s.nonce[:], plaintext, nil)
	} else {
		ciphertext = s.engine.Encrypt(plaintext)
	}
	if err := protocol.WriteMessage(s.conn, ciphertext, s.wireLimit()); err != nil {
		return false, s.fail(fmt.Errorf("%w: send: %w", ErrTransport, err))
	}
	s.record(transcript.Outgoing, plaintext)

	if IsSentinel(plaintext) {
		s.terminate()
		return true, nil
	}
	return false, nil
}

// Receive reads and decrypts one turn. A short read is taken as the whole
// message. Without a tag, corruption cannot be detected and the plaintext is
// returned as is; in authenticated mode a bad tag is ErrDesync.
func (s *Session) Receive() (plaintext []byte, done bool, err error) {
	if err := s.expect(KeysExchanged, Communicating); err != nil {
		return nil, false, err
	}
	s.state = Communicating

	ciphertext, err := protocol.ReadMessage(s.conn, s.wireLimit())
	if err != nil {
		return nil, false, s.fail(fmt.Errorf("%w: receive: %w", ErrTransport, err))
	}
	if s.aead != nil {
		if len(ciphertext) <= s.aead.Overhead() {
			return nil, false, s.fail(fmt.Errorf("%w: %d byte message", ErrDesync, len(ciphertext)))
		}
		plaintext, err = s.aead.Open(nil, s.nonce[:], ciphertext, nil)
		if err != nil {
			return nil, false, s.fail(fmt.Errorf("%w: %w", ErrDesync, err))
		}
	} else {
		plaintext = s.engine.Decrypt(ciphertext)
	}
	s.record(transcript.Incoming, plaintext)

	if IsSentinel(plaintext) {
		s.terminate()
		return plaintext, true, nil
	}
	return plaintext, false, nil
}

// Close terminates the session, wipes key material and closes the channel
// if it is closable.
func (s *Session) Close() error {
	s.terminate()
	if c, ok := s.conn.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *Session) wireLimit() int {
	if s.aead != nil {
		return MaxMessageSize + s.aead.Overhead()
	}
	return MaxMessageSize
}

func (s *Session) expect(states ...State) error {
	for _, st := range states {
		if s.state == st {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidState, s.state)
}

func (s *Session) record(dir transcript.Direction, text []byte) {
	if s.opts.Transcript == nil {
		return
	}
	if err := s.opts.Transcript.Append(transcript.NewEntry(dir, string(text))); err != nil {
		s.logger.Printf("session: transcript: %v", err)
	}
}

// fail terminates the session and returns err unchanged.
func (s *Session) fail(err error) error {
	s.logger.Printf("session: %v", err)
	s.terminate()
	return err
}

func (s *Session) terminate() {
	if s.state == Terminated {
		return
	}
	s.state = Terminated
	s.alive = false
	s.engine = nil
	s.aead = nil
	clear(s.keys.PrivateKey[:])
	clear(s.shared[:])
}
