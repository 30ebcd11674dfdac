package ecchat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/TheusHen/ecchat/ecchat/session"
	"github.com/TheusHen/ecchat/ecchat/transport/quic"
	"github.com/TheusHen/ecchat/ecchat/transport/tcp"
	"github.com/TheusHen/ecchat/ecchat/transport/ws"
)

var (
	ErrNotListening   = errors.New("peer is not listening")
	ErrUnknownNetwork = errors.New("unknown network")
)

// Network selects the transport carrying the session bytes.
type Network string

const (
	TCP       Network = "tcp"
	QUIC      Network = "quic"
	WebSocket Network = "ws"
)

func ParseNetwork(s string) (Network, error) {
	switch n := Network(s); n {
	case TCP, QUIC, WebSocket:
		return n, nil
	case "":
		return TCP, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownNetwork, s)
	}
}

type listener interface {
	Accept(ctx context.Context) (net.Conn, error)
	AddrString() string
	Close() error
}

// Peer combines a transport with the session state machine. The accepting
// side is the responder, the dialing side the initiator.
type Peer struct {
	opts     session.Options
	entropy  io.Reader
	listener listener
}

// NewPeer returns a Peer whose sessions use opts. Role is set per call.
func NewPeer(opts session.Options) *Peer {
	return &Peer{opts: opts}
}

// SetEntropy replaces crypto/rand as the source of private keys.
func (p *Peer) SetEntropy(r io.Reader) { p.entropy = r }

func (p *Peer) Listen(network Network, addr string) error {
	var (
		ln  listener
		err error
	)
	switch network {
	case TCP:
		ln, err = tcp.Listen(addr)
	case QUIC:
		ln, err = quic.Listen(addr)
	case WebSocket:
		ln, err = ws.Listen(addr)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownNetwork, network)
	}
	if err != nil {
		return err
	}
	p.listener = ln
	return nil
}

func (p *Peer) Close() error {
	if p.listener == nil {
		return nil
	}
	return p.listener.Close()
}

func (p *Peer) ListenAddr() string {
	if p.listener == nil {
		return ""
	}
	return p.listener.AddrString()
}

// Accept waits for one peer and returns a session with keys exchanged.
func (p *Peer) Accept(ctx context.Context) (*session.Session, error) {
	if p.listener == nil {
		return nil, ErrNotListening
	}
	s, err := p.prepare(session.Responder)
	if err != nil {
		return nil, err
	}
	conn, err := p.listener.Accept(ctx)
	if err != nil {
		s.Close()
		return nil, err
	}
	return p.handshake(ctx, s, conn)
}

// Dial connects to addr and returns a session with keys exchanged.
func (p *Peer) Dial(ctx context.Context, network Network, addr string) (*session.Session, error) {
	s, err := p.prepare(session.Initiator)
	if err != nil {
		return nil, err
	}
	var conn net.Conn
	switch network {
	case TCP:
		conn, err = tcp.Dial(ctx, addr)
	case QUIC:
		conn, err = quic.Dial(ctx, addr)
	case WebSocket:
		conn, err = ws.Dial(ctx, addr)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownNetwork, network)
	}
	if err != nil {
		s.Close()
		return nil, err
	}
	return p.handshake(ctx, s, conn)
}

// prepare generates the key before any network activity, so an entropy
// failure never reaches the wire.
func (p *Peer) prepare(role session.Role) (*session.Session, error) {
	opts := p.opts
	opts.Role = role
	s := session.New(opts)
	if err := s.GenerateKey(p.entropy); err != nil {
		return nil, err
	}
	return s, nil
}

func (p *Peer) handshake(ctx context.Context, s *session.Session, conn net.Conn) (*session.Session, error) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	if err := s.Attach(conn); err != nil {
		conn.Close()
		return nil, err
	}
	if err := s.ExchangeKeys(); err != nil {
		s.Close()
		return nil, err
	}
	_ = conn.SetDeadline(time.Time{})
	return s, nil
}
