package quic

import (
	"context"
	"net"
	"sync"
	"time"

	q "github.com/quic-go/quic-go"
)

const (
	// closeGrace is how long Close waits for the peer to finish reading.
	closeGrace = 2 * time.Second

	errCodeNormal   q.ApplicationErrorCode = 0
	errCodeStreamOK q.StreamErrorCode      = 0
)

func config() *q.Config {
	return &q.Config{
		MaxIdleTimeout:  5 * time.Minute,
		KeepAlivePeriod: 30 * time.Second,
	}
}

type Listener struct {
	inner *q.Listener
}

func Listen(addr string) (*Listener, error) {
	tlsConf, err := NewServerTLSConfig()
	if err != nil {
		return nil, err
	}
	ln, err := q.ListenAddr(addr, tlsConf, config())
	if err != nil {
		return nil, err
	}
	return &Listener{inner: ln}, nil
}

// Accept waits for a connection and its single bidirectional stream. The
// stream only becomes visible once the dialer has written to it, which the
// initiator does first by sending its public key.
func (l *Listener) Accept(ctx context.Context) (net.Conn, error) {
	conn, err := l.inner.Accept(ctx)
	if err != nil {
		return nil, err
	}
	str, err := conn.AcceptStream(ctx)
	if err != nil {
		_ = conn.CloseWithError(errCodeNormal, "no stream")
		return nil, err
	}
	return newStreamConn(conn, str), nil
}

func (l *Listener) Addr() net.Addr { return l.inner.Addr() }

func (l *Listener) AddrString() string {
	if l.inner == nil {
		return ""
	}
	return l.inner.Addr().String()
}

func (l *Listener) Close() error { return l.inner.Close() }

func Dial(ctx context.Context, addr string) (net.Conn, error) {
	conn, err := q.DialAddr(ctx, addr, NewClientTLSConfig(), config())
	if err != nil {
		return nil, err
	}
	str, err := conn.OpenStreamSync(ctx)
	if err != nil {
		_ = conn.CloseWithError(errCodeNormal, "no stream")
		return nil, err
	}
	return newStreamConn(conn, str), nil
}

// streamConn exposes one QUIC stream as a net.Conn.
type streamConn struct {
	q.Stream
	conn q.Connection

	closeOnce sync.Once
	closeErr  error
}

func newStreamConn(conn q.Connection, str q.Stream) *streamConn {
	return &streamConn{Stream: str, conn: conn}
}

func (c *streamConn) LocalAddr() net.Addr  { return c.conn.LocalAddr() }
func (c *streamConn) RemoteAddr() net.Addr { return c.conn.RemoteAddr() }

// Close finishes the send side, waits briefly for the peer to close its own
// so data in flight (typically the final "bye") is delivered, then tears the
// connection down.
func (c *streamConn) Close() error {
	c.closeOnce.Do(func() {
		_ = c.Stream.Close()
		_ = c.Stream.SetReadDeadline(time.Now().Add(closeGrace))
		buf := make([]byte, 512)
		for {
			if _, err := c.Stream.Read(buf); err != nil {
				break
			}
		}
		c.Stream.CancelRead(errCodeStreamOK)
		c.closeErr = c.conn.CloseWithError(errCodeNormal, "")
	})
	return c.closeErr
}
