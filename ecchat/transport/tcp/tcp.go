package tcp

import (
	"context"
	"net"
	"time"
)

var aLongTimeAgo = time.Unix(1, 0)

type Listener struct {
	inner *net.TCPListener
}

func Listen(addr string) (*Listener, error) {
	laddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, err
	}
	ln, err := net.ListenTCP("tcp", laddr)
	if err != nil {
		return nil, err
	}
	return &Listener{inner: ln}, nil
}

// Accept waits for one connection. The context deadline, if any, bounds the
// wait; cancellation without a deadline is noticed by closing the listener.
func (l *Listener) Accept(ctx context.Context) (net.Conn, error) {
	if deadline, ok := ctx.Deadline(); ok {
		if err := l.inner.SetDeadline(deadline); err != nil {
			return nil, err
		}
	}
	defer l.inner.SetDeadline(time.Time{})

	type result struct {
		conn net.Conn
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		c, err := l.inner.AcceptTCP()
		if err != nil {
			ch <- result{nil, err}
			return
		}
		_ = c.SetNoDelay(true)
		ch <- result{c, nil}
	}()

	select {
	case r := <-ch:
		return r.conn, r.err
	case <-ctx.Done():
		// Unblock the pending accept; a connection that raced in is dropped.
		_ = l.inner.SetDeadline(aLongTimeAgo)
		if r := <-ch; r.conn != nil {
			r.conn.Close()
		}
		return nil, ctx.Err()
	}
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
	var d net.Dialer
	c, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	if tc, ok := c.(*net.TCPConn); ok {
		_ = tc.SetNoDelay(true)
	}
	return c, nil
}
