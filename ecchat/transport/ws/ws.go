package ws

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"nhooyr.io/websocket"
)

// Path is the HTTP endpoint the listener upgrades.
const Path = "/ecchat"

var ErrListenerClosed = errors.New("ws: listener closed")

// Listener serves WebSocket upgrades on Path and hands each one to Accept as
// a binary net.Conn.
type Listener struct {
	ln     net.Listener
	server *http.Server
	conns  chan net.Conn
	done   chan struct{}
	once   sync.Once
}

func Listen(addr string) (*Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	l := &Listener{
		ln:    ln,
		conns: make(chan net.Conn),
		done:  make(chan struct{}),
	}
	mux := http.NewServeMux()
	mux.HandleFunc(Path, l.upgrade)
	l.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		err := l.server.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Close()
		}
	}()
	return l, nil
}

func (l *Listener) upgrade(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		CompressionMode: websocket.CompressionDisabled,
	})
	if err != nil {
		return
	}
	conn := newConn(c)
	select {
	case l.conns <- conn:
	case <-l.done:
		c.Close(websocket.StatusGoingAway, "listener closed")
		return
	case <-r.Context().Done():
		c.Close(websocket.StatusGoingAway, "")
		return
	}
	// Keep the handler alive for as long as the connection is in use.
	select {
	case <-conn.closed:
	case <-l.done:
	}
}

func (l *Listener) Accept(ctx context.Context) (net.Conn, error) {
	select {
	case c := <-l.conns:
		return c, nil
	case <-l.done:
		return nil, ErrListenerClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *Listener) Addr() net.Addr { return l.ln.Addr() }

func (l *Listener) AddrString() string {
	if l.ln == nil {
		return ""
	}
	return l.ln.Addr().String()
}

func (l *Listener) Close() error {
	var err error
	l.once.Do(func() {
		close(l.done)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = l.server.Shutdown(ctx)
	})
	return err
}

// Dial connects to a Listener. addr is host:port or a full ws:// URL.
func Dial(ctx context.Context, addr string) (net.Conn, error) {
	url := addr
	if !strings.HasPrefix(addr, "ws://") && !strings.HasPrefix(addr, "wss://") {
		url = "ws://" + addr + Path
	}
	c, _, err := websocket.Dial(ctx, url, &websocket.DialOptions{
		CompressionMode: websocket.CompressionDisabled,
	})
	if err != nil {
		return nil, err
	}
	return newConn(c), nil
}

// conn sends each Write as one binary message, so a chat turn stays one
// read on the other side.
type conn struct {
	net.Conn
	closed chan struct{}
	once   sync.Once
}

func newConn(c *websocket.Conn) *conn {
	return &conn{
		Conn:   websocket.NetConn(context.Background(), c, websocket.MessageBinary),
		closed: make(chan struct{}),
	}
}

func (c *conn) Close() error {
	err := c.Conn.Close()
	c.once.Do(func() { close(c.closed) })
	return err
}
