package naphi

import (
	"net"
	"sync/atomic"
	"time"
)

// Conn wraps one accepted socket. It is owned by the worker serving it; the
// pool's sweeper may close it from another goroutine, so Close is atomic
// and idempotent, and closing unblocks any read or write pending on the
// socket with net.ErrClosed.
type Conn struct {
	sock      net.Conn
	lastAlive atomic.Int64 // unix nanos
	closed    atomic.Bool
}

func newConn(sock net.Conn) *Conn {
	c := &Conn{sock: sock}
	c.touch()
	return c
}

func (c *Conn) touch() {
	c.lastAlive.Store(time.Now().UnixNano())
}

func (c *Conn) idleSince() time.Time {
	return time.Unix(0, c.lastAlive.Load())
}

// Closed reports whether Close has been called, by anyone.
func (c *Conn) Closed() bool {
	return c.closed.Load()
}

// Close closes the underlying socket exactly once. Safe to call from the
// sweeper while the owning worker is blocked on I/O.
func (c *Conn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.sock.Close()
}

// RemoteAddr reports the peer address, for logging.
func (c *Conn) RemoteAddr() net.Addr {
	return c.sock.RemoteAddr()
}
