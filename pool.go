package naphi

import (
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rs/zerolog"
)

// Pool tracks every open connection and evicts the ones that sit idle past
// the keep-alive timeout. The tracked set is keyed by the underlying
// socket; registration and the last-alive stamp are the only state shared
// between the acceptor, the workers, and the sweeper.
type Pool struct {
	keepAliveTimeout time.Duration
	sweepInterval    time.Duration

	conns       *xsync.MapOf[net.Conn, *Conn]
	established atomic.Int64

	done     chan struct{}
	stopOnce sync.Once
	log      zerolog.Logger
	meter    Meter
}

// NewPool starts the sweeper immediately; it runs until Close.
func NewPool(keepAliveTimeout, sweepInterval time.Duration, log zerolog.Logger, meter Meter) *Pool {
	if meter == nil {
		meter = NopMeter{}
	}
	p := &Pool{
		keepAliveTimeout: keepAliveTimeout,
		sweepInterval:    sweepInterval,
		conns:            xsync.NewMapOf[net.Conn, *Conn](),
		done:             make(chan struct{}),
		log:              log,
		meter:            meter,
	}
	go p.sweepLoop()
	return p
}

// Register adds c to the tracked set, stamps it alive, and bumps the
// monotonic established counter. The counter is never decremented.
func (p *Pool) Register(c *Conn) {
	c.touch()
	p.conns.Store(c.sock, c)
	p.established.Add(1)
	p.meter.Counter("naphi_connections_established", 1)
}

// MarkAlive re-stamps c. Called once a request line has been read, not on
// raw byte arrival, so an idle keep-alive socket is judged by the time of
// its last request.
func (p *Pool) MarkAlive(c *Conn) {
	c.touch()
}

// Unregister removes c from the tracked set. It does not close c.
func (p *Pool) Unregister(c *Conn) {
	p.conns.Delete(c.sock)
}

// Established reports the number of connections ever registered.
func (p *Pool) Established() int64 {
	return p.established.Load()
}

// Tracked reports the number of currently tracked connections.
func (p *Pool) Tracked() int {
	return p.conns.Size()
}

func (p *Pool) sweepLoop() {
	ticker := time.NewTicker(p.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-p.done:
			return
		case now := <-ticker.C:
			p.sweep(now)
		}
	}
}

func (p *Pool) sweep(now time.Time) {
	p.conns.Range(func(sock net.Conn, c *Conn) bool {
		if now.Sub(c.idleSince()) > p.keepAliveTimeout {
			p.log.Debug().Stringer("remote", c.RemoteAddr()).Msg("closing idle connection")
			_ = c.Close()
			p.conns.Delete(sock)
		}
		return true
	})
}

// Close stops the sweeper and force-closes every tracked connection. A
// worker blocked reading one of them observes the close as an I/O failure.
// Idempotent.
func (p *Pool) Close() {
	p.stopOnce.Do(func() {
		close(p.done)
		p.conns.Range(func(sock net.Conn, c *Conn) bool {
			_ = c.Close()
			p.conns.Delete(sock)
			return true
		})
	})
}
