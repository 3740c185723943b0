package naphi

import (
	"bufio"
	"errors"
	"io"
	"net"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/javadba/naphi/internal/obs"
)

// Handler is the single entry point for application logic: one synchronous
// call per decoded request, on the worker that owns the connection. A
// handler that panics gets its connection closed without a response; the
// server does not synthesize 500s.
type Handler func(Request) Response

// Config is fixed at construction; there is no runtime reconfiguration.
type Config struct {
	// Addr is the TCP listen address, host:port.
	Addr string
	// MaxWorkers bounds the number of connections served concurrently.
	MaxWorkers int
	// Backlog bounds accepted connections waiting for a free worker; a
	// connection arriving past the bound is closed immediately.
	Backlog int
	// KeepAliveTimeout is how long a connection may sit without a new
	// request before the sweeper closes it.
	KeepAliveTimeout time.Duration
	// SweepInterval is the sweeper's wake-up period.
	SweepInterval time.Duration
	// ShutdownGrace bounds how long Close waits for in-flight connections.
	ShutdownGrace time.Duration

	Logger zerolog.Logger
	Meter  Meter
}

const (
	defaultAddr             = ":8090"
	defaultMaxWorkers       = 64
	defaultBacklog          = 64
	defaultKeepAliveTimeout = 30 * time.Second
	defaultSweepInterval    = time.Second
	defaultShutdownGrace    = 3 * time.Second
)

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = defaultAddr
	}
	if c.MaxWorkers <= 0 {
		c.MaxWorkers = defaultMaxWorkers
	}
	if c.Backlog <= 0 {
		c.Backlog = defaultBacklog
	}
	if c.KeepAliveTimeout <= 0 {
		c.KeepAliveTimeout = defaultKeepAliveTimeout
	}
	if c.SweepInterval <= 0 {
		c.SweepInterval = defaultSweepInterval
	}
	if c.ShutdownGrace <= 0 {
		c.ShutdownGrace = defaultShutdownGrace
	}
	if c.Meter == nil {
		c.Meter = NopMeter{}
	}
	return c
}

// Server owns the listening socket, one acceptor goroutine, a bounded
// worker pool, and the connection Pool. It starts serving on construction;
// Close is terminal.
type Server struct {
	cfg     Config
	handler Handler
	ln      net.Listener
	pool    *Pool
	queue   chan *Conn

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
	closeErr  error
	log       zerolog.Logger
}

// NewServer binds cfg.Addr and immediately starts the acceptor, the
// workers, and the pool sweeper. A nil handler answers every request with
// 404, as a placeholder.
func NewServer(cfg Config, handler Handler) (*Server, error) {
	cfg = cfg.withDefaults()
	if handler == nil {
		handler = func(Request) Response {
			return Response{Status: StatusNotFound}
		}
	}
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, err
	}
	s := &Server{
		cfg:     cfg,
		handler: handler,
		ln:      ln,
		pool:    NewPool(cfg.KeepAliveTimeout, cfg.SweepInterval, obs.Component(cfg.Logger, "pool"), cfg.Meter),
		queue:   make(chan *Conn, cfg.Backlog),
		done:    make(chan struct{}),
		log:     obs.Component(cfg.Logger, "server"),
	}
	for i := 0; i < cfg.MaxWorkers; i++ {
		s.wg.Add(1)
		go s.worker()
	}
	s.wg.Add(1)
	go s.acceptLoop()
	s.log.Info().Stringer("addr", ln.Addr()).Msg("listening")
	return s, nil
}

// Addr reports the bound listen address.
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Established reports the number of connections ever accepted.
func (s *Server) Established() int64 {
	return s.pool.Established()
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		sock, err := s.ln.Accept()
		if err != nil {
			if s.closing() || errors.Is(err, net.ErrClosed) {
				return
			}
			s.log.Warn().Err(err).Msg("accept failed")
			continue
		}
		c := newConn(sock)
		s.pool.Register(c)
		select {
		case s.queue <- c:
		default:
			// Admission bound reached: every worker is busy and the wait
			// queue is full.
			s.log.Debug().Stringer("remote", c.RemoteAddr()).Msg("connection refused, queue full")
			s.pool.Unregister(c)
			_ = c.Close()
		}
	}
}

func (s *Server) worker() {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case c := <-s.queue:
			s.serveConn(c)
		}
	}
}

// serveConn runs the per-connection loop: decode one request, stamp the
// pool, invoke the handler, encode and flush the response. Requests on one
// connection are strictly sequential; the response to request N is flushed
// before request N+1 is read.
func (s *Server) serveConn(c *Conn) {
	defer func() {
		s.pool.Unregister(c)
		_ = c.Close()
	}()
	br := bufio.NewReader(c.sock)
	bw := bufio.NewWriter(c.sock)
	for {
		req, err := ReadRequest(br)
		switch {
		case err == nil:
		case errors.Is(err, ErrConnectionClosed):
			// Peer finished, or the sweeper closed us mid-wait. Either way
			// the request stream ended; nothing to report.
			return
		case errors.Is(err, ErrMalformedRequest):
			s.pool.MarkAlive(c)
			s.log.Debug().Err(err).Stringer("remote", c.RemoteAddr()).Msg("malformed request")
			if werr := WriteResponse(bw, Response{Status: StatusBadRequest}); werr != nil {
				s.logConnErr(c, werr, "write 400")
				return
			}
			// The protocol allows the client to retry on this connection.
			continue
		default:
			s.logConnErr(c, err, "read request")
			return
		}
		s.pool.MarkAlive(c)
		resp, ok := s.invoke(req)
		if !ok {
			return
		}
		if err := WriteResponse(bw, resp); err != nil {
			s.logConnErr(c, err, "write response")
			return
		}
		if req.Headers.Connection() == "close" {
			return
		}
	}
}

func (s *Server) invoke(req Request) (resp Response, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Str("path", req.Path).Msg("handler panicked, abandoning connection")
			ok = false
		}
	}()
	return s.handler(req), true
}

// logConnErr separates expected failures on a closed socket (peer reset,
// sweeper close, shutdown) from genuinely unexpected I/O errors. Only the
// latter are warnings; the server itself keeps running either way.
func (s *Server) logConnErr(c *Conn, err error, op string) {
	if c.Closed() || expectedConnErr(err) {
		s.log.Debug().Err(err).Str("op", op).Msg("i/o on closed connection")
		return
	}
	s.log.Warn().Err(err).Str("op", op).Stringer("remote", c.RemoteAddr()).Msg("connection error")
}

func expectedConnErr(err error) bool {
	return errors.Is(err, net.ErrClosed) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE)
}

func (s *Server) closing() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Close stops the server: the listener is closed (failing the acceptor out
// of Accept), workers stop taking new connections, in-flight connections
// get ShutdownGrace to finish, then the pool force-closes whatever is
// left. Best effort with a bounded wait; terminal and idempotent.
func (s *Server) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.closeErr = s.ln.Close()
		if !waitTimeout(&s.wg, s.cfg.ShutdownGrace) {
			s.log.Info().Dur("grace", s.cfg.ShutdownGrace).Msg("grace period exceeded, forcing connections closed")
		}
		s.pool.Close()
		waitTimeout(&s.wg, s.cfg.ShutdownGrace)
		s.log.Info().Msg("server stopped")
	})
	return s.closeErr
}

// waitTimeout waits for wg up to d; reports whether the wait completed.
func waitTimeout(wg *sync.WaitGroup, d time.Duration) bool {
	fin := make(chan struct{})
	go func() {
		wg.Wait()
		close(fin)
	}()
	select {
	case <-fin:
		return true
	case <-time.After(d):
		return false
	}
}
