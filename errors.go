package naphi

import "errors"

var (
	// ErrConnectionClosed is the clean-end decode outcome: the peer (or the
	// pool) closed the connection before another request-line byte arrived.
	ErrConnectionClosed = errors.New("naphi: connection closed")
	// ErrMalformedRequest wraps every structural framing violation: bad
	// request line, bad header syntax, unknown method or protocol token.
	ErrMalformedRequest = errors.New("naphi: malformed request")
	// ErrServerClosed is returned by operations on a stopped server.
	ErrServerClosed = errors.New("naphi: server closed")
)
