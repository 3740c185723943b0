package naphi

// Request is one decoded HTTP request. Requests are built only by the wire
// codec and never mutated afterwards; Body is nil when the request carried
// no content-length.
type Request struct {
	Method  Method
	Path    string
	Headers Headers
	Body    []byte
}

// Response is what a handler returns. Treated as immutable once built.
type Response struct {
	Status  Status
	Headers Headers
	Body    []byte
}
