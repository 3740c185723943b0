package naphi

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"

	"github.com/javadba/naphi/internal/http1"
)

// maxLineBytes bounds a single request/status/header line on the wire.
const maxLineBytes = 8 << 10

// ReadRequest decodes exactly one request from br. The outcome is
// three-way: (req, nil) for a well-formed request, ErrConnectionClosed when
// the stream ended cleanly before a request line, and an error wrapping
// ErrMalformedRequest for any framing violation. Unexpected I/O errors pass
// through untouched.
func ReadRequest(br *bufio.Reader) (Request, error) {
	r := &http1.Reader{BR: br, MaxLineBytes: maxLineBytes}
	pr, err := r.ReadRequest()
	if err != nil {
		return Request{}, classifyDecodeErr(err)
	}
	method, ok := MethodFromToken(pr.Method)
	if !ok {
		return Request{}, fmt.Errorf("%w: unknown method %s", ErrMalformedRequest, strconv.Quote(pr.Method))
	}
	return Request{
		Method:  method,
		Path:    pr.RequestURI,
		Headers: Headers(pr.Header),
		Body:    pr.Body,
	}, nil
}

// WriteResponse encodes resp to bw and flushes it fully; it returns only
// once the bytes have been handed to the socket. When the handler set no
// content-length, one is derived from the body so keep-alive clients can
// frame the response.
func WriteResponse(bw *bufio.Writer, resp Response) error {
	hdr := resp.Headers
	if len(hdr.Get("content-length")) == 0 {
		hdr = hdr.With("content-length", strconv.Itoa(len(resp.Body)))
	}
	if err := http1.WriteResponse(bw, resp.Status.Code, resp.Status.Reason, hdr, resp.Body); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteRequest encodes a client-side request and flushes it.
func WriteRequest(bw *bufio.Writer, req Request) error {
	hdr := req.Headers
	if len(req.Body) > 0 && len(hdr.Get("content-length")) == 0 {
		hdr = hdr.With("content-length", strconv.Itoa(len(req.Body)))
	}
	if err := http1.WriteRequest(bw, string(req.Method), req.Path, hdr, req.Body); err != nil {
		return err
	}
	return bw.Flush()
}

// ReadResponse decodes one response from br. The status is taken from the
// wire as-is, so codes outside the predeclared catalog round-trip intact.
func ReadResponse(br *bufio.Reader) (Response, error) {
	r := &http1.Reader{BR: br, MaxLineBytes: maxLineBytes}
	pr, err := r.ReadResponse()
	if err != nil {
		return Response{}, classifyDecodeErr(err)
	}
	return Response{
		Status:  Status{Code: pr.StatusCode, Reason: pr.Reason},
		Headers: Headers(pr.Header),
		Body:    pr.Body,
	}, nil
}

func classifyDecodeErr(err error) error {
	if errors.Is(err, http1.ErrConnClosed) {
		return ErrConnectionClosed
	}
	var me *http1.MalformedError
	if errors.As(err, &me) {
		return fmt.Errorf("%w: %s", ErrMalformedRequest, me.Reason)
	}
	return err
}
