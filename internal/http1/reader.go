package http1

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrConnClosed reports that the peer (or this process) closed the
// connection before a request line arrived. It is a normal end of the
// request stream, not a protocol violation.
var ErrConnClosed = errors.New("http1: connection closed")

// MalformedError reports a structural violation of HTTP/1.1 framing.
type MalformedError struct {
	Reason string
}

func (e *MalformedError) Error() string {
	return "http1: malformed message: " + e.Reason
}

// ParsedRequest is a minimal representation parsed from the wire.
// Header keys are lower-cased.
type ParsedRequest struct {
	Method     string
	RequestURI string
	Proto      string
	Header     map[string][]string
	Body       []byte
}

// ParsedResponse is the client-side counterpart of ParsedRequest.
type ParsedResponse struct {
	StatusCode int
	Reason     string
	Proto      string
	Header     map[string][]string
	Body       []byte
}

type Reader struct {
	BR           *bufio.Reader
	MaxLineBytes int
}

// ReadRequest reads exactly one request from the stream. A stream that
// ends before the first request-line byte yields ErrConnClosed; framing
// violations yield *MalformedError; other I/O errors pass through.
func (r *Reader) ReadRequest() (*ParsedRequest, error) {
	line, err := r.readLine()
	if err != nil {
		if err == io.EOF {
			return nil, ErrConnClosed
		}
		return nil, err
	}
	parts := strings.SplitN(line, " ", 3)
	if len(parts) != 3 {
		return nil, &MalformedError{Reason: fmt.Sprintf("request line %q", line)}
	}
	method, uri, proto := parts[0], parts[1], parts[2]
	if !strings.HasPrefix(proto, "HTTP/1.") {
		return nil, &MalformedError{Reason: "protocol token " + strconv.Quote(proto)}
	}
	hdr, err := r.readHeaders()
	if err != nil {
		return nil, err
	}
	body, err := r.readBody(hdr)
	if err != nil {
		return nil, err
	}
	return &ParsedRequest{
		Method:     method,
		RequestURI: uri,
		Proto:      proto,
		Header:     hdr,
		Body:       body,
	}, nil
}

// ReadResponse reads exactly one response from the stream.
func (r *Reader) ReadResponse() (*ParsedResponse, error) {
	line, err := r.readLine()
	if err != nil {
		if err == io.EOF {
			return nil, ErrConnClosed
		}
		return nil, err
	}
	parts := strings.SplitN(line, " ", 3)
	if len(parts) < 2 || !strings.HasPrefix(parts[0], "HTTP/1.") {
		return nil, &MalformedError{Reason: fmt.Sprintf("status line %q", line)}
	}
	code, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, &MalformedError{Reason: "status code " + strconv.Quote(parts[1])}
	}
	reason := ""
	if len(parts) == 3 {
		reason = parts[2]
	}
	hdr, err := r.readHeaders()
	if err != nil {
		return nil, err
	}
	body, err := r.readBody(hdr)
	if err != nil {
		return nil, err
	}
	return &ParsedResponse{
		StatusCode: code,
		Reason:     reason,
		Proto:      parts[0],
		Header:     hdr,
		Body:       body,
	}, nil
}

func (r *Reader) readHeaders() (map[string][]string, error) {
	h := make(map[string][]string)
	for {
		line, err := r.readLine()
		if err != nil {
			return nil, err
		}
		if line == "" {
			break
		}
		i := strings.IndexByte(line, ':')
		if i <= 0 {
			return nil, &MalformedError{Reason: fmt.Sprintf("header line %q", line)}
		}
		k := strings.ToLower(strings.TrimSpace(line[:i]))
		v := strings.TrimSpace(line[i+1:])
		h[k] = append(h[k], v)
	}
	return h, nil
}

// readBody honors Content-Length only; chunked transfer is not supported.
// An absent or unparsable length means no body.
func (r *Reader) readBody(hdr map[string][]string) ([]byte, error) {
	vv := hdr["content-length"]
	if len(vv) == 0 {
		return nil, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(vv[0]))
	if err != nil || n <= 0 {
		return nil, nil
	}
	body := make([]byte, n)
	if _, err := io.ReadFull(r.BR, body); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return body, nil
}

func (r *Reader) readLine() (string, error) {
	var sb strings.Builder
	for {
		b, err := r.BR.ReadByte()
		if err != nil {
			if err == io.EOF && sb.Len() > 0 {
				return "", io.ErrUnexpectedEOF
			}
			return "", err
		}
		if b == '\n' {
			break
		}
		if b != '\r' {
			sb.WriteByte(b)
		}
		if r.MaxLineBytes > 0 && sb.Len() > r.MaxLineBytes {
			return "", &MalformedError{Reason: "line exceeds limit"}
		}
	}
	return sb.String(), nil
}
