package naphi

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestReadRequest_UnknownMethodIsMalformed(t *testing.T) {
	br := bufio.NewReader(strings.NewReader("BREW /pot HTTP/1.1\r\n\r\n"))
	if _, err := ReadRequest(br); !errors.Is(err, ErrMalformedRequest) {
		t.Fatalf("err = %v, want ErrMalformedRequest", err)
	}
}

func TestReadRequest_CleanEndOfStream(t *testing.T) {
	br := bufio.NewReader(strings.NewReader(""))
	if _, err := ReadRequest(br); !errors.Is(err, ErrConnectionClosed) {
		t.Fatalf("err = %v, want ErrConnectionClosed", err)
	}
}

func TestWriteResponse_DerivesContentLength(t *testing.T) {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	if err := WriteResponse(bw, Response{Status: StatusOK, Body: []byte("hello")}); err != nil {
		t.Fatalf("WriteResponse error: %v", err)
	}
	if !strings.Contains(buf.String(), "Content-Length: 5\r\n") {
		t.Fatalf("missing derived content-length: %q", buf.String())
	}
}

func TestWriteResponse_RespectsExplicitContentLength(t *testing.T) {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	resp := Response{
		Status:  StatusOK,
		Headers: Headers{}.With("content-length", "5"),
		Body:    []byte("hello"),
	}
	if err := WriteResponse(bw, resp); err != nil {
		t.Fatalf("WriteResponse error: %v", err)
	}
	if got := strings.Count(buf.String(), "Content-Length"); got != 1 {
		t.Fatalf("Content-Length lines = %d, want 1", got)
	}
}
